package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yaohuihuang316-coder/darasa/core/assignment"
)

type assignmentApi struct {
	svc *assignment.Service
}

func registerAssignmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *assignment.Service) {
	api := assignmentApi{svc: svc}

	ag := g.Group("/assignments", jwt)
	ag.POST("", api.assignmentCreate)
	ag.POST("/:id/publish", api.assignmentPublish)
	ag.POST("/:id/close", api.assignmentClose)
	ag.GET("/:id/stats", api.assignmentStats)
	ag.GET("/:id/submissions", api.submissionList)
	ag.POST("/:id/submissions", api.submissionCreate)

	sg := g.Group("/submissions", jwt)
	sg.GET("/:id", api.submissionRetrieve)
	sg.PUT("/:id/grade", api.submissionGrade)
}

// Handlers

func (api *assignmentApi) assignmentCreate(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	data := new(assignment.NewAssignment)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	a, err := api.svc.CreateAssignment(ctx.Request().Context(), actor, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *assignmentApi) assignmentPublish(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	a, err := api.svc.PublishAssignment(ctx.Request().Context(), actor, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) assignmentClose(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	a, err := api.svc.CloseAssignment(ctx.Request().Context(), actor, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) assignmentStats(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	stats, err := api.svc.AssignmentStats(ctx.Request().Context(), actor, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *assignmentApi) submissionList(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	subs, err := api.svc.ListSubmissions(ctx.Request().Context(), actor, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *assignmentApi) submissionCreate(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	data := new(assignment.NewSubmission)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	data.AssignmentID = ctx.Param("id")
	if data.StudentID == "" { // default to self-submission
		data.StudentID = actor.ID
	}
	if err := data.Validate(); err != nil {
		return err
	}

	sub, err := api.svc.CreateSubmission(ctx.Request().Context(), actor, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *assignmentApi) submissionRetrieve(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	sub, err := api.svc.GetSubmission(ctx.Request().Context(), actor, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *assignmentApi) submissionGrade(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	data := new(assignment.GradeInput)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	stats, err := api.svc.Grade(ctx.Request().Context(), actor, ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stats)
}
