package assignment

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/yaohuihuang316-coder/darasa/core"
)

var (
	// errors
	ErrAssignmentNotFound  = stderrors.New("assignment not found")
	ErrSubmissionNotFound  = stderrors.New("submission not found")
	ErrPolicyDenied        = stderrors.New("permission denied")
	ErrConcurrencyConflict = stderrors.New("conflicting concurrent update")

	errAssignmentNotOpen  = stderrors.New("assignment is not open for submissions")
	errSubmissionGraded   = stderrors.New("a graded submission cannot be replaced")
	errAlreadyPublished   = stderrors.New("assignment has already been published")
	errAlreadyClosed      = stderrors.New("assignment is already closed")
	errCloseDraft         = stderrors.New("a draft assignment cannot be closed")
)

type (
	// Repository is the Entity Store contract. Every method accepts an
	// optional executor to join a transaction opened by the service.
	Repository interface {
		CreateAssignment(ctx context.Context, a Assignment, exec ...core.DBExecutor) (Assignment, error)
		GetAssignment(ctx context.Context, id string, exec ...core.DBExecutor) (Assignment, error)
		UpdateAssignment(ctx context.Context, a Assignment, exec ...core.DBExecutor) (Assignment, error)
		UpdateAssignmentCounters(ctx context.Context, id string, submitted, graded int, status Status, exec ...core.DBExecutor) error
		GetSubmission(ctx context.Context, id string, exec ...core.DBExecutor) (Submission, error)
		GetSubmissionByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string, exec ...core.DBExecutor) (Submission, error)
		ListSubmissionsByAssignment(ctx context.Context, assignmentID string, exec ...core.DBExecutor) ([]Submission, error)
		UpsertSubmission(ctx context.Context, sub Submission, exec ...core.DBExecutor) (Submission, error)
	}

	Service struct {
		db     core.DB
		repo   Repository
		logger core.Logger
	}
)

func NewService(db core.DB, repo Repository, logger core.Logger) *Service {
	return &Service{db: db, repo: repo, logger: logger}
}

// begin opens the single transaction every mutating operation runs in.
// Counter recomputation needs repeatable read or stronger; anything weaker
// lets concurrent graders drift the cached counters.
func (svc *Service) begin(ctx context.Context) (core.DBTransactor, error) {
	tx, err := svc.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, errors.Wrap(err, "beginning transaction")
	}
	return tx, nil
}

// CreateAssignment creates a draft assignment owned by the acting teacher.
func (svc *Service) CreateAssignment(ctx context.Context, actor Actor, na NewAssignment) (Assignment, error) {
	if !actor.IsTeacher() && !actor.IsAdmin() {
		return Assignment{}, ErrPolicyDenied
	}

	now := time.Now().UTC()
	a := Assignment{
		ID:          uuid.New().String(),
		OwnerID:     actor.ID,
		Title:       na.Title,
		Description: na.Description,
		MaxScore:    na.MaxScore,
		Deadline:    na.Deadline,
		Status:      StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateAssignment(ctx, a)
}

// PublishAssignment opens a draft assignment for submissions.
func (svc *Service) PublishAssignment(ctx context.Context, actor Actor, id string) (Assignment, error) {
	tx, err := svc.begin(ctx)
	if err != nil {
		return Assignment{}, err
	}
	defer func() { _ = tx.Rollback() }()

	a, err := svc.repo.GetAssignment(ctx, id, tx)
	if err != nil {
		return Assignment{}, err
	}
	if !Evaluate(actor, ActionPublishAssignment, Resource{Assignment: a}).Allowed() {
		return Assignment{}, ErrPolicyDenied
	}
	if a.Status != StatusDraft {
		return Assignment{}, core.NewValidationError(errAlreadyPublished)
	}

	a.Status = StatusOpen
	a.UpdatedAt = time.Now().UTC()
	if a, err = svc.repo.UpdateAssignment(ctx, a, tx); err != nil {
		return Assignment{}, err
	}
	if err = tx.Commit(); err != nil {
		return Assignment{}, errors.Wrap(err, "committing transaction")
	}
	return a, nil
}

// CloseAssignment closes an assignment explicitly, regardless of grading
// progress. Automatic derivation may reopen it if a submission lands later.
func (svc *Service) CloseAssignment(ctx context.Context, actor Actor, id string) (Assignment, error) {
	tx, err := svc.begin(ctx)
	if err != nil {
		return Assignment{}, err
	}
	defer func() { _ = tx.Rollback() }()

	a, err := svc.repo.GetAssignment(ctx, id, tx)
	if err != nil {
		return Assignment{}, err
	}
	if !Evaluate(actor, ActionCloseAssignment, Resource{Assignment: a}).Allowed() {
		return Assignment{}, ErrPolicyDenied
	}
	switch a.Status {
	case StatusDraft:
		return Assignment{}, core.NewValidationError(errCloseDraft)
	case StatusClosed:
		return Assignment{}, core.NewValidationError(errAlreadyClosed)
	}

	a.Status = StatusClosed
	a.UpdatedAt = time.Now().UTC()
	if a, err = svc.repo.UpdateAssignment(ctx, a, tx); err != nil {
		return Assignment{}, err
	}
	if err = tx.Commit(); err != nil {
		return Assignment{}, errors.Wrap(err, "committing transaction")
	}
	if svc.logger != nil {
		svc.logger.Info(fmt.Sprintf("assignment %s closed", a.ID), actor)
	}
	return a, nil
}

// CreateSubmission records a student's work for an assignment, replacing
// any previous submission for the same (assignment, student) pair.
func (svc *Service) CreateSubmission(ctx context.Context, actor Actor, ns NewSubmission) (Submission, error) {
	tx, err := svc.begin(ctx)
	if err != nil {
		return Submission{}, err
	}
	defer func() { _ = tx.Rollback() }()

	a, err := svc.repo.GetAssignment(ctx, ns.AssignmentID, tx)
	if err != nil {
		return Submission{}, err
	}

	var existing *Submission
	prev, err := svc.repo.GetSubmissionByAssignmentAndStudent(ctx, ns.AssignmentID, ns.StudentID, tx)
	switch err {
	case nil:
		existing = &prev
	case ErrSubmissionNotFound:
	default:
		return Submission{}, err
	}

	res := Resource{Assignment: a, Submission: existing, StudentID: ns.StudentID}
	if !Evaluate(actor, ActionCreateSubmission, res).Allowed() {
		// a denial of a self-submission is bad input (wrong assignment
		// state), not an authorization failure
		if actor.IsStudent() && actor.ID == ns.StudentID {
			if !a.IsOpen() {
				return Submission{}, core.NewValidationError(errAssignmentNotOpen)
			}
			return Submission{}, core.NewValidationError(errSubmissionGraded)
		}
		return Submission{}, ErrPolicyDenied
	}

	// the replacement is built from scratch so no grading fields of a
	// previous (possibly graded) submission leak into the new row; only
	// the row identity survives
	now := time.Now().UTC()
	sub := Submission{
		ID:           uuid.New().String(),
		AssignmentID: a.ID,
		StudentID:    ns.StudentID,
		Content:      ns.Content,
		Attachments:  ns.Attachments,
		SubmittedAt:  now,
		Status:       submissionStatus(now, a),
	}
	if existing != nil {
		sub.ID = existing.ID
	}

	if sub, err = svc.repo.UpsertSubmission(ctx, sub, tx); err != nil {
		return Submission{}, err
	}
	if _, err = svc.refreshAssignment(ctx, a, tx); err != nil {
		return Submission{}, err
	}
	if err = tx.Commit(); err != nil {
		return Submission{}, errors.Wrap(err, "committing transaction")
	}
	return sub, nil
}

// Grade scores a submission and returns the assignment's refreshed stats.
// The policy check, validation, transition and counter recomputation run
// as one transaction; a failed step leaves no partial state behind.
func (svc *Service) Grade(ctx context.Context, actor Actor, submissionID string, in GradeInput) (Stats, error) {
	tx, err := svc.begin(ctx)
	if err != nil {
		return Stats{}, err
	}
	defer func() { _ = tx.Rollback() }()

	sub, err := svc.repo.GetSubmission(ctx, submissionID, tx)
	if err != nil {
		return Stats{}, err
	}
	a, err := svc.repo.GetAssignment(ctx, sub.AssignmentID, tx)
	if err != nil {
		return Stats{}, err
	}

	if !Evaluate(actor, ActionGradeSubmission, Resource{Assignment: a, Submission: &sub}).Allowed() {
		return Stats{}, ErrPolicyDenied
	}
	if in.Score < 0 || in.Score > a.MaxScore {
		return Stats{}, core.NewValidationError(nil, core.FieldError{
			Field: "score",
			Error: fmt.Sprintf("score must be between 0 and %d", a.MaxScore),
		})
	}

	sub = gradeSubmission(sub, in.Score, in.Comment, actor.ID, time.Now().UTC())
	if _, err = svc.repo.UpsertSubmission(ctx, sub, tx); err != nil {
		return Stats{}, err
	}

	subs, err := svc.refreshAssignment(ctx, a, tx)
	if err != nil {
		return Stats{}, err
	}
	if err = tx.Commit(); err != nil {
		return Stats{}, errors.Wrap(err, "committing transaction")
	}

	if svc.logger != nil {
		svc.logger.Info(
			fmt.Sprintf("submission %s graded %d/%d", sub.ID, sub.Score, a.MaxScore), actor)
	}
	return Summarize(subs, a.MaxScore), nil
}

// GetSubmission returns one submission, policy permitting.
func (svc *Service) GetSubmission(ctx context.Context, actor Actor, id string) (Submission, error) {
	sub, err := svc.repo.GetSubmission(ctx, id)
	if err != nil {
		return Submission{}, err
	}
	if !Evaluate(actor, ActionReadSubmission, Resource{Submission: &sub}).Allowed() {
		return Submission{}, ErrPolicyDenied
	}
	return sub, nil
}

// ListSubmissions returns an assignment's submissions for its owner.
func (svc *Service) ListSubmissions(ctx context.Context, actor Actor, assignmentID string) ([]Submission, error) {
	a, err := svc.repo.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if !Evaluate(actor, ActionListSubmissions, Resource{Assignment: a}).Allowed() {
		return nil, ErrPolicyDenied
	}
	return svc.repo.ListSubmissionsByAssignment(ctx, assignmentID)
}

// AssignmentStats summarizes an assignment's submission set for its owner.
// Assignment and submissions are read in one transaction so the reported
// counts cannot straddle a concurrent grading.
func (svc *Service) AssignmentStats(ctx context.Context, actor Actor, assignmentID string) (Stats, error) {
	tx, err := svc.begin(ctx)
	if err != nil {
		return Stats{}, err
	}
	defer func() { _ = tx.Rollback() }()

	a, err := svc.repo.GetAssignment(ctx, assignmentID, tx)
	if err != nil {
		return Stats{}, err
	}
	if !Evaluate(actor, ActionReadAssignmentStats, Resource{Assignment: a}).Allowed() {
		return Stats{}, ErrPolicyDenied
	}
	subs, err := svc.repo.ListSubmissionsByAssignment(ctx, assignmentID, tx)
	if err != nil {
		return Stats{}, err
	}
	if err = tx.Commit(); err != nil {
		return Stats{}, errors.Wrap(err, "committing transaction")
	}
	return Summarize(subs, a.MaxScore), nil
}

// refreshAssignment recomputes the cached counters and derived status by
// re-querying the submission set within the caller's transaction, and
// returns that set.
func (svc *Service) refreshAssignment(ctx context.Context, a Assignment, exec core.DBExecutor) ([]Submission, error) {
	subs, err := svc.repo.ListSubmissionsByAssignment(ctx, a.ID, exec)
	if err != nil {
		return nil, err
	}
	submitted, graded := countSubmissions(subs)
	status := deriveStatus(a.Status, submitted, graded)
	if err = svc.repo.UpdateAssignmentCounters(ctx, a.ID, submitted, graded, status, exec); err != nil {
		return nil, err
	}
	return subs, nil
}
