package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/google/uuid"

	"github.com/yaohuihuang316-coder/darasa/core"
	"github.com/yaohuihuang316-coder/darasa/core/assignment"
)

// InitValidators wires the shared validator with an english translator the
// way the API entrypoint does.
func InitValidators() {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(core.Validate, translator)
}

func CreateAssignment(
	t *testing.T,
	repo assignment.Repository,
	ownerID string,
	maxScore int,
	deadline time.Time,
	status assignment.Status,
) assignment.Assignment {
	t.Helper()

	now := time.Now().UTC()
	a := assignment.Assignment{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     "Quadratic equations",
		MaxScore:  maxScore,
		Deadline:  deadline,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	a, err := repo.CreateAssignment(context.Background(), a)
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return a
}

func CreateSubmission(
	t *testing.T,
	repo assignment.Repository,
	a assignment.Assignment,
	studentID, content string,
	submittedAt ...time.Time,
) assignment.Submission {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(submittedAt) > 0 {
		tstamp = submittedAt[0].UTC()
	}
	sub := assignment.Submission{
		ID:           uuid.New().String(),
		AssignmentID: a.ID,
		StudentID:    studentID,
		Content:      content,
		SubmittedAt:  tstamp,
		Status:       assignment.SubmissionSubmitted,
	}
	sub, err := repo.UpsertSubmission(context.Background(), sub)
	if err != nil {
		t.Fatalf("CreateSubmission() failed: %v", err)
	}
	return sub
}
