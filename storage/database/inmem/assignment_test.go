package inmemdb

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yaohuihuang316-coder/darasa/core/assignment"
)

// Upserting for the same (assignment, student) pair must keep the existing
// row's identity and leave exactly one row, whatever id the caller minted.
func Test_assignmentRepository_UpsertSubmission_keepsRowIdentity(t *testing.T) {
	db, err := Open()
	if err != nil {
		t.Fatalf("Open(): %v", err)
	}
	repo := NewAssignmentRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	first := assignment.Submission{
		ID:           uuid.New().String(),
		AssignmentID: "a1",
		StudentID:    "s1",
		Content:      "first",
		SubmittedAt:  now,
		Status:       assignment.SubmissionSubmitted,
	}
	first, err = repo.UpsertSubmission(ctx, first)
	if err != nil {
		t.Fatalf("UpsertSubmission(): %v", err)
	}

	second := assignment.Submission{
		ID:           uuid.New().String(), // fresh id, same pair
		AssignmentID: "a1",
		StudentID:    "s1",
		Content:      "second",
		SubmittedAt:  now.Add(time.Minute),
		Status:       assignment.SubmissionSubmitted,
	}
	second, err = repo.UpsertSubmission(ctx, second)
	if err != nil {
		t.Fatalf("UpsertSubmission(): %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("returned id = %s, want the existing row's %s", second.ID, first.ID)
	}

	subs, err := repo.ListSubmissionsByAssignment(ctx, "a1")
	if err != nil {
		t.Fatalf("ListSubmissionsByAssignment(): %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("len(subs) = %d, want 1", len(subs))
	}
	if subs[0].ID != first.ID || subs[0].Content != "second" {
		t.Errorf("stored row = %+v", subs[0])
	}

	// a different student gets their own row
	other := assignment.Submission{
		ID:           uuid.New().String(),
		AssignmentID: "a1",
		StudentID:    "s2",
		Content:      "mine",
		SubmittedAt:  now,
		Status:       assignment.SubmissionSubmitted,
	}
	if _, err = repo.UpsertSubmission(ctx, other); err != nil {
		t.Fatalf("UpsertSubmission(): %v", err)
	}
	if subs, _ = repo.ListSubmissionsByAssignment(ctx, "a1"); len(subs) != 2 {
		t.Errorf("len(subs) = %d, want 2", len(subs))
	}
}
