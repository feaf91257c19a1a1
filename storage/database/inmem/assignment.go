package inmemdb

import (
	"context"
	"sort"

	"github.com/yaohuihuang316-coder/darasa/core"
	"github.com/yaohuihuang316-coder/darasa/core/assignment"
)

type assignmentRepository struct {
	assignments *assignmentTable
	submissions *submissionTable
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) *assignmentRepository {
	return &assignmentRepository{
		assignments: db.assignment,
		submissions: db.submission,
	}
}

func copySubmission(sub assignment.Submission) assignment.Submission {
	if sub.Attachments != nil {
		sub.Attachments = append([]string(nil), sub.Attachments...)
	}
	return sub
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment, exec ...core.DBExecutor) (assignment.Assignment, error) {
	repo.assignments.Lock()
	defer repo.assignments.Unlock()

	repo.assignments.table[a.ID] = &a
	return a, nil
}

func (repo *assignmentRepository) GetAssignment(ctx context.Context, id string, exec ...core.DBExecutor) (assignment.Assignment, error) {
	repo.assignments.RLock()
	defer repo.assignments.RUnlock()

	if a, ok := repo.assignments.table[id]; ok {
		return *a, nil
	}
	return assignment.Assignment{}, assignment.ErrAssignmentNotFound
}

func (repo *assignmentRepository) UpdateAssignment(ctx context.Context, a assignment.Assignment, exec ...core.DBExecutor) (assignment.Assignment, error) {
	repo.assignments.Lock()
	defer repo.assignments.Unlock()

	if _, ok := repo.assignments.table[a.ID]; !ok {
		return assignment.Assignment{}, assignment.ErrAssignmentNotFound
	}
	repo.assignments.table[a.ID] = &a
	return a, nil
}

func (repo *assignmentRepository) UpdateAssignmentCounters(ctx context.Context, id string, submitted, graded int, status assignment.Status, exec ...core.DBExecutor) error {
	repo.assignments.Lock()
	defer repo.assignments.Unlock()

	a, ok := repo.assignments.table[id]
	if !ok {
		return assignment.ErrAssignmentNotFound
	}
	a.SubmittedCount = submitted
	a.GradedCount = graded
	a.Status = status
	return nil
}

func (repo *assignmentRepository) GetSubmission(ctx context.Context, id string, exec ...core.DBExecutor) (assignment.Submission, error) {
	repo.submissions.RLock()
	defer repo.submissions.RUnlock()

	if sub, ok := repo.submissions.table[id]; ok {
		return copySubmission(*sub), nil
	}
	return assignment.Submission{}, assignment.ErrSubmissionNotFound
}

func (repo *assignmentRepository) GetSubmissionByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string, exec ...core.DBExecutor) (assignment.Submission, error) {
	repo.submissions.RLock()
	defer repo.submissions.RUnlock()

	for _, sub := range repo.submissions.table {
		if sub.AssignmentID == assignmentID && sub.StudentID == studentID {
			return copySubmission(*sub), nil
		}
	}
	return assignment.Submission{}, assignment.ErrSubmissionNotFound
}

func (repo *assignmentRepository) ListSubmissionsByAssignment(ctx context.Context, assignmentID string, exec ...core.DBExecutor) ([]assignment.Submission, error) {
	repo.submissions.RLock()
	defer repo.submissions.RUnlock()

	subs := make([]assignment.Submission, 0)
	for _, sub := range repo.submissions.table {
		if sub.AssignmentID == assignmentID {
			subs = append(subs, copySubmission(*sub))
		}
	}
	sort.Slice(subs, func(i, j int) bool {
		if subs[i].SubmittedAt.Equal(subs[j].SubmittedAt) {
			return subs[i].ID < subs[j].ID
		}
		return subs[i].SubmittedAt.Before(subs[j].SubmittedAt)
	})
	return subs, nil
}

func (repo *assignmentRepository) UpsertSubmission(ctx context.Context, sub assignment.Submission, exec ...core.DBExecutor) (assignment.Submission, error) {
	repo.submissions.Lock()
	defer repo.submissions.Unlock()

	// one row per (assignment, student): replace in place whatever the
	// incoming id is
	for id, existing := range repo.submissions.table {
		if existing.AssignmentID == sub.AssignmentID && existing.StudentID == sub.StudentID {
			sub.ID = existing.ID
			stored := copySubmission(sub)
			repo.submissions.table[id] = &stored
			return copySubmission(sub), nil
		}
	}
	stored := copySubmission(sub)
	repo.submissions.table[sub.ID] = &stored
	return copySubmission(sub), nil
}
