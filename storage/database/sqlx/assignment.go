package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/yaohuihuang316-coder/darasa/core"
	"github.com/yaohuihuang316-coder/darasa/core/assignment"
)

type (
	assignmentRow struct {
		ID             string      `db:"id"`
		OwnerID        string      `db:"owner_id"`
		Title          string      `db:"title"`
		Description    null.String `db:"description"`
		MaxScore       int         `db:"max_score"`
		Deadline       null.Time   `db:"deadline"`
		Status         string      `db:"status"`
		SubmittedCount int         `db:"submitted_count"`
		GradedCount    int         `db:"graded_count"`
		CreatedAt      time.Time   `db:"created_at"`
		UpdatedAt      time.Time   `db:"updated_at"`
	}

	submissionRow struct {
		ID           string         `db:"id"`
		AssignmentID string         `db:"assignment_id"`
		StudentID    string         `db:"student_id"`
		Content      string         `db:"content"`
		Attachments  pq.StringArray `db:"attachments"`
		SubmittedAt  time.Time      `db:"submitted_at"`
		Status       string         `db:"status"`
		Score        null.Int       `db:"score"`
		Comment      null.String    `db:"comment"`
		GradedAt     null.Time      `db:"graded_at"`
		GradedBy     null.String    `db:"graded_by"`
	}
)

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *sqlx.DB) *assignmentRepository {
	return &assignmentRepository{db: db}
}

func (repo assignmentRepository) getExec(svcExec []core.DBExecutor) sqlx.ExtContext {
	if len(svcExec) > 0 {
		if ext, ok := svcExec[0].(sqlx.ExtContext); ok {
			return ext
		}
	}
	return repo.db
}

func (repo assignmentRepository) rowify(a assignment.Assignment) assignmentRow {
	return assignmentRow{
		ID:             a.ID,
		OwnerID:        a.OwnerID,
		Title:          a.Title,
		Description:    null.NewString(a.Description, a.Description != ""),
		MaxScore:       a.MaxScore,
		Deadline:       null.NewTime(a.Deadline.UTC(), !a.Deadline.IsZero()),
		Status:         string(a.Status),
		SubmittedCount: a.SubmittedCount,
		GradedCount:    a.GradedCount,
		CreatedAt:      a.CreatedAt.UTC(),
		UpdatedAt:      a.UpdatedAt.UTC(),
	}
}

func (repo assignmentRepository) unrowify(row assignmentRow) assignment.Assignment {
	return assignment.Assignment{
		ID:             row.ID,
		OwnerID:        row.OwnerID,
		Title:          row.Title,
		Description:    row.Description.String,
		MaxScore:       row.MaxScore,
		Deadline:       row.Deadline.Time,
		Status:         assignment.Status(row.Status),
		SubmittedCount: row.SubmittedCount,
		GradedCount:    row.GradedCount,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func (repo assignmentRepository) rowifySub(s assignment.Submission) submissionRow {
	return submissionRow{
		ID:           s.ID,
		AssignmentID: s.AssignmentID,
		StudentID:    s.StudentID,
		Content:      s.Content,
		Attachments:  pq.StringArray(s.Attachments),
		SubmittedAt:  s.SubmittedAt.UTC(),
		Status:       string(s.Status),
		Score:        null.NewInt(s.Score, s.IsGraded()),
		Comment:      null.NewString(s.Comment, s.IsGraded() && s.Comment != ""),
		GradedAt:     null.NewTime(s.GradedAt.UTC(), s.IsGraded()),
		GradedBy:     null.NewString(s.GradedBy, s.IsGraded()),
	}
}

func (repo assignmentRepository) unrowifySub(row submissionRow) assignment.Submission {
	return assignment.Submission{
		ID:           row.ID,
		AssignmentID: row.AssignmentID,
		StudentID:    row.StudentID,
		Content:      row.Content,
		Attachments:  []string(row.Attachments),
		SubmittedAt:  row.SubmittedAt,
		Status:       assignment.SubmissionStatus(row.Status),
		Score:        row.Score.Int,
		Comment:      row.Comment.String,
		GradedAt:     row.GradedAt.Time,
		GradedBy:     row.GradedBy.String,
	}
}

// trapErr maps "no rows" to notFound and serialization failures to
// assignment.ErrConcurrencyConflict; anything else gets wrapped.
func (repo assignmentRepository) trapErr(err error, notFound error, msg string) error {
	if err == sql.ErrNoRows {
		return notFound
	}
	if pqErr, ok := errors.Cause(err).(*pq.Error); ok {
		switch pqErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return assignment.ErrConcurrencyConflict
		}
	}
	return errors.Wrap(err, msg)
}

func (repo assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment, exec ...core.DBExecutor) (assignment.Assignment, error) {
	row := repo.rowify(a)
	_, err := sqlx.NamedExecContext(ctx, repo.getExec(exec), `
		INSERT INTO assignment (id, owner_id, title, description, max_score, deadline, status, submitted_count, graded_count, created_at, updated_at)
		VALUES (:id, :owner_id, :title, :description, :max_score, :deadline, :status, :submitted_count, :graded_count, :created_at, :updated_at)`,
		row,
	)
	if err != nil {
		return assignment.Assignment{}, repo.trapErr(err, nil, "inserting assignment")
	}
	return repo.unrowify(row), nil
}

func (repo assignmentRepository) GetAssignment(ctx context.Context, id string, exec ...core.DBExecutor) (assignment.Assignment, error) {
	var row assignmentRow
	err := sqlx.GetContext(ctx, repo.getExec(exec), &row, `SELECT * FROM assignment WHERE id = $1`, id)
	if err != nil {
		return assignment.Assignment{}, repo.trapErr(err, assignment.ErrAssignmentNotFound, "finding assignment")
	}
	return repo.unrowify(row), nil
}

func (repo assignmentRepository) UpdateAssignment(ctx context.Context, a assignment.Assignment, exec ...core.DBExecutor) (assignment.Assignment, error) {
	row := repo.rowify(a)
	_, err := sqlx.NamedExecContext(ctx, repo.getExec(exec), `
		UPDATE assignment
		SET title = :title, description = :description, max_score = :max_score, deadline = :deadline,
		    status = :status, updated_at = :updated_at
		WHERE id = :id`,
		row,
	)
	if err != nil {
		return assignment.Assignment{}, repo.trapErr(err, nil, "updating assignment")
	}
	return repo.unrowify(row), nil
}

func (repo assignmentRepository) UpdateAssignmentCounters(ctx context.Context, id string, submitted, graded int, status assignment.Status, exec ...core.DBExecutor) error {
	ext := repo.getExec(exec)
	_, err := ext.ExecContext(ctx, `
		UPDATE assignment
		SET submitted_count = $2, graded_count = $3, status = $4, updated_at = $5
		WHERE id = $1`,
		id, submitted, graded, string(status), time.Now().UTC(),
	)
	if err != nil {
		return repo.trapErr(err, nil, "updating assignment counters")
	}
	return nil
}

func (repo assignmentRepository) GetSubmission(ctx context.Context, id string, exec ...core.DBExecutor) (assignment.Submission, error) {
	var row submissionRow
	err := sqlx.GetContext(ctx, repo.getExec(exec), &row, `SELECT * FROM submission WHERE id = $1`, id)
	if err != nil {
		return assignment.Submission{}, repo.trapErr(err, assignment.ErrSubmissionNotFound, "finding submission")
	}
	return repo.unrowifySub(row), nil
}

func (repo assignmentRepository) GetSubmissionByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string, exec ...core.DBExecutor) (assignment.Submission, error) {
	var row submissionRow
	err := sqlx.GetContext(ctx, repo.getExec(exec), &row,
		`SELECT * FROM submission WHERE assignment_id = $1 AND student_id = $2`, assignmentID, studentID)
	if err != nil {
		return assignment.Submission{}, repo.trapErr(err, assignment.ErrSubmissionNotFound, "finding submission by assignment and student")
	}
	return repo.unrowifySub(row), nil
}

func (repo assignmentRepository) ListSubmissionsByAssignment(ctx context.Context, assignmentID string, exec ...core.DBExecutor) ([]assignment.Submission, error) {
	var rows []submissionRow
	err := sqlx.SelectContext(ctx, repo.getExec(exec), &rows,
		`SELECT * FROM submission WHERE assignment_id = $1 ORDER BY submitted_at, id`, assignmentID)
	if err != nil {
		return nil, repo.trapErr(err, nil, "listing submissions")
	}
	subs := make([]assignment.Submission, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, repo.unrowifySub(row))
	}
	return subs, nil
}

// UpsertSubmission writes a submission, replacing the row for the same
// (assignment, student) pair if one exists; the unique constraint makes the
// one-row-per-pair invariant hold even under concurrent submitters. On
// conflict the existing row keeps its id, so the stored id is read back.
func (repo assignmentRepository) UpsertSubmission(ctx context.Context, sub assignment.Submission, exec ...core.DBExecutor) (assignment.Submission, error) {
	row := repo.rowifySub(sub)
	rows, err := sqlx.NamedQueryContext(ctx, repo.getExec(exec), `
		INSERT INTO submission (id, assignment_id, student_id, content, attachments, submitted_at, status, score, comment, graded_at, graded_by)
		VALUES (:id, :assignment_id, :student_id, :content, :attachments, :submitted_at, :status, :score, :comment, :graded_at, :graded_by)
		ON CONFLICT (assignment_id, student_id) DO UPDATE
		SET content = EXCLUDED.content, attachments = EXCLUDED.attachments, submitted_at = EXCLUDED.submitted_at,
		    status = EXCLUDED.status, score = EXCLUDED.score, comment = EXCLUDED.comment,
		    graded_at = EXCLUDED.graded_at, graded_by = EXCLUDED.graded_by
		RETURNING id`,
		row,
	)
	if err != nil {
		return assignment.Submission{}, repo.trapErr(err, nil, "upserting submission")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err = rows.Scan(&row.ID); err != nil {
			return assignment.Submission{}, errors.Wrap(err, "reading upserted submission id")
		}
	}
	if err = rows.Err(); err != nil {
		return assignment.Submission{}, repo.trapErr(err, nil, "upserting submission")
	}
	return repo.unrowifySub(row), nil
}
