package assignment

import (
	"time"

	"github.com/yaohuihuang316-coder/darasa/core"
)

// Actor roles. The identity provider authenticates callers; this core only
// consumes the resulting identity and role.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated identity making a request. Not persisted here.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func (a Actor) IsStudent() bool { return a.Role == RoleStudent }
func (a Actor) IsTeacher() bool { return a.Role == RoleTeacher }
func (a Actor) IsAdmin() bool   { return a.Role == RoleAdmin }

// Assignment statuses.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusOpen    Status = "open"
	StatusGrading Status = "grading"
	StatusClosed  Status = "closed"
)

// Submission statuses.
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionLate      SubmissionStatus = "late"
	SubmissionGraded    SubmissionStatus = "graded"
)

type Assignment struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	MaxScore    int       `json:"max_score"`
	Deadline    time.Time `json:"deadline"` // zero time = no deadline
	Status      Status    `json:"status"`

	// cached counters, recomputed from the submission set on every
	// submission mutation; never written by clients
	SubmittedCount int `json:"submitted_count"`
	GradedCount    int `json:"graded_count"`

	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

func (a Assignment) HasDeadline() bool { return !a.Deadline.IsZero() }
func (a Assignment) IsOpen() bool      { return a.Status == StatusOpen }

type Submission struct {
	ID           string           `json:"id"`
	AssignmentID string           `json:"assignment_id"`
	StudentID    string           `json:"student_id"`
	Content      string           `json:"content"`
	Attachments  []string         `json:"attachments,omitempty"` // ordered opaque locators
	SubmittedAt  time.Time        `json:"submitted_at"`          // UTC
	Status       SubmissionStatus `json:"status"`

	// grading fields; all set iff Status == SubmissionGraded
	Score    int       `json:"score,omitempty"`
	Comment  string    `json:"comment,omitempty"`
	GradedAt time.Time `json:"graded_at"`
	GradedBy string    `json:"graded_by,omitempty"`
}

func (s Submission) IsGraded() bool { return s.Status == SubmissionGraded }

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	MaxScore    int       `json:"max_score" validate:"required,gt=0"`
	Deadline    time.Time `json:"deadline"`
}

func (na *NewAssignment) Validate() error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	return core.Validate.Struct(na)
}

// NewSubmission contains a student's work for one assignment. Submitting
// again overwrites the previous submission; it never creates a second row.
type NewSubmission struct {
	AssignmentID string   `json:"assignment_id" validate:"required"`
	StudentID    string   `json:"student_id" validate:"required"`
	Content      string   `json:"content" validate:"required"`
	Attachments  []string `json:"attachments" validate:"omitempty,dive,locator"`
}

func (ns *NewSubmission) Validate() error {
	ns.Content = core.CleanString(ns.Content)
	return core.Validate.Struct(ns)
}

// GradeInput carries a grading request. The score upper bound depends on
// the assignment and is enforced by the service.
type GradeInput struct {
	Score   int    `json:"score" validate:"gte=0"`
	Comment string `json:"comment"`
}

func (gi *GradeInput) Validate() error {
	gi.Comment = core.CleanString(gi.Comment)
	return core.Validate.Struct(gi)
}
