package assignment

// Action is a capability a caller may request on a resource.
type Action string

const (
	ActionReadSubmission      Action = "read_submission"
	ActionCreateSubmission    Action = "create_submission"
	ActionUpdateSubmission    Action = "update_submission"
	ActionGradeSubmission     Action = "grade_submission"
	ActionReadAssignmentStats Action = "read_assignment_stats"
	ActionListSubmissions     Action = "list_submissions"
	ActionPublishAssignment   Action = "publish_assignment"
	ActionCloseAssignment     Action = "close_assignment"
)

// Decision is the outcome of a policy evaluation.
type Decision string

const (
	Allow Decision = "allow"
	Deny  Decision = "deny"
)

func (d Decision) Allowed() bool { return d == Allow }

// Resource is the snapshot a policy decision is evaluated against.
// Submission is nil when none exists yet; StudentID names the target
// student of a create request.
type Resource struct {
	Assignment Assignment
	Submission *Submission
	StudentID  string
}

// Evaluate decides whether actor may perform action on res. Pure and
// deterministic for a given resource snapshot; rules are checked in order
// and the first match wins, everything unmatched is denied.
func Evaluate(actor Actor, action Action, res Resource) Decision {
	// admins bypass everything
	if actor.IsAdmin() {
		return Allow
	}

	switch action {
	case ActionReadSubmission, ActionUpdateSubmission:
		// students act on their own submissions only
		if actor.IsStudent() && res.Submission != nil && actor.ID == res.Submission.StudentID {
			return Allow
		}

	case ActionCreateSubmission:
		// students submit for themselves, while the assignment accepts
		// submissions, and never over an already graded one
		if !actor.IsStudent() || actor.ID != res.StudentID {
			return Deny
		}
		if !res.Assignment.IsOpen() {
			return Deny
		}
		if res.Submission != nil && res.Submission.IsGraded() {
			return Deny
		}
		return Allow

	case ActionGradeSubmission, ActionReadAssignmentStats, ActionListSubmissions,
		ActionPublishAssignment, ActionCloseAssignment:
		// owner-scoped teacher capabilities
		if actor.IsTeacher() && actor.ID == res.Assignment.OwnerID {
			return Allow
		}
	}

	return Deny
}
