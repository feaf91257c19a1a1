package assignment

import "testing"

func Test_Evaluate(t *testing.T) {
	owner := Actor{ID: "t1", Role: RoleTeacher}
	otherTeacher := Actor{ID: "t2", Role: RoleTeacher}
	studentA := Actor{ID: "s1", Role: RoleStudent}
	studentB := Actor{ID: "s2", Role: RoleStudent}
	admin := Actor{ID: "adm", Role: RoleAdmin}

	open := Assignment{ID: "a1", OwnerID: owner.ID, MaxScore: 100, Status: StatusOpen}
	draft := Assignment{ID: "a2", OwnerID: owner.ID, MaxScore: 100, Status: StatusDraft}
	closed := Assignment{ID: "a3", OwnerID: owner.ID, MaxScore: 100, Status: StatusClosed}

	subA := Submission{ID: "sub1", AssignmentID: open.ID, StudentID: studentA.ID, Status: SubmissionSubmitted}
	gradedA := Submission{ID: "sub1", AssignmentID: open.ID, StudentID: studentA.ID, Status: SubmissionGraded, Score: 80}

	tests := []struct {
		name   string
		actor  Actor
		action Action
		res    Resource
		want   Decision
	}{
		// rule 1: admin bypass
		{name: "admin reads any submission", actor: admin, action: ActionReadSubmission, res: Resource{Assignment: open, Submission: &subA}, want: Allow},
		{name: "admin grades any submission", actor: admin, action: ActionGradeSubmission, res: Resource{Assignment: open, Submission: &subA}, want: Allow},
		{name: "admin submits over a graded submission", actor: admin, action: ActionCreateSubmission, res: Resource{Assignment: closed, Submission: &gradedA, StudentID: studentB.ID}, want: Allow},

		// rule 2: students read/update their own submissions only
		{name: "student reads own submission", actor: studentA, action: ActionReadSubmission, res: Resource{Assignment: open, Submission: &subA}, want: Allow},
		{name: "student reads another student's submission", actor: studentB, action: ActionReadSubmission, res: Resource{Assignment: open, Submission: &subA}, want: Deny},
		{name: "student updates own submission", actor: studentA, action: ActionUpdateSubmission, res: Resource{Assignment: open, Submission: &subA}, want: Allow},
		{name: "student updates another student's submission", actor: studentB, action: ActionUpdateSubmission, res: Resource{Assignment: open, Submission: &subA}, want: Deny},
		{name: "teacher reads a submission", actor: owner, action: ActionReadSubmission, res: Resource{Assignment: open, Submission: &subA}, want: Deny},

		// rule 3: create
		{name: "first submission to an open assignment", actor: studentA, action: ActionCreateSubmission, res: Resource{Assignment: open, StudentID: studentA.ID}, want: Allow},
		{name: "resubmission before grading", actor: studentA, action: ActionCreateSubmission, res: Resource{Assignment: open, Submission: &subA, StudentID: studentA.ID}, want: Allow},
		{name: "resubmission after grading", actor: studentA, action: ActionCreateSubmission, res: Resource{Assignment: open, Submission: &gradedA, StudentID: studentA.ID}, want: Deny},
		{name: "submission to a draft assignment", actor: studentA, action: ActionCreateSubmission, res: Resource{Assignment: draft, StudentID: studentA.ID}, want: Deny},
		{name: "submission to a closed assignment", actor: studentA, action: ActionCreateSubmission, res: Resource{Assignment: closed, StudentID: studentA.ID}, want: Deny},
		{name: "submission on behalf of another student", actor: studentB, action: ActionCreateSubmission, res: Resource{Assignment: open, StudentID: studentA.ID}, want: Deny},
		{name: "teacher submits", actor: owner, action: ActionCreateSubmission, res: Resource{Assignment: open, StudentID: owner.ID}, want: Deny},

		// rule 4: owner-scoped teacher capabilities
		{name: "owner grades", actor: owner, action: ActionGradeSubmission, res: Resource{Assignment: open, Submission: &subA}, want: Allow},
		{name: "non-owner teacher grades", actor: otherTeacher, action: ActionGradeSubmission, res: Resource{Assignment: open, Submission: &subA}, want: Deny},
		{name: "student grades", actor: studentA, action: ActionGradeSubmission, res: Resource{Assignment: open, Submission: &subA}, want: Deny},
		{name: "owner reads stats", actor: owner, action: ActionReadAssignmentStats, res: Resource{Assignment: open}, want: Allow},
		{name: "non-owner teacher reads stats", actor: otherTeacher, action: ActionReadAssignmentStats, res: Resource{Assignment: open}, want: Deny},
		{name: "student reads stats", actor: studentA, action: ActionReadAssignmentStats, res: Resource{Assignment: open}, want: Deny},
		{name: "owner lists submissions", actor: owner, action: ActionListSubmissions, res: Resource{Assignment: open}, want: Allow},
		{name: "owner publishes", actor: owner, action: ActionPublishAssignment, res: Resource{Assignment: draft}, want: Allow},
		{name: "non-owner teacher closes", actor: otherTeacher, action: ActionCloseAssignment, res: Resource{Assignment: open}, want: Deny},

		// rule 5: default deny
		{name: "unknown action", actor: owner, action: Action("drop_tables"), res: Resource{Assignment: open}, want: Deny},
		{name: "unknown role", actor: Actor{ID: "x", Role: Role("parent")}, action: ActionReadSubmission, res: Resource{Assignment: open, Submission: &subA}, want: Deny},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.actor, tt.action, tt.res); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}
