package assignment

import "time"

// submissionStatus labels a (re)submission from its timestamp. The label
// is recomputed on every upsert since the timestamp it derives from is
// replaced too.
func submissionStatus(submittedAt time.Time, a Assignment) SubmissionStatus {
	if a.HasDeadline() && submittedAt.After(a.Deadline) {
		return SubmissionLate
	}
	return SubmissionSubmitted
}

// gradeSubmission applies the graded transition. Re-grading is idempotent:
// it always overwrites score, comment, gradedAt and gradedBy. There is no
// transition back out of graded.
func gradeSubmission(sub Submission, score int, comment, gradedBy string, at time.Time) Submission {
	sub.Status = SubmissionGraded
	sub.Score = score
	sub.Comment = comment
	sub.GradedAt = at
	sub.GradedBy = gradedBy
	return sub
}

// countSubmissions tallies a freshly queried submission set.
func countSubmissions(subs []Submission) (submitted, graded int) {
	for _, s := range subs {
		submitted++
		if s.IsGraded() {
			graded++
		}
	}
	return submitted, graded
}

// deriveStatus recomputes an assignment's status from a fresh count over
// its submissions. Counts are re-queried, never incremented, so concurrent
// writers cannot drift the cached counters. Draft only ends by explicit
// publish; a closed assignment reopens to grading when a new submission
// lands.
func deriveStatus(current Status, submitted, graded int) Status {
	if current == StatusDraft {
		return StatusDraft
	}
	switch {
	case submitted == 0:
		return StatusOpen
	case graded < submitted:
		return StatusGrading
	default:
		return StatusClosed
	}
}
