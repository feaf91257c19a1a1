package assignment

// Stats summarizes grading progress and results for one assignment.
type Stats struct {
	AvgScore     float64 `json:"avg_score"`
	MaxObserved  int     `json:"max_observed"`
	MinObserved  int     `json:"min_observed"`
	PassRate     float64 `json:"pass_rate"` // percentage, inclusive 60% threshold
	Distribution [5]int  `json:"distribution"`
	GradedCount  int     `json:"graded_count"`
	Total        int     `json:"total"`
}

// Summarize aggregates an assignment's submissions into Stats. Pure and
// order-independent: any permutation of subs yields the same result.
// Ungraded submissions only count towards Total.
func Summarize(subs []Submission, maxScore int) Stats {
	st := Stats{Total: len(subs)}

	var sum, passed int
	for _, s := range subs {
		if !s.IsGraded() {
			continue
		}
		if st.GradedCount == 0 {
			st.MaxObserved, st.MinObserved = s.Score, s.Score
		} else {
			if s.Score > st.MaxObserved {
				st.MaxObserved = s.Score
			}
			if s.Score < st.MinObserved {
				st.MinObserved = s.Score
			}
		}
		st.GradedCount++
		sum += s.Score
		// integer arithmetic keeps boundary scores exact; a score at
		// exactly 60% of maxScore passes
		if 10*s.Score >= 6*maxScore {
			passed++
		}
		st.Distribution[bucket(s.Score, maxScore)]++
	}

	if st.GradedCount == 0 {
		return st
	}
	st.AvgScore = float64(sum) / float64(st.GradedCount)
	st.PassRate = 100 * float64(passed) / float64(st.GradedCount)
	return st
}

// bucket maps a score to its distribution slot, checked top-down:
// excellent >= 90%, good >= 80%, average >= 70%, passing >= 60%,
// failing below that.
func bucket(score, maxScore int) int {
	switch {
	case 10*score >= 9*maxScore:
		return 0
	case 10*score >= 8*maxScore:
		return 1
	case 10*score >= 7*maxScore:
		return 2
	case 10*score >= 6*maxScore:
		return 3
	default:
		return 4
	}
}
