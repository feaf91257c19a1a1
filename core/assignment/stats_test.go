package assignment

import (
	"math/rand"
	"reflect"
	"testing"
	"time"
)

func graded(score int) Submission {
	return Submission{
		Status:   SubmissionGraded,
		Score:    score,
		GradedAt: time.Now().UTC(),
		GradedBy: "t1",
	}
}

func ungraded() Submission {
	return Submission{Status: SubmissionSubmitted}
}

func Test_Summarize(t *testing.T) {
	tests := []struct {
		name     string
		subs     []Submission
		maxScore int
		want     Stats
	}{
		{
			name:     "empty set",
			maxScore: 100,
			want:     Stats{},
		},
		{
			name:     "no graded submissions",
			subs:     []Submission{ungraded(), ungraded(), ungraded()},
			maxScore: 100,
			want:     Stats{Total: 3},
		},
		{
			name:     "mixed set",
			subs:     []Submission{graded(85), graded(92), graded(55), graded(70), ungraded()},
			maxScore: 100,
			want: Stats{
				AvgScore:     75.5,
				MaxObserved:  92,
				MinObserved:  55,
				PassRate:     75, // 85, 92 and 70 qualify
				Distribution: [5]int{1, 1, 1, 0, 1},
				GradedCount:  4,
				Total:        5,
			},
		},
		{
			name:     "score exactly at 60% passes",
			subs:     []Submission{graded(60)},
			maxScore: 100,
			want: Stats{
				AvgScore:     60,
				MaxObserved:  60,
				MinObserved:  60,
				PassRate:     100,
				Distribution: [5]int{0, 0, 0, 1, 0},
				GradedCount:  1,
				Total:        1,
			},
		},
		{
			name:     "score exactly at 70% lands in the average bucket",
			subs:     []Submission{graded(70)},
			maxScore: 100,
			want: Stats{
				AvgScore:     70,
				MaxObserved:  70,
				MinObserved:  70,
				PassRate:     100,
				Distribution: [5]int{0, 0, 1, 0, 0},
				GradedCount:  1,
				Total:        1,
			},
		},
		{
			name:     "non-decimal max score thresholds stay exact",
			subs:     []Submission{graded(5), graded(4)}, // 60% of 7 is 4.2
			maxScore: 7,
			want: Stats{
				AvgScore:     4.5,
				MaxObserved:  5,
				MinObserved:  4,
				PassRate:     50,
				Distribution: [5]int{0, 0, 1, 0, 1},
				GradedCount:  2,
				Total:        2,
			},
		},
		{
			name:     "all failing",
			subs:     []Submission{graded(0), graded(10)},
			maxScore: 100,
			want: Stats{
				AvgScore:     5,
				MaxObserved:  10,
				MinObserved:  0,
				PassRate:     0,
				Distribution: [5]int{0, 0, 0, 0, 2},
				GradedCount:  2,
				Total:        2,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.subs, tt.maxScore)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}

			// hard invariants, for any input
			var distSum int
			for _, n := range got.Distribution {
				distSum += n
			}
			if distSum != got.GradedCount {
				t.Errorf("sum(Distribution) = %d, want GradedCount %d", distSum, got.GradedCount)
			}
			if got.GradedCount > got.Total {
				t.Errorf("GradedCount %d > Total %d", got.GradedCount, got.Total)
			}
		})
	}
}

func Test_Summarize_orderIndependent(t *testing.T) {
	subs := []Submission{graded(85), graded(92), graded(55), graded(70), ungraded(), graded(60)}
	want := Summarize(subs, 100)

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := append([]Submission(nil), subs...)
		rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		if got := Summarize(shuffled, 100); !reflect.DeepEqual(got, want) {
			t.Fatalf("Summarize() depends on input order: got %+v, want %+v", got, want)
		}
	}
}
