package rating

import (
	"reflect"
	"testing"
	"time"
)

func TestTracker_ScoreLifecycle(t *testing.T) {
	tr := NewTracker()

	if _, ok := tr.CurrentScore(); ok {
		t.Fatal("new tracker should have no score")
	}
	if tr.HasPendingRating("a joke") {
		t.Error("no pending rating without a score")
	}

	tr.SetCurrentScore(3)
	if score, ok := tr.CurrentScore(); !ok || score != 3 {
		t.Errorf("expected score 3, got %d (%v)", score, ok)
	}
	if !tr.HasPendingRating("a joke") {
		t.Error("expected pending rating")
	}
	if tr.HasPendingRating("") {
		t.Error("empty joke can never be pending")
	}

	tr.ResetScore()
	if _, ok := tr.CurrentScore(); ok {
		t.Error("expected score to be cleared")
	}
}

func TestTracker_SaveRating(t *testing.T) {
	tr := NewTracker()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return fixed }

	first := tr.SaveRating("first joke", 3)
	tr.SaveRating("second joke", 1)

	if first.ID == "" {
		t.Error("expected report id")
	}
	if !first.Date.Equal(fixed) {
		t.Errorf("expected date %v, got %v", fixed, first.Date)
	}

	reports := tr.AllReports()
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].Joke != "first joke" || reports[0].Score != 3 {
		t.Errorf("unexpected first report: %+v", reports[0])
	}
	if reports[1].Joke != "second joke" || reports[1].Score != 1 {
		t.Errorf("unexpected second report: %+v", reports[1])
	}
}

func TestTracker_AllReportsIsDefensiveCopy(t *testing.T) {
	tr := NewTracker()
	tr.SaveRating("joke", 2)

	first := tr.AllReports()
	second := tr.AllReports()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected equal sequences, got %v and %v", first, second)
	}

	first[0].Joke = "mutated"
	if tr.AllReports()[0].Joke != "joke" {
		t.Error("mutating the returned slice must not change the tracker")
	}
}

func TestValidScore(t *testing.T) {
	for score, want := range map[int]bool{0: false, 1: true, 2: true, 3: true, 4: false, -1: false} {
		if got := ValidScore(score); got != want {
			t.Errorf("ValidScore(%d) = %v, want %v", score, got, want)
		}
	}
}
