package application

import "testing"

func TestCanTransition_AllowedMoves(t *testing.T) {
	cases := []struct {
		from, to Status
	}{
		{StatusApplied, StatusReviewing},
		{StatusApplied, StatusShortlisted},
		{StatusApplied, StatusRejected},
		{StatusReviewing, StatusShortlisted},
		{StatusReviewing, StatusRejected},
		{StatusShortlisted, StatusHired},
		{StatusShortlisted, StatusRejected},
		{StatusInterviewScheduled, StatusHired},
		{StatusInterviewScheduled, StatusRejected},
	}
	for _, c := range cases {
		if !CanTransition(c.from, c.to) {
			t.Errorf("expected %s -> %s to be allowed", c.from, c.to)
		}
	}
}

func TestCanTransition_BlockedMoves(t *testing.T) {
	cases := []struct {
		from, to Status
	}{
		{StatusHired, StatusApplied},
		{StatusHired, StatusRejected},
		{StatusRejected, StatusReviewing},
		{StatusRejected, StatusHired},
		{StatusReviewing, StatusApplied},
		{StatusShortlisted, StatusReviewing},
		{StatusApplied, StatusHired},
	}
	for _, c := range cases {
		if CanTransition(c.from, c.to) {
			t.Errorf("expected %s -> %s to be blocked", c.from, c.to)
		}
	}
}

func TestCanTransition_SameStatusIsNoop(t *testing.T) {
	for from := range transitions {
		if !CanTransition(from, from) {
			t.Errorf("expected %s -> %s to be allowed", from, from)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusApplied, StatusReviewing, StatusShortlisted, StatusInterviewScheduled, StatusRejected, StatusHired} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if Status("Pending").Valid() {
		t.Errorf("expected Pending to be invalid")
	}
	if Status("").Valid() {
		t.Errorf("expected empty status to be invalid")
	}
}

func TestStatusTerminal(t *testing.T) {
	if !StatusRejected.Terminal() || !StatusHired.Terminal() {
		t.Fatalf("expected Rejected and Hired to be terminal")
	}
	if StatusApplied.Terminal() || StatusInterviewScheduled.Terminal() {
		t.Fatalf("expected non-terminal statuses")
	}
}
