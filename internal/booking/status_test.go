package booking

import "testing"

func TestCanTransition_LegalEdges(t *testing.T) {
	legal := []struct{ from, to Status }{
		{StatusOpen, StatusPending},
		{StatusOpen, StatusCancelled},
		{StatusPending, StatusAccepted},
		{StatusPending, StatusRejected},
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusDeclined},
		{StatusPending, StatusCancelled},
		{StatusAccepted, StatusConfirmed},
		{StatusAccepted, StatusDeclined},
		{StatusAccepted, StatusCancelled},
	}
	for _, e := range legal {
		if !CanTransition(e.from, e.to) {
			t.Fatalf("expected %s -> %s to be legal", e.from, e.to)
		}
	}
}

func TestCanTransition_IllegalEdges(t *testing.T) {
	illegal := []struct{ from, to Status }{
		{StatusCancelled, StatusConfirmed},
		{StatusRejected, StatusPending},
		{StatusDeclined, StatusOpen},
		{StatusConfirmed, StatusCancelled},
		{StatusOpen, StatusConfirmed},
		{StatusOpen, StatusAccepted},
		{StatusPending, StatusOpen},
	}
	for _, e := range illegal {
		if CanTransition(e.from, e.to) {
			t.Fatalf("expected %s -> %s to be illegal", e.from, e.to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []Status{StatusRejected, StatusConfirmed, StatusDeclined, StatusCancelled} {
		if !IsTerminal(s) {
			t.Fatalf("expected %s to be terminal", s)
		}
	}
	for _, s := range []Status{StatusOpen, StatusPending, StatusAccepted} {
		if IsTerminal(s) {
			t.Fatalf("expected %s not to be terminal", s)
		}
	}
}

func TestParseStatus_RejectsUnknown(t *testing.T) {
	if _, err := ParseStatus("ARCHIVED"); err == nil {
		t.Fatalf("expected error")
	}
	if s, err := ParseStatus("CONFIRMED"); err != nil || s != StatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %v %v", s, err)
	}
}
