package match

import "testing"

func TestStatus_Terminal(t *testing.T) {
	if StatusPending.Terminal() {
		t.Fatalf("pending must not be terminal")
	}
	for _, s := range []Status{StatusAccepted, StatusRejected, StatusCancelled} {
		if !s.Terminal() {
			t.Fatalf("%s must be terminal", s)
		}
	}
}

func TestStatus_CanTransition(t *testing.T) {
	for _, next := range []Status{StatusAccepted, StatusRejected, StatusCancelled} {
		if !StatusPending.CanTransition(next) {
			t.Fatalf("pending -> %s must be allowed", next)
		}
	}
	if StatusPending.CanTransition(StatusPending) {
		t.Fatalf("pending -> pending must be rejected")
	}
	for _, from := range []Status{StatusAccepted, StatusRejected, StatusCancelled} {
		for _, next := range []Status{StatusPending, StatusAccepted, StatusRejected, StatusCancelled} {
			if from.CanTransition(next) {
				t.Fatalf("%s -> %s must be rejected", from, next)
			}
		}
	}
}
