package booking

import "testing"

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected"} {
		if _, err := ParseStatus(s); err != nil {
			t.Fatalf("expected %q to parse: %v", s, err)
		}
	}
	if _, err := ParseStatus("draft"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestCanTransition(t *testing.T) {
	if !CanTransition(StatusPending, StatusApproved) {
		t.Fatalf("pending -> approved must be allowed")
	}
	if !CanTransition(StatusPending, StatusRejected) {
		t.Fatalf("pending -> rejected must be allowed")
	}
	if !CanTransition(StatusApproved, StatusApproved) {
		t.Fatalf("re-approving is a no-op write, not an error")
	}
	if CanTransition(StatusApproved, StatusPending) {
		t.Fatalf("nothing returns to pending")
	}
	if CanTransition(StatusRejected, StatusApproved) {
		t.Fatalf("rejected -> approved must not be allowed")
	}
}
