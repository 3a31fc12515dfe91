package booking

import (
	"testing"

	"stagebook/internal/plan"
)

func workflowErr(t *testing.T, err error) WorkflowError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error")
	}
	we, ok := err.(WorkflowError)
	if !ok {
		t.Fatalf("expected WorkflowError, got %T: %v", err, err)
	}
	return we
}

func TestAttemptTransition_IllegalEdge(t *testing.T) {
	_, err := AttemptTransition(TransitionInput{
		Current:      StatusCancelled,
		Proposed:     StatusConfirmed,
		Actor:        Actor{Role: RoleAdmin},
		OwnerVenueID: "v1",
		Quota:        plan.ForTier("premium"),
	})
	if we := workflowErr(t, err); we.Code != CodeIllegalTransition {
		t.Fatalf("expected %s, got %s", CodeIllegalTransition, we.Code)
	}
}

func TestAttemptTransition_VenueMayNotConfirm(t *testing.T) {
	_, err := AttemptTransition(TransitionInput{
		Current:      StatusPending,
		Proposed:     StatusConfirmed,
		Actor:        Actor{Role: RoleVenue, VenueID: "v1"},
		OwnerVenueID: "v1",
		Quota:        plan.ForTier("premium"),
	})
	if we := workflowErr(t, err); we.Code != CodeUnauthorized {
		t.Fatalf("expected %s, got %s", CodeUnauthorized, we.Code)
	}
}

func TestAttemptTransition_ForeignVenueMayNotCancel(t *testing.T) {
	_, err := AttemptTransition(TransitionInput{
		Current:      StatusPending,
		Proposed:     StatusCancelled,
		Actor:        Actor{Role: RoleVenue, VenueID: "other"},
		OwnerVenueID: "v1",
		Quota:        plan.ForTier("free"),
	})
	if we := workflowErr(t, err); we.Code != CodeUnauthorized {
		t.Fatalf("expected %s, got %s", CodeUnauthorized, we.Code)
	}
}

func TestAttemptTransition_OwnerCancels(t *testing.T) {
	out, err := AttemptTransition(TransitionInput{
		Current:      StatusPending,
		Proposed:     StatusCancelled,
		Actor:        Actor{Role: RoleVenue, VenueID: "v1"},
		OwnerVenueID: "v1",
		Quota:        plan.ForTier("free"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != StatusCancelled || out.MaterializeResidency {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestAttemptTransition_StarterQuotaAtLimit(t *testing.T) {
	// Starter allows 2 confirmed events per month.
	_, err := AttemptTransition(TransitionInput{
		Current:      StatusPending,
		Proposed:     StatusConfirmed,
		Actor:        Actor{Role: RoleAdmin},
		OwnerVenueID: "v1",
		Quota:        plan.ForTier("starter"),
		Usage:        Usage{ConfirmedThisMonth: 2},
	})
	if we := workflowErr(t, err); we.Code != CodeQuotaExceeded {
		t.Fatalf("expected %s, got %s", CodeQuotaExceeded, we.Code)
	}
}

func TestAttemptTransition_StarterQuotaUnderLimit(t *testing.T) {
	out, err := AttemptTransition(TransitionInput{
		Current:      StatusPending,
		Proposed:     StatusConfirmed,
		Actor:        Actor{Role: RoleArtist},
		OwnerVenueID: "v1",
		Quota:        plan.ForTier("starter"),
		Usage:        Usage{ConfirmedThisMonth: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.MaterializeResidency {
		t.Fatalf("expected residency materialization instruction")
	}
	if out.Status != StatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", out.Status)
	}
}

func TestAttemptTransition_UnlimitedPlansNeverExceedQuota(t *testing.T) {
	for _, tier := range []string{"pro", "premium"} {
		out, err := AttemptTransition(TransitionInput{
			Current:      StatusAccepted,
			Proposed:     StatusConfirmed,
			Actor:        Actor{Role: RoleAdmin},
			OwnerVenueID: "v1",
			Quota:        plan.ForTier(tier),
			Usage:        Usage{ConfirmedThisMonth: 10000},
		})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tier, err)
		}
		if !out.MaterializeResidency {
			t.Fatalf("%s: expected residency materialization instruction", tier)
		}
	}
}

func TestAttemptTransition_ModificationLimit(t *testing.T) {
	// Free allows one term edit per request; the second fails.
	in := TransitionInput{
		Current:           StatusPending,
		Proposed:          StatusPending,
		Actor:             Actor{Role: RoleVenue, VenueID: "v1"},
		OwnerVenueID:      "v1",
		Quota:             plan.ForTier("free"),
		ModificationsUsed: 1,
		TermEdit:          true,
	}
	_, err := AttemptTransition(in)
	if we := workflowErr(t, err); we.Code != CodeModificationLimitExceeded {
		t.Fatalf("expected %s, got %s", CodeModificationLimitExceeded, we.Code)
	}

	in.ModificationsUsed = 0
	out, err := AttemptTransition(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.ConsumesModification {
		t.Fatalf("expected the edit to consume a modification")
	}
}

func TestAttemptTransition_StatusMoveIgnoresModificationCounter(t *testing.T) {
	// A pure status move on a request that exhausted its edits still works.
	out, err := AttemptTransition(TransitionInput{
		Current:           StatusPending,
		Proposed:          StatusDeclined,
		Actor:             Actor{Role: RoleArtist},
		OwnerVenueID:      "v1",
		Quota:             plan.ForTier("free"),
		ModificationsUsed: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ConsumesModification {
		t.Fatalf("pure status move must not consume a modification")
	}
}

func TestAttemptTransition_DraftEditIsFree(t *testing.T) {
	// Edits while the request is still a draft never touch the counter.
	out, err := AttemptTransition(TransitionInput{
		Current:           StatusOpen,
		Proposed:          StatusOpen,
		Actor:             Actor{Role: RoleVenue, VenueID: "v1"},
		OwnerVenueID:      "v1",
		Quota:             plan.ForTier("free"),
		ModificationsUsed: 1,
		TermEdit:          true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ConsumesModification {
		t.Fatalf("draft edit must not consume a modification")
	}
}

func TestAttemptTransition_EditOnTerminalRequestIsIllegal(t *testing.T) {
	_, err := AttemptTransition(TransitionInput{
		Current:      StatusDeclined,
		Proposed:     StatusDeclined,
		Actor:        Actor{Role: RoleAdmin},
		OwnerVenueID: "v1",
		Quota:        plan.ForTier("premium"),
		TermEdit:     true,
	})
	if we := workflowErr(t, err); we.Code != CodeIllegalTransition {
		t.Fatalf("expected %s, got %s", CodeIllegalTransition, we.Code)
	}
}
