package booking

import (
	"fmt"

	"stagebook/internal/plan"
)

type Role string

const (
	RoleVenue  Role = "venue"
	RoleArtist Role = "artist"
	RoleAdmin  Role = "admin"
)

// Actor identifies who is attempting a transition. VenueID is set for venue
// actors only and is compared against the request's owning venue.
type Actor struct {
	Role    Role
	VenueID string
}

// Usage is a point-in-time snapshot of the venue's monthly counters. The
// caller must re-validate the snapshot atomically against storage before
// committing (see PatchStatus).
type Usage struct {
	ConfirmedThisMonth int
}

type WorkflowError struct {
	Code    string
	Message string
}

func (e WorkflowError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeIllegalTransition         = "ILLEGAL_TRANSITION"
	CodeUnauthorized              = "UNAUTHORIZED"
	CodeQuotaExceeded             = "QUOTA_EXCEEDED"
	CodeModificationLimitExceeded = "MODIFICATION_LIMIT_EXCEEDED"
)

// TransitionInput is the full snapshot the engine decides from. The engine
// never reaches back into storage and never mutates counters.
type TransitionInput struct {
	Current  Status
	Proposed Status
	Actor    Actor

	// OwnerVenueID is the venue that created the request.
	OwnerVenueID string

	Quota plan.Quota
	Usage Usage

	// ModificationsUsed is the number of term edits the request has already
	// consumed.
	ModificationsUsed int

	// TermEdit marks a change to the request's dates or fee riding along
	// with the transition. Pure status moves leave it false and are never
	// charged against the modification quota.
	TermEdit bool
}

// Outcome is the authorization the engine hands back. It instructs the
// caller; the caller owns all writes.
type Outcome struct {
	Status Status

	// MaterializeResidency tells the caller to create a residency from the
	// request's date range and partition it into weeks.
	MaterializeResidency bool

	// ConsumesModification tells the caller to bump the request's
	// modification counter alongside the term edit.
	ConsumesModification bool
}

// AttemptTransition validates a proposed status move and returns the outcome
// the caller should persist. Checks run in a fixed order: edge legality,
// actor authorization, monthly quota (confirmations only), modification
// limit (term edits only). The first failure wins and nothing is mutated.
func AttemptTransition(in TransitionInput) (Outcome, error) {
	if !legalEdge(in) {
		return Outcome{}, WorkflowError{
			Code:    CodeIllegalTransition,
			Message: fmt.Sprintf("cannot move from %s to %s", in.Current, in.Proposed),
		}
	}

	if !authorized(in) {
		return Outcome{}, WorkflowError{
			Code:    CodeUnauthorized,
			Message: fmt.Sprintf("%s actor may not set status %s", in.Actor.Role, in.Proposed),
		}
	}

	if in.Proposed == StatusConfirmed && !in.Quota.AllowsConfirmation(in.Usage.ConfirmedThisMonth) {
		return Outcome{}, WorkflowError{
			Code:    CodeQuotaExceeded,
			Message: fmt.Sprintf("plan %s allows %d confirmed events per month", in.Quota.Tier, in.Quota.MonthlyEvents),
		}
	}

	consumesModification := in.TermEdit && in.Current == StatusPending
	if consumesModification && !in.Quota.AllowsModification(in.ModificationsUsed) {
		return Outcome{}, WorkflowError{
			Code:    CodeModificationLimitExceeded,
			Message: fmt.Sprintf("plan %s allows %d modifications per request", in.Quota.Tier, in.Quota.ModificationsPerRequest),
		}
	}

	return Outcome{
		Status:               in.Proposed,
		MaterializeResidency: in.Proposed == StatusConfirmed,
		ConsumesModification: consumesModification,
	}, nil
}

func legalEdge(in TransitionInput) bool {
	// A term edit with no status move is an in-place update, legal only
	// while the request is still editable (drafted or awaiting a decision).
	if in.TermEdit && in.Proposed == in.Current {
		return in.Current == StatusOpen || in.Current == StatusPending
	}
	return CanTransition(in.Current, in.Proposed)
}

func authorized(in TransitionInput) bool {
	switch in.Proposed {
	case StatusAccepted, StatusRejected, StatusConfirmed, StatusDeclined:
		return in.Actor.Role == RoleAdmin || in.Actor.Role == RoleArtist
	case StatusCancelled:
		return in.Actor.Role == RoleAdmin || isOwner(in)
	default:
		// Sending a draft or editing terms in place is owner territory.
		return in.Actor.Role == RoleAdmin || isOwner(in)
	}
}

func isOwner(in TransitionInput) bool {
	return in.Actor.Role == RoleVenue && in.Actor.VenueID == in.OwnerVenueID
}
