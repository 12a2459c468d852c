package domain

import (
	"context"

	"github.com/google/uuid"
)

// Claim is the durable witness that a seat is held for a showtime. A claim
// exists only for purchases in created status; initiated purchases never hold
// claims, so expiring them never touches this store.
type Claim struct {
	ShowtimeID int64
	SeatLabel  string
	PurchaseID uuid.UUID
}

// ClaimStore enforces the one-claim-per-seat rule. The decision "is this seat
// free" and the act "claim this seat" must be a single indivisible operation
// as witnessed by the underlying store; implementations may not check and
// insert in separate steps.
type ClaimStore interface {
	// TryClaimAll claims every (showtimeID, seatLabel) pair for purchaseID, or
	// none of them. When one or more seats are already claimed it returns a
	// *SeatConflictError listing exactly those seats.
	TryClaimAll(ctx context.Context, showtimeID int64, seatLabels []string, purchaseID uuid.UUID) error

	// ReleaseSeats removes the claims on exactly seatLabels owned by
	// purchaseID. Compensation paths must use this rather than ReleaseAll:
	// a racing invocation for the same purchase may have installed other
	// claims that are now live, and those must survive.
	ReleaseSeats(ctx context.Context, showtimeID int64, purchaseID uuid.UUID, seatLabels []string) error

	// ReleaseAll removes every claim owned by purchaseID for the showtime.
	ReleaseAll(ctx context.Context, showtimeID int64, purchaseID uuid.UUID) error

	// ActiveClaims returns a snapshot of the claims for a showtime. It exists
	// for seat-map diagnostics and tests; correctness decisions must come from
	// TryClaimAll, never from this read.
	ActiveClaims(ctx context.Context, showtimeID int64) ([]Claim, error)
}
