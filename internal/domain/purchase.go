package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PurchaseStatus string

const (
	PurchaseStatusInitiated PurchaseStatus = "initiated"
	PurchaseStatusCreated   PurchaseStatus = "created"
	PurchaseStatusExpired   PurchaseStatus = "expired"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

type Purchase struct {
	ID                     uuid.UUID
	ShowtimeID             int64
	NumberTickets          int
	ChosenSeats            []string
	Status                 PurchaseStatus
	ExpiredSeatSelectionAt time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// NewPurchase builds an initiated purchase holding a seat-selection window of
// holdWindow from now. No seats are claimed at this stage.
func NewPurchase(showtimeID int64, numberTickets int, holdWindow time.Duration, now time.Time) Purchase {
	return Purchase{
		ID:                     uuid.New(),
		ShowtimeID:             showtimeID,
		NumberTickets:          numberTickets,
		ChosenSeats:            []string{},
		Status:                 PurchaseStatusInitiated,
		ExpiredSeatSelectionAt: now.Add(holdWindow),
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

// SelectionExpired reports whether the seat-selection deadline has passed.
// Callers must use this rather than trusting a possibly stale Status field.
func (p *Purchase) SelectionExpired(now time.Time) bool {
	return !now.Before(p.ExpiredSeatSelectionAt)
}

// PurchaseRepository persists purchases. The MarkX methods perform conditional
// status transitions and return ErrEditConflict when the purchase is no longer
// in the status the transition requires, so duplicate or racing requests can
// never repeat a transition.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *Purchase) error
	GetById(ctx context.Context, id uuid.UUID) (*Purchase, error)
	MarkCreated(ctx context.Context, id uuid.UUID, chosenSeats []string) (*Purchase, error)
	MarkCancelled(ctx context.Context, id uuid.UUID, from PurchaseStatus) (*Purchase, error)
	MarkExpired(ctx context.Context, id uuid.UUID) (*Purchase, error)
	ExpireStale(ctx context.Context, now time.Time) ([]Purchase, error)
}
