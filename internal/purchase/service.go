// Package purchase implements the two-phase purchase lifecycle: a purchase is
// initiated with a seat-selection window, then confirmed once with a concrete
// seat set. Seat claims are installed through the ClaimStore's atomic
// operation, so a seat can never be sold twice however many confirmations
// race for it.
package purchase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cinepass/purchase-service/internal/domain"
	"github.com/google/uuid"
)

const DefaultHoldWindow = 10 * time.Minute

// EventPublisher receives purchase lifecycle notifications. Publishing is
// best-effort and never fails the operation that triggered it.
type EventPublisher interface {
	PurchaseCreated(ctx context.Context, purchase domain.Purchase)
	PurchaseCancelled(ctx context.Context, purchase domain.Purchase)
	PurchaseExpired(ctx context.Context, purchase domain.Purchase)
}

type Service struct {
	purchases  domain.PurchaseRepository
	claims     domain.ClaimStore
	showtimes  domain.ShowtimeDirectory
	halls      domain.HallGeometryProvider
	events     EventPublisher
	holdWindow time.Duration
	logger     *slog.Logger

	now func() time.Time
}

func NewService(
	purchases domain.PurchaseRepository,
	claims domain.ClaimStore,
	showtimes domain.ShowtimeDirectory,
	halls domain.HallGeometryProvider,
	events EventPublisher,
	holdWindow time.Duration,
	logger *slog.Logger,
) *Service {
	if holdWindow <= 0 {
		holdWindow = DefaultHoldWindow
	}

	return &Service{
		purchases:  purchases,
		claims:     claims,
		showtimes:  showtimes,
		halls:      halls,
		events:     events,
		holdWindow: holdWindow,
		logger:     logger,
		now:        time.Now,
	}
}

// Initiate creates a purchase in initiated status, reserving a seat-selection
// window but no seats. It fails with domain.ErrRecordNotFound when the
// showtime does not exist.
func (s *Service) Initiate(ctx context.Context, showtimeID int64, numberTickets int) (*domain.Purchase, error) {
	if numberTickets < 1 {
		return nil, fmt.Errorf("%w: number of tickets must be at least 1", domain.ErrInvalidTicketCount)
	}

	showtime, err := s.showtimes.GetById(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	purchase := domain.NewPurchase(showtime.ID, numberTickets, s.holdWindow, s.now())

	err = s.purchases.Create(ctx, &purchase)
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase initiated",
		"purchase_id", purchase.ID,
		"showtime_id", purchase.ShowtimeID,
		"number_tickets", purchase.NumberTickets,
		"selection_deadline", purchase.ExpiredSeatSelectionAt,
	)

	return &purchase, nil
}

// Confirm moves an initiated purchase to created status with the chosen
// seats, installing one claim per seat through the store's atomic operation.
// On any failure the purchase stays in initiated status with no claims, so
// the caller may retry with a different seat set before the deadline.
func (s *Service) Confirm(ctx context.Context, purchaseID uuid.UUID, chosenSeats []string) (*domain.Purchase, error) {
	purchase, err := s.purchases.GetById(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	if purchase.Status != domain.PurchaseStatusInitiated {
		return nil, domain.ErrInvalidPurchaseState
	}

	if purchase.SelectionExpired(s.now()) {
		return nil, domain.ErrSeatSelectionExpired
	}

	if len(chosenSeats) != purchase.NumberTickets {
		return nil, domain.ErrSeatCountMismatch
	}

	hall, err := s.hallForShowtime(ctx, purchase.ShowtimeID)
	if err != nil {
		return nil, err
	}

	validated, err := domain.ValidateSeatLabels(chosenSeats, *hall, purchase.NumberTickets)
	if err != nil {
		return nil, err
	}

	err = s.claims.TryClaimAll(ctx, purchase.ShowtimeID, validated, purchase.ID)
	if err != nil {
		var conflictErr *domain.SeatConflictError
		if errors.As(err, &conflictErr) {
			s.logger.Info("seat conflict on confirm",
				"purchase_id", purchase.ID,
				"showtime_id", purchase.ShowtimeID,
				"seats", conflictErr.Seats,
			)
		}

		return nil, err
	}

	// The claims are installed; finish the transition. If the conditional
	// update loses (duplicate request slipped past the status read above) the
	// claims this call installed are compensated away so no partial state
	// survives. The release is scoped to this call's labels: a racing
	// invocation for the same purchase may have won with claims of its own,
	// and those stay.
	updated, err := s.purchases.MarkCreated(ctx, purchase.ID, validated)
	if err != nil {
		if releaseErr := s.claims.ReleaseSeats(ctx, purchase.ShowtimeID, purchase.ID, validated); releaseErr != nil {
			s.logger.Error("failed to release claims after losing status transition",
				"purchase_id", purchase.ID,
				"error", releaseErr,
			)
			err = errors.Join(err, releaseErr)
		}

		if errors.Is(err, domain.ErrEditConflict) {
			return nil, domain.ErrInvalidPurchaseState
		}

		return nil, err
	}

	s.logger.Info("purchase created",
		"purchase_id", updated.ID,
		"showtime_id", updated.ShowtimeID,
		"seats", updated.ChosenSeats,
	)

	s.events.PurchaseCreated(ctx, *updated)

	return updated, nil
}

// Get returns a purchase by id, surfacing expiry lazily: a stale initiated
// purchase is durably marked expired on read.
func (s *Service) Get(ctx context.Context, purchaseID uuid.UUID) (*domain.Purchase, error) {
	purchase, err := s.purchases.GetById(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	if purchase.Status == domain.PurchaseStatusInitiated && purchase.SelectionExpired(s.now()) {
		expired, err := s.purchases.MarkExpired(ctx, purchase.ID)
		if err == nil {
			// The transition will not be seen by the sweep anymore, so the
			// expiry event is emitted here.
			s.events.PurchaseExpired(ctx, *expired)
			return expired, nil
		}
		if !errors.Is(err, domain.ErrEditConflict) {
			return nil, err
		}

		// Lost the transition to a concurrent writer; re-read.
		return s.purchases.GetById(ctx, purchaseID)
	}

	return purchase, nil
}

// Cancel moves an initiated or created purchase to cancelled status. Claims
// held by a created purchase are released so the seats become available
// again.
func (s *Service) Cancel(ctx context.Context, purchaseID uuid.UUID) (*domain.Purchase, error) {
	purchase, err := s.purchases.GetById(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	switch purchase.Status {
	case domain.PurchaseStatusInitiated, domain.PurchaseStatusCreated:
	default:
		return nil, domain.ErrInvalidPurchaseState
	}

	cancelled, err := s.purchases.MarkCancelled(ctx, purchase.ID, purchase.Status)
	if err != nil {
		if errors.Is(err, domain.ErrEditConflict) {
			return nil, domain.ErrInvalidPurchaseState
		}

		return nil, err
	}

	if purchase.Status == domain.PurchaseStatusCreated {
		err = s.claims.ReleaseAll(ctx, purchase.ShowtimeID, purchase.ID)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("purchase cancelled", "purchase_id", cancelled.ID, "from_status", purchase.Status)

	s.events.PurchaseCancelled(ctx, *cancelled)

	return cancelled, nil
}

// ExpireStale durably marks every initiated purchase whose selection deadline
// has passed as expired. Initiated purchases never hold claims, so nothing is
// released here. It returns the number of purchases swept.
func (s *Service) ExpireStale(ctx context.Context) (int, error) {
	expired, err := s.purchases.ExpireStale(ctx, s.now())
	if err != nil {
		return 0, err
	}

	for _, p := range expired {
		s.events.PurchaseExpired(ctx, p)
	}

	if len(expired) > 0 {
		s.logger.Info("expired stale purchases", "count", len(expired))
	}

	return len(expired), nil
}

func (s *Service) hallForShowtime(ctx context.Context, showtimeID int64) (*domain.HallGeometry, error) {
	showtime, err := s.showtimes.GetById(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	return s.halls.GetById(ctx, showtime.HallID)
}
