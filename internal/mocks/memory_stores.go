package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/cinepass/purchase-service/internal/domain"
	"github.com/google/uuid"
)

// MemoryPurchaseRepo is a mutex-guarded in-memory PurchaseRepository with the
// same conditional-transition semantics as the Postgres implementation. It
// backs the service-level concurrency tests.
type MemoryPurchaseRepo struct {
	mu        sync.Mutex
	purchases map[uuid.UUID]domain.Purchase
}

func NewMemoryPurchaseRepo() *MemoryPurchaseRepo {
	return &MemoryPurchaseRepo{
		purchases: make(map[uuid.UUID]domain.Purchase),
	}
}

func (r *MemoryPurchaseRepo) Create(ctx context.Context, purchase *domain.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.purchases[purchase.ID] = *purchase

	return nil
}

func (r *MemoryPurchaseRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	purchase, ok := r.purchases[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return clonePurchase(purchase), nil
}

func (r *MemoryPurchaseRepo) MarkCreated(ctx context.Context, id uuid.UUID, chosenSeats []string) (*domain.Purchase, error) {
	return r.transition(id, domain.PurchaseStatusInitiated, domain.PurchaseStatusCreated, chosenSeats)
}

func (r *MemoryPurchaseRepo) MarkCancelled(ctx context.Context, id uuid.UUID, from domain.PurchaseStatus) (*domain.Purchase, error) {
	return r.transition(id, from, domain.PurchaseStatusCancelled, nil)
}

func (r *MemoryPurchaseRepo) MarkExpired(ctx context.Context, id uuid.UUID) (*domain.Purchase, error) {
	return r.transition(id, domain.PurchaseStatusInitiated, domain.PurchaseStatusExpired, nil)
}

func (r *MemoryPurchaseRepo) ExpireStale(ctx context.Context, now time.Time) ([]domain.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expired := make([]domain.Purchase, 0)

	for id, purchase := range r.purchases {
		if purchase.Status == domain.PurchaseStatusInitiated && !now.Before(purchase.ExpiredSeatSelectionAt) {
			purchase.Status = domain.PurchaseStatusExpired
			purchase.UpdatedAt = now
			r.purchases[id] = purchase
			expired = append(expired, purchase)
		}
	}

	return expired, nil
}

func (r *MemoryPurchaseRepo) transition(
	id uuid.UUID,
	from, to domain.PurchaseStatus,
	chosenSeats []string) (*domain.Purchase, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	purchase, ok := r.purchases[id]
	if !ok || purchase.Status != from {
		return nil, domain.ErrEditConflict
	}

	purchase.Status = to
	purchase.UpdatedAt = time.Now()
	if chosenSeats != nil {
		purchase.ChosenSeats = append([]string(nil), chosenSeats...)
	}

	r.purchases[id] = purchase

	return clonePurchase(purchase), nil
}

func clonePurchase(purchase domain.Purchase) *domain.Purchase {
	purchase.ChosenSeats = append([]string(nil), purchase.ChosenSeats...)
	return &purchase
}

type claimKey struct {
	showtimeID int64
	seatLabel  string
}

// MemoryClaimStore implements the atomic claim protocol over a single mutex:
// the availability check and the insert happen under one critical section, so
// concurrent TryClaimAll calls serialize exactly like competing database
// transactions on the unique index.
type MemoryClaimStore struct {
	mu     sync.Mutex
	claims map[claimKey]uuid.UUID
}

func NewMemoryClaimStore() *MemoryClaimStore {
	return &MemoryClaimStore{
		claims: make(map[claimKey]uuid.UUID),
	}
}

func (s *MemoryClaimStore) TryClaimAll(
	ctx context.Context,
	showtimeID int64,
	seatLabels []string,
	purchaseID uuid.UUID) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	conflicts := make([]string, 0)
	for _, label := range seatLabels {
		if _, taken := s.claims[claimKey{showtimeID, label}]; taken {
			conflicts = append(conflicts, label)
		}
	}

	if len(conflicts) > 0 {
		return &domain.SeatConflictError{Seats: conflicts}
	}

	for _, label := range seatLabels {
		s.claims[claimKey{showtimeID, label}] = purchaseID
	}

	return nil
}

func (s *MemoryClaimStore) ReleaseSeats(
	ctx context.Context,
	showtimeID int64,
	purchaseID uuid.UUID,
	seatLabels []string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, label := range seatLabels {
		key := claimKey{showtimeID, label}
		if owner, ok := s.claims[key]; ok && owner == purchaseID {
			delete(s.claims, key)
		}
	}

	return nil
}

func (s *MemoryClaimStore) ReleaseAll(ctx context.Context, showtimeID int64, purchaseID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, owner := range s.claims {
		if key.showtimeID == showtimeID && owner == purchaseID {
			delete(s.claims, key)
		}
	}

	return nil
}

func (s *MemoryClaimStore) ActiveClaims(ctx context.Context, showtimeID int64) ([]domain.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claims := make([]domain.Claim, 0)

	for key, owner := range s.claims {
		if key.showtimeID == showtimeID {
			claims = append(claims, domain.Claim{
				ShowtimeID: key.showtimeID,
				SeatLabel:  key.seatLabel,
				PurchaseID: owner,
			})
		}
	}

	return claims, nil
}
