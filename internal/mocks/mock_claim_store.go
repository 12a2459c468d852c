package mocks

import (
	"context"

	"github.com/cinepass/purchase-service/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockClaimStore struct {
	mock.Mock
	domain.ClaimStore
}

func (m *MockClaimStore) TryClaimAll(
	ctx context.Context,
	showtimeID int64,
	seatLabels []string,
	purchaseID uuid.UUID) error {

	args := m.Called(ctx, showtimeID, seatLabels, purchaseID)
	return args.Error(0)
}

func (m *MockClaimStore) ReleaseSeats(
	ctx context.Context,
	showtimeID int64,
	purchaseID uuid.UUID,
	seatLabels []string) error {

	args := m.Called(ctx, showtimeID, purchaseID, seatLabels)
	return args.Error(0)
}

func (m *MockClaimStore) ReleaseAll(ctx context.Context, showtimeID int64, purchaseID uuid.UUID) error {
	args := m.Called(ctx, showtimeID, purchaseID)
	return args.Error(0)
}

func (m *MockClaimStore) ActiveClaims(ctx context.Context, showtimeID int64) ([]domain.Claim, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Claim), args.Error(1)
}
