package mocks

import (
	"context"

	"github.com/cinepass/purchase-service/internal/domain"
)

type MockShowtimeDirectory struct {
	GetByIdFunc func(ctx context.Context, id int64) (*domain.Showtime, error)
}

func (m *MockShowtimeDirectory) GetById(ctx context.Context, id int64) (*domain.Showtime, error) {
	return m.GetByIdFunc(ctx, id)
}

type MockHallGeometryProvider struct {
	GetByIdFunc func(ctx context.Context, id int64) (*domain.HallGeometry, error)
}

func (m *MockHallGeometryProvider) GetById(ctx context.Context, id int64) (*domain.HallGeometry, error) {
	return m.GetByIdFunc(ctx, id)
}
