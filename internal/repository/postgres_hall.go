package repository

import (
	"context"
	"errors"

	"github.com/cinepass/purchase-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresHallGeometryProvider struct {
	db *pgxpool.Pool
}

func NewPostgresHallGeometryProvider(db *pgxpool.Pool) *PostgresHallGeometryProvider {
	return &PostgresHallGeometryProvider{
		db: db,
	}
}

func (p *PostgresHallGeometryProvider) GetById(ctx context.Context, id int64) (*domain.HallGeometry, error) {
	query := `SELECT id, name, seat_rows, seat_columns FROM halls WHERE id = $1`

	var hall domain.HallGeometry

	err := p.db.QueryRow(ctx, query, id).Scan(&hall.ID, &hall.Name, &hall.SeatRows, &hall.SeatColumns)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &hall, nil
}
