package repository

import (
	"context"
	"errors"

	"github.com/cinepass/purchase-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresShowtimeDirectory struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeDirectory(db *pgxpool.Pool) *PostgresShowtimeDirectory {
	return &PostgresShowtimeDirectory{
		db: db,
	}
}

func (p *PostgresShowtimeDirectory) GetById(ctx context.Context, id int64) (*domain.Showtime, error) {
	query := `SELECT id, hall_id, start_time FROM showtimes WHERE id = $1`

	var showtime domain.Showtime

	err := p.db.QueryRow(ctx, query, id).Scan(&showtime.ID, &showtime.HallID, &showtime.StartTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &showtime, nil
}
