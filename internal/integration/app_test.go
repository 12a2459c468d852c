package integration_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/cinepass/purchase-service/internal/app"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestApp bundles the application under test with a direct database pool for
// seeding and cleanup.
type TestApp struct {
	App *app.Application
	DB  *pgxpool.Pool
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	application, err := app.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	db, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		application.Close()
		return nil, err
	}

	return &TestApp{
		App: application,
		DB:  db,
	}, nil
}

func (a *TestApp) Close() {
	a.DB.Close()
	a.App.Close()
}

func (a *TestApp) seedHallAndShowtime(ctx context.Context) error {
	_, err := a.DB.Exec(ctx,
		`INSERT INTO halls (id, name, seat_rows, seat_columns) VALUES ($1, $2, $3, $4)`,
		TestHallId, TestHallName, TestHallRows, TestHallColumns)
	if err != nil {
		return err
	}

	_, err = a.DB.Exec(ctx,
		`INSERT INTO showtimes (id, hall_id, start_time) VALUES ($1, $2, $3)`,
		TestShowtimeId, TestHallId, time.Now().Add(24*time.Hour))

	return err
}

func (a *TestApp) resetPurchases(ctx context.Context) error {
	_, err := a.DB.Exec(ctx, `TRUNCATE seat_claims, purchases`)
	return err
}
