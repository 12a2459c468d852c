package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cinepass/purchase-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresPurchaseRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPurchaseRepository(db *pgxpool.Pool) *PostgresPurchaseRepository {
	return &PostgresPurchaseRepository{
		db: db,
	}
}

const purchaseColumns = `
	id, showtime_id, number_tickets, chosen_seats, status,
	expired_seat_selection_at, created_at, updated_at
`

func (p *PostgresPurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	query := `
		INSERT INTO purchases (
			id, showtime_id, number_tickets, chosen_seats, status,
			expired_seat_selection_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := p.db.Exec(
		ctx,
		query,
		purchase.ID,
		purchase.ShowtimeID,
		purchase.NumberTickets,
		purchase.ChosenSeats,
		string(purchase.Status),
		purchase.ExpiredSeatSelectionAt,
		purchase.CreatedAt,
		purchase.UpdatedAt,
	)

	return err
}

func (p *PostgresPurchaseRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`

	purchase, err := scanPurchase(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return purchase, nil
}

// MarkCreated performs the conditional initiated -> created transition. The
// status predicate makes the transition single-shot: a duplicate request
// matches no row and gets ErrEditConflict.
func (p *PostgresPurchaseRepository) MarkCreated(
	ctx context.Context,
	id uuid.UUID,
	chosenSeats []string) (*domain.Purchase, error) {

	query := `
		UPDATE purchases
		SET status = 'created', chosen_seats = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'initiated'
		RETURNING ` + purchaseColumns

	purchase, err := scanPurchase(p.db.QueryRow(ctx, query, id, chosenSeats))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEditConflict
		}

		return nil, err
	}

	return purchase, nil
}

func (p *PostgresPurchaseRepository) MarkCancelled(
	ctx context.Context,
	id uuid.UUID,
	from domain.PurchaseStatus) (*domain.Purchase, error) {

	query := `
		UPDATE purchases
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + purchaseColumns

	purchase, err := scanPurchase(p.db.QueryRow(ctx, query, id, string(from)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEditConflict
		}

		return nil, err
	}

	return purchase, nil
}

func (p *PostgresPurchaseRepository) MarkExpired(ctx context.Context, id uuid.UUID) (*domain.Purchase, error) {
	query := `
		UPDATE purchases
		SET status = 'expired', updated_at = NOW()
		WHERE id = $1 AND status = 'initiated'
		RETURNING ` + purchaseColumns

	purchase, err := scanPurchase(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEditConflict
		}

		return nil, err
	}

	return purchase, nil
}

func (p *PostgresPurchaseRepository) ExpireStale(ctx context.Context, now time.Time) ([]domain.Purchase, error) {
	query := `
		UPDATE purchases
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'initiated' AND expired_seat_selection_at <= $1
		RETURNING ` + purchaseColumns

	rows, err := p.db.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expired := make([]domain.Purchase, 0)

	for rows.Next() {
		purchase, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}

		expired = append(expired, *purchase)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return expired, nil
}

func scanPurchase(row pgx.Row) (*domain.Purchase, error) {
	var purchase domain.Purchase
	var status string

	err := row.Scan(
		&purchase.ID,
		&purchase.ShowtimeID,
		&purchase.NumberTickets,
		&purchase.ChosenSeats,
		&status,
		&purchase.ExpiredSeatSelectionAt,
		&purchase.CreatedAt,
		&purchase.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	purchase.Status = domain.PurchaseStatus(status)

	return &purchase, nil
}
