package repository

import (
	"context"
	"errors"

	"github.com/cinepass/purchase-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresClaimStore backs seat claims with a table whose primary key is
// (showtime_id, seat_label). The claim attempt is a single transactional
// insert batch, so "is this seat free" and "claim this seat" are one
// indivisible operation as seen by the database; there is no check-then-act
// window in application code.
type PostgresClaimStore struct {
	db *pgxpool.Pool
}

func NewPostgresClaimStore(db *pgxpool.Pool) *PostgresClaimStore {
	return &PostgresClaimStore{
		db: db,
	}
}

func (p *PostgresClaimStore) TryClaimAll(
	ctx context.Context,
	showtimeID int64,
	seatLabels []string,
	purchaseID uuid.UUID) error {

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO seat_claims (showtime_id, seat_label, purchase_id)
			SELECT $1, unnest($2::text[]), $3
			ON CONFLICT (showtime_id, seat_label) DO NOTHING
			RETURNING seat_label
		`

		rows, err := tx.Query(ctx, query, showtimeID, seatLabels, purchaseID)
		if err != nil {
			return claimInsertError(err)
		}

		claimed := make(map[string]bool, len(seatLabels))

		for rows.Next() {
			var label string

			err = rows.Scan(&label)
			if err != nil {
				rows.Close()
				return err
			}

			claimed[label] = true
		}
		rows.Close()

		if err = rows.Err(); err != nil {
			return claimInsertError(err)
		}

		if len(claimed) == len(seatLabels) {
			return nil
		}

		// At least one seat was already taken. Returning an error rolls the
		// transaction back, so the seats that did insert are released again
		// and the claim stays all-or-nothing.
		conflicts := make([]string, 0, len(seatLabels)-len(claimed))
		for _, label := range seatLabels {
			if !claimed[label] {
				conflicts = append(conflicts, label)
			}
		}

		return &domain.SeatConflictError{Seats: conflicts}
	})
}

// claimInsertError maps a foreign key violation on the claim insert to
// domain.ErrRecordNotFound: it means the showtime or purchase the claim
// references no longer exists.
func claimInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return domain.ErrRecordNotFound
	}

	return err
}

func (p *PostgresClaimStore) ReleaseSeats(
	ctx context.Context,
	showtimeID int64,
	purchaseID uuid.UUID,
	seatLabels []string) error {

	query := `
		DELETE FROM seat_claims
		WHERE showtime_id = $1 AND purchase_id = $2 AND seat_label = ANY($3::text[])
	`

	_, err := p.db.Exec(ctx, query, showtimeID, purchaseID, seatLabels)

	return err
}

func (p *PostgresClaimStore) ReleaseAll(ctx context.Context, showtimeID int64, purchaseID uuid.UUID) error {
	query := `DELETE FROM seat_claims WHERE showtime_id = $1 AND purchase_id = $2`

	_, err := p.db.Exec(ctx, query, showtimeID, purchaseID)

	return err
}

func (p *PostgresClaimStore) ActiveClaims(ctx context.Context, showtimeID int64) ([]domain.Claim, error) {
	query := `
		SELECT showtime_id, seat_label, purchase_id
		FROM seat_claims
		WHERE showtime_id = $1
		ORDER BY seat_label
	`

	rows, err := p.db.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	claims := make([]domain.Claim, 0)

	for rows.Next() {
		var claim domain.Claim

		err = rows.Scan(&claim.ShowtimeID, &claim.SeatLabel, &claim.PurchaseID)
		if err != nil {
			return nil, err
		}

		claims = append(claims, claim)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return claims, nil
}
