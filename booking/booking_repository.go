package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct{ pool *pgxpool.Pool }

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const selectBooking = `
        SELECT b.id, b.start_date, b.end_date, b.status,
               u.id, u.name, u.email,
               i.id, i.name, i.owner_id, i.available
        FROM bookings b
        JOIN users u ON u.id = b.booker_id
        JOIN items i ON i.id = b.item_id
    `

func scanBooking(row pgx.Row) (Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID,
		&b.Start,
		&b.End,
		&b.Status,
		&b.Booker.ID,
		&b.Booker.Name,
		&b.Booker.Email,
		&b.Item.ID,
		&b.Item.Name,
		&b.Item.OwnerID,
		&b.Item.Available,
	)

	if err != nil {
		return Booking{}, err
	}

	b.ItemID = b.Item.ID

	return b, nil
}

func (r *Repository) Insert(ctx context.Context, b Booking) (Booking, error) {
	sql := `
			INSERT INTO bookings(start_date, end_date, item_id, booker_id, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id;
		`

	b.Status = StatusWaiting
	err := r.pool.QueryRow(ctx, sql, b.Start, b.End, b.Item.ID, b.Booker.ID, string(b.Status)).Scan(&b.ID)

	if err != nil {
		return Booking{}, fmt.Errorf("failed to insert booking: %w", err)
	}

	return b, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (Booking, error) {
	booking, err := scanBooking(r.pool.QueryRow(ctx, selectBooking+` WHERE b.id=$1;`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, ErrBookingNotFound
	}

	if err != nil {
		return Booking{}, fmt.Errorf("failed to fetch booking with id %v: %w", id, err)
	}

	return booking, nil
}

// Decide locks the booking row, verifies the acting user owns the item and
// that the booking is still WAITING, and writes the terminal status, all in
// one transaction. Of two concurrent decisions one commits and the other
// observes the terminal status and fails with ErrAlreadyDecided.
func (r *Repository) Decide(ctx context.Context, id, ownerID int64, approve bool) (Booking, error) {
	tx, err := r.pool.Begin(ctx)

	if err != nil {
		return Booking{}, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback(ctx)

	sql := `
			SELECT b.status, i.owner_id
			FROM bookings b
			JOIN items i ON i.id = b.item_id
			WHERE b.id=$1
			FOR UPDATE OF b;
		`

	var status Status
	var itemOwnerID int64
	err = tx.QueryRow(ctx, sql, id).Scan(&status, &itemOwnerID)

	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, ErrBookingNotFound
	}

	if err != nil {
		return Booking{}, fmt.Errorf("failed to lock booking with id %v: %w", id, err)
	}

	// only the item's owner may decide; others get the not-found shape
	if itemOwnerID != ownerID {
		return Booking{}, ErrBookingNotFound
	}

	next, err := Decide(status, approve)

	if err != nil {
		return Booking{}, err
	}

	_, err = tx.Exec(ctx, `UPDATE bookings SET status=$1 WHERE id=$2;`, string(next), id)

	if err != nil {
		return Booking{}, fmt.Errorf("failed to update booking '%v' status: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Booking{}, fmt.Errorf("failed to commit booking status: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *Repository) ListByBooker(ctx context.Context, bookerID int64, state State, now time.Time, limit, offset int) ([]Booking, error) {
	return r.list(ctx, `b.booker_id = $1`, bookerID, state, now, limit, offset)
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID int64, state State, now time.Time, limit, offset int) ([]Booking, error) {
	return r.list(ctx, `i.owner_id = $1`, ownerID, state, now, limit, offset)
}

func (r *Repository) list(ctx context.Context, userCond string, userID int64, state State, now time.Time, limit, offset int) ([]Booking, error) {
	where := userCond
	args := []any{userID}

	if cond, condArgs := state.Condition(len(args)+1, now); cond != "" {
		where += " AND " + cond
		args = append(args, condArgs...)
	}

	sql := fmt.Sprintf(`%s WHERE %s ORDER BY b.start_date DESC LIMIT $%d OFFSET $%d;`,
		selectBooking, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, sql, args...)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	defer rows.Close()

	bookings := []Booking{}

	for rows.Next() {
		b, err := scanBooking(rows)

		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}

		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}

	return bookings, nil
}

func (r *Repository) FindLastApproved(ctx context.Context, itemID int64, now time.Time) (*Booking, error) {
	sql := selectBooking + `
            WHERE b.item_id = $1 AND b.status = 'APPROVED' AND b.start_date < $2
            ORDER BY b.start_date DESC
            LIMIT 1;
        `

	return r.findOne(ctx, sql, itemID, now)
}

func (r *Repository) FindNextApproved(ctx context.Context, itemID int64, now time.Time) (*Booking, error) {
	sql := selectBooking + `
            WHERE b.item_id = $1 AND b.status = 'APPROVED' AND b.start_date > $2
            ORDER BY b.start_date
            LIMIT 1;
        `

	return r.findOne(ctx, sql, itemID, now)
}

func (r *Repository) findOne(ctx context.Context, sql string, args ...any) (*Booking, error) {
	booking, err := scanBooking(r.pool.QueryRow(ctx, sql, args...))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	return &booking, nil
}

func (r *Repository) HasCompletedApproved(ctx context.Context, bookerID, itemID int64, asOf time.Time) (bool, error) {
	sql := `
            SELECT EXISTS (
                SELECT 1 FROM bookings
                WHERE booker_id = $1 AND item_id = $2 AND status = 'APPROVED' AND end_date < $3
            );
        `

	var exists bool
	err := r.pool.QueryRow(ctx, sql, bookerID, itemID, asOf).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("failed to check completed bookings: %w", err)
	}

	return exists, nil
}
