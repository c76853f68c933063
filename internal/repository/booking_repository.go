package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/RoiCoDA/AbsoluteCinema/internal/model"
)

// BookingRepo is the MySQL implementation of BookingStore. The unique
// key on (screening_id, seat_id) is the schema-level guarantee that a
// seat can never carry two bookings even if a second writer slips
// past the service's room lock.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// ListByScreening returns every booking for a screening ordered by
// creation time.
func (r *BookingRepo) ListByScreening(ctx context.Context, screeningID string) ([]model.Booking, error) {
	const q = `SELECT id, screening_id, seat_id, user_id, created_at
	           FROM bookings WHERE screening_id = ? ORDER BY created_at, seat_id`
	rows, err := r.db.QueryContext(ctx, q, screeningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.ScreeningID, &b.SeatID, &b.UserID, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBulk inserts all booking rows inside one transaction. A
// duplicate-key failure rolls the whole batch back and surfaces as
// SeatsUnavailableError naming the conflicting seat, so the caller
// never observes a partial reservation.
func (r *BookingRepo) CreateBulk(ctx context.Context, bookings []model.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	const q = `INSERT INTO bookings (id, screening_id, seat_id, user_id, created_at) VALUES (?, ?, ?, ?, ?)`
	for _, b := range bookings {
		if _, err := tx.ExecContext(ctx, q, b.ID, b.ScreeningID, b.SeatID, b.UserID, b.CreatedAt.UTC()); err != nil {
			var me *mysql.MySQLError
			if errors.As(err, &me) && me.Number == 1062 { // duplicate entry
				return &SeatsUnavailableError{Seats: []string{b.SeatID}}
			}
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
