package model

import (
	"fmt"
	"time"
)

// Seat types.
const (
	SeatStandard   = "standard"
	SeatVIP        = "vip"
	SeatAccessible = "accessible"
)

// Seat availability, derived by overlaying bookings on the layout
// template. Never persisted on the seat itself.
const (
	SeatAvailable = "available"
	SeatBooked    = "booked"
)

// Seat is one position in a screening's layout. Row, Number, Type and
// Price come from the generated template and are immutable; Status is
// computed per request from the booking ledger.
//
// Fields:
//  ID     – layout-scoped identifier in the form "r{row}-s{number}".
//  Row    – 1-based row number.
//  Number – 1-based position within the row.
//  Type   – standard, vip or accessible.
//  Price  – ticket price for this seat.
//  Status – available or booked (overlay-derived).
type Seat struct {
	ID     string `json:"id"`
	Row    int    `json:"row"`
	Number int    `json:"number"`
	Type   string `json:"type"`
	Price  uint32 `json:"price"`
	Status string `json:"status"`
}

// SeatID formats the canonical layout-scoped seat identifier.
func SeatID(row, number int) string {
	return fmt.Sprintf("r%d-s%d", row, number)
}

// Booking is a persisted claim by a user on one seat within one
// screening. For a given screening each seat identifier appears in at
// most one booking; bookings accumulate monotonically and are never
// removed in the normal flow.
//
// Fields:
//  ID          – primary key identifier (e.g. "bb-...").
//  ScreeningID – FK -> screenings.id.
//  SeatID      – layout seat identifier ("r{row}-s{number}").
//  UserID      – FK -> users.id of the booking owner.
//  CreatedAt   – creation timestamp.
type Booking struct {
	ID          string    `json:"id"`           // bookings.id
	ScreeningID string    `json:"screening_id"` // bookings.screening_id
	SeatID      string    `json:"seat_id"`      // bookings.seat_id
	UserID      string    `json:"user_id"`      // bookings.user_id
	CreatedAt   time.Time `json:"created_at"`   // bookings.created_at
}
