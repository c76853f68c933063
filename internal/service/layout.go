package service

import (
	"math/rand"

	"github.com/RoiCoDA/AbsoluteCinema/internal/model"
)

// Layout constants for the canonical auditorium. Every screening uses
// the same template: 9 rows, a short front row, a long back row, 108
// seats in total.
const (
	LayoutRows    = 9
	FrontRowSeats = 10 // row 1
	BackRowSeats  = 16 // row 9
	MidRowSeats   = 14 // rows 2-8

	BasePrice uint32 = 45
	VIPPrice  uint32 = 60
)

// RowSeatCount returns the number of seats in the given 1-based row.
func RowSeatCount(row int) int {
	switch row {
	case 1:
		return FrontRowSeats
	case LayoutRows:
		return BackRowSeats
	default:
		return MidRowSeats
	}
}

// seatClass decides type and price from the seat's position. The back
// rows' first eight columns are VIP at the higher price; two middle
// seats of row 2 are accessible at the base price; everything else is
// standard.
func seatClass(row, number int) (string, uint32) {
	if row >= 6 && number <= 8 {
		return model.SeatVIP, VIPPrice
	}
	if row == 2 && (number == 7 || number == 8) {
		return model.SeatAccessible, BasePrice
	}
	return model.SeatStandard, BasePrice
}

// GenerateLayout produces the seat template in row-major order. The
// output is fully deterministic: same seats, same types, same prices
// on every call, every seat available. Demo pre-booking is layered on
// separately via PreBookedSeats so the template itself stays pure.
func GenerateLayout() []model.Seat {
	seats := make([]model.Seat, 0, FrontRowSeats+BackRowSeats+(LayoutRows-2)*MidRowSeats)
	for row := 1; row <= LayoutRows; row++ {
		for number := 1; number <= RowSeatCount(row); number++ {
			typ, price := seatClass(row, number)
			seats = append(seats, model.Seat{
				ID:     model.SeatID(row, number),
				Row:    row,
				Number: number,
				Type:   typ,
				Price:  price,
				Status: model.SeatAvailable,
			})
		}
	}
	return seats
}

// PreBookedSeats picks a random subset of the layout for demo
// pre-seeding, marking roughly ratio of the seats. The caller owns
// the randomness source, so tests seed it and get reproducible
// output. Returns the chosen seat identifiers.
func PreBookedSeats(rng *rand.Rand, ratio float64) []string {
	ids := []string{}
	for _, seat := range GenerateLayout() {
		if rng.Float64() < ratio {
			ids = append(ids, seat.ID)
		}
	}
	return ids
}
