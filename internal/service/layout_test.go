package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoiCoDA/AbsoluteCinema/internal/model"
)

func TestGenerateLayoutShape(t *testing.T) {
	seats := GenerateLayout()
	require.Len(t, seats, 108)

	perRow := map[int]int{}
	for _, s := range seats {
		perRow[s.Row]++
	}
	assert.Equal(t, 10, perRow[1])
	for row := 2; row <= 8; row++ {
		assert.Equal(t, 14, perRow[row], "row %d", row)
	}
	assert.Equal(t, 16, perRow[9])
}

func TestGenerateLayoutSeatIDs(t *testing.T) {
	seats := GenerateLayout()
	assert.Equal(t, "r1-s1", seats[0].ID)
	assert.Equal(t, "r9-s16", seats[len(seats)-1].ID)

	seen := map[string]bool{}
	for _, s := range seats {
		assert.False(t, seen[s.ID], "duplicate seat id %s", s.ID)
		seen[s.ID] = true
		assert.Equal(t, model.SeatAvailable, s.Status)
	}
}

func TestGenerateLayoutTypesAndPrices(t *testing.T) {
	byID := map[string]model.Seat{}
	for _, s := range GenerateLayout() {
		byID[s.ID] = s
	}

	// Back rows, first eight columns: VIP at the premium price.
	for row := 6; row <= 9; row++ {
		for n := 1; n <= 8; n++ {
			s := byID[model.SeatID(row, n)]
			assert.Equal(t, model.SeatVIP, s.Type, "seat %s", s.ID)
			assert.Equal(t, uint32(60), s.Price, "seat %s", s.ID)
		}
	}
	// Row 2 accessible pair at the base price.
	for _, n := range []int{7, 8} {
		s := byID[model.SeatID(2, n)]
		assert.Equal(t, model.SeatAccessible, s.Type)
		assert.Equal(t, uint32(45), s.Price)
	}
	// Spot checks on standard seats.
	for _, id := range []string{"r1-s1", "r2-s6", "r5-s8", "r6-s9", "r9-s16"} {
		s := byID[id]
		assert.Equal(t, model.SeatStandard, s.Type, "seat %s", id)
		assert.Equal(t, uint32(45), s.Price, "seat %s", id)
	}
}

func TestGenerateLayoutDeterministic(t *testing.T) {
	assert.Equal(t, GenerateLayout(), GenerateLayout())
}

func TestPreBookedSeats(t *testing.T) {
	a := PreBookedSeats(rand.New(rand.NewSource(7)), 0.3)
	b := PreBookedSeats(rand.New(rand.NewSource(7)), 0.3)
	assert.Equal(t, a, b, "same seed must pick the same seats")

	valid := map[string]bool{}
	for _, s := range GenerateLayout() {
		valid[s.ID] = true
	}
	for _, id := range a {
		assert.True(t, valid[id], "picked unknown seat %s", id)
	}

	assert.Empty(t, PreBookedSeats(rand.New(rand.NewSource(7)), 0))
	assert.Len(t, PreBookedSeats(rand.New(rand.NewSource(7)), 1), 108)
}
