package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoiCoDA/AbsoluteCinema/internal/model"
	"github.com/RoiCoDA/AbsoluteCinema/internal/queue"
	"github.com/RoiCoDA/AbsoluteCinema/internal/repository"
)

func TestAvailabilityOverlaysLedger(t *testing.T) {
	st := newDemoStores(t)
	svc := NewBookingService(st, nil)
	ctx := context.Background()

	seats, err := svc.Availability(ctx, "rb001")
	require.NoError(t, err)
	require.Len(t, seats, 108)

	status := map[string]string{}
	for _, s := range seats {
		status[s.ID] = s.Status
	}
	// bb001 and bb002 are seeded on rb001.
	assert.Equal(t, model.SeatBooked, status["r1-s3"])
	assert.Equal(t, model.SeatBooked, status["r2-s2"])
	assert.Equal(t, model.SeatAvailable, status["r1-s1"])

	// rb002 has no bookings; every seat is free there.
	seats2, err := svc.Availability(ctx, "rb002")
	require.NoError(t, err)
	for _, s := range seats2 {
		assert.Equal(t, model.SeatAvailable, s.Status)
	}
}

func TestAvailabilityUnknownRoom(t *testing.T) {
	svc := NewBookingService(newDemoStores(t), nil)
	_, err := svc.Availability(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}

func TestReserveHappyPath(t *testing.T) {
	st := newDemoStores(t)
	var published []queue.SeatsReservedEvent
	svc := NewBookingService(st, func(_ context.Context, ev queue.SeatsReservedEvent) error {
		published = append(published, ev)
		return nil
	})
	ctx := context.Background()

	res, err := svc.Reserve(ctx, "rb002", "u001", []string{"r1-s1", "r9-s1"})
	require.NoError(t, err)
	require.Len(t, res.Bookings, 2)
	// r1-s1 standard (45) + r9-s1 VIP (60).
	assert.Equal(t, uint32(105), res.TotalPrice)
	for _, b := range res.Bookings {
		assert.Equal(t, "rb002", b.ScreeningID)
		assert.Equal(t, "u001", b.UserID)
		assert.NotEmpty(t, b.ID)
	}

	seats, err := svc.Availability(ctx, "rb002")
	require.NoError(t, err)
	booked := 0
	for _, s := range seats {
		if s.Status == model.SeatBooked {
			booked++
		}
	}
	assert.Equal(t, 2, booked)

	require.Len(t, published, 1)
	assert.Equal(t, "rb002", published[0].ScreeningID)
	assert.Equal(t, []string{"r1-s1", "r9-s1"}, published[0].SeatIDs)
	assert.Equal(t, "Dune: Part Two", published[0].MovieTitle)
}

func TestReserveConflictIsAllOrNothing(t *testing.T) {
	st := newDemoStores(t)
	svc := NewBookingService(st, nil)
	ctx := context.Background()

	_, err := svc.Reserve(ctx, "rb002", "u001", []string{"r1-s1", "r1-s2"})
	require.NoError(t, err)

	// Overlaps on r1-s2; r1-s3 must stay free afterwards.
	_, err = svc.Reserve(ctx, "rb002", "u002", []string{"r1-s2", "r1-s3"})
	var unavailable *repository.SeatsUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []string{"r1-s2"}, unavailable.Seats)

	seats, err := svc.Availability(ctx, "rb002")
	require.NoError(t, err)
	for _, s := range seats {
		if s.ID == "r1-s3" {
			assert.Equal(t, model.SeatAvailable, s.Status)
		}
	}

	// The losing user can immediately take the free remainder.
	_, err = svc.Reserve(ctx, "rb002", "u002", []string{"r1-s3"})
	assert.NoError(t, err)
}

func TestReserveValidation(t *testing.T) {
	svc := NewBookingService(newDemoStores(t), nil)
	ctx := context.Background()

	_, err := svc.Reserve(ctx, "rb002", "u001", nil)
	assert.ErrorIs(t, err, repository.ErrValidation)

	_, err = svc.Reserve(ctx, "rb002", "u001", []string{"r1-s1", "r1-s1"})
	assert.ErrorIs(t, err, repository.ErrValidation)

	_, err = svc.Reserve(ctx, "rb002", "u001", []string{"r0-s1"})
	assert.ErrorIs(t, err, repository.ErrValidation)

	_, err = svc.Reserve(ctx, "rb002", "u001", []string{"r1-s11"})
	assert.ErrorIs(t, err, repository.ErrValidation, "row 1 only has 10 seats")

	_, err = svc.Reserve(ctx, "nope", "u001", []string{"r1-s1"})
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)

	_, err = svc.Reserve(ctx, "rb002", "ghost", []string{"r1-s1"})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestReserveBannedUser(t *testing.T) {
	st := newDemoStores(t)
	ctx := context.Background()
	u, err := st.Users.GetByID(ctx, "u003")
	require.NoError(t, err)
	u.Banned = true
	require.NoError(t, st.Users.Update(ctx, u))

	svc := NewBookingService(st, nil)
	_, err = svc.Reserve(ctx, "rb002", "u003", []string{"r1-s1"})
	assert.ErrorIs(t, err, repository.ErrUserBanned)
}

func TestReserveRaceExactlyOneWins(t *testing.T) {
	st := newDemoStores(t)
	svc := NewBookingService(st, nil)
	ctx := context.Background()

	const racers = 16
	users := []string{"u001", "u002", "u003"}
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Reserve(ctx, "rb002", users[i%len(users)], []string{"r5-s5"})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		var unavailable *repository.SeatsUnavailableError
		assert.ErrorAs(t, err, &unavailable)
	}
	assert.Equal(t, 1, wins)

	rows, err := st.Bookings.ListByScreening(ctx, "rb002")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
