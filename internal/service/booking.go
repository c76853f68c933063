package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/RoiCoDA/AbsoluteCinema/internal/model"
	"github.com/RoiCoDA/AbsoluteCinema/internal/queue"
	"github.com/RoiCoDA/AbsoluteCinema/internal/repository"
	"github.com/RoiCoDA/AbsoluteCinema/internal/utils"
)

// PublishFunc sends a reservation event to the broker. Injected so
// tests can capture events without a running RabbitMQ.
type PublishFunc func(ctx context.Context, ev queue.SeatsReservedEvent) error

// BookingService owns seat availability and reservation for bookable
// rooms. Availability is always derived: the deterministic layout
// overlaid with the booking ledger, never a stored seat map.
type BookingService struct {
	screenings repository.ScreeningStore
	bookings   repository.BookingStore
	users      repository.UserStore
	catalog    repository.CatalogStore
	locks      *roomLocks
	publish    PublishFunc
}

// NewBookingService wires a BookingService over the given stores.
// publish may be nil when no broker is configured.
func NewBookingService(st repository.Stores, publish PublishFunc) *BookingService {
	return &BookingService{
		screenings: st.Screenings,
		bookings:   st.Bookings,
		users:      st.Users,
		catalog:    st.Catalog,
		locks:      newRoomLocks(),
		publish:    publish,
	}
}

// ReserveResult reports a committed reservation back to the caller.
type ReserveResult struct {
	Bookings   []model.Booking `json:"bookings"`
	SeatIDs    []string        `json:"seat_ids"`
	TotalPrice uint32          `json:"total_price"`
}

// Availability returns the full seat map for a bookable room: the
// layout template with Status flipped to booked for every seat the
// ledger references.
func (s *BookingService) Availability(ctx context.Context, roomID string) ([]model.Seat, error) {
	if _, err := s.screenings.GetByID(ctx, roomID); err != nil {
		return nil, err
	}
	booked, err := s.bookings.ListByScreening(ctx, roomID)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b.SeatID] = true
	}
	seats := GenerateLayout()
	for i := range seats {
		if taken[seats[i].ID] {
			seats[i].Status = model.SeatBooked
		}
	}
	return seats, nil
}

// Reserve books the given seats for the user, all or nothing. The
// whole check-then-write sequence runs under the room's lock, so two
// overlapping requests serialize and exactly one of them wins the
// contested seats. On conflict it returns SeatsUnavailableError
// listing every seat already taken, and writes nothing.
func (s *BookingService) Reserve(ctx context.Context, roomID, userID string, seatIDs []string) (*ReserveResult, error) {
	if len(seatIDs) == 0 {
		return nil, fmt.Errorf("%w: no seats requested", repository.ErrValidation)
	}
	layout := make(map[string]model.Seat)
	for _, seat := range GenerateLayout() {
		layout[seat.ID] = seat
	}
	seen := make(map[string]bool, len(seatIDs))
	for _, id := range seatIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate seat %q", repository.ErrValidation, id)
		}
		seen[id] = true
		if _, ok := layout[id]; !ok {
			return nil, fmt.Errorf("%w: unknown seat %q", repository.ErrValidation, id)
		}
	}

	screening, err := s.screenings.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if screening.Status != model.ScreeningBookable {
		return nil, fmt.Errorf("%w: room is not open for booking", repository.ErrValidation)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Banned {
		return nil, repository.ErrUserBanned
	}

	unlock := s.locks.lock(roomID)
	defer unlock()

	existing, err := s.bookings.ListByScreening(ctx, roomID)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(existing))
	for _, b := range existing {
		taken[b.SeatID] = true
	}
	var conflicts []string
	for _, id := range seatIDs {
		if taken[id] {
			conflicts = append(conflicts, id)
		}
	}
	if len(conflicts) > 0 {
		return nil, &repository.SeatsUnavailableError{Seats: conflicts}
	}

	now := time.Now().UTC()
	rows := make([]model.Booking, 0, len(seatIDs))
	var total uint32
	for _, id := range seatIDs {
		rows = append(rows, model.Booking{
			ID:          utils.NewID("bb"),
			ScreeningID: roomID,
			SeatID:      id,
			UserID:      userID,
			CreatedAt:   now,
		})
		total += layout[id].Price
	}
	if err := s.bookings.CreateBulk(ctx, rows); err != nil {
		return nil, err
	}

	s.announce(screening, userID, seatIDs, total, now)

	return &ReserveResult{Bookings: rows, SeatIDs: seatIDs, TotalPrice: total}, nil
}

// announce publishes the reservation event. Broker trouble never rolls
// back a committed booking, so failures are only logged.
func (s *BookingService) announce(screening *model.Screening, userID string, seatIDs []string, total uint32, at time.Time) {
	if s.publish == nil {
		return
	}
	ev := queue.SeatsReservedEvent{
		ScreeningID: screening.ID,
		UserID:      userID,
		SeatIDs:     seatIDs,
		TotalPrice:  total,
		ReservedAt:  at.Format(time.RFC3339),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if movie, err := s.catalog.GetMovie(ctx, screening.MovieID); err == nil {
		ev.MovieTitle = movie.Title
	}
	if loc, err := s.catalog.GetLocation(ctx, screening.LocationID); err == nil {
		ev.LocationName = loc.Name
	}
	if err := s.publish(ctx, ev); err != nil {
		log.Printf("booking: publish reservation event failed: %v", err)
	}
}
