package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/RoiCoDA/AbsoluteCinema/internal/model"
)

// In-memory implementations of the store interfaces. They back the
// service when no database DSN is configured and every unit test.
// Each store guards its maps with its own RWMutex and returns copies
// so callers can never mutate shared state.

// MemoryUserStore implements UserStore over maps.
type MemoryUserStore struct {
	mu         sync.RWMutex
	users      map[string]*model.User
	byPhone    map[string]string // phone -> user ID
	byUsername map[string]string // username -> user ID
}

// NewMemoryUserStore returns an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:      make(map[string]*model.User),
		byPhone:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (s *MemoryUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryUserStore) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byPhone[phone]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *s.users[id]
	return &cp, nil
}

func (s *MemoryUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[strings.ToLower(username)]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *s.users[id]
	return &cp, nil
}

func (s *MemoryUserStore) Create(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byPhone[u.PhoneNumber]; exists {
		return ErrValidation
	}
	if u.Username != "" {
		if _, exists := s.byUsername[strings.ToLower(u.Username)]; exists {
			return ErrUsernameTaken
		}
	}
	cp := *u
	s.users[u.ID] = &cp
	s.byPhone[u.PhoneNumber] = u.ID
	if u.Username != "" {
		s.byUsername[strings.ToLower(u.Username)] = u.ID
	}
	return nil
}

func (s *MemoryUserStore) Update(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.users[u.ID]
	if !ok {
		return ErrUserNotFound
	}
	if u.Username != "" && !strings.EqualFold(u.Username, old.Username) {
		if owner, exists := s.byUsername[strings.ToLower(u.Username)]; exists && owner != u.ID {
			return ErrUsernameTaken
		}
		if old.Username != "" {
			delete(s.byUsername, strings.ToLower(old.Username))
		}
		s.byUsername[strings.ToLower(u.Username)] = u.ID
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

// MemoryCatalogStore implements CatalogStore over slices. The catalog
// is written once by Seed and read-only afterwards.
type MemoryCatalogStore struct {
	mu        sync.RWMutex
	movies    []model.Movie
	cities    []model.City
	companies []model.Company
	locations []model.Location
}

// NewMemoryCatalogStore returns an empty in-memory catalog.
func NewMemoryCatalogStore() *MemoryCatalogStore {
	return &MemoryCatalogStore{}
}

func (s *MemoryCatalogStore) Seed(ctx context.Context, data CatalogSeed) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.movies) > 0 {
		return nil
	}
	s.movies = append([]model.Movie(nil), data.Movies...)
	s.cities = append([]model.City(nil), data.Cities...)
	s.companies = append([]model.Company(nil), data.Companies...)
	s.locations = append([]model.Location(nil), data.Locations...)
	return nil
}

func (s *MemoryCatalogStore) ListMovies(ctx context.Context) ([]model.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Movie(nil), s.movies...), nil
}

func (s *MemoryCatalogStore) SearchMovies(ctx context.Context, query string) ([]model.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []model.Movie{}, nil
	}
	out := []model.Movie{}
	for _, m := range s.movies {
		if strings.Contains(strings.ToLower(m.Title), q) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MemoryCatalogStore) GetMovie(ctx context.Context, id string) (*model.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.movies {
		if m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, ErrMovieNotFound
}

func (s *MemoryCatalogStore) ListCities(ctx context.Context) ([]model.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.City(nil), s.cities...), nil
}

func (s *MemoryCatalogStore) GetCity(ctx context.Context, id string) (*model.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cities {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrCityNotFound
}

func (s *MemoryCatalogStore) GetCompany(ctx context.Context, id string) (*model.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.companies {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrCompanyNotFound
}

func (s *MemoryCatalogStore) GetLocation(ctx context.Context, id string) (*model.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.locations {
		if l.ID == id {
			cp := l
			return &cp, nil
		}
	}
	return nil, ErrLocationNotFound
}

func (s *MemoryCatalogStore) ListLocationsByCity(ctx context.Context, cityID string) ([]model.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Location{}
	for _, l := range s.locations {
		if l.CityID == cityID {
			out = append(out, l)
		}
	}
	return out, nil
}

// MemoryProposalStore implements ProposalStore over a map.
type MemoryProposalStore struct {
	mu        sync.RWMutex
	proposals map[string]*model.Proposal
}

// NewMemoryProposalStore returns an empty in-memory proposal store.
func NewMemoryProposalStore() *MemoryProposalStore {
	return &MemoryProposalStore{proposals: make(map[string]*model.Proposal)}
}

func (s *MemoryProposalStore) Create(ctx context.Context, p *model.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.proposals[p.ID] = &cp
	return nil
}

func (s *MemoryProposalStore) GetByID(ctx context.Context, id string) (*model.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.proposals[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryProposalStore) ListByMovie(ctx context.Context, movieID string) ([]model.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Proposal{}
	for _, p := range s.proposals {
		if p.MovieID == movieID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryProposalStore) SetStatus(ctx context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.proposals[id]
	if !ok {
		return ErrRoomNotFound
	}
	p.Status = status
	return nil
}

func (s *MemoryProposalStore) IncrementVotes(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.proposals[id]
	if !ok {
		return 0, ErrRoomNotFound
	}
	p.VoteCount++
	return p.VoteCount, nil
}

// MemoryVoteStore implements VoteStore over a map keyed by
// (proposal, user).
type MemoryVoteStore struct {
	mu    sync.RWMutex
	votes map[string]model.Vote // key: proposalID + "\x00" + userID
}

// NewMemoryVoteStore returns an empty in-memory vote store.
func NewMemoryVoteStore() *MemoryVoteStore {
	return &MemoryVoteStore{votes: make(map[string]model.Vote)}
}

func voteKey(proposalID, userID string) string { return proposalID + "\x00" + userID }

func (s *MemoryVoteStore) Exists(ctx context.Context, proposalID, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.votes[voteKey(proposalID, userID)]
	return ok, nil
}

func (s *MemoryVoteStore) Create(ctx context.Context, v model.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := voteKey(v.ProposalID, v.UserID)
	if _, ok := s.votes[key]; ok {
		return ErrAlreadyVoted
	}
	s.votes[key] = v
	return nil
}

func (s *MemoryVoteStore) CountByProposal(ctx context.Context, proposalID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, v := range s.votes {
		if v.ProposalID == proposalID {
			n++
		}
	}
	return n, nil
}

// MemoryScreeningStore implements ScreeningStore over a map.
type MemoryScreeningStore struct {
	mu         sync.RWMutex
	screenings map[string]*model.Screening
}

// NewMemoryScreeningStore returns an empty in-memory screening store.
func NewMemoryScreeningStore() *MemoryScreeningStore {
	return &MemoryScreeningStore{screenings: make(map[string]*model.Screening)}
}

func (s *MemoryScreeningStore) Create(ctx context.Context, sc *model.Screening) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sc
	s.screenings[sc.ID] = &cp
	return nil
}

func (s *MemoryScreeningStore) GetByID(ctx context.Context, id string) (*model.Screening, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.screenings[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	cp := *sc
	return &cp, nil
}

func (s *MemoryScreeningStore) ListByMovie(ctx context.Context, movieID string) ([]model.Screening, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Screening{}
	for _, sc := range s.screenings {
		if sc.MovieID == movieID {
			out = append(out, *sc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// MemoryBookingStore implements BookingStore over a per-screening
// slice plus a seat index for duplicate detection.
type MemoryBookingStore struct {
	mu          sync.RWMutex
	byScreening map[string][]model.Booking
	seatTaken   map[string]bool // key: screeningID + "\x00" + seatID
}

// NewMemoryBookingStore returns an empty in-memory booking ledger.
func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{
		byScreening: make(map[string][]model.Booking),
		seatTaken:   make(map[string]bool),
	}
}

func seatKey(screeningID, seatID string) string { return screeningID + "\x00" + seatID }

func (s *MemoryBookingStore) ListByScreening(ctx context.Context, screeningID string) ([]model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Booking(nil), s.byScreening[screeningID]...), nil
}

func (s *MemoryBookingStore) CreateBulk(ctx context.Context, bookings []model.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Reject the whole batch before touching state so a duplicate can
	// never leave a partial write behind.
	conflict := []string{}
	for _, b := range bookings {
		if s.seatTaken[seatKey(b.ScreeningID, b.SeatID)] {
			conflict = append(conflict, b.SeatID)
		}
	}
	if len(conflict) > 0 {
		return &SeatsUnavailableError{Seats: conflict}
	}
	for _, b := range bookings {
		s.byScreening[b.ScreeningID] = append(s.byScreening[b.ScreeningID], b)
		s.seatTaken[seatKey(b.ScreeningID, b.SeatID)] = true
	}
	return nil
}
