package repository

import (
	"context"

	"github.com/RoiCoDA/AbsoluteCinema/internal/model"
)

// UserStore provides persistence for users. Lookups return
// ErrUserNotFound on a miss.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
}

// CatalogStore provides read access to the immutable reference data
// (movies, cities, companies, locations) plus a one-shot Seed used at
// startup. Reads require no locking; the catalog never changes at
// request time.
type CatalogStore interface {
	ListMovies(ctx context.Context) ([]model.Movie, error)
	SearchMovies(ctx context.Context, query string) ([]model.Movie, error)
	GetMovie(ctx context.Context, id string) (*model.Movie, error)
	ListCities(ctx context.Context) ([]model.City, error)
	GetCity(ctx context.Context, id string) (*model.City, error)
	GetCompany(ctx context.Context, id string) (*model.Company, error)
	GetLocation(ctx context.Context, id string) (*model.Location, error)
	ListLocationsByCity(ctx context.Context, cityID string) ([]model.Location, error)
	// Seed inserts the reference rows when the catalog is empty and is
	// a no-op otherwise.
	Seed(ctx context.Context, data CatalogSeed) error
}

// ProposalStore provides persistence for Room A records. GetByID
// returns ErrRoomNotFound on a miss.
type ProposalStore interface {
	Create(ctx context.Context, p *model.Proposal) error
	GetByID(ctx context.Context, id string) (*model.Proposal, error)
	ListByMovie(ctx context.Context, movieID string) ([]model.Proposal, error)
	SetStatus(ctx context.Context, id, status string) error
	// IncrementVotes bumps the cached counter by one and returns the
	// new value.
	IncrementVotes(ctx context.Context, id string) (int, error)
}

// VoteStore provides persistence for proposal votes. Uniqueness on
// (proposal, user) is the store's invariant: Create returns
// ErrAlreadyVoted when a record for the pair exists.
type VoteStore interface {
	Exists(ctx context.Context, proposalID, userID string) (bool, error)
	Create(ctx context.Context, v model.Vote) error
	CountByProposal(ctx context.Context, proposalID string) (int, error)
}

// ScreeningStore provides persistence for Room B records. GetByID
// returns ErrRoomNotFound on a miss.
type ScreeningStore interface {
	Create(ctx context.Context, s *model.Screening) error
	GetByID(ctx context.Context, id string) (*model.Screening, error)
	ListByMovie(ctx context.Context, movieID string) ([]model.Screening, error)
}

// BookingStore provides persistence for seat bookings. CreateBulk is
// all-or-nothing: either every booking row is written or none is.
// Collision checking happens in the service under the room lock; the
// store only has to make the write atomic.
type BookingStore interface {
	ListByScreening(ctx context.Context, screeningID string) ([]model.Booking, error)
	CreateBulk(ctx context.Context, bookings []model.Booking) error
}

// Stores bundles one implementation of every store interface. Wiring
// code builds either the MySQL set or the in-memory set and hands the
// bundle to the services.
type Stores struct {
	Users      UserStore
	Catalog    CatalogStore
	Proposals  ProposalStore
	Votes      VoteStore
	Screenings ScreeningStore
	Bookings   BookingStore
}

// CatalogSeed bundles the reference rows Seed writes on first start.
type CatalogSeed struct {
	Movies    []model.Movie
	Cities    []model.City
	Companies []model.Company
	Locations []model.Location
}
