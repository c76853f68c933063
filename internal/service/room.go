package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/RoiCoDA/AbsoluteCinema/internal/model"
	"github.com/RoiCoDA/AbsoluteCinema/internal/repository"
	"github.com/RoiCoDA/AbsoluteCinema/internal/utils"
)

// RoomService owns the proposal/screening lifecycle: creating
// proposals, voting, promotion and context reads. Proposals and
// screenings share one identifier space, so room lookups probe the
// proposal store first and fall through to screenings.
type RoomService struct {
	proposals  repository.ProposalStore
	votes      repository.VoteStore
	screenings repository.ScreeningStore
	catalog    repository.CatalogStore
	users      repository.UserStore
	locks      *roomLocks
}

func NewRoomService(st repository.Stores) *RoomService {
	return &RoomService{
		proposals:  st.Proposals,
		votes:      st.Votes,
		screenings: st.Screenings,
		catalog:    st.Catalog,
		users:      st.Users,
		locks:      newRoomLocks(),
	}
}

// RoomContext is a room together with the denormalized reference data
// clients render: movie, city, company, venue, and for proposals the
// proposer's display name.
type RoomContext struct {
	Room        model.Room      `json:"room"`
	Movie       *model.Movie    `json:"movie,omitempty"`
	City        *model.City     `json:"city,omitempty"`
	Company     *model.Company  `json:"company,omitempty"`
	Location    *model.Location `json:"location,omitempty"`
	CreatorName string          `json:"creator_name,omitempty"`
}

// CityOffer is the system's answer to "I want to propose in this
// city": one chain picked for the user plus that chain's open venues
// there.
type CityOffer struct {
	Company   model.Company    `json:"company"`
	Locations []model.Location `json:"locations"`
}

// MovieContext lists every room that exists for a movie, split by
// lifecycle stage.
type MovieContext struct {
	Movie      model.Movie       `json:"movie"`
	Proposals  []model.Proposal  `json:"proposals"`
	Screenings []model.Screening `json:"screenings"`
}

// CreateProposal opens a new Room A for the movie at the chosen venue.
// Creation casts the creator's own vote: the proposal starts with
// VoteCount 1 and a matching vote record, so the creator can never
// vote on it again.
func (s *RoomService) CreateProposal(ctx context.Context, movieID, cityID, locationID, userID string) (*model.Proposal, error) {
	if _, err := s.catalog.GetMovie(ctx, movieID); err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetCity(ctx, cityID); err != nil {
		return nil, err
	}
	loc, err := s.catalog.GetLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if loc.CityID != cityID {
		return nil, fmt.Errorf("%w: location %s is not in city %s", repository.ErrValidation, locationID, cityID)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Banned {
		return nil, repository.ErrUserBanned
	}

	now := time.Now().UTC()
	p := &model.Proposal{
		ID:         utils.NewID("ra"),
		MovieID:    movieID,
		CityID:     cityID,
		CompanyID:  loc.CompanyID,
		LocationID: locationID,
		CreatedBy:  userID,
		CreatedAt:  now,
		VoteCount:  1,
		Status:     model.ProposalActive,
	}
	if err := s.proposals.Create(ctx, p); err != nil {
		return nil, err
	}
	vote := model.Vote{
		ID:         utils.NewID("rv"),
		ProposalID: p.ID,
		UserID:     userID,
		Value:      1,
		CreatedAt:  now,
	}
	if err := s.votes.Create(ctx, vote); err != nil {
		return nil, err
	}
	return p, nil
}

// Vote casts the user's +1 on a proposal and returns the resulting
// vote count. Repeat votes are a no-op success: the count comes back
// unchanged. The creator cannot vote twice by construction, and any
// later attempt is rejected outright.
func (s *RoomService) Vote(ctx context.Context, roomID, userID string) (int, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user.Banned {
		return 0, repository.ErrUserBanned
	}

	unlock := s.locks.lock(roomID)
	defer unlock()

	p, err := s.proposals.GetByID(ctx, roomID)
	if err != nil {
		return 0, err
	}
	if p.Status != model.ProposalActive {
		return 0, repository.ErrProposalConverted
	}
	if p.CreatedBy == userID {
		return 0, repository.ErrSelfVote
	}
	voted, err := s.votes.Exists(ctx, roomID, userID)
	if err != nil {
		return 0, err
	}
	if voted {
		return p.VoteCount, nil
	}
	vote := model.Vote{
		ID:         utils.NewID("rv"),
		ProposalID: roomID,
		UserID:     userID,
		Value:      1,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.votes.Create(ctx, vote); err != nil {
		// A concurrent insert on another instance can still lose the
		// race at the unique key; treat it as the no-op path.
		if errors.Is(err, repository.ErrAlreadyVoted) {
			return p.VoteCount, nil
		}
		return 0, err
	}
	return s.proposals.IncrementVotes(ctx, roomID)
}

// Promote converts an active proposal into a bookable screening. The
// proposal stays behind with status "converted" so its votes remain
// auditable; the new screening copies the reference columns.
func (s *RoomService) Promote(ctx context.Context, roomID string) (*model.Screening, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	p, err := s.proposals.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if p.Status != model.ProposalActive {
		return nil, repository.ErrProposalConverted
	}
	if err := s.proposals.SetStatus(ctx, roomID, model.ProposalConverted); err != nil {
		return nil, err
	}
	sc := &model.Screening{
		ID:         utils.NewID("rb"),
		ProposalID: p.ID,
		MovieID:    p.MovieID,
		CityID:     p.CityID,
		CompanyID:  p.CompanyID,
		LocationID: p.LocationID,
		CreatedAt:  time.Now().UTC(),
		Status:     model.ScreeningBookable,
	}
	if err := s.screenings.Create(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// Get resolves a room identifier to whichever variant it names.
func (s *RoomService) Get(ctx context.Context, roomID string) (model.Room, error) {
	p, err := s.proposals.GetByID(ctx, roomID)
	if err == nil {
		return model.Room{Kind: model.KindProposal, Proposal: p}, nil
	}
	if !errors.Is(err, repository.ErrRoomNotFound) {
		return model.Room{}, err
	}
	sc, err := s.screenings.GetByID(ctx, roomID)
	if err != nil {
		return model.Room{}, err
	}
	return model.Room{Kind: model.KindScreening, Screening: sc}, nil
}

// Context resolves a room and joins in its reference data. A missing
// proposer record degrades to the "Unknown User" placeholder instead
// of failing the whole read.
func (s *RoomService) Context(ctx context.Context, roomID string) (*RoomContext, error) {
	room, err := s.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	out := &RoomContext{Room: room}

	var movieID, cityID, companyID, locationID string
	switch room.Kind {
	case model.KindProposal:
		p := room.Proposal
		movieID, cityID, companyID, locationID = p.MovieID, p.CityID, p.CompanyID, p.LocationID
		out.CreatorName = "Unknown User"
		if creator, err := s.users.GetByID(ctx, p.CreatedBy); err == nil {
			out.CreatorName = creator.FullName
		}
	case model.KindScreening:
		sc := room.Screening
		movieID, cityID, companyID, locationID = sc.MovieID, sc.CityID, sc.CompanyID, sc.LocationID
	}

	if movie, err := s.catalog.GetMovie(ctx, movieID); err == nil {
		out.Movie = movie
	}
	if city, err := s.catalog.GetCity(ctx, cityID); err == nil {
		out.City = city
	}
	if company, err := s.catalog.GetCompany(ctx, companyID); err == nil {
		out.Company = company
	}
	if loc, err := s.catalog.GetLocation(ctx, locationID); err == nil {
		out.Location = loc
	}
	return out, nil
}

// LocationsForCity picks one active chain for the city (random over
// the chains that actually operate open venues there) and returns its
// venues. The caller owns the randomness source; handlers pass a
// process-wide one and tests pass a seeded one.
func (s *RoomService) LocationsForCity(ctx context.Context, cityID string, rng *rand.Rand) (*CityOffer, error) {
	if _, err := s.catalog.GetCity(ctx, cityID); err != nil {
		return nil, err
	}
	all, err := s.catalog.ListLocationsByCity(ctx, cityID)
	if err != nil {
		return nil, err
	}

	byCompany := make(map[string][]model.Location)
	var companyIDs []string
	for _, loc := range all {
		if !loc.Open {
			continue
		}
		company, err := s.catalog.GetCompany(ctx, loc.CompanyID)
		if err != nil || !company.Active {
			continue
		}
		if _, ok := byCompany[loc.CompanyID]; !ok {
			companyIDs = append(companyIDs, loc.CompanyID)
		}
		byCompany[loc.CompanyID] = append(byCompany[loc.CompanyID], loc)
	}
	if len(companyIDs) == 0 {
		return nil, repository.ErrLocationNotFound
	}

	chosen := companyIDs[rng.Intn(len(companyIDs))]
	company, err := s.catalog.GetCompany(ctx, chosen)
	if err != nil {
		return nil, err
	}
	return &CityOffer{Company: *company, Locations: byCompany[chosen]}, nil
}

// ContextForMovie lists a movie together with every room proposed or
// promoted for it.
func (s *RoomService) ContextForMovie(ctx context.Context, movieID string) (*MovieContext, error) {
	movie, err := s.catalog.GetMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	proposals, err := s.proposals.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	screenings, err := s.screenings.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	return &MovieContext{Movie: *movie, Proposals: proposals, Screenings: screenings}, nil
}
