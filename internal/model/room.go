package model

import "time"

// Proposal statuses.
const (
	ProposalActive    = "active"
	ProposalConverted = "converted"
)

// Screening statuses.
const (
	ScreeningBookable = "bookable"
	ScreeningClosed   = "closed"
)

// Proposal is a community-proposed screening awaiting votes (Room A).
// The company is system-chosen when the proposer picks a city; the
// location is user-chosen from that company's venues. VoteCount is a
// cached counter and always equals the number of Vote records for the
// proposal.
//
// Fields:
//  ID          – primary key identifier (e.g. "ra-...").
//  MovieID     – FK -> movies.id.
//  CityID      – FK -> cities.id.
//  CompanyID   – FK -> companies.id (system-selected).
//  LocationID  – FK -> company_locations.id (user-selected).
//  CreatedBy   – FK -> users.id of the proposer.
//  CreatedAt   – creation timestamp.
//  VoteCount   – cached number of votes; starts at 1 because creation
//                casts the creator's own vote.
//  Status      – "active" until promoted, then "converted".
type Proposal struct {
	ID         string    `json:"id"`          // room_proposals.id
	MovieID    string    `json:"movie_id"`    // room_proposals.movie_id
	CityID     string    `json:"city_id"`     // room_proposals.city_id
	CompanyID  string    `json:"company_id"`  // room_proposals.company_id
	LocationID string    `json:"location_id"` // room_proposals.location_id
	CreatedBy  string    `json:"created_by"`  // room_proposals.created_by
	CreatedAt  time.Time `json:"created_at"`  // room_proposals.created_at
	VoteCount  int       `json:"vote_count"`  // room_proposals.vote_count (cached)
	Status     string    `json:"status"`      // room_proposals.status
}

// Vote is a single +1 cast by a user on a proposal. At most one vote
// exists per (proposal, user) pair; existence of the record is exactly
// what gates re-voting.
type Vote struct {
	ID         string    `json:"id"`          // proposal_votes.id
	ProposalID string    `json:"proposal_id"` // proposal_votes.proposal_id
	UserID     string    `json:"user_id"`     // proposal_votes.user_id
	Value      int       `json:"value"`       // always +1
	CreatedAt  time.Time `json:"created_at"`  // proposal_votes.created_at
}

// Screening is a confirmed, bookable virtual hall (Room B). It copies
// the movie/city/company/location references from the proposal it was
// promoted from so reads never need to chase the proposal record.
//
// Fields:
//  ID         – primary key identifier (e.g. "rb-...").
//  ProposalID – originating proposal, empty for screenings seeded
//               directly.
//  MovieID    – FK -> movies.id.
//  CityID     – FK -> cities.id.
//  CompanyID  – FK -> companies.id.
//  LocationID – FK -> company_locations.id.
//  CreatedAt  – creation timestamp.
//  Status     – "bookable" or "closed".
type Screening struct {
	ID         string    `json:"id"`                    // screenings.id
	ProposalID string    `json:"proposal_id,omitempty"` // screenings.proposal_id (nullable)
	MovieID    string    `json:"movie_id"`              // screenings.movie_id
	CityID     string    `json:"city_id"`               // screenings.city_id
	CompanyID  string    `json:"company_id"`            // screenings.company_id
	LocationID string    `json:"location_id"`           // screenings.location_id
	CreatedAt  time.Time `json:"created_at"`            // screenings.created_at
	Status     string    `json:"status"`                // screenings.status
}

// RoomKind tags the two variants of a room. Proposals and screenings
// share one identifier space; lookups probe proposals first, then
// screenings.
type RoomKind string

const (
	KindProposal  RoomKind = "proposal"
	KindScreening RoomKind = "screening"
)

// Room is a tagged union over the two room variants. Exactly one of
// Proposal and Screening is non-nil, matching Kind.
type Room struct {
	Kind      RoomKind   `json:"kind"`
	Proposal  *Proposal  `json:"proposal,omitempty"`
	Screening *Screening `json:"screening,omitempty"`
}

// ID returns the identifier of whichever variant the room holds.
func (r Room) ID() string {
	switch r.Kind {
	case KindProposal:
		if r.Proposal != nil {
			return r.Proposal.ID
		}
	case KindScreening:
		if r.Screening != nil {
			return r.Screening.ID
		}
	}
	return ""
}
