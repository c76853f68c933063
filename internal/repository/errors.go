// Package repository defines the per-entity store interfaces the core
// logic depends on, together with the error values shared by every
// implementation. Handlers translate these sentinels into HTTP status
// codes; services return them untouched so callers can use errors.Is.
package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRoomNotFound is returned when a room identifier matches neither a
// proposal nor a screening.
var ErrRoomNotFound = errors.New("room not found")

// ErrMovieNotFound is returned on a catalog miss for a movie ID.
var ErrMovieNotFound = errors.New("movie not found")

// ErrCityNotFound is returned on a catalog miss for a city ID.
var ErrCityNotFound = errors.New("city not found")

// ErrLocationNotFound is returned on a catalog miss for a location ID.
var ErrLocationNotFound = errors.New("location not found")

// ErrCompanyNotFound is returned on a catalog miss for a company ID.
var ErrCompanyNotFound = errors.New("company not found")

// ErrUserNotFound is returned when a user lookup yields no row.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameTaken is returned when registration requests a username
// already held by another user.
var ErrUsernameTaken = errors.New("username already taken")

// ErrAlreadyVoted signals that a (proposal, user) vote record already
// exists. Callers treat it as a no-op success, never as a failure.
var ErrAlreadyVoted = errors.New("already voted")

// ErrSelfVote is returned when a proposal's creator tries to vote on
// their own proposal. Policy decision, enforced server-side.
var ErrSelfVote = errors.New("creator cannot vote on own proposal")

// ErrProposalConverted is returned when voting on or promoting a
// proposal that has already been converted into a screening.
var ErrProposalConverted = errors.New("proposal already converted")

// ErrUserBanned is returned when a banned user attempts to vote or
// reserve seats.
var ErrUserBanned = errors.New("user is banned")

// ErrValidation marks malformed input (phone number, username, seat
// sets). Wrap it with context: fmt.Errorf("%w: ...", ErrValidation).
var ErrValidation = errors.New("validation error")

// SeatsUnavailableError reports a reservation conflict. Seats lists
// the requested seat identifiers that already carry a booking; the
// whole reservation is rejected, nothing is partially committed.
type SeatsUnavailableError struct {
	Seats []string
}

func (e *SeatsUnavailableError) Error() string {
	return fmt.Sprintf("seats unavailable: %s", strings.Join(e.Seats, ", "))
}
