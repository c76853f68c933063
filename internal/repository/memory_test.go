package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoiCoDA/AbsoluteCinema/internal/model"
)

func newStores() Stores {
	return Stores{
		Users:      NewMemoryUserStore(),
		Catalog:    NewMemoryCatalogStore(),
		Proposals:  NewMemoryProposalStore(),
		Votes:      NewMemoryVoteStore(),
		Screenings: NewMemoryScreeningStore(),
		Bookings:   NewMemoryBookingStore(),
	}
}

func TestMemoryVoteStoreUniqueness(t *testing.T) {
	st := newStores()
	ctx := context.Background()

	require.NoError(t, st.Votes.Create(ctx, model.Vote{ID: "v1", ProposalID: "ra1", UserID: "u1", Value: 1}))
	err := st.Votes.Create(ctx, model.Vote{ID: "v2", ProposalID: "ra1", UserID: "u1", Value: 1})
	assert.ErrorIs(t, err, ErrAlreadyVoted)

	// Different user, same proposal is fine.
	require.NoError(t, st.Votes.Create(ctx, model.Vote{ID: "v3", ProposalID: "ra1", UserID: "u2", Value: 1}))

	n, err := st.Votes.CountByProposal(ctx, "ra1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMemoryBookingStoreCreateBulkAtomic(t *testing.T) {
	st := newStores()
	ctx := context.Background()

	require.NoError(t, st.Bookings.CreateBulk(ctx, []model.Booking{
		{ID: "b1", ScreeningID: "rb1", SeatID: "r1-s1", UserID: "u1"},
	}))

	// One of the two rows collides; neither may be written.
	err := st.Bookings.CreateBulk(ctx, []model.Booking{
		{ID: "b2", ScreeningID: "rb1", SeatID: "r1-s1", UserID: "u2"},
		{ID: "b3", ScreeningID: "rb1", SeatID: "r1-s2", UserID: "u2"},
	})
	var unavailable *SeatsUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []string{"r1-s1"}, unavailable.Seats)

	rows, err := st.Bookings.ListByScreening(ctx, "rb1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "b1", rows[0].ID)

	// The same seat on another screening is independent.
	require.NoError(t, st.Bookings.CreateBulk(ctx, []model.Booking{
		{ID: "b4", ScreeningID: "rb2", SeatID: "r1-s1", UserID: "u2"},
	}))
}

func TestMemoryUserStoreUsernameCaseInsensitive(t *testing.T) {
	st := newStores()
	ctx := context.Background()

	require.NoError(t, st.Users.Create(ctx, &model.User{ID: "u1", PhoneNumber: "+972501111111", Username: "Alice", FullName: "Alice"}))

	got, err := st.Users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	_, err = st.Users.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryProposalStoreIncrementVotes(t *testing.T) {
	st := newStores()
	ctx := context.Background()

	require.NoError(t, st.Proposals.Create(ctx, &model.Proposal{ID: "ra1", VoteCount: 1, Status: model.ProposalActive}))
	n, err := st.Proposals.IncrementVotes(ctx, "ra1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = st.Proposals.IncrementVotes(ctx, "nope")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestSeedDemo(t *testing.T) {
	st := newStores()
	ctx := context.Background()

	require.NoError(t, SeedDemo(ctx, st))
	// Running twice must not duplicate anything.
	require.NoError(t, SeedDemo(ctx, st))

	movies, err := st.Catalog.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 20)

	for _, id := range []string{"ra001", "ra002"} {
		p, err := st.Proposals.GetByID(ctx, id)
		require.NoError(t, err)
		n, err := st.Votes.CountByProposal(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, p.VoteCount, n, "cached counter must equal vote records for %s", id)
	}

	rows, err := st.Bookings.ListByScreening(ctx, "rb001")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestMemoryCatalogSearch(t *testing.T) {
	st := newStores()
	ctx := context.Background()
	require.NoError(t, st.Catalog.Seed(ctx, DemoCatalog()))

	hits, err := st.Catalog.SearchMovies(ctx, "dune")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "m101", hits[0].ID)

	hits, err = st.Catalog.SearchMovies(ctx, "ZZZ")
	require.NoError(t, err)
	assert.Empty(t, hits)
}
