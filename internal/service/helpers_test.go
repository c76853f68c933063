package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RoiCoDA/AbsoluteCinema/internal/repository"
)

// newDemoStores builds the in-memory store bundle loaded with the
// demo world (catalog, users u001-u003, proposals ra001/ra002 and
// their votes, screenings rb001/rb002 with two seats already booked).
func newDemoStores(t *testing.T) repository.Stores {
	t.Helper()
	st := repository.Stores{
		Users:      repository.NewMemoryUserStore(),
		Catalog:    repository.NewMemoryCatalogStore(),
		Proposals:  repository.NewMemoryProposalStore(),
		Votes:      repository.NewMemoryVoteStore(),
		Screenings: repository.NewMemoryScreeningStore(),
		Bookings:   repository.NewMemoryBookingStore(),
	}
	require.NoError(t, repository.SeedDemo(context.Background(), st))
	return st
}
