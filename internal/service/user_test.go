package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoiCoDA/AbsoluteCinema/internal/repository"
)

func TestFindOrCreateIsKeyedByNormalizedPhone(t *testing.T) {
	svc := NewUserService(newDemoStores(t))
	ctx := context.Background()

	u1, err := svc.FindOrCreate(ctx, "050-999-8877")
	require.NoError(t, err)
	assert.Equal(t, "+972509998877", u1.PhoneNumber)
	assert.Equal(t, "User 8877", u1.FullName)
	assert.Empty(t, u1.Username)

	// Same number in a different format resolves to the same account.
	u2, err := svc.FindOrCreate(ctx, "972509998877")
	require.NoError(t, err)
	assert.Equal(t, u1.ID, u2.ID)

	_, err = svc.FindOrCreate(ctx, "not a phone")
	assert.ErrorIs(t, err, repository.ErrValidation)
}

func TestFindOrCreateReturnsSeededUser(t *testing.T) {
	svc := NewUserService(newDemoStores(t))
	u, err := svc.FindOrCreate(context.Background(), "0541112223")
	require.NoError(t, err)
	assert.Equal(t, "u002", u.ID)
	assert.Equal(t, "Dan Cohen", u.FullName)
}

func TestRegister(t *testing.T) {
	st := newDemoStores(t)
	svc := NewUserService(st)
	ctx := context.Background()

	u, err := svc.Register(ctx, "u001", "alice", "Alice Levi")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	// Taken, case-insensitively, by someone else.
	_, err = svc.Register(ctx, "u002", "ALICE", "Dan Cohen")
	assert.ErrorIs(t, err, repository.ErrUsernameTaken)

	// Re-registering your own name is fine.
	_, err = svc.Register(ctx, "u001", "alice", "Alice L.")
	assert.NoError(t, err)

	_, err = svc.Register(ctx, "u002", "ab", "Dan Cohen")
	assert.ErrorIs(t, err, repository.ErrValidation)
	_, err = svc.Register(ctx, "u002", "dan", "D")
	assert.ErrorIs(t, err, repository.ErrValidation)
	_, err = svc.Register(ctx, "ghost", "dan", "Dan Cohen")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
