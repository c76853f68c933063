package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newTestAuth(t *testing.T, codes CodeStore) *AuthService {
	t.Helper()
	users := NewUserService(newDemoStores(t))
	return NewAuthService(users, codes, testSecret, 60, 5*time.Minute, []string{"0500000001"})
}

func putCode(t *testing.T, codes CodeStore, phone, code string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, codes.Put(context.Background(), phone, string(hash), time.Minute))
}

func TestVerifyCode(t *testing.T) {
	codes := NewMemoryCodeStore()
	svc := newTestAuth(t, codes)
	ctx := context.Background()

	putCode(t, codes, "+972509998877", "0417")

	_, err := svc.VerifyCode(ctx, "0509998877", "9999")
	assert.ErrorIs(t, err, ErrBadCode)

	res, err := svc.VerifyCode(ctx, "0509998877", "0417")
	require.NoError(t, err)
	assert.Equal(t, "+972509998877", res.User.PhoneNumber)
	assert.Equal(t, "user", res.Role)
	require.NotEmpty(t, res.Token)

	// The token carries the user's ID and role.
	tok, err := jwt.Parse(res.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, res.User.ID, claims["sub"])
	assert.Equal(t, "user", claims["role"])

	// A correct code is single-use.
	_, err = svc.VerifyCode(ctx, "0509998877", "0417")
	assert.ErrorIs(t, err, ErrBadCode)
}

func TestVerifyCodeAdminRole(t *testing.T) {
	codes := NewMemoryCodeStore()
	svc := newTestAuth(t, codes)

	putCode(t, codes, "+972500000001", "1234")
	res, err := svc.VerifyCode(context.Background(), "050-000-0001", "1234")
	require.NoError(t, err)
	assert.Equal(t, "admin", res.Role)
}

func TestRequestCodeThenVerifyRoundTrip(t *testing.T) {
	codes := NewMemoryCodeStore()
	svc := newTestAuth(t, codes)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "0509998877"))

	// The stored entry is a hash, never the code itself.
	hash, err := codes.Get(ctx, "+972509998877")
	require.NoError(t, err)
	assert.True(t, len(hash) > 4)
	assert.NotRegexp(t, `^\d{4}$`, hash)
}

func TestMemoryCodeStoreExpiry(t *testing.T) {
	codes := NewMemoryCodeStore()
	ctx := context.Background()
	require.NoError(t, codes.Put(ctx, "+972501234567", "hash", -time.Second))
	_, err := codes.Get(ctx, "+972501234567")
	assert.ErrorIs(t, err, ErrBadCode)
}
