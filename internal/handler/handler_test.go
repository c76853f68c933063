package handler

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoiCoDA/AbsoluteCinema/internal/middleware"
	"github.com/RoiCoDA/AbsoluteCinema/internal/repository"
	"github.com/RoiCoDA/AbsoluteCinema/internal/service"
	"github.com/RoiCoDA/AbsoluteCinema/internal/utils"
)

type fixture struct {
	e       *echo.Echo
	stores  repository.Stores
	rooms   *RoomHandler
	booking *BookingHandler
	catalog *CatalogHandler
}

func newFixture(t *testing.T) *fixture {
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

	rooms := service.NewRoomService(st)
	return &fixture{
		e:       echo.New(),
		stores:  st,
		rooms:   &RoomHandler{Rooms: rooms},
		booking: &BookingHandler{Bookings: service.NewBookingService(st, nil)},
		catalog: &CatalogHandler{Catalog: st.Catalog, Rooms: rooms, Rand: rand.New(rand.NewSource(1))},
	}
}

// call runs a handler against a synthetic request and returns the
// recorder. userID, when set, plays the part of JWTAuth having run.
func (f *fixture) call(t *testing.T, method, path, body, userID string, params map[string]string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
	}
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	require.NoError(t, h(c))
	return rec
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.call(t, http.MethodGet, "/healthz", "", "", nil, Health)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestSeatsEndpoint(t *testing.T) {
	f := newFixture(t)
	rec := f.call(t, http.MethodGet, "/v1/rooms/rb001/seats", "", "", map[string]string{"id": "rb001"}, f.booking.Seats)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 108)
}

func TestSeatsUnknownRoomIs404(t *testing.T) {
	f := newFixture(t)
	rec := f.call(t, http.MethodGet, "/v1/rooms/nope/seats", "", "", map[string]string{"id": "nope"}, f.booking.Seats)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReserveConflictIs409WithSeats(t *testing.T) {
	f := newFixture(t)

	rec := f.call(t, http.MethodPost, "/v1/rooms/rb002/bookings",
		`{"seat_ids":["r1-s1","r1-s2"]}`, "u001", map[string]string{"id": "rb002"}, f.booking.Reserve)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.call(t, http.MethodPost, "/v1/rooms/rb002/bookings",
		`{"seat_ids":["r1-s2","r1-s3"]}`, "u002", map[string]string{"id": "rb002"}, f.booking.Reserve)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Seats []string `json:"seats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"r1-s2"}, resp.Seats)
}

func TestReserveEmptyBodyIs400(t *testing.T) {
	f := newFixture(t)
	rec := f.call(t, http.MethodPost, "/v1/rooms/rb002/bookings",
		`{"seat_ids":[]}`, "u001", map[string]string{"id": "rb002"}, f.booking.Reserve)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVoteStatusMapping(t *testing.T) {
	f := newFixture(t)

	// u003 already voted on ra001 in the seed, so this exercises the
	// idempotent path: 200 with the unchanged count.
	rec := f.call(t, http.MethodPost, "/v1/rooms/ra001/votes", "", "u003", map[string]string{"id": "ra001"}, f.rooms.Vote)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		VoteCount int `json:"vote_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.VoteCount)

	// Creator voting on their own proposal is forbidden.
	rec = f.call(t, http.MethodPost, "/v1/rooms/ra001/votes", "", "u001", map[string]string{"id": "ra001"}, f.rooms.Vote)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.call(t, http.MethodPost, "/v1/rooms/nope/votes", "", "u001", map[string]string{"id": "nope"}, f.rooms.Vote)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPromoteThenVoteConflicts(t *testing.T) {
	f := newFixture(t)

	rec := f.call(t, http.MethodPost, "/v1/rooms/ra002/promote", "", "u001", map[string]string{"id": "ra002"}, f.rooms.Promote)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.call(t, http.MethodPost, "/v1/rooms/ra002/votes", "", "u003", map[string]string{"id": "ra002"}, f.rooms.Vote)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSearchMovies(t *testing.T) {
	f := newFixture(t)
	rec := f.call(t, http.MethodGet, "/v1/movies/search?q=dune", "", "", nil, f.catalog.SearchMovies)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Query string `json:"query"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dune", resp.Query)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "m101", resp.Items[0].ID)
}

func TestJWTAuthMiddleware(t *testing.T) {
	secret := "test-secret"
	next := func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"user_id": c.Get("user_id"), "role": c.Get("role")})
	}
	mw := middleware.JWTAuth(secret)(next)
	e := echo.New()

	// No token.
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, mw(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token.
	req = httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	require.NoError(t, mw(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token issued the way the auth service issues them.
	tok, err := utils.NewAccessToken(secret, "u001", "admin", 5)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec = httptest.NewRecorder()
	require.NoError(t, mw(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "u001", resp["user_id"])
	assert.Equal(t, "admin", resp["role"])
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), tok.Exp, time.Minute)
}

func TestRequireRole(t *testing.T) {
	next := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	mw := middleware.RequireRole("admin")(next)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/v1/rooms/ra001/promote", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", "user")
	require.NoError(t, mw(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set("role", "admin")
	require.NoError(t, mw(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
