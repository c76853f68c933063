package handler

import (
	"math/rand"
	"net/http"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/RoiCoDA/AbsoluteCinema/internal/repository"
	"github.com/RoiCoDA/AbsoluteCinema/internal/service"
)

// CatalogHandler serves the public browsing endpoints: movies, cities
// and the per-city venue offer. All of it is unauthenticated read
// traffic and sits behind the response cache where enabled.
type CatalogHandler struct {
	Catalog repository.CatalogStore
	Rooms   *service.RoomService

	// Rand drives the chain pick in CityLocations. rand.Rand is not
	// safe for concurrent use, hence the mutex.
	Rand   *rand.Rand
	randMu sync.Mutex
}

// ListMovies handles GET /v1/movies.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	movies, err := h.Catalog.ListMovies(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": movies})
}

// SearchMovies handles GET /v1/movies/search?q=. An empty query
// matches nothing, so the response carries an empty items list.
func (h *CatalogHandler) SearchMovies(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	movies, err := h.Catalog.SearchMovies(c.Request().Context(), q)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": movies, "query": q})
}

// MovieContext handles GET /v1/movies/:id/context, returning the movie
// together with every proposal and screening that exists for it.
func (h *CatalogHandler) MovieContext(c echo.Context) error {
	out, err := h.Rooms.ContextForMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListCities handles GET /v1/cities.
func (h *CatalogHandler) ListCities(c echo.Context) error {
	cities, err := h.Catalog.ListCities(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": cities})
}

// CityLocations handles GET /v1/cities/:id/locations: the system picks
// one operating chain in the city and returns that chain's open
// venues, which is the set the user chooses from when proposing.
func (h *CatalogHandler) CityLocations(c echo.Context) error {
	h.randMu.Lock()
	offer, err := h.Rooms.LocationsForCity(c.Request().Context(), c.Param("id"), h.Rand)
	h.randMu.Unlock()
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, offer)
}
