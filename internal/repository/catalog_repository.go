package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/RoiCoDA/AbsoluteCinema/internal/model"
)

// CatalogRepo is the MySQL implementation of CatalogStore. The tables
// it reads (movies, cities, companies, company_locations) are written
// once by Seed and never mutated at request time, so every method is
// a plain read with no locking concerns.
type CatalogRepo struct {
	db *sql.DB
}

// NewCatalogRepo constructs a CatalogRepo with the given DB handle.
func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// Seed bulk-inserts the reference rows when the movies table is
// empty. The whole seed runs in one transaction so a partially seeded
// catalog can never be observed.
func (r *CatalogRepo) Seed(ctx context.Context, data CatalogSeed) error {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	for _, m := range data.Movies {
		const q = `INSERT INTO movies (id, title, poster_url, release_year) VALUES (?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, q, m.ID, m.Title, m.PosterURL, m.ReleaseYear); err != nil {
			return err
		}
	}
	for _, c := range data.Cities {
		const q = `INSERT INTO cities (id, name_en, name_he, district) VALUES (?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, q, c.ID, c.NameEn, c.NameHe, c.District); err != nil {
			return err
		}
	}
	for _, c := range data.Companies {
		const q = `INSERT INTO companies (id, name, logo_url, active) VALUES (?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, q, c.ID, c.Name, c.LogoURL, c.Active); err != nil {
			return err
		}
	}
	for _, l := range data.Locations {
		const q = `INSERT INTO company_locations (id, company_id, city_id, name, address, latitude, longitude, open)
		           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, q, l.ID, l.CompanyID, l.CityID, l.Name, l.Address, l.Latitude, l.Longitude, l.Open); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func (r *CatalogRepo) queryMovies(ctx context.Context, q string, args ...interface{}) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Movie{}
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.PosterURL, &m.ReleaseYear); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMovies returns the full movie catalog ordered by identifier.
func (r *CatalogRepo) ListMovies(ctx context.Context) ([]model.Movie, error) {
	const q = `SELECT id, title, poster_url, release_year FROM movies ORDER BY id`
	return r.queryMovies(ctx, q)
}

// SearchMovies returns movies whose title contains the query,
// case-insensitive. An empty query yields an empty result.
func (r *CatalogRepo) SearchMovies(ctx context.Context, query string) ([]model.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Movie{}, nil
	}
	const q = `SELECT id, title, poster_url, release_year FROM movies
	           WHERE LOWER(title) LIKE ? ORDER BY id`
	return r.queryMovies(ctx, q, "%"+strings.ToLower(query)+"%")
}

// GetMovie returns a single movie by ID.
func (r *CatalogRepo) GetMovie(ctx context.Context, id string) (*model.Movie, error) {
	const q = `SELECT id, title, poster_url, release_year FROM movies WHERE id = ?`
	var m model.Movie
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Title, &m.PosterURL, &m.ReleaseYear)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListCities returns all cities ordered by identifier.
func (r *CatalogRepo) ListCities(ctx context.Context) ([]model.City, error) {
	const q = `SELECT id, name_en, name_he, district FROM cities ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.City{}
	for rows.Next() {
		var c model.City
		if err := rows.Scan(&c.ID, &c.NameEn, &c.NameHe, &c.District); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCity returns a single city by ID.
func (r *CatalogRepo) GetCity(ctx context.Context, id string) (*model.City, error) {
	const q = `SELECT id, name_en, name_he, district FROM cities WHERE id = ?`
	var c model.City
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.NameEn, &c.NameHe, &c.District)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCityNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetCompany returns a single company by ID.
func (r *CatalogRepo) GetCompany(ctx context.Context, id string) (*model.Company, error) {
	const q = `SELECT id, name, logo_url, active FROM companies WHERE id = ?`
	var c model.Company
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.LogoURL, &c.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

const locationCols = `id, company_id, city_id, name, address, latitude, longitude, open`

// GetLocation returns a single location by ID.
func (r *CatalogRepo) GetLocation(ctx context.Context, id string) (*model.Location, error) {
	const q = `SELECT ` + locationCols + ` FROM company_locations WHERE id = ?`
	var l model.Location
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&l.ID, &l.CompanyID, &l.CityID, &l.Name, &l.Address, &l.Latitude, &l.Longitude, &l.Open,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &l, nil
}

// ListLocationsByCity returns every location in a city ordered by
// identifier.
func (r *CatalogRepo) ListLocationsByCity(ctx context.Context, cityID string) ([]model.Location, error) {
	const q = `SELECT ` + locationCols + ` FROM company_locations WHERE city_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, cityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Location{}
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.CityID, &l.Name, &l.Address, &l.Latitude, &l.Longitude, &l.Open); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
