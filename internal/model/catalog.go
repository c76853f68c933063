package model

// Movie is immutable reference data describing a film that rooms can
// be proposed for. Description, rating, runtime and genres are
// optional; the seeded catalog only carries the basics.
//
// Fields:
//  ID          – primary key identifier (e.g. "m101").
//  Title       – display title.
//  PosterURL   – poster image reference.
//  ReleaseYear – year of release.
type Movie struct {
	ID          string   `json:"id"`           // movies.id
	Title       string   `json:"title"`        // movies.title
	PosterURL   string   `json:"poster_url"`   // movies.poster_url
	ReleaseYear int      `json:"release_year"` // movies.release_year
	Description string   `json:"description,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	RuntimeMin  int      `json:"runtime_min,omitempty"`
	Genres      []string `json:"genres,omitempty"`
}

// City is immutable reference data. Users pick a city when proposing
// a room; locations belong to exactly one city.
type City struct {
	ID       string `json:"id"`       // cities.id
	NameEn   string `json:"name_en"`  // cities.name_en
	NameHe   string `json:"name_he"`  // cities.name_he
	District string `json:"district"` // cities.district
}

// Company is a cinema chain. The system, not the user, picks the
// company when a city is chosen for a new proposal.
type Company struct {
	ID      string `json:"id"`       // companies.id
	Name    string `json:"name"`     // companies.name
	LogoURL string `json:"logo_url"` // companies.logo_url
	Active  bool   `json:"active"`   // companies.active
}

// Location is a physical venue of a company within a city. Each
// location belongs to one company and one city.
//
// Fields:
//  ID        – primary key identifier (e.g. "loc001").
//  CompanyID – FK -> companies.id.
//  CityID    – FK -> cities.id.
//  Name      – display name of the venue.
//  Address   – street address.
//  Latitude  – venue latitude.
//  Longitude – venue longitude.
//  Open      – whether the venue currently operates.
type Location struct {
	ID        string  `json:"id"`         // company_locations.id
	CompanyID string  `json:"company_id"` // company_locations.company_id
	CityID    string  `json:"city_id"`    // company_locations.city_id
	Name      string  `json:"name"`       // company_locations.name
	Address   string  `json:"address"`    // company_locations.address
	Latitude  float64 `json:"latitude"`   // company_locations.latitude
	Longitude float64 `json:"longitude"`  // company_locations.longitude
	Open      bool    `json:"open"`       // company_locations.open
}
