package repository

import (
	"context"
	"errors"
	"time"

	"github.com/RoiCoDA/AbsoluteCinema/internal/model"
)

// DemoCatalog returns the canonical reference dataset: the movie
// catalog, the three cities, the three cinema chains and their four
// venues. Seeded once at startup; immutable afterwards.
func DemoCatalog() CatalogSeed {
	return CatalogSeed{
		Movies: []model.Movie{
			{ID: "m101", Title: "Dune: Part Two", PosterURL: "https://image.tmdb.org/t/p/w500/8b8R8l88Qje9dn9OE8PY05Nxl1X.jpg", ReleaseYear: 2024},
			{ID: "m102", Title: "Oppenheimer", PosterURL: "https://image.tmdb.org/t/p/w500/8Gxv8gSFCU0XGDykEGv7zR1n2ua.jpg", ReleaseYear: 2023},
			{ID: "m103", Title: "Deadpool & Wolverine", PosterURL: "https://image.tmdb.org/t/p/w500/8cdWjvZQUExUUTzyp4t6EDMubfO.jpg", ReleaseYear: 2024},
			{ID: "m104", Title: "Top Gun: Maverick", PosterURL: "https://image.tmdb.org/t/p/w500/62HCnUTziyWcpDaBO2i1DX17ljH.jpg", ReleaseYear: 2022},
			{ID: "m105", Title: "Jurassic World Dominion", PosterURL: "https://image.tmdb.org/t/p/w500/kAVRgw7GgK1CfYEJq8ME6EvRIgU.jpg", ReleaseYear: 2022},
			{ID: "m106", Title: "Everything Everywhere All at Once", PosterURL: "https://image.tmdb.org/t/p/w500/w3LxiVYdWWRvEVdn5RYq6jIqkb1.jpg", ReleaseYear: 2022},
			{ID: "m107", Title: "Black Adam", PosterURL: "https://image.tmdb.org/t/p/w500/pFlaoHTZeyNkG83vxsAJiGzfSsa.jpg", ReleaseYear: 2022},
			{ID: "m108", Title: "The Northman", PosterURL: "https://image.tmdb.org/t/p/w500/zhLKlUaF1SEpO58ppHIAyENkwgw.jpg", ReleaseYear: 2022},
			{ID: "m109", Title: "Lightyear", PosterURL: "https://image.tmdb.org/t/p/w500/ox4goZd956BxqJH6iLwhWPL9ct4.jpg", ReleaseYear: 2022},
			{ID: "m110", Title: "Spiderhead", PosterURL: "https://image.tmdb.org/t/p/w500/5hTK0J9SGPLSTFwcbU0ELlJsnAY.jpg", ReleaseYear: 2022},
			{ID: "m111", Title: "Interceptor", PosterURL: "https://image.tmdb.org/t/p/w500/cpWUtkcgRKeauhTyVMjYHxAutp4.jpg", ReleaseYear: 2022},
			{ID: "m112", Title: "Zack Snyder's Justice League", PosterURL: "https://image.tmdb.org/t/p/w500/tnAuB8q5vv7Ax9UAEje5Xi4BXik.jpg", ReleaseYear: 2021},
			{ID: "m113", Title: "Raya and the Last Dragon", PosterURL: "https://image.tmdb.org/t/p/w500/lPsD10PP4rgUGiGR4CCXA6iY0QQ.jpg", ReleaseYear: 2021},
			{ID: "m114", Title: "Tom & Jerry", PosterURL: "https://image.tmdb.org/t/p/w500/6KErczPBROQty7QoIsaa6wJYXZi.jpg", ReleaseYear: 2021},
			{ID: "m115", Title: "Monster Hunter", PosterURL: "https://image.tmdb.org/t/p/w500/1UCOF11QCw8kcqvce8LKOO6pimh.jpg", ReleaseYear: 2020},
			{ID: "m116", Title: "Wonder Woman 1984", PosterURL: "https://image.tmdb.org/t/p/w500/8UlWHLMpgZm9bx6QYh0NFoq67TZ.jpg", ReleaseYear: 2020},
			{ID: "m117", Title: "Cherry", PosterURL: "https://image.tmdb.org/t/p/w500/pwDvkDyaHEU9V7cApQhbcSJMG1w.jpg", ReleaseYear: 2021},
			{ID: "m118", Title: "Outside the Wire", PosterURL: "https://image.tmdb.org/t/p/w500/6XYLiMxHAaCsoyrVo38LBWMw2p8.jpg", ReleaseYear: 2021},
			{ID: "m119", Title: "Coming 2 America", PosterURL: "https://image.tmdb.org/t/p/w500/nWBPLkqNApY5pgrJFMiI9joSI30.jpg", ReleaseYear: 2021},
			{ID: "m120", Title: "Below Zero", PosterURL: "https://image.tmdb.org/t/p/w500/dWSnsAGTfc8U27bWsy2RfwZs0Bs.jpg", ReleaseYear: 2021},
		},
		Cities: []model.City{
			{ID: "c001", NameEn: "Tel Aviv", NameHe: "תל אביב", District: "Center"},
			{ID: "c002", NameEn: "Haifa", NameHe: "חיפה", District: "North"},
			{ID: "c003", NameEn: "Jerusalem", NameHe: "ירושלים", District: "Jerusalem District"},
		},
		Companies: []model.Company{
			{ID: "co001", Name: "CinemaStar", Active: true},
			{ID: "co002", Name: "MegaScreen", Active: true},
			{ID: "co003", Name: "CinePrime", Active: true},
		},
		Locations: []model.Location{
			{ID: "loc001", CompanyID: "co001", CityID: "c001", Name: "CinemaStar – Dizengoff", Address: "Dizengoff St 120, Tel Aviv", Latitude: 32.08, Longitude: 34.78, Open: true},
			{ID: "loc002", CompanyID: "co002", CityID: "c001", Name: "MegaScreen – Azrieli", Address: "Derech Menachem Begin 132, Tel Aviv", Latitude: 32.074, Longitude: 34.792, Open: true},
			{ID: "loc003", CompanyID: "co003", CityID: "c003", Name: "CinePrime – Malha Mall", Address: "Malha Mall, Jerusalem", Latitude: 31.751, Longitude: 35.188, Open: true},
			{ID: "loc004", CompanyID: "co001", CityID: "c002", Name: "Grand Mall, Haifa", Address: "Grand Mall, Haifa", Latitude: 32.789233, Longitude: 35.008112, Open: true},
		},
	}
}

func seedTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// SeedDemo loads the demo world: catalog, three users, two proposals
// with their votes, two bookable screenings and a couple of bookings.
// It is idempotent: when the first demo user already exists, only the
// catalog seed (itself a no-op when populated) runs. Every cached
// vote counter equals the number of seeded vote records.
func SeedDemo(ctx context.Context, st Stores) error {
	if err := st.Catalog.Seed(ctx, DemoCatalog()); err != nil {
		return err
	}
	if _, err := st.Users.GetByID(ctx, "u001"); err == nil {
		return nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	users := []model.User{
		{ID: "u001", PhoneNumber: "+972501234567", FullName: "Alice Levi", CreatedAt: seedTime("2025-01-20T10:12:00Z")},
		{ID: "u002", PhoneNumber: "+972541112223", FullName: "Dan Cohen", CreatedAt: seedTime("2025-01-21T09:00:00Z")},
		{ID: "u003", PhoneNumber: "+972539876543", FullName: "Noam Mizrahi", CreatedAt: seedTime("2025-01-22T14:55:00Z")},
	}
	for i := range users {
		if err := st.Users.Create(ctx, &users[i]); err != nil {
			return err
		}
	}

	proposals := []model.Proposal{
		{ID: "ra001", MovieID: "m102", CityID: "c001", CompanyID: "co002", LocationID: "loc002", CreatedBy: "u001", CreatedAt: seedTime("2025-02-01T09:00:00Z"), VoteCount: 3, Status: model.ProposalActive},
		{ID: "ra002", MovieID: "m101", CityID: "c003", CompanyID: "co003", LocationID: "loc003", CreatedBy: "u002", CreatedAt: seedTime("2025-02-02T11:22:00Z"), VoteCount: 3, Status: model.ProposalActive},
	}
	for i := range proposals {
		if err := st.Proposals.Create(ctx, &proposals[i]); err != nil {
			return err
		}
	}

	votes := []model.Vote{
		{ID: "rv001", ProposalID: "ra001", UserID: "u001", Value: 1, CreatedAt: seedTime("2025-02-01T09:01:00Z")},
		{ID: "rv002", ProposalID: "ra001", UserID: "u002", Value: 1, CreatedAt: seedTime("2025-02-01T09:05:00Z")},
		{ID: "rv003", ProposalID: "ra001", UserID: "u003", Value: 1, CreatedAt: seedTime("2025-02-01T09:07:00Z")},
		{ID: "rv004", ProposalID: "ra002", UserID: "u002", Value: 1, CreatedAt: seedTime("2025-02-02T11:22:00Z")},
		{ID: "rv005", ProposalID: "ra002", UserID: "u001", Value: 1, CreatedAt: seedTime("2025-02-02T12:00:00Z")},
		{ID: "rv006", ProposalID: "ra002", UserID: "u003", Value: 1, CreatedAt: seedTime("2025-02-02T12:30:00Z")},
	}
	for _, v := range votes {
		if err := st.Votes.Create(ctx, v); err != nil {
			return err
		}
	}

	// Screenings are seeded directly (no ProposalID): the proposals
	// above stay active and votable, while these rooms are bookable
	// from the start.
	screenings := []model.Screening{
		{ID: "rb001", MovieID: "m102", CityID: "c001", CompanyID: "co002", LocationID: "loc002", CreatedAt: seedTime("2025-02-05T10:00:00Z"), Status: model.ScreeningBookable},
		{ID: "rb002", MovieID: "m101", CityID: "c003", CompanyID: "co003", LocationID: "loc003", CreatedAt: seedTime("2025-02-05T10:00:00Z"), Status: model.ScreeningBookable},
	}
	for i := range screenings {
		if err := st.Screenings.Create(ctx, &screenings[i]); err != nil {
			return err
		}
	}

	bookings := []model.Booking{
		{ID: "bb001", ScreeningID: "rb001", SeatID: "r1-s3", UserID: "u001", CreatedAt: seedTime("2025-02-05T10:32:00Z")},
		{ID: "bb002", ScreeningID: "rb001", SeatID: "r2-s2", UserID: "u002", CreatedAt: seedTime("2025-02-05T11:10:00Z")},
	}
	return st.Bookings.CreateBulk(ctx, bookings)
}
