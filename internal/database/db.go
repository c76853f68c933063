package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// schema lists the DDL executed at startup. Statements are idempotent;
// the unique keys are load-bearing: users.phone_number makes first
// login race-safe, proposal_votes(proposal_id, user_id) enforces one
// vote per user, bookings(screening_id, seat_id) makes double booking
// impossible even across server instances.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id           VARCHAR(64)  NOT NULL PRIMARY KEY,
        phone_number VARCHAR(32)  NOT NULL,
        username     VARCHAR(64)  NULL,
        full_name    VARCHAR(128) NOT NULL,
        banned       TINYINT(1)   NOT NULL DEFAULT 0,
        created_at   DATETIME     NOT NULL,
        UNIQUE KEY uq_users_phone (phone_number),
        UNIQUE KEY uq_users_username (username)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS movies (
        id           VARCHAR(64)   NOT NULL PRIMARY KEY,
        title        VARCHAR(255)  NOT NULL,
        poster_url   VARCHAR(512)  NOT NULL DEFAULT '',
        release_year INT           NOT NULL DEFAULT 0,
        description  TEXT          NULL,
        rating       DOUBLE        NOT NULL DEFAULT 0,
        runtime_min  INT           NOT NULL DEFAULT 0,
        genres       VARCHAR(255)  NOT NULL DEFAULT ''
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS cities (
        id       VARCHAR(64)  NOT NULL PRIMARY KEY,
        name_en  VARCHAR(128) NOT NULL,
        name_he  VARCHAR(128) NOT NULL,
        district VARCHAR(128) NOT NULL DEFAULT ''
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS companies (
        id       VARCHAR(64)  NOT NULL PRIMARY KEY,
        name     VARCHAR(128) NOT NULL,
        logo_url VARCHAR(512) NOT NULL DEFAULT '',
        active   TINYINT(1)   NOT NULL DEFAULT 1
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS company_locations (
        id         VARCHAR(64)  NOT NULL PRIMARY KEY,
        company_id VARCHAR(64)  NOT NULL,
        city_id    VARCHAR(64)  NOT NULL,
        name       VARCHAR(128) NOT NULL,
        address    VARCHAR(255) NOT NULL DEFAULT '',
        latitude   DOUBLE       NOT NULL DEFAULT 0,
        longitude  DOUBLE       NOT NULL DEFAULT 0,
        open       TINYINT(1)   NOT NULL DEFAULT 1,
        KEY idx_locations_city (city_id),
        CONSTRAINT fk_locations_company FOREIGN KEY (company_id) REFERENCES companies(id),
        CONSTRAINT fk_locations_city FOREIGN KEY (city_id) REFERENCES cities(id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS room_proposals (
        id          VARCHAR(64) NOT NULL PRIMARY KEY,
        movie_id    VARCHAR(64) NOT NULL,
        city_id     VARCHAR(64) NOT NULL,
        company_id  VARCHAR(64) NOT NULL,
        location_id VARCHAR(64) NOT NULL,
        created_by  VARCHAR(64) NOT NULL,
        created_at  DATETIME    NOT NULL,
        vote_count  INT         NOT NULL DEFAULT 1,
        status      VARCHAR(16) NOT NULL DEFAULT 'active',
        KEY idx_proposals_movie (movie_id),
        CONSTRAINT fk_proposals_movie FOREIGN KEY (movie_id) REFERENCES movies(id),
        CONSTRAINT fk_proposals_user FOREIGN KEY (created_by) REFERENCES users(id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS proposal_votes (
        id          VARCHAR(64) NOT NULL PRIMARY KEY,
        proposal_id VARCHAR(64) NOT NULL,
        user_id     VARCHAR(64) NOT NULL,
        value       INT         NOT NULL DEFAULT 1,
        created_at  DATETIME    NOT NULL,
        UNIQUE KEY uq_votes_proposal_user (proposal_id, user_id),
        CONSTRAINT fk_votes_proposal FOREIGN KEY (proposal_id) REFERENCES room_proposals(id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS screenings (
        id          VARCHAR(64) NOT NULL PRIMARY KEY,
        proposal_id VARCHAR(64) NULL,
        movie_id    VARCHAR(64) NOT NULL,
        city_id     VARCHAR(64) NOT NULL,
        company_id  VARCHAR(64) NOT NULL,
        location_id VARCHAR(64) NOT NULL,
        created_at  DATETIME    NOT NULL,
        status      VARCHAR(16) NOT NULL DEFAULT 'bookable',
        KEY idx_screenings_movie (movie_id),
        CONSTRAINT fk_screenings_movie FOREIGN KEY (movie_id) REFERENCES movies(id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
        id           VARCHAR(64) NOT NULL PRIMARY KEY,
        screening_id VARCHAR(64) NOT NULL,
        seat_id      VARCHAR(16) NOT NULL,
        user_id      VARCHAR(64) NOT NULL,
        created_at   DATETIME    NOT NULL,
        UNIQUE KEY uq_bookings_screening_seat (screening_id, seat_id),
        KEY idx_bookings_user (user_id),
        CONSTRAINT fk_bookings_screening FOREIGN KEY (screening_id) REFERENCES screenings(id),
        CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users(id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate runs the schema DDL. Safe to run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
