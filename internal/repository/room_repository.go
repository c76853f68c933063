package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/RoiCoDA/AbsoluteCinema/internal/model"
)

// ProposalRepo is the MySQL implementation of ProposalStore.
type ProposalRepo struct {
	db *sql.DB
}

// NewProposalRepo constructs a ProposalRepo with the given DB handle.
func NewProposalRepo(db *sql.DB) *ProposalRepo { return &ProposalRepo{db: db} }

const proposalCols = `id, movie_id, city_id, company_id, location_id, created_by, created_at, vote_count, status`

// Create inserts a new proposal row.
func (r *ProposalRepo) Create(ctx context.Context, p *model.Proposal) error {
	const q = `INSERT INTO room_proposals (` + proposalCols + `)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		p.ID, p.MovieID, p.CityID, p.CompanyID, p.LocationID,
		p.CreatedBy, p.CreatedAt.UTC(), p.VoteCount, p.Status,
	)
	return err
}

// GetByID returns the proposal with the given ID or ErrRoomNotFound.
func (r *ProposalRepo) GetByID(ctx context.Context, id string) (*model.Proposal, error) {
	const q = `SELECT ` + proposalCols + ` FROM room_proposals WHERE id = ?`
	var p model.Proposal
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.MovieID, &p.CityID, &p.CompanyID, &p.LocationID,
		&p.CreatedBy, &p.CreatedAt, &p.VoteCount, &p.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByMovie returns every proposal for a movie ordered by creation
// time.
func (r *ProposalRepo) ListByMovie(ctx context.Context, movieID string) ([]model.Proposal, error) {
	const q = `SELECT ` + proposalCols + ` FROM room_proposals WHERE movie_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Proposal{}
	for rows.Next() {
		var p model.Proposal
		if err := rows.Scan(
			&p.ID, &p.MovieID, &p.CityID, &p.CompanyID, &p.LocationID,
			&p.CreatedBy, &p.CreatedAt, &p.VoteCount, &p.Status,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus rewrites the proposal's status column.
func (r *ProposalRepo) SetStatus(ctx context.Context, id, status string) error {
	const q = `UPDATE room_proposals SET status = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// IncrementVotes bumps the cached counter atomically and reads back
// the new value.
func (r *ProposalRepo) IncrementVotes(ctx context.Context, id string) (int, error) {
	const q = `UPDATE room_proposals SET vote_count = vote_count + 1 WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, ErrRoomNotFound
	}
	var count int
	const sel = `SELECT vote_count FROM room_proposals WHERE id = ?`
	if err := r.db.QueryRowContext(ctx, sel, id).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// VoteRepo is the MySQL implementation of VoteStore. The unique key
// on (proposal_id, user_id) enforces one vote per user per proposal
// at the schema level.
type VoteRepo struct {
	db *sql.DB
}

// NewVoteRepo constructs a VoteRepo with the given DB handle.
func NewVoteRepo(db *sql.DB) *VoteRepo { return &VoteRepo{db: db} }

// Exists reports whether a vote record exists for the pair.
func (r *VoteRepo) Exists(ctx context.Context, proposalID, userID string) (bool, error) {
	const q = `SELECT 1 FROM proposal_votes WHERE proposal_id = ? AND user_id = ?`
	var one int
	err := r.db.QueryRowContext(ctx, q, proposalID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a vote row. A duplicate-key failure maps to
// ErrAlreadyVoted so callers can treat re-votes as a no-op.
func (r *VoteRepo) Create(ctx context.Context, v model.Vote) error {
	const q = `INSERT INTO proposal_votes (id, proposal_id, user_id, value, created_at)
	           VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, v.ID, v.ProposalID, v.UserID, v.Value, v.CreatedAt.UTC())
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 { // duplicate entry
		return ErrAlreadyVoted
	}
	return err
}

// CountByProposal counts the vote records for a proposal. The cached
// vote_count column must always equal this number.
func (r *VoteRepo) CountByProposal(ctx context.Context, proposalID string) (int, error) {
	const q = `SELECT COUNT(*) FROM proposal_votes WHERE proposal_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, proposalID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ScreeningRepo is the MySQL implementation of ScreeningStore.
type ScreeningRepo struct {
	db *sql.DB
}

// NewScreeningRepo constructs a ScreeningRepo with the given DB handle.
func NewScreeningRepo(db *sql.DB) *ScreeningRepo { return &ScreeningRepo{db: db} }

const screeningCols = `id, proposal_id, movie_id, city_id, company_id, location_id, created_at, status`

// Create inserts a new screening row.
func (r *ScreeningRepo) Create(ctx context.Context, s *model.Screening) error {
	const q = `INSERT INTO screenings (` + screeningCols + `)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	proposalID := sql.NullString{String: s.ProposalID, Valid: s.ProposalID != ""}
	_, err := r.db.ExecContext(ctx, q,
		s.ID, proposalID, s.MovieID, s.CityID, s.CompanyID, s.LocationID,
		s.CreatedAt.UTC(), s.Status,
	)
	return err
}

// GetByID returns the screening with the given ID or ErrRoomNotFound.
func (r *ScreeningRepo) GetByID(ctx context.Context, id string) (*model.Screening, error) {
	const q = `SELECT ` + screeningCols + ` FROM screenings WHERE id = ?`
	var s model.Screening
	var proposalID sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &proposalID, &s.MovieID, &s.CityID, &s.CompanyID, &s.LocationID,
		&s.CreatedAt, &s.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if proposalID.Valid {
		s.ProposalID = proposalID.String
	}
	return &s, nil
}

// ListByMovie returns every screening for a movie ordered by creation
// time.
func (r *ScreeningRepo) ListByMovie(ctx context.Context, movieID string) ([]model.Screening, error) {
	const q = `SELECT ` + screeningCols + ` FROM screenings WHERE movie_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Screening{}
	for rows.Next() {
		var s model.Screening
		var proposalID sql.NullString
		if err := rows.Scan(
			&s.ID, &proposalID, &s.MovieID, &s.CityID, &s.CompanyID, &s.LocationID,
			&s.CreatedAt, &s.Status,
		); err != nil {
			return nil, err
		}
		if proposalID.Valid {
			s.ProposalID = proposalID.String
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
