package repository

import (
	"context"
	"errors"

	"mentor-match/internal/database"
	"mentor-match/internal/domain/match"

	"github.com/jackc/pgx/v5"
)

var (
	ErrDuplicatePair     = errors.New("request to this mentor already exists")
	ErrMenteeHasPending  = errors.New("mentee already has a pending request")
	ErrMentorHasAccepted = errors.New("mentor already has an accepted request")
	ErrNotPending        = errors.New("request is no longer pending")
)

type MatchRequestRepository interface {
	Create(ctx context.Context, req match.Request) (match.Request, error)
	GetByID(ctx context.Context, id int64) (match.Request, error)
	ListByMentor(ctx context.Context, mentorID int64) ([]match.Request, error)
	ListByMentee(ctx context.Context, menteeID int64) ([]match.Request, error)
	UpdateStatusFromPending(ctx context.Context, id int64, next match.Status) (match.Request, error)
}

const requestColumns = `id, mentor_id, mentee_id, message, status, created_at, updated_at`

type PostgresMatchRequestRepository struct {
	db database.DB
}

func NewPostgresMatchRequestRepository(db database.DB) *PostgresMatchRequestRepository {
	return &PostgresMatchRequestRepository{db: db}
}

// Create inserts a pending request. The two unique indexes turn races on
// the per-pair and single-pending rules into constraint violations, which
// map onto the same errors the usecase pre-checks produce.
func (r *PostgresMatchRequestRepository) Create(ctx context.Context, req match.Request) (match.Request, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO match_requests (mentor_id, mentee_id, message)
		 VALUES ($1, $2, $3)
		 RETURNING `+requestColumns,
		req.MentorID, req.MenteeID, req.Message,
	)
	created, err := scanRequest(row)
	if err != nil {
		switch uniqueConstraint(err) {
		case "uq_match_requests_pair":
			return match.Request{}, ErrDuplicatePair
		case "uq_match_requests_mentee_pending":
			return match.Request{}, ErrMenteeHasPending
		}
		return match.Request{}, err
	}
	return created, nil
}

func (r *PostgresMatchRequestRepository) GetByID(ctx context.Context, id int64) (match.Request, error) {
	row := r.db.QueryRow(ctx, `SELECT `+requestColumns+` FROM match_requests WHERE id = $1`, id)
	return scanRequest(row)
}

func (r *PostgresMatchRequestRepository) ListByMentor(ctx context.Context, mentorID int64) ([]match.Request, error) {
	return r.list(ctx, `SELECT `+requestColumns+` FROM match_requests WHERE mentor_id = $1 ORDER BY id ASC`, mentorID)
}

func (r *PostgresMatchRequestRepository) ListByMentee(ctx context.Context, menteeID int64) ([]match.Request, error) {
	return r.list(ctx, `SELECT `+requestColumns+` FROM match_requests WHERE mentee_id = $1 ORDER BY id ASC`, menteeID)
}

// UpdateStatusFromPending performs the transition as a single guarded
// UPDATE: only a still-pending row moves, so two racing writers cannot both
// succeed, and accepting collides with uq_match_requests_mentor_accepted
// when the mentor is already mentoring someone.
func (r *PostgresMatchRequestRepository) UpdateStatusFromPending(ctx context.Context, id int64, next match.Status) (match.Request, error) {
	if !match.StatusPending.CanTransition(next) {
		return match.Request{}, ErrNotPending
	}

	row := r.db.QueryRow(ctx,
		`UPDATE match_requests
		 SET status = $1, updated_at = now()
		 WHERE id = $2 AND status = 'pending'
		 RETURNING `+requestColumns,
		next.String(), id,
	)
	updated, err := scanRequest(row)
	if err == nil {
		return updated, nil
	}

	if uniqueConstraint(err) == "uq_match_requests_mentor_accepted" {
		return match.Request{}, ErrMentorHasAccepted
	}
	if !errors.Is(err, match.ErrNotFound) {
		return match.Request{}, err
	}

	// No pending row matched: distinguish a missing request from one that
	// already left the pending state.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return match.Request{}, getErr
	}
	return match.Request{}, ErrNotPending
}

func (r *PostgresMatchRequestRepository) list(ctx context.Context, query string, arg any) ([]match.Request, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Request, 0)
	for rows.Next() {
		var req match.Request
		var status string
		if err := rows.Scan(&req.ID, &req.MentorID, &req.MenteeID, &req.Message, &status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, err
		}
		req.Status = match.Status(status)
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRequest(row database.Row) (match.Request, error) {
	var req match.Request
	var status string
	err := row.Scan(&req.ID, &req.MentorID, &req.MenteeID, &req.Message, &status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return match.Request{}, match.ErrNotFound
		}
		return match.Request{}, err
	}
	req.Status = match.Status(status)
	return req, nil
}
