// Package schema creates the tables and indexes the service needs.
//
// The three uniqueness indexes on match_requests are load-bearing: they are
// what makes the per-pair, single-pending and single-accepted rules hold
// under concurrent writers, not just under the usecase pre-checks.
package schema

import (
	"context"
	"errors"

	"mentor-match/internal/database"
)

// Arbitrary but stable; keeps two instances from racing the DDL at boot.
const advisoryLockKey = 428716902

var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('mentor', 'mentee')),
		name          TEXT NOT NULL DEFAULT '',
		bio           TEXT NOT NULL DEFAULT '',
		profile_image BYTEA,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS mentor_skills (
		id      BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		skill   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_mentor_skills_user ON mentor_skills (user_id)`,

	`CREATE TABLE IF NOT EXISTS match_requests (
		id         BIGSERIAL PRIMARY KEY,
		mentor_id  BIGINT NOT NULL REFERENCES users(id),
		mentee_id  BIGINT NOT NULL REFERENCES users(id),
		message    TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'accepted', 'rejected', 'cancelled')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// One request per (mentor, mentee) pair, ever.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_match_requests_pair
		ON match_requests (mentor_id, mentee_id)`,

	// A mentee holds at most one pending request, across all mentors.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_match_requests_mentee_pending
		ON match_requests (mentee_id) WHERE status = 'pending'`,

	// A mentor mentors at most one mentee at a time.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_match_requests_mentor_accepted
		ON match_requests (mentor_id) WHERE status = 'accepted'`,
}

// Ensure applies the DDL idempotently. The same statements live in
// migrations/0001_init.sql for anyone applying the schema by hand.
func Ensure(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}

	if _, err := db.Exec(ctx, `SELECT pg_advisory_lock($1)`, advisoryLockKey); err != nil {
		return err
	}
	defer func() {
		_, _ = db.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, advisoryLockKey)
	}()

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
