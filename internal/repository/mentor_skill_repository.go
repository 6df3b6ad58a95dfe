package repository

import (
	"context"

	"mentor-match/internal/database"
)

// MentorSkillRepository is the read side of the skills table; writes go
// through UserRepository.UpdateProfile so they share the profile's
// transaction.
type MentorSkillRepository interface {
	FindByUserID(ctx context.Context, userID int64) ([]string, error)
	FindByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]string, error)
}

type PostgresMentorSkillRepository struct {
	db database.DB
}

func NewPostgresMentorSkillRepository(db database.DB) *PostgresMentorSkillRepository {
	return &PostgresMentorSkillRepository{db: db}
}

func (r *PostgresMentorSkillRepository) FindByUserID(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT skill FROM mentor_skills WHERE user_id = $1 ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMentorSkillRepository) FindByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT user_id, skill FROM mentor_skills WHERE user_id = ANY($1) ORDER BY user_id ASC, id ASC`,
		userIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		var s string
		if err := rows.Scan(&userID, &s); err != nil {
			return nil, err
		}
		out[userID] = append(out[userID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
