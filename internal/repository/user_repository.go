package repository

import (
	"context"
	"errors"
	"fmt"

	"mentor-match/internal/database"
	"mentor-match/internal/domain/user"

	"github.com/jackc/pgx/v5"
)

var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrImageNotFound = errors.New("profile image not found")
)

// ProfileUpdate is a partial profile write. Nil fields are left unchanged;
// a non-nil Skills replaces the whole skill set.
type ProfileUpdate struct {
	Name   *string
	Bio    *string
	Image  []byte
	Skills *[]string
}

type UserRepository interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) error
	SetProfileImage(ctx context.Context, id int64, data []byte) error
	GetProfileImage(ctx context.Context, id int64, role user.Role) ([]byte, error)
	ListMentors(ctx context.Context, skillFilter string) ([]user.User, error)
}

const userColumns = `id, email, password_hash, role, name, bio, (profile_image IS NOT NULL), created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, role, name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		u.Email, u.PasswordHash, u.Role.String(), u.Name,
	)
	created, err := scanUser(row)
	if err != nil {
		if uniqueConstraint(err) != "" {
			return user.User{}, ErrEmailTaken
		}
		return user.User{}, err
	}
	return created, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// UpdateProfile commits name, bio, the image blob and the skill set as one
// transaction: either the whole update lands or none of it does.
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	affected, err := tx.Exec(ctx,
		`UPDATE users
		 SET name = COALESCE($1, name),
		     bio = COALESCE($2, bio),
		     profile_image = COALESCE($3, profile_image),
		     updated_at = now()
		 WHERE id = $4`,
		upd.Name, upd.Bio, upd.Image, id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}

	if upd.Skills != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM mentor_skills WHERE user_id = $1`, id); err != nil {
			return err
		}
		for _, s := range *upd.Skills {
			if _, err := tx.Exec(ctx,
				`INSERT INTO mentor_skills (user_id, skill) VALUES ($1, $2)`,
				id, s,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresUserRepository) SetProfileImage(ctx context.Context, id int64, data []byte) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE users SET profile_image = $1, updated_at = now() WHERE id = $2`,
		data, id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) GetProfileImage(ctx context.Context, id int64, role user.Role) ([]byte, error) {
	var data []byte
	row := r.db.QueryRow(ctx,
		`SELECT profile_image FROM users WHERE id = $1 AND role = $2`,
		id, role.String(),
	)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrImageNotFound
	}
	return data, nil
}

// ListMentors returns all mentor-role users, optionally restricted to those
// owning a skill that contains skillFilter (case-insensitive). Name order;
// the usecase applies direction and skill-based sorting.
func (r *PostgresUserRepository) ListMentors(ctx context.Context, skillFilter string) ([]user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = 'mentor'`
	args := []any{}
	if skillFilter != "" {
		query += ` AND EXISTS (
			SELECT 1 FROM mentor_skills ms
			WHERE ms.user_id = users.id AND ms.skill ILIKE $1
		)`
		args = append(args, "%"+skillFilter+"%")
	}
	query += ` ORDER BY name ASC, id ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUserFromRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role string
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.Name, &u.Bio, &u.HasImage, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	parsed, err := user.ParseRole(role)
	if err != nil {
		return user.User{}, fmt.Errorf("stored role %q: %w", role, err)
	}
	u.Role = parsed
	return u, nil
}

func scanUserFromRows(rows database.Rows) (user.User, error) {
	var u user.User
	var role string
	if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.Name, &u.Bio, &u.HasImage, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return user.User{}, err
	}
	parsed, err := user.ParseRole(role)
	if err != nil {
		return user.User{}, fmt.Errorf("stored role %q: %w", role, err)
	}
	u.Role = parsed
	return u, nil
}
