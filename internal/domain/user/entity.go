package user

import (
	"errors"
	"strings"
	"time"
)

// Role is fixed at signup and never changes.
type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

var ErrInvalidRole = errors.New("role must be either mentor or mentee")

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleMentor:
		return RoleMentor, nil
	case RoleMentee:
		return RoleMentee, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string { return string(r) }

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	Name         string
	Bio          string
	HasImage     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var ErrNotFound = errors.New("user not found")
