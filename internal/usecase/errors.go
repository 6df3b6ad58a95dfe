package usecase

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInternal     = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// MissingFieldError reports which required request field was absent, so the
// handler can answer "<field> is required".
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return e.Field + " is required"
}

// Actor identifies the authenticated caller. Role comes from the token;
// roles are immutable after signup, so the claim cannot go stale.
type Actor struct {
	ID   int64
	Role string
}

// DirectoryCache is the slice of the Redis cache the usecases need.
// A nil cache disables caching.
type DirectoryCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}
