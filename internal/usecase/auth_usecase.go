package usecase

import (
	"context"
	"errors"
	"strings"

	"mentor-match/internal/domain/user"
	"mentor-match/internal/pkg/jwt"
	"mentor-match/internal/repository"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidEmail           = errors.New("invalid email format")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrMissingCredentials     = errors.New("email and password are required")
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, error)
	Login(ctx context.Context, in LoginInput) (string, error)
}

type Auth struct {
	users    repository.UserRepository
	jwt      jwt.Service
	validate *validator.Validate
}

func NewAuthUsecase(users repository.UserRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{users: users, jwt: jwtSvc, validate: validator.New()}
}

func (u *Auth) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	for _, f := range []struct {
		name, value string
	}{
		{"email", in.Email},
		{"password", in.Password},
		{"name", in.Name},
		{"role", in.Role},
	} {
		if strings.TrimSpace(f.value) == "" {
			return user.User{}, &MissingFieldError{Field: f.name}
		}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := u.validate.Var(email, "required,email"); err != nil {
		return user.User{}, ErrInvalidEmail
	}

	role, err := user.ParseRole(in.Role)
	if err != nil {
		return user.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	created, err := u.users.Create(ctx, user.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         strings.TrimSpace(in.Name),
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	created.PasswordHash = ""
	return created, nil
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return "", ErrMissingCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := u.jwt.GenerateToken(usr)
	if err != nil {
		return "", ErrInternal
	}
	return token, nil
}
