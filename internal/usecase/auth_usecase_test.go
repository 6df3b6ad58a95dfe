package usecase

import (
	"context"
	"errors"
	"testing"

	"mentor-match/internal/domain/user"
	"mentor-match/internal/pkg/jwt"
	"mentor-match/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	byID      map[int64]user.User
	byEmail   map[string]user.User
	createErr error
	created   *user.User

	profileUpd *repository.ProfileUpdate
	updCalls   int
	updErr     error
	image      []byte
	imageErr   error
	mentors    []user.User
	listSkill  string
	listErr    error
}

func (m *mockUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	if m.createErr != nil {
		return user.User{}, m.createErr
	}
	u.ID = 1
	m.created = &u
	return u, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, _ int64, upd repository.ProfileUpdate) error {
	m.updCalls++
	if m.updErr != nil {
		return m.updErr
	}
	m.profileUpd = &upd
	if upd.Image != nil {
		m.image = upd.Image
	}
	return nil
}

func (m *mockUserRepo) SetProfileImage(_ context.Context, _ int64, data []byte) error {
	if m.imageErr != nil {
		return m.imageErr
	}
	m.image = data
	return nil
}

func (m *mockUserRepo) GetProfileImage(_ context.Context, id int64, _ user.Role) ([]byte, error) {
	if m.imageErr != nil {
		return nil, m.imageErr
	}
	if _, ok := m.byID[id]; !ok {
		return nil, user.ErrNotFound
	}
	if m.image == nil {
		return nil, repository.ErrImageNotFound
	}
	return m.image, nil
}

func (m *mockUserRepo) ListMentors(_ context.Context, skillFilter string) ([]user.User, error) {
	m.listSkill = skillFilter
	return m.mentors, m.listErr
}

type mockJWT struct {
	token string
	err   error
}

func (m mockJWT) GenerateToken(user.User) (string, error)  { return m.token, m.err }
func (m mockJWT) ValidateToken(string) (jwt.Claims, error) { return jwt.Claims{}, nil }

func TestAuth_Register_MissingField(t *testing.T) {
	uc := NewAuthUsecase(&mockUserRepo{}, mockJWT{})

	_, err := uc.Register(context.Background(), RegisterInput{
		Email: "a@b.com", Password: "pw", Role: "mentor",
	})
	var mf *MissingFieldError
	if !errors.As(err, &mf) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if mf.Field != "name" {
		t.Fatalf("expected field name, got %q", mf.Field)
	}
	if mf.Error() != "name is required" {
		t.Fatalf("unexpected message %q", mf.Error())
	}
}

func TestAuth_Register_InvalidEmail(t *testing.T) {
	uc := NewAuthUsecase(&mockUserRepo{}, mockJWT{})

	_, err := uc.Register(context.Background(), RegisterInput{
		Email: "not-an-email", Password: "pw", Name: "Ada", Role: "mentor",
	})
	if !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestAuth_Register_InvalidRole(t *testing.T) {
	uc := NewAuthUsecase(&mockUserRepo{}, mockJWT{})

	_, err := uc.Register(context.Background(), RegisterInput{
		Email: "a@b.com", Password: "pw", Name: "Ada", Role: "guardian",
	})
	if !errors.Is(err, user.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuth_Register_DuplicateEmail(t *testing.T) {
	uc := NewAuthUsecase(&mockUserRepo{createErr: repository.ErrEmailTaken}, mockJWT{})

	_, err := uc.Register(context.Background(), RegisterInput{
		Email: "a@b.com", Password: "pw", Name: "Ada", Role: "mentor",
	})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestAuth_Register_Success(t *testing.T) {
	repo := &mockUserRepo{}
	uc := NewAuthUsecase(repo, mockJWT{})

	created, err := uc.Register(context.Background(), RegisterInput{
		Email: "  Ada@Example.COM ", Password: "secret", Name: " Ada ", Role: "mentee",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %q", created.Email)
	}
	if created.Role != user.RoleMentee {
		t.Fatalf("expected role mentee, got %q", created.Role)
	}
	if created.PasswordHash != "" {
		t.Fatalf("password hash must not leak out of Register")
	}
	if repo.created == nil || repo.created.PasswordHash == "secret" {
		t.Fatalf("password must be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("secret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestAuth_Login_MissingCredentials(t *testing.T) {
	uc := NewAuthUsecase(&mockUserRepo{}, mockJWT{})

	_, err := uc.Login(context.Background(), LoginInput{Email: "a@b.com"})
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestAuth_Login_UnknownEmail(t *testing.T) {
	uc := NewAuthUsecase(&mockUserRepo{}, mockJWT{})

	_, err := uc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "pw"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	repo := &mockUserRepo{byEmail: map[string]user.User{
		"a@b.com": {ID: 1, Email: "a@b.com", PasswordHash: string(hash), Role: user.RoleMentor},
	}}
	uc := NewAuthUsecase(repo, mockJWT{})

	_, err = uc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuth_Login_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	repo := &mockUserRepo{byEmail: map[string]user.User{
		"a@b.com": {ID: 1, Email: "a@b.com", PasswordHash: string(hash), Role: user.RoleMentor},
	}}
	uc := NewAuthUsecase(repo, mockJWT{token: "tok-123"})

	token, err := uc.Login(context.Background(), LoginInput{Email: " A@B.com ", Password: "right"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("expected tok-123, got %q", token)
	}
}
