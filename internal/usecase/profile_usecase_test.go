package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"testing"

	"mentor-match/internal/domain/user"
	"mentor-match/internal/pkg/imaging"
	"mentor-match/internal/repository"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func strPtr(s string) *string { return &s }

func TestProfile_Get_NotFound(t *testing.T) {
	uc := NewProfileUsecase(&mockUserRepo{}, &mockSkillRepo{}, nil)

	_, err := uc.Get(context.Background(), 1)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProfile_Get_MentorIncludesSkills(t *testing.T) {
	users := &mockUserRepo{byID: map[int64]user.User{
		1: {ID: 1, Email: "m@x.com", Role: user.RoleMentor, Name: "M", HasImage: true},
	}}
	skills := &mockSkillRepo{byUser: map[int64][]string{1: {"Go"}}}
	uc := NewProfileUsecase(users, skills, nil)

	p, err := uc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(p.Skills) != 1 || p.Skills[0] != "Go" {
		t.Fatalf("expected skills [Go], got %v", p.Skills)
	}
	if p.ImageURL() != "/api/images/mentor/1" {
		t.Fatalf("unexpected image url %q", p.ImageURL())
	}
}

func TestProfile_Get_MenteeHasNoSkills(t *testing.T) {
	users := &mockUserRepo{byID: map[int64]user.User{
		1: {ID: 1, Email: "m@x.com", Role: user.RoleMentee, Name: "M"},
	}}
	uc := NewProfileUsecase(users, &mockSkillRepo{}, nil)

	p, err := uc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Skills != nil {
		t.Fatalf("expected nil skills for mentee, got %v", p.Skills)
	}
}

func TestProfile_Update_BadBase64(t *testing.T) {
	users := &mockUserRepo{byID: map[int64]user.User{
		1: {ID: 1, Role: user.RoleMentee},
	}}
	uc := NewProfileUsecase(users, &mockSkillRepo{}, nil)

	_, err := uc.Update(context.Background(), 1, UpdateProfileInput{ImageBase64: strPtr("%%%not-base64%%%")})
	if !errors.Is(err, imaging.ErrUndecodable) {
		t.Fatalf("expected ErrUndecodable, got %v", err)
	}
}

func TestProfile_Update_RejectsBadImage(t *testing.T) {
	users := &mockUserRepo{byID: map[int64]user.User{
		1: {ID: 1, Role: user.RoleMentee},
	}}
	uc := NewProfileUsecase(users, &mockSkillRepo{}, nil)

	small := base64.StdEncoding.EncodeToString(pngBytes(t, 100, 100))
	_, err := uc.Update(context.Background(), 1, UpdateProfileInput{ImageBase64: strPtr(small)})
	if !errors.Is(err, imaging.ErrBadDimensions) {
		t.Fatalf("expected ErrBadDimensions, got %v", err)
	}
	if users.updCalls != 0 {
		t.Fatalf("rejected image must not reach the repository")
	}
}

func TestProfile_Update_StoresValidImage(t *testing.T) {
	users := &mockUserRepo{byID: map[int64]user.User{
		1: {ID: 1, Role: user.RoleMentee},
	}}
	uc := NewProfileUsecase(users, &mockSkillRepo{}, nil)

	img := base64.StdEncoding.EncodeToString(pngBytes(t, 500, 500))
	if _, err := uc.Update(context.Background(), 1, UpdateProfileInput{ImageBase64: strPtr(img)}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if users.profileUpd == nil || users.profileUpd.Image == nil {
		t.Fatalf("expected image in the profile write, got %+v", users.profileUpd)
	}
}

func TestProfile_Update_SkillsOnlyForMentors(t *testing.T) {
	users := &mockUserRepo{byID: map[int64]user.User{
		1: {ID: 1, Role: user.RoleMentee},
	}}
	skills := &mockSkillRepo{}
	uc := NewProfileUsecase(users, skills, nil)

	_, err := uc.Update(context.Background(), 1, UpdateProfileInput{Skills: []string{"Go"}, HasSkills: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if users.updCalls != 0 {
		t.Fatalf("mentee skills must be dropped, got %+v", users.profileUpd)
	}
}

func TestProfile_Update_MentorReplacesSkillsAndInvalidates(t *testing.T) {
	users := &mockUserRepo{byID: map[int64]user.User{
		1: {ID: 1, Role: user.RoleMentor},
	}}
	skills := &mockSkillRepo{}
	cache := &mockCache{}
	uc := NewProfileUsecase(users, skills, cache)

	_, err := uc.Update(context.Background(), 1, UpdateProfileInput{
		Name: strPtr("New Name"), Skills: []string{"Go", "SQL"}, HasSkills: true,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if users.profileUpd == nil || users.profileUpd.Skills == nil || len(*users.profileUpd.Skills) != 2 {
		t.Fatalf("expected skills in the profile write, got %+v", users.profileUpd)
	}
	if users.profileUpd.Name == nil || *users.profileUpd.Name != "New Name" {
		t.Fatalf("expected name update, got %+v", users.profileUpd)
	}
	if len(cache.deleted) != 1 || cache.deleted[0] != "mentors:*" {
		t.Fatalf("expected directory invalidation, got %v", cache.deleted)
	}
}

func TestProfile_Update_CommitsAsOneWrite(t *testing.T) {
	users := &mockUserRepo{byID: map[int64]user.User{
		1: {ID: 1, Role: user.RoleMentor},
	}}
	uc := NewProfileUsecase(users, &mockSkillRepo{}, nil)

	img := base64.StdEncoding.EncodeToString(pngBytes(t, 500, 500))
	_, err := uc.Update(context.Background(), 1, UpdateProfileInput{
		Name:        strPtr("Ada"),
		Bio:         strPtr("bio"),
		ImageBase64: strPtr(img),
		Skills:      []string{"Go"},
		HasSkills:   true,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if users.updCalls != 1 {
		t.Fatalf("expected one repository write, got %d", users.updCalls)
	}
	upd := users.profileUpd
	if upd.Name == nil || upd.Bio == nil || upd.Image == nil || upd.Skills == nil {
		t.Fatalf("expected name, bio, image and skills in one write, got %+v", upd)
	}
}

func TestProfile_Update_WriteFailureIsInternal(t *testing.T) {
	users := &mockUserRepo{
		byID:   map[int64]user.User{1: {ID: 1, Role: user.RoleMentor}},
		updErr: errors.New("tx aborted"),
	}
	uc := NewProfileUsecase(users, &mockSkillRepo{}, nil)

	_, err := uc.Update(context.Background(), 1, UpdateProfileInput{Name: strPtr("Ada")})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestProfile_GetImage_MissingBlob(t *testing.T) {
	users := &mockUserRepo{byID: map[int64]user.User{
		1: {ID: 1, Role: user.RoleMentor},
	}}
	uc := NewProfileUsecase(users, &mockSkillRepo{}, nil)

	_, err := uc.GetImage(context.Background(), "mentor", 1)
	if !errors.Is(err, repository.ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
}

func TestProfile_GetImage_BadRole(t *testing.T) {
	uc := NewProfileUsecase(&mockUserRepo{}, &mockSkillRepo{}, nil)

	_, err := uc.GetImage(context.Background(), "admin", 1)
	if !errors.Is(err, user.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestProfile_UpdateImage_ForbiddenForOtherUsers(t *testing.T) {
	uc := NewProfileUsecase(&mockUserRepo{}, &mockSkillRepo{}, nil)

	err := uc.UpdateImage(context.Background(), Actor{ID: 2, Role: "mentor"}, "mentor", 1, nil)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProfile_UpdateImage_RoleMismatch(t *testing.T) {
	users := &mockUserRepo{byID: map[int64]user.User{
		1: {ID: 1, Role: user.RoleMentee},
	}}
	uc := NewProfileUsecase(users, &mockSkillRepo{}, nil)

	err := uc.UpdateImage(context.Background(), Actor{ID: 1, Role: "mentee"}, "mentor", 1, pngBytes(t, 500, 500))
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProfile_UpdateImage_Success(t *testing.T) {
	users := &mockUserRepo{byID: map[int64]user.User{
		1: {ID: 1, Role: user.RoleMentor},
	}}
	cache := &mockCache{}
	uc := NewProfileUsecase(users, &mockSkillRepo{}, cache)

	err := uc.UpdateImage(context.Background(), Actor{ID: 1, Role: "mentor"}, "mentor", 1, pngBytes(t, 750, 750))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if users.image == nil {
		t.Fatalf("expected image stored")
	}
	if len(cache.deleted) != 1 {
		t.Fatalf("expected directory invalidation, got %v", cache.deleted)
	}
}
