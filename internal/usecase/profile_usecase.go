package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"mentor-match/internal/domain/user"
	"mentor-match/internal/pkg/imaging"
	"mentor-match/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

type Profile struct {
	ID       int64
	Email    string
	Role     user.Role
	Name     string
	Bio      string
	HasImage bool
	Skills   []string
}

// ImageURL is where the profile picture is served from, image or not; the
// image handler redirects to a placeholder when no blob is stored.
func (p Profile) ImageURL() string {
	return fmt.Sprintf("/api/images/%s/%d", p.Role, p.ID)
}

type UpdateProfileInput struct {
	Name        *string
	Bio         *string
	ImageBase64 *string
	Skills      []string
	HasSkills   bool
}

type ProfileUsecase interface {
	Get(ctx context.Context, userID int64) (Profile, error)
	Update(ctx context.Context, userID int64, in UpdateProfileInput) (Profile, error)
	GetImage(ctx context.Context, role string, userID int64) ([]byte, error)
	UpdateImage(ctx context.Context, caller Actor, role string, userID int64, data []byte) error
}

type ProfileService struct {
	users  repository.UserRepository
	skills repository.MentorSkillRepository
	cache  DirectoryCache
}

func NewProfileUsecase(users repository.UserRepository, skills repository.MentorSkillRepository, cache DirectoryCache) *ProfileService {
	return &ProfileService{users: users, skills: skills, cache: cache}
}

func (s *ProfileService) Get(ctx context.Context, userID int64) (Profile, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, ErrInternal
	}
	return s.toProfile(ctx, usr)
}

func (s *ProfileService) Update(ctx context.Context, userID int64, in UpdateProfileInput) (Profile, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, ErrInternal
	}

	upd := repository.ProfileUpdate{Name: in.Name, Bio: in.Bio}

	if in.ImageBase64 != nil && *in.ImageBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(*in.ImageBase64)
		if err != nil {
			return Profile{}, imaging.ErrUndecodable
		}
		if err := imaging.Validate(data); err != nil {
			return Profile{}, err
		}
		upd.Image = data
	}

	// Skills only exist on mentors; updates from mentees are dropped, as
	// the signup-time role is final.
	if in.HasSkills && usr.Role == user.RoleMentor {
		skills := in.Skills
		upd.Skills = &skills
	}

	// One repository call, one transaction: the image, name/bio and skill
	// writes land together or not at all.
	if upd.Name != nil || upd.Bio != nil || upd.Image != nil || upd.Skills != nil {
		if err := s.users.UpdateProfile(ctx, userID, upd); err != nil {
			return Profile{}, ErrInternal
		}
	}

	if usr.Role == user.RoleMentor {
		s.invalidateDirectory(ctx)
	}

	return s.Get(ctx, userID)
}

func (s *ProfileService) GetImage(ctx context.Context, role string, userID int64) ([]byte, error) {
	parsed, err := user.ParseRole(role)
	if err != nil {
		return nil, err
	}
	data, err := s.users.GetProfileImage(ctx, userID, parsed)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrImageNotFound):
			return nil, repository.ErrImageNotFound
		default:
			return nil, ErrInternal
		}
	}
	return data, nil
}

func (s *ProfileService) UpdateImage(ctx context.Context, caller Actor, role string, userID int64, data []byte) error {
	if caller.ID != userID {
		return ErrForbidden
	}
	parsed, err := user.ParseRole(role)
	if err != nil {
		return err
	}

	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}
	if usr.Role != parsed {
		return ErrUserNotFound
	}

	if err := imaging.Validate(data); err != nil {
		return err
	}
	if err := s.users.SetProfileImage(ctx, userID, data); err != nil {
		return ErrInternal
	}

	if usr.Role == user.RoleMentor {
		s.invalidateDirectory(ctx)
	}
	return nil
}

func (s *ProfileService) toProfile(ctx context.Context, usr user.User) (Profile, error) {
	p := Profile{
		ID:       usr.ID,
		Email:    usr.Email,
		Role:     usr.Role,
		Name:     usr.Name,
		Bio:      usr.Bio,
		HasImage: usr.HasImage,
	}
	if usr.Role == user.RoleMentor {
		skills, err := s.skills.FindByUserID(ctx, usr.ID)
		if err != nil {
			return Profile{}, ErrInternal
		}
		p.Skills = skills
	}
	return p, nil
}

func (s *ProfileService) invalidateDirectory(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeleteByPattern(ctx, "mentors:*")
}
