package dto

import (
	"mentor-match/internal/domain/user"
	"mentor-match/internal/usecase"
)

// ProfileResponse is the flat shape served by GET /api/profile.
type ProfileResponse struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Role     string   `json:"role"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills,omitempty"`
	ImageURL string   `json:"imageUrl,omitempty"`
}

// UserResponse is the nested shape served by GET /api/me and profile updates.
type UserResponse struct {
	ID      int64         `json:"id"`
	Email   string        `json:"email"`
	Role    string        `json:"role"`
	Profile ProfileDetail `json:"profile"`
}

type ProfileDetail struct {
	Name     string   `json:"name"`
	Bio      string   `json:"bio"`
	ImageURL string   `json:"imageUrl"`
	Skills   []string `json:"skills,omitempty"`
}

func NewProfileResponse(p usecase.Profile) ProfileResponse {
	res := ProfileResponse{
		ID:    p.ID,
		Email: p.Email,
		Name:  p.Name,
		Role:  p.Role.String(),
		Bio:   p.Bio,
	}
	if p.Role == user.RoleMentor {
		res.Skills = p.Skills
		if res.Skills == nil {
			res.Skills = []string{}
		}
	}
	if p.HasImage {
		res.ImageURL = p.ImageURL()
	}
	return res
}

func NewUserResponse(p usecase.Profile) UserResponse {
	res := UserResponse{
		ID:    p.ID,
		Email: p.Email,
		Role:  p.Role.String(),
		Profile: ProfileDetail{
			Name:     p.Name,
			Bio:      p.Bio,
			ImageURL: p.ImageURL(),
		},
	}
	if p.Role == user.RoleMentor {
		res.Profile.Skills = p.Skills
		if res.Profile.Skills == nil {
			res.Profile.Skills = []string{}
		}
	}
	return res
}
