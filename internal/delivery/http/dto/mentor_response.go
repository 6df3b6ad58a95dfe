package dto

import "mentor-match/internal/usecase"

// MentorResponse is one entry of the GET /api/mentors listing.
type MentorResponse struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Name     string   `json:"name"`
	Bio      string   `json:"bio"`
	ImageURL string   `json:"imageUrl"`
	Skills   []string `json:"skills"`
}

func NewMentorResponses(items []usecase.MentorItem) []MentorResponse {
	out := make([]MentorResponse, 0, len(items))
	for _, it := range items {
		skills := it.Skills
		if skills == nil {
			skills = []string{}
		}
		out = append(out, MentorResponse{
			ID:       it.ID,
			Email:    it.Email,
			Role:     it.Role,
			Name:     it.Name,
			Bio:      it.Bio,
			ImageURL: it.ImageURL,
			Skills:   skills,
		})
	}
	return out
}
