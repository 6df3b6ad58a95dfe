package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"mentor-match/internal/repository"
)

type MentorListParams struct {
	Skill     string
	SortBy    string // "name" (default) or "skill"
	SortOrder string // "asc" (default) or "desc"
}

type MentorItem struct {
	ID       int64
	Email    string
	Role     string
	Name     string
	Bio      string
	ImageURL string
	Skills   []string
}

type MentorUsecase interface {
	ListMentors(ctx context.Context, params MentorListParams) ([]MentorItem, error)
}

type MentorDirectory struct {
	users    repository.UserRepository
	skills   repository.MentorSkillRepository
	cache    DirectoryCache
	cacheTTL time.Duration
}

func NewMentorUsecase(users repository.UserRepository, skills repository.MentorSkillRepository, cache DirectoryCache, cacheTTL time.Duration) *MentorDirectory {
	return &MentorDirectory{users: users, skills: skills, cache: cache, cacheTTL: cacheTTL}
}

func (d *MentorDirectory) ListMentors(ctx context.Context, params MentorListParams) ([]MentorItem, error) {
	params = normalizeParams(params)
	key := cacheKey(params)

	if d.cache != nil {
		var cached []MentorItem
		if hit, err := d.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	mentors, err := d.users.ListMentors(ctx, params.Skill)
	if err != nil {
		return nil, ErrInternal
	}

	ids := make([]int64, 0, len(mentors))
	for _, m := range mentors {
		ids = append(ids, m.ID)
	}
	skillsByUser, err := d.skills.FindByUserIDs(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}

	items := make([]MentorItem, 0, len(mentors))
	for _, m := range mentors {
		skills := skillsByUser[m.ID]
		if skills == nil {
			skills = []string{}
		}
		items = append(items, MentorItem{
			ID:       m.ID,
			Email:    m.Email,
			Role:     m.Role.String(),
			Name:     m.Name,
			Bio:      m.Bio,
			ImageURL: fmt.Sprintf("/api/images/mentor/%d", m.ID),
			Skills:   skills,
		})
	}

	sortItems(items, params.SortBy, params.SortOrder)

	if d.cache != nil {
		_ = d.cache.SetJSON(ctx, key, items, d.cacheTTL)
	}
	return items, nil
}

// Unknown sort parameters fall back to the defaults rather than failing,
// matching the directory's lenient query contract.
func normalizeParams(p MentorListParams) MentorListParams {
	p.Skill = strings.TrimSpace(p.Skill)
	p.SortBy = strings.ToLower(strings.TrimSpace(p.SortBy))
	if p.SortBy != "skill" {
		p.SortBy = "name"
	}
	p.SortOrder = strings.ToLower(strings.TrimSpace(p.SortOrder))
	if p.SortOrder != "desc" {
		p.SortOrder = "asc"
	}
	return p
}

func cacheKey(p MentorListParams) string {
	return fmt.Sprintf("mentors:skill=%s:sort=%s:order=%s", strings.ToLower(p.Skill), p.SortBy, p.SortOrder)
}

func sortItems(items []MentorItem, sortBy, sortOrder string) {
	desc := sortOrder == "desc"
	keyOf := func(it MentorItem) string {
		if sortBy == "skill" {
			return strings.Join(it.Skills, ", ")
		}
		return it.Name
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return keyOf(items[i]) > keyOf(items[j])
		}
		return keyOf(items[i]) < keyOf(items[j])
	})
}
