package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"mentor-match/internal/domain/user"
)

type mockSkillRepo struct {
	byUser map[int64][]string
	err    error
}

func (m *mockSkillRepo) FindByUserID(_ context.Context, userID int64) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	skills := m.byUser[userID]
	if skills == nil {
		skills = []string{}
	}
	return skills, nil
}

func (m *mockSkillRepo) FindByUserIDs(_ context.Context, userIDs []int64) (map[int64][]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[int64][]string, len(userIDs))
	for _, id := range userIDs {
		if s, ok := m.byUser[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

type mockCache struct {
	data    map[string][]byte
	setKeys []string
	deleted []string
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = raw
	m.setKeys = append(m.setKeys, key)
	return nil
}

func (m *mockCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.deleted = append(m.deleted, pattern)
	return nil
}

func directoryFixture() (*mockUserRepo, *mockSkillRepo) {
	users := &mockUserRepo{mentors: []user.User{
		{ID: 1, Email: "carol@x.com", Role: user.RoleMentor, Name: "Carol"},
		{ID: 2, Email: "alice@x.com", Role: user.RoleMentor, Name: "Alice"},
		{ID: 3, Email: "bob@x.com", Role: user.RoleMentor, Name: "Bob"},
	}}
	skills := &mockSkillRepo{byUser: map[int64][]string{
		1: {"Go", "SQL"},
		2: {"Python"},
	}}
	return users, skills
}

func TestMentorDirectory_DefaultSortByName(t *testing.T) {
	users, skills := directoryFixture()
	uc := NewMentorUsecase(users, skills, nil, time.Minute)

	items, err := uc.ListMentors(context.Background(), MentorListParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 mentors, got %d", len(items))
	}
	if items[0].Name != "Alice" || items[1].Name != "Bob" || items[2].Name != "Carol" {
		t.Fatalf("unexpected order: %v %v %v", items[0].Name, items[1].Name, items[2].Name)
	}
	if items[0].ImageURL != "/api/images/mentor/2" {
		t.Fatalf("unexpected image url %q", items[0].ImageURL)
	}
	if items[1].Skills == nil || len(items[1].Skills) != 0 {
		t.Fatalf("mentor without skills must get an empty slice, got %v", items[1].Skills)
	}
}

func TestMentorDirectory_SortDescending(t *testing.T) {
	users, skills := directoryFixture()
	uc := NewMentorUsecase(users, skills, nil, time.Minute)

	items, err := uc.ListMentors(context.Background(), MentorListParams{SortOrder: "DESC"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if items[0].Name != "Carol" || items[2].Name != "Alice" {
		t.Fatalf("unexpected order: %v %v %v", items[0].Name, items[1].Name, items[2].Name)
	}
}

func TestMentorDirectory_SortBySkill(t *testing.T) {
	users, skills := directoryFixture()
	uc := NewMentorUsecase(users, skills, nil, time.Minute)

	items, err := uc.ListMentors(context.Background(), MentorListParams{SortBy: "skill"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// "" (Bob) < "Go, SQL" (Carol) < "Python" (Alice)
	if items[0].Name != "Bob" || items[1].Name != "Carol" || items[2].Name != "Alice" {
		t.Fatalf("unexpected order: %v %v %v", items[0].Name, items[1].Name, items[2].Name)
	}
}

func TestMentorDirectory_UnknownSortFallsBack(t *testing.T) {
	users, skills := directoryFixture()
	uc := NewMentorUsecase(users, skills, nil, time.Minute)

	items, err := uc.ListMentors(context.Background(), MentorListParams{SortBy: "age", SortOrder: "sideways"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if items[0].Name != "Alice" {
		t.Fatalf("expected name asc fallback, got %q first", items[0].Name)
	}
}

func TestMentorDirectory_SkillFilterPassthrough(t *testing.T) {
	users, skills := directoryFixture()
	uc := NewMentorUsecase(users, skills, nil, time.Minute)

	if _, err := uc.ListMentors(context.Background(), MentorListParams{Skill: " go "}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if users.listSkill != "go" {
		t.Fatalf("expected trimmed filter to reach the repository, got %q", users.listSkill)
	}
}

func TestMentorDirectory_CacheMissThenHit(t *testing.T) {
	users, skills := directoryFixture()
	cache := &mockCache{}
	uc := NewMentorUsecase(users, skills, cache, time.Minute)

	first, err := uc.ListMentors(context.Background(), MentorListParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(cache.setKeys) != 1 {
		t.Fatalf("expected one cache write, got %v", cache.setKeys)
	}

	// Second call must be answered from the cache even if the repo changes.
	users.mentors = nil
	second, err := uc.ListMentors(context.Background(), MentorListParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("cache hit returned %d items, want %d", len(second), len(first))
	}
}
