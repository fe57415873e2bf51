package service

import (
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"video-recommendation-service/internal/models"
)

// In-memory stores mirroring the repository contracts, including the
// sentinel errors the SQL implementations return.

var errStoreDown = errors.New("storage unavailable")

type memVideoStore struct {
	videos  map[string]models.Video
	deleted map[string]bool
}

func newMemVideoStore() *memVideoStore {
	return &memVideoStore{videos: map[string]models.Video{}, deleted: map[string]bool{}}
}

func (s *memVideoStore) Create(v *models.Video) error {
	if _, ok := s.videos[v.ID]; ok {
		return models.Conflict("video %q already exists", v.ID)
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	v.UpdatedAt = v.CreatedAt
	s.videos[v.ID] = *v
	return nil
}

func (s *memVideoStore) Get(id string) (*models.Video, error) {
	v, ok := s.videos[id]
	if !ok || s.deleted[id] {
		return nil, sql.ErrNoRows
	}
	out := v
	return &out, nil
}

func (s *memVideoStore) List(params models.VideoListParams) (*models.VideoListResponse, error) {
	active, err := s.ListActive()
	if err != nil {
		return nil, err
	}
	filtered := []models.Video{}
	for _, v := range active {
		if params.Tag != "" && !containsTag(v.Tags, params.Tag) {
			continue
		}
		if params.Mood != "" && !strings.EqualFold(v.Mood, params.Mood) {
			continue
		}
		filtered = append(filtered, v)
	}
	total := len(filtered)
	start := (params.Page - 1) * params.PageSize
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	return &models.VideoListResponse{
		Page:         params.Page,
		PageSize:     params.PageSize,
		TotalResults: total,
		Data:         filtered[start:end],
	}, nil
}

func (s *memVideoStore) ListActive() ([]models.Video, error) {
	var out []models.Video
	for id, v := range s.videos {
		if !s.deleted[id] {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memVideoStore) Update(id string, req models.UpdateVideoRequest) (*models.Video, error) {
	v, ok := s.videos[id]
	if !ok || s.deleted[id] {
		return nil, sql.ErrNoRows
	}
	if req.Title != nil {
		v.Title = *req.Title
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	if req.Tags != nil {
		v.Tags = *req.Tags
	}
	if req.Mood != nil {
		v.Mood = *req.Mood
	}
	v.UpdatedAt = time.Now().UTC()
	s.videos[id] = v
	out := v
	return &out, nil
}

func (s *memVideoStore) SoftDelete(id string) error {
	if _, ok := s.videos[id]; !ok || s.deleted[id] {
		return sql.ErrNoRows
	}
	s.deleted[id] = true
	return nil
}

func (s *memVideoStore) Meta() (*models.CatalogMeta, error) {
	tagSet := map[string]bool{}
	moodSet := map[string]bool{}
	active, _ := s.ListActive()
	for _, v := range active {
		for _, t := range v.Tags {
			tagSet[strings.ToLower(t)] = true
		}
		if v.Mood != "" {
			moodSet[strings.ToLower(v.Mood)] = true
		}
	}
	meta := &models.CatalogMeta{Tags: []string{}, Moods: []string{}}
	for t := range tagSet {
		meta.Tags = append(meta.Tags, t)
	}
	for m := range moodSet {
		meta.Moods = append(meta.Moods, m)
	}
	sort.Strings(meta.Tags)
	sort.Strings(meta.Moods)
	return meta, nil
}

func (s *memVideoStore) Count() (int, error) {
	active, _ := s.ListActive()
	return len(active), nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

type memUserStore struct {
	users map[string]models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]models.User{}}
}

func (s *memUserStore) Create(u *models.User) error {
	if _, ok := s.users[u.ID]; ok {
		return models.Conflict("user %q already exists", u.ID)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *memUserStore) Get(id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := u
	return &out, nil
}

func (s *memUserStore) Update(id string, req models.UpdateUserRequest) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Interests != nil {
		u.Interests = *req.Interests
	}
	if req.Mood != nil {
		u.Mood = *req.Mood
	}
	s.users[id] = u
	out := u
	return &out, nil
}

func (s *memUserStore) Count() (int, error) {
	return len(s.users), nil
}

type memInteractionStore struct {
	items  []models.Interaction
	nextID int64
	// down simulates storage unavailability for reads.
	down bool
}

func newMemInteractionStore() *memInteractionStore {
	return &memInteractionStore{}
}

func (s *memInteractionStore) Create(i *models.Interaction) error {
	s.nextID++
	i.ID = s.nextID
	s.items = append(s.items, *i)
	return nil
}

func (s *memInteractionStore) ListByUser(userID string) ([]models.Interaction, error) {
	if s.down {
		return nil, errStoreDown
	}
	var out []models.Interaction
	for _, i := range s.items {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.Before(out[b].CreatedAt)
		}
		return out[a].ID < out[b].ID
	})
	return out, nil
}

func (s *memInteractionStore) SeenVideoIDs(userID string, since time.Time) (map[string]bool, error) {
	if s.down {
		return nil, errStoreDown
	}
	seen := map[string]bool{}
	for _, i := range s.items {
		if i.UserID != userID || i.CreatedAt.Before(since) {
			continue
		}
		switch i.Type {
		case models.InteractionView, models.InteractionLike, models.InteractionShare:
			seen[i.VideoID] = true
		}
	}
	return seen, nil
}

func (s *memInteractionStore) PopularityCounts(since time.Time) (map[string]int, error) {
	if s.down {
		return nil, errStoreDown
	}
	counts := map[string]int{}
	for _, i := range s.items {
		if !i.CreatedAt.Before(since) {
			counts[i.VideoID]++
		}
	}
	return counts, nil
}

func (s *memInteractionStore) ActiveUserIDs(since time.Time) ([]string, error) {
	if s.down {
		return nil, errStoreDown
	}
	set := map[string]bool{}
	for _, i := range s.items {
		if !i.CreatedAt.Before(since) {
			set[i.UserID] = true
		}
	}
	var ids []string
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *memInteractionStore) Count() (int, error) {
	return len(s.items), nil
}
