package file

import (
	"context"
	"sort"
	"sync"

	"aibot/internal/domain"
)

// UserRepo implements repository.UserRepository on a single JSON document
// keyed by user id. Every save rewrites the whole document.
type UserRepo struct {
	path string

	mu       sync.Mutex
	profiles map[int64]domain.UserProfile
}

// NewUserRepo creates a repository backed by the document at path
func NewUserRepo(path string) (*UserRepo, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return nil, err
	}
	return &UserRepo{
		path:     normalized,
		profiles: make(map[int64]domain.UserProfile),
	}, nil
}

// Path returns the document location
func (r *UserRepo) Path() string {
	return r.path
}

// LoadAll reads every profile from disk. A missing or blank document is an
// empty registry; a malformed one returns ErrDecodeFailed and leaves the
// repository empty.
func (r *UserRepo) LoadAll(_ context.Context) ([]domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles = make(map[int64]domain.UserProfile)

	var doc map[int64]domain.UserProfile
	ok, err := readJSON(r.path, &doc)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.UserProfile{}, nil
	}

	profiles := make([]domain.UserProfile, 0, len(doc))
	for id, p := range doc {
		p.ID = id
		r.profiles[id] = p
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })
	return profiles, nil
}

// SaveProfile stores profile and rewrites the document
func (r *UserRepo) SaveProfile(_ context.Context, profile domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[profile.ID] = profile
	return writeJSONAtomic(r.path, r.profiles)
}
