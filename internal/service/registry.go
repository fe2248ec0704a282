package service

import (
	"context"
	"math"
	"sync"
	"time"

	"aibot/internal/domain"
	"aibot/internal/metrics"
	"aibot/internal/repository"

	"go.uber.org/zap"
)

// Registry keeps every known user profile in memory and persists each
// mutation through the repository
type Registry struct {
	repo   repository.UserRepository
	logger *zap.Logger
	now    func() time.Time

	mu       sync.RWMutex
	profiles map[int64]domain.UserProfile
}

// NewRegistry creates a registry and loads stored profiles. A load failure
// is logged and leaves the registry empty.
func NewRegistry(ctx context.Context, repo repository.UserRepository, logger *zap.Logger) *Registry {
	r := &Registry{
		repo:     repo,
		logger:   logger,
		now:      time.Now,
		profiles: make(map[int64]domain.UserProfile),
	}

	profiles, err := repo.LoadAll(ctx)
	if err != nil {
		logger.Warn("Failed to load user registry, starting empty", zap.Error(err))
		profiles = nil
	}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}

	metrics.RegisteredUsers.Set(float64(len(r.profiles)))
	logger.Info("User registry loaded", zap.Int("users", len(r.profiles)))
	return r
}

// RecordContact creates or refreshes the profile for userID. Empty name or
// username leave the stored values untouched. It returns false when the
// write to storage failed; the in-memory update is kept either way.
func (r *Registry) RecordContact(ctx context.Context, userID int64, displayName, username string) bool {
	now := r.now()

	r.mu.Lock()
	p, exists := r.profiles[userID]
	if !exists {
		p = domain.UserProfile{
			ID:           userID,
			DisplayName:  displayName,
			Username:     username,
			JoinedAt:     now,
			LastSeenAt:   now,
			MessageCount: 1,
			Active:       true,
		}
	} else {
		p.LastSeenAt = now
		p.MessageCount++
		if displayName != "" {
			p.DisplayName = displayName
		}
		if username != "" {
			p.Username = username
		}
	}
	r.profiles[userID] = p
	count := len(r.profiles)
	r.mu.Unlock()

	if !exists {
		metrics.RegisteredUsers.Set(float64(count))
		r.logger.Info("New user registered",
			zap.Int64("user_id", userID),
			zap.String("username", username),
		)
	}

	if err := r.repo.SaveProfile(ctx, p); err != nil {
		r.logger.Error("Failed to persist user profile",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return false
	}
	return true
}

// Profile returns the stored profile for userID
func (r *Registry) Profile(userID int64) (domain.UserProfile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	return p, ok
}

// Count returns the number of known profiles
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}

// AllProfiles returns a snapshot of every profile
func (r *Registry) AllProfiles() []domain.UserProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]domain.UserProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, p)
	}
	return profiles
}

// AggregateStats sums usage over all profiles
func (r *Registry) AggregateStats() domain.Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := domain.Stats{TotalUsers: len(r.profiles)}
	for _, p := range r.profiles {
		stats.TotalMessages += p.MessageCount
	}
	if stats.TotalUsers > 0 {
		avg := float64(stats.TotalMessages) / float64(stats.TotalUsers)
		stats.AvgMessagesPerUser = math.Round(avg*100) / 100
	}
	return stats
}
