package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"aibot/internal/domain"
	"aibot/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrEmptyBroadcast is returned for a blank broadcast body
var ErrEmptyBroadcast = errors.New("broadcast body is empty")

// Sender delivers one plain text message to a chat
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// ProfileSource lists the broadcast recipients
type ProfileSource interface {
	AllProfiles() []domain.UserProfile
}

// BroadcastService fans a message out to every known user
type BroadcastService struct {
	profiles ProfileSource
	sender   Sender
	delay    time.Duration
	logger   *zap.Logger
}

// NewBroadcastService creates a broadcast service. A zero delay disables pacing.
func NewBroadcastService(profiles ProfileSource, sender Sender, delay time.Duration, logger *zap.Logger) *BroadcastService {
	return &BroadcastService{
		profiles: profiles,
		sender:   sender,
		delay:    delay,
		logger:   logger,
	}
}

// NewJob snapshots the current recipients for body
func (s *BroadcastService) NewJob(body string) (domain.BroadcastJob, error) {
	if strings.TrimSpace(body) == "" {
		return domain.BroadcastJob{}, ErrEmptyBroadcast
	}

	profiles := s.profiles.AllProfiles()
	recipients := make([]int64, 0, len(profiles))
	for _, p := range profiles {
		recipients = append(recipients, p.ID)
	}

	return domain.BroadcastJob{
		ID:         uuid.New(),
		Body:       body,
		Recipients: recipients,
	}, nil
}

// Broadcast sends body to every registered user, one at a time.
// A failed send is counted and skipped; there are no retries.
func (s *BroadcastService) Broadcast(ctx context.Context, body string) (domain.BroadcastResult, error) {
	job, err := s.NewJob(body)
	if err != nil {
		return domain.BroadcastResult{}, err
	}
	return s.Run(ctx, job), nil
}

// Run delivers job. If ctx is cancelled while pacing, the remaining
// recipients are counted as failed.
func (s *BroadcastService) Run(ctx context.Context, job domain.BroadcastJob) domain.BroadcastResult {
	result := domain.BroadcastResult{Total: len(job.Recipients)}

	limit := rate.Inf
	if s.delay > 0 {
		limit = rate.Every(s.delay)
	}
	limiter := rate.NewLimiter(limit, 1)

	s.logger.Info("Broadcast started",
		zap.String("job_id", job.ID.String()),
		zap.Int("recipients", result.Total),
	)

	for i, chatID := range job.Recipients {
		if err := limiter.Wait(ctx); err != nil {
			remaining := len(job.Recipients) - i
			result.Failed += remaining
			metrics.BroadcastMessagesTotal.WithLabelValues(metrics.ResultError).Add(float64(remaining))
			s.logger.Warn("Broadcast interrupted",
				zap.String("job_id", job.ID.String()),
				zap.Int("remaining", remaining),
				zap.Error(err),
			)
			break
		}

		if err := s.sender.SendText(ctx, chatID, job.Body); err != nil {
			result.Failed++
			metrics.BroadcastMessagesTotal.WithLabelValues(metrics.ResultError).Inc()
			s.logger.Warn("Broadcast delivery failed",
				zap.String("job_id", job.ID.String()),
				zap.Int64("user_id", chatID),
				zap.Error(err),
			)
			continue
		}
		result.Sent++
		metrics.BroadcastMessagesTotal.WithLabelValues(metrics.ResultOK).Inc()
	}

	s.logger.Info("Broadcast finished",
		zap.String("job_id", job.ID.String()),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
		zap.Int("total", result.Total),
	)
	return result
}
