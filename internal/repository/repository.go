package repository

import (
	"context"

	"aibot/internal/domain"
)

// UserRepository persists user profiles
type UserRepository interface {
	LoadAll(ctx context.Context) ([]domain.UserProfile, error)
	SaveProfile(ctx context.Context, profile domain.UserProfile) error
}
