package postgres

import (
	"context"
	"database/sql"

	"aibot/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// LoadAll returns every stored profile
func (r *UserRepo) LoadAll(ctx context.Context) ([]domain.UserProfile, error) {
	query := `
		SELECT user_id, display_name, username, joined_at, last_seen_at, message_count, active
		FROM user_profiles
		ORDER BY user_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.UserProfile
	for rows.Next() {
		var p domain.UserProfile
		var username sql.NullString
		if err := rows.Scan(&p.ID, &p.DisplayName, &username, &p.JoinedAt, &p.LastSeenAt, &p.MessageCount, &p.Active); err != nil {
			return nil, err
		}
		p.Username = username.String
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

// SaveProfile inserts or replaces a profile
func (r *UserRepo) SaveProfile(ctx context.Context, p domain.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, display_name, username, joined_at, last_seen_at, message_count, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id)
		DO UPDATE SET
			display_name = EXCLUDED.display_name,
			username = EXCLUDED.username,
			last_seen_at = EXCLUDED.last_seen_at,
			message_count = EXCLUDED.message_count,
			active = EXCLUDED.active
	`
	var username sql.NullString
	if p.Username != "" {
		username = sql.NullString{String: p.Username, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query, p.ID, p.DisplayName, username, p.JoinedAt, p.LastSeenAt, p.MessageCount, p.Active)
	return err
}
