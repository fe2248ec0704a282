package domain

import "time"

// UserProfile represents a bot user and their usage counters
type UserProfile struct {
	ID           int64     `json:"id"`
	DisplayName  string    `json:"display_name"`
	Username     string    `json:"username,omitempty"`
	JoinedAt     time.Time `json:"joined_at"`
	LastSeenAt   time.Time `json:"last_seen_at"`
	MessageCount int64     `json:"message_count"`
	Active       bool      `json:"active"`
}

// Stats aggregates usage over every known profile
type Stats struct {
	TotalUsers         int
	TotalMessages      int64
	AvgMessagesPerUser float64
}
