package testutil

import (
	"strings"
	"time"

	"aibot/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestProfile creates a test profile
func NewTestProfile(id int64, name string, messageCount int64) domain.UserProfile {
	now := time.Now()
	return domain.UserProfile{
		ID:           id,
		DisplayName:  name,
		JoinedAt:     now,
		LastSeenAt:   now,
		MessageCount: messageCount,
		Active:       true,
	}
}

// NewTextResponse creates a model response with a single choice
func NewTextResponse(content string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: content}},
	}
}

// MessageText joins every text part of the given messages
func MessageText(messages []llms.MessageContent) string {
	var b strings.Builder
	for _, m := range messages {
		for _, part := range m.Parts {
			if text, ok := part.(llms.TextContent); ok {
				b.WriteString(text.Text)
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
