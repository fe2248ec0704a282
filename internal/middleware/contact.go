package middleware

import (
	"context"
	"strings"

	"aibot/internal/metrics"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// ContactRecorder stores that a user has been seen
type ContactRecorder interface {
	RecordContact(ctx context.Context, userID int64, displayName, username string) bool
}

// RecordContact registers the sender of every update before it is handled.
// A storage failure is logged and does not block the update.
func RecordContact(recorder ContactRecorder, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			metrics.UpdatesTotal.WithLabelValues(updateKind(c)).Inc()

			user := c.Sender()
			if user == nil || user.IsBot {
				return next(c)
			}

			name := strings.TrimSpace(user.FirstName + " " + user.LastName)
			if !recorder.RecordContact(context.Background(), user.ID, name, user.Username) {
				logger.Warn("User contact not persisted", zap.Int64("user_id", user.ID))
			}
			return next(c)
		}
	}
}

func updateKind(c tele.Context) string {
	if c.Callback() != nil {
		return "callback"
	}
	msg := c.Message()
	switch {
	case msg == nil:
		return "other"
	case msg.Photo != nil:
		return "photo"
	case strings.HasPrefix(msg.Text, "/"):
		return "command"
	case msg.Text != "":
		return "text"
	default:
		return "other"
	}
}
