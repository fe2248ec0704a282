package handler

import (
	"context"
	"errors"
	"strings"
	"time"

	"aibot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// requestTimeout bounds a single AI or speech request
const requestTimeout = 90 * time.Second

func (h *Handler) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(h.ctx, requestTimeout)
}

// sendLong sends text in chunks no longer than MaxMessageLength.
// Options such as markup are attached to the last chunk only.
func (h *Handler) sendLong(c tele.Context, text string, opts ...interface{}) error {
	chunks := splitMessage(text, h.cfg.MaxMessageLength)
	for i, chunk := range chunks {
		var err error
		if i == len(chunks)-1 {
			err = c.Send(chunk, opts...)
		} else {
			err = c.Send(chunk)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// replyError logs err and sends the matching user-facing message
func (h *Handler) replyError(c tele.Context, op string, err error) error {
	var userID int64
	if c.Sender() != nil {
		userID = c.Sender().ID
	}
	h.logger.Error("Request failed",
		zap.String("op", op),
		zap.Int64("user_id", userID),
		zap.Error(err),
	)
	return c.Send(errorMessage(err))
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrImageTooLarge):
		return msgImageTooLarge
	case errors.Is(err, service.ErrEmptyInput), errors.Is(err, service.ErrEmptyText):
		return msgEmptyText
	case errors.Is(err, service.ErrEmptyResponse):
		return msgEmptyResponse
	case errors.Is(err, service.ErrNoAudio):
		return msgVoiceFailed
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	default:
		return msgTemporaryError
	}
}

// splitMessage cuts text into pieces of at most max runes, preferring to
// break after a newline, then after a space.
func splitMessage(text string, max int) []string {
	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return []string{text}
	}

	var parts []string
	for len(runes) > max {
		cut := max
		if i := lastIndex(runes[:max], '\n'); i >= max/2 {
			cut = i + 1
		} else if i := lastIndex(runes[:max], ' '); i >= max/2 {
			cut = i + 1
		}
		if part := strings.TrimRight(string(runes[:cut]), " \n"); part != "" {
			parts = append(parts, part)
		}
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

func lastIndex(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

// showScreen edits the message behind a button press, or sends a new one
func (h *Handler) showScreen(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil {
		return c.Send(text, markup)
	}
	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}
