package handler

import (
	"fmt"

	"aibot/internal/domain"
	"aibot/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleAdmin shows the admin panel
func (h *Handler) handleAdmin(c tele.Context) error {
	return c.Send(msgAdminPanel, adminMenuMarkup())
}

// handleAdminBroadcast asks the administrator for the broadcast text
func (h *Handler) handleAdminBroadcast(c tele.Context) error {
	return h.await(c, domain.AwaitingBroadcastText, msgBroadcastPrompt)
}

// handleAdminStats shows aggregate statistics in the admin panel
func (h *Handler) handleAdminStats(c tele.Context) error {
	return h.showScreen(c, h.adminStatsText(), adminMenuMarkup())
}

// handleStats shows aggregate statistics to the administrator and
// personal statistics to everyone else.
func (h *Handler) handleStats(c tele.Context) error {
	userID := c.Sender().ID
	if h.cfg.IsAdmin(userID) {
		return c.Send(h.adminStatsText())
	}

	profile, ok := h.registry.Profile(userID)
	if !ok {
		return c.Send(msgNoStats)
	}
	return c.Send(fmt.Sprintf(msgUserStats,
		profile.MessageCount,
		profile.JoinedAt.Format("2006-01-02"),
	))
}

func (h *Handler) adminStatsText() string {
	stats := h.registry.AggregateStats()
	return fmt.Sprintf(msgAdminStats, stats.TotalUsers, stats.TotalMessages, stats.AvgMessagesPerUser)
}

// consumeBroadcast sends the awaited text to every registered user
func (h *Handler) consumeBroadcast(c tele.Context, text string) error {
	userID := c.Sender().ID
	if !h.cfg.IsAdmin(userID) {
		h.logger.Warn("Broadcast text from non-admin ignored", zap.Int64("user_id", userID))
		return c.Send(middleware.DenyMessage)
	}

	job, err := h.broadcast.NewJob(text)
	if err != nil {
		h.states.SetAwaiting(userID, domain.AwaitingBroadcastText)
		return c.Send(msgBroadcastEmpty, cancelMarkup())
	}

	if err := c.Send(fmt.Sprintf(msgBroadcastStarting, len(job.Recipients))); err != nil {
		h.logger.Warn("Failed to send broadcast notice", zap.Error(err))
	}

	result := h.broadcast.Run(h.ctx, job)
	return c.Send(result.Summary(), adminMenuMarkup())
}
