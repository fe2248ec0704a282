package handler

import (
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	user := c.Sender()

	h.logger.Info("User started bot",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	h.states.Clear(user.ID)
	return c.Send(fmt.Sprintf(msgWelcome, displayName(user)), mainMenuMarkup())
}

// handleHelp handles /help and the help button
func (h *Handler) handleHelp(c tele.Context) error {
	return h.showScreen(c, msgHelp, backMarkup())
}

// handleMainMenu leaves any pending flow and shows the main menu
func (h *Handler) handleMainMenu(c tele.Context) error {
	h.states.Clear(c.Sender().ID)
	return h.showScreen(c, msgMainMenu, mainMenuMarkup())
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	h.states.Clear(c.Sender().ID)
	return h.showScreen(c, msgCancelled, mainMenuMarkup())
}

func displayName(user *tele.User) string {
	if user.FirstName != "" {
		return user.FirstName
	}
	if user.Username != "" {
		return user.Username
	}
	return "there"
}
