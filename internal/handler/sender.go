package handler

import (
	"context"

	tele "gopkg.in/telebot.v3"
)

// BotSender delivers broadcast messages through the bot
type BotSender struct {
	bot *tele.Bot
}

// NewBotSender creates a sender backed by bot
func NewBotSender(bot *tele.Bot) *BotSender {
	return &BotSender{bot: bot}
}

// SendText sends text to chatID. telebot has no context support, so ctx
// is not consulted once the request is started.
func (s *BotSender) SendText(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.bot.Send(tele.ChatID(chatID), text)
	return err
}
