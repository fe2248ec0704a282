package handler

import (
	"bytes"
	"fmt"
	"strings"

	"aibot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText routes free text to the flow the user was asked for,
// or to the chat flow when nothing is pending.
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	if flag, ok := h.states.Awaiting(userID); ok {
		h.states.Clear(userID)
		if flow, found := h.flows[flag]; found {
			h.logger.Debug("Consuming awaited text",
				zap.Int64("user_id", userID),
				zap.String("flag", string(flag)),
			)
			return flow(c, text)
		}
		h.logger.Warn("Unknown awaiting flag dropped",
			zap.Int64("user_id", userID),
			zap.String("flag", string(flag)),
		)
	}

	return h.chat(c, text)
}

func (h *Handler) chat(c tele.Context, text string) error {
	_ = c.Notify(tele.Typing)

	ctx, cancel := h.requestContext()
	defer cancel()

	reply, err := h.ai.Chat(ctx, text, c.Sender().FirstName)
	if err != nil {
		return h.replyError(c, "chat", err)
	}
	return h.sendLong(c, reply)
}

// Button handlers that start a text flow

func (h *Handler) handleChatButton(c tele.Context) error {
	h.states.Clear(c.Sender().ID)
	return h.showScreen(c, msgChatPrompt, backMarkup())
}

func (h *Handler) handleVoiceButton(c tele.Context) error {
	return h.await(c, domain.AwaitingVoiceText, msgVoicePrompt)
}

func (h *Handler) handleSummarizeButton(c tele.Context) error {
	return h.await(c, domain.AwaitingSummaryText, msgSummaryPrompt)
}

func (h *Handler) handleTranslateButton(c tele.Context) error {
	return h.await(c, domain.AwaitingTranslationText, msgTranslationPrompt)
}

func (h *Handler) handleImageButton(c tele.Context) error {
	h.states.Clear(c.Sender().ID)
	return h.showScreen(c, msgImagePrompt, backMarkup())
}

func (h *Handler) await(c tele.Context, flag domain.AwaitingFlag, prompt string) error {
	h.states.SetAwaiting(c.Sender().ID, flag)
	return h.showScreen(c, prompt, cancelMarkup())
}

// Commands

func (h *Handler) handleAsk(c tele.Context) error {
	question := payload(c)
	if question == "" {
		return c.Send(msgAskUsage)
	}
	_ = c.Notify(tele.Typing)

	ctx, cancel := h.requestContext()
	defer cancel()

	answer, err := h.ai.Answer(ctx, question, "")
	if err != nil {
		return h.replyError(c, "answer", err)
	}
	return h.sendLong(c, answer)
}

func (h *Handler) handleVoiceCommand(c tele.Context) error {
	text := payload(c)
	if text == "" {
		return h.await(c, domain.AwaitingVoiceText, msgVoicePrompt)
	}
	return h.consumeVoice(c, text)
}

func (h *Handler) handleSummarizeCommand(c tele.Context) error {
	text := payload(c)
	if text == "" {
		return h.await(c, domain.AwaitingSummaryText, msgSummaryPrompt)
	}
	return h.consumeSummary(c, text)
}

// handleTranslateCommand accepts "/translate <lang> <text>" or "/translate <text>"
func (h *Handler) handleTranslateCommand(c tele.Context) error {
	text := payload(c)
	if text == "" {
		return h.await(c, domain.AwaitingTranslationText, msgTranslationPrompt)
	}

	if first, rest, found := strings.Cut(text, " "); found {
		if code := strings.ToLower(first); domain.IsSupportedLanguage(code) && strings.TrimSpace(rest) != "" {
			return h.translate(c, strings.TrimSpace(rest), code)
		}
	}
	return h.consumeTranslation(c, text)
}

// Flow consumers

func (h *Handler) consumeVoice(c tele.Context, text string) error {
	_ = c.Notify(tele.RecordingAudio)

	ctx, cancel := h.requestContext()
	defer cancel()

	audio, err := h.speech.SynthesizeAuto(ctx, text)
	if err != nil {
		return h.replyError(c, "voice", err)
	}

	return c.Send(&tele.Audio{
		File:     tele.FromReader(bytes.NewReader(audio)),
		Title:    msgVoiceTitle,
		MIME:     "audio/mpeg",
		FileName: "voice.mp3",
	})
}

func (h *Handler) consumeSummary(c tele.Context, text string) error {
	_ = c.Notify(tele.Typing)

	ctx, cancel := h.requestContext()
	defer cancel()

	summary, err := h.ai.Summarize(ctx, text)
	if err != nil {
		return h.replyError(c, "summarize", err)
	}
	return h.sendLong(c, msgSummaryHeader+summary)
}

func (h *Handler) consumeTranslation(c tele.Context, text string) error {
	return h.translate(c, text, h.translationTarget(text))
}

func (h *Handler) translate(c tele.Context, text, target string) error {
	_ = c.Notify(tele.Typing)

	ctx, cancel := h.requestContext()
	defer cancel()

	translated, err := h.ai.Translate(ctx, text, target)
	if err != nil {
		return h.replyError(c, "translate", err)
	}

	name := target
	if lang, ok := domain.LookupLanguage(target); ok {
		name = lang.NativeName
	}
	return h.sendLong(c, fmt.Sprintf(msgTranslationHeader, name)+translated)
}

// translationTarget picks English for text in the default language and
// the default language for everything else.
func (h *Handler) translationTarget(text string) string {
	if h.speech.DetectLanguage(text) != h.cfg.DefaultLanguage {
		return h.cfg.DefaultLanguage
	}
	if h.cfg.DefaultLanguage == "en" {
		return "ar"
	}
	return "en"
}

func payload(c tele.Context) string {
	if c.Message() == nil {
		return ""
	}
	return strings.TrimSpace(c.Message().Payload)
}
