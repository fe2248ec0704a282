package handler

import (
	"context"
	"io"

	"aibot/internal/config"
	"aibot/internal/domain"
	"aibot/internal/middleware"
	"aibot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
	telemw "gopkg.in/telebot.v3/middleware"
)

// Services groups the collaborators updates are dispatched to
type Services struct {
	Registry  *service.Registry
	States    service.StateStore
	Broadcast *service.BroadcastService
	AI        *service.AIService
	Speech    *service.SpeechService
}

type fileDownloader interface {
	File(file *tele.File) (io.ReadCloser, error)
}

// textFlow consumes the text a user was asked for
type textFlow func(c tele.Context, text string) error

type buttonRoute struct {
	btn     *tele.Btn
	handler tele.HandlerFunc
	admin   bool
}

// Handler manages all bot interactions
type Handler struct {
	bot       *tele.Bot
	files     fileDownloader
	cfg       *config.Config
	registry  *service.Registry
	states    service.StateStore
	broadcast *service.BroadcastService
	ai        *service.AIService
	speech    *service.SpeechService
	logger    *zap.Logger

	// ctx is the process lifetime context; cancelled on shutdown
	ctx context.Context

	flows   map[domain.AwaitingFlag]textFlow
	buttons []buttonRoute
}

// NewHandler creates a new handler instance
func NewHandler(
	ctx context.Context,
	bot *tele.Bot,
	cfg *config.Config,
	svc Services,
	logger *zap.Logger,
) *Handler {
	h := &Handler{
		bot:       bot,
		cfg:       cfg,
		registry:  svc.Registry,
		states:    svc.States,
		broadcast: svc.Broadcast,
		ai:        svc.AI,
		speech:    svc.Speech,
		logger:    logger,
		ctx:       ctx,
	}
	if bot != nil {
		h.files = bot
	}

	h.flows = map[domain.AwaitingFlag]textFlow{
		domain.AwaitingBroadcastText:   h.consumeBroadcast,
		domain.AwaitingVoiceText:       h.consumeVoice,
		domain.AwaitingSummaryText:     h.consumeSummary,
		domain.AwaitingTranslationText: h.consumeTranslation,
	}

	h.buttons = []buttonRoute{
		{btn: &btnChat, handler: h.handleChatButton},
		{btn: &btnVoice, handler: h.handleVoiceButton},
		{btn: &btnSummarize, handler: h.handleSummarizeButton},
		{btn: &btnTranslate, handler: h.handleTranslateButton},
		{btn: &btnImage, handler: h.handleImageButton},
		{btn: &btnHelp, handler: h.handleHelp},
		{btn: &btnMainMenu, handler: h.handleMainMenu},
		{btn: &btnCancel, handler: h.handleCancel},
		{btn: &btnAdminBroadcast, handler: h.handleAdminBroadcast, admin: true},
		{btn: &btnAdminStats, handler: h.handleAdminStats, admin: true},
	}
	return h
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Use(telemw.Recover(), middleware.RecordContact(h.registry, h.logger))
	adminOnly := h.adminOnly()

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleHelp)
	h.bot.Handle("/stats", h.handleStats)
	h.bot.Handle("/admin", h.handleAdmin, adminOnly)
	h.bot.Handle("/ask", h.handleAsk)
	h.bot.Handle("/voice", h.handleVoiceCommand)
	h.bot.Handle("/translate", h.handleTranslateCommand)
	h.bot.Handle("/summarize", h.handleSummarizeCommand)

	// Messages
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnPhoto, h.handlePhoto)

	// Inline buttons
	for _, route := range h.buttons {
		if route.admin {
			h.bot.Handle(route.btn, route.handler, adminOnly)
			continue
		}
		h.bot.Handle(route.btn, route.handler)
	}

	// Generic callback handler for buttons that didn't match by unique
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// Commands lists the commands shown in the Telegram menu
func Commands() []tele.Command {
	return []tele.Command{
		{Text: "start", Description: "Start the bot"},
		{Text: "help", Description: "How to use the bot"},
		{Text: "ask", Description: "Ask a question"},
		{Text: "voice", Description: "Turn text into a voice message"},
		{Text: "translate", Description: "Translate text"},
		{Text: "summarize", Description: "Summarize text"},
		{Text: "stats", Description: "Usage statistics"},
		{Text: "admin", Description: "Admin panel"},
	}
}

// PublishCommands sets the bot's command menu
func (h *Handler) PublishCommands() error {
	return h.bot.SetCommands(Commands())
}

func (h *Handler) adminOnly() tele.MiddlewareFunc {
	return middleware.AdminOnly(h.cfg.IsAdmin, h.logger)
}

// Inline keyboard buttons
var (
	btnChat = tele.Btn{
		Unique: "chat",
		Text:   "💬 Chat",
	}
	btnVoice = tele.Btn{
		Unique: "voice",
		Text:   "🎤 Text to voice",
	}
	btnSummarize = tele.Btn{
		Unique: "summarize",
		Text:   "📝 Summarize",
	}
	btnTranslate = tele.Btn{
		Unique: "translate",
		Text:   "🌐 Translate",
	}
	btnImage = tele.Btn{
		Unique: "image",
		Text:   "🖼 Describe image",
	}
	btnHelp = tele.Btn{
		Unique: "help",
		Text:   "❓ Help",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnAdminBroadcast = tele.Btn{
		Unique: "admin_broadcast",
		Text:   "📢 Broadcast",
	}
	btnAdminStats = tele.Btn{
		Unique: "admin_stats",
		Text:   "📊 Statistics",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnChat, btnVoice),
		menu.Row(btnSummarize, btnTranslate),
		menu.Row(btnImage, btnHelp),
	)
	return menu
}

func adminMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnAdminBroadcast),
		menu.Row(btnAdminStats),
		menu.Row(btnMainMenu),
	)
	return menu
}

func cancelMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnCancel))
	return menu
}

func backMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnMainMenu))
	return menu
}
