package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aibot/internal/handler"
	"aibot/internal/llm/gemini"
	"aibot/internal/metrics"
	"aibot/internal/service"
	"aibot/internal/tts/gtranslate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			migrations, _ := cmd.Flags().GetString("migrations")
			runBot(migrations)
			return nil
		},
	}
}

func runBot(migrations string) {
	logger, level := newLogger()
	defer logger.Sync()

	logger.Info("Starting AI bot")

	cfg := loadConfig(logger, level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage
	repo, closeRepo, err := openRepository(cfg, migrations, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer closeRepo()

	// Metrics and health
	metricsServer := metrics.NewServer(cfg.MetricsAddr(), logger)
	go metricsServer.Run()

	// External clients
	model, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Fatal("Failed to create Gemini client", zap.Error(err))
	}

	// Services
	registry := service.NewRegistry(ctx, repo, logger)
	states := service.NewMemoryStateStore()
	ai := service.NewAIService(model, service.AIOptions{
		TextModel:   cfg.GeminiModel,
		VisionModel: cfg.GeminiVisionModel,
	}, logger)
	speech := service.NewSpeechService(gtranslate.New(), cfg.VoiceLanguage, cfg.DefaultLanguage, logger)

	pingCtx, pingCancel := context.WithTimeout(ctx, 15*time.Second)
	if err := ai.Ping(pingCtx); err != nil {
		logger.Warn("Gemini connectivity check failed", zap.Error(err))
	} else {
		logger.Info("Gemini connectivity check passed")
	}
	pingCancel()

	// Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:       cfg.BotToken,
		Poller:      &tele.LongPoller{Timeout: 10 * time.Second},
		Synchronous: true,
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Sender() != nil {
				fields = append(fields, zap.Int64("user_id", c.Sender().ID))
			}
			logger.Error("Update handling failed", fields...)
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized", zap.String("username", bot.Me.Username))

	broadcast := service.NewBroadcastService(registry, handler.NewBotSender(bot), cfg.BroadcastDelay, logger)

	h := handler.NewHandler(ctx, bot, cfg, handler.Services{
		Registry:  registry,
		States:    states,
		Broadcast: broadcast,
		AI:        ai,
		Speech:    speech,
	}, logger)
	h.RegisterHandlers()
	if err := h.PublishCommands(); err != nil {
		logger.Warn("Failed to publish command list", zap.Error(err))
	}

	logger.Info("Handlers registered")

	go runStatsReporter(ctx, registry, 24*time.Hour, logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	cancel()
	bot.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Metrics server shutdown failed", zap.Error(err))
	}

	logger.Info("Bot stopped gracefully")
}

// runStatsReporter logs registry statistics periodically
func runStatsReporter(ctx context.Context, registry *service.Registry, interval time.Duration, logger *zap.Logger) {
	report := func() {
		stats := registry.AggregateStats()
		logger.Info("Registry statistics",
			zap.Int("users", stats.TotalUsers),
			zap.Int64("messages", stats.TotalMessages),
			zap.Float64("avg_messages_per_user", stats.AvgMessagesPerUser),
		)
	}
	report()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stats reporter stopped")
			return
		case <-ticker.C:
			report()
		}
	}
}
