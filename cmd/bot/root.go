package main

import (
	"fmt"
	"os"

	"aibot/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultMigrations = "file://migrations"

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	cmd := &cobra.Command{
		Use:          "bot",
		Short:        "Telegram assistant backed by Gemini",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	cmd.PersistentFlags().String("migrations", defaultMigrations, "Migrations source URL for the postgres storage driver.")

	cmd.AddCommand(serve)
	cmd.AddCommand(newStatsCmd())
	return cmd
}

// newLogger builds the production logger. Its level can be changed once
// configuration is loaded.
func newLogger() (*zap.Logger, zap.AtomicLevel) {
	zcfg := zap.NewProductionConfig()
	logger, err := zcfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	return logger, zcfg.Level
}

// loadConfig loads configuration and applies LOG_LEVEL to level
func loadConfig(logger *zap.Logger, level zap.AtomicLevel) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	lvl, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn("Unknown LOG_LEVEL, keeping info", zap.String("level", cfg.LogLevel))
	} else {
		level.SetLevel(lvl)
	}

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Environment),
		zap.String("storage", cfg.StorageDriver),
	)
	return cfg
}
