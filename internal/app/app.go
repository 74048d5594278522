package app

import (
	"io"
	"log/slog"
)

// App encapsulates one invocation's dependencies and configuration.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp constructs the application with its own isolated logger.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}
}
