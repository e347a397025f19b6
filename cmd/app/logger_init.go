package main

import (
	"github.com/hollis-dev/SatchelBot_Go/internal/config"
	"github.com/hollis-dev/SatchelBot_Go/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Source info only in dev
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	logger.Init(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.Environment,
		addSource,
	))
}
