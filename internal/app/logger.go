package app

import "strings"

import "github.com/saandeep/portfolio-api/pkg/logger"

// ConfigureLogging initialises the global logger from the server section,
// defaulting to info.
func ConfigureLogging(cfg ServerConfig) error {
	level := strings.TrimSpace(cfg.LogLevel)
	if level == "" {
		level = "info"
	}
	return logger.Init(level, cfg.Development)
}
