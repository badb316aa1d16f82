package config

import (
	"github.com/sirupsen/logrus"

	"github.com/Simplici0/tileshop/internal/pricing"
)

const defaultLogLevel = logrus.WarnLevel

// Config holds the process-wide settings of a run. It is built once at startup
// and never changed afterwards.
type Config struct {
	Rates    pricing.Rates
	LogLevel logrus.Level
}

// Load returns the shop configuration. Prices are fixed; only the log
// verbosity can be raised from the command line.
func Load(debug bool) Config {
	cfg := Config{
		Rates:    pricing.DefaultRates(),
		LogLevel: defaultLogLevel,
	}

	if debug {
		cfg.LogLevel = logrus.DebugLevel
	}

	return cfg
}

// NewLogger returns a stderr logger at the configured level.
func (c Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(c.LogLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}
