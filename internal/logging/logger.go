package logging

import (
	"os"

	"github.com/fpt-usermanagement/apiserver/config"
	"github.com/sirupsen/logrus"
)

// New creates a structured logger from the log configuration.
func New(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logger.SetOutput(os.Stdout)
	return logger
}
