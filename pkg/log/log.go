package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/kandiyiit/sbgen/pkg/config"
)

// NewLogger returns the application logger. Verbose runs log search progress
// to stderr so stdout stays clean for the S-box output; quiet runs discard
// all log output.
func NewLogger(cfg *config.AppConfig) *logrus.Entry {
	var log *logrus.Logger
	if cfg.Visibility || cfg.Debug || os.Getenv("DEBUG") == "TRUE" {
		log = newVerboseLogger()
	} else {
		log = newQuietLogger()
	}

	return log.WithFields(logrus.Fields{
		"version": cfg.Version,
		"method":  cfg.Run.Method,
	})
}

func getLogLevel() logrus.Level {
	strLevel := os.Getenv("LOG_LEVEL")
	level, err := logrus.ParseLevel(strLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func newVerboseLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(getLogLevel())
	log.SetOutput(os.Stderr)
	return log
}

func newQuietLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	log.SetLevel(logrus.ErrorLevel)
	return log
}
