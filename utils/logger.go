package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the application-wide structured logger
var Logger = logrus.New()

// InitLogger configures Logger for the environment: JSON in production,
// full-timestamp text everywhere else.
func InitLogger(level string, production bool) {
	Logger = logrus.New()
	Logger.SetOutput(os.Stdout)

	if production {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		Logger.WithField("level", level).Warn("Unknown log level, defaulting to info")
	}
	Logger.SetLevel(lvl)
}
