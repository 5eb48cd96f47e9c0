package logger

import (
	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// Init configures the structured logger. JSON output is used so log
// aggregators can parse entries; development mode switches to text.
func Init(level string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter switches to human-readable text logs (for development)
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}
