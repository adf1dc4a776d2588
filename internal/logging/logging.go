package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. Level names follow LOGGING_LEVEL
// (DEBUG, INFO, WARN, ERROR); anything logrus understands is accepted and an
// unknown value falls back to info.
func New(level string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	if out != nil {
		log.SetOutput(out)
	}
	log.SetLevel(ParseLevel(level))
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	return log
}

func ParseLevel(level string) logrus.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "LOG", "":
		return logrus.InfoLevel
	case "VERBOSE":
		return logrus.TraceLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Discard returns a logger that drops everything, for tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
