package logging

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/etesami/earthquake-feed/pkg/config"
)

// Logger is the logger handed to every component.
type Logger = *logrus.Logger

// Entry is a logger carrying fields.
type Entry = *logrus.Entry

// Fields represents structured logging fields
type Fields = logrus.Fields

// NewLogger creates a JSON logger at the level named by LOG_LEVEL.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(config.GetLogLevel())
	return logger
}

// NewLoggerWithService creates a logger that stamps every entry with the
// service name.
func NewLoggerWithService(serviceName string) *logrus.Logger {
	logger := NewLogger()
	logger.AddHook(serviceHook{name: serviceName})
	return logger
}

// NewDiscardLogger is used by tests and by callers that do not care about
// diagnostics.
func NewDiscardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type serviceHook struct {
	name string
}

func (h serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h serviceHook) Fire(e *logrus.Entry) error {
	if _, ok := e.Data["service"]; !ok {
		e.Data["service"] = h.name
	}
	return nil
}
