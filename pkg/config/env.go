package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// envFiles are read in order from the working directory; later files win
// and both win over the process environment.
var envFiles = []string{".env", ".env.local"}

// LoadEnv applies the env files that exist. A nil logger keeps it quiet.
func LoadEnv(log *logrus.Logger) {
	for _, name := range envFiles {
		err := godotenv.Overload(name)
		switch {
		case err == nil:
			if log != nil {
				log.Debugf("Loaded %s", name)
			}
		case errors.Is(err, fs.ErrNotExist):
		case log != nil:
			log.WithError(err).Warnf("Skipping %s", name)
		}
	}
}

// GetEnv returns the trimmed value of key, or def when it is unset or blank.
func GetEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// GetEnvInt is GetEnv for integers; unparsable values fall back to def.
func GetEnvInt(key string, def int) int {
	n, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return def
	}
	return n
}

// GetLogLevel maps LOG_LEVEL to a logrus level, info by default.
func GetLogLevel() logrus.Level {
	switch strings.ToLower(GetEnv("LOG_LEVEL", "")) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
