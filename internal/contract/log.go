package contract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log formats supported by ConfigureLogging.
const (
	TextLogFormat = "text"
	JSONLogFormat = "json"
)

// exitFunc is swapped in tests to observe LogFatal without exiting.
var exitFunc = os.Exit

// ConfigureLogging sets the global logrus level, format and destination.
func ConfigureLogging(level, format string, w io.Writer) error {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("invalid log level '%s': %w", level, err)
	}
	logrus.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", TextLogFormat:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case JSONLogFormat:
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format '%s'. must be text or json", format)
	}

	if w != nil {
		logrus.SetOutput(w)
	}
	return nil
}

// Logger returns a logger tagged with the given component name.
func Logger(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	logrus.WithError(err).Error("Fatal " + msg)
	exitFunc(1)
}

// LogWarn logs a warning message.
func LogWarn(msg string, err error) {
	logrus.WithError(err).Warn(msg)
}
