package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

var logLevels = map[LogLevel]int{
	LogLevelDebug: 1,
	LogLevelInfo:  2,
	LogLevelWarn:  3,
	LogLevelError: 4,
}

type Logger interface {
	Log(level LogLevel, format string, args ...interface{})
}

type DefaultLogger struct {
	logMode LogLevel
	logger  *log.Logger
}

// NewDefaultLogger writes to stdout, and additionally to logFile when one is
// given.
func NewDefaultLogger(mode LogLevel, logFile string) (*DefaultLogger, error) {
	var writer io.Writer = os.Stdout

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil {
			return nil, err
		}
		writer = io.MultiWriter(os.Stdout, file)
	}

	return &DefaultLogger{
		logMode: mode,
		logger:  log.New(writer, "", log.LstdFlags),
	}, nil
}

func (l *DefaultLogger) Log(level LogLevel, format string, args ...interface{}) {
	if logLevels[level] >= logLevels[l.logMode] {
		l.logger.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
	}
}
