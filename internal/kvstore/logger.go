package kvstore

import (
	"fmt"
	"log/slog"
	"strings"
)

// badgerLogger routes Badger's printf-style logging to slog.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(line(format, args), "component", "badger")
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(line(format, args), "component", "badger")
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Info(line(format, args), "component", "badger")
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(line(format, args), "component", "badger")
}

func line(format string, args []any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
