package service

import (
	"log/slog"
	"time"
)

// Clock supplies creation timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Option configures a Service.
type Option func(*Service)

// WithClock sets the timestamp source. Defaults to SystemClock.
func WithClock(c Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}
