// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the tracker. Long-lived components get a
// *Logger at construction; request and call handlers fetch the scoped one
// stored in their context with FromRequest or FromContext.
package logger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Logger struct {
	zerolog.Logger
}

var configureOnce sync.Once

// configure switches zerolog's caller field to "func" with the function
// name instead of file:line. It touches package globals, so it runs once.
func configure() {
	configureOnce.Do(func() {
		zerolog.CallerFieldName = "func"
		zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
			return runtime.FuncForPC(pc).Name()
		}
	})
}

// New writes JSON lines to w, tagging every entry with role. level sets the
// global zerolog level; empty means debug.
func New(w io.Writer, role, level string) (*Logger, error) {
	configure()

	parsed := zerolog.DebugLevel
	if level != "" {
		var err error
		if parsed, err = zerolog.ParseLevel(level); err != nil {
			return nil, fmt.Errorf("error parsing log level %q: %w", level, err)
		}
	}
	zerolog.SetGlobalLevel(parsed)

	return &Logger{
		zerolog.New(w).With().
			Str("role", role).
			Timestamp().
			Caller().
			Logger(),
	}, nil
}

// NewLogger is New on stdout at debug level.
func NewLogger(role string) *Logger {
	l, _ := New(os.Stdout, role, "")
	return l
}

// NewLoggerWithLevel is New on stdout.
func NewLoggerWithLevel(role, level string) (*Logger, error) {
	return New(os.Stdout, role, level)
}

// Nop discards everything. Tests use it.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger copies l so fields added to the copy stay out of l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// ForActor returns a child tagged with the acting user.
func (l *Logger) ForActor(userID int64, login string) *Logger {
	return &Logger{l.With().Int64("user_id", userID).Str("login", login).Logger()}
}

func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx by WithContext. Without
// one, zerolog's default context logger is used, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
