// Package logging is the JSON slog setup shared by the game, its renderers
// and the CLI. Every line carries the session correlation ID from its context.
package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnvVar names the environment variable holding the log level
const LevelEnvVar = "SPACERUN_LOG_LEVEL"

// Logger is a slog.Logger whose helpers take the context first
type Logger struct {
	*slog.Logger
}

// NewLoggerTo writes JSON lines at level or above to w
func NewLoggerTo(w io.Writer, level slog.Level) *Logger {
	return &Logger{slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))}
}

// Discard returns a logger that writes nothing
func Discard() *Logger {
	return NewLoggerTo(io.Discard, slog.LevelError+1)
}

func (l *Logger) log(ctx context.Context, level slog.Level, msg string, args []any) {
	if id := GetCorrelationID(ctx); id != "" {
		args = append(args, "correlation_id", id)
	}
	l.Log(ctx, level, msg, args...)
}

func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelDebug, msg, args)
}

func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelInfo, msg, args)
}

func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, msg, args)
}

// Error logs at error level with err under the "error" key
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.log(ctx, slog.LevelError, msg, args)
}

type correlationIDKey struct{}

// WithCorrelationID tags ctx with id, or with a fresh one when id is empty
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = GenerateCorrelationID()
	}
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// GetCorrelationID returns the ID set by WithCorrelationID, if any
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// GenerateCorrelationID returns 16 random hex digits. Sessions use it as
// their ID.
func GenerateCorrelationID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// ParseLevel maps DEBUG, INFO, WARN or ERROR to a slog level. Anything else
// is INFO.
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFromEnv reads the level from SPACERUN_LOG_LEVEL
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LevelEnvVar))
}
