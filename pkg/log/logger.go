package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

const (
	LevelDisabled Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

type (
	Logger interface {
		With(fields Fields) Logger
		WithField(name string, value any) Logger
		WithError(err error) Logger
		WithContext(ctx context.Context, fields Fields) context.Context
		Log(ctx context.Context, lvl Level, msg string)
		Debug(ctx context.Context, msg string)
		Info(ctx context.Context, msg string)
		Warn(ctx context.Context, msg string)
		Error(ctx context.Context, msg string)
	}

	Fields map[string]any
	Level  int

	contextKey int
)

const fieldsContextKey contextKey = iota

var slogLevels = map[Level]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

type logger struct {
	impl *slog.Logger
}

func New(level Level) Logger {
	return NewWithOutput(level, os.Stderr)
}

func NewWithOutput(level Level, out io.Writer) Logger {
	if level == LevelDisabled {
		return stub{}
	}

	impl := slog.New(slog.NewJSONHandler(
		out,
		&slog.HandlerOptions{Level: slogLevels[level]},
	))

	return logger{impl}
}

func (l logger) With(fields Fields) Logger {
	if len(fields) == 0 {
		return l
	}

	l.impl = l.impl.With(fieldsToArgs(fields)...)
	return l
}

func (l logger) WithField(name string, v any) Logger {
	l.impl = l.impl.With(name, v)
	return l
}

func (l logger) WithError(err error) Logger {
	if err == nil {
		return l
	}

	l.impl = l.impl.With("error", err.Error())
	return l
}

func (l logger) WithContext(ctx context.Context, fields Fields) context.Context {
	if len(fields) == 0 {
		return ctx
	}

	ctxArgs := contextArgs(ctx)
	merged := make([]any, 0, len(ctxArgs)+len(fields)*2)
	merged = append(merged, ctxArgs...)
	merged = append(merged, fieldsToArgs(fields)...)

	return context.WithValue(ctx, fieldsContextKey, merged)
}

func (l logger) Log(ctx context.Context, level Level, msg string) {
	if level == LevelDisabled {
		return
	}

	l.withContextArgs(ctx).Log(ctx, slogLevels[level], msg)
}

func (l logger) Debug(ctx context.Context, msg string) {
	l.withContextArgs(ctx).Debug(msg)
}

func (l logger) Info(ctx context.Context, msg string) {
	l.withContextArgs(ctx).Info(msg)
}

func (l logger) Warn(ctx context.Context, msg string) {
	l.withContextArgs(ctx).Warn(msg)
}

func (l logger) Error(ctx context.Context, msg string) {
	l.withContextArgs(ctx).Error(msg)
}

func (l logger) withContextArgs(ctx context.Context) *slog.Logger {
	return l.impl.With(contextArgs(ctx)...)
}

func contextArgs(ctx context.Context) []any {
	args, _ := ctx.Value(fieldsContextKey).([]any)
	return args
}

func fieldsToArgs(fields Fields) []any {
	if len(fields) == 0 {
		return nil
	}

	args := make([]any, 0, len(fields)*2)
	for key, value := range fields {
		args = append(args, key, value)
	}

	return args
}
