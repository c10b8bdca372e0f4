package utils

import (
	"context"
	"log/slog"
	"os"

	slogctx "github.com/veqryn/slog-context"
)

// ContextLogger returns the context logger with args attached.
func ContextLogger(ctx context.Context, args ...any) *slog.Logger {
	return slogctx.FromCtx(ctx).With(args...)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

func CancelContext(cancel context.CancelFunc) {
	if cancel != nil {
		cancel()
	}
}
