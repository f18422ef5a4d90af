package logger

import (
	"log/slog"
	"os"
)

// New returns the default structured logger. Hosts embedding the engine can
// pass their own *slog.Logger instead.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
