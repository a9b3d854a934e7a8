// Package obs contains observability utilities such as logging.
package obs

import (
	"io"
	"log/slog"
)

// Setup builds the application logger and installs it as the slog default.
// The writer is injectable because the console simulation owns the terminal
// and routes logs to a file instead.
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	l := slog.New(h)
	slog.SetDefault(l)
	return l
}
