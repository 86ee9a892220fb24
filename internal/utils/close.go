package utils

import (
	"io"
	"log/slog"
)

// Close closes c and ignores any error. Use in defer where close
// errors do not matter.
func Close(c io.Closer) {
	_ = c.Close()
}

// MustClose closes c and logs any error.
func MustClose(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("failed to close", "error", err)
	}
}
