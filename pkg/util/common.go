package util

import (
	"io"
	"log/slog"
)

// CloseQuietly closes c and logs the error instead of returning it.
// For defer sites where a close failure has nowhere useful to go.
func CloseQuietly(name string, c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		slog.Error("close", "name", name, "err", err)
	}
}
