// Package xslog holds slog setup and shared attribute constructors.
package xslog

import (
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"
)

// NewLogger returns a JSON logger writing to w at the given level name
// (debug, info, warn, error). Unknown names fall back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func ErrorAny(err any) slog.Attr {
	return slog.Any("error", err)
}

func Stack() slog.Attr {
	return slog.String("stack", string(debug.Stack()))
}

func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

func HTTPStatus(status int) slog.Attr {
	return slog.Int("status", status)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func RequestMethod(r *http.Request) slog.Attr {
	return slog.String("method", r.Method)
}

func RequestPath(r *http.Request) slog.Attr {
	return slog.String("path", r.URL.Path)
}
