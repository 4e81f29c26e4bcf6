package slogx

import (
	"log/slog"
)

// Err renders an error under the "error" key.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// Secret keeps only the first 5 characters of a sensitive value, enough to
// correlate log lines without leaking the value itself.
func Secret(key, value string) slog.Attr {
	switch {
	case value == "":
		return slog.String(key, "?")
	case len(value) > 5:
		return slog.String(key, value[:5]+"***")
	default:
		return slog.String(key, "***")
	}
}

// Module tags log lines with the component that produced them.
func Module(name string) slog.Attr {
	return slog.String("mod", name)
}
