package debug

import (
	"log/slog"
	"os"
	"strconv"
)

type debug struct {
	Dispatch bool
	Registry bool
	Fallback bool
}

var (
	d      *debug
	logger *slog.Logger
)

func init() {
	d = &debug{}
	d.Dispatch = boolEnv("OBJSON_DEBUG_DISPATCH")
	d.Registry = boolEnv("OBJSON_DEBUG_REGISTRY")
	d.Fallback = boolEnv("OBJSON_DEBUG_FALLBACK")
	if d.Dispatch || d.Registry || d.Fallback {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		logger = slog.New(slog.DiscardHandler)
	}
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Dispatch reports whether converter resolution should be logged.
func Dispatch() bool {
	return d.Dispatch
}
func Registry() bool {
	return d.Registry
}
func Fallback() bool {
	return d.Fallback
}

// Logger is the logger used when no logger is configured explicitly. It
// discards everything unless one of the OBJSON_DEBUG_* variables is set.
func Logger() *slog.Logger {
	return logger
}
