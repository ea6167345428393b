// Package obslog configures the analyzer's diagnostic logging: slog with a
// JSONL handler, optionally duplicated to a log file. Verbose logging never
// affects the AnalysisResult — it is strictly an observability side channel.
package obslog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Setup builds a logger writing JSONL to stderr, and additionally to
// logFile if one is given. Returns the logger and a cleanup func that
// closes the file handle; cleanup is a no-op when logFile is empty.
func Setup(logFile string, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	if logFile == "" {
		handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		return slog.New(handler), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	w := io.MultiWriter(os.Stderr, f)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)

	cleanup := func() { _ = f.Close() }
	return logger, cleanup, nil
}
