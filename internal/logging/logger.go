// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the installer's zerolog logger.
//
// Diagnostics go to stderr through a console writer and, when configured,
// to a size-rotated file. Prompts and confirmations are not logs and never
// pass through here.
package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration
type Config struct {
	Level   string
	LogFile string
	NoColor bool
	// Out defaults to os.Stderr
	Out io.Writer
}

// NewLogger creates a zerolog logger writing to the console and, if
// LogFile is set, to a rotated file.
func NewLogger(cfg Config) *zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        newProgressSafeWriter(out),
		TimeFormat: "15:04:05",
		NoColor:    cfg.NoColor || os.Getenv("NO_COLOR") != "",
	}

	writers := []io.Writer{consoleWriter}

	if cfg.LogFile != "" {
		// A log directory we cannot create only costs us the file output
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err == nil {
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.LogFile,
				MaxSize:    5, // MB
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			})
		}
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()

	return &logger
}

// progressSafeWriter keeps log lines from landing in the middle of the copy
// progress bar: the current terminal line is cleared once per log entry.
type progressSafeWriter struct {
	out       io.Writer
	lineStart bool
	mu        sync.Mutex
	clearSeq  []byte
}

func newProgressSafeWriter(out io.Writer) *progressSafeWriter {
	return &progressSafeWriter{
		out:       out,
		lineStart: true,
		clearSeq:  []byte("\r\033[2K"),
	}
}

func (w *progressSafeWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.lineStart {
		if _, err := w.out.Write(w.clearSeq); err != nil {
			return 0, err
		}
		w.lineStart = false
	}

	n, err := w.out.Write(p)
	if n > 0 && bytes.LastIndexByte(p[:n], '\n') == n-1 {
		w.lineStart = true
	}
	return n, err
}

// ParseLevel converts a level name to a zerolog.Level. Unknown names map
// to warn, the installer's quiet default.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.WarnLevel
	}
}

// NewTestLogger creates a logger for testing that writes JSON to w
func NewTestLogger(w io.Writer) *zerolog.Logger {
	logger := zerolog.New(w).With().Timestamp().Logger()
	return &logger
}
