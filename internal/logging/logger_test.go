// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" info ", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.WarnLevel},
		{"verbose", zerolog.WarnLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "ParseLevel(%q)", tt.in)
	}
}

func TestNewLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "warn", NoColor: true, Out: &buf})

	logger.Info().Msg("hidden")
	logger.Error().Str("path", "/tmp/x").Msg("copy failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "copy failed")
	assert.Contains(t, out, "path=/tmp/x")
}

func TestNewLogger_WritesFile(t *testing.T) {
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "logs", "installer.log")
	logger := NewLogger(Config{Level: "info", LogFile: file, NoColor: true, Out: &buf})

	logger.Info().Msg("installed")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"installed"`)
}

func TestProgressSafeWriter_ClearsOncePerLine(t *testing.T) {
	var buf bytes.Buffer
	w := newProgressSafeWriter(&buf)

	_, err := w.Write([]byte("first "))
	require.NoError(t, err)
	_, err = w.Write([]byte("entry\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)

	assert.Equal(t, "\r\033[2Kfirst entry\n\r\033[2Ksecond\n", buf.String())
}
