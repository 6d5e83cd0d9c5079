// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func resetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })
}

// ── constructors ─────────────────────────────────────────────────────────────

func TestNewLogger_Fields(t *testing.T) {
	resetLevel(t)
	var buf bytes.Buffer
	l := NewLogger("tree-sync-origin", "")
	l.Logger = l.Output(&buf)

	l.Info().Msg("listening")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "tree-sync-origin", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

func TestNewClientLogger_HasNoCaller(t *testing.T) {
	resetLevel(t)
	var buf bytes.Buffer
	l := NewClientLogger("tree-sync-puller", "info")
	l.Logger = l.Output(&buf)

	l.Info().Msg("pulling")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "tree-sync-puller", entry["role"])
	assert.NotContains(t, entry, "func")
}

func TestConstructors_SetGlobalLevel(t *testing.T) {
	tests := []struct {
		name  string
		build func(level string) *Logger
		level string
		want  zerolog.Level
	}{
		{"origin default", func(l string) *Logger { return NewLogger("o", l) }, "", zerolog.DebugLevel},
		{"origin warn", func(l string) *Logger { return NewLogger("o", l) }, "warn", zerolog.WarnLevel},
		{"puller info", func(l string) *Logger { return NewClientLogger("p", l) }, "info", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetLevel(t)
			require.NotNil(t, tt.build(tt.level))
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{" ERROR ", zerolog.ErrorLevel},
		{"nonsense", zerolog.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

// ── derived loggers ──────────────────────────────────────────────────────────

func TestWithRoot_AddsRootField(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf).With().Str("role", "puller").Logger()}

	parent.WithRoot("content").Info().Msg("planning")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "content", entry["root"])
	assert.Equal(t, "puller", entry["role"])
}

func TestGetChildLogger_KeepsParentFields(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf).With().Str("role", "origin").Logger()}

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)

	child.Info().Msg("request")
	assert.Equal(t, "origin", lastEntry(t, &buf)["role"])
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

// ── context lookup ───────────────────────────────────────────────────────────

func TestFromContext(t *testing.T) {
	// без логгера в контексте zerolog отдаёт свой default
	require.NotNil(t, FromContext(context.Background()))

	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "abc").Logger()

	FromContext(zl.WithContext(context.Background())).Info().Msg("from context")
	assert.Equal(t, "abc", lastEntry(t, &buf)["trace_id"])
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "req-1").Logger()

	req := httptest.NewRequest(http.MethodGet, "/_sync/manifest", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")
	assert.Equal(t, "req-1", lastEntry(t, &buf)["trace_id"])
}
