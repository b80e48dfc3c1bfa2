package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), buf.String())
	return entry
}

func resetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })
}

func TestNew_Fields(t *testing.T) {
	resetLevel(t)

	var buf bytes.Buffer
	l, err := New(&buf, "tracker", "")
	require.NoError(t, err)

	l.Info().Msg("hello")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "tracker", entry["role"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNew_Fields", "caller is the function name")
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

func TestNew_Levels(t *testing.T) {
	resetLevel(t)

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			_, err := New(&bytes.Buffer{}, "tracker", tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestNew_LevelFilters(t *testing.T) {
	resetLevel(t)

	var buf bytes.Buffer
	l, err := New(&buf, "tracker", "warn")
	require.NoError(t, err)

	l.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("kept")
	assert.Equal(t, "kept", decodeLine(t, &buf)["message"])
}

func TestNew_BadLevel(t *testing.T) {
	l, err := New(&bytes.Buffer{}, "tracker", "loud")

	assert.ErrorContains(t, err, `"loud"`)
	assert.Nil(t, l)
}

func TestNewLoggerWithLevel(t *testing.T) {
	resetLevel(t)

	l, err := NewLoggerWithLevel("tracker", "info")
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	require.NotNil(t, NewLogger("tracker"))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}

// ─── children ────────────────────────────────────────────────────────────────

func TestGetChildLogger_IsIndependent(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf).With().Str("base", "yes").Logger()}

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", "t-1")
	})

	child.Info().Msg("child")
	entry := decodeLine(t, &buf)
	assert.Equal(t, "yes", entry["base"])
	assert.Equal(t, "t-1", entry["trace_id"])

	buf.Reset()
	parent.Info().Msg("parent")
	assert.NotContains(t, decodeLine(t, &buf), "trace_id")
}

func TestForActor(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf)}

	parent.ForActor(7, "alice").Info().Msg("acting")
	entry := decodeLine(t, &buf)
	assert.Equal(t, float64(7), entry["user_id"])
	assert.Equal(t, "alice", entry["login"])

	buf.Reset()
	parent.Info().Msg("plain")
	assert.NotContains(t, decodeLine(t, &buf), "user_id")
}

// ─── context ─────────────────────────────────────────────────────────────────

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	attached := &Logger{zerolog.New(&buf).With().Str("scope", "request").Logger()}
	ctx := attached.WithContext(context.Background())

	FromContext(ctx).Info().Msg("from ctx")
	assert.Equal(t, "request", decodeLine(t, &buf)["scope"])
}

func TestFromContext_Empty(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	attached := &Logger{zerolog.New(&buf).With().Str("scope", "request").Logger()}

	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(attached.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")
	assert.Equal(t, "request", decodeLine(t, &buf)["scope"])
}
