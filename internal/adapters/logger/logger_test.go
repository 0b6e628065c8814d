package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weld/internal/adapters/detector"
	"go.trai.ch/weld/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger returns a pretty logger writing to a buffer without ANSI sequences.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Pretty(t *testing.T) {
	parseErr := zerr.With(
		zerr.With(zerr.Wrap(errors.New("unexpected token"), "failed to parse module"), "module", "/src/a.ts"),
		"line", 3,
	)

	tests := []struct {
		name       string
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("bundled 3 modules") },
			goldenName: "info_basic",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn("cache disabled") },
			goldenName: "warn_basic",
		},
		{
			name:       "plain error",
			log:        func(l *logger.Logger) { l.Error(errors.New("boom")) },
			goldenName: "error_plain",
		},
		{
			name:       "metadata on a plain error",
			log:        func(l *logger.Logger) { l.Error(zerr.With(errors.New("permission denied"), "module", "/src/a.ts")) },
			goldenName: "error_plain_metadata",
		},
		{
			name:       "error chain with metadata",
			log:        func(l *logger.Logger) { l.Error(parseErr) },
			goldenName: "error_chain",
		},
		{
			name:       "multiline cause",
			log:        func(l *logger.Logger) { l.Error(zerr.Wrap(errors.New("line one\nline two"), "outer")) },
			goldenName: "error_multiline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_NilErrorIsIgnored(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	lg.Configure(buf, detector.FormatJSON)

	lg.Error(zerr.Wrap(errors.New("disk full"), "failed to write cache entry"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Contains(t, record, "error")
}

func TestLogger_SetOutputKeepsFormat(t *testing.T) {
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	lg.Configure(&bytes.Buffer{}, detector.FormatJSON)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	lg.Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
}

func TestPrettyHandler_Attributes(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	h := logger.NewPrettyHandler(buf, nil)
	l := slog.New(h.WithAttrs([]slog.Attr{slog.String("module", "/src/a.ts")}))
	l.Info("cache hit")
	l.WithGroup("cache").Warn("stale entry", "age", 2)
	l.Debug("filtered")

	g := goldie.New(t)
	g.Assert(t, "handler_attrs", buf.Bytes())
}
