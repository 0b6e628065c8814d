// Package logger implements ports.Logger on top of log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/weld/internal/adapters/detector"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/weld/internal/ui/style"
)

var _ ports.Logger = (*Logger)(nil)

// messager is implemented by zerr errors.
type messager interface {
	Message() string
}

// metadataer is implemented by zerr errors.
type metadataer interface {
	Metadata() map[string]any
}

// Logger writes pretty or JSON records to a configurable writer.
type Logger struct {
	mu     sync.RWMutex
	slog   *slog.Logger
	out    io.Writer
	format detector.LogFormat
}

// New creates a Logger writing pretty records to standard error.
func New() ports.Logger {
	l := &Logger{}
	l.Configure(os.Stderr, detector.FormatPretty)
	return l
}

// Configure replaces the destination and the record format.
// A nil w means standard error. FormatAuto is treated as FormatPretty.
func (l *Logger) Configure(w io.Writer, format detector.LogFormat) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.out = w
	l.format = format

	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if format == detector.FormatJSON {
		l.slog = slog.New(slog.NewJSONHandler(w, opts))
		return
	}
	l.slog = slog.New(NewPrettyHandler(w, opts))
}

// SetOutput changes the destination and keeps the format.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.RLock()
	format := l.format
	l.mu.RUnlock()
	l.Configure(w, format)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.slog.Info(msg)
}

// Warn logs a warning.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.slog.Warn(msg)
}

// Error logs err. Pretty output lists the zerr chain with its metadata,
// one cause per line.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.format == detector.FormatJSON {
		l.slog.Error("operation failed", "error", err)
		return
	}

	l.slog.Error(renderChain(collectChain(err)))
}

// link is one level of an error chain.
type link struct {
	message  string
	metadata string
}

// collectChain walks zerr causes. A foreign error ends the walk with its full text.
// Metadata of a link without a message is carried over to the next link.
func collectChain(err error) []link {
	var (
		chain   []link
		carried string
	)
	for current := err; current != nil; current = errors.Unwrap(current) {
		var meta string
		if md, ok := current.(metadataer); ok {
			meta = formatMetadata(md.Metadata())
		}
		if carried != "" {
			meta = strings.TrimSpace(carried + " " + meta)
			carried = ""
		}

		m, ok := current.(messager)
		if !ok {
			chain = append(chain, link{message: current.Error(), metadata: meta})
			break
		}
		if m.Message() == "" {
			carried = meta
			continue
		}
		chain = append(chain, link{message: m.Message(), metadata: meta})
	}
	return chain
}

// formatMetadata renders metadata as "(k=v, ...)" with sorted keys.
func formatMetadata(md map[string]any) string {
	if len(md) == 0 {
		return ""
	}

	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, md[k]))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func renderChain(chain []link) string {
	var b strings.Builder
	for i, l := range chain {
		head, indent := "    "+style.Arrow+" ", "      "
		if i == 0 {
			head, indent = "Error: ", "       "
		}
		if i == 1 {
			b.WriteString("\n\n  Caused by:")
		}
		if i > 0 {
			b.WriteString("\n")
		}

		lines := strings.Split(l.message, "\n")
		if l.metadata != "" {
			lines[0] += " " + l.metadata
		}
		b.WriteString(head + lines[0])
		for _, line := range lines[1:] {
			b.WriteString("\n" + indent + line)
		}
	}
	return b.String()
}
