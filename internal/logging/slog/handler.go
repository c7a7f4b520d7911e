package slog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Handler formats logs like the default slog output, followed by any attributes:
// "YYYY/MM/DD HH:MM:SS LEVEL Message key=value"
type Handler struct {
	mu     *sync.Mutex
	out    io.Writer
	opts   *slog.HandlerOptions
	attrs  []slog.Attr
	prefix string // group prefix applied to attribute keys
}

func NewHandler(out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	return &Handler{mu: &sync.Mutex{}, out: out, opts: opts}
}

// Enabled reports whether level is at or above the configured level.
// Without a configured level, only Info and above are enabled.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	if h.opts != nil && h.opts.Level != nil {
		return level >= h.opts.Level.Level()
	}

	return level >= slog.LevelInfo
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Time.Format("2006/01/02 15:04:05"))
	sb.WriteByte(' ')
	sb.WriteString(strings.ToUpper(r.Level.String()))
	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	for _, attr := range h.attrs {
		writeAttr(&sb, "", attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(&sb, h.prefix, attr)

		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := io.WriteString(h.out, sb.String()); err != nil {
		return fmt.Errorf("unable to write log record: %w", err)
	}

	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	copyLogger := *h
	copyLogger.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	copyLogger.attrs = append(copyLogger.attrs, h.attrs...)
	for _, attr := range attrs {
		copyLogger.attrs = append(copyLogger.attrs, slog.Attr{Key: h.prefix + attr.Key, Value: attr.Value})
	}

	return &copyLogger
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	copyLogger := *h
	copyLogger.prefix = h.prefix + name + "."

	return &copyLogger
}

func writeAttr(sb *strings.Builder, prefix string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}

	value := attr.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix += attr.Key + "."
		}
		for _, groupAttr := range value.Group() {
			writeAttr(sb, groupPrefix, groupAttr)
		}

		return
	}

	fmt.Fprintf(sb, " %s%s=%v", prefix, attr.Key, value.Any())
}
