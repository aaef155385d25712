package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// PrettyHandler is a slog.Handler for terminals. Lines look like
//
//	[2006-01-02 15:04:05] INFO  computed mask strategy=span masked=42
//
// Handlers derived through WithAttrs, WithGroup or WithoutColor share the
// parent's writer lock, so lines from different loggers never interleave.
type PrettyHandler struct {
	opts    slog.HandlerOptions
	w       io.Writer
	mu      *sync.Mutex
	group   string
	attrs   []slog.Attr
	noColor bool
}

// NewPrettyHandler creates a new PrettyHandler.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{
		opts: *opts,
		w:    w,
		mu:   &sync.Mutex{},
	}
}

func (h *PrettyHandler) clone() *PrettyHandler {
	c := *h
	return &c
}

// WithoutColor returns a copy of the handler that writes no ANSI escapes.
func (h *PrettyHandler) WithoutColor() *PrettyHandler {
	c := h.clone()
	c.noColor = true
	return c
}

func (h *PrettyHandler) paint(buf []byte, codes ...string) []byte {
	if h.noColor {
		return buf
	}
	for _, code := range codes {
		buf = append(buf, code...)
	}
	return buf
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)

	buf = h.paint(buf, colorGray)
	buf = append(buf, '[')
	buf = r.Time.AppendFormat(buf, time.DateTime)
	buf = append(buf, ']')
	buf = h.paint(buf, colorReset)
	buf = append(buf, ' ')

	buf = h.paint(buf, levelColor(r.Level), colorBold)
	buf = fmt.Appendf(buf, "%-5s", r.Level.String())
	buf = h.paint(buf, colorReset)
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	if len(h.attrs)+r.NumAttrs() > 0 {
		buf = append(buf, ' ')
		buf = h.paint(buf, colorCyan)
		first := true
		emit := func(a slog.Attr) bool {
			if !first {
				buf = append(buf, ' ')
			}
			first = false
			buf = appendAttr(buf, a)
			return true
		}
		for _, a := range h.attrs {
			emit(a)
		}
		r.Attrs(func(a slog.Attr) bool {
			if h.group != "" {
				a.Key = h.group + "." + a.Key
			}
			return emit(a)
		})
		buf = h.paint(buf, colorReset)
	}
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf)
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	c.attrs = h.attrs[:len(h.attrs):len(h.attrs)]
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		c.attrs = append(c.attrs, a)
	}
	return c
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	if h.group != "" {
		c.group = h.group + "." + name
	} else {
		c.group = name
	}
	return c
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorBlue
	default:
		return colorGray
	}
}

func appendAttr(buf []byte, attr slog.Attr) []byte {
	buf = append(buf, attr.Key...)
	buf = append(buf, '=')

	v := attr.Value.Resolve()
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"") {
			buf = fmt.Appendf(buf, "%q", s)
		} else {
			buf = append(buf, s...)
		}
	case slog.KindTime:
		buf = v.Time().AppendFormat(buf, time.RFC3339)
	case slog.KindGroup:
		buf = append(buf, '{')
		for i, a := range v.Group() {
			if i > 0 {
				buf = append(buf, ' ')
			}
			buf = appendAttr(buf, a)
		}
		buf = append(buf, '}')
	default:
		buf = fmt.Append(buf, v.Any())
	}
	return buf
}
