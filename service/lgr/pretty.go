package lgr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/fatih/color"
)

// prettyHandler is a human-oriented handler for dev runs: timestamp,
// colorized level, message, then the attrs as compact JSON.
type prettyHandler struct {
	opts  *slog.HandlerOptions
	out   io.Writer
	mutex *sync.Mutex
	attrs []slog.Attr
}

func newPrettyHandler(out io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts:  opts,
		out:   out,
		mutex: &sync.Mutex{},
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts != nil && h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]interface{}, r.NumAttrs()+len(h.attrs))
	for _, attr := range h.attrs {
		fields[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(attr slog.Attr) bool {
		if h.opts != nil && h.opts.ReplaceAttr != nil {
			attr = h.opts.ReplaceAttr(nil, attr)
		}
		fields[attr.Key] = attr.Value.Any()
		return true
	})

	var payload []byte
	if len(fields) > 0 {
		var err error
		payload, err = json.Marshal(fields)
		if err != nil {
			return err
		}
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	_, err := fmt.Fprintln(h.out,
		r.Time.Format("15:04:05.000"),
		colorizeLevel(r.Level),
		color.CyanString(r.Message),
		string(payload),
	)
	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *prettyHandler) WithGroup(_ string) slog.Handler {
	// Groups are flattened in dev output
	return h
}

func colorizeLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return color.RedString(level.String())
	case level >= slog.LevelWarn:
		return color.YellowString(level.String())
	case level >= slog.LevelInfo:
		return color.GreenString(level.String())
	default:
		return color.MagentaString(level.String())
	}
}
