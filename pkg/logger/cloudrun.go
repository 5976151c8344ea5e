package logger

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// CloudRunHandler implements slog.Handler, writing one Cloud Logging
// structured entry per line.
type CloudRunHandler struct {
	level  slog.Level
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	prefix string
}

// NewCloudRunHandler writes to stdout, which Cloud Run collects for all severities.
func NewCloudRunHandler(level slog.Level) slog.Handler {
	return NewCloudRunHandlerTo(os.Stdout, level)
}

func NewCloudRunHandlerTo(w io.Writer, level slog.Level) *CloudRunHandler {
	return &CloudRunHandler{level: level, out: w, mu: &sync.Mutex{}}
}

func (h *CloudRunHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level
}

func (h *CloudRunHandler) Handle(_ context.Context, r slog.Record) error {
	event := map[string]any{
		"severity": mapSeverity(r.Level),
		"message":  r.Message,
		"time":     r.Time.Format(time.RFC3339Nano),
	}

	if len(h.attrs) > 0 || r.NumAttrs() > 0 {
		data := make(map[string]any, len(h.attrs)+r.NumAttrs())
		for _, a := range h.attrs {
			addAttr(data, "", a)
		}
		r.Attrs(func(a slog.Attr) bool {
			addAttr(data, h.prefix, a)
			return true
		})
		event["data"] = data
	}

	b, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.out.Write(append(b, '\n'))
	return err
}

func (h *CloudRunHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := *h
	newH.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	newH.attrs = append(newH.attrs, h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		newH.attrs = append(newH.attrs, a)
	}
	return &newH
}

// WithGroup flattens groups into dotted keys; Cloud Logging has no nesting
// convention for jsonPayload.data.
func (h *CloudRunHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.prefix = h.prefix + name + "."
	return &newH
}

// ---- Helpers ----

func addAttr(data map[string]any, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			addAttr(data, prefix+a.Key+".", ga)
		}
		return
	}
	val := v.Any()
	if err, ok := val.(error); ok {
		val = err.Error()
	}
	data[prefix+a.Key] = val
}

func mapSeverity(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
