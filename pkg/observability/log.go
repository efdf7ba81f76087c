package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event at debug level on a logger. It implements
// PlacementHooks, CacheHooks and HTTPHooks.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l, or to log.Default() if l is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnDepths(_ context.Context, columns, widgets int, cached bool, d time.Duration) {
	h.Logger.Debug("column depths", "columns", columns, "widgets", widgets, "cached", cached, "duration", d)
}

func (h *LogHooks) OnPlace(_ context.Context, columns, x, y int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("placement failed", "columns", columns, "err", err)
		return
	}
	h.Logger.Debug("placed widget", "x", x, "y", y, "duration", d)
}

func (h *LogHooks) OnPersist(_ context.Context, org, id string, d time.Duration, err error) {
	h.Logger.Debug("persisted dashboard", "org", org, "dashboard", id, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Info("request", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ PlacementHooks = (*LogHooks)(nil)
	_ CacheHooks     = (*LogHooks)(nil)
	_ HTTPHooks      = (*LogHooks)(nil)
)
