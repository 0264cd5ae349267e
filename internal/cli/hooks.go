package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isomer/pkg/observability"
)

// logHooks writes pipeline and cache events to the debug log.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
)

func (h *logHooks) OnGroupStart(_ context.Context, solid string, generators int) {
	h.logger.Debug("closing group", "solid", solid, "generators", generators)
}

func (h *logHooks) OnGroupComplete(_ context.Context, solid string, order int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("group failed", "solid", solid, "err", err)
		return
	}
	h.logger.Debug("group closed", "solid", solid, "order", order, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnEnumerateStart(_ context.Context, solid string, zeros int) {
	h.logger.Debug("enumerating", "solid", solid, "zeros", zeros)
}

func (h *logHooks) OnEnumerateComplete(_ context.Context, solid string, zeros, orbits int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("enumeration failed", "solid", solid, "zeros", zeros, "err", err)
		return
	}
	h.logger.Debug("enumerated", "solid", solid, "zeros", zeros, "orbits", orbits, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *logHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}
