package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook set by writing debug records to a
// logger. The CLI registers it under --verbose.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks logging to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

// Register installs h for every hook set.
func (h *LogHooks) Register() {
	SetDumpHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
	SetScriptHooks(h)
}

func (h *LogHooks) OnBuildStart(_ context.Context, source string) {
	h.logger.Debug("build start", "source", source)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, source string, widgets int, d time.Duration, err error) {
	h.logger.Debug("build done", "source", source, "widgets", widgets, "took", d, "err", err)
}

func (h *LogHooks) OnDumpStart(_ context.Context, source string) {
	h.logger.Debug("dump start", "source", source)
}

func (h *LogHooks) OnDumpComplete(_ context.Context, source string, widgets int, d time.Duration, err error) {
	h.logger.Debug("dump done", "source", source, "widgets", widgets, "took", d, "err", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "took", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "took", d)
}

func (h *LogHooks) OnScriptRun(_ context.Context, id string, d time.Duration, err error) {
	h.logger.Debug("script run", "id", id, "took", d, "err", err)
}
