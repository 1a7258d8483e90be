package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level events to
// a logger. Responses are logged at info level so a server has an access log.
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

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)

func (h *LogHooks) done(msg string, err error, kv ...any) {
	if err != nil {
		h.Logger.Warn(msg, append(kv, "error", err)...)
		return
	}
	h.Logger.Debug(msg, kv...)
}

func (h *LogHooks) OnDecodeStart(context.Context) {}

func (h *LogHooks) OnDecodeComplete(_ context.Context, format string, required int, d time.Duration, err error) {
	h.done("decode", err, "format", format, "required", required, "duration", d)
}

func (h *LogHooks) OnSelectStart(_ context.Context, candidates int) {
	h.Logger.Debug("select", "candidates", candidates)
}

func (h *LogHooks) OnCandidateScored(_ context.Context, candidate string, shots int, accuracy float64) {
	h.Logger.Debug("scored", "candidate", candidate, "shots", shots, "accuracy", accuracy)
}

func (h *LogHooks) OnSelectComplete(_ context.Context, winner string, d time.Duration, err error) {
	h.done("selected", err, "winner", winner, "duration", d)
}

func (h *LogHooks) OnOrderComplete(_ context.Context, shots int, d time.Duration, err error) {
	h.done("ordered", err, "shots", shots, "duration", d)
}

func (h *LogHooks) OnRenderStart(context.Context, []string) {}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("rendered", err, "formats", formats, "duration", d)
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

func (h *LogHooks) OnRequest(context.Context, string, string) {}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Info(method+" "+path, "status", status, "duration", d)
}
