package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 300 frames (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Hook Loggers
// =============================================================================

// lifecycleLogger logs line lifecycle events at debug level.
type lifecycleLogger struct {
	logger *log.Logger
}

func (l *lifecycleLogger) OnLineSpawned(id, slot int, vertical bool, t float64) {
	l.logger.Debug("line spawned", "id", id, "slot", slot, "vertical", vertical, "t", t)
}

func (l *lifecycleLogger) OnSlotReused(slot int, t float64) {
	l.logger.Debug("slot reused", "slot", slot, "t", t)
}

func (l *lifecycleLogger) OnLineFading(id int, t float64) {
	l.logger.Debug("line fading", "id", id, "t", t)
}

func (l *lifecycleLogger) OnLineRemoved(id int, t float64) {
	l.logger.Debug("line removed", "id", id, "t", t)
}

// OnFrame is silent; per-frame logging would drown everything else.
func (l *lifecycleLogger) OnFrame(float64, int, time.Duration) {}

// cacheLogger logs frame cache traffic at debug level.
type cacheLogger struct {
	logger *log.Logger
}

func (l *cacheLogger) OnCacheHit(_ context.Context, keyType string) {
	l.logger.Debug("cache hit", "type", keyType)
}

func (l *cacheLogger) OnCacheMiss(_ context.Context, keyType string) {
	l.logger.Debug("cache miss", "type", keyType)
}

func (l *cacheLogger) OnCacheSet(_ context.Context, keyType string, size int) {
	l.logger.Debug("cache set", "type", keyType, "bytes", size)
}
