// Package pipeline replays a weave animation and encodes its frames.
//
// This package holds the timeline logic shared by the render command and the
// session server: build a manager from a config and seed, advance it over a
// fixed time step and encode the frames that were asked for. Encoded frames
// are cached per format.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Config:   config.Default(),
//	    Seed:     678975,
//	    FPS:      30,
//	    Duration: 10,
//	    Formats:  []string{"svg"},
//	})
//	svg := result.Frames[0].Artifacts["svg"]
//
// Long renders should use [Runner.Stream] so frames are handed over one at a
// time instead of being collected.
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/weave/pkg/cache"
	"github.com/matzehuels/weave/pkg/config"
	"github.com/matzehuels/weave/pkg/errors"
	"github.com/matzehuels/weave/pkg/render/sink"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultFPS is the timeline step of a render.
	DefaultFPS = 30.0

	// DefaultDuration is the length of a render in seconds.
	DefaultDuration = 10.0

	// DefaultWidth and DefaultHeight are the canvas size in CSS pixels.
	DefaultWidth  = 1024
	DefaultHeight = 1024

	// DefaultTTL is how long encoded frames stay cached.
	DefaultTTL = 7 * 24 * time.Hour

	// MaxFrames bounds a single render.
	MaxFrames = 100_000
)

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for one replay.
type Options struct {
	Config config.Config `json:"config"`
	Seed   uint64        `json:"seed"`

	// Canvas
	Width      int     `json:"width,omitempty"`
	Height     int     `json:"height,omitempty"`
	PixelRatio float64 `json:"pixel_ratio,omitempty"`

	// Timeline
	FPS      float64 `json:"fps,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	// At renders only the frame at this time. The animation is still
	// replayed from zero at FPS to get there.
	At *float64 `json:"at,omitempty"`

	// Output
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"` // PNG scale factor
	Refresh bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Config.LinesCount == 0 {
		o.Config = config.Default()
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.PixelRatio == 0 {
		o.PixelRatio = 1
	}
	if o.FPS == 0 {
		o.FPS = DefaultFPS
	}
	if o.Duration == 0 && o.At == nil {
		o.Duration = DefaultDuration
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{sink.FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	switch {
	case o.Width < 0 || o.Height < 0 || o.PixelRatio < 0 || o.Scale < 0:
		return errors.New(errors.ErrCodeInvalidInput, "canvas size, pixel ratio and scale must be positive")
	case o.FPS < 0 || math.IsInf(o.FPS, 0) || math.IsNaN(o.FPS):
		return errors.New(errors.ErrCodeInvalidInput, "fps must be positive, got %v", o.FPS)
	}
	if o.At != nil {
		if err := errors.ValidateTime(*o.At); err != nil {
			return err
		}
	} else if err := errors.ValidateTime(o.Duration); err != nil {
		return err
	}
	if n := o.frameCount(); n > MaxFrames {
		return errors.New(errors.ErrCodeInvalidInput, "%d frames requested, limit is %d", n, MaxFrames)
	}
	if err := errors.ValidateFormats(o.Formats, sink.Formats...); err != nil {
		return err
	}
	if _, err := o.Config.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

func (o *Options) frameCount() int {
	end := o.Duration
	if o.At != nil {
		end = *o.At
	}
	return int(math.Ceil(end*o.FPS)) + 1
}

// Timeline returns the update times and whether each one is emitted. With
// At set every step up to At is replayed and only the last is emitted.
func (o *Options) Timeline() (times []float64, emit []bool) {
	if o.At != nil {
		at := *o.At
		for i := 0; float64(i)/o.FPS < at; i++ {
			times = append(times, float64(i)/o.FPS)
			emit = append(emit, false)
		}
		return append(times, at), append(emit, true)
	}
	n := int(math.Round(o.Duration * o.FPS))
	for i := 0; i < n; i++ {
		times = append(times, float64(i)/o.FPS)
		emit = append(emit, true)
	}
	return times, emit
}

// FrameKeyOpts returns cache key options for one encoded frame.
func (o *Options) FrameKeyOpts(configHash string, seed uint64, index int, t float64, format string) cache.FrameKeyOpts {
	opts := cache.FrameKeyOpts{
		ConfigHash: configHash,
		Seed:       seed,
		Width:      int(float64(o.Width) * o.PixelRatio),
		Height:     int(float64(o.Height) * o.PixelRatio),
		FPS:        o.FPS,
		Index:      index,
		Time:       t,
		Format:     format,
	}
	if format == sink.FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// =============================================================================
// Results
// =============================================================================

// FrameResult is one emitted frame.
type FrameResult struct {
	Index     int
	Time      float64
	Strokes   int
	Artifacts map[string][]byte
	CacheHits int
}

// Result describes a finished replay.
type Result struct {
	// Seed is the seed actually used. It differs from Options.Seed when
	// that was zero.
	Seed uint64

	// ConfigHash identifies the engine configuration in cache keys.
	ConfigHash string

	// Frames holds the emitted frames. Stream leaves it empty.
	Frames []FrameResult

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains replay statistics.
type Stats struct {
	Updates    int
	Emitted    int
	PeakLines  int
	UpdateTime time.Duration
	EncodeTime time.Duration
}

// CacheInfo counts encoded frame lookups.
type CacheInfo struct {
	Hits   int
	Misses int
}

// AllHit reports whether every artifact came from the cache.
func (c CacheInfo) AllHit() bool { return c.Misses == 0 && c.Hits > 0 }
