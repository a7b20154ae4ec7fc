package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/weave/pkg/cache"
	"github.com/matzehuels/weave/pkg/observability"
	"github.com/matzehuels/weave/pkg/render/sink"
	"github.com/matzehuels/weave/pkg/rng"
	"github.com/matzehuels/weave/pkg/scene"
	"github.com/matzehuels/weave/pkg/weave"
)

// Runner encapsulates replay execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute replays the timeline and collects every emitted frame.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	var frames []FrameResult
	res, err := r.Stream(ctx, opts, func(f FrameResult) error {
		frames = append(frames, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Frames = frames
	return res, nil
}

// Stream replays the timeline and calls fn for each emitted frame in order.
// An error from fn stops the replay.
func (r *Runner) Stream(ctx context.Context, opts Options, fn func(FrameResult) error) (res *Result, err error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rng.RandomSeed()
	}
	configHash, err := cache.HashJSON(opts.Config)
	if err != nil {
		return nil, err
	}
	res = &Result{Seed: seed, ConfigHash: configHash}

	m, err := weave.New(opts.Config, rng.New(seed), weave.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}
	h := scene.New(m, nil)
	defer func() {
		if cerr := h.OnTeardown(); err == nil {
			err = cerr
		}
	}()
	h.OnResize(opts.PixelRatio, opts.Width, opts.Height)

	times, emit := opts.Timeline()
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.Formats, len(times))
	began := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Formats, res.Stats.Emitted, time.Since(began), err)
	}()

	for i, t := range times {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		start := time.Now()
		frame, err := h.OnFrame(t)
		if err != nil {
			return res, err
		}
		res.Stats.UpdateTime += time.Since(start)
		res.Stats.Updates++
		res.Stats.PeakLines = max(res.Stats.PeakLines, len(m.Lines()))
		if !emit[i] {
			continue
		}

		fr, err := r.encode(ctx, &opts, configHash, seed, i, frame, &res.CacheInfo)
		if err != nil {
			return res, fmt.Errorf("frame %d: %w", i, err)
		}
		res.Stats.EncodeTime += time.Since(start)
		res.Stats.Emitted++
		if err := fn(fr); err != nil {
			return res, err
		}
	}

	r.Logger.Info("rendered frames",
		"seed", seed,
		"frames", res.Stats.Emitted,
		"cache_hits", res.CacheInfo.Hits,
		"duration", time.Since(began))
	return res, nil
}

// encode produces every requested format for one frame, reading and filling
// the cache.
func (r *Runner) encode(ctx context.Context, opts *Options, configHash string, seed uint64, index int, frame weave.Frame, info *CacheInfo) (FrameResult, error) {
	fr := FrameResult{
		Index:     index,
		Time:      frame.Time,
		Strokes:   len(frame.Strokes),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}
	for _, format := range opts.Formats {
		key := r.Keyer.FrameKey(opts.FrameKeyOpts(configHash, seed, index, frame.Time, format))

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				fr.Artifacts[format] = data
				fr.CacheHits++
				info.Hits++
				continue
			}
		}
		info.Misses++

		data, err := Encode(frame, format, opts.Scale)
		if err != nil {
			return fr, err
		}
		fr.Artifacts[format] = data
		if err := r.Cache.Set(ctx, key, data, DefaultTTL); err != nil {
			r.Logger.Warn("failed to cache frame", "format", format, "error", err)
		}
	}
	return fr, nil
}

// Encode renders one frame in format. scale applies to PNG only.
func Encode(f weave.Frame, format string, scale float64) ([]byte, error) {
	if format == sink.FormatPNG {
		return sink.RenderPNG(f, sink.WithScale(scale))
	}
	return sink.Render(f, format)
}
