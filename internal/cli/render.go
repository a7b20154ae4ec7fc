package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weave/pkg/pipeline"
	"github.com/matzehuels/weave/pkg/render/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string  // output directory
	formats    string  // comma-separated output formats
	fps        float64 // timeline rate
	duration   float64 // seconds to replay
	at         float64 // single frame time, used when the flag is set
	width      int     // canvas width in CSS pixels
	height     int     // canvas height in CSS pixels
	pixelRatio float64 // device pixel ratio
	scale      float64 // PNG scale factor
	prefix     string  // file name prefix
	noCache    bool    // bypass the frame cache
	refresh    bool    // re-encode and overwrite cached frames
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		output:     "frames",
		fps:        pipeline.DefaultFPS,
		duration:   pipeline.DefaultDuration,
		width:      pipeline.DefaultWidth,
		height:     pipeline.DefaultHeight,
		pixelRatio: 1,
		scale:      1,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Replay the animation and write frames to files",
		Long: `Replay the animation from t=0 at --fps and write every frame up to
--duration seconds, or only the frame at --at, as numbered files.`,
		Example: `  weave render --duration 5 --format svg,png
  weave render --preset dense --seed 678975 --at 12.5 -o out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var at *float64
			if cmd.Flags().Changed("at") {
				at = &opts.at
			}
			return c.runRender(cmd.Context(), &opts, at)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", opts.output, "output directory")
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	f.Float64Var(&opts.fps, "fps", opts.fps, "frames per second")
	f.Float64VarP(&opts.duration, "duration", "d", opts.duration, "seconds to render")
	f.Float64Var(&opts.at, "at", 0, "render only the frame at this time (seconds)")
	f.IntVar(&opts.width, "width", opts.width, "canvas width in pixels")
	f.IntVar(&opts.height, "height", opts.height, "canvas height in pixels")
	f.Float64Var(&opts.pixelRatio, "pixel-ratio", opts.pixelRatio, "device pixel ratio")
	f.Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	f.StringVar(&opts.prefix, "prefix", "", "file name prefix (default \"frame\")")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the frame cache")
	f.BoolVar(&opts.refresh, "refresh", false, "re-encode frames even when cached")
	cmd.MarkFlagsMutuallyExclusive("at", "duration")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts *renderOpts, at *float64) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	popts := pipeline.Options{
		Config:     cfg,
		Seed:       c.seed,
		Width:      opts.width,
		Height:     opts.height,
		PixelRatio: opts.pixelRatio,
		FPS:        opts.fps,
		Duration:   opts.duration,
		At:         at,
		Formats:    parseFormats(opts.formats),
		Scale:      opts.scale,
		Refresh:    opts.refresh,
		Logger:     c.Logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	out, err := sink.NewDirWriter(opts.output, popts.Formats...)
	if err != nil {
		return err
	}
	out.Prefix = opts.prefix

	prog := newProgress(c.Logger)
	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s", cfg.Preset))
	if c.Logger.GetLevel() > LogDebug {
		spin.Start()
	}

	n := 0
	res, err := runner.Stream(ctx, popts, func(fr pipeline.FrameResult) error {
		for _, format := range popts.Formats {
			if err := out.Write(n, format, fr.Artifacts[format]); err != nil {
				return err
			}
		}
		n++
		spin.SetMessage(fmt.Sprintf("Rendering %s · frame %d at %.2fs", cfg.Preset, n, fr.Time))
		return nil
	})
	spin.Stop()
	if err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Rendered %d frames", res.Stats.Emitted))
	printSuccess("Wrote %d files to %s", len(out.Paths()), opts.output)
	printRenderStats(res)
	if paths := out.Paths(); len(paths) <= 3 {
		for _, p := range paths {
			printFile(p)
		}
	}
	if at == nil {
		printNextStep("Preview it live", fmt.Sprintf("weave preview --seed %d", res.Seed))
	}
	return nil
}
