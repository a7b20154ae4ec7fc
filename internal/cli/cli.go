// Package cli implements the weave command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/weave/pkg/buildinfo"
	"github.com/matzehuels/weave/pkg/cache"
	"github.com/matzehuels/weave/pkg/config"
	"github.com/matzehuels/weave/pkg/observability"
	"github.com/matzehuels/weave/pkg/pipeline"
	"github.com/matzehuels/weave/pkg/render/sink"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "weave"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	preset     string
	seed       uint64
	lines      int
	colorMode  string
	noStacking bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level, engine lifecycle
// events are logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.SetLifecycleHooks(&lifecycleLogger{logger: c.Logger})
		observability.SetCacheHooks(&cacheLogger{logger: c.Logger})
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Weave draws animated ribbons that cross over and under each other",
		Long:         `Weave generates noisy lines from one edge of the canvas to the other, stacks them in depth where they cross, and animates them drawing in and fading out. Frames can be written to files, previewed in the terminal, or served over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "TOML config file (may name a preset)")
	flags.StringVarP(&c.preset, "preset", "p", "", "preset: "+strings.Join(config.PresetNames(), ", "))
	flags.Uint64VarP(&c.seed, "seed", "s", 0, "random seed (0 picks one)")
	flags.IntVar(&c.lines, "lines", 0, "override the number of lines")
	flags.StringVar(&c.colorMode, "color-mode", "", "override the color mode: gradient, palette")
	flags.BoolVar(&c.noStacking, "no-stacking", false, "keep every point at base depth")
	root.MarkFlagsMutuallyExclusive("config", "preset")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// loadConfig resolves the engine configuration from --config or --preset and
// applies flag overrides. Validation warnings are logged.
func (c *CLI) loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	switch {
	case c.configPath != "":
		cfg, err = config.Load(c.configPath)
	case c.preset != "":
		cfg, err = config.FromPreset(c.preset)
	default:
		cfg = config.Default()
	}
	if err != nil {
		return config.Config{}, err
	}

	if c.lines != 0 {
		cfg.LinesCount = c.lines
	}
	if c.colorMode != "" {
		cfg.ColorMode = c.colorMode
	}
	if c.noStacking {
		cfg.Stacking = false
	}

	warnings, err := cfg.Validate()
	if err != nil {
		return config.Config{}, err
	}
	for _, w := range warnings {
		c.Logger.Warn(w)
	}
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	fc, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache.Instrument(fc, "frame"), nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/weave/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{sink.FormatSVG}
	}
	return strings.Split(s, ",")
}
