// Package config holds every tunable of the weave engine.
//
// The sketch this engine grew out of existed as a handful of near-duplicate
// variants that differed only in constants. Here those variants are
// [Presets] over one [Config]. A config is built from a preset and then
// optionally overlaid with a TOML file:
//
//	cfg, err := config.Load("weave.toml")   // preset named in the file, or the default
//	warnings, err := cfg.Validate()
//	for _, w := range warnings {
//	    logger.Warn(w)
//	}
//
// TOML keys use snake_case and mirror the struct fields:
//
//	preset = "dense"
//	lines_count = 20
//	line_width = 0.015
//	spawn_bounds = [0.3, 0.7]
package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/weave/pkg/errors"
)

// Index kinds for overlap queries.
const (
	IndexGrid   = "grid"
	IndexLinear = "linear"
)

// Color modes.
const (
	ColorGradient = "gradient" // slot oscillator between two fixed colors
	ColorPalette  = "palette"  // each line keeps its palette color
)

// DefaultPreset is used when neither flags nor file name a preset.
const DefaultPreset = "high-lines"

// Config is the full set of engine parameters.
type Config struct {
	Preset string `toml:"preset" json:"preset"`

	// Lines
	LinesCount         int        `toml:"lines_count" json:"lines_count"`
	LineWidth          float64    `toml:"line_width" json:"line_width"`
	DisappearingBuffer int        `toml:"disappearing_buffer" json:"disappearing_buffer"`
	DrawDuration       float64    `toml:"draw_duration" json:"draw_duration"` // seconds
	SpawnBounds        [2]float64 `toml:"spawn_bounds" json:"spawn_bounds"`

	// Path sampling
	Segments       int     `toml:"segments" json:"segments"`
	NoiseFrequency float64 `toml:"noise_frequency" json:"noise_frequency"`
	NoiseConstant  float64 `toml:"noise_constant" json:"noise_constant"`
	SymlogConstant float64 `toml:"symlog_constant" json:"symlog_constant"`
	NoiselessZone  float64 `toml:"noiseless_zone" json:"noiseless_zone"`
	LeadIn         int     `toml:"lead_in" json:"lead_in"`
	LeadOut        int     `toml:"lead_out" json:"lead_out"`

	// Stacking
	Stacking        bool    `toml:"stacking" json:"stacking"`
	CollisionFactor float64 `toml:"collision_factor" json:"collision_factor"`
	Index           string  `toml:"index" json:"index"`

	// Viewport and look
	Padding    float64 `toml:"padding" json:"padding"`
	Undulation float64 `toml:"undulation" json:"undulation"`
	ColorMode  string  `toml:"color_mode" json:"color_mode"`
	Background string  `toml:"background" json:"background"`
}

// Presets are the named variants. high-lines is the default look.
var Presets = map[string]Config{
	"high-lines": {
		LinesCount:         14,
		LineWidth:          0.02,
		DisappearingBuffer: 3,
		DrawDuration:       3,
		SpawnBounds:        [2]float64{0.35, 0.65},
		Segments:           150,
		NoiseFrequency:     2.5,
		NoiseConstant:      0.25,
		SymlogConstant:     0.1,
		LeadIn:             1,
		LeadOut:            10,
		Stacking:           true,
		CollisionFactor:    1.5,
		Index:              IndexGrid,
		Padding:            0.05,
		Undulation:         0.01,
		ColorMode:          ColorGradient,
		Background:         "#f2f2f2",
	},
	"plain": {
		LinesCount:         10,
		LineWidth:          0.02,
		DisappearingBuffer: 3,
		DrawDuration:       3,
		SpawnBounds:        [2]float64{0.35, 0.65},
		Segments:           100,
		NoiseFrequency:     2.5,
		NoiseConstant:      0.25,
		SymlogConstant:     0.1,
		LeadIn:             1,
		LeadOut:            10,
		Stacking:           false,
		CollisionFactor:    1.5,
		Index:              IndexLinear,
		Padding:            0.05,
		Undulation:         0,
		ColorMode:          ColorPalette,
		Background:         "#d9d9d9",
	},
	"dense": {
		LinesCount:         24,
		LineWidth:          0.01,
		DisappearingBuffer: 4,
		DrawDuration:       2,
		SpawnBounds:        [2]float64{0.25, 0.75},
		Segments:           200,
		NoiseFrequency:     3,
		NoiseConstant:      0.2,
		SymlogConstant:     0.1,
		LeadIn:             1,
		LeadOut:            10,
		Stacking:           true,
		CollisionFactor:    1.5,
		Index:              IndexGrid,
		Padding:            0.05,
		Undulation:         0.01,
		ColorMode:          ColorGradient,
		Background:         "#f2f2f2",
	},
	"calm": {
		LinesCount:         8,
		LineWidth:          0.03,
		DisappearingBuffer: 2,
		DrawDuration:       5,
		SpawnBounds:        [2]float64{0.35, 0.65},
		Segments:           120,
		NoiseFrequency:     1.2,
		NoiseConstant:      0.3,
		SymlogConstant:     0.1,
		NoiselessZone:      0.05,
		LeadIn:             1,
		LeadOut:            10,
		Stacking:           true,
		CollisionFactor:    1.5,
		Index:              IndexGrid,
		Padding:            0.05,
		Undulation:         0,
		ColorMode:          ColorPalette,
		Background:         "#fafafa",
	},
}

// PresetNames returns preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for n := range Presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Default returns the default preset.
func Default() Config {
	cfg, _ := FromPreset(DefaultPreset)
	return cfg
}

// FromPreset returns a copy of the named preset.
func FromPreset(name string) (Config, error) {
	p, ok := Presets[name]
	if !ok {
		return Config{}, errors.New(errors.ErrCodeInvalidPreset, "unknown preset %q (available: %v)", name, PresetNames())
	}
	p.Preset = name
	return p, nil
}

// Load builds a config from a TOML file. The file may name a preset; keys it
// sets override that preset. An empty path returns the default preset.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse is Load for in-memory TOML.
func Parse(data []byte) (Config, error) {
	var head struct {
		Preset string `toml:"preset"`
	}
	if _, err := toml.Decode(string(data), &head); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if head.Preset == "" {
		head.Preset = DefaultPreset
	}

	cfg, err := FromPreset(head.Preset)
	if err != nil {
		return Config{}, err
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %v", undecoded)
	}
	return cfg, nil
}

// SlotsPerSide is the number of spawn slots per orientation.
func (c Config) SlotsPerSide() int { return c.LinesCount / 2 }

// SlotSize is the spacing between neighbouring spawn slots.
func (c Config) SlotSize() float64 {
	if c.SlotsPerSide() == 0 {
		return 0
	}
	return (c.SpawnBounds[1] - c.SpawnBounds[0]) / float64(c.SlotsPerSide())
}

// Validate rejects configurations the engine cannot run and returns
// warnings for ones that run with degraded output.
func (c Config) Validate() (warnings []string, err error) {
	switch {
	case c.LinesCount < 2:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "lines_count must be at least 2, got %d", c.LinesCount)
	case c.Segments < 1:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "segments must be positive, got %d", c.Segments)
	case c.LineWidth <= 0:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "line_width must be positive, got %v", c.LineWidth)
	case c.DrawDuration <= 0:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "draw_duration must be positive, got %v", c.DrawDuration)
	case c.SpawnBounds[0] < 0 || c.SpawnBounds[1] > 1 || c.SpawnBounds[0] >= c.SpawnBounds[1]:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "spawn_bounds must be increasing within [0,1], got %v", c.SpawnBounds)
	case c.NoiselessZone < 0 || c.NoiselessZone >= 0.5:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "noiseless_zone must be in [0,0.5), got %v", c.NoiselessZone)
	case c.LeadIn < 0 || c.LeadOut < 0:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "lead_in and lead_out must not be negative")
	case c.DisappearingBuffer < 1 || c.DisappearingBuffer >= c.LinesCount:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "disappearing_buffer must be in [1,%d), got %d", c.LinesCount, c.DisappearingBuffer)
	case c.Padding < 0:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "padding must not be negative, got %v", c.Padding)
	}
	if err := errors.ValidateChoice(errors.ErrCodeInvalidIndex, "index", c.Index, IndexGrid, IndexLinear); err != nil {
		return nil, err
	}
	if err := errors.ValidateChoice(errors.ErrCodeInvalidColorMode, "color_mode", c.ColorMode, ColorGradient, ColorPalette); err != nil {
		return nil, err
	}

	if c.SlotSize() < c.LineWidth {
		warnings = append(warnings, fmt.Sprintf(
			"slot size %.4f is smaller than line width %.4f, lines could overlap at spawn; decrease line_width or lines_count, or widen spawn_bounds",
			c.SlotSize(), c.LineWidth))
	}
	if c.LinesCount%2 == 1 {
		warnings = append(warnings, fmt.Sprintf("lines_count %d is odd; one slot per side is shared", c.LinesCount))
	}
	return warnings, nil
}

// Summary lists the parameters that distinguish presets, in display order.
func (c Config) Summary() [][2]string {
	rows := [][2]string{
		{"lines", fmt.Sprintf("%d", c.LinesCount)},
		{"width", fmt.Sprintf("%.3f", c.LineWidth)},
		{"segments", fmt.Sprintf("%d", c.Segments)},
		{"frequency", fmt.Sprintf("%.2f", c.NoiseFrequency)},
		{"stacking", fmt.Sprintf("%t", c.Stacking)},
		{"colors", c.ColorMode},
	}
	return rows
}
