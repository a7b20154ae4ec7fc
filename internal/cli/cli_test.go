package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/weave/pkg/config"
	"github.com/matzehuels/weave/pkg/errors"
)

// testCLI returns a CLI that logs to a buffer and captures status output.
func testCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return New(io.Discard, LogInfo), &buf
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c, _ := testCLI(t)
	root := c.RootCommand()

	have := map[string]bool{}
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range []string{"cache", "completion", "presets", "preview", "render", "serve"} {
		if !have[name] {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weave.toml")
	if err := os.WriteFile(path, []byte("preset = \"plain\"\nlines_count = 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		setup     func(c *CLI)
		wantName  string
		wantLines int
		wantStack bool
		wantMode  string
	}{
		{
			name:      "default preset",
			setup:     func(c *CLI) {},
			wantName:  config.DefaultPreset,
			wantLines: 14,
			wantStack: true,
			wantMode:  config.ColorGradient,
		},
		{
			name:      "named preset",
			setup:     func(c *CLI) { c.preset = "dense" },
			wantName:  "dense",
			wantLines: config.Presets["dense"].LinesCount,
			wantStack: config.Presets["dense"].Stacking,
			wantMode:  config.Presets["dense"].ColorMode,
		},
		{
			name:      "config file",
			setup:     func(c *CLI) { c.configPath = path },
			wantName:  "plain",
			wantLines: 12,
			wantStack: false,
			wantMode:  config.ColorPalette,
		},
		{
			name: "flag overrides",
			setup: func(c *CLI) {
				c.lines = 8
				c.colorMode = config.ColorPalette
				c.noStacking = true
			},
			wantName:  config.DefaultPreset,
			wantLines: 8,
			wantStack: false,
			wantMode:  config.ColorPalette,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testCLI(t)
			tt.setup(c)
			cfg, err := c.loadConfig()
			if err != nil {
				t.Fatalf("loadConfig() error = %v", err)
			}
			if cfg.Preset != tt.wantName || cfg.LinesCount != tt.wantLines || cfg.Stacking != tt.wantStack || cfg.ColorMode != tt.wantMode {
				t.Errorf("loadConfig() = preset %q lines %d stacking %t colors %q", cfg.Preset, cfg.LinesCount, cfg.Stacking, cfg.ColorMode)
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	c, _ := testCLI(t)
	c.preset = "nope"
	if _, err := c.loadConfig(); !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("unknown preset error = %v", err)
	}

	c, _ = testCLI(t)
	c.lines = 1
	if _, err := c.loadConfig(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("one line error = %v", err)
	}
}

func TestConfigAndPresetExclusive(t *testing.T) {
	c, _ := testCLI(t)
	if err := execute(t, c, "presets", "--config", "x.toml", "--preset", "plain"); err == nil {
		t.Error("expected --config and --preset to be mutually exclusive")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,png,json", []string{"svg", "png", "json"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
			t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	c, status := testCLI(t)
	dir := t.TempDir()

	err := execute(t, c, "render", "--seed", "678975", "--duration", "0.5", "--fps", "10",
		"--width", "200", "--height", "100", "--format", "svg,json", "-o", dir)
	if err != nil {
		t.Fatalf("render error = %v", err)
	}

	files, _ := filepath.Glob(filepath.Join(dir, "frame_*"))
	if len(files) != 10 {
		t.Errorf("wrote %d files, want 10: %v", len(files), files)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "frame_00004.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(svg), []byte("<?xml")) {
		t.Errorf("frame is not an svg document: %.40s", svg)
	}
	if !strings.Contains(status.String(), "Wrote 10 files") {
		t.Errorf("status output = %q", status.String())
	}
}

func TestRenderCommandAt(t *testing.T) {
	c, _ := testCLI(t)
	dir := t.TempDir()

	err := execute(t, c, "render", "--seed", "5", "--at", "2", "--prefix", "still", "--no-cache", "-o", dir)
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	files, _ := filepath.Glob(filepath.Join(dir, "*"))
	if diff := cmp.Diff([]string{filepath.Join(dir, "still_00000.svg")}, files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCommandRejectsBadFormat(t *testing.T) {
	c, _ := testCLI(t)
	err := execute(t, c, "render", "--format", "gif", "-o", t.TempDir())
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v", err)
	}
}

func TestPresetsCommand(t *testing.T) {
	c, status := testCLI(t)
	if err := execute(t, c, "presets"); err != nil {
		t.Fatal(err)
	}
	for _, name := range config.PresetNames() {
		if !strings.Contains(status.String(), name) {
			t.Errorf("presets output missing %q", name)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	c, status := testCLI(t)

	if err := execute(t, c, "cache", "stats"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(status.String(), "Cache is empty") {
		t.Errorf("stats on missing cache = %q", status.String())
	}

	if err := execute(t, c, "render", "--seed", "9", "--at", "0.5", "-o", t.TempDir()); err != nil {
		t.Fatal(err)
	}
	status.Reset()
	if err := execute(t, c, "cache", "stats"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(status.String(), "entries") {
		t.Errorf("stats output = %q", status.String())
	}

	status.Reset()
	if err := execute(t, c, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(status.String(), "Cleared 1 cached entries") {
		t.Errorf("clear output = %q", status.String())
	}

	status.Reset()
	if err := execute(t, c, "cache", "path"); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(status.String()); !strings.HasSuffix(got, appName) {
		t.Errorf("cache path = %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	c, _ := testCLI(t)
	root := c.RootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "weave") {
		t.Error("bash completion should mention the command name")
	}
}
