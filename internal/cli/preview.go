package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/weave/pkg/rng"
	"github.com/matzehuels/weave/pkg/scene"
	"github.com/matzehuels/weave/pkg/weave"
)

// Preview styles
var (
	previewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	previewKeyStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	previewFPS       = 30
	previewMaxSpeed  = 8
	previewHalfBlock = "▀"
)

// previewCommand animates the weave in the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var fps float64
	var speed float64

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Animate the weave in the terminal",
		Long: `Animate the weave in the terminal. Each character cell shows two
pixels stacked vertically. Resize the terminal to resize the canvas.

Keys: q quit · space pause · +/- speed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), fps, speed)
		},
	}

	cmd.Flags().Float64Var(&fps, "fps", previewFPS, "redraws per second")
	cmd.Flags().Float64Var(&speed, "speed", 1, "animation speed multiplier")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, fps, speed float64) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if fps <= 0 || speed <= 0 {
		return fmt.Errorf("fps and speed must be positive")
	}

	seed := c.seed
	if seed == 0 {
		seed = rng.RandomSeed()
	}
	c.Logger.Info("starting preview", "seed", seed, "preset", cfg.Preset)

	m, err := weave.New(cfg, rng.New(seed), weave.WithLogger(c.Logger))
	if err != nil {
		return err
	}
	h := scene.New(m, nil)
	defer h.OnTeardown()
	model := newPreviewModel(h, time.Duration(float64(time.Second)/fps), speed)

	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	if pm, ok := final.(*previewModel); ok {
		if pm.err != nil {
			return pm.err
		}
		printSuccess("Stopped at t=%.2fs", pm.t)
		printNextStep("Render this seed", fmt.Sprintf("weave render --seed %d --at %.2f", seed, pm.t))
	}
	return nil
}

// =============================================================================
// previewModel - bubbletea model
// =============================================================================

// tickMsg advances the animation by one step.
type tickMsg struct{}

type previewModel struct {
	harness *scene.Harness
	step    time.Duration
	speed   float64
	paused  bool

	cols, rows int
	t          float64
	frame      weave.Frame
	err        error
}

func newPreviewModel(h *scene.Harness, step time.Duration, speed float64) *previewModel {
	m := &previewModel{harness: h, step: step, speed: speed}
	m.resize(80, 24)
	return m
}

// resize gives the canvas every row but the status line, two pixels per row.
func (m *previewModel) resize(cols, rows int) {
	m.cols, m.rows = max(cols, 1), max(rows-1, 1)
	m.harness.OnResize(1, m.cols, m.rows*2)
}

func (m *previewModel) tick() tea.Cmd {
	return tea.Tick(m.step, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *previewModel) Init() tea.Cmd {
	return tea.Batch(m.advance(0), m.tick())
}

// advance moves the clock by dt and renders the next frame.
func (m *previewModel) advance(dt float64) tea.Cmd {
	m.t += dt
	f, err := m.harness.OnFrame(m.t)
	if err != nil {
		m.err = err
		return tea.Quit
	}
	m.frame = f
	return nil
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "+", "=":
			m.speed = math.Min(m.speed*2, previewMaxSpeed)
		case "-", "_":
			m.speed = math.Max(m.speed/2, 1.0/previewMaxSpeed)
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, m.advance(0)
	case tickMsg:
		if m.paused {
			return m, m.tick()
		}
		if cmd := m.advance(m.step.Seconds() * m.speed); cmd != nil {
			return m, cmd
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *previewModel) View() string {
	var b strings.Builder
	b.WriteString(renderCells(rasterize(m.frame, m.cols, m.rows*2), m.frame.Background))
	b.WriteByte('\n')

	state := "playing"
	if m.paused {
		state = "paused"
	}
	status := fmt.Sprintf("t %.2fs · %d lines · seed %d · %s · x%g", m.t, len(m.frame.Strokes), m.frame.Seed, state, m.speed)
	b.WriteString(previewStatusStyle.Render(status))
	b.WriteString(previewKeyStyle.Render("   q quit · space pause · +/- speed"))
	return b.String()
}

// =============================================================================
// Rasterizer
// =============================================================================

// rasterize paints the frame into a w x h pixel grid of colors. Runs are
// painted in depth order so a higher run covers a lower one. Empty cells
// are "".
func rasterize(f weave.Frame, w, h int) [][]string {
	grid := make([][]string, h)
	for y := range grid {
		grid[y] = make([]string, w)
	}
	cam := f.Camera
	if cam.Width == 0 || cam.Height == 0 {
		return grid
	}
	sx := float64(w) / float64(cam.Width)
	sy := float64(h) / float64(cam.Height)

	for _, dr := range f.DepthOrder() {
		r := math.Max(dr.Stroke.Width*float64(cam.Height)*sy/2, 0.75)
		for i := 1; i < len(dr.Points); i++ {
			x0, y0 := cam.ToPixels(dr.Points[i-1])
			x1, y1 := cam.ToPixels(dr.Points[i])
			paintSegment(grid, x0*sx, y0*sy, x1*sx, y1*sy, r, dr.Stroke.Color)
		}
	}
	return grid
}

// paintSegment stamps discs of radius r along the segment.
func paintSegment(grid [][]string, x0, y0, x1, y1, r float64, color string) {
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	for s := 0; s <= steps; s++ {
		u := 0.0
		if steps > 0 {
			u = float64(s) / float64(steps)
		}
		stamp(grid, x0+(x1-x0)*u, y0+(y1-y0)*u, r, color)
	}
}

func stamp(grid [][]string, cx, cy, r float64, color string) {
	for y := int(math.Floor(cy - r)); y <= int(math.Ceil(cy+r)); y++ {
		if y < 0 || y >= len(grid) {
			continue
		}
		for x := int(math.Floor(cx - r)); x <= int(math.Ceil(cx+r)); x++ {
			if x < 0 || x >= len(grid[y]) {
				continue
			}
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				grid[y][x] = color
			}
		}
	}
}

// renderCells draws two pixel rows per text row with the upper half block:
// foreground is the top pixel, background the bottom one. Neighbouring cells
// with the same colors share one styled span.
func renderCells(grid [][]string, background string) string {
	var b strings.Builder
	for y := 0; y < len(grid); y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		top := grid[y]
		var bottom []string
		if y+1 < len(grid) {
			bottom = grid[y+1]
		}
		var run strings.Builder
		var runTop, runBottom string
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(orBackground(runTop, background))).
				Background(lipgloss.Color(orBackground(runBottom, background)))
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for x := range top {
			t, bt := top[x], ""
			if bottom != nil {
				bt = bottom[x]
			}
			if run.Len() > 0 && (t != runTop || bt != runBottom) {
				flush()
			}
			runTop, runBottom = t, bt
			run.WriteString(previewHalfBlock)
		}
		flush()
	}
	return b.String()
}

func orBackground(c, background string) string {
	if c == "" {
		return background
	}
	return c
}
