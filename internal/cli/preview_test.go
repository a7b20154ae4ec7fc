package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/weave/pkg/config"
	"github.com/matzehuels/weave/pkg/geom"
	"github.com/matzehuels/weave/pkg/rng"
	"github.com/matzehuels/weave/pkg/scene"
	"github.com/matzehuels/weave/pkg/viewport"
	"github.com/matzehuels/weave/pkg/weave"
)

func newTestPreview(t *testing.T) *previewModel {
	t.Helper()
	m, err := weave.New(config.Default(), rng.New(678975))
	if err != nil {
		t.Fatal(err)
	}
	h := scene.New(m, nil)
	t.Cleanup(func() { _ = h.OnTeardown() })
	return newPreviewModel(h, 100*time.Millisecond, 1)
}

func TestPreviewModelTicks(t *testing.T) {
	m := newTestPreview(t)
	m.Init()

	for i := 0; i < 20; i++ {
		m.Update(tickMsg{})
	}
	if m.t < 1.99 || m.t > 2.01 {
		t.Errorf("t = %v after 20 ticks of 0.1s", m.t)
	}
	if len(m.frame.Strokes) != 1 {
		t.Errorf("strokes = %d, want 1", len(m.frame.Strokes))
	}

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !m.paused {
		t.Fatal("space should pause")
	}
	before := m.t
	m.Update(tickMsg{})
	if m.t != before {
		t.Errorf("paused model advanced from %v to %v", before, m.t)
	}
}

func TestPreviewModelSpeed(t *testing.T) {
	m := newTestPreview(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if m.speed != 4 {
		t.Errorf("speed = %v, want 4", m.speed)
	}
	for i := 0; i < 10; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	}
	if m.speed != 1.0/previewMaxSpeed {
		t.Errorf("speed = %v, want floor %v", m.speed, 1.0/previewMaxSpeed)
	}
}

func TestPreviewModelResize(t *testing.T) {
	m := newTestPreview(t)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 11})

	cam := m.harness.Manager().Camera()
	if cam.Width != 40 || cam.Height != 20 {
		t.Errorf("camera %dx%d, want 40x20", cam.Width, cam.Height)
	}
	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 11 {
		t.Errorf("view has %d lines, want 11", len(lines))
	}
}

func TestPreviewModelQuit(t *testing.T) {
	m := newTestPreview(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}

	// A tick already queued when q arrives still renders.
	m.Update(tickMsg{})
	if m.err != nil {
		t.Errorf("tick after quit key: err = %v", m.err)
	}
	if _, err := m.harness.OnFrame(m.t); err != nil {
		t.Errorf("harness torn down by quit key: %v", err)
	}
}

func TestRasterize(t *testing.T) {
	cam := viewport.Resize(1, 20, 10)
	f := weave.Frame{
		Camera: cam,
		Strokes: []weave.Stroke{
			{Color: "#ff0000", Width: 0.1, Points: []geom.Point{geom.Pt(cam.Left, 0, 0), geom.Pt(cam.Right, 0, 0)}},
			{Color: "#0000ff", Width: 0.1, Points: []geom.Point{geom.Pt(0, cam.Top, 5), geom.Pt(0, cam.Bottom, 5)}},
		},
	}
	grid := rasterize(f, 20, 10)

	if got := grid[5][2]; got != "#ff0000" {
		t.Errorf("horizontal stroke cell = %q", got)
	}
	if got := grid[1][10]; got != "#0000ff" {
		t.Errorf("vertical stroke cell = %q", got)
	}
	// The vertical stroke is higher, so it wins the crossing.
	if got := grid[5][10]; got != "#0000ff" {
		t.Errorf("crossing cell = %q, want the higher stroke", got)
	}
	if got := grid[0][0]; got != "" {
		t.Errorf("corner cell = %q, want empty", got)
	}
}

func TestRenderCellsRows(t *testing.T) {
	grid := [][]string{
		{"#ff0000", ""},
		{"", ""},
		{"", "#00ff00"},
	}
	got := renderCells(grid, "#000000")
	if n := strings.Count(got, "\n"); n != 1 {
		t.Errorf("rendered %d newlines, want 1", n)
	}
	if n := strings.Count(got, previewHalfBlock); n != 4 {
		t.Errorf("rendered %d cells, want 4", n)
	}
}
