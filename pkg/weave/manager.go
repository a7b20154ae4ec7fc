package weave

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/weave/pkg/config"
	"github.com/matzehuels/weave/pkg/geom"
	"github.com/matzehuels/weave/pkg/observability"
	"github.com/matzehuels/weave/pkg/palette"
	"github.com/matzehuels/weave/pkg/resolver"
	"github.com/matzehuels/weave/pkg/rng"
	"github.com/matzehuels/weave/pkg/sampler"
	"github.com/matzehuels/weave/pkg/viewport"
)

// Manager owns the live lines of one animation.
type Manager struct {
	cfg       config.Config
	src       *rng.Source
	logger    *log.Logger
	hooks     observability.LifecycleHooks
	palette   palette.Palette
	gradient  palette.Gradient
	cam       viewport.Camera
	baseZ     float64
	threshold float64

	slots  []Slot
	lines  []*Line
	index  resolver.Index
	nextID int
	closed bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithHooks overrides the globally registered lifecycle hooks.
func WithHooks(h observability.LifecycleHooks) Option {
	return func(m *Manager) {
		if h != nil {
			m.hooks = h
		}
	}
}

// WithCamera sets the initial camera. The default is a square canvas.
func WithCamera(cam viewport.Camera) Option {
	return func(m *Manager) { m.cam = cam }
}

// WithPalette uses p instead of building one from the source.
func WithPalette(p palette.Palette) Option {
	return func(m *Manager) {
		if len(p) > 0 {
			m.palette = p
		}
	}
}

// DefaultCanvas is the canvas size used until the first resize.
const DefaultCanvas = 1024

// New validates cfg and returns a Manager with no lines. Validation warnings
// are logged, not returned.
func New(cfg config.Config, src *rng.Source, opts ...Option) (*Manager, error) {
	warnings, err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:       cfg,
		src:       src,
		logger:    log.New(io.Discard),
		hooks:     observability.Lifecycle(),
		gradient:  palette.DefaultGradient(),
		cam:       viewport.Resize(1, DefaultCanvas, DefaultCanvas),
		threshold: resolver.Threshold(cfg.LineWidth, cfg.CollisionFactor),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.palette == nil {
		m.palette = palette.Build(src)
	}
	m.baseZ = m.cam.BaseZ()

	if cfg.Index == config.IndexLinear {
		m.index = resolver.NewLinear()
	} else {
		m.index = resolver.NewGrid(m.threshold)
	}
	m.slots = buildSlots(cfg)

	m.logger.Info("weave started", "seed", src.Seed(), "preset", cfg.Preset)
	for _, w := range warnings {
		m.logger.Warn(w)
	}
	return m, nil
}

func buildSlots(cfg config.Config) []Slot {
	perSide := cfg.SlotsPerSide()
	size := cfg.SlotSize()
	slots := make([]Slot, cfg.LinesCount)
	for i := range slots {
		slots[i] = Slot{
			Index:    i,
			Vertical: i < perSide,
			Pos:      cfg.SpawnBounds[0] + float64(i%perSide)*size,
		}
	}
	return slots
}

// Resize replaces the camera used to project lines.
func (m *Manager) Resize(cam viewport.Camera) { m.cam = cam }

// Camera returns the current camera.
func (m *Manager) Camera() viewport.Camera { return m.cam }

// Config returns the configuration the manager runs with.
func (m *Manager) Config() config.Config { return m.cfg }

// Seed returns the seed of the random source.
func (m *Manager) Seed() uint64 { return m.src.Seed() }

// Slots returns every spawn slot.
func (m *Manager) Slots() []Slot { return slices.Clone(m.slots) }

// Lines returns copies of the live lines, oldest first.
func (m *Manager) Lines() []Line {
	out := make([]Line, len(m.lines))
	for i, l := range m.lines {
		out[i] = *l
		out[i].Points = slices.Clone(l.Points)
	}
	return out
}

// Close drops every line. Updates after Close return empty frames.
func (m *Manager) Close() {
	for _, l := range m.lines {
		m.index.Remove(l.ID)
		l.State = State{Phase: Removed}
	}
	m.lines = nil
	m.closed = true
}

// Update advances the lifecycle to t and returns the frame to draw. t must
// not decrease between calls.
func (m *Manager) Update(t float64) Frame {
	began := time.Now()
	frame := Frame{
		Time:       t,
		Seed:       m.src.Seed(),
		Camera:     m.cam,
		Background: m.cfg.Background,
	}
	if m.closed {
		return frame
	}

	var leaving *Line
	if len(m.lines) >= m.cfg.LinesCount-m.cfg.DisappearingBuffer {
		leaving = m.lines[0]
	}
	if cur := m.newest(); cur == nil || cur.done {
		m.spawn(t)
	}
	if leaving != nil && leaving.State.Phase != Fading {
		leaving.State = State{Phase: Fading, Start: t}
		m.logger.Debug("line fading", "id", leaving.ID, "t", t)
		m.hooks.OnLineFading(leaving.ID, t)
	}

	last := len(m.lines) - 1
	for i, l := range m.lines {
		visible := len(l.Points)
		if i == last {
			visible = l.visible(t, m.cfg.DrawDuration)
		}
		width := l.width(t, m.cfg.LineWidth, m.cfg.DrawDuration)

		if visible >= len(l.Points) {
			l.done = true
			if l.State.Phase == Revealing {
				l.State = State{Phase: Done}
			}
		}
		if l.State.Phase == Fading && width == 0 {
			l.doneDisappearing = true
		}
		if visible >= 2 && width > 0 {
			frame.Strokes = append(frame.Strokes, m.stroke(l, visible, width, t))
		}
	}

	if leaving != nil && leaving.doneDisappearing {
		m.remove(t)
	}
	m.hooks.OnFrame(t, len(m.lines), time.Since(began))
	return frame
}

func (m *Manager) newest() *Line {
	if len(m.lines) == 0 {
		return nil
	}
	return m.lines[len(m.lines)-1]
}

// pickSlot chooses uniformly among slots no live line holds. When all are
// taken the oldest line's slot is shared.
func (m *Manager) pickSlot() (Slot, bool) {
	var free []Slot
	for _, s := range m.slots {
		if !slices.ContainsFunc(m.lines, func(l *Line) bool { return l.Slot.Index == s.Index }) {
			free = append(free, s)
		}
	}
	if len(free) == 0 {
		return m.lines[0].Slot, true
	}
	return rng.Pick(m.src, free), false
}

func (m *Manager) spawn(t float64) {
	slot, reused := m.pickSlot()
	if reused {
		m.logger.Debug("no free slot, reusing oldest", "slot", slot.Index, "t", t)
		m.hooks.OnSlotReused(slot.Index, t)
	}

	l := &Line{
		ID:       m.nextID,
		Slot:     slot,
		Vertical: slot.Vertical,
		Forward:  m.src.Bool(),
		State:    State{Phase: Spawning},
	}
	m.nextID++
	stackUp := m.src.Bool()

	params := sampler.Params{
		Vertical:       l.Vertical,
		Forward:        l.Forward,
		Pos:            slot.Pos,
		Segments:       m.cfg.Segments,
		Frequency:      m.cfg.NoiseFrequency,
		NoiseConstant:  m.cfg.NoiseConstant,
		SymlogConstant: m.cfg.SymlogConstant,
		NoiselessZone:  m.cfg.NoiselessZone,
		LeadIn:         m.cfg.LeadIn,
		LeadOut:        m.cfg.LeadOut,
		BaseZ:          m.baseZ,
	}
	if m.cfg.Stacking {
		w := resolver.NewWalker(geom.Pt(0, 0, m.baseZ), stackUp, m.index, m.threshold, m.baseZ)
		params.Resolve = w.Next
	}
	l.Points = sampler.Sample(m.src, params).Points
	l.Color = m.palette.Pick(m.src)

	m.index.Add(l.ID, l.Points)
	l.born = t
	l.State = State{Phase: Revealing, Start: t}
	m.lines = append(m.lines, l)

	m.logger.Debug("line spawned", "id", l.ID, "slot", slot.Index, "vertical", l.Vertical, "forward", l.Forward, "t", t)
	m.hooks.OnLineSpawned(l.ID, slot.Index, l.Vertical, t)
}

func (m *Manager) remove(t float64) {
	l := m.lines[0]
	m.lines = m.lines[1:]
	m.index.Remove(l.ID)
	l.State = State{Phase: Removed}
	m.logger.Debug("line removed", "id", l.ID, "t", t)
	m.hooks.OnLineRemoved(l.ID, t)
}

func (m *Manager) stroke(l *Line, visible int, width, t float64) Stroke {
	color := l.Color
	if m.cfg.ColorMode == config.ColorGradient {
		color = palette.SlotColor(m.gradient, l.Slot.Index, m.cfg.LinesCount, t)
	}
	return Stroke{
		LineID:   l.ID,
		Slot:     l.Slot.Index,
		Vertical: l.Vertical,
		Phase:    l.State.Phase.String(),
		Color:    color,
		Width:    width,
		Points:   viewport.Project(l.Points[:visible], l.Vertical, m.cam, m.cfg.Padding, m.cfg.Segments, t, m.cfg.Undulation),
	}
}
