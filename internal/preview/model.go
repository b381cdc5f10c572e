package preview

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chess10kp/veil/internal/controller"
	"github.com/chess10kp/veil/internal/feedback"
	"github.com/chess10kp/veil/internal/policy"
	"github.com/chess10kp/veil/internal/sched"
	"github.com/chess10kp/veil/internal/zone"
)

const (
	// CellWidth is how many bar pixels one terminal column shows
	CellWidth = 8.0
	// MaxSlowdown bounds the slow motion factor
	MaxSlowdown = 16
	// beatVisible is how long a feedback beat stays on screen
	beatVisible = 300 * time.Millisecond
)

// FrameMsg advances the virtual clock by one frame
type FrameMsg struct {
	Time time.Time
}

// FrameCmd schedules the next frame
func FrameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FrameMsg{Time: t}
	})
}

type beat struct {
	step feedback.Step
	at   time.Duration
}

// Model is the bubbletea model of the simulator
type Model struct {
	layout   *SimLayout
	clock    *sched.Manual
	ctrl     *controller.Controller
	settings controller.Settings

	frame    time.Duration
	slowdown int
	paused   bool

	width  int
	height int

	last beat
	err  error
}

// NewModel creates a simulator for settings on a bar width pixels wide
func NewModel(settings controller.Settings, ordering zone.Ordering, width float64) *Model {
	m := &Model{
		layout:   NewSimLayout(width),
		clock:    sched.NewManual(),
		settings: settings,
		frame:    settings.Timing.Tick,
		slowdown: 1,
		last:     beat{step: feedback.Gap, at: -beatVisible},
	}
	if m.frame <= 0 {
		m.frame = controller.DefaultTiming().Tick
	}

	m.ctrl = controller.New(settings, ordering, controller.Deps{
		Sampler:   m.layout,
		Renderer:  m.layout,
		Performer: feedback.PerformerFunc(m.perform),
		Scheduler: m.clock,
	})

	// park the pointer over the visible items
	m.layout.Pointer = controller.Pointer{X: width - m.layout.Groups[0]/2}
	return m
}

func (m *Model) perform(step feedback.Step) {
	m.last = beat{step: step, at: m.clock.Now()}
}

func (m *Model) Init() tea.Cmd {
	if err := m.ctrl.Start(); err != nil {
		m.err = err
	}
	return FrameCmd(m.frame)
}

// Step advances the virtual clock by one frame
func (m *Model) Step() {
	m.clock.Advance(m.frame / time.Duration(m.slowdown))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		if !m.paused {
			m.Step()
		}
		return m, FrameCmd(m.frame)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout.Width = float64(msg.Width) * CellWidth
		m.ctrl.Wake()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m *Model) handleKey(key string) (tea.Model, tea.Cmd) {
	l := m.layout

	switch key {
	case "q", "ctrl+c":
		m.ctrl.Stop()
		return m, tea.Quit

	case "left", "h":
		m.movePointer(-CellWidth)
	case "right", "l":
		m.movePointer(CellWidth)
	case "H":
		m.movePointer(-10 * CellWidth)
	case "L":
		m.movePointer(10 * CellWidth)
	case "b", "enter":
		l.Pointer.OnBar = !l.Pointer.OnBar

	case "p":
		l.Popover = !l.Popover
	case "d":
		l.Dragging = !l.Dragging
	case "1":
		l.Modifiers ^= policy.Control
	case "2":
		l.Modifiers ^= policy.Option
	case "3":
		l.Modifiers ^= policy.Command
	case "s":
		l.Modifiers ^= policy.Shift

	case "i":
		m.ctrl.IdleHide()
	case "a":
		m.ctrl.IdleAlwaysHide()
	case "u":
		m.ctrl.Unidle()
	case "c":
		m.ctrl.ToggleCollapsed()
	case "f":
		m.ctrl.TriggerFeedback()
	case "m":
		m.settings.ReduceMotion = !m.settings.ReduceMotion
		m.ctrl.Apply(m.settings)

	case " ":
		m.paused = !m.paused
	case ".":
		if m.paused {
			m.Step()
		}
	case "+":
		if m.slowdown < MaxSlowdown {
			m.slowdown *= 2
		}
	case "-":
		if m.slowdown > 1 {
			m.slowdown /= 2
		}
	}

	m.ctrl.Wake()
	return m, nil
}

func (m *Model) movePointer(dx float64) {
	p := &m.layout.Pointer
	p.X += dx
	if p.X < 0 {
		p.X = 0
	}
	if p.X > m.layout.Width {
		p.X = m.layout.Width
	}
	p.OnBar = true
}

// Controller exposes the simulated controller
func (m *Model) Controller() *controller.Controller {
	return m.ctrl
}

// Layout exposes the simulated bar
func (m *Model) Layout() *SimLayout {
	return m.layout
}

func (m *Model) beatText() string {
	if m.last.step == feedback.Gap || m.clock.Now()-m.last.at > beatVisible {
		return "-"
	}
	return m.last.step.String()
}

func (m *Model) speedText() string {
	switch {
	case m.paused:
		return "paused"
	case m.slowdown == 1:
		return "1x"
	default:
		return fmt.Sprintf("1/%dx", m.slowdown)
	}
}
