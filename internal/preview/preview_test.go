package preview

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chess10kp/veil/internal/config"
	"github.com/chess10kp/veil/internal/controller"
	"github.com/chess10kp/veil/internal/policy"
	"github.com/chess10kp/veil/internal/zone"
)

func testSettings(t *testing.T) controller.Settings {
	t.Helper()
	cfg := config.DefaultConfig
	settings, err := cfg.Settings(true)
	if err != nil {
		t.Fatalf("Failed to build settings: %v", err)
	}
	return settings
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel(testSettings(t), zone.Identity(), 800)
	m.Init()
	return m
}

func update(m *Model, msg tea.Msg) (*Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(*Model), cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSimLayoutIsRightAnchored(t *testing.T) {
	l := NewSimLayout(1000)
	l.Render(0, controller.Frame{Length: 10})
	l.Render(1, controller.Frame{Length: 20})
	l.Render(2, controller.Frame{Length: 30})

	s := l.Sample()

	want := [3]float64{
		1000 - 96 - 30 - 96 - 20 - 96 - 10,
		1000 - 96 - 30 - 96 - 20,
		1000 - 96 - 30,
	}
	for slot, x := range want {
		if got := s.Slots[slot].OriginX; got != x {
			t.Errorf("slot %d: expected origin %g, got %g", slot, x, got)
		}
		if !s.Slots[slot].Valid {
			t.Errorf("slot %d: expected a valid measurement", slot)
		}
	}
	if s.MaxLength != 1000 {
		t.Errorf("Expected max length to follow the width, got %g", s.MaxLength)
	}
}

func TestFramesAdvanceClock(t *testing.T) {
	m := newTestModel(t)

	_, cmd := update(m, FrameMsg{Time: time.Now()})
	if cmd == nil {
		t.Fatal("Expected a frame to schedule the next frame")
	}
	if got := m.clock.Now(); got != m.frame {
		t.Errorf("Expected clock at %v, got %v", m.frame, got)
	}
	if m.ctrl.Status().Ticks == 0 {
		t.Error("Expected the controller to tick")
	}
}

func TestPauseAndStep(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(m, key(" "))
	m, _ = update(m, FrameMsg{})
	if got := m.clock.Now(); got != 0 {
		t.Errorf("Expected paused clock, got %v", got)
	}

	m, _ = update(m, key("."))
	if got := m.clock.Now(); got != m.frame {
		t.Errorf("Expected one step, got %v", got)
	}
}

func TestSlowdown(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(m, key("+"))
	m, _ = update(m, FrameMsg{})

	if got := m.clock.Now(); got != m.frame/2 {
		t.Errorf("Expected half a frame, got %v", got)
	}
	if got := m.speedText(); got != "1/2x" {
		t.Errorf("Expected 1/2x, got %q", got)
	}

	for i := 0; i < 10; i++ {
		m, _ = update(m, key("+"))
	}
	if m.slowdown != MaxSlowdown {
		t.Errorf("Expected slowdown capped at %d, got %d", MaxSlowdown, m.slowdown)
	}
}

func TestKeysFlipSignals(t *testing.T) {
	m := newTestModel(t)
	l := m.Layout()

	m, _ = update(m, key("2"))
	m, _ = update(m, key("s"))
	if l.Modifiers != policy.Option|policy.Shift {
		t.Errorf("Expected option and shift held, got %v", l.Modifiers)
	}

	m, _ = update(m, key("p"))
	m, _ = update(m, key("d"))
	if !l.Popover || !l.Dragging {
		t.Error("Expected popover and drag on")
	}

	m, _ = update(m, key("c"))
	if m.Controller().Status().Collapsed {
		t.Error("Expected c to expand")
	}

	m, _ = update(m, key("i"))
	if !m.Controller().Idling().Hide {
		t.Error("Expected i to idle the hide area")
	}
	m, _ = update(m, key("u"))
	if m.Controller().Idling().Hide {
		t.Error("Expected u to unidle")
	}

	m, _ = update(m, key("m"))
	if !m.Controller().Settings().ReduceMotion {
		t.Error("Expected m to reduce motion")
	}
}

func TestPointerStaysOnScreen(t *testing.T) {
	m := newTestModel(t)

	start := m.Layout().Pointer.X
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Layout().Pointer.X; got != start+CellWidth {
		t.Errorf("Expected pointer to move one cell, got %g", got)
	}

	m, _ = update(m, key("L"))
	if got := m.Layout().Pointer.X; got != 800 {
		t.Errorf("Expected pointer clamped to 800, got %g", got)
	}
	if !m.Layout().Pointer.OnBar {
		t.Error("Expected moving the pointer to put it on the bar")
	}

	for i := 0; i < 20; i++ {
		m, _ = update(m, key("H"))
	}
	if got := m.Layout().Pointer.X; got != 0 {
		t.Errorf("Expected pointer clamped to 0, got %g", got)
	}
}

func TestWindowSizeResizesLayout(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if got := m.Layout().Width; got != 120*CellWidth {
		t.Errorf("Expected width %g, got %g", 120*CellWidth, got)
	}
}

func TestQuitStopsController(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(m, key("q"))
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	if m.Controller().Running() {
		t.Error("Expected the controller to stop")
	}
}

func TestViewDrawsGlyphs(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 60; i++ {
		m, _ = update(m, FrameMsg{})
	}

	view := m.View()
	if !strings.Contains(view, "‹") {
		t.Error("Expected the collapsed head glyph")
	}
	if !strings.Contains(view, "clock wifi") {
		t.Error("Expected the visible items")
	}
	if !strings.Contains(view, "collapsed") {
		t.Error("Expected the status line")
	}
}
