package preview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chess10kp/veil/internal/controller"
	"github.com/chess10kp/veil/internal/zone"
)

const background = lipgloss.Color("#0e1419")

var (
	barStyle      = lipgloss.NewStyle().Background(background)
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ebdbb2")).Background(background)
	fillStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#313244")).Background(background)
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#504945")).Background(background)
	pointerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ebdbb2")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#665c54"))

	// glyph shades from faint to opaque
	shades = []lipgloss.Color{"#1d2021", "#504945", "#7c6f64", "#a89984", "#ebdbb2"}
)

var groupLabels = [3]string{"clock wifi", "hidden", "always"}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellItem
	cellFill
	cellGlyph
)

type cell struct {
	r     rune
	kind  cellKind
	frame controller.Frame
}

// cells lays the bar out in terminal columns, right-anchored
func (m *Model) cells(cols int) []cell {
	row := make([]cell, cols)
	for i := range row {
		row[i] = cell{r: ' '}
	}

	snap := m.layout.Sample()
	offset := m.layout.Width - float64(cols)*CellWidth

	column := func(x float64) int {
		return int(math.Floor((x - offset) / CellWidth))
	}

	right := m.layout.Width
	for slot := 2; slot >= 0; slot-- {
		meas := snap.Slots[slot]
		end := meas.OriginX + meas.Width

		// item group right of the slot
		label := []rune(groupLabels[2-slot])
		start := column(end)
		stop := column(right)
		pad := (stop - start - len(label)) / 2
		for i, r := range label {
			if c := start + pad + i; c >= 0 && c < cols && c < stop {
				row[c] = cell{r: r, kind: cellItem}
			}
		}

		frame := m.layout.Frame(zone.Slot(slot))
		first, last := column(meas.OriginX), column(end-0.01)
		for c := first; c <= last; c++ {
			if c < 0 || c >= cols {
				continue
			}
			if c == last {
				row[c] = cell{r: glyphRune(frame, m.settings), kind: cellGlyph, frame: frame}
			} else {
				row[c] = cell{r: '░', kind: cellFill, frame: frame}
			}
		}

		right = meas.OriginX
	}
	return row
}

func glyphRune(f controller.Frame, s controller.Settings) rune {
	switch f.Role {
	case zone.Head:
		if f.Glyph == s.Appearance.HeadCollapsed {
			return '‹'
		}
		return '›'
	case zone.Body:
		return '│'
	default:
		return '┊'
	}
}

func shade(alpha float64) lipgloss.Color {
	i := int(math.Round(alpha * float64(len(shades)-1)))
	if i < 0 {
		i = 0
	}
	if i >= len(shades) {
		i = len(shades) - 1
	}
	return shades[i]
}

func renderCell(c cell) string {
	s := string(c.r)
	switch c.kind {
	case cellItem:
		return itemStyle.Render(s)
	case cellFill:
		return fillStyle.Render(s)
	case cellGlyph:
		if c.frame.Disabled {
			return disabledStyle.Render(s)
		}
		return barStyle.Foreground(shade(c.frame.Alpha)).Render(s)
	default:
		return barStyle.Render(s)
	}
}

func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	cols := m.width
	if cols <= 0 {
		cols = int(m.layout.Width / CellWidth)
	}

	var b strings.Builder

	for _, c := range m.cells(cols) {
		b.WriteString(renderCell(c))
	}
	b.WriteString("\n")

	if m.layout.Pointer.OnBar {
		offset := m.layout.Width - float64(cols)*CellWidth
		col := int(math.Floor((m.layout.Pointer.X - offset) / CellWidth))
		if col >= 0 && col < cols {
			b.WriteString(strings.Repeat(" ", col))
			b.WriteString(pointerStyle.Render("▲"))
		}
	}
	b.WriteString("\n\n")

	status := m.ctrl.Status()
	field := func(name, value string) string {
		return labelStyle.Render(name+" ") + valueStyle.Render(value)
	}

	b.WriteString(strings.Join([]string{
		field("collapsed", fmt.Sprintf("%t", status.Collapsed)),
		field("idle", idleText(status)),
		field("timeout", fmt.Sprintf("%t", status.Timeout)),
		field("ignoring", fmt.Sprintf("%t", status.Ignoring)),
		field("edge", fmt.Sprintf("%.0f", status.Edge)),
	}, "  "))
	b.WriteString("\n")

	b.WriteString(strings.Join([]string{
		field("loop", loopText(status)),
		field("ticks", fmt.Sprintf("%d", status.Ticks)),
		field("keys", m.layout.Modifiers.String()),
		field("popover", fmt.Sprintf("%t", m.layout.Popover)),
		field("drag", fmt.Sprintf("%t", m.layout.Dragging)),
		field("motion", motionText(m.settings)),
		field("speed", m.speedText()),
		field("feedback", m.beatText()),
	}, "  "))
	b.WriteString("\n\n")

	for _, z := range status.Zones {
		b.WriteString(fmt.Sprintf("%s %s  %s\n",
			labelStyle.Render(fmt.Sprintf("%-4s", z.Role)),
			valueStyle.Render(fmt.Sprintf("length %7.1f -> %7.1f", z.Length, z.TargetLength)),
			valueStyle.Render(fmt.Sprintf("alpha %.2f -> %.2f", z.Alpha, z.TargetAlpha)),
		))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→ h/l move  H/L jump  b pointer on bar  p popover  d drag  1/2/3/s ctrl/alt/super/shift"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("c collapse  i idle hide  a idle always  u unidle  f feedback  m reduce motion  space pause  . step  +/- speed  q quit"))
	b.WriteString("\n")

	return b.String()
}

func idleText(s controller.Status) string {
	switch {
	case s.Idling.AlwaysHide:
		return "always"
	case s.Idling.Hide:
		return "hide"
	default:
		return "none"
	}
}

func loopText(s controller.Status) string {
	if s.Active {
		return "active"
	}
	return "idle"
}

func motionText(s controller.Settings) string {
	if s.ReduceMotion {
		return "reduced"
	}
	return "full"
}
