// Package bar hosts the three separators in a layer-shell status bar and
// implements the controller's Sampler and Renderer over GTK.
package bar

import (
	"fmt"
	"log"
	"math"
	"unsafe"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"

	"github.com/chess10kp/veil/internal/config"
	"github.com/chess10kp/veil/internal/controller"
	"github.com/chess10kp/veil/internal/layer"
	"github.com/chess10kp/veil/internal/policy"
	"github.com/chess10kp/veil/internal/zone"
)

// dragThreshold is how far the pointer travels with the button held
// before a press becomes a drag
const dragThreshold = 4.0

type rendered struct {
	role     zone.Role
	hasRole  bool
	length   int
	icon     string
	disabled bool
}

// Bar is the layer-shell window. Every method runs on the GTK main loop.
type Bar struct {
	cfg       config.BarConfig
	maxLength float64

	window  *gtk.Window
	fixed   *gtk.Fixed
	box     *gtk.Box
	slots   [3]*gtk.Image
	popover *gtk.Popover
	status  *gtk.Label
	keymap  *gdk.Keymap
	glyphs  *GlyphCache
	boxX    int

	rendered [3]rendered
	roles    [3]zone.Slot

	pointer  controller.Pointer
	pressed  bool
	dragging bool
	pressX   float64
	pressY   float64

	onActivate func(role zone.Role)
	statusText func() string
	onDestroy  func()
}

// New builds the bar window. Call Show once the controller is wired.
func New(cfg config.BarConfig, maxLength float64) (*Bar, error) {
	glyphs, err := NewGlyphCache(cfg.GlyphCacheSize)
	if err != nil {
		return nil, err
	}

	b := &Bar{
		cfg:       cfg,
		maxLength: maxLength,
		glyphs:    glyphs,
		roles:     zone.Identity(),
	}

	if err := b.createWindow(); err != nil {
		return nil, err
	}
	if err := b.createSlots(); err != nil {
		return nil, err
	}
	if err := b.createPopover(); err != nil {
		return nil, err
	}

	display, err := gdk.DisplayGetDefault()
	if err != nil {
		log.Printf("[BAR] Failed to get display, modifiers disabled: %v", err)
	} else if keymap, err := gdk.KeymapGetForDisplay(display); err != nil {
		log.Printf("[BAR] Failed to get keymap, modifiers disabled: %v", err)
	} else {
		b.keymap = keymap
	}

	b.connectEvents()

	log.Printf("[BAR] Created bar (height %d, max length %g)", cfg.Height, maxLength)
	return b, nil
}

func (b *Bar) createWindow() error {
	window, err := gtk.WindowNew(gtk.WINDOW_TOPLEVEL)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	window.SetTitle(b.cfg.Namespace)
	window.SetName("veil")
	window.SetSizeRequest(-1, b.cfg.Height)

	if !layer.IsSupported() {
		log.Printf("[BAR] Warning: compositor has no layer shell, using a plain window")
	}
	layer.Configure(unsafe.Pointer(window.GObject), layer.Surface{
		Namespace:     b.cfg.Namespace,
		Layer:         layer.LayerTop,
		Anchors:       []layer.Edge{layer.EdgeLeft, layer.EdgeRight, layer.EdgeTop},
		ExclusiveZone: b.cfg.Height,
		Keyboard:      layer.KeyboardModeNone,
	})

	// a no-window container keeps every child in window coordinates
	fixed, err := gtk.FixedNew()
	if err != nil {
		return fmt.Errorf("failed to create layout: %w", err)
	}
	box, err := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 0)
	if err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}
	box.SetSizeRequest(-1, b.cfg.Height)

	fixed.Put(box, 0, 0)
	window.Add(fixed)

	b.window = window
	b.fixed = fixed
	b.box = box
	return nil
}

// createSlots packs, left to right: slot 0, always hidden items, slot 1,
// hidden items, slot 2, visible items.
func (b *Bar) createSlots() error {
	sections := [3][]string{b.cfg.Items.AlwaysHidden, b.cfg.Items.Hidden, b.cfg.Items.Visible}

	for i := range b.slots {
		image, err := gtk.ImageNew()
		if err != nil {
			return fmt.Errorf("failed to create slot %d: %w", i, err)
		}
		if ctx, err := image.GetStyleContext(); err == nil {
			ctx.AddClass("separator")
		}
		b.box.PackStart(image, false, false, 0)
		b.slots[i] = image

		items := sections[i]
		for j := len(items) - 1; j >= 0; j-- {
			label, err := gtk.LabelNew(items[j])
			if err != nil {
				return fmt.Errorf("failed to create item %q: %w", items[j], err)
			}
			if ctx, err := label.GetStyleContext(); err == nil {
				ctx.AddClass("item")
			}
			b.box.PackStart(label, false, false, 0)
		}
	}
	return nil
}

func (b *Bar) createPopover() error {
	popover, err := gtk.PopoverNew(b.slots[zone.Head])
	if err != nil {
		return fmt.Errorf("failed to create popover: %w", err)
	}
	status, err := gtk.LabelNew("")
	if err != nil {
		return fmt.Errorf("failed to create status label: %w", err)
	}

	popover.Add(status)
	popover.SetPosition(gtk.POS_BOTTOM)
	status.Show()

	b.popover = popover
	b.status = status
	return nil
}

func (b *Bar) connectEvents() {
	b.window.AddEvents(int(gdk.POINTER_MOTION_MASK | gdk.BUTTON_PRESS_MASK |
		gdk.BUTTON_RELEASE_MASK | gdk.ENTER_NOTIFY_MASK | gdk.LEAVE_NOTIFY_MASK))

	b.window.Connect("motion-notify-event", b.onMotion)
	b.window.Connect("enter-notify-event", func(_ *gtk.Window, _ *gdk.Event) bool {
		b.pointer.OnBar = true
		return false
	})
	b.window.Connect("leave-notify-event", func(_ *gtk.Window, _ *gdk.Event) bool {
		b.pointer.OnBar = false
		return false
	})
	b.window.Connect("button-press-event", b.onPress)
	b.window.Connect("button-release-event", b.onRelease)
	b.window.Connect("size-allocate", func() {
		b.place()
	})
	b.window.Connect("destroy", func() {
		if b.onDestroy != nil {
			b.onDestroy()
		}
	})
}

// OnActivate sets the handler for a primary click on a separator
func (b *Bar) OnActivate(fn func(role zone.Role)) {
	b.onActivate = fn
}

// OnStatus sets the text source of the status popover
func (b *Bar) OnStatus(fn func() string) {
	b.statusText = fn
}

// OnDestroy sets the handler run when the window goes away
func (b *Bar) OnDestroy(fn func()) {
	b.onDestroy = fn
}

// Preload loads every glyph the appearance can show
func (b *Bar) Preload(a policy.Appearance) {
	b.glyphs.Preload([]string{
		a.HeadCollapsed.Icon, a.HeadUncollapsed.Icon, a.Body.Icon, a.Tail.Icon,
	}, b.cfg.GlyphSize)
}

// SetMaxLength updates the width used to push items off screen
func (b *Bar) SetMaxLength(length float64) {
	b.maxLength = length
}

func (b *Bar) Show() {
	b.window.ShowAll()
}

func (b *Bar) Destroy() {
	b.popover.Popdown()
	b.window.Destroy()
}

func (b *Bar) onMotion(_ *gtk.Window, ev *gdk.Event) bool {
	x, y := gdk.EventMotionNewFromEvent(ev).MotionVal()
	b.pointer = controller.Pointer{X: x, Y: y, OnBar: true}

	if b.pressed && !b.dragging && math.Hypot(x-b.pressX, y-b.pressY) > dragThreshold {
		b.dragging = true
	}
	return false
}

func (b *Bar) onPress(_ *gtk.Window, ev *gdk.Event) bool {
	btn := gdk.EventButtonNewFromEvent(ev)
	if btn.Button() == gdk.BUTTON_PRIMARY {
		b.pressed = true
		b.pressX, b.pressY = btn.X(), btn.Y()
	}
	return false
}

func (b *Bar) onRelease(_ *gtk.Window, ev *gdk.Event) bool {
	btn := gdk.EventButtonNewFromEvent(ev)
	slot, hit := b.slotAt(btn.X())

	switch btn.Button() {
	case gdk.BUTTON_PRIMARY:
		dragged := b.dragging
		b.pressed = false
		b.dragging = false
		if hit && !dragged && b.onActivate != nil && b.rendered[slot].hasRole {
			b.onActivate(b.rendered[slot].role)
		}
	case gdk.BUTTON_SECONDARY:
		if hit {
			b.togglePopover(slot)
		}
	}
	return false
}

func (b *Bar) togglePopover(slot zone.Slot) {
	if b.popover.GetVisible() {
		b.popover.Popdown()
		return
	}
	if b.statusText != nil {
		b.status.SetText(b.statusText())
	}
	b.popover.SetRelativeTo(b.slots[slot])
	b.popover.Popup()
}

func (b *Bar) slotAt(x float64) (zone.Slot, bool) {
	for i, image := range b.slots {
		if b.measure(image).Contains(x) {
			return zone.Slot(i), true
		}
	}
	return 0, false
}

// place keeps the right end of the content at the right edge of the window
func (b *Bar) place() {
	_, natural := b.box.GetPreferredWidth()
	x := b.window.GetAllocatedWidth() - natural
	if x == b.boxX {
		return
	}
	b.boxX = x
	b.fixed.Move(b.box, x, 0)
}

func (b *Bar) Sample() controller.Snapshot {
	s := controller.Snapshot{
		Pointer:      b.pointer,
		Dragging:     b.dragging,
		PopoverShown: b.popover.GetVisible(),
		LeftEdge:     float64(b.cfg.LeftEdge),
		MaxLength:    b.maxLength,
	}
	if b.keymap != nil {
		s.Modifiers = modifiersFromState(b.keymap.GetModifierState())
	}
	for i, image := range b.slots {
		s.Slots[i] = b.measure(image)
	}
	return s
}

func (b *Bar) measure(image *gtk.Image) controller.Measurement {
	m := controller.Measurement{Shown: image.GetVisible()}
	if !image.GetMapped() {
		return m
	}

	x, _, err := image.TranslateCoordinates(b.window, 0, 0)
	if err != nil {
		return m
	}

	m.OriginX = float64(x)
	m.Width = float64(image.GetAllocatedWidth())
	m.Valid = true
	return m
}

func (b *Bar) Render(slot zone.Slot, f controller.Frame) {
	image := b.slots[slot]
	r := &b.rendered[slot]

	ctx, err := image.GetStyleContext()
	if err == nil {
		if !r.hasRole || r.role != f.Role {
			if r.hasRole {
				ctx.RemoveClass(r.role.String())
			}
			ctx.AddClass(f.Role.String())
			r.role, r.hasRole = f.Role, true
		}
		if r.disabled != f.Disabled {
			if f.Disabled {
				ctx.AddClass("disabled")
			} else {
				ctx.RemoveClass("disabled")
			}
			r.disabled = f.Disabled
		}
	}
	b.roles[f.Role] = slot

	if length := int(math.Round(f.Length)); length != r.length {
		image.SetSizeRequest(length, -1)
		r.length = length
	}

	// a glyph wider than its zone would hold the zone open
	icon := ""
	if f.Length >= f.Glyph.Width {
		icon = f.Glyph.Icon
	}
	if icon != r.icon {
		b.setGlyph(image, icon)
		r.icon = icon
	}

	image.SetOpacity(f.Alpha)
	b.place()
}

func (b *Bar) setGlyph(image *gtk.Image, icon string) {
	if icon == "" {
		image.Clear()
		return
	}

	pixbuf, err := b.glyphs.Get(icon, b.cfg.GlyphSize)
	if err != nil {
		log.Printf("[BAR] Failed to load glyph %s: %v", icon, err)
		image.Clear()
		return
	}
	image.SetFromPixbuf(pixbuf)
}

func (b *Bar) styleOf(role zone.Role) *gtk.StyleContext {
	ctx, err := b.slots[b.roles[role]].GetStyleContext()
	if err != nil {
		return nil
	}
	return ctx
}

// modifiersFromState maps a GDK modifier mask onto trigger keys
func modifiersFromState(state uint) policy.Modifiers {
	var m policy.Modifiers
	if state&uint(gdk.CONTROL_MASK) != 0 {
		m |= policy.Control
	}
	if state&uint(gdk.MOD1_MASK) != 0 {
		m |= policy.Option
	}
	if state&uint(gdk.SUPER_MASK|gdk.MOD4_MASK) != 0 {
		m |= policy.Command
	}
	if state&uint(gdk.SHIFT_MASK) != 0 {
		m |= policy.Shift
	}
	return m
}
