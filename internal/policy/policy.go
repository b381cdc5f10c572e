// Package policy decides, from one tick's signals, how visible each separator should be.
//
// Decide is pure: it reads a typed Input and returns a typed Decision, so it
// can be exercised without a running tick loop.
package policy

// Idling holds the externally set idle-hide flags
type Idling struct {
	Hide       bool `json:"hide"`        // hide area is idle-revealed
	AlwaysHide bool `json:"always_hide"` // always-hide area is idle-revealed until explicitly hidden
}

// Any reports whether either flag is set
func (i Idling) Any() bool {
	return i.Hide || i.AlwaysHide
}

// Glyph describes how a separator is drawn when revealed
type Glyph struct {
	Icon    string
	Width   float64
	Opacity float64
}

// Appearance is the glyph set of the active theme
type Appearance struct {
	HeadCollapsed   Glyph
	HeadUncollapsed Glyph
	Body            Glyph
	Tail            Glyph
}

// Settings are the user-facing toggles that feed the decision
type Settings struct {
	Collapsed      bool
	AutoShows      bool
	AutoHideIcons  bool
	AlwaysHideArea bool
	Trigger        Modifiers
	Mode           TriggerMode
}

// Signals are the environment facts sampled for one tick
type Signals struct {
	PopoverShown bool
	OnBar        bool
	Spare        bool
	OverBody     bool
	Held         Modifiers
	Idling       Idling
	TimedOut     bool
}

// Input is everything Decide looks at
type Input struct {
	Settings   Settings
	Signals    Signals
	Appearance Appearance
}

// Reason explains a zone's collapse decision
type Reason int

const (
	ReasonCollapsed Reason = iota
	ReasonOverlay
	ReasonIdle
	ReasonTrigger
	ReasonAutoShow
	ReasonExpanded
	ReasonDisabled
)

// String returns the string representation of Reason
func (r Reason) String() string {
	switch r {
	case ReasonCollapsed:
		return "collapsed"
	case ReasonOverlay:
		return "overlay"
	case ReasonIdle:
		return "idle"
	case ReasonTrigger:
		return "trigger"
	case ReasonAutoShow:
		return "auto-show"
	case ReasonExpanded:
		return "expanded"
	case ReasonDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// ZoneDecision is the outcome for one zone
type ZoneDecision struct {
	TargetAlpha float64
	Collapses   bool
	Reason      Reason
}

// Triggers records which zones the held modifiers reveal
type Triggers struct {
	Body bool
	Tail bool
}

// Decision is the outcome for all three zones
type Decision struct {
	Head ZoneDecision
	Body ZoneDecision
	Tail ZoneDecision

	// HeadLength is the width the head animates toward
	HeadLength float64
	// HeadGlyph is the glyph the head should display
	HeadGlyph Glyph
	// Disabled mirrors the "appears disabled" look of the glyphs
	Disabled bool
	Triggers Triggers
	// AutoShow is true when hovering spare space is revealing the hide area
	AutoShow bool
}

// Decide maps one tick's input to a decision per zone.
// The overlay wins over everything, idle flags win over triggers and
// triggers win over passive auto-show.
func Decide(in Input) Decision {
	s, sig, look := in.Settings, in.Signals, in.Appearance

	held := s.Mode.Triggers(s.Trigger, sig.Held)
	trig := Triggers{
		Body: sig.OnBar && held,
		Tail: (sig.Spare || sig.OverBody) && held,
	}
	autoShow := s.AutoShows && sig.Spare && !sig.TimedOut

	d := Decision{
		Disabled: !s.AutoHideIcons && !s.Collapsed,
		Triggers: trig,
		AutoShow: autoShow,
	}

	headGlyph := look.HeadUncollapsed
	if s.Collapsed {
		headGlyph = look.HeadCollapsed
	}

	if sig.PopoverShown {
		d.Head = ZoneDecision{Reason: ReasonOverlay}
		d.Body = ZoneDecision{Reason: ReasonOverlay}
		d.Tail = ZoneDecision{Reason: ReasonOverlay}
	} else {
		d.Head = decideHead(s, sig, autoShow)
		d.Body = decideBody(s, sig, trig.Body, autoShow)
		d.Tail = decideTail(sig, trig.Tail)
	}

	if !s.AlwaysHideArea {
		d.Tail = ZoneDecision{Reason: ReasonDisabled}
	}

	if d.Head.Collapses {
		d.HeadLength = look.HeadCollapsed.Width
	} else {
		d.HeadLength = look.HeadUncollapsed.Width
	}

	if sig.PopoverShown || held {
		headGlyph = look.HeadUncollapsed
	}
	d.HeadGlyph = headGlyph

	head, body, tail := headGlyph.Opacity, look.Body.Opacity, look.Tail.Opacity

	switch {
	case sig.PopoverShown, !s.AutoHideIcons:
		d.Head.TargetAlpha = head
		d.Body.TargetAlpha = body
		d.Tail.TargetAlpha = tail

	case s.Collapsed && !s.AutoShows:
		// nothing can reveal the glyphs

	default:
		if !s.Collapsed {
			d.Head.TargetAlpha = head
		}
		if !s.Collapsed || sig.Idling.Any() || trig.Body || autoShow {
			d.Body.TargetAlpha = body
		}
		if sig.Idling.AlwaysHide || trig.Tail || autoShow {
			d.Tail.TargetAlpha = tail
		}
	}

	if !s.AlwaysHideArea {
		d.Tail.TargetAlpha = 0
	}

	return d
}

func decideHead(s Settings, sig Signals, autoShow bool) ZoneDecision {
	switch {
	case !s.Collapsed:
		return ZoneDecision{Reason: ReasonExpanded}
	case sig.Idling.Any():
		return ZoneDecision{Reason: ReasonIdle}
	case autoShow:
		return ZoneDecision{Reason: ReasonAutoShow}
	default:
		return ZoneDecision{Collapses: true, Reason: ReasonCollapsed}
	}
}

func decideBody(s Settings, sig Signals, triggered, autoShow bool) ZoneDecision {
	switch {
	case !s.Collapsed:
		return ZoneDecision{Reason: ReasonExpanded}
	case sig.Idling.Any():
		return ZoneDecision{Reason: ReasonIdle}
	case triggered:
		return ZoneDecision{Reason: ReasonTrigger}
	case autoShow:
		return ZoneDecision{Reason: ReasonAutoShow}
	default:
		return ZoneDecision{Collapses: true, Reason: ReasonCollapsed}
	}
}

// decideTail ignores the collapsed setting: the always-hide area stays
// folded until idled open or triggered.
func decideTail(sig Signals, triggered bool) ZoneDecision {
	switch {
	case sig.Idling.AlwaysHide:
		return ZoneDecision{Reason: ReasonIdle}
	case triggered:
		return ZoneDecision{Reason: ReasonTrigger}
	default:
		return ZoneDecision{Collapses: true, Reason: ReasonCollapsed}
	}
}
