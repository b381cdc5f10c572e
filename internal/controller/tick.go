package controller

import (
	"github.com/chess10kp/veil/internal/policy"
	"github.com/chess10kp/veil/internal/zone"
)

// TickNow runs one update immediately and makes sure the loop is running
func (c *Controller) TickNow() {
	c.Wake()
	c.tick()
}

// tick is one update: sample, edge, idle check, policy, interpolation,
// render and the convergence check, in that order.
func (c *Controller) tick() {
	c.ticks++

	snap := c.sampler.Sample()
	c.last = snap

	c.updateEdge(snap)
	if !snap.Pointer.OnBar {
		c.timeout = false
	}

	sig := c.signals(snap)
	if c.checkIdleStates(snap, sig) {
		sig = c.signals(snap)
	}
	c.checkFeedback(sig)

	d := policy.Decide(policy.Input{
		Settings:   c.settings.policy(),
		Signals:    sig,
		Appearance: c.settings.Appearance,
	})
	c.decision = d

	converged := c.animate(snap, d)
	c.render(d)
	c.converge(converged)
}

// updateEdge moves the spare boundary to the right end of the body zone
func (c *Controller) updateEdge(snap Snapshot) {
	body := snap.Slots[c.ordering.Slot(zone.Body)]

	origin := 0.0
	if body.Valid {
		origin = body.OriginX
	}
	c.edge = origin + c.zones[zone.Body].Length
}

func (c *Controller) measurement(snap Snapshot, role zone.Role) Measurement {
	return snap.Slots[c.ordering.Slot(role)]
}

// mouseSpare reports whether the pointer sits in the spare region
func (c *Controller) mouseSpare(snap Snapshot) bool {
	return !c.ignoring && snap.Pointer.OnBar && snap.Pointer.X <= c.edge
}

func (c *Controller) mouseOver(snap Snapshot, role zone.Role) bool {
	return snap.Pointer.OnBar && c.measurement(snap, role).Contains(snap.Pointer.X)
}

func (c *Controller) signals(snap Snapshot) policy.Signals {
	return policy.Signals{
		PopoverShown: snap.PopoverShown,
		OnBar:        snap.Pointer.OnBar,
		Spare:        c.mouseSpare(snap),
		OverBody:     c.mouseOver(snap, zone.Body),
		Held:         snap.Modifiers,
		Idling:       c.idling,
		TimedOut:     c.timeout,
	}
}

// checkIdleStates unidles when the pointer comes back to a separator from
// the spare region. It reports whether the idle flags changed.
func (c *Controller) checkIdleStates(snap Snapshot, sig policy.Signals) bool {
	if !sig.Spare || !c.idling.Any() {
		return false
	}
	if !c.mouseOver(snap, zone.Head) && !c.mouseOver(snap, zone.Body) && !c.mouseOver(snap, zone.Tail) {
		return false
	}

	c.Unidle()
	c.mouseWasSpareOrUnidled = false
	return true
}

// checkFeedback pulses once whenever the spare state flips while the
// hide area is folded and auto-show may reveal it.
func (c *Controller) checkFeedback(sig policy.Signals) {
	if !c.settings.Collapsed || c.idling.Any() || !c.settings.AutoShows || sig.PopoverShown {
		return
	}
	if c.mouseWasSpareOrUnidled == sig.Spare {
		return
	}

	c.mouseWasSpareOrUnidled = sig.Spare
	c.TriggerFeedback()
}

// animate moves every zone one step and reports whether all of them arrived
func (c *Controller) animate(snap Snapshot, d policy.Decision) bool {
	reduced := c.settings.ReduceMotion
	ratio := zone.Ratio(c.settings.Precision != policy.None && snap.Modifiers.Has(c.settings.Precision))
	converged := true

	head := c.zones[zone.Head]
	head.SetTargetAlpha(d.Head.TargetAlpha)
	converged = head.StepAlpha(reduced, ratio) && converged
	head.SetTargetLength(d.HeadLength)
	converged = head.StepLength(reduced, ratio) && converged

	for _, role := range []zone.Role{zone.Body, zone.Tail} {
		z := c.zones[role]
		zd, revealed := d.Body, c.settings.Appearance.Body.Width
		if role == zone.Tail {
			zd, revealed = d.Tail, c.settings.Appearance.Tail.Width
			if zd.Reason == policy.ReasonDisabled {
				revealed = 0
			}
		}

		z.SetTargetAlpha(zd.TargetAlpha)
		converged = z.StepAlpha(reduced, ratio) && converged

		m := c.measurement(snap, role)
		if !m.Valid {
			continue
		}

		converged = z.Reanchor(zone.Frame{
			OriginX:        m.OriginX,
			Collapses:      zd.Collapses,
			LeftEdge:       snap.LeftEdge,
			MaxLength:      snap.MaxLength,
			RevealedLength: revealed,
			Reduced:        reduced,
			Ratio:          ratio,
		}) && converged
	}

	return converged
}

func (c *Controller) render(d policy.Decision) {
	if c.renderer == nil {
		return
	}

	glyphs := [3]policy.Glyph{
		zone.Tail: c.settings.Appearance.Tail,
		zone.Body: c.settings.Appearance.Body,
		zone.Head: d.HeadGlyph,
	}

	for _, role := range zone.Roles {
		z := c.zones[role]
		c.renderer.Render(c.ordering.Slot(role), Frame{
			Role:     role,
			Length:   z.Length,
			Alpha:    z.Alpha,
			Glyph:    glyphs[role],
			Disabled: d.Disabled,
		})
	}
}

// converge stops the loop once the zones stayed converged for the grace window
func (c *Controller) converge(converged bool) {
	c.stop.Flag = converged
	if !converged {
		c.stop.Count = 0
		return
	}

	if c.stop.Count < c.settings.grace() {
		c.stop.Count++
		return
	}

	c.stop = stopAccumulator{}
	c.sleep()
}
