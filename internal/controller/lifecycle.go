package controller

import (
	"log"

	"github.com/chess10kp/veil/internal/sched"
	"github.com/chess10kp/veil/internal/zone"
)

// Wake starts the tick loop if it is idle. The slot ordering is re-read
// here, never while the loop runs.
func (c *Controller) Wake() {
	if !c.running || c.ticker != nil {
		return
	}

	c.resort()
	c.stop = stopAccumulator{}
	c.ticker = c.sched.Every(c.settings.Timing.Tick, c.tick)
}

// sleep tears the tick loop down
func (c *Controller) sleep() {
	sched.Stop(&c.ticker)
}

// resort assigns roles to slots by their on-screen order. Nothing changes
// until every slot has been laid out.
func (c *Controller) resort() {
	snap := c.sampler.Sample()

	var placements [3]zone.Placement
	for i, m := range snap.Slots {
		if !m.Valid {
			return
		}
		placements[i] = zone.Placement{Shown: m.Shown, OriginX: m.OriginX, HasX: true}
	}

	ordering := zone.SortOrdering(placements)
	if ordering == c.ordering {
		return
	}

	log.Printf("[CONTROLLER] Ordering changed %v -> %v", c.ordering.Ints(), ordering.Ints())
	c.ordering = ordering
	for _, z := range c.zones {
		z.Reset()
	}

	if err := c.store.SaveOrdering(ordering); err != nil {
		log.Printf("[CONTROLLER] Failed to save ordering: %v", err)
	}
}

func (c *Controller) startWatcher() {
	sched.Stop(&c.watcher)
	c.watcher = c.sched.Every(c.settings.Timing.Watch, c.watch)
}

// watch polls the cheap signals and wakes the loop when any of them changed
func (c *Controller) watch() {
	snap := c.sampler.Sample()

	if !snap.Pointer.OnBar {
		c.timeout = false
	}

	now := watchState{
		onBar:     snap.Pointer.OnBar,
		spare:     c.mouseSpare(snap),
		triggers:  c.settings.TriggerMode.Triggers(c.settings.Trigger, snap.Modifiers),
		modifiers: snap.Modifiers,
		popover:   snap.PopoverShown,
	}
	if now == c.was {
		return
	}

	c.was = now
	c.Wake()
}

// armIdleTimer (re)starts the idle timeout. Zero timeout idles forever.
func (c *Controller) armIdleTimer() {
	sched.Stop(&c.idleTimer)
	if c.settings.IdleTimeout <= 0 {
		return
	}

	c.idleTimer = c.sched.After(c.settings.IdleTimeout, c.idleTimedOut)
}

func (c *Controller) idleTimedOut() {
	c.idleTimer = nil
	c.idling.Hide = false
	c.idling.AlwaysHide = false
	c.timeout = true

	log.Printf("[CONTROLLER] Idle timeout after %v", c.settings.IdleTimeout)
	c.Wake()
}

// presentFeedback plays the pattern unless the pointer is dragging or timed out
func (c *Controller) presentFeedback() {
	if c.timeout || (c.last.Dragging && c.last.Pointer.OnBar) {
		return
	}
	c.player.Play(c.settings.Feedback.Pattern())
}

func (c *Controller) stopIgnoring() {
	c.ignoring = false
	c.Wake()
}
