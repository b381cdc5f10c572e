// Package controller runs the tick loop that folds and unfolds the bar.
//
// A Controller owns three zones and every flag that feeds the visibility
// policy. All of its methods must be called from the thread its Scheduler
// runs callbacks on, so no locking is done here.
package controller

import (
	"errors"
	"log"

	"github.com/chess10kp/veil/internal/feedback"
	"github.com/chess10kp/veil/internal/policy"
	"github.com/chess10kp/veil/internal/sched"
	"github.com/chess10kp/veil/internal/zone"
)

// ErrAlreadyRunning is returned by Start on a running controller
var ErrAlreadyRunning = errors.New("controller is already running")

// stopAccumulator counts converged ticks. Flag is recomputed every tick,
// Count only grows while Flag stays true.
type stopAccumulator struct {
	Flag  bool
	Count int
}

// watchState is the memo of cheap signals the watch loop compares against
type watchState struct {
	onBar     bool
	spare     bool
	triggers  bool
	modifiers policy.Modifiers
	popover   bool
}

// Deps are the collaborators of a Controller
type Deps struct {
	Sampler   Sampler
	Renderer  Renderer
	Performer feedback.Performer
	Store     StateStore
	Scheduler sched.Scheduler
}

// Controller reconciles zone state with the policy on every tick
type Controller struct {
	sampler  Sampler
	renderer Renderer
	store    StateStore
	sched    sched.Scheduler
	player   *feedback.Player

	settings Settings
	zones    [3]*zone.Zone
	ordering zone.Ordering

	edge                   float64
	idling                 policy.Idling
	ignoring               bool
	timeout                bool
	mouseWasSpareOrUnidled bool
	stop                   stopAccumulator

	last     Snapshot
	decision policy.Decision
	was      watchState
	ticks    uint64
	running  bool

	ticker    sched.Task
	watcher   sched.Task
	idleTimer sched.Task

	feedbackDebounce *sched.Debounce
	ignoringDebounce *sched.Debounce
}

// New creates a stopped controller. An invalid ordering falls back to identity.
func New(settings Settings, ordering zone.Ordering, deps Deps) *Controller {
	if !ordering.Valid() {
		log.Printf("[CONTROLLER] Invalid ordering %v, using identity", ordering)
		ordering = zone.Identity()
	}

	store := deps.Store
	if store == nil {
		store = discardStore{}
	}

	c := &Controller{
		sampler:  deps.Sampler,
		renderer: deps.Renderer,
		store:    store,
		sched:    deps.Scheduler,
		settings: settings,
		ordering: ordering,
	}

	for _, role := range zone.Roles {
		c.zones[role] = zone.New(role)
	}

	c.player = feedback.NewPlayer(deps.Scheduler, settings.Timing.FeedbackStep, deps.Performer)
	c.feedbackDebounce = sched.NewDebounce(deps.Scheduler, settings.Timing.FeedbackDelay, c.presentFeedback)
	c.ignoringDebounce = sched.NewDebounce(deps.Scheduler, settings.Timing.Ignoring, c.stopIgnoring)

	return c
}

// Start begins watching the environment and runs the tick loop until it converges
func (c *Controller) Start() error {
	if c.running {
		return ErrAlreadyRunning
	}

	c.running = true
	c.startWatcher()
	c.Wake()

	log.Printf("[CONTROLLER] Started (tick=%v, watch=%v)", c.settings.Timing.Tick, c.settings.Timing.Watch)
	return nil
}

// Stop cancels every timer. It is safe to call at any point, including
// from inside a tick, and is a no-op on a stopped controller.
func (c *Controller) Stop() {
	if !c.running {
		return
	}
	c.running = false

	sched.Stop(&c.ticker)
	sched.Stop(&c.watcher)
	sched.Stop(&c.idleTimer)
	c.feedbackDebounce.Cancel()
	c.ignoringDebounce.Cancel()
	c.player.Stop()
	c.stop = stopAccumulator{}

	log.Printf("[CONTROLLER] Stopped after %d ticks", c.ticks)
}

// Running reports whether Start has been called without a matching Stop
func (c *Controller) Running() bool {
	return c.running
}

// Active reports whether the tick loop is running
func (c *Controller) Active() bool {
	return c.ticker != nil
}

// Edge returns the x boundary of the spare region
func (c *Controller) Edge() float64 {
	return c.edge
}

// Ordering returns the current role -> slot mapping
func (c *Controller) Ordering() zone.Ordering {
	return c.ordering
}

// Settings returns the current settings
func (c *Controller) Settings() Settings {
	return c.settings
}

// Decision returns the policy outcome of the last tick
func (c *Controller) Decision() policy.Decision {
	return c.decision
}

// Zones returns a copy of every zone, indexed by role
func (c *Controller) Zones() [3]zone.Snapshot {
	var out [3]zone.Snapshot
	for _, role := range zone.Roles {
		out[role] = c.zones[role].Snapshot()
	}
	return out
}

// Apply swaps in new settings and wakes the loop so they take effect
func (c *Controller) Apply(settings Settings) {
	old := c.settings
	c.settings = settings

	c.feedbackDebounce.SetDelay(settings.Timing.FeedbackDelay)
	c.ignoringDebounce.SetDelay(settings.Timing.Ignoring)
	c.player.SetInterval(settings.Timing.FeedbackStep)

	if old.IdleTimeout != settings.IdleTimeout && c.idling.Any() {
		c.armIdleTimer()
	}

	if c.running {
		if old.Timing.Watch != settings.Timing.Watch {
			c.startWatcher()
		}
		if old.Timing.Tick != settings.Timing.Tick && c.ticker != nil {
			sched.Stop(&c.ticker)
			c.ticker = c.sched.Every(settings.Timing.Tick, c.tick)
		}
	}

	c.Wake()
}

// SetCollapsed folds or unfolds the hide area and persists the choice
func (c *Controller) SetCollapsed(collapsed bool) {
	if c.settings.Collapsed != collapsed {
		c.settings.Collapsed = collapsed
		if err := c.store.SaveCollapsed(collapsed); err != nil {
			log.Printf("[CONTROLLER] Failed to save collapsed state: %v", err)
		}
	}

	c.TriggerIgnoring()
	c.Wake()
}

// ToggleCollapsed flips the collapsed setting and returns the new value
func (c *Controller) ToggleCollapsed() bool {
	c.SetCollapsed(!c.settings.Collapsed)
	return c.settings.Collapsed
}

// IdleHide reveals the hide area until the pointer unidles it or the idle timeout fires
func (c *Controller) IdleHide() {
	c.idling.Hide = true
	c.armIdleTimer()
	c.Wake()
}

// IdleAlwaysHide reveals both hidden areas
func (c *Controller) IdleAlwaysHide() {
	c.idling = policy.Idling{Hide: true, AlwaysHide: true}
	c.armIdleTimer()
	c.Wake()
}

// Unidle clears both idle flags
func (c *Controller) Unidle() {
	c.idling = policy.Idling{}
	sched.Stop(&c.idleTimer)
	c.Wake()
}

// Idling returns the idle flags
func (c *Controller) Idling() policy.Idling {
	return c.idling
}

// TriggerFeedback restarts the feedback countdown
func (c *Controller) TriggerFeedback() {
	c.feedbackDebounce.Trigger()
}

// TriggerIgnoring suppresses pointer reveals for the ignoring cool-down
func (c *Controller) TriggerIgnoring() {
	c.ignoring = true
	c.ignoringDebounce.Trigger()
}

// Status is a serializable summary of the controller
type Status struct {
	Running   bool            `json:"running"`
	Active    bool            `json:"active"`
	Ticks     uint64          `json:"ticks"`
	Edge      float64         `json:"edge"`
	Collapsed bool            `json:"collapsed"`
	Idling    policy.Idling   `json:"idling"`
	Ignoring  bool            `json:"ignoring"`
	Timeout   bool            `json:"timeout"`
	Ordering  []int           `json:"ordering"`
	Zones     []zone.Snapshot `json:"zones"`
}

// Status summarizes the current state
func (c *Controller) Status() Status {
	zones := c.Zones()
	return Status{
		Running:   c.running,
		Active:    c.Active(),
		Ticks:     c.ticks,
		Edge:      c.edge,
		Collapsed: c.settings.Collapsed,
		Idling:    c.idling,
		Ignoring:  c.ignoring,
		Timeout:   c.timeout,
		Ordering:  c.ordering.Ints(),
		Zones:     zones[:],
	}
}
