package sched

import "time"

// Debounce is a fire-once countdown. Triggering it again restarts the countdown.
type Debounce struct {
	sched Scheduler
	delay time.Duration
	fn    func()
	task  Task
}

// NewDebounce creates an idle debounce that calls fn after delay once triggered
func NewDebounce(s Scheduler, delay time.Duration, fn func()) *Debounce {
	return &Debounce{
		sched: s,
		delay: delay,
		fn:    fn,
	}
}

// Trigger (re)arms the countdown
func (d *Debounce) Trigger() {
	d.Cancel()

	var task Task
	task = d.sched.After(d.delay, func() {
		// a stale task may still fire if the scheduler raced a cancel
		if d.task != task {
			return
		}
		d.task = nil
		d.fn()
	})
	d.task = task
}

// Cancel disarms the countdown. It is a no-op when nothing is pending.
func (d *Debounce) Cancel() {
	Stop(&d.task)
}

// Pending reports whether the countdown is armed
func (d *Debounce) Pending() bool {
	return d.task != nil
}

// Delay returns the countdown length
func (d *Debounce) Delay() time.Duration {
	return d.delay
}

// SetDelay changes the countdown length for the next Trigger
func (d *Debounce) SetDelay(delay time.Duration) {
	d.delay = delay
}
