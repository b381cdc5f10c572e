package sched

import "time"

// Manual is a virtual-clock Scheduler. Time only moves on Advance.
type Manual struct {
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	due       time.Duration
	every     time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

func (t *manualTask) Cancel() {
	t.cancelled = true
}

// NewManual creates a virtual clock at zero
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the virtual time elapsed since creation
func (m *Manual) Now() time.Duration {
	return m.now
}

// After schedules fn once, d from now
func (m *Manual) After(d time.Duration, fn func()) Task {
	if d < 0 {
		d = 0
	}
	return m.add(d, 0, fn)
}

// Every schedules fn every d, starting d from now
func (m *Manual) Every(d time.Duration, fn func()) Task {
	d = Interval(d)
	return m.add(d, d, fn)
}

func (m *Manual) add(delay, every time.Duration, fn func()) Task {
	m.seq++
	t := &manualTask{
		due:   m.now + delay,
		every: every,
		seq:   m.seq,
		fn:    fn,
	}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d, running every callback that falls
// due in order. It returns how many callbacks ran.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now + d
	fired := 0

	for {
		t := m.next(target)
		if t == nil {
			break
		}

		m.now = t.due
		if t.every > 0 {
			t.due += t.every
		} else {
			t.cancelled = true
		}

		t.fn()
		fired++
	}

	m.now = target
	m.prune()
	return fired
}

// Pending returns the number of live tasks
func (m *Manual) Pending() int {
	m.prune()
	return len(m.tasks)
}

func (m *Manual) next(target time.Duration) *manualTask {
	var best *manualTask
	for _, t := range m.tasks {
		if t.cancelled || t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (m *Manual) prune() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.tasks); i++ {
		m.tasks[i] = nil
	}
	m.tasks = live
}
