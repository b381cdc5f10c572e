package bar

import (
	"time"

	"github.com/gotk3/gotk3/glib"

	"github.com/chess10kp/veil/internal/sched"
)

// Scheduler runs callbacks on the GTK main loop
type Scheduler struct{}

type source struct {
	handle    glib.SourceHandle
	periodic  bool
	firing    bool
	done      bool
	cancelled bool
}

// Cancel removes the source. Cancelling from inside the callback is
// handled by the callback's return value.
func (s *source) Cancel() {
	if s.cancelled {
		return
	}
	s.cancelled = true
	if s.firing || s.done {
		return
	}
	glib.SourceRemove(s.handle)
}

func (Scheduler) After(d time.Duration, fn func()) sched.Task {
	return schedule(d, false, fn)
}

func (Scheduler) Every(d time.Duration, fn func()) sched.Task {
	return schedule(d, true, fn)
}

func schedule(d time.Duration, periodic bool, fn func()) *source {
	s := &source{periodic: periodic}

	s.handle = glib.TimeoutAdd(uint(sched.Interval(d).Milliseconds()), func() bool {
		if s.cancelled {
			s.done = true
			return false
		}

		s.firing = true
		fn()
		s.firing = false

		if !s.periodic || s.cancelled {
			s.done = true
			return false
		}
		return true
	})

	return s
}
