// Package sched provides the cancellable scheduled callbacks the controller runs on.
//
// Every callback of a Scheduler runs on a single thread of control. The GTK
// implementation lives in internal/bar, Manual is a virtual clock for tests
// and the terminal preview.
package sched

import "time"

// Task is a handle to a scheduled callback
type Task interface {
	// Cancel stops future runs. It is idempotent and safe to call from
	// inside the task's own callback.
	Cancel()
}

// Scheduler runs callbacks after a delay or on an interval
type Scheduler interface {
	After(d time.Duration, fn func()) Task
	Every(d time.Duration, fn func()) Task
}

// MinInterval is the shortest interval Every accepts
const MinInterval = time.Millisecond

// Interval clamps d to MinInterval
func Interval(d time.Duration) time.Duration {
	if d < MinInterval {
		return MinInterval
	}
	return d
}

// Stop cancels task if it is set and clears the handle
func Stop(task *Task) {
	if *task == nil {
		return
	}
	(*task).Cancel()
	*task = nil
}
