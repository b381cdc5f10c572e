package controller

import (
	"time"

	"github.com/chess10kp/veil/internal/feedback"
	"github.com/chess10kp/veil/internal/policy"
)

// Timing holds every interval the controller schedules
type Timing struct {
	Tick          time.Duration
	Watch         time.Duration
	Ignoring      time.Duration
	FeedbackDelay time.Duration
	FeedbackStep  time.Duration
}

// DefaultTiming returns the stock intervals
func DefaultTiming() Timing {
	return Timing{
		Tick:          16 * time.Millisecond,
		Watch:         100 * time.Millisecond,
		Ignoring:      500 * time.Millisecond,
		FeedbackDelay: 30 * time.Millisecond,
		FeedbackStep:  50 * time.Millisecond,
	}
}

// Settings configure a Controller
type Settings struct {
	Collapsed      bool
	AutoShows      bool
	AutoHideIcons  bool
	AlwaysHideArea bool
	ReduceMotion   bool

	Trigger     policy.Modifiers
	TriggerMode policy.TriggerMode
	// Precision slows animation while held
	Precision policy.Modifiers

	Appearance policy.Appearance
	Feedback   feedback.Intensity

	// IdleTimeout re-collapses an idled hide area. Zero keeps it open.
	IdleTimeout time.Duration

	Timing Timing
}

// DefaultSettings returns settings with the stock timing and no glyphs
func DefaultSettings() Settings {
	return Settings{
		Collapsed:      true,
		AutoShows:      true,
		AutoHideIcons:  true,
		AlwaysHideArea: true,
		Trigger:        policy.Option,
		TriggerMode:    policy.Any,
		Precision:      policy.Shift,
		Feedback:       feedback.Light,
		Timing:         DefaultTiming(),
	}
}

func (s Settings) policy() policy.Settings {
	return policy.Settings{
		Collapsed:      s.Collapsed,
		AutoShows:      s.AutoShows,
		AutoHideIcons:  s.AutoHideIcons,
		AlwaysHideArea: s.AlwaysHideArea,
		Trigger:        s.Trigger,
		Mode:           s.TriggerMode,
	}
}

// grace is how many extra converged ticks run before the loop stops
func (s Settings) grace() int {
	if s.ReduceMotion {
		return 10
	}
	return 3
}
