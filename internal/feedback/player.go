package feedback

import (
	"time"

	"github.com/chess10kp/veil/internal/sched"
)

// Player plays one pattern at a time, one beat per interval
type Player struct {
	sched     sched.Scheduler
	interval  time.Duration
	performer Performer

	steps []Step
	index int
	task  sched.Task
}

// NewPlayer creates a player. A nil performer discards every beat.
func NewPlayer(s sched.Scheduler, interval time.Duration, p Performer) *Player {
	if p == nil {
		p = Discard
	}
	return &Player{
		sched:     s,
		interval:  interval,
		performer: p,
	}
}

// Play starts pattern, cancelling whatever is playing. The first beat is
// performed immediately.
func (p *Player) Play(pattern []Step) {
	p.Stop()
	if len(pattern) == 0 {
		return
	}

	p.steps = append(p.steps[:0], pattern...)
	p.index = 0
	p.step()

	if p.index < len(p.steps) {
		p.task = p.sched.Every(p.interval, p.step)
	}
}

// Stop cancels the running pattern
func (p *Player) Stop() {
	sched.Stop(&p.task)
	p.index = len(p.steps)
}

// Playing reports whether beats are left to perform
func (p *Player) Playing() bool {
	return p.task != nil
}

// SetInterval changes the beat spacing for the next pattern
func (p *Player) SetInterval(interval time.Duration) {
	p.interval = interval
}

func (p *Player) step() {
	if p.index >= len(p.steps) {
		sched.Stop(&p.task)
		return
	}

	s := p.steps[p.index]
	p.index++
	if s != Gap {
		p.performer.Perform(s)
	}

	if p.index >= len(p.steps) {
		sched.Stop(&p.task)
	}
}
