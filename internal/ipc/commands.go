package ipc

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chess10kp/veil/internal/controller"
)

// Target is the part of the controller reachable over the socket
type Target interface {
	TickNow()
	Wake()
	TriggerFeedback()
	TriggerIgnoring()
	Edge() float64
	Status() controller.Status
	SetCollapsed(collapsed bool)
	ToggleCollapsed() bool
	IdleHide()
	IdleAlwaysHide()
	Unidle()
}

// Runner runs fn on the thread that owns the controller and returns once
// fn has finished.
type Runner func(fn func())

// Direct runs fn on the calling goroutine
func Direct(fn func()) {
	fn()
}

// Commands turns protocol lines into controller calls
type Commands struct {
	target Target
	run    Runner
}

// NewCommands creates a Handler for target. A nil runner calls target directly.
func NewCommands(target Target, run Runner) *Commands {
	if run == nil {
		run = Direct
	}
	return &Commands{target: target, run: run}
}

// Usage lists the accepted commands
var Usage = []string{
	"tick", "wake", "feedback", "ignore", "edge", "status",
	"collapse", "expand", "toggle", "idle hide", "idle always", "unidle",
}

// Handle executes one command line and returns the reply line
func (c *Commands) Handle(line string) string {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return errorReply(fmt.Errorf("empty command"))
	}

	var reply string
	var err error

	c.run(func() {
		reply, err = c.execute(fields)
	})

	if err != nil {
		return errorReply(err)
	}
	if reply == "" {
		return "ok"
	}
	return "ok " + reply
}

func (c *Commands) execute(fields []string) (string, error) {
	t := c.target

	switch fields[0] {
	case "tick":
		t.TickNow()
	case "wake":
		t.Wake()
	case "feedback":
		t.TriggerFeedback()
	case "ignore":
		t.TriggerIgnoring()
	case "edge":
		return fmt.Sprintf("%g", t.Edge()), nil
	case "status":
		data, err := json.Marshal(t.Status())
		if err != nil {
			return "", fmt.Errorf("failed to encode status: %w", err)
		}
		return string(data), nil
	case "collapse":
		t.SetCollapsed(true)
	case "expand":
		t.SetCollapsed(false)
	case "toggle":
		return fmt.Sprintf("collapsed=%t", t.ToggleCollapsed()), nil
	case "idle":
		if len(fields) < 2 {
			return "", fmt.Errorf("idle needs an area: hide or always")
		}
		switch fields[1] {
		case "hide":
			t.IdleHide()
		case "always":
			t.IdleAlwaysHide()
		default:
			return "", fmt.Errorf("unknown idle area: %s (must be hide or always)", fields[1])
		}
	case "unidle":
		t.Unidle()
	default:
		return "", fmt.Errorf("unknown command: %s", fields[0])
	}

	return "", nil
}

func errorReply(err error) string {
	return "error: " + err.Error()
}
