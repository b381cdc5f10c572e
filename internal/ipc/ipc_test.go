package ipc

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/chess10kp/veil/internal/controller"
	"github.com/chess10kp/veil/internal/policy"
)

type fakeTarget struct {
	mu        sync.Mutex
	calls     []string
	collapsed bool
	idling    policy.Idling
}

func (f *fakeTarget) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeTarget) TickNow()         { f.record("tick") }
func (f *fakeTarget) Wake()            { f.record("wake") }
func (f *fakeTarget) TriggerFeedback() { f.record("feedback") }
func (f *fakeTarget) TriggerIgnoring() { f.record("ignore") }
func (f *fakeTarget) Edge() float64    { return 884.5 }

func (f *fakeTarget) IdleHide() {
	f.record("idle hide")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.idling.Hide = true
}

func (f *fakeTarget) IdleAlwaysHide() {
	f.record("idle always")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.idling.AlwaysHide = true
}

func (f *fakeTarget) Unidle() {
	f.record("unidle")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.idling = policy.Idling{}
}

func (f *fakeTarget) Status() controller.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return controller.Status{Running: true, Collapsed: f.collapsed, Idling: f.idling, Ordering: []int{0, 1, 2}}
}

func (f *fakeTarget) SetCollapsed(collapsed bool) {
	f.record("set collapsed")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collapsed = collapsed
}

func (f *fakeTarget) ToggleCollapsed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collapsed = !f.collapsed
	return f.collapsed
}

func TestCommands(t *testing.T) {
	target := &fakeTarget{}
	cmds := NewCommands(target, nil)

	tests := []struct {
		line string
		want string
	}{
		{"tick", "ok"},
		{"WAKE", "ok"},
		{"feedback", "ok"},
		{"ignore", "ok"},
		{"edge", "ok 884.5"},
		{"collapse", "ok"},
		{"toggle", "ok collapsed=false"},
		{"idle hide", "ok"},
		{"idle always", "ok"},
		{"unidle", "ok"},
		{"idle", "error: idle needs an area: hide or always"},
		{"idle sometimes", "error: unknown idle area: sometimes (must be hide or always)"},
		{"launch", "error: unknown command: launch"},
		{"   ", "error: empty command"},
	}

	for _, tt := range tests {
		if got := cmds.Handle(tt.line); got != tt.want {
			t.Errorf("Handle(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestStatusIsJSON(t *testing.T) {
	target := &fakeTarget{collapsed: true}
	reply := NewCommands(target, nil).Handle("status")

	payload, ok := strings.CutPrefix(reply, "ok ")
	if !ok {
		t.Fatalf("Expected ok reply, got %q", reply)
	}

	var status controller.Status
	if err := json.Unmarshal([]byte(payload), &status); err != nil {
		t.Fatalf("Failed to decode status: %v", err)
	}
	if !status.Collapsed || !status.Running {
		t.Errorf("Expected running collapsed status, got %+v", status)
	}
}

func TestRunnerIsUsed(t *testing.T) {
	target := &fakeTarget{}
	ran := 0
	cmds := NewCommands(target, func(fn func()) {
		ran++
		fn()
	})

	cmds.Handle("wake")
	cmds.Handle("unidle")

	if ran != 2 {
		t.Errorf("Expected every command to go through the runner, got %d", ran)
	}
}

func TestServerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "veil.sock")
	target := &fakeTarget{}
	server := NewServer(path, NewCommands(target, nil))

	if err := server.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	defer server.Stop()

	if err := server.Start(); err == nil {
		t.Error("Expected second start to fail")
	}

	reply, err := Send(path, "edge")
	if err != nil {
		t.Fatalf("Failed to send: %v", err)
	}
	if reply != "884.5" {
		t.Errorf("Expected edge 884.5, got %q", reply)
	}

	if _, err := Send(path, "idle hide"); err != nil {
		t.Fatalf("Failed to send: %v", err)
	}
	if !target.Status().Idling.Hide {
		t.Error("Expected idle hide to reach the target")
	}

	if _, err := Send(path, "bogus"); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("Expected unknown command error, got %v", err)
	}
}

func TestServerStopRemovesSocket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "veil.sock")
	server := NewServer(path, HandlerFunc(func(string) string { return "ok" }))

	if err := server.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	if err := server.Stop(); err != nil {
		t.Fatalf("Failed to stop server: %v", err)
	}
	if err := server.Stop(); err != nil {
		t.Errorf("Expected second stop to be a no-op, got %v", err)
	}

	if _, err := Send(path, "tick"); err == nil {
		t.Error("Expected send to fail after stop")
	}
}
