package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chess10kp/veil/internal/feedback"
	"github.com/chess10kp/veil/internal/policy"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected default config to be valid, got: %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Theme.Name != DefaultConfig.Theme.Name {
		t.Errorf("Expected default theme %q, got %q", DefaultConfig.Theme.Name, cfg.Theme.Name)
	}
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[behavior]
reduce_motion = true

[trigger]
modifiers = ["ctrl", "super"]
mode = "all"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadAndValidateConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if !cfg.Behavior.ReduceMotion {
		t.Error("Expected reduce_motion to be read")
	}
	if cfg.Timing.TickMs != 16 {
		t.Errorf("Expected default tick_ms 16, got %d", cfg.Timing.TickMs)
	}
	if len(DefaultConfig.Trigger.Modifiers) != 1 || DefaultConfig.Trigger.Modifiers[0] != "alt" {
		t.Errorf("Expected DefaultConfig to stay untouched, got %v", DefaultConfig.Trigger.Modifiers)
	}
}

func TestLoadConfigRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[bar\nheight = "), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if err := ValidateConfig(path); err == nil {
		t.Error("Expected malformed TOML to fail")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := defaultConfig()
	cfg.Theme.Name = "ripple"
	cfg.Timing.IdleTimeout = 120

	if err := SaveConfig(&cfg, path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadAndValidateConfig(path)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	if loaded.Theme.Name != "ripple" || loaded.Timing.IdleTimeout != 120 {
		t.Errorf("Expected saved values back, got theme=%q idle_timeout=%d", loaded.Theme.Name, loaded.Timing.IdleTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"bar too short", func(c *Config) { c.Bar.Height = 4 }, "invalid bar height"},
		{"max length out of range", func(c *Config) { c.Bar.MaxLength = 50 }, "invalid max_length"},
		{"empty namespace", func(c *Config) { c.Bar.Namespace = "" }, "namespace"},
		{"unknown modifier", func(c *Config) { c.Trigger.Modifiers = []string{"hyper"} }, "invalid trigger modifiers"},
		{"shift as trigger", func(c *Config) { c.Trigger.Modifiers = []string{"shift"} }, "reserved for precision"},
		{"bad mode", func(c *Config) { c.Trigger.Mode = "most" }, "invalid trigger mode"},
		{"bad precision", func(c *Config) { c.Trigger.Precision = "capslock" }, "invalid precision key"},
		{"zero tick", func(c *Config) { c.Timing.TickMs = 0 }, "invalid tick_ms"},
		{"odd idle timeout", func(c *Config) { c.Timing.IdleTimeout = 7 }, "invalid idle_timeout"},
		{"bad intensity", func(c *Config) { c.Feedback.Intensity = "loud" }, "invalid feedback intensity"},
		{"unknown theme", func(c *Config) { c.Theme.Name = "neon" }, "unknown theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestIdleTimeoutsAccepted(t *testing.T) {
	for _, v := range IdleTimeouts {
		cfg := defaultConfig()
		cfg.Timing.IdleTimeout = v
		if err := cfg.Validate(); err != nil {
			t.Errorf("Expected idle_timeout %d to be valid, got %v", v, err)
		}
	}
}

func TestEmptyTriggerIsValid(t *testing.T) {
	cfg := defaultConfig()
	cfg.Trigger.Modifiers = nil
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected empty trigger set to be valid, got %v", err)
	}
}

func TestLookupThemeSuggests(t *testing.T) {
	_, err := LookupTheme("rppl")
	if err == nil {
		t.Fatal("Expected unknown theme error")
	}
	if !strings.Contains(err.Error(), `did you mean "ripple"`) {
		t.Errorf("Expected a suggestion for ripple, got %v", err)
	}

	_, err = LookupTheme("zzz")
	if err == nil || !strings.Contains(err.Error(), "must be one of") {
		t.Errorf("Expected the theme list, got %v", err)
	}

	if theme, err := LookupTheme("Static"); err != nil || theme.AutoHideIcons {
		t.Errorf("Expected case-insensitive lookup of static, got %+v (err=%v)", theme, err)
	}
}

func TestSettings(t *testing.T) {
	cfg := defaultConfig()
	cfg.Trigger.Modifiers = []string{"ctrl", "alt"}
	cfg.Trigger.Mode = "all"
	cfg.Feedback.Intensity = "heavy"
	cfg.Timing.IdleTimeout = 0

	s, err := cfg.Settings(true)
	if err != nil {
		t.Fatalf("Failed to build settings: %v", err)
	}

	if !s.Collapsed {
		t.Error("Expected collapsed to come from the caller")
	}
	if s.Trigger != policy.Control|policy.Option || s.TriggerMode != policy.All {
		t.Errorf("Expected ctrl+alt all, got %s %s", s.Trigger, s.TriggerMode)
	}
	if s.Precision != policy.Shift {
		t.Errorf("Expected shift precision, got %s", s.Precision)
	}
	if s.Feedback != feedback.Heavy {
		t.Errorf("Expected heavy feedback, got %s", s.Feedback)
	}
	if s.IdleTimeout != 0 {
		t.Errorf("Expected no idle timeout, got %v", s.IdleTimeout)
	}
	if s.Timing.Tick != 16*time.Millisecond || s.Timing.Ignoring != 500*time.Millisecond {
		t.Errorf("Expected default timing, got %+v", s.Timing)
	}
	if !s.AutoHideIcons || s.Appearance.HeadCollapsed.Icon != "pan-start-symbolic" {
		t.Errorf("Expected the abyss theme, got %+v", s.Appearance)
	}

	cfg.Theme.Name = "nope"
	if _, err := cfg.Settings(false); err == nil {
		t.Error("Expected invalid config to fail")
	}
}

func TestDefaultsExpandsPaths(t *testing.T) {
	cfg := Defaults()
	for name, path := range map[string]string{"state": cfg.StatePath, "log": cfg.LogPath} {
		if strings.HasPrefix(path, "~") {
			t.Errorf("Expected %s path to be expanded, got %q", name, path)
		}
	}
	if !strings.HasPrefix(DefaultConfig.LogPath, "~") {
		t.Errorf("Expected DefaultConfig to stay unexpanded, got %q", DefaultConfig.LogPath)
	}
}

func TestLoadConfigReadsBarItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[bar.items]
visible = ["clock", "battery"]
hidden = []
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadAndValidateConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if got := strings.Join(cfg.Bar.Items.Visible, ","); got != "clock,battery" {
		t.Errorf("Expected visible items to be read, got %q", got)
	}
	if len(cfg.Bar.Items.Hidden) != 0 {
		t.Errorf("Expected hidden items to be cleared, got %v", cfg.Bar.Items.Hidden)
	}
	if len(cfg.Bar.Items.AlwaysHidden) != 1 {
		t.Errorf("Expected always hidden items to keep the default, got %v", cfg.Bar.Items.AlwaysHidden)
	}
}
