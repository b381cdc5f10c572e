package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/chess10kp/veil/internal/controller"
	"github.com/chess10kp/veil/internal/feedback"
	"github.com/chess10kp/veil/internal/policy"
)

const DefaultPath = "~/.config/veil/config.toml"

type Config struct {
	SocketPath string         `toml:"socket_path"`
	StatePath  string         `toml:"state_path"`
	LogPath    string         `toml:"log_path"`
	Bar        BarConfig      `toml:"bar"`
	Behavior   BehaviorConfig `toml:"behavior"`
	Trigger    TriggerConfig  `toml:"trigger"`
	Timing     TimingConfig   `toml:"timing"`
	Feedback   FeedbackConfig `toml:"feedback"`
	Theme      ThemeConfig    `toml:"theme"`
}

type BarConfig struct {
	Height    int    `toml:"height"`
	LeftEdge  int    `toml:"left_edge"`
	Output    string `toml:"output"`
	Namespace string `toml:"namespace"`
	// MaxLength overrides the output width. Zero asks sway.
	MaxLength      int `toml:"max_length"`
	GlyphSize      int `toml:"glyph_size"`
	GlyphCacheSize int `toml:"glyph_cache_size"`

	// CSSPath points at extra styles loaded over the built-in ones
	CSSPath string      `toml:"css_path"`
	Items   ItemsConfig `toml:"items"`
}

// ItemsConfig holds the label text of each bar section, right to left
type ItemsConfig struct {
	Visible      []string `toml:"visible"`
	Hidden       []string `toml:"hidden"`
	AlwaysHidden []string `toml:"always_hidden"`
}

type BehaviorConfig struct {
	AutoShows      bool `toml:"auto_shows"`
	ReduceMotion   bool `toml:"reduce_motion"`
	AlwaysHideArea bool `toml:"always_hide_area"`
}

type TriggerConfig struct {
	Modifiers []string `toml:"modifiers"`
	Mode      string   `toml:"mode"`
	Precision string   `toml:"precision"`
}

type TimingConfig struct {
	TickMs          int `toml:"tick_ms"`
	WatchMs         int `toml:"watch_ms"`
	IgnoringMs      int `toml:"ignoring_ms"`
	FeedbackDelayMs int `toml:"feedback_delay_ms"`
	FeedbackStepMs  int `toml:"feedback_step_ms"`
	// IdleTimeout is in seconds, 0 keeps an idled area open forever
	IdleTimeout int `toml:"idle_timeout"`
}

type FeedbackConfig struct {
	Intensity string `toml:"intensity"`
}

type ThemeConfig struct {
	Name string `toml:"name"`
}

// IdleTimeouts are the accepted idle_timeout values in seconds
var IdleTimeouts = []int{0, 5, 10, 15, 30, 45, 60, 120, 180, 300, 600}

var DefaultConfig = defaultConfig()

func defaultConfig() Config {
	return Config{
		SocketPath: "/tmp/veil_socket",
		StatePath:  "~/.local/state/veil/state.toml",
		LogPath:    "~/.cache/veil/veil.log",
		Bar: BarConfig{
			Height:         32,
			LeftEdge:       0,
			Namespace:      "veil",
			GlyphSize:      16,
			GlyphCacheSize: 32,
			Items: ItemsConfig{
				Visible:      []string{"veil"},
				Hidden:       []string{"hidden"},
				AlwaysHidden: []string{"always hidden"},
			},
		},
		Behavior: BehaviorConfig{
			AutoShows:      true,
			ReduceMotion:   false,
			AlwaysHideArea: true,
		},
		Trigger: TriggerConfig{
			Modifiers: []string{"alt"},
			Mode:      "any",
			Precision: "shift",
		},
		Timing: TimingConfig{
			TickMs:          16,
			WatchMs:         100,
			IgnoringMs:      500,
			FeedbackDelayMs: 30,
			FeedbackStepMs:  50,
			IdleTimeout:     30,
		},
		Feedback: FeedbackConfig{
			Intensity: "light",
		},
		Theme: ThemeConfig{
			Name: "abyss",
		},
	}
}

// Defaults returns a fresh default config with its paths expanded
func Defaults() *Config {
	cfg := defaultConfig()
	cfg.expandPaths()
	return &cfg
}

func LoadConfig(path string) (*Config, error) {
	expandedPath := expandPath(path)

	if _, err := os.Stat(expandedPath); os.IsNotExist(err) {
		return Defaults(), nil
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		return nil, err
	}

	// missing keys keep their defaults
	cfg := defaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.expandPaths()
	return &cfg, nil
}

func LoadAndValidateConfig(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) expandPaths() {
	if c.Bar.CSSPath != "" {
		c.Bar.CSSPath = expandPath(c.Bar.CSSPath)
	}
	c.SocketPath = expandPath(c.SocketPath)
	c.StatePath = expandPath(c.StatePath)
	c.LogPath = expandPath(c.LogPath)
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		usr, err := user.Current()
		if err == nil {
			return filepath.Join(usr.HomeDir, path[1:])
		}
	}
	return path
}

func SaveConfig(cfg *Config, path string) error {
	expandedPath := expandPath(path)

	dir := filepath.Dir(expandedPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(expandedPath, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.validateBar(); err != nil {
		return err
	}
	if err := c.validateTrigger(); err != nil {
		return err
	}
	if err := c.validateTiming(); err != nil {
		return err
	}
	if _, err := feedback.ParseIntensity(c.Feedback.Intensity); err != nil {
		return err
	}
	if _, err := LookupTheme(c.Theme.Name); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateBar() error {
	b := c.Bar
	if b.Height < 10 || b.Height > 100 {
		return fmt.Errorf("invalid bar height: %d (must be 10-100px)", b.Height)
	}
	if b.LeftEdge < 0 || b.LeftEdge > 10000 {
		return fmt.Errorf("invalid left_edge: %d (must be 0-10000px)", b.LeftEdge)
	}
	if b.MaxLength != 0 && (b.MaxLength < 100 || b.MaxLength > 100000) {
		return fmt.Errorf("invalid max_length: %d (must be 0 or 100-100000px)", b.MaxLength)
	}
	if b.GlyphSize < 8 || b.GlyphSize > 128 {
		return fmt.Errorf("invalid glyph_size: %d (must be 8-128px)", b.GlyphSize)
	}
	if b.GlyphCacheSize < 1 || b.GlyphCacheSize > 1000 {
		return fmt.Errorf("invalid glyph_cache_size: %d (must be 1-1000)", b.GlyphCacheSize)
	}
	if b.Namespace == "" {
		return fmt.Errorf("bar namespace must not be empty")
	}
	return nil
}

func (c *Config) validateTrigger() error {
	t := c.Trigger
	mods, err := policy.ParseModifiers(t.Modifiers)
	if err != nil {
		return fmt.Errorf("invalid trigger modifiers: %w", err)
	}
	if mods.Intersects(policy.Shift) {
		return fmt.Errorf("invalid trigger modifiers: shift is reserved for precision")
	}
	if _, err := policy.ParseTriggerMode(t.Mode); err != nil {
		return err
	}
	if _, err := parsePrecision(t.Precision); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTiming() error {
	t := c.Timing
	if t.TickMs < 1 || t.TickMs > 1000 {
		return fmt.Errorf("invalid tick_ms: %d (must be 1-1000ms)", t.TickMs)
	}
	if t.WatchMs < 10 || t.WatchMs > 5000 {
		return fmt.Errorf("invalid watch_ms: %d (must be 10-5000ms)", t.WatchMs)
	}
	if t.IgnoringMs < 0 || t.IgnoringMs > 10000 {
		return fmt.Errorf("invalid ignoring_ms: %d (must be 0-10000ms)", t.IgnoringMs)
	}
	if t.FeedbackDelayMs < 0 || t.FeedbackDelayMs > 2000 {
		return fmt.Errorf("invalid feedback_delay_ms: %d (must be 0-2000ms)", t.FeedbackDelayMs)
	}
	if t.FeedbackStepMs < 10 || t.FeedbackStepMs > 1000 {
		return fmt.Errorf("invalid feedback_step_ms: %d (must be 10-1000ms)", t.FeedbackStepMs)
	}

	for _, v := range IdleTimeouts {
		if t.IdleTimeout == v {
			return nil
		}
	}
	return fmt.Errorf("invalid idle_timeout: %d (must be one of %v seconds)", t.IdleTimeout, IdleTimeouts)
}

// parsePrecision accepts a single modifier name or "none"
func parsePrecision(name string) (policy.Modifiers, error) {
	if strings.EqualFold(name, "none") || name == "" {
		return policy.None, nil
	}
	mods, err := policy.ParseModifiers([]string{name})
	if err != nil {
		return policy.None, fmt.Errorf("invalid precision key: %w", err)
	}
	return mods, nil
}

// Settings converts the config into controller settings.
// The collapsed flag lives in the state file, not the config.
func (c *Config) Settings(collapsed bool) (controller.Settings, error) {
	if err := c.Validate(); err != nil {
		return controller.Settings{}, err
	}

	trigger, _ := policy.ParseModifiers(c.Trigger.Modifiers)
	mode, _ := policy.ParseTriggerMode(c.Trigger.Mode)
	precision, _ := parsePrecision(c.Trigger.Precision)
	intensity, _ := feedback.ParseIntensity(c.Feedback.Intensity)
	theme, _ := LookupTheme(c.Theme.Name)

	return controller.Settings{
		Collapsed:      collapsed,
		AutoShows:      c.Behavior.AutoShows,
		AutoHideIcons:  theme.AutoHideIcons,
		AlwaysHideArea: c.Behavior.AlwaysHideArea,
		ReduceMotion:   c.Behavior.ReduceMotion,
		Trigger:        trigger,
		TriggerMode:    mode,
		Precision:      precision,
		Appearance:     theme.Appearance(),
		Feedback:       intensity,
		IdleTimeout:    time.Duration(c.Timing.IdleTimeout) * time.Second,
		Timing: controller.Timing{
			Tick:          ms(c.Timing.TickMs),
			Watch:         ms(c.Timing.WatchMs),
			Ignoring:      ms(c.Timing.IgnoringMs),
			FeedbackDelay: ms(c.Timing.FeedbackDelayMs),
			FeedbackStep:  ms(c.Timing.FeedbackStepMs),
		},
	}, nil
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

func ValidateConfig(path string) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
