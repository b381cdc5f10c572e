package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/chess10kp/veil/internal/policy"
)

// Theme is a built-in glyph set
type Theme struct {
	Name            string
	HeadCollapsed   policy.Glyph
	HeadUncollapsed policy.Glyph
	Body            policy.Glyph
	Tail            policy.Glyph
	// AutoHideIcons fades separators out while folded
	AutoHideIcons bool
}

// Appearance returns the glyphs the policy works with
func (t Theme) Appearance() policy.Appearance {
	return policy.Appearance{
		HeadCollapsed:   t.HeadCollapsed,
		HeadUncollapsed: t.HeadUncollapsed,
		Body:            t.Body,
		Tail:            t.Tail,
	}
}

var Themes = map[string]Theme{
	"abyss": {
		Name:            "abyss",
		HeadCollapsed:   policy.Glyph{Icon: "pan-start-symbolic", Width: 20, Opacity: 1},
		HeadUncollapsed: policy.Glyph{Icon: "pan-end-symbolic", Width: 20, Opacity: 1},
		Body:            policy.Glyph{Icon: "media-record-symbolic", Width: 14, Opacity: 0.5},
		Tail:            policy.Glyph{Icon: "media-record-symbolic", Width: 14, Opacity: 0.25},
		AutoHideIcons:   true,
	},
	"arrows": {
		Name:            "arrows",
		HeadCollapsed:   policy.Glyph{Icon: "go-previous-symbolic", Width: 22, Opacity: 1},
		HeadUncollapsed: policy.Glyph{Icon: "go-next-symbolic", Width: 22, Opacity: 1},
		Body:            policy.Glyph{Icon: "view-more-horizontal-symbolic", Width: 18, Opacity: 0.6},
		Tail:            policy.Glyph{Icon: "view-more-horizontal-symbolic", Width: 18, Opacity: 0.3},
		AutoHideIcons:   true,
	},
	"ripple": {
		Name:            "ripple",
		HeadCollapsed:   policy.Glyph{Icon: "radio-symbolic", Width: 18, Opacity: 0.8},
		HeadUncollapsed: policy.Glyph{Icon: "radio-checked-symbolic", Width: 18, Opacity: 1},
		Body:            policy.Glyph{Icon: "radio-mixed-symbolic", Width: 16, Opacity: 0.6},
		Tail:            policy.Glyph{Icon: "radio-mixed-symbolic", Width: 16, Opacity: 0.4},
		AutoHideIcons:   true,
	},
	"static": {
		Name:            "static",
		HeadCollapsed:   policy.Glyph{Icon: "pan-start-symbolic", Width: 20, Opacity: 1},
		HeadUncollapsed: policy.Glyph{Icon: "pan-end-symbolic", Width: 20, Opacity: 1},
		Body:            policy.Glyph{Icon: "format-justify-fill-symbolic", Width: 12, Opacity: 1},
		Tail:            policy.Glyph{Icon: "format-justify-fill-symbolic", Width: 12, Opacity: 1},
		AutoHideIcons:   false,
	},
}

// ThemeNames returns the built-in theme names, sorted
func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupTheme finds a built-in theme, suggesting close names on a miss
func LookupTheme(name string) (Theme, error) {
	if theme, ok := Themes[strings.ToLower(name)]; ok {
		return theme, nil
	}

	names := ThemeNames()
	matches := fuzzy.Find(strings.ToLower(name), names)
	if name != "" && len(matches) > 0 {
		return Theme{}, fmt.Errorf("unknown theme: %q (did you mean %q?)", name, matches[0].Str)
	}
	return Theme{}, fmt.Errorf("unknown theme: %q (must be one of: %s)", name, strings.Join(names, ", "))
}
