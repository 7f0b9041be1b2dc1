// Package config loads hyprtile's TOML configuration.
//
// The configuration is read once and handed to every layout pass as a
// read-only snapshot. Keys that are absent from the file keep their
// defaults; unknown keys are rejected so typos do not silently fall back.
//
// # Example
//
//	accordion-padding = 30
//	no-outer-gaps-in-fullscreen = true
//
//	[gaps]
//	inner.horizontal = 10
//	inner.vertical = 10
//	outer.left = 8
//	outer.right = 8
//	outer.top = 8
//	outer.bottom = 8
//
//	[[gaps.override]]
//	monitor = "main"
//	outer.top = 40
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hyprtile/pkg/errors"
	"github.com/matzehuels/hyprtile/pkg/geom"
	"github.com/matzehuels/hyprtile/pkg/monitor"
)

const (
	appName  = "hyprtile"
	fileName = "hyprtile.toml"
)

// Default values.
const (
	DefaultAccordionPadding = 30.0

	// DefaultHyprlandRatio is the share of the first child in a hyprland split.
	DefaultHyprlandRatio = 0.61803398875

	DefaultInnerGap = 0.0
	DefaultOuterGap = 0.0
)

// Layout mode names accepted by default-root-container-layout.
const (
	LayoutTiles     = "tiles"
	LayoutAccordion = "accordion"
	LayoutHyprland  = "hyprland"
)

// Orientation names accepted by default-root-container-orientation.
const (
	OrientationAuto       = "auto"
	OrientationHorizontal = "horizontal"
	OrientationVertical   = "vertical"
)

// Config is the full hyprtile configuration.
type Config struct {
	AccordionPadding                float64 `toml:"accordion-padding"`
	NoOuterGapsInFullscreen         bool    `toml:"no-outer-gaps-in-fullscreen"`
	HyprlandRatio                   float64 `toml:"hyprland-ratio"`
	DefaultRootContainerLayout      string  `toml:"default-root-container-layout"`
	DefaultRootContainerOrientation string  `toml:"default-root-container-orientation"`
	Gaps                            Gaps    `toml:"gaps"`
}

// Gaps holds the configured gap values. Per-monitor overrides are applied
// by the layout package's gap resolver.
type Gaps struct {
	Inner     Inner      `toml:"inner"`
	Outer     Outer      `toml:"outer"`
	Overrides []Override `toml:"override,omitempty"`
}

// Inner gaps separate siblings.
type Inner struct {
	Horizontal float64 `toml:"horizontal"`
	Vertical   float64 `toml:"vertical"`
}

// Outer gaps separate the root container from the monitor edge.
type Outer struct {
	Left   float64 `toml:"left"`
	Right  float64 `toml:"right"`
	Top    float64 `toml:"top"`
	Bottom float64 `toml:"bottom"`
}

// Insets converts outer gaps to geometry insets.
func (o Outer) Insets() geom.Insets {
	return geom.Insets{Left: o.Left, Right: o.Right, Top: o.Top, Bottom: o.Bottom}
}

// Override replaces individual gap values on matching monitors.
// Monitor is "main", "secondary" or a case-insensitive regular expression
// matched against the monitor name.
type Override struct {
	Monitor string         `toml:"monitor"`
	Inner   *InnerOverride `toml:"inner,omitempty"`
	Outer   *OuterOverride `toml:"outer,omitempty"`
}

// InnerOverride holds optional inner gap replacements.
type InnerOverride struct {
	Horizontal *float64 `toml:"horizontal,omitempty"`
	Vertical   *float64 `toml:"vertical,omitempty"`
}

// OuterOverride holds optional outer gap replacements.
type OuterOverride struct {
	Left   *float64 `toml:"left,omitempty"`
	Right  *float64 `toml:"right,omitempty"`
	Top    *float64 `toml:"top,omitempty"`
	Bottom *float64 `toml:"bottom,omitempty"`
}

// Matches reports whether the override applies to m.
func (o Override) Matches(m *monitor.Monitor) bool {
	if m == nil {
		return false
	}
	switch strings.ToLower(o.Monitor) {
	case "main":
		return m.Main
	case "secondary":
		return !m.Main
	}
	re, err := regexp.Compile("(?i)" + o.Monitor)
	if err != nil {
		return false
	}
	return re.MatchString(m.Name)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		AccordionPadding:                DefaultAccordionPadding,
		HyprlandRatio:                   DefaultHyprlandRatio,
		DefaultRootContainerLayout:      LayoutTiles,
		DefaultRootContainerOrientation: OrientationAuto,
		Gaps: Gaps{
			Inner: Inner{Horizontal: DefaultInnerGap, Vertical: DefaultInnerGap},
			Outer: Outer{Left: DefaultOuterGap, Right: DefaultOuterGap, Top: DefaultOuterGap, Bottom: DefaultOuterGap},
		},
	}
}

// Parse decodes TOML data on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// LoadDefault loads the config from [DefaultPath]. A missing file yields
// the built-in defaults.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// DefaultPath returns the config location using the XDG convention
// (~/.config/hyprtile/hyprtile.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg *Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		v     float64
	}{
		{"accordion-padding", c.AccordionPadding},
		{"gaps.inner.horizontal", c.Gaps.Inner.Horizontal},
		{"gaps.inner.vertical", c.Gaps.Inner.Vertical},
		{"gaps.outer.left", c.Gaps.Outer.Left},
		{"gaps.outer.right", c.Gaps.Outer.Right},
		{"gaps.outer.top", c.Gaps.Outer.Top},
		{"gaps.outer.bottom", c.Gaps.Outer.Bottom},
	}
	for _, chk := range checks {
		if err := errors.ValidateNonNegative(chk.field, chk.v); err != nil {
			return err
		}
	}
	if err := errors.ValidateRatio("hyprland-ratio", c.HyprlandRatio); err != nil {
		return err
	}

	switch c.DefaultRootContainerLayout {
	case LayoutTiles, LayoutAccordion, LayoutHyprland:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown default-root-container-layout %q", c.DefaultRootContainerLayout)
	}
	switch c.DefaultRootContainerOrientation {
	case OrientationAuto, OrientationHorizontal, OrientationVertical:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown default-root-container-orientation %q", c.DefaultRootContainerOrientation)
	}

	for i, o := range c.Gaps.Overrides {
		if o.Monitor == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "gaps.override[%d]: monitor is required", i)
		}
		if _, err := regexp.Compile("(?i)" + o.Monitor); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "gaps.override[%d]: bad monitor pattern", i)
		}
		for _, v := range o.values() {
			if err := errors.ValidateNonNegative(fmt.Sprintf("gaps.override[%d]", i), v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o Override) values() []float64 {
	var out []float64
	add := func(p *float64) {
		if p != nil {
			out = append(out, *p)
		}
	}
	if o.Inner != nil {
		add(o.Inner.Horizontal)
		add(o.Inner.Vertical)
	}
	if o.Outer != nil {
		add(o.Outer.Left)
		add(o.Outer.Right)
		add(o.Outer.Top)
		add(o.Outer.Bottom)
	}
	return out
}

// RootOrientation resolves default-root-container-orientation for a
// monitor: "auto" picks horizontal for landscape monitors.
func (c *Config) RootOrientation(m *monitor.Monitor) geom.Orientation {
	switch c.DefaultRootContainerOrientation {
	case OrientationHorizontal:
		return geom.H
	case OrientationVertical:
		return geom.V
	}
	if m != nil && m.Visible.Height > m.Visible.Width {
		return geom.V
	}
	return geom.H
}
