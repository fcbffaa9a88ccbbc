package pageflow

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// envDebug enables debug logging when set to any non-empty value.
const envDebug = "PAGEFLOW_DEBUG"

// Config holds navigator defaults loaded from a TOML or YAML file.
type Config struct {
	LogLevel  string          `toml:"log_level" yaml:"log_level"`
	Debug     bool            `toml:"debug" yaml:"debug"`
	Animation AnimationConfig `toml:"animation" yaml:"animation"`
	Header    HeaderConfig    `toml:"header" yaml:"header"`
	Drawer    DrawerConfig    `toml:"drawer" yaml:"drawer"`
	Tabs      TabsConfig      `toml:"tabs" yaml:"tabs"`
}

// AnimationConfig configures page transitions.
type AnimationConfig struct {
	DurationMS int    `toml:"duration_ms" yaml:"duration_ms"`
	Curve      string `toml:"curve" yaml:"curve"`
	Style      string `toml:"style" yaml:"style"` // "slide" or "fade"
	Background string `toml:"background" yaml:"background"`
}

// HeaderConfig overrides DefaultHeaderSettings.
type HeaderConfig struct {
	Height     float64 `toml:"height" yaml:"height"`
	Background string  `toml:"background" yaml:"background"`
	Hidden     bool    `toml:"hidden" yaml:"hidden"`
	IconColor  string  `toml:"icon_color" yaml:"icon_color"`
	IconSize   float64 `toml:"icon_size" yaml:"icon_size"`
	TitleColor string  `toml:"title_color" yaml:"title_color"`
}

// DrawerConfig overrides DefaultDrawerSettings.
type DrawerConfig struct {
	Width      float64 `toml:"width" yaml:"width"`
	Mode       string  `toml:"mode" yaml:"mode"` // "fixed" or "sliding"
	Background string  `toml:"background" yaml:"background"`
}

// TabsConfig overrides DefaultTabsSettings.
type TabsConfig struct {
	Position   string  `toml:"position" yaml:"position"` // "top" or "bottom"
	Height     float64 `toml:"height" yaml:"height"`
	Background string  `toml:"background" yaml:"background"`
	Tint       string  `toml:"tint" yaml:"tint"`
	Horizontal bool    `toml:"horizontal" yaml:"horizontal"`
}

// LoadConfig reads a configuration file. The format is chosen by extension:
// .toml, .yaml or .yml.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError(path, "read", err)
	}
	cfg, err := ParseConfig(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			ce.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// ParseConfig decodes and validates a configuration in the given format.
func ParseConfig(data []byte, format string) (*Config, error) {
	cfg := &Config{}
	switch strings.ToLower(format) {
	case "toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
			return nil, NewConfigError("", "decode", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, NewConfigError("", "decode", err)
		}
	default:
		return nil, NewConfigError("", "decode", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerations and colors.
func (c *Config) Validate() error {
	if c.Animation.DurationMS < 0 {
		return NewConfigError("", "validate", fmt.Errorf("animation.duration_ms must not be negative, got %d", c.Animation.DurationMS))
	}
	if _, err := Curve(c.Animation.Curve); err != nil {
		return NewConfigError("", "validate", err)
	}
	switch c.Animation.Style {
	case "", "slide", "fade":
	default:
		return NewConfigError("", "validate", fmt.Errorf("animation.style must be slide or fade, got %q", c.Animation.Style))
	}
	switch c.Drawer.Mode {
	case "", "fixed", "sliding":
	default:
		return NewConfigError("", "validate", fmt.Errorf("drawer.mode must be fixed or sliding, got %q", c.Drawer.Mode))
	}
	switch c.Tabs.Position {
	case "", "top", "bottom":
	default:
		return NewConfigError("", "validate", fmt.Errorf("tabs.position must be top or bottom, got %q", c.Tabs.Position))
	}
	for field, v := range map[string]string{
		"animation.background": c.Animation.Background,
		"header.background":    c.Header.Background,
		"header.icon_color":    c.Header.IconColor,
		"header.title_color":   c.Header.TitleColor,
		"drawer.background":    c.Drawer.Background,
		"tabs.background":      c.Tabs.Background,
		"tabs.tint":            c.Tabs.Tint,
	} {
		if v == "" {
			continue
		}
		if _, err := ParseHexColor(v); err != nil {
			return NewConfigError("", "validate", fmt.Errorf("%s: %w", field, err))
		}
	}
	return nil
}

// TabsPosition returns the configured tab bar position.
func (c *Config) TabsPosition() Position {
	if c.Tabs.Position == "top" {
		return PositionTop
	}
	return PositionBottom
}

// setColor overwrites dst when s holds a valid color. Validate has already
// rejected malformed values.
func setColor(dst *Color, s string) {
	if s == "" {
		return
	}
	if c, err := ParseHexColor(s); err == nil {
		*dst = c
	}
}

func (c *Config) apply(o *options) {
	o.debug = o.debug || c.Debug

	if c.Animation.DurationMS > 0 {
		o.duration = time.Duration(c.Animation.DurationMS) * time.Millisecond
	}
	if fn, err := Curve(c.Animation.Curve); err == nil && fn != nil {
		o.curve = fn
	}
	if c.Animation.Style == "fade" {
		o.transition = TransitionFade
	}
	if c.Animation.Background != "" {
		bg := DefaultBackground
		setColor(&bg, c.Animation.Background)
		o.background = &bg
	}

	h := DefaultHeaderSettings()
	if o.header != nil {
		h = *o.header
	}
	if c.Header.Height > 0 {
		h.Height = c.Header.Height
	}
	if c.Header.IconSize > 0 {
		h.Button.IconSize = c.Header.IconSize
	}
	h.ShowHeader = h.ShowHeader && !c.Header.Hidden
	setColor(&h.Background, c.Header.Background)
	setColor(&h.Button.IconColor, c.Header.IconColor)
	setColor(&h.Title.Color, c.Header.TitleColor)
	o.header = &h

	d := DefaultDrawerSettings()
	if o.drawer != nil {
		d = *o.drawer
	}
	if c.Drawer.Width > 0 {
		d.Width = c.Drawer.Width
	}
	if c.Drawer.Mode == "sliding" {
		d.Mode = DrawerSliding
	}
	setColor(&d.Background, c.Drawer.Background)
	o.drawer = &d

	t := DefaultTabsSettings()
	if o.tabs != nil {
		t = *o.tabs
	}
	if c.Tabs.Height > 0 {
		t.Height = c.Tabs.Height
	}
	t.Item.Horizontal = t.Item.Horizontal || c.Tabs.Horizontal
	setColor(&t.Background, c.Tabs.Background)
	setColor(&t.Item.TintColor, c.Tabs.Tint)
	o.tabs = &t
	if c.Tabs.Position != "" {
		p := c.TabsPosition()
		o.tabsPos = &p
	}
}

// ApplyLogging sets the package log level from LogLevel. Navigators never
// touch the global logger, so programs call this once after loading.
func (c *Config) ApplyLogging() {
	if c.LogLevel != "" {
		SetRawLogLevel(c.LogLevel)
	}
}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
