package app

import (
	"flag"
	"time"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Scene    string
	Settings string
	Width    int
	Height   int
	Interval time.Duration
	Debug    bool
}

// NewConfig returns a Config populated with sensible defaults. Zero Width,
// Height, and Interval defer to the settings file.
func NewConfig() *Config {
	return &Config{Scene: "scene.json", Settings: "starmesh.toml"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Scene, "scene", c.Scene, "scene file to load and save")
	fs.StringVar(&c.Settings, "settings", c.Settings, "settings file (TOML)")
	fs.IntVar(&c.Width, "width", c.Width, "window width (overrides settings)")
	fs.IntVar(&c.Height, "height", c.Height, "window height (overrides settings)")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "rebuild interval while editing (overrides settings)")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "verbose logging")
}
