package app

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"starmesh/internal/create"
	"starmesh/internal/regen"
)

// Settings are the optional on-disk preferences. Missing file or missing
// keys fall back to the defaults.
type Settings struct {
	Window   WindowSettings `toml:"window"`
	Regen    RegenSettings  `toml:"regen"`
	Create   CreateSettings `toml:"create"`
	Autosave bool           `toml:"autosave"`
}

// WindowSettings size the application window.
type WindowSettings struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// RegenSettings tune the live-edit rebuild cadence.
type RegenSettings struct {
	IntervalMS int `toml:"interval_ms"`
}

// CreateSettings shape new objects.
type CreateSettings struct {
	NamePattern string `toml:"name_pattern"`
}

// DefaultSettings returns the values used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		Window:   WindowSettings{Width: 1280, Height: 800},
		Regen:    RegenSettings{IntervalMS: int(regen.DefaultInterval / time.Millisecond)},
		Create:   CreateSettings{NamePattern: create.DefaultNamePattern},
		Autosave: true,
	}
}

// LoadSettings reads a TOML settings file. A missing file is not an error;
// a malformed one returns the defaults alongside the error so the caller
// can warn and continue.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return DefaultSettings(), fmt.Errorf("load settings: %w", err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("load settings: %w", err)
	}
	return s, nil
}

// Interval converts the configured cadence, falling back to the default
// for zero or negative values.
func (s Settings) Interval() time.Duration {
	if s.Regen.IntervalMS <= 0 {
		return regen.DefaultInterval
	}
	return time.Duration(s.Regen.IntervalMS) * time.Millisecond
}
