// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads the playground binary's settings from TOML.
//
// A file looks like:
//
//	variant = "textured"
//	image = "assets/tree.png"
//
//	[window]
//	width = 800
//	height = 600
//	title = "playground"
//
//	[gpu]
//	power_preference = "high-performance"
//	present_mode = "fifo"
//	debug = false
//
//	[render]
//	clear_color = [0.1, 0.2, 0.3, 1.0]
//	cursor_clear = false
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/pelletier/go-toml/v2"
)

// Config is the complete binary configuration.
type Config struct {
	Variant string `toml:"variant"`
	Image   string `toml:"image"` // empty uses the embedded image
	Verbose bool   `toml:"verbose"`

	Window Window `toml:"window"`
	GPU    GPU    `toml:"gpu"`
	Render Render `toml:"render"`
}

// Window describes the initial window.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// GPU selects the adapter and presentation behavior.
type GPU struct {
	PowerPreference string `toml:"power_preference"` // "", "low-power", "high-performance"
	PresentMode     string `toml:"present_mode"`     // "fifo", "fifo-relaxed", "mailbox", "immediate"
	Debug           bool   `toml:"debug"`
}

// Render holds frame appearance settings.
type Render struct {
	ClearColor  [4]float64 `toml:"clear_color"`
	CursorClear bool       `toml:"cursor_clear"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Variant: "textured",
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "playground",
		},
		GPU: GPU{
			PresentMode: "fifo",
		},
		Render: Render{
			ClearColor: [4]float64{0.1, 0.2, 0.3, 1.0},
		},
	}
}

// Load reads path over the defaults. Unknown keys are rejected so typos do
// not pass silently.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: read")
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			keys := make([]string, 0, len(strict.Errors))
			for i := range strict.Errors {
				e := &strict.Errors[i]
				row, col := e.Position()
				keys = append(keys, fmt.Sprintf("%s (line %d column %d)", strings.Join(e.Key(), "."), row, col))
			}
			return Config{}, errors.Wrapf(err, "unknown keys %s", strings.Join(keys, ", "))
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, errors.Wrapf(err, "line %d column %d", row, col)
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Newf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if _, err := c.PowerPreference(); err != nil {
		return err
	}
	if _, err := c.PresentMode(); err != nil {
		return err
	}
	for i, v := range c.Render.ClearColor {
		if v < 0 || v > 1 {
			return errors.Newf("config: clear_color[%d] = %v outside [0, 1]", i, v)
		}
	}
	return nil
}

// PowerPreference maps the configured preference onto gputypes.
func (c Config) PowerPreference() (gputypes.PowerPreference, error) {
	switch strings.ToLower(c.GPU.PowerPreference) {
	case "", "none", "default":
		return gputypes.PowerPreferenceNone, nil
	case "low-power":
		return gputypes.PowerPreferenceLowPower, nil
	case "high-performance":
		return gputypes.PowerPreferenceHighPerformance, nil
	default:
		return 0, errors.Newf("config: unknown power_preference %q", c.GPU.PowerPreference)
	}
}

// PresentMode maps the configured present mode onto gputypes.
func (c Config) PresentMode() (gputypes.PresentMode, error) {
	switch strings.ToLower(c.GPU.PresentMode) {
	case "", "fifo":
		return gputypes.PresentModeFifo, nil
	case "fifo-relaxed":
		return gputypes.PresentModeFifoRelaxed, nil
	case "mailbox":
		return gputypes.PresentModeMailbox, nil
	case "immediate":
		return gputypes.PresentModeImmediate, nil
	default:
		return 0, errors.Newf("config: unknown present_mode %q", c.GPU.PresentMode)
	}
}

// ClearColor returns the clear color as a gputypes.Color.
func (c Config) ClearColor() gputypes.Color {
	cc := c.Render.ClearColor
	return gputypes.Color{R: cc[0], G: cc[1], B: cc[2], A: cc[3]}
}
