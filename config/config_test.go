// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("window = %dx%d, want 800x600", cfg.Window.Width, cfg.Window.Height)
	}
	if got := cfg.ClearColor(); got != (gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}) {
		t.Errorf("ClearColor() = %+v", got)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
variant = "colored"

[window]
width = 1024

[gpu]
power_preference = "high-performance"
present_mode = "mailbox"

[render]
cursor_clear = true
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Variant != "colored" {
		t.Errorf("Variant = %q", cfg.Variant)
	}
	if cfg.Window.Width != 1024 || cfg.Window.Height != 600 {
		t.Errorf("window = %dx%d, want 1024x600", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "playground" {
		t.Errorf("Title = %q, default lost", cfg.Window.Title)
	}
	if pp, _ := cfg.PowerPreference(); pp != gputypes.PowerPreferenceHighPerformance {
		t.Errorf("PowerPreference = %v", pp)
	}
	if pm, _ := cfg.PresentMode(); pm != gputypes.PresentModeMailbox {
		t.Errorf("PresentMode = %v", pm)
	}
	if !cfg.Render.CursorClear {
		t.Error("cursor_clear not applied")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"unknown key", "colour = 1\n", "colour (line 1"},
		{"unknown nested key", "[window]\nwidht = 640\n", "window.widht (line 2"},
		{"syntax", "variant = \n", "line 1"},
		{"zero width", "[window]\nwidth = 0\n", "window size"},
		{"bad present mode", "[gpu]\npresent_mode = \"vsync\"\n", "present_mode"},
		{"bad power", "[gpu]\npower_preference = \"max\"\n", "power_preference"},
		{"clear out of range", "[render]\nclear_color = [0, 0, 2, 1]\n", "clear_color[2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q lacks %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "playground.toml")
	if err := os.WriteFile(path, []byte("variant = \"minimal\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Variant != "minimal" {
		t.Errorf("Variant = %q", cfg.Variant)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}
