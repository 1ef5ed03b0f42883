// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package playground

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/playground/camera"
)

// TestDefaultSessionOptions tests the defaults used when no option is given.
func TestDefaultSessionOptions(t *testing.T) {
	o := defaultSessionOptions()

	if o.backend != nil {
		t.Errorf("backend = %v, want nil (best available)", o.backend)
	}
	if o.presentMode != gputypes.PresentModeFifo {
		t.Errorf("presentMode = %v, want Fifo", o.presentMode)
	}
	if o.format != gputypes.TextureFormatBGRA8UnormSrgb {
		t.Errorf("format = %v, want BGRA8UnormSrgb", o.format)
	}
	if o.debug {
		t.Error("debug enabled by default")
	}
}

// TestSessionOptionsApply tests that each option sets its field.
func TestSessionOptionsApply(t *testing.T) {
	o := defaultSessionOptions()
	for _, opt := range []SessionOption{
		WithBackend(noop.API{}),
		WithPowerPreference(gputypes.PowerPreferenceHighPerformance),
		WithPresentMode(gputypes.PresentModeImmediate),
		WithSurfaceFormat(gputypes.TextureFormatRGBA8UnormSrgb),
		WithDebug(true),
	} {
		opt(&o)
	}

	if o.backend == nil {
		t.Error("WithBackend did not set the backend")
	}
	if o.powerPreference != gputypes.PowerPreferenceHighPerformance {
		t.Errorf("powerPreference = %v", o.powerPreference)
	}
	if o.presentMode != gputypes.PresentModeImmediate {
		t.Errorf("presentMode = %v", o.presentMode)
	}
	if o.format != gputypes.TextureFormatRGBA8UnormSrgb {
		t.Errorf("format = %v", o.format)
	}
	if !o.debug {
		t.Error("WithDebug(true) not applied")
	}
}

// TestRendererOptions tests the renderer option defaults and overrides.
func TestRendererOptions(t *testing.T) {
	o := defaultRendererOptions()
	if o.clearColor != DefaultClearColor {
		t.Errorf("clearColor = %+v, want %+v", o.clearColor, DefaultClearColor)
	}
	if o.cursorClear {
		t.Error("cursor clear enabled by default")
	}

	cam := camera.New(1)
	for _, opt := range []RendererOption{
		WithClearColor(gputypes.Color{A: 1}),
		WithCursorClearColor(),
		WithBindGroup(2, &noop.Resource{}),
		WithBindGroup(3, nil),
		WithCamera(cam, &noop.Resource{}),
	} {
		opt(&o)
	}

	if o.clearColor != (gputypes.Color{A: 1}) {
		t.Errorf("clearColor = %+v", o.clearColor)
	}
	if !o.cursorClear {
		t.Error("WithCursorClearColor not applied")
	}
	if _, ok := o.bindGroups[2]; !ok {
		t.Error("bind group at slot 2 missing")
	}
	if _, ok := o.bindGroups[3]; ok {
		t.Error("nil bind group was stored")
	}
	if o.camera != cam || o.cameraBuf == nil {
		t.Error("WithCamera not applied")
	}
}
