// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package playground

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/playground/camera"
)

// SessionOption configures a Session during creation.
//
// Example:
//
//	s, err := playground.NewSession(ctx, target, 800, 600,
//	    playground.WithPowerPreference(gputypes.PowerPreferenceHighPerformance))
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	backend         hal.Backend
	powerPreference gputypes.PowerPreference
	presentMode     gputypes.PresentMode
	format          gputypes.TextureFormat
	debug           bool
}

func defaultSessionOptions() sessionOptions {
	return sessionOptions{
		backend:         nil, // hal.SelectBestBackend
		powerPreference: gputypes.PowerPreferenceNone,
		presentMode:     gputypes.PresentModeFifo,
		format:          gputypes.TextureFormatBGRA8UnormSrgb,
	}
}

// WithBackend selects a specific HAL backend instead of the best available one.
// Tests pass noop.API{} here.
func WithBackend(b hal.Backend) SessionOption {
	return func(o *sessionOptions) {
		o.backend = b
	}
}

// WithPowerPreference biases adapter selection toward integrated or
// discrete GPUs.
func WithPowerPreference(p gputypes.PowerPreference) SessionOption {
	return func(o *sessionOptions) {
		o.powerPreference = p
	}
}

// WithPresentMode overrides the FIFO present mode. Modes the surface does
// not support fall back to FIFO.
func WithPresentMode(m gputypes.PresentMode) SessionOption {
	return func(o *sessionOptions) {
		o.presentMode = m
	}
}

// WithSurfaceFormat overrides the preferred swapchain format.
func WithSurfaceFormat(f gputypes.TextureFormat) SessionOption {
	return func(o *sessionOptions) {
		o.format = f
	}
}

// WithDebug requests backend debug and validation layers.
func WithDebug(enabled bool) SessionOption {
	return func(o *sessionOptions) {
		o.debug = enabled
	}
}

// RendererOption configures a Renderer during creation.
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	clearColor  gputypes.Color
	cursorClear bool
	bindGroups  map[uint32]hal.BindGroup
	camera      *camera.Camera
	cameraBuf   hal.Buffer
}

// DefaultClearColor is the background the renderer clears to.
var DefaultClearColor = gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0}

func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		clearColor: DefaultClearColor,
		bindGroups: make(map[uint32]hal.BindGroup),
	}
}

// WithClearColor sets the background color of every frame.
func WithClearColor(c gputypes.Color) RendererOption {
	return func(o *rendererOptions) {
		o.clearColor = c
	}
}

// WithCursorClearColor lets cursor movement drive the clear color through
// Renderer.Input.
func WithCursorClearColor() RendererOption {
	return func(o *rendererOptions) {
		o.cursorClear = true
	}
}

// WithBindGroup binds group at the given slot for every draw.
func WithBindGroup(slot uint32, group hal.BindGroup) RendererOption {
	return func(o *rendererOptions) {
		if group != nil {
			o.bindGroups[slot] = group
		}
	}
}

// WithCamera keeps buf, a uniform buffer holding cam's view-projection,
// in sync with the surface aspect ratio.
func WithCamera(cam *camera.Camera, buf hal.Buffer) RendererOption {
	return func(o *rendererOptions) {
		o.camera = cam
		o.cameraBuf = buf
	}
}
