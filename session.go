// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package playground

import (
	"context"
	"log/slog"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/google/uuid"
)

// SurfaceTarget holds the native handles a presentation surface is created
// from. On X11 Display is the Display* and Window the XID; on Windows
// Display may be zero and Window is the HWND.
type SurfaceTarget struct {
	Display uintptr
	Window  uintptr
}

// Session owns the adapter, logical device, queue and presentation surface.
// It is not safe for concurrent use; the frame loop drives it from one
// goroutine.
type Session struct {
	id  uuid.UUID
	log *slog.Logger

	instance hal.Instance
	adapter  hal.ExposedAdapter
	surface  hal.Surface
	device   hal.Device
	queue    hal.Queue

	config     hal.SurfaceConfiguration
	configured bool
}

var _ gpucontext.DeviceProvider = (*Session)(nil)

// NewSession negotiates an adapter and device compatible with the target
// surface and configures a swapchain of width×height.
//
// It blocks until the device is ready. Errors match ErrDeviceUnavailable or
// ErrSurfaceCreationFailed; a cancelled ctx aborts between steps.
func NewSession(ctx context.Context, target SurfaceTarget, width, height int, opts ...SessionOption) (*Session, error) {
	o := defaultSessionOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "playground: new session")
	}
	if target.Window == 0 {
		return nil, markf(nil, ErrSurfaceCreationFailed, "playground: window handle is zero")
	}

	backend := o.backend
	if backend == nil {
		var err error
		if backend, err = hal.SelectBestBackend(); err != nil {
			return nil, markf(err, ErrDeviceUnavailable, "playground: select backend")
		}
	}

	id := uuid.New()
	s := &Session{
		id:  id,
		log: Logger().With("session", id.String()),
	}

	desc := &hal.InstanceDescriptor{}
	if o.debug {
		desc.Flags = gputypes.InstanceFlagsDebug | gputypes.InstanceFlagsValidation
	}
	instance, err := backend.CreateInstance(desc)
	if err != nil {
		return nil, markf(err, ErrDeviceUnavailable, "playground: create %v instance", backend.Variant())
	}
	s.instance = instance

	if s.surface, err = instance.CreateSurface(target.Display, target.Window); err != nil {
		s.Destroy()
		return nil, markf(err, ErrSurfaceCreationFailed, "playground: create surface")
	}

	adapters := instance.EnumerateAdapters(s.surface)
	if len(adapters) == 0 {
		s.Destroy()
		return nil, markf(nil, ErrDeviceUnavailable, "playground: no adapter compatible with the surface")
	}
	s.adapter = selectAdapter(adapters, o.powerPreference)
	s.log.Info("adapter selected",
		"name", s.adapter.Info.Name,
		"type", s.adapter.Info.DeviceType.String(),
		"backend", s.adapter.Info.Backend.String())

	if err := ctx.Err(); err != nil {
		s.Destroy()
		return nil, errors.Wrap(err, "playground: new session")
	}

	open, err := s.adapter.Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		s.Destroy()
		return nil, markf(err, ErrDeviceUnavailable, "playground: open device on %q", s.adapter.Info.Name)
	}
	s.device, s.queue = open.Device, open.Queue

	caps := s.adapter.Adapter.SurfaceCapabilities(s.surface)
	w, h, _ := clampExtent(width, height)
	s.config = hal.SurfaceConfiguration{
		Width:       w,
		Height:      h,
		Format:      chooseFormat(caps, o.format),
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: choosePresentMode(caps, o.presentMode),
		AlphaMode:   hal.CompositeAlphaModeOpaque,
	}
	if err := s.configure(); err != nil {
		s.Destroy()
		return nil, markf(err, ErrSurfaceCreationFailed, "playground: configure %dx%d swapchain", w, h)
	}
	return s, nil
}

// Resize reconfigures the swapchain for a new surface size.
//
// An unchanged size is a no-op. A zero or negative axis is clamped to 1
// and logged rather than returned.
func (s *Session) Resize(width, height int) error {
	w, h, clamped := clampExtent(width, height)
	if clamped {
		s.log.Warn("resize clamped",
			"requested_width", width, "requested_height", height,
			"width", w, "height", h,
			"reason", ErrResizeRejected)
	}
	if s.configured && w == s.config.Width && h == s.config.Height {
		return nil
	}
	s.config.Width, s.config.Height = w, h
	if err := s.configure(); err != nil {
		return markf(err, ErrSurfaceLost, "playground: resize to %dx%d", w, h)
	}
	return nil
}

// Recreate reconfigures the swapchain at its current size. It is the
// recovery step after ErrSurfaceLost.
func (s *Session) Recreate() error {
	if err := s.configure(); err != nil {
		return markf(err, ErrSurfaceLost, "playground: recreate swapchain")
	}
	return nil
}

func (s *Session) configure() error {
	if s.surface == nil || s.device == nil {
		return errors.New("playground: session destroyed")
	}
	cfg := s.config
	if err := s.surface.Configure(s.device, &cfg); err != nil {
		s.configured = false
		return err
	}
	s.configured = true
	s.log.Info("swapchain configured",
		"width", cfg.Width, "height", cfg.Height,
		"format", cfg.Format.String(), "present_mode", cfg.PresentMode)
	return nil
}

// Extent returns the configured swapchain size.
func (s *Session) Extent() (width, height uint32) {
	return s.config.Width, s.config.Height
}

// Format returns the swapchain texture format.
func (s *Session) Format() gputypes.TextureFormat {
	return s.config.Format
}

// ID returns the identifier attached to the session's log records.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// GPU returns the typed HAL device and queue.
func (s *Session) GPU() (hal.Device, hal.Queue) {
	return s.device, s.queue
}

// Surface returns the presentation surface.
func (s *Session) Surface() hal.Surface {
	return s.surface
}

// Device implements gpucontext.DeviceProvider. The value is a hal.Device.
func (s *Session) Device() gpucontext.Device { return s.device }

// Queue implements gpucontext.DeviceProvider. The value is a hal.Queue.
func (s *Session) Queue() gpucontext.Queue { return s.queue }

// Adapter implements gpucontext.DeviceProvider. The value is a hal.Adapter.
func (s *Session) Adapter() gpucontext.Adapter { return s.adapter.Adapter }

// SurfaceFormat implements gpucontext.DeviceProvider.
func (s *Session) SurfaceFormat() gputypes.TextureFormat { return s.config.Format }

// AdapterInfo implements gpucontext.DeviceProvider.
func (s *Session) AdapterInfo() gpucontext.AdapterInfo {
	info := gpucontext.AdapterInfo{Name: s.adapter.Info.Name, Type: gpucontext.AdapterTypeUnknown}
	switch s.adapter.Info.DeviceType {
	case gputypes.DeviceTypeDiscreteGPU:
		info.Type = gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		info.Type = gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		info.Type = gpucontext.AdapterTypeSoftware
	}
	return info
}

// HalDevice exposes the device to providers that look for the HAL types.
func (s *Session) HalDevice() any { return s.device }

// HalQueue exposes the queue to providers that look for the HAL types.
func (s *Session) HalQueue() any { return s.queue }

// SubmitAndWait submits a one-shot copy command, waits for the device to
// drain and releases the command's resources.
func (s *Session) SubmitAndWait(cmd *CopyCommand) error {
	if err := cmd.Submit(s.queue); err != nil {
		return err
	}
	if err := s.device.WaitIdle(); err != nil {
		return errors.Wrap(err, "playground: wait for copy")
	}
	cmd.Release()
	return nil
}

// Destroy releases the swapchain, device, surface and instance in reverse
// creation order. Safe to call more than once.
func (s *Session) Destroy() {
	if s.device != nil {
		if err := s.device.WaitIdle(); err != nil {
			s.log.Warn("wait idle before destroy", "err", err)
		}
	}
	if s.surface != nil && s.device != nil && s.configured {
		s.surface.Unconfigure(s.device)
		s.configured = false
	}
	if s.device != nil {
		s.device.Destroy()
		s.device = nil
		s.queue = nil
	}
	if s.surface != nil {
		s.surface.Destroy()
		s.surface = nil
	}
	if s.adapter.Adapter != nil {
		s.adapter.Adapter.Destroy()
		s.adapter.Adapter = nil
	}
	if s.instance != nil {
		s.instance.Destroy()
		s.instance = nil
	}
}

// selectAdapter picks an adapter by power preference. Without a
// preference discrete GPUs win over integrated ones, then the first
// adapter is used.
func selectAdapter(adapters []hal.ExposedAdapter, pref gputypes.PowerPreference) hal.ExposedAdapter {
	order := []gputypes.DeviceType{gputypes.DeviceTypeDiscreteGPU, gputypes.DeviceTypeIntegratedGPU}
	if pref == gputypes.PowerPreferenceLowPower {
		order = []gputypes.DeviceType{gputypes.DeviceTypeIntegratedGPU, gputypes.DeviceTypeDiscreteGPU}
	}
	for _, want := range order {
		for _, a := range adapters {
			if a.Info.DeviceType == want {
				return a
			}
		}
	}
	return adapters[0]
}

// chooseFormat keeps the preferred format when the surface lists it.
// Otherwise it takes the first listed 8-bit sRGB format, then the first
// listed 8-bit linear one, BGRA before RGBA. Only listed formats are
// returned.
func chooseFormat(caps *hal.SurfaceCapabilities, preferred gputypes.TextureFormat) gputypes.TextureFormat {
	if caps == nil || len(caps.Formats) == 0 {
		return preferred
	}
	if slices.Contains(caps.Formats, preferred) {
		return preferred
	}
	for _, f := range []gputypes.TextureFormat{
		gputypes.TextureFormatBGRA8UnormSrgb,
		gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm,
		gputypes.TextureFormatRGBA8Unorm,
	} {
		if slices.Contains(caps.Formats, f) {
			return f
		}
	}
	return caps.Formats[0]
}

func choosePresentMode(caps *hal.SurfaceCapabilities, preferred gputypes.PresentMode) gputypes.PresentMode {
	if caps != nil {
		for _, m := range caps.PresentModes {
			if m == preferred {
				return m
			}
		}
	}
	return gputypes.PresentModeFifo
}

// clampExtent converts a requested size to a non-zero swapchain extent.
func clampExtent(width, height int) (w, h uint32, clamped bool) {
	if width < 1 {
		width, clamped = 1, true
	}
	if height < 1 {
		height, clamped = 1, true
	}
	return uint32(width), uint32(height), clamped //nolint:gosec // both are >= 1
}
