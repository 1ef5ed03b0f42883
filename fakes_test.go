// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package playground

import (
	"context"
	"image"
	"testing"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// The recording fakes wrap the noop backend and capture what the code under
// test asks the GPU to do. Everything not overridden falls through to noop.

type drawCall struct {
	indexCount, instanceCount, firstIndex uint32
	baseVertex                            int32
	firstInstance                         uint32
}

type recorder struct {
	configs     []hal.SurfaceConfiguration
	acquired    []hal.SurfaceConfiguration // configuration in effect at each acquire
	acquireErrs []error                    // consumed front to back by AcquireTexture
	configErr   error

	draws        []drawCall
	bindSlots    []uint32
	clearColors  []gputypes.Color
	textureCopy  []hal.BufferTextureCopy
	staged       [][]byte // staging bytes behind each texture copy
	beginErr     error    // returned by every BeginEncoding when set
	endErr       error    // returned by every EndEncoding when set
	discards     int
	barriers     int
	textures     int
	textureDescs []hal.TextureDescriptor
	submits      int
	presents     int
	freed        int
}

type recordingBackend struct{ rec *recorder }

func (b recordingBackend) Variant() gputypes.Backend { return gputypes.BackendEmpty }

func (b recordingBackend) CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error) {
	inst, err := noop.API{}.CreateInstance(desc)
	if err != nil {
		return nil, err
	}
	return &recordingInstance{Instance: inst, rec: b.rec}, nil
}

type recordingInstance struct {
	hal.Instance
	rec *recorder
}

func (i *recordingInstance) CreateSurface(display, window uintptr) (hal.Surface, error) {
	s, err := i.Instance.CreateSurface(display, window)
	if err != nil {
		return nil, err
	}
	return &recordingSurface{Surface: s, rec: i.rec}, nil
}

func (i *recordingInstance) EnumerateAdapters(hint hal.Surface) []hal.ExposedAdapter {
	adapters := i.Instance.EnumerateAdapters(hint)
	for n := range adapters {
		adapters[n].Adapter = &recordingAdapter{Adapter: adapters[n].Adapter, rec: i.rec}
	}
	return adapters
}

type recordingAdapter struct {
	hal.Adapter
	rec *recorder
}

func (a *recordingAdapter) Open(features gputypes.Features, limits gputypes.Limits) (hal.OpenDevice, error) {
	open, err := a.Adapter.Open(features, limits)
	if err != nil {
		return open, err
	}
	open.Device = &recordingDevice{Device: open.Device, rec: a.rec}
	open.Queue = &recordingQueue{Queue: open.Queue, rec: a.rec}
	return open, nil
}

type recordingSurface struct {
	hal.Surface
	rec     *recorder
	current hal.SurfaceConfiguration
}

func (s *recordingSurface) Configure(device hal.Device, cfg *hal.SurfaceConfiguration) error {
	if s.rec.configErr != nil {
		return s.rec.configErr
	}
	s.rec.configs = append(s.rec.configs, *cfg)
	s.current = *cfg
	return s.Surface.Configure(device, cfg)
}

func (s *recordingSurface) AcquireTexture(fence hal.Fence) (*hal.AcquiredSurfaceTexture, error) {
	if len(s.rec.acquireErrs) > 0 {
		err := s.rec.acquireErrs[0]
		s.rec.acquireErrs = s.rec.acquireErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	s.rec.acquired = append(s.rec.acquired, s.current)
	return s.Surface.AcquireTexture(fence)
}

type recordingDevice struct {
	hal.Device
	rec *recorder
}

func (d *recordingDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	d.rec.textures++
	d.rec.textureDescs = append(d.rec.textureDescs, *desc)
	return d.Device.CreateTexture(desc)
}

func (d *recordingDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	enc, err := d.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	return &recordingEncoder{CommandEncoder: enc, rec: d.rec, device: d.Device}, nil
}

func (d *recordingDevice) FreeCommandBuffer(cmd hal.CommandBuffer) {
	d.rec.freed++
	d.Device.FreeCommandBuffer(cmd)
}

type recordingEncoder struct {
	hal.CommandEncoder
	rec    *recorder
	device hal.Device
}

func (e *recordingEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	for _, a := range desc.ColorAttachments {
		e.rec.clearColors = append(e.rec.clearColors, a.ClearValue)
	}
	return &recordingPass{RenderPassEncoder: e.CommandEncoder.BeginRenderPass(desc), rec: e.rec}
}

func (e *recordingEncoder) TransitionTextures(barriers []hal.TextureBarrier) {
	e.rec.barriers += len(barriers)
	e.CommandEncoder.TransitionTextures(barriers)
}

func (e *recordingEncoder) BeginEncoding(label string) error {
	if e.rec.beginErr != nil {
		return e.rec.beginErr
	}
	return e.CommandEncoder.BeginEncoding(label)
}

func (e *recordingEncoder) EndEncoding() (hal.CommandBuffer, error) {
	if e.rec.endErr != nil {
		return nil, e.rec.endErr
	}
	return e.CommandEncoder.EndEncoding()
}

func (e *recordingEncoder) DiscardEncoding() {
	e.rec.discards++
	e.CommandEncoder.DiscardEncoding()
}

func (e *recordingEncoder) CopyBufferToTexture(src hal.Buffer, dst hal.Texture, regions []hal.BufferTextureCopy) {
	e.rec.textureCopy = append(e.rec.textureCopy, regions...)
	for _, r := range regions {
		size := uint64(r.BufferLayout.BytesPerRow) * uint64(r.BufferLayout.RowsPerImage)
		m, err := e.device.MapBuffer(src, r.BufferLayout.Offset, size)
		if err != nil {
			continue
		}
		e.rec.staged = append(e.rec.staged, append([]byte(nil), unsafe.Slice((*byte)(m.Ptr), size)...))
	}
	e.CommandEncoder.CopyBufferToTexture(src, dst, regions)
}

// CopyBufferToBuffer performs the copy immediately through noop mappings so
// readback returns real bytes.
func (e *recordingEncoder) CopyBufferToBuffer(src, dst hal.Buffer, regions []hal.BufferCopy) {
	for _, r := range regions {
		from, err := e.device.MapBuffer(src, r.SrcOffset, r.Size)
		if err != nil {
			continue
		}
		to, err := e.device.MapBuffer(dst, r.DstOffset, r.Size)
		if err != nil {
			continue
		}
		copy(unsafe.Slice((*byte)(to.Ptr), r.Size), unsafe.Slice((*byte)(from.Ptr), r.Size))
	}
}

type recordingPass struct {
	hal.RenderPassEncoder
	rec *recorder
}

func (p *recordingPass) SetBindGroup(index uint32, group hal.BindGroup, offsets []uint32) {
	p.rec.bindSlots = append(p.rec.bindSlots, index)
	p.RenderPassEncoder.SetBindGroup(index, group, offsets)
}

func (p *recordingPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.rec.draws = append(p.rec.draws, drawCall{indexCount, instanceCount, firstIndex, baseVertex, firstInstance})
	p.RenderPassEncoder.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

type recordingQueue struct {
	hal.Queue
	rec *recorder
}

func (q *recordingQueue) Submit(cmds []hal.CommandBuffer) (uint64, error) {
	q.rec.submits++
	return q.Queue.Submit(cmds)
}

func (q *recordingQueue) Present(surface hal.Surface, tex hal.SurfaceTexture, damage []image.Rectangle) error {
	q.rec.presents++
	return q.Queue.Present(surface, tex, damage)
}

// newTestSession opens a session on the recording noop backend.
func newTestSession(t *testing.T, width, height int) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	s, err := NewSession(context.Background(), SurfaceTarget{Window: 1}, width, height,
		WithBackend(recordingBackend{rec: rec}))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(s.Destroy)
	return s, rec
}
