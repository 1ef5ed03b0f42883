// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package playground

import (
	"log/slog"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/loov/hrtime"

	"github.com/gogpu/playground/camera"
)

// State is the observable phase of a Renderer.
type State uint8

const (
	// StateIdle means no frame is acquired.
	StateIdle State = iota

	// StateRecording means a frame is acquired and its commands are open.
	StateRecording
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRecording:
		return "Recording"
	default:
		return "Unknown"
	}
}

// FrameStats summarizes rendered and dropped frames.
type FrameStats struct {
	Frames    uint64
	Dropped   uint64
	LastFrame time.Duration
	Average   time.Duration
}

// EventKind identifies a window event delivered to Renderer.Input.
type EventKind uint8

const (
	EventKey EventKind = iota + 1
	EventCursorMoved
	EventResized
)

// Event is a window notification. Only the fields of its Kind are set.
type Event struct {
	Kind EventKind

	Key  gpucontext.Key
	Mods gpucontext.Modifiers

	X, Y float64

	Width, Height int
}

// inflight is a submitted frame whose command buffer is still owned by the
// GPU.
type inflight struct {
	index uint64
	cmd   hal.CommandBuffer
	view  hal.TextureView
}

// Renderer records and presents one indexed draw per frame.
//
// It is driven from the goroutine that owns the Session and never blocks on
// the GPU: finished frames are reclaimed by polling the queue's completed
// submission index.
type Renderer struct {
	session  *Session
	pipeline *Pipeline
	mesh     *Mesh
	log      *slog.Logger

	clearColor  gputypes.Color
	cursorClear bool
	slots       []uint32
	groups      map[uint32]hal.BindGroup

	camera        *camera.Camera
	cameraBuf     hal.Buffer
	cameraUniform camera.Uniform
	cameraDirty   bool

	state   State
	pending []inflight
	stats   FrameStats
	total   time.Duration
}

// NewRenderer prepares a renderer drawing mesh with pipeline into the
// session's swapchain.
func NewRenderer(session *Session, pipeline *Pipeline, mesh *Mesh, opts ...RendererOption) *Renderer {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}

	slots := make([]uint32, 0, len(o.bindGroups))
	for slot := range o.bindGroups {
		slots = append(slots, slot)
	}
	slices.Sort(slots)

	r := &Renderer{
		session:       session,
		pipeline:      pipeline,
		mesh:          mesh,
		log:           session.log.With("pipeline", pipeline.Label()),
		clearColor:    o.clearColor,
		cursorClear:   o.cursorClear,
		slots:         slots,
		groups:        o.bindGroups,
		camera:        o.camera,
		cameraBuf:     o.cameraBuf,
		cameraUniform: camera.NewUniform(),
		cameraDirty:   o.camera != nil,
	}
	if r.camera != nil {
		w, h := session.Extent()
		r.camera.SetAspect(w, h)
	}
	return r
}

// State returns the current phase.
func (r *Renderer) State() State { return r.state }

// Stats returns frame counters and timings.
func (r *Renderer) Stats() FrameStats { return r.stats }

// ClearColor returns the color the next frame clears to.
func (r *Renderer) ClearColor() gputypes.Color { return r.clearColor }

// Input offers a window event to the renderer and reports whether it was
// consumed. Only cursor movement is consumed, and only when the renderer
// was built WithCursorClearColor.
func (r *Renderer) Input(ev Event) bool {
	if ev.Kind != EventCursorMoved || !r.cursorClear {
		return false
	}
	w, h := r.session.Extent()
	r.clearColor = gputypes.Color{
		R: clamp01(ev.X / float64(w)),
		G: clamp01(ev.Y / float64(h)),
		B: 1.0,
		A: 1.0,
	}
	return true
}

// Resize resizes the session swapchain and keeps the camera aspect in step.
func (r *Renderer) Resize(width, height int) error {
	if err := r.session.Resize(width, height); err != nil {
		return err
	}
	if r.camera != nil {
		w, h := r.session.Extent()
		r.camera.SetAspect(w, h)
		r.cameraDirty = true
	}
	return nil
}

// Update writes per-frame uniforms. Render calls it before recording.
func (r *Renderer) Update() error {
	if r.camera == nil || !r.cameraDirty {
		return nil
	}
	r.cameraUniform.Update(r.camera)
	_, queue := r.session.GPU()
	if err := WriteUniform(queue, r.cameraBuf, r.cameraUniform.Bytes()); err != nil {
		return err
	}
	r.cameraDirty = false
	return nil
}

// Render acquires the next swapchain image, clears it, draws the mesh and
// presents it. Acquire failures are returned as ErrSurfaceLost or
// ErrTimeout; Render does not retry and leaves the dropped count to
// RenderOrRecover.
func (r *Renderer) Render() error {
	if r.state != StateIdle {
		return errors.Newf("playground: render while %v", r.state)
	}
	surface := r.session.Surface()
	device, queue := r.session.GPU()
	if surface == nil || device == nil || queue == nil {
		return errors.New("playground: render on destroyed session")
	}

	r.reclaim()
	if err := r.Update(); err != nil {
		return err
	}

	acquired, err := surface.AcquireTexture(nil)
	if err != nil {
		return classifyAcquireError(err)
	}
	if acquired.Suboptimal {
		r.log.Debug("suboptimal swapchain image")
	}

	start := hrtime.Now()
	r.state = StateRecording
	defer func() { r.state = StateIdle }()

	frame := acquired.Texture
	view, err := device.CreateTextureView(frame, &hal.TextureViewDescriptor{
		Label:           "frame_view",
		Format:          r.session.Format(),
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		surface.DiscardTexture(frame)
		return errors.Wrap(err, "playground: create frame view")
	}

	cmd, err := r.record(device, view)
	if err != nil {
		device.DestroyTextureView(view)
		surface.DiscardTexture(frame)
		return err
	}

	index, err := queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		device.FreeCommandBuffer(cmd)
		device.DestroyTextureView(view)
		surface.DiscardTexture(frame)
		return errors.Wrap(err, "playground: submit frame")
	}
	r.pending = append(r.pending, inflight{index: index, cmd: cmd, view: view})

	if err := queue.Present(surface, frame, nil); err != nil {
		return classifyAcquireError(err)
	}

	r.stats.LastFrame = hrtime.Since(start)
	r.stats.Frames++
	r.total += r.stats.LastFrame
	r.stats.Average = r.total / time.Duration(r.stats.Frames) //nolint:gosec // frame count fits
	return nil
}

// record encodes the clear and the indexed draw into a command buffer.
func (r *Renderer) record(device hal.Device, view hal.TextureView) (hal.CommandBuffer, error) {
	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "render_encoder"})
	if err != nil {
		return nil, errors.Wrap(err, "playground: create render encoder")
	}
	if err := encoder.BeginEncoding("frame"); err != nil {
		encoder.DiscardEncoding()
		return nil, errors.Wrap(err, "playground: begin frame encoding")
	}

	pass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "render_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: r.clearColor,
		}},
	})
	pass.SetPipeline(r.pipeline.Raw())
	for _, slot := range r.slots {
		pass.SetBindGroup(slot, r.groups[slot], nil)
	}
	pass.SetVertexBuffer(0, r.mesh.Vertices, 0)
	pass.SetIndexBuffer(r.mesh.Indices, r.pipeline.IndexFormat(), 0)
	pass.DrawIndexed(r.mesh.IndexCount, 1, 0, 0, 0)
	pass.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return nil, errors.Wrap(err, "playground: end frame encoding")
	}
	return cmd, nil
}

// RenderOrRecover renders a frame and, on ErrSurfaceLost or ErrTimeout,
// recreates the swapchain and tries once more. A second failure drops the
// frame: it is counted in Stats().Dropped and RenderOrRecover returns false
// with a nil error. Other errors are returned.
func (r *Renderer) RenderOrRecover() (bool, error) {
	err := r.Render()
	if err == nil {
		return true, nil
	}
	if !IsFrameError(err) {
		return false, err
	}
	r.log.Warn("frame failed, recreating swapchain", "err", err)
	if rerr := r.session.Recreate(); rerr != nil {
		r.stats.Dropped++
		r.log.Warn("frame dropped", "err", rerr)
		return false, nil
	}
	if err := r.Render(); err != nil {
		if IsFrameError(err) {
			r.stats.Dropped++
			r.log.Warn("frame dropped", "err", err)
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// reclaim frees command buffers and views of frames the GPU has finished.
func (r *Renderer) reclaim() {
	if len(r.pending) == 0 {
		return
	}
	device, queue := r.session.GPU()
	done := queue.PollCompleted()
	n := 0
	for _, f := range r.pending {
		if f.index <= done {
			device.FreeCommandBuffer(f.cmd)
			device.DestroyTextureView(f.view)
			continue
		}
		r.pending[n] = f
		n++
	}
	r.pending = r.pending[:n]
}

// Destroy waits for in-flight frames and frees their resources. The
// pipeline, mesh and bind groups stay owned by the caller.
func (r *Renderer) Destroy() {
	if len(r.pending) == 0 {
		return
	}
	device, _ := r.session.GPU()
	if device == nil {
		r.pending = nil
		return
	}
	if err := device.WaitIdle(); err != nil {
		r.log.Warn("wait idle before renderer destroy", "err", err)
	}
	for _, f := range r.pending {
		device.FreeCommandBuffer(f.cmd)
		device.DestroyTextureView(f.view)
	}
	r.pending = nil
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
