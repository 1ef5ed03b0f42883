// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package playground

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/playground/mesh"
)

// copyAlignment is the granularity of queue writes and buffer copies.
const copyAlignment = 4

// UploadVertices creates a vertex buffer holding data.
func UploadVertices(device hal.Device, queue hal.Queue, data []byte) (hal.Buffer, error) {
	if len(data) == 0 {
		return nil, errors.New("playground: upload vertices: empty data")
	}
	return createAndUploadBuffer(device, queue, "vertex_buffer", data,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst|gputypes.BufferUsageCopySrc)
}

// UploadIndices creates an index buffer holding 16-bit indices.
// An odd index count is padded with one zero index in the buffer; draws
// must use the original count.
func UploadIndices(device hal.Device, queue hal.Queue, indices []uint16) (hal.Buffer, error) {
	if len(indices) == 0 {
		return nil, errors.New("playground: upload indices: empty data")
	}
	data := mesh.Geometry{Indices: indices}.IndexBytes()
	return createAndUploadBuffer(device, queue, "index_buffer", data,
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst|gputypes.BufferUsageCopySrc)
}

// createAndUploadBuffer creates a buffer sized to data rounded up to the
// copy alignment and writes data into it through the queue.
func createAndUploadBuffer(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	size := alignUp(uint64(len(data)), copyAlignment)
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "playground: create %s (%d bytes)", label, size)
	}

	payload := data
	if uint64(len(data)) != size {
		payload = make([]byte, size)
		copy(payload, data)
	}
	if err := queue.WriteBuffer(buf, 0, payload); err != nil {
		device.DestroyBuffer(buf)
		return nil, errors.Wrapf(err, "playground: write %s", label)
	}
	return buf, nil
}

// ReadBuffer copies the first size bytes of buf into a mappable staging
// buffer, waits for the copy and returns the bytes. buf must have been
// created with CopySrc usage.
func ReadBuffer(device hal.Device, queue hal.Queue, buf hal.Buffer, size uint64) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	staged := alignUp(size, copyAlignment)
	staging, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "staging_readback",
		Size:  staged,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, errors.Wrap(err, "playground: create readback buffer")
	}
	defer device.DestroyBuffer(staging)

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "readback_encoder"})
	if err != nil {
		return nil, errors.Wrap(err, "playground: create readback encoder")
	}
	if err := encoder.BeginEncoding("readback"); err != nil {
		return nil, errors.Wrap(err, "playground: begin readback encoding")
	}
	encoder.CopyBufferToBuffer(buf, staging, []hal.BufferCopy{{Size: staged}})
	cmd, err := encoder.EndEncoding()
	if err != nil {
		return nil, errors.Wrap(err, "playground: end readback encoding")
	}
	defer device.FreeCommandBuffer(cmd)

	if _, err := queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return nil, errors.Wrap(err, "playground: submit readback")
	}
	if err := device.WaitIdle(); err != nil {
		return nil, errors.Wrap(err, "playground: wait for readback")
	}

	mapping, err := device.MapBuffer(staging, 0, staged)
	if err != nil {
		return nil, errors.Wrap(err, "playground: map readback buffer")
	}
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(mapping.Ptr), size))
	if err := device.UnmapBuffer(staging); err != nil {
		return nil, errors.Wrap(err, "playground: unmap readback buffer")
	}
	return out, nil
}

// Mesh is a geometry resident on the device.
type Mesh struct {
	Vertices   hal.Buffer
	Indices    hal.Buffer
	IndexCount uint32
	Layout     gputypes.VertexBufferLayout
}

// UploadMesh uploads the vertex and index data of g.
func UploadMesh(device hal.Device, queue hal.Queue, g mesh.Geometry) (*Mesh, error) {
	vb, err := UploadVertices(device, queue, g.Vertices)
	if err != nil {
		return nil, err
	}
	ib, err := UploadIndices(device, queue, g.Indices)
	if err != nil {
		device.DestroyBuffer(vb)
		return nil, err
	}
	Logger().Debug("mesh uploaded",
		"vertices", g.VertexCount, "indices", len(g.Indices),
		"vertex_bytes", len(g.Vertices))
	return &Mesh{
		Vertices:   vb,
		Indices:    ib,
		IndexCount: g.IndexCount(),
		Layout:     g.Layout,
	}, nil
}

// Destroy releases both buffers.
func (m *Mesh) Destroy(device hal.Device) {
	if m.Vertices != nil {
		device.DestroyBuffer(m.Vertices)
		m.Vertices = nil
	}
	if m.Indices != nil {
		device.DestroyBuffer(m.Indices)
		m.Indices = nil
	}
}

// NewUniformBuffer creates a uniform buffer initialized with data.
func NewUniformBuffer(device hal.Device, queue hal.Queue, label string, data []byte) (hal.Buffer, error) {
	if len(data) == 0 {
		return nil, errors.Newf("playground: uniform %q: empty data", label)
	}
	return createAndUploadBuffer(device, queue, label, data,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
}

// WriteUniform overwrites the start of a uniform buffer.
func WriteUniform(queue hal.Queue, buf hal.Buffer, data []byte) error {
	if err := queue.WriteBuffer(buf, 0, data); err != nil {
		return errors.Wrap(err, "playground: write uniform")
	}
	return nil
}

// NewUniformBindGroup binds buf at binding 0 of a layout made by
// UniformBindGroupLayout.
func NewUniformBindGroup(device hal.Device, layout hal.BindGroupLayout, buf hal.Buffer, size uint64) (hal.BindGroup, error) {
	group, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "uniform_bind_group",
		Layout: layout,
		Entries: []gputypes.BindGroupEntry{{
			Binding:  0,
			Resource: gputypes.BufferBinding{Buffer: buf.NativeHandle(), Offset: 0, Size: size},
		}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "playground: create uniform bind group")
	}
	return group, nil
}

func alignUp(n, align uint64) uint64 {
	return (n + align - 1) &^ (align - 1)
}
