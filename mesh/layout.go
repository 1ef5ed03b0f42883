// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

import (
	"encoding/binary"

	"github.com/gogpu/gputypes"
)

// Layout builds a per-vertex buffer layout from attribute formats.
// Offsets are the running sum of the preceding attribute sizes and shader
// locations are assigned sequentially from 0.
func Layout(formats ...gputypes.VertexFormat) gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, len(formats))
	var offset uint64
	for i, f := range formats {
		attrs[i] = gputypes.VertexAttribute{
			Format:         f,
			Offset:         offset,
			ShaderLocation: uint32(i), //nolint:gosec // attribute count is tiny
		}
		offset += f.Size()
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// LayoutOf returns the layout of a vertex shape.
func LayoutOf(v Vertex) gputypes.VertexBufferLayout {
	return Layout(v.Formats()...)
}

// Geometry is packed, upload-ready vertex and index data.
type Geometry struct {
	Layout      gputypes.VertexBufferLayout
	Vertices    []byte
	Indices     []uint16
	VertexCount int
}

// Pack encodes vertices and keeps indices alongside the derived layout.
// Pack panics if vs is empty, since the layout cannot be derived.
func Pack[V Vertex](vs []V, indices []uint16) Geometry {
	if len(vs) == 0 {
		panic("mesh: Pack requires at least one vertex")
	}
	layout := LayoutOf(vs[0])
	buf := make([]byte, 0, uint64(len(vs))*layout.ArrayStride)
	for _, v := range vs {
		buf = v.AppendTo(buf)
	}
	idx := make([]uint16, len(indices))
	copy(idx, indices)
	return Geometry{
		Layout:      layout,
		Vertices:    buf,
		Indices:     idx,
		VertexCount: len(vs),
	}
}

// IndexBytes returns the little-endian encoding of the index list.
func (g Geometry) IndexBytes() []byte {
	b := make([]byte, 0, 2*len(g.Indices))
	for _, i := range g.Indices {
		b = binary.LittleEndian.AppendUint16(b, i)
	}
	return b
}

// IndexCount returns the number of indices as a draw argument.
func (g Geometry) IndexCount() uint32 {
	return uint32(len(g.Indices)) //nolint:gosec // uint16 index lists stay far below 2^32
}
