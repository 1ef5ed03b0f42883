// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mesh defines the vertex shapes used by the playground pipelines,
// derives their vertex-buffer layouts, and packs geometry into the byte
// form uploaded to the GPU.
package mesh

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// Vertex is a vertex shape that can describe and pack itself.
type Vertex interface {
	// Formats returns the attribute formats in shader location order.
	Formats() []gputypes.VertexFormat

	// AppendTo appends the little-endian encoding of the vertex to b.
	AppendTo(b []byte) []byte
}

// PositionVertex carries a position only.
type PositionVertex struct {
	Position [3]float32
}

// Formats implements Vertex.
func (PositionVertex) Formats() []gputypes.VertexFormat {
	return []gputypes.VertexFormat{gputypes.VertexFormatFloat32x3}
}

// AppendTo implements Vertex.
func (v PositionVertex) AppendTo(b []byte) []byte {
	return appendFloats(b, v.Position[:]...)
}

// ColorVertex carries a position and an RGB color.
type ColorVertex struct {
	Position [3]float32
	Color    [3]float32
}

// Formats implements Vertex.
func (ColorVertex) Formats() []gputypes.VertexFormat {
	return []gputypes.VertexFormat{gputypes.VertexFormatFloat32x3, gputypes.VertexFormatFloat32x3}
}

// AppendTo implements Vertex.
func (v ColorVertex) AppendTo(b []byte) []byte {
	b = appendFloats(b, v.Position[:]...)
	return appendFloats(b, v.Color[:]...)
}

// TexturedVertex carries a position and a texture coordinate.
type TexturedVertex struct {
	Position  [3]float32
	TexCoords [2]float32
}

// Formats implements Vertex.
func (TexturedVertex) Formats() []gputypes.VertexFormat {
	return []gputypes.VertexFormat{gputypes.VertexFormatFloat32x3, gputypes.VertexFormatFloat32x2}
}

// AppendTo implements Vertex.
func (v TexturedVertex) AppendTo(b []byte) []byte {
	b = appendFloats(b, v.Position[:]...)
	return appendFloats(b, v.TexCoords[:]...)
}

func appendFloats(b []byte, fs ...float32) []byte {
	for _, f := range fs {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	return b
}
