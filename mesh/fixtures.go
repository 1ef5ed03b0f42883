// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

// PentagonIndices fans the pentagon into three counter-clockwise triangles.
var PentagonIndices = []uint16{0, 1, 4, 1, 2, 4, 2, 3, 4}

var pentagonPositions = [5][3]float32{
	{-0.0868241, 0.49240386, 0.0},
	{-0.49513406, 0.06958647, 0.0},
	{-0.21918549, -0.44939706, 0.0},
	{0.35966998, -0.3473291, 0.0},
	{0.44147372, 0.2347359, 0.0},
}

var pentagonTexCoords = [5][2]float32{
	{0.4131759, 0.00759614},
	{0.0048659444, 0.43041354},
	{0.28081453, 0.949397057},
	{0.85967, 0.84732911},
	{0.9414737, 0.2652641},
}

// Triangle returns a position-only triangle with counter-clockwise winding.
func Triangle() Geometry {
	return Pack([]PositionVertex{
		{Position: [3]float32{0.0, 0.5, 0.0}},
		{Position: [3]float32{-0.5, -0.5, 0.0}},
		{Position: [3]float32{0.5, -0.5, 0.0}},
	}, []uint16{0, 1, 2})
}

// ColoredPentagon returns the five-vertex pentagon with a flat purple color.
func ColoredPentagon() Geometry {
	vs := make([]ColorVertex, len(pentagonPositions))
	for i, p := range pentagonPositions {
		vs[i] = ColorVertex{Position: p, Color: [3]float32{0.5, 0.0, 0.5}}
	}
	return Pack(vs, PentagonIndices)
}

// TexturedPentagon returns the five-vertex pentagon with texture coordinates
// mapping the unit square onto its bounding box.
func TexturedPentagon() Geometry {
	vs := make([]TexturedVertex, len(pentagonPositions))
	for i, p := range pentagonPositions {
		vs[i] = TexturedVertex{Position: p, TexCoords: pentagonTexCoords[i]}
	}
	return Pack(vs, PentagonIndices)
}
