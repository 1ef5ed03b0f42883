// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package camera provides a perspective look-at camera and the uniform
// block that carries its view-projection matrix to the vertex stage.
package camera

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformSize is the byte size of Uniform on the GPU.
const UniformSize = 64

// clipCorrection maps OpenGL clip depth [-1, 1] onto the [0, 1] range
// used by WebGPU backends. Column-major.
var clipCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Camera is a right-handed perspective camera.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	Aspect float32
	FovY   float32 // degrees
	ZNear  float32
	ZFar   float32
}

// New returns a camera one unit up and two units back from the origin,
// looking at it with a 45 degree vertical field of view.
func New(aspect float32) *Camera {
	return &Camera{
		Eye:    mgl32.Vec3{0, 1, 2},
		Target: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		Aspect: aspect,
		FovY:   45,
		ZNear:  0.1,
		ZFar:   100,
	}
}

// SetAspect updates the aspect ratio from a surface extent.
// A zero height leaves the aspect unchanged.
func (c *Camera) SetAspect(width, height uint32) {
	if height == 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// ViewProjection returns clip correction × projection × view.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	view := mgl32.LookAtV(c.Eye, c.Target, c.Up)
	proj := mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.ZNear, c.ZFar)
	return clipCorrection.Mul4(proj).Mul4(view)
}

// Uniform mirrors the WGSL CameraUniform struct.
type Uniform struct {
	ViewProj mgl32.Mat4
}

// NewUniform returns a uniform holding the identity matrix.
func NewUniform() Uniform {
	return Uniform{ViewProj: mgl32.Ident4()}
}

// Update recomputes the view-projection matrix from c.
func (u *Uniform) Update(c *Camera) {
	u.ViewProj = c.ViewProjection()
}

// Bytes returns the column-major little-endian encoding of the uniform.
func (u Uniform) Bytes() []byte {
	b := make([]byte, 0, UniformSize)
	for _, f := range u.ViewProj {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	return b
}
