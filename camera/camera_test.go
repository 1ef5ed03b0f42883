// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func clipDepth(m mgl32.Mat4, p mgl32.Vec3) float32 {
	c := m.Mul4x1(p.Vec4(1))
	return c.Z() / c.W()
}

func TestViewProjectionDepthRange(t *testing.T) {
	c := &Camera{
		Eye:    mgl32.Vec3{0, 0, 1},
		Target: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		Aspect: 1,
		FovY:   45,
		ZNear:  0.1,
		ZFar:   100,
	}
	vp := c.ViewProjection()

	if got := clipDepth(vp, mgl32.Vec3{0, 0, 1 - c.ZNear}); math.Abs(float64(got)) > eps {
		t.Errorf("near plane depth = %v, want 0", got)
	}
	if got := clipDepth(vp, mgl32.Vec3{0, 0, 1 - c.ZFar}); math.Abs(float64(got-1)) > eps {
		t.Errorf("far plane depth = %v, want 1", got)
	}
}

func TestViewProjectionCentersTarget(t *testing.T) {
	c := New(800.0 / 600.0)
	clip := c.ViewProjection().Mul4x1(c.Target.Vec4(1))
	if math.Abs(float64(clip.X()/clip.W())) > eps || math.Abs(float64(clip.Y()/clip.W())) > eps {
		t.Errorf("target projects to (%v, %v), want center", clip.X()/clip.W(), clip.Y()/clip.W())
	}
}

func TestSetAspect(t *testing.T) {
	c := New(1)
	c.SetAspect(400, 300)
	if math.Abs(float64(c.Aspect)-400.0/300.0) > eps {
		t.Errorf("Aspect = %v, want %v", c.Aspect, 400.0/300.0)
	}
	c.SetAspect(10, 0)
	if math.Abs(float64(c.Aspect)-400.0/300.0) > eps {
		t.Error("SetAspect with zero height should not change the aspect")
	}
}

func TestUniformBytes(t *testing.T) {
	u := NewUniform()
	b := u.Bytes()
	if len(b) != UniformSize {
		t.Fatalf("len(Bytes()) = %d, want %d", len(b), UniformSize)
	}
	for i := range 16 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if got != want {
			t.Errorf("element %d = %v, want %v", i, got, want)
		}
	}
}

func TestUniformUpdate(t *testing.T) {
	c := New(1)
	u := NewUniform()
	u.Update(c)
	if !u.ViewProj.ApproxEqual(c.ViewProjection()) {
		t.Error("Update did not store the camera view-projection")
	}
}
