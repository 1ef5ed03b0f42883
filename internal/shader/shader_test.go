// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"slices"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga/ir"
)

const structInput = `
struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) color: vec3<f32>,
}

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) color: vec3<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip = vec4<f32>(in.position, 1.0);
    out.color = in.color;
    return out;
}
`

const argInput = `
@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(position, 1.0);
}
`

func TestCompileReflectsInputs(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []uint32
	}{
		{"struct", structInput, []uint32{0, 1}},
		{"argument", argInput, []uint32{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile(tt.name, tt.src)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			if len(m.SPIRV) == 0 || m.SPIRV[0] != 0x07230203 {
				t.Errorf("SPIR-V does not start with the magic number")
			}
			got, ok := m.VertexInputs("vs_main")
			if !ok {
				t.Fatal("vs_main not reflected")
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("inputs = %v, want %v", got, tt.want)
			}
			if !m.HasEntryPoint("vs_main", ir.StageVertex) {
				t.Error("HasEntryPoint(vs_main, vertex) = false")
			}
			if m.HasEntryPoint("vs_main", ir.StageFragment) {
				t.Error("vs_main reported as a fragment entry point")
			}
			if m.HasEntryPoint("main", ir.StageVertex) {
				t.Error("unknown entry point reported")
			}
		})
	}
}

func TestCompileError(t *testing.T) {
	if _, err := Compile("broken", "@vertex fn vs_main( -> {"); err == nil {
		t.Error("Compile accepted malformed WGSL")
	}
}

func TestCheckVertexLayout(t *testing.T) {
	layout := gputypes.VertexBufferLayout{
		ArrayStride: 24,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		},
	}
	if err := CheckVertexLayout([]uint32{0, 1}, layout); err != nil {
		t.Errorf("matching layout rejected: %v", err)
	}
	if err := CheckVertexLayout([]uint32{0}, layout); err == nil {
		t.Error("extra attribute accepted")
	}
	if err := CheckVertexLayout([]uint32{0, 2}, layout); err == nil {
		t.Error("wrong location accepted")
	}
}

func TestWordsFromBytes(t *testing.T) {
	got := wordsFromBytes([]byte{0x03, 0x02, 0x23, 0x07, 0x01, 0x00, 0x00, 0x00, 0xff})
	want := []uint32{0x07230203, 1}
	if !slices.Equal(got, want) {
		t.Errorf("wordsFromBytes = %#x, want %#x", got, want)
	}
}
