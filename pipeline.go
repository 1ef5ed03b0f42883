// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package playground

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/playground/internal/shader"
)

// Entry points used when a PipelineDescriptor leaves them empty.
const (
	DefaultVertexEntry   = "vs_main"
	DefaultFragmentEntry = "fs_main"
)

// PipelineDescriptor describes one render pipeline.
type PipelineDescriptor struct {
	Label          string
	VertexSource   string
	FragmentSource string // empty builds a vertex-only pipeline
	VertexEntry    string
	FragmentEntry  string

	VertexLayout gputypes.VertexBufferLayout

	// BindGroupLayouts are indexed by group number. The pipeline borrows
	// them; the caller destroys them after the pipeline.
	BindGroupLayouts []hal.BindGroupLayout

	TargetFormat gputypes.TextureFormat
}

// Pipeline is an immutable render pipeline together with the state it was
// built from.
type Pipeline struct {
	device hal.Device

	vertexModule   hal.ShaderModule
	fragmentModule hal.ShaderModule
	layout         hal.PipelineLayout
	pipeline       hal.RenderPipeline

	label        string
	vertexLayout gputypes.VertexBufferLayout
	targetFormat gputypes.TextureFormat
	groupCount   int
}

// BuildPipeline compiles both shader stages, checks the vertex layout
// against the vertex shader inputs and assembles the render pipeline.
//
// Rasterization is fixed: counter-clockwise front faces, back-face culling,
// triangle lists, 16-bit indices, one color target with replace blending
// and a single sample.
func BuildPipeline(device hal.Device, desc PipelineDescriptor) (*Pipeline, error) {
	vsEntry := desc.VertexEntry
	if vsEntry == "" {
		vsEntry = DefaultVertexEntry
	}
	fsEntry := desc.FragmentEntry
	if fsEntry == "" {
		fsEntry = DefaultFragmentEntry
	}

	vs, err := shader.Compile(desc.Label+"_vs", desc.VertexSource)
	if err != nil {
		return nil, newShaderCompileError("vertex", desc.Label, err)
	}
	if !vs.HasEntryPoint(vsEntry, ir.StageVertex) {
		return nil, newShaderCompileError("vertex", desc.Label,
			errors.Newf("no vertex entry point %q", vsEntry))
	}
	inputs, _ := vs.VertexInputs(vsEntry)
	if err := shader.CheckVertexLayout(inputs, desc.VertexLayout); err != nil {
		return nil, markf(err, ErrLayoutMismatch, "playground: pipeline %q", desc.Label)
	}

	var fs *shader.Module
	if desc.FragmentSource != "" {
		if fs, err = shader.Compile(desc.Label+"_fs", desc.FragmentSource); err != nil {
			return nil, newShaderCompileError("fragment", desc.Label, err)
		}
		if !fs.HasEntryPoint(fsEntry, ir.StageFragment) {
			return nil, newShaderCompileError("fragment", desc.Label,
				errors.Newf("no fragment entry point %q", fsEntry))
		}
	}

	p := &Pipeline{
		device:       device,
		label:        desc.Label,
		vertexLayout: desc.VertexLayout,
		targetFormat: desc.TargetFormat,
		groupCount:   len(desc.BindGroupLayouts),
	}

	if p.vertexModule, err = shader.CreateShaderModule(device, vs); err != nil {
		return nil, errors.Wrapf(err, "playground: create vertex module %q", desc.Label)
	}
	if fs != nil {
		if p.fragmentModule, err = shader.CreateShaderModule(device, fs); err != nil {
			p.Destroy()
			return nil, errors.Wrapf(err, "playground: create fragment module %q", desc.Label)
		}
	}

	if p.layout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label + "_layout",
		BindGroupLayouts: desc.BindGroupLayouts,
	}); err != nil {
		p.Destroy()
		return nil, errors.Wrapf(err, "playground: create pipeline layout %q", desc.Label)
	}

	rp := &hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: p.layout,
		Vertex: hal.VertexState{
			Module:     p.vertexModule,
			EntryPoint: vsEntry,
			Buffers:    []gputypes.VertexBufferLayout{desc.VertexLayout},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		Multisample: gputypes.DefaultMultisampleState(),
	}
	if p.fragmentModule != nil {
		blend := gputypes.BlendStateReplace()
		rp.Fragment = &hal.FragmentState{
			Module:     p.fragmentModule,
			EntryPoint: fsEntry,
			Targets: []gputypes.ColorTargetState{{
				Format:    desc.TargetFormat,
				Blend:     &blend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		}
	}

	if p.pipeline, err = device.CreateRenderPipeline(rp); err != nil {
		p.Destroy()
		return nil, errors.Wrapf(err, "playground: create render pipeline %q", desc.Label)
	}

	Logger().Debug("pipeline built",
		"label", desc.Label,
		"stride", desc.VertexLayout.ArrayStride,
		"attributes", len(desc.VertexLayout.Attributes),
		"bind_groups", len(desc.BindGroupLayouts),
		"format", desc.TargetFormat.String())
	return p, nil
}

// Label returns the pipeline label.
func (p *Pipeline) Label() string { return p.label }

// VertexLayout returns the vertex buffer layout the pipeline consumes.
func (p *Pipeline) VertexLayout() gputypes.VertexBufferLayout { return p.vertexLayout }

// TargetFormat returns the color target format.
func (p *Pipeline) TargetFormat() gputypes.TextureFormat { return p.targetFormat }

// IndexFormat returns the index format draws must use.
func (p *Pipeline) IndexFormat() gputypes.IndexFormat { return gputypes.IndexFormatUint16 }

// BindGroupCount returns the number of bind group slots in the layout.
func (p *Pipeline) BindGroupCount() int { return p.groupCount }

// Raw returns the HAL render pipeline.
func (p *Pipeline) Raw() hal.RenderPipeline { return p.pipeline }

// Destroy releases the pipeline, its layout and shader modules.
// Safe to call more than once.
func (p *Pipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.layout != nil {
		p.device.DestroyPipelineLayout(p.layout)
		p.layout = nil
	}
	if p.fragmentModule != nil {
		p.device.DestroyShaderModule(p.fragmentModule)
		p.fragmentModule = nil
	}
	if p.vertexModule != nil {
		p.device.DestroyShaderModule(p.vertexModule)
		p.vertexModule = nil
	}
}

// TextureBindGroupLayout creates the layout shared by textured variants:
// a filterable float 2D texture at binding 0 and a filtering sampler at
// binding 1, both visible to the fragment stage.
func TextureBindGroupLayout(device hal.Device) (hal.BindGroupLayout, error) {
	layout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "texture_bind_group_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
					Multisampled:  false,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler: &gputypes.SamplerBindingLayout{
					Type: gputypes.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "playground: create texture bind group layout")
	}
	return layout, nil
}

// UniformBindGroupLayout creates a layout with one uniform buffer at
// binding 0 visible to the vertex stage.
func UniformBindGroupLayout(device hal.Device) (hal.BindGroupLayout, error) {
	layout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "uniform_bind_group_layout",
		Entries: []gputypes.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex,
			Buffer: &gputypes.BufferBindingLayout{
				Type: gputypes.BufferBindingTypeUniform,
			},
		}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "playground: create uniform bind group layout")
	}
	return layout, nil
}
