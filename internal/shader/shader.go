// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader compiles WGSL stages to SPIR-V and reflects the vertex
// inputs the compiled entry points expect.
package shader

import (
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"
	"github.com/gogpu/wgpu/hal"
)

// Module is a compiled shader together with its reflected interface.
type Module struct {
	Label string
	SPIRV []uint32

	// vertexInputs maps each vertex entry point to its sorted @location inputs.
	vertexInputs map[string][]uint32
	entryPoints  map[string]ir.ShaderStage
}

// Compile runs the full WGSL pipeline (parse, lower, validate, generate)
// and keeps the IR long enough to reflect entry point inputs.
func Compile(label, source string) (*Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("lower: %w", err)
	}
	verrs, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	if len(verrs) > 0 {
		return nil, fmt.Errorf("validate: %w", verrs[0])
	}

	opts := naga.DefaultOptions()
	code, err := naga.GenerateSPIRV(module, spirv.Options{Version: opts.SPIRVVersion, Debug: opts.Debug})
	if err != nil {
		return nil, err
	}

	m := &Module{
		Label:        label,
		SPIRV:        wordsFromBytes(code),
		vertexInputs: make(map[string][]uint32),
		entryPoints:  make(map[string]ir.ShaderStage),
	}
	for i := range module.EntryPoints {
		ep := &module.EntryPoints[i]
		m.entryPoints[ep.Name] = ep.Stage
		if ep.Stage == ir.StageVertex {
			m.vertexInputs[ep.Name] = vertexLocations(module, &ep.Function)
		}
	}
	return m, nil
}

// HasEntryPoint reports whether the module declares an entry point of the
// given stage under name.
func (m *Module) HasEntryPoint(name string, stage ir.ShaderStage) bool {
	s, ok := m.entryPoints[name]
	return ok && s == stage
}

// VertexInputs returns the @location inputs of a vertex entry point in
// ascending order.
func (m *Module) VertexInputs(entry string) ([]uint32, bool) {
	locs, ok := m.vertexInputs[entry]
	return locs, ok
}

// CreateShaderModule creates a HAL shader module from the compiled words.
func CreateShaderModule(device hal.Device, m *Module) (hal.ShaderModule, error) {
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: m.Label,
		Source: hal.ShaderSource{
			SPIRV: m.SPIRV,
		},
	})
}

// CheckVertexLayout reports an error when the layout's attribute locations
// differ from the shader's vertex inputs.
func CheckVertexLayout(inputs []uint32, layout gputypes.VertexBufferLayout) error {
	declared := make([]uint32, 0, len(layout.Attributes))
	for _, a := range layout.Attributes {
		declared = append(declared, a.ShaderLocation)
	}
	slices.Sort(declared)
	if !slices.Equal(declared, inputs) {
		return fmt.Errorf("layout declares locations %v, shader reads %v", declared, inputs)
	}
	return nil
}

// vertexLocations collects @location bindings from the entry point's
// arguments, descending one level into struct arguments.
func vertexLocations(module *ir.Module, fn *ir.Function) []uint32 {
	var locs []uint32
	for _, arg := range fn.Arguments {
		if arg.Binding != nil {
			if loc, ok := (*arg.Binding).(ir.LocationBinding); ok {
				locs = append(locs, loc.Location)
			}
			continue
		}
		if int(arg.Type) >= len(module.Types) {
			continue
		}
		st, ok := module.Types[arg.Type].Inner.(ir.StructType)
		if !ok {
			continue
		}
		for _, member := range st.Members {
			if member.Binding == nil {
				continue
			}
			if loc, ok := (*member.Binding).(ir.LocationBinding); ok {
				locs = append(locs, loc.Location)
			}
		}
	}
	slices.Sort(locs)
	return locs
}

// wordsFromBytes converts little-endian SPIR-V bytes to 32-bit words.
func wordsFromBytes(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}
