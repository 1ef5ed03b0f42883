// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package playground

import (
	"embed"
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/playground/mesh"
)

//go:embed shaders/*.wgsl
var shaderFS embed.FS

// DefaultImage is the texture used when no image is supplied.
//
//go:embed assets/tree.png
var DefaultImage []byte

// Variant selects the vertex shape, shaders and bindings of the pipeline.
// All variants share the same session and renderer.
type Variant uint8

const (
	// VariantMinimal draws a position-only triangle in a fixed color.
	VariantMinimal Variant = iota

	// VariantColored draws the pentagon with per-vertex colors.
	VariantColored

	// VariantTextured draws the pentagon sampling a texture.
	VariantTextured

	// VariantProjected draws the textured pentagon through a camera
	// view-projection uniform.
	VariantProjected
)

var variantNames = [...]string{
	VariantMinimal:   "minimal",
	VariantColored:   "colored",
	VariantTextured:  "textured",
	VariantProjected: "projected",
}

// String returns the lower-case variant name.
func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", v)
}

// ParseVariant converts a name produced by String back into a Variant.
func ParseVariant(name string) (Variant, error) {
	for i, n := range variantNames {
		if strings.EqualFold(n, name) {
			return Variant(i), nil //nolint:gosec // bounded by variantNames
		}
	}
	return 0, fmt.Errorf("playground: unknown variant %q", name)
}

// Geometry returns the fixture geometry drawn by the variant.
func (v Variant) Geometry() mesh.Geometry {
	switch v {
	case VariantColored:
		return mesh.ColoredPentagon()
	case VariantTextured, VariantProjected:
		return mesh.TexturedPentagon()
	default:
		return mesh.Triangle()
	}
}

// Layout returns the vertex-buffer layout of the variant's vertex shape.
func (v Variant) Layout() gputypes.VertexBufferLayout {
	switch v {
	case VariantColored:
		return mesh.LayoutOf(mesh.ColorVertex{})
	case VariantTextured, VariantProjected:
		return mesh.LayoutOf(mesh.TexturedVertex{})
	default:
		return mesh.LayoutOf(mesh.PositionVertex{})
	}
}

// UsesTexture reports whether the variant samples a texture at group 0.
func (v Variant) UsesTexture() bool {
	return v == VariantTextured || v == VariantProjected
}

// UsesCamera reports whether the variant reads a camera uniform at group 1.
func (v Variant) UsesCamera() bool {
	return v == VariantProjected
}

// ShaderSources returns the WGSL vertex and fragment sources of the variant.
func (v Variant) ShaderSources() (vertex, fragment string, err error) {
	var vsName, fsName string
	switch v {
	case VariantMinimal:
		vsName, fsName = "minimal.vert.wgsl", "minimal.frag.wgsl"
	case VariantColored:
		vsName, fsName = "colored.vert.wgsl", "colored.frag.wgsl"
	case VariantTextured:
		vsName, fsName = "textured.vert.wgsl", "textured.frag.wgsl"
	case VariantProjected:
		vsName, fsName = "projected.vert.wgsl", "textured.frag.wgsl"
	default:
		return "", "", fmt.Errorf("playground: no shaders for %v", v)
	}
	vs, err := shaderFS.ReadFile("shaders/" + vsName)
	if err != nil {
		return "", "", err
	}
	fs, err := shaderFS.ReadFile("shaders/" + fsName)
	if err != nil {
		return "", "", err
	}
	return string(vs), string(fs), nil
}
