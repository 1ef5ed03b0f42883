// Package playground draws one mesh per frame through a WebGPU-style
// hardware abstraction layer.
//
// # Overview
//
// playground is the smallest useful GPU rendering loop built on the GoGPU
// ecosystem: a device session bound to a window surface, a render pipeline
// compiled from WGSL, vertex, index and texture uploads, and a frame
// renderer that clears the swapchain image, issues one indexed draw and
// presents it.
//
// # Quick Start
//
//	import "github.com/gogpu/playground"
//
//	session, err := playground.NewSession(ctx, target, 800, 600)
//	if err != nil {
//	    return err
//	}
//	defer session.Destroy()
//
//	scene, err := playground.Setup(ctx, session, playground.VariantColored, playground.Assets{})
//	if err != nil {
//	    return err
//	}
//	defer scene.Destroy()
//
//	for running {
//	    if _, err := scene.Renderer.RenderOrRecover(); err != nil {
//	        return err
//	    }
//	}
//
// # Variants
//
// A Variant selects the vertex shape, the shaders and the bindings while
// the session and renderer stay the same:
//   - VariantMinimal: position-only triangle in a constant color
//   - VariantColored: pentagon with per-vertex colors
//   - VariantTextured: pentagon sampling a texture at group 0
//   - VariantProjected: textured pentagon seen through a camera uniform at group 1
//
// # Errors
//
// Startup failures match ErrDeviceUnavailable, ErrSurfaceCreationFailed,
// ErrShaderCompile, ErrLayoutMismatch or ErrImageDecode and are fatal.
// Per-frame failures match ErrSurfaceLost or ErrTimeout; Render reports
// them without retrying and RenderOrRecover applies the recreate-and-retry
// policy once.
//
// # Threading
//
// A Session and its Renderer are driven from one goroutine, normally the
// window system's main thread. Pipelines, meshes and textures are
// immutable after creation.
package playground

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
