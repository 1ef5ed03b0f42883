// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package playground

import (
	"context"
	"image"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/playground/camera"
)

// Assets are the inputs a variant reads besides its embedded shaders.
type Assets struct {
	// Image holds encoded image bytes. Empty means DefaultImage.
	Image []byte

	// Decoded, when set, is used instead of decoding Image.
	Decoded *image.NRGBA
}

// Scene owns everything a variant draws with: layouts, pipeline, mesh,
// texture, camera buffer, bind groups and the renderer.
type Scene struct {
	Variant  Variant
	Renderer *Renderer

	device   hal.Device
	pipeline *Pipeline
	mesh     *Mesh
	texture  *Texture
	camera   hal.Buffer
	layouts  []hal.BindGroupLayout
	groups   []hal.BindGroup
}

// Setup builds the pipeline and resources of variant on session and returns
// a scene ready to render. Texture uploads are submitted and waited for
// before Setup returns.
func Setup(ctx context.Context, session *Session, variant Variant, assets Assets, opts ...RendererOption) (*Scene, error) {
	device, queue := session.GPU()
	s := &Scene{Variant: variant, device: device}
	ok := false
	defer func() {
		if !ok {
			s.Destroy()
		}
	}()

	vsSrc, fsSrc, err := variant.ShaderSources()
	if err != nil {
		return nil, err
	}

	var rendererOpts []RendererOption
	if variant.UsesTexture() {
		layout, err := TextureBindGroupLayout(device)
		if err != nil {
			return nil, err
		}
		s.layouts = append(s.layouts, layout)

		img := assets.Decoded
		if img == nil {
			data := assets.Image
			if len(data) == 0 {
				data = DefaultImage
			}
			if img, err = DecodeImage(data); err != nil {
				return nil, err
			}
		}
		tex, cmd, err := UploadImage(device, "diffuse_texture", img)
		if err != nil {
			return nil, err
		}
		s.texture = tex
		if err := session.SubmitAndWait(cmd); err != nil {
			cmd.Release()
			return nil, err
		}

		group, err := NewTextureBindGroup(device, layout, tex)
		if err != nil {
			return nil, err
		}
		s.groups = append(s.groups, group)
		rendererOpts = append(rendererOpts, WithBindGroup(0, group))
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "playground: setup")
	}

	if variant.UsesCamera() {
		layout, err := UniformBindGroupLayout(device)
		if err != nil {
			return nil, err
		}
		s.layouts = append(s.layouts, layout)

		w, h := session.Extent()
		cam := camera.New(1)
		cam.SetAspect(w, h)
		u := camera.NewUniform()
		u.Update(cam)
		if s.camera, err = NewUniformBuffer(device, queue, "camera_buffer", u.Bytes()); err != nil {
			return nil, err
		}
		group, err := NewUniformBindGroup(device, layout, s.camera, camera.UniformSize)
		if err != nil {
			return nil, err
		}
		s.groups = append(s.groups, group)
		rendererOpts = append(rendererOpts, WithBindGroup(1, group), WithCamera(cam, s.camera))
	}

	if s.pipeline, err = BuildPipeline(device, PipelineDescriptor{
		Label:            variant.String(),
		VertexSource:     vsSrc,
		FragmentSource:   fsSrc,
		VertexLayout:     variant.Layout(),
		BindGroupLayouts: s.layouts,
		TargetFormat:     session.Format(),
	}); err != nil {
		return nil, err
	}

	if s.mesh, err = UploadMesh(device, queue, variant.Geometry()); err != nil {
		return nil, err
	}

	s.Renderer = NewRenderer(session, s.pipeline, s.mesh, append(rendererOpts, opts...)...)
	session.log.Info("scene ready", "variant", variant.String(), "indices", s.mesh.IndexCount)
	ok = true
	return s, nil
}

// Destroy releases the renderer and every resource Setup created, in
// reverse order. Safe to call more than once.
func (s *Scene) Destroy() {
	if s.device == nil {
		return
	}
	if s.Renderer != nil {
		s.Renderer.Destroy()
		s.Renderer = nil
	}
	if s.mesh != nil {
		s.mesh.Destroy(s.device)
		s.mesh = nil
	}
	if s.pipeline != nil {
		s.pipeline.Destroy()
		s.pipeline = nil
	}
	for _, g := range s.groups {
		s.device.DestroyBindGroup(g)
	}
	s.groups = nil
	if s.camera != nil {
		s.device.DestroyBuffer(s.camera)
		s.camera = nil
	}
	if s.texture != nil {
		s.texture.Destroy(s.device)
		s.texture = nil
	}
	for _, l := range s.layouts {
		s.device.DestroyBindGroupLayout(l)
	}
	s.layouts = nil
	s.device = nil
}
