// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package playground

import (
	"bytes"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// TextureFormat is the format of every uploaded image texture.
const TextureFormat = gputypes.TextureFormatRGBA8UnormSrgb

// bytesPerPixel of TextureFormat.
const bytesPerPixel = 4

// copyPitchAlignment is the row pitch granularity of buffer-to-texture
// copies. DX12 rejects pitches that are not a multiple of 256.
const copyPitchAlignment = 256

// DecodeOptions controls how image bytes become RGBA8 pixels.
type DecodeOptions struct {
	// ExpandOpaque converts images without an alpha channel to RGBA with
	// alpha 255 instead of rejecting them.
	ExpandOpaque bool
}

// DecodeImage decodes PNG, JPEG, GIF, BMP, TIFF or WebP bytes into
// straight-alpha RGBA8 pixels. Malformed input and images without an
// alpha channel fail with ErrImageDecode.
func DecodeImage(data []byte) (*image.NRGBA, error) {
	return DecodeOptions{}.Decode(data)
}

// Decode decodes data according to o.
func (o DecodeOptions) Decode(data []byte) (*image.NRGBA, error) {
	if len(data) == 0 {
		return nil, markf(nil, ErrImageDecode, "playground: decode image: no data")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, markf(err, ErrImageDecode, "playground: decode image")
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, markf(nil, ErrImageDecode, "playground: decode %s: empty image", format)
	}
	if !hasAlpha(img) && !o.ExpandOpaque {
		return nil, markf(nil, ErrImageDecode,
			"playground: decode %s: %T has no alpha channel", format, img.ColorModel())
	}

	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return n, nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst, nil
}

// hasAlpha reports whether the decoder produced a straight-alpha pixel
// model. Go's decoders use RGBA and RGBA64 for opaque truecolor images.
func hasAlpha(img image.Image) bool {
	m := img.ColorModel()
	if _, ok := m.(color.Palette); ok {
		return true
	}
	switch m {
	case color.NRGBAModel, color.NRGBA64Model, color.NYCbCrAModel, color.AlphaModel, color.Alpha16Model:
		return true
	}
	return false
}

// Texture is a sampled 2D image on the device.
type Texture struct {
	Raw     hal.Texture
	View    hal.TextureView
	Sampler hal.Sampler
	Extent  hal.Extent3D
	Format  gputypes.TextureFormat
}

// Destroy releases the sampler, view and texture.
func (t *Texture) Destroy(device hal.Device) {
	if t.Sampler != nil {
		device.DestroySampler(t.Sampler)
		t.Sampler = nil
	}
	if t.View != nil {
		device.DestroyTextureView(t.View)
		t.View = nil
	}
	if t.Raw != nil {
		device.DestroyTexture(t.Raw)
		t.Raw = nil
	}
}

// CopyCommand is a recorded, unsubmitted upload together with the staging
// buffer it reads from. The staging buffer lives until Release.
type CopyCommand struct {
	device    hal.Device
	cmd       hal.CommandBuffer
	staging   hal.Buffer
	submitted bool
}

// Submit hands the copy to queue. A command is submitted at most once.
func (c *CopyCommand) Submit(queue hal.Queue) error {
	if c.cmd == nil {
		return errors.New("playground: copy command released")
	}
	if c.submitted {
		return errors.New("playground: copy command already submitted")
	}
	if _, err := queue.Submit([]hal.CommandBuffer{c.cmd}); err != nil {
		return errors.Wrap(err, "playground: submit texture upload")
	}
	c.submitted = true
	return nil
}

// Submitted reports whether Submit succeeded.
func (c *CopyCommand) Submitted() bool { return c.submitted }

// Release frees the command buffer and staging buffer. Call it only after
// the queue has finished the copy, or without ever submitting.
func (c *CopyCommand) Release() {
	if c.cmd != nil {
		c.device.FreeCommandBuffer(c.cmd)
		c.cmd = nil
	}
	if c.staging != nil {
		c.device.DestroyBuffer(c.staging)
		c.staging = nil
	}
}

// UploadTexture decodes data and prepares a texture for it. The returned
// CopyCommand fills the texture and must be submitted by the caller before
// the texture is sampled. On a decode failure nothing is created on the
// device.
func UploadTexture(device hal.Device, data []byte) (*Texture, *CopyCommand, error) {
	img, err := DecodeImage(data)
	if err != nil {
		return nil, nil, err
	}
	return UploadImage(device, "diffuse_texture", img)
}

// UploadImage creates a texture sized to img and records the copy of its
// pixels. Staging rows are padded to copyPitchAlignment bytes.
func UploadImage(device hal.Device, label string, img *image.NRGBA) (*Texture, *CopyCommand, error) {
	b := img.Bounds()
	w, h := uint32(b.Dx()), uint32(b.Dy()) //nolint:gosec // image bounds are non-negative
	if w == 0 || h == 0 {
		return nil, nil, markf(nil, ErrImageDecode, "playground: upload %q: empty image", label)
	}
	extent := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}
	rowBytes := bytesPerPixel * w
	bytesPerRow := uint32(alignUp(uint64(rowBytes), copyPitchAlignment)) //nolint:gosec // at most 255 bytes above a uint32 row
	size := uint64(bytesPerRow) * uint64(h)

	tex := &Texture{Extent: extent, Format: TextureFormat}
	cmd := &CopyCommand{device: device}
	fail := func(err error, msg string) (*Texture, *CopyCommand, error) {
		cmd.Release()
		tex.Destroy(device)
		return nil, nil, errors.Wrapf(err, "playground: upload %q: %s", label, msg)
	}

	var err error
	tex.Raw, err = device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        TextureFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fail(err, "create texture")
	}

	if cmd.staging, err = device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_staging",
		Size:  alignUp(size, copyAlignment),
		Usage: gputypes.BufferUsageMapWrite | gputypes.BufferUsageCopySrc,
	}); err != nil {
		return fail(err, "create staging buffer")
	}
	mapping, err := device.MapBuffer(cmd.staging, 0, size)
	if err != nil {
		return fail(err, "map staging buffer")
	}
	dst := unsafe.Slice((*byte)(mapping.Ptr), size)
	clear(dst)
	for y := range int(h) {
		row := img.Pix[y*img.Stride : y*img.Stride+int(rowBytes)]
		copy(dst[y*int(bytesPerRow):], row)
	}
	if err := device.UnmapBuffer(cmd.staging); err != nil {
		return fail(err, "unmap staging buffer")
	}

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label + "_upload"})
	if err != nil {
		return fail(err, "create encoder")
	}
	if err := encoder.BeginEncoding(label + "_upload"); err != nil {
		encoder.DiscardEncoding()
		return fail(err, "begin encoding")
	}
	colorRange := hal.TextureRange{Aspect: gputypes.TextureAspectAll, MipLevelCount: 1, ArrayLayerCount: 1}
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: tex.Raw,
		Range:   colorRange,
		Usage: hal.TextureUsageTransition{
			OldUsage: 0,
			NewUsage: gputypes.TextureUsageCopyDst,
		},
	}})
	encoder.CopyBufferToTexture(cmd.staging, tex.Raw, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: bytesPerRow, RowsPerImage: h},
		TextureBase: hal.ImageCopyTexture{
			Texture:  tex.Raw,
			MipLevel: 0,
			Origin:   hal.Origin3D{},
			Aspect:   gputypes.TextureAspectAll,
		},
		Size: extent,
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: tex.Raw,
		Range:   colorRange,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopyDst,
			NewUsage: gputypes.TextureUsageTextureBinding,
		},
	}})
	if cmd.cmd, err = encoder.EndEncoding(); err != nil {
		encoder.DiscardEncoding()
		return fail(err, "end encoding")
	}

	if tex.View, err = device.CreateTextureView(tex.Raw, &hal.TextureViewDescriptor{
		Label:           label + "_view",
		Format:          TextureFormat,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	}); err != nil {
		return fail(err, "create view")
	}

	if tex.Sampler, err = device.CreateSampler(DiffuseSamplerDescriptor(label + "_sampler")); err != nil {
		return fail(err, "create sampler")
	}

	Logger().Debug("texture recorded", "label", label, "width", w, "height", h, "bytes", size)
	return tex, cmd, nil
}

// DiffuseSamplerDescriptor returns the sampler state of uploaded textures:
// clamp-to-edge on every axis, linear magnification, nearest minification
// and mip selection. Compare stays undefined, which the HAL treats as a
// non-comparison sampler; any other value would make it a comparison
// sampler and break the filtering binding.
func DiffuseSamplerDescriptor(label string) *hal.SamplerDescriptor {
	return &hal.SamplerDescriptor{
		Label:        label,
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeNearest,
		MipmapFilter: gputypes.FilterModeNearest,
		LodMinClamp:  -100,
		LodMaxClamp:  100,
		Compare:      gputypes.CompareFunctionUndefined,
		Anisotropy:   1,
	}
}

// NewTextureBindGroup binds the texture view at slot 0 and its sampler at
// slot 1 of a layout made by TextureBindGroupLayout.
func NewTextureBindGroup(device hal.Device, layout hal.BindGroupLayout, tex *Texture) (hal.BindGroup, error) {
	group, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "diffuse_bind_group",
		Layout: layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: tex.View.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: tex.Sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "playground: create texture bind group")
	}
	return group, nil
}
