// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// BufferTexture stores a flat array of records as texels in a 2D texture,
// for shaders that fetch records by linear index. Capacity grows to a
// roughly square power-of-two width and never shrinks, so repeated frames
// with similar data reuse the same allocation.
type BufferTexture struct {
	device hal.Device
	queue  hal.Queue
	label  string
	format gputypes.TextureFormat

	texture hal.Texture
	view    hal.TextureView
	width   int
	height  int
	area    int
}

// NewBufferTexture creates an empty buffer texture. A nil device yields a
// mock instance that tracks dimensions without GPU resources.
func NewBufferTexture(device hal.Device, queue hal.Queue, label string, format gputypes.TextureFormat) *BufferTexture {
	return &BufferTexture{
		device: device,
		queue:  queue,
		label:  label,
		format: format,
	}
}

// bytesPerTexel returns the texel stride of the supported buffer formats.
func bytesPerTexel(format gputypes.TextureFormat) int {
	switch format {
	case gputypes.TextureFormatRGBA32Float:
		return 16
	case gputypes.TextureFormatR32Float:
		return 4
	case gputypes.TextureFormatR8Unorm:
		return 1
	default:
		return 4
	}
}

// Upload replaces the texture contents with data. The data length must be a
// multiple of the texel size. The full rows are written as one block and a
// trailing partial row is zero padded to the texture width.
func (b *BufferTexture) Upload(data []byte) error {
	stride := bytesPerTexel(b.format)
	if len(data)%stride != 0 {
		return fmt.Errorf("render: %s: upload size %d is not a multiple of texel size %d",
			b.label, len(data), stride)
	}
	area := len(data) / stride
	// Capacity never drops below one texel, so the view exists for bind
	// groups even when no records have been uploaded yet.
	minArea := area
	if minArea < 1 {
		minArea = 1
	}
	if err := b.ensureCapacity(minArea); err != nil {
		return err
	}
	b.area = area
	if b.device == nil || area == 0 {
		return nil
	}

	rowBytes := b.width * stride
	mainRows := area / b.width
	if mainRows > 0 {
		b.write(0, mainRows, data[:mainRows*rowBytes])
	}
	if rem := area % b.width; rem > 0 {
		row := make([]byte, rowBytes)
		copy(row, data[mainRows*rowBytes:])
		b.write(mainRows, 1, row)
	}
	return nil
}

func (b *BufferTexture) write(firstRow, rowCount int, data []byte) {
	b.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  b.texture,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: 0, Y: uint32(firstRow), Z: 0},
			Aspect:   gputypes.TextureAspectAll,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(b.width * bytesPerTexel(b.format)),
			RowsPerImage: uint32(rowCount),
		},
		&hal.Extent3D{
			Width:              uint32(b.width),
			Height:             uint32(rowCount),
			DepthOrArrayLayers: 1,
		},
	)
}

// ensureCapacity grows the backing texture to hold area texels. The width
// is the power of two nearest the square root of the area, which keeps the
// texture within dimension limits on both axes.
func (b *BufferTexture) ensureCapacity(area int) error {
	if area <= b.width*b.height {
		return nil
	}
	width := 1
	for width*width < area {
		width *= 2
	}
	if width < b.width {
		width = b.width
	}
	height := (area + width - 1) / width
	if height < b.height {
		height = b.height
	}

	if b.device != nil {
		b.destroyTexture()
		texture, err := b.device.CreateTexture(&hal.TextureDescriptor{
			Label: b.label,
			Size: hal.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        b.format,
			Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("render: create %s buffer texture: %w", b.label, err)
		}
		view, err := b.device.CreateTextureView(texture, &hal.TextureViewDescriptor{
			Label: b.label + "_view",
		})
		if err != nil {
			b.device.DestroyTexture(texture)
			return fmt.Errorf("render: create %s buffer texture view: %w", b.label, err)
		}
		b.texture = texture
		b.view = view
	}
	b.width = width
	b.height = height
	slogger().Debug("grew buffer texture", "label", b.label, "width", width, "height", height)
	return nil
}

// Dims reports the current texture dimensions in texels.
func (b *BufferTexture) Dims() (width, height int) {
	return b.width, b.height
}

// Len reports the number of texels uploaded by the last Upload call.
func (b *BufferTexture) Len() int {
	return b.area
}

// View returns the texture view for binding, nil in mock mode.
func (b *BufferTexture) View() hal.TextureView {
	return b.view
}

func (b *BufferTexture) destroyTexture() {
	if b.view != nil {
		b.device.DestroyTextureView(b.view)
		b.view = nil
	}
	if b.texture != nil {
		b.device.DestroyTexture(b.texture)
		b.texture = nil
	}
}

// Destroy releases the GPU resources. The capacity is reset.
func (b *BufferTexture) Destroy() {
	if b.device != nil {
		b.destroyTexture()
	}
	b.width, b.height, b.area = 0, 0, 0
}
