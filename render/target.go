// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Render target texture formats. Coverage accumulation needs a signed
// high-precision target, so winding sums can go negative before the
// resolve pass clamps them.
const (
	colorFormat        = gputypes.TextureFormatRGBA8Unorm
	depthStencilFormat = gputypes.TextureFormatDepth24PlusStencil8
	accumulationFormat = gputypes.TextureFormatRGBA32Float
)

// RenderTargetSet owns the offscreen textures one antialiasing strategy
// draws into. EnsureSize recreates them when the framebuffer size changes
// and is a no-op otherwise. All fields are nil in mock mode.
type RenderTargetSet struct {
	device hal.Device

	width  int
	height int

	ColorTexture        hal.Texture
	ColorView           hal.TextureView
	DepthStencilTexture hal.Texture
	DepthStencilView    hal.TextureView
	AccumulationTexture hal.Texture
	AccumulationView    hal.TextureView

	NearestSampler hal.Sampler
	LinearSampler  hal.Sampler

	// wantAccumulation selects whether the coverage target is allocated.
	// Direct-only strategies skip it.
	wantAccumulation bool
}

// NewRenderTargetSet creates an empty target set. Textures are allocated on
// the first EnsureSize call.
func NewRenderTargetSet(device hal.Device, wantAccumulation bool) (*RenderTargetSet, error) {
	t := &RenderTargetSet{
		device:           device,
		wantAccumulation: wantAccumulation,
	}
	if device == nil {
		return t, nil
	}

	nearest, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "render_nearest_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeNearest,
		MinFilter:    gputypes.FilterModeNearest,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create nearest sampler: %w", err)
	}
	t.NearestSampler = nearest

	linear, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "render_linear_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		device.DestroySampler(nearest)
		return nil, fmt.Errorf("render: create linear sampler: %w", err)
	}
	t.LinearSampler = linear
	return t, nil
}

// Size reports the current attachment size in pixels.
func (t *RenderTargetSet) Size() (width, height int) {
	return t.width, t.height
}

// EnsureSize makes the attachments match the given size, recreating them
// when it changes. Returns true when textures were recreated, so callers
// can rebuild bind groups that reference the old views.
func (t *RenderTargetSet) EnsureSize(width, height int) (bool, error) {
	if width == t.width && height == t.height {
		return false, nil
	}
	if width <= 0 || height <= 0 {
		return false, fmt.Errorf("render: invalid target size %dx%d", width, height)
	}

	if t.device == nil {
		t.width, t.height = width, height
		return true, nil
	}

	t.destroyTextures()

	var err error
	t.ColorTexture, t.ColorView, err = t.createTarget("render_color", width, height, colorFormat)
	if err == nil {
		t.DepthStencilTexture, t.DepthStencilView, err = t.createTarget("render_depth_stencil", width, height, depthStencilFormat)
	}
	if err == nil && t.wantAccumulation {
		t.AccumulationTexture, t.AccumulationView, err = t.createTarget("render_accumulation", width, height, accumulationFormat)
	}
	if err != nil {
		t.destroyTextures()
		return false, err
	}
	t.width, t.height = width, height
	slogger().Debug("resized render targets", "width", width, "height", height)
	return true, nil
}

func (t *RenderTargetSet) createTarget(label string, width, height int, format gputypes.TextureFormat) (hal.Texture, hal.TextureView, error) {
	texture, err := t.device.CreateTexture(&hal.TextureDescriptor{
		Label: label,
		Size: hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("render: create %s texture: %w", label, err)
	}
	view, err := t.device.CreateTextureView(texture, &hal.TextureViewDescriptor{
		Label: label + "_view",
	})
	if err != nil {
		t.device.DestroyTexture(texture)
		return nil, nil, fmt.Errorf("render: create %s view: %w", label, err)
	}
	return texture, view, nil
}

// colorPass builds a render pass descriptor targeting the color attachment.
func (t *RenderTargetSet) colorPass(label string, load gputypes.LoadOp, clear gputypes.Color, withDepth bool) *hal.RenderPassDescriptor {
	desc := &hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       t.ColorView,
			LoadOp:     load,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clear,
		}},
	}
	if withDepth {
		desc.DepthStencilAttachment = t.depthStencilAttachment(gputypes.LoadOpClear)
	}
	return desc
}

// accumulationPass builds the coverage accumulation pass. The depth buffer
// from the direct pass is loaded, not cleared, so coverage only lands on
// pixels whose depth matches the owning path.
func (t *RenderTargetSet) accumulationPass(label string) *hal.RenderPassDescriptor {
	return &hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       t.AccumulationView,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{},
		}},
		DepthStencilAttachment: t.depthStencilAttachment(gputypes.LoadOpLoad),
	}
}

func (t *RenderTargetSet) depthStencilAttachment(load gputypes.LoadOp) *hal.RenderPassDepthStencilAttachment {
	return &hal.RenderPassDepthStencilAttachment{
		View:              t.DepthStencilView,
		DepthLoadOp:       load,
		DepthStoreOp:      gputypes.StoreOpStore,
		DepthClearValue:   1.0,
		StencilLoadOp:     gputypes.LoadOpClear,
		StencilStoreOp:    gputypes.StoreOpDiscard,
		StencilClearValue: 0,
	}
}

func (t *RenderTargetSet) destroyTextures() {
	pairs := []struct {
		view    *hal.TextureView
		texture *hal.Texture
	}{
		{&t.AccumulationView, &t.AccumulationTexture},
		{&t.DepthStencilView, &t.DepthStencilTexture},
		{&t.ColorView, &t.ColorTexture},
	}
	for _, p := range pairs {
		if *p.view != nil {
			t.device.DestroyTextureView(*p.view)
			*p.view = nil
		}
		if *p.texture != nil {
			t.device.DestroyTexture(*p.texture)
			*p.texture = nil
		}
	}
}

// Destroy releases all GPU resources held by the target set.
func (t *RenderTargetSet) Destroy() {
	if t.device == nil {
		t.width, t.height = 0, 0
		return
	}
	t.destroyTextures()
	if t.LinearSampler != nil {
		t.device.DestroySampler(t.LinearSampler)
		t.LinearSampler = nil
	}
	if t.NearestSampler != nil {
		t.device.DestroySampler(t.NearestSampler)
		t.NearestSampler = nil
	}
	t.width, t.height = 0, 0
}
