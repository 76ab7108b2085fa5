// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/edgeaa"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNotReady is returned when a frame is rendered before both meshes and
// a framebuffer size have been supplied to the active strategy.
var ErrNotReady = errors.New("render: strategy not ready")

// Frame carries the per-frame encoding state through the strategy pass
// sequence. The encoder is nil in mock mode.
type Frame struct {
	encoder hal.CommandEncoder
	dest    hal.TextureView
	size    edgeaa.Size

	resolveStarted bool
	background     gputypes.Color
}

// Strategy drives the render passes of one antialiasing variant. The frame
// sequence is fixed: PrepareForDirectRendering once, then AntialiasObject
// and ResolveAAForObject per object, then Resolve once.
type Strategy interface {
	Variant() edgeaa.AAVariant
	Init(r *Renderer) error
	AttachMeshes(r *Renderer) error
	SetFramebufferSize(r *Renderer, size edgeaa.Size) error
	Ready() bool

	PrepareForDirectRendering(r *Renderer, f *Frame) error
	AntialiasObject(r *Renderer, f *Frame, objectIndex int) error
	ResolveAAForObject(r *Renderer, f *Frame, objectIndex int) error
	Resolve(r *Renderer, f *Frame) error

	Destroy(r *Renderer)
}

// newStrategy builds the strategy for a variant. Every variant other than
// AAAdaptive is a policyStrategy parameterized by the policy table.
func newStrategy(variant edgeaa.AAVariant, opts edgeaa.Options) Strategy {
	if variant == edgeaa.AAAdaptive {
		return newAdaptiveStrategy(opts)
	}
	return newPolicyStrategy(variant, opts)
}

// Uniform buffer sizes in bytes, matching the WGSL structs.
const (
	frameUniformSize    = 32
	coverageUniformSize = 32
	resolveUniformSize  = 64
	blitUniformSize     = 16
)

// frameResources is the uniform buffer set one strategy owns. Buffers are
// allocated once at Init; contents are rewritten per frame. Per-object
// resolve uniforms are separate buffers because queued buffer writes all
// land before the frame's single submission.
type frameResources struct {
	frameUniforms    hal.Buffer
	coverUniforms    [2]hal.Buffer
	blitUniforms     hal.Buffer
	resolveUniforms  []hal.Buffer
	directBindGroup  hal.BindGroup
	coverBindGroups  [2]hal.BindGroup
	resolveBindGroup []hal.BindGroup
	blitBindGroup    hal.BindGroup
}

// windingUpper and windingLower index frameResources.coverUniforms. With
// reverse-subtract blending the destination accumulates dst - src, so
// upper edges carry winding -1 to add coverage and lower edges +1 to
// remove it.
const (
	windingUpper = 0
	windingLower = 1
)

// policyStrategy is the shared implementation behind every concrete
// variant, driven by its row of the policy table.
type policyStrategy struct {
	variant edgeaa.AAVariant
	policy  variantPolicy
	opts    edgeaa.Options

	targets *RenderTargetSet

	interior   pipelineSet
	curve      pipelineSet
	coverLine  pipelineSet
	coverCurve pipelineSet
	resolve    pipelineSet
	blit       pipelineSet

	res frameResources

	meshesAttached bool
	sized          bool
	fbSize         edgeaa.Size
	bindingsDirty  bool
}

func newPolicyStrategy(variant edgeaa.AAVariant, opts edgeaa.Options) *policyStrategy {
	return &policyStrategy{
		variant: variant,
		policy:  policyFor(variant, opts),
		opts:    opts,
	}
}

func (s *policyStrategy) Variant() edgeaa.AAVariant { return s.variant }

func (s *policyStrategy) Ready() bool { return s.meshesAttached && s.sized }

// scale returns the resolution multiplier of the intermediate targets.
func (s *policyStrategy) scale() (int, int) {
	if !s.policy.supersamples && !s.policy.subpixelCapable {
		return 1, 1
	}
	if s.opts.Subpixel != edgeaa.SubpixelOff && s.policy.subpixelCapable {
		return 3, 1
	}
	if s.policy.supersamples {
		return s.opts.SupersampleScale()
	}
	return 1, 1
}

func (s *policyStrategy) scaledSize() edgeaa.Size {
	sx, sy := s.scale()
	return s.fbSize.Scale(sx, sy)
}

func (s *policyStrategy) subpixel() bool {
	return s.opts.Subpixel != edgeaa.SubpixelOff && s.policy.subpixelCapable
}

// Init builds pipelines and allocates the uniform buffers. Mock mode keeps
// everything nil and only records configuration.
func (s *policyStrategy) Init(r *Renderer) error {
	targets, err := NewRenderTargetSet(r.device, s.policy.accumulates)
	if err != nil {
		return err
	}
	s.targets = targets

	if r.device == nil {
		return nil
	}

	if s.interior, err = newInteriorPipeline(r.device, r.shaders); err == nil {
		s.curve, err = newCurvePipeline(r.device, r.shaders)
	}
	if err == nil && s.policy.accumulates {
		if s.coverLine, err = newCoveragePipeline(r.device, r.shaders, false); err == nil {
			s.coverCurve, err = newCoveragePipeline(r.device, r.shaders, true)
		}
	}
	if err == nil && s.policy.resolves {
		s.resolve, err = newResolvePipeline(r.device, r.shaders, r.destFormat, s.subpixel())
	}
	if err == nil && !s.policy.resolves {
		s.blit, err = newBlitPipeline(r.device, r.shaders, r.destFormat)
	}
	if err == nil {
		err = s.createUniformBuffers(r)
	}
	if err != nil {
		s.Destroy(r)
		return err
	}
	return nil
}

func (s *policyStrategy) createUniformBuffers(r *Renderer) error {
	create := func(label string, size uint64) (hal.Buffer, error) {
		buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
			Label: label,
			Size:  size,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, fmt.Errorf("render: create %s uniform buffer: %w", label, err)
		}
		return buf, nil
	}

	var err error
	if s.res.frameUniforms, err = create("frame_uniforms", frameUniformSize); err != nil {
		return err
	}
	if s.policy.accumulates {
		if s.res.coverUniforms[windingUpper], err = create("cover_uniforms_upper", coverageUniformSize); err != nil {
			return err
		}
		if s.res.coverUniforms[windingLower], err = create("cover_uniforms_lower", coverageUniformSize); err != nil {
			return err
		}
	}
	if !s.policy.resolves {
		if s.res.blitUniforms, err = create("blit_uniforms", blitUniformSize); err != nil {
			return err
		}
	}
	return nil
}

// AttachMeshes sizes the per-object resolve uniform buffers. The mesh
// geometry itself lives on the renderer.
func (s *policyStrategy) AttachMeshes(r *Renderer) error {
	if r.meshes == nil {
		return errors.New("render: no meshes attached")
	}
	if r.device != nil && s.policy.resolves {
		for _, buf := range s.res.resolveUniforms {
			r.device.DestroyBuffer(buf)
		}
		s.res.resolveUniforms = s.res.resolveUniforms[:0]
		for i := range r.objects {
			buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
				Label: fmt.Sprintf("resolve_uniforms_%d", i),
				Size:  resolveUniformSize,
				Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
			})
			if err != nil {
				return fmt.Errorf("render: create resolve uniform buffer: %w", err)
			}
			s.res.resolveUniforms = append(s.res.resolveUniforms, buf)
		}
	}
	s.meshesAttached = true
	s.bindingsDirty = true
	return nil
}

func (s *policyStrategy) SetFramebufferSize(r *Renderer, size edgeaa.Size) error {
	if size.IsEmpty() {
		return fmt.Errorf("render: invalid framebuffer size %dx%d", size.Width, size.Height)
	}
	s.fbSize = size
	scaled := s.scaledSize()
	if _, err := s.targets.EnsureSize(scaled.Width, scaled.Height); err != nil {
		return err
	}
	s.sized = true
	s.bindingsDirty = true
	return nil
}

func textureViewResource(view hal.TextureView) gputypes.TextureViewBinding {
	return gputypes.TextureViewBinding{TextureView: view.NativeHandle()}
}

func samplerResource(s hal.Sampler) gputypes.SamplerBinding {
	return gputypes.SamplerBinding{Sampler: s.NativeHandle()}
}

// rebuildBindGroups recreates every bind group after meshes attach or the
// targets resize, since either can replace the texture views they bind.
func (s *policyStrategy) rebuildBindGroups(r *Renderer) error {
	s.destroyBindGroups(r)

	bg, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "direct_bind_group",
		Layout: s.interior.bindGroupLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: s.res.frameUniforms.NativeHandle(), Offset: 0, Size: frameUniformSize,
			}},
			{Binding: 1, Resource: textureViewResource(r.pathTransforms.View())},
			{Binding: 2, Resource: textureViewResource(r.pathColors.View())},
			{Binding: 3, Resource: samplerResource(s.targets.NearestSampler)},
		},
	})
	if err != nil {
		return fmt.Errorf("render: create direct bind group: %w", err)
	}
	s.res.directBindGroup = bg

	if s.policy.accumulates {
		for k := windingUpper; k <= windingLower; k++ {
			bg, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
				Label:  "coverage_bind_group",
				Layout: s.coverLine.bindGroupLayout,
				Entries: []gputypes.BindGroupEntry{
					{Binding: 0, Resource: gputypes.BufferBinding{
						Buffer: s.res.coverUniforms[k].NativeHandle(), Offset: 0, Size: coverageUniformSize,
					}},
					{Binding: 1, Resource: textureViewResource(r.pathBounds.View())},
				},
			})
			if err != nil {
				return fmt.Errorf("render: create coverage bind group: %w", err)
			}
			s.res.coverBindGroups[k] = bg
		}
	}

	if s.policy.resolves {
		for i, buf := range s.res.resolveUniforms {
			bg, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
				Label:  fmt.Sprintf("resolve_bind_group_%d", i),
				Layout: s.resolve.bindGroupLayout,
				Entries: []gputypes.BindGroupEntry{
					{Binding: 0, Resource: gputypes.BufferBinding{
						Buffer: buf.NativeHandle(), Offset: 0, Size: resolveUniformSize,
					}},
					{Binding: 1, Resource: textureViewResource(s.targets.AccumulationView)},
					{Binding: 2, Resource: textureViewResource(s.targets.ColorView)},
					{Binding: 3, Resource: samplerResource(s.targets.NearestSampler)},
				},
			})
			if err != nil {
				return fmt.Errorf("render: create resolve bind group: %w", err)
			}
			s.res.resolveBindGroup = append(s.res.resolveBindGroup, bg)
		}
	} else {
		bg, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  "blit_bind_group",
			Layout: s.blit.bindGroupLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{
					Buffer: s.res.blitUniforms.NativeHandle(), Offset: 0, Size: blitUniformSize,
				}},
				{Binding: 1, Resource: textureViewResource(s.targets.ColorView)},
				{Binding: 2, Resource: samplerResource(s.targets.LinearSampler)},
			},
		})
		if err != nil {
			return fmt.Errorf("render: create blit bind group: %w", err)
		}
		s.res.blitBindGroup = bg
	}
	s.bindingsDirty = false
	return nil
}

// writeUniforms refreshes every uniform buffer for the coming frame.
func (s *policyStrategy) writeUniforms(r *Renderer, f *Frame) {
	scaled := s.scaledSize()
	sx, sy := s.scale()
	tw, th := r.pathTransforms.Dims()
	cw, ch := r.pathColors.Dims()
	bw, bh := r.pathBounds.Dims()
	pathCount := float32(r.meshes.pathCount)

	r.queue.WriteBuffer(s.res.frameUniforms, 0, floatBytes([]float32{
		float32(scaled.Width), float32(scaled.Height),
		float32(tw), float32(th),
		float32(cw), float32(ch),
		pathCount, 0,
	}))

	if s.policy.accumulates {
		for k, winding := range []float32{-1, 1} {
			r.queue.WriteBuffer(s.res.coverUniforms[k], 0, floatBytes([]float32{
				float32(scaled.Width), float32(scaled.Height),
				float32(bw), float32(bh),
				winding, float32(sx), float32(sy), pathCount,
			}))
		}
	}

	if s.policy.resolves {
		kernel := s.resolveKernel()
		bg := f.background
		for i, obj := range r.objects {
			if i >= len(s.res.resolveUniforms) {
				break
			}
			r.queue.WriteBuffer(s.res.resolveUniforms[i], 0, floatBytes([]float32{
				float32(f.size.Width), float32(f.size.Height),
				float32(scaled.Width), float32(scaled.Height),
				kernel[0], kernel[1], kernel[2], kernel[3],
				float32(bg.R), float32(bg.G), float32(bg.B), float32(bg.A),
				obj.Color[0], obj.Color[1], obj.Color[2], obj.Color[3],
			}))
		}
	} else {
		r.queue.WriteBuffer(s.res.blitUniforms, 0, floatBytes([]float32{
			float32(f.size.Width), float32(f.size.Height),
			float32(sx), float32(sy),
		}))
	}
}

// resolveKernel picks the defringing kernel for subpixel output; mono
// resolve uses an identity kernel that reads only the center tap.
func (s *policyStrategy) resolveKernel() edgeaa.DefringingKernel {
	if s.subpixel() {
		return edgeaa.DefringingKernelCoreGraphics
	}
	return edgeaa.DefringingKernel{0, 0, 0, 1}
}

// PrepareForDirectRendering runs the direct pass: every object's interiors
// and Loop-Blinn curves into the color target with per-path depth.
func (s *policyStrategy) PrepareForDirectRendering(r *Renderer, f *Frame) error {
	if !s.Ready() {
		return ErrNotReady
	}
	if r.device == nil {
		return nil
	}
	if s.bindingsDirty {
		if err := s.rebuildBindGroups(r); err != nil {
			return err
		}
	}
	s.writeUniforms(r, f)

	scaled := s.scaledSize()
	rp := f.encoder.BeginRenderPass(s.targets.colorPass(
		"direct_pass", gputypes.LoadOpClear, gputypes.Color{}, true))
	rp.SetViewport(0, 0, float32(scaled.Width), float32(scaled.Height), 0, 1)
	rp.SetScissorRect(0, 0, uint32(scaled.Width), uint32(scaled.Height))

	if r.meshes.interiorIndexCount > 0 {
		rp.SetPipeline(s.interior.pipeline)
		rp.SetBindGroup(0, s.res.directBindGroup, nil)
		rp.SetVertexBuffer(0, r.meshes.interiorVertices, 0)
		rp.SetIndexBuffer(r.meshes.interiorIndices, gputypes.IndexFormatUint32, 0)
		rp.DrawIndexed(r.meshes.interiorIndexCount, 1, 0, 0, 0)
	}
	if r.meshes.curveIndexCount > 0 {
		rp.SetPipeline(s.curve.pipeline)
		rp.SetBindGroup(0, s.res.directBindGroup, nil)
		rp.SetVertexBuffer(0, r.meshes.curveVertices, 0)
		rp.SetIndexBuffer(r.meshes.curveIndices, gputypes.IndexFormatUint32, 0)
		rp.DrawIndexed(r.meshes.curveIndexCount, 1, 0, 0, 0)
	}
	rp.End()
	return nil
}

// AntialiasObject accumulates fractional edge coverage for one object: one
// instanced quad per edge, four roles, depth-tested EQUAL against the
// direct pass.
func (s *policyStrategy) AntialiasObject(r *Renderer, f *Frame, objectIndex int) error {
	if !s.policy.accumulates {
		return nil
	}
	if !s.Ready() {
		return ErrNotReady
	}
	if r.device == nil {
		return nil
	}
	obj := &r.objects[objectIndex]
	scaled := s.scaledSize()

	rp := f.encoder.BeginRenderPass(s.targets.accumulationPass("coverage_pass"))
	rp.SetViewport(0, 0, float32(scaled.Width), float32(scaled.Height), 0, 1)
	rp.SetScissorRect(0, 0, uint32(scaled.Width), uint32(scaled.Height))

	draws := []struct {
		role     edgeRole
		pipeline *pipelineSet
		winding  int
	}{
		{edgeUpperLines, &s.coverLine, windingUpper},
		{edgeLowerLines, &s.coverLine, windingLower},
		{edgeUpperCurves, &s.coverCurve, windingUpper},
		{edgeLowerCurves, &s.coverCurve, windingLower},
	}
	for _, d := range draws {
		run := obj.edges[d.role]
		if run.count == 0 {
			continue
		}
		rp.SetPipeline(d.pipeline.pipeline)
		rp.SetBindGroup(0, s.res.coverBindGroups[d.winding], nil)
		rp.SetVertexBuffer(0, r.meshes.edgeInstances[d.role], 0)
		rp.Draw(4, run.count, 0, run.first)
	}
	rp.End()
	return nil
}

// ResolveAAForObject composites one object's accumulated coverage over the
// direct color into the destination. The first object clears the
// destination to the frame background.
func (s *policyStrategy) ResolveAAForObject(r *Renderer, f *Frame, objectIndex int) error {
	if !s.policy.resolves {
		return nil
	}
	if !s.Ready() {
		return ErrNotReady
	}
	if r.device == nil {
		f.resolveStarted = true
		return nil
	}
	if objectIndex >= len(s.res.resolveBindGroup) {
		return fmt.Errorf("render: no resolve bindings for object %d", objectIndex)
	}

	load := gputypes.LoadOpClear
	if f.resolveStarted {
		load = gputypes.LoadOpLoad
	}
	rp := f.encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "resolve_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       f.dest,
			LoadOp:     load,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: f.background,
		}},
	})
	rp.SetViewport(0, 0, float32(f.size.Width), float32(f.size.Height), 0, 1)
	rp.SetScissorRect(0, 0, uint32(f.size.Width), uint32(f.size.Height))
	rp.SetPipeline(s.resolve.pipeline)
	rp.SetBindGroup(0, s.res.resolveBindGroup[objectIndex], nil)
	rp.Draw(3, 1, 0, 0)
	rp.End()
	f.resolveStarted = true
	return nil
}

// Resolve finishes the frame for variants without a per-object resolve:
// the direct target is box-filtered down to the destination. Variants that
// already composited per object are done.
func (s *policyStrategy) Resolve(r *Renderer, f *Frame) error {
	if s.policy.resolves {
		return nil
	}
	if !s.Ready() {
		return ErrNotReady
	}
	if r.device == nil {
		return nil
	}

	rp := f.encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "blit_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       f.dest,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: f.background,
		}},
	})
	rp.SetViewport(0, 0, float32(f.size.Width), float32(f.size.Height), 0, 1)
	rp.SetScissorRect(0, 0, uint32(f.size.Width), uint32(f.size.Height))
	rp.SetPipeline(s.blit.pipeline)
	rp.SetBindGroup(0, s.res.blitBindGroup, nil)
	rp.Draw(3, 1, 0, 0)
	rp.End()
	return nil
}

func (s *policyStrategy) destroyBindGroups(r *Renderer) {
	if r.device == nil {
		return
	}
	if s.res.blitBindGroup != nil {
		r.device.DestroyBindGroup(s.res.blitBindGroup)
		s.res.blitBindGroup = nil
	}
	for _, bg := range s.res.resolveBindGroup {
		r.device.DestroyBindGroup(bg)
	}
	s.res.resolveBindGroup = s.res.resolveBindGroup[:0]
	for k, bg := range s.res.coverBindGroups {
		if bg != nil {
			r.device.DestroyBindGroup(bg)
			s.res.coverBindGroups[k] = nil
		}
	}
	if s.res.directBindGroup != nil {
		r.device.DestroyBindGroup(s.res.directBindGroup)
		s.res.directBindGroup = nil
	}
}

// Destroy releases everything in reverse creation order. Safe on a
// partially initialized strategy.
func (s *policyStrategy) Destroy(r *Renderer) {
	if r.device != nil {
		s.destroyBindGroups(r)
		for _, buf := range s.res.resolveUniforms {
			r.device.DestroyBuffer(buf)
		}
		s.res.resolveUniforms = nil
		for _, buf := range []hal.Buffer{
			s.res.blitUniforms,
			s.res.coverUniforms[windingLower], s.res.coverUniforms[windingUpper],
			s.res.frameUniforms,
		} {
			if buf != nil {
				r.device.DestroyBuffer(buf)
			}
		}
		s.res.blitUniforms = nil
		s.res.coverUniforms = [2]hal.Buffer{}
		s.res.frameUniforms = nil

		s.blit.destroy(r.device)
		s.resolve.destroy(r.device)
		s.coverCurve.destroy(r.device)
		s.coverLine.destroy(r.device)
		s.curve.destroy(r.device)
		s.interior.destroy(r.device)
	}
	if s.targets != nil {
		s.targets.Destroy()
		s.targets = nil
	}
	s.meshesAttached = false
	s.sized = false
}
