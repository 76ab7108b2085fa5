// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// pipelineSet bundles one render pipeline with the layouts it was created
// from, so the whole chain can be destroyed together.
type pipelineSet struct {
	bindGroupLayout hal.BindGroupLayout
	pipelineLayout  hal.PipelineLayout
	pipeline        hal.RenderPipeline
}

func (p *pipelineSet) destroy(device hal.Device) {
	if device == nil {
		return
	}
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipelineLayout != nil {
		device.DestroyPipelineLayout(p.pipelineLayout)
		p.pipelineLayout = nil
	}
	if p.bindGroupLayout != nil {
		device.DestroyBindGroupLayout(p.bindGroupLayout)
		p.bindGroupLayout = nil
	}
}

// coverageBlend accumulates signed fractional coverage: the shader output
// is subtracted from the running total in the accumulation target.
func coverageBlend() gputypes.BlendState {
	component := gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorOne,
		DstFactor: gputypes.BlendFactorOne,
		Operation: gputypes.BlendOperationReverseSubtract,
	}
	return gputypes.BlendState{Color: component, Alpha: component}
}

func samplerEntry(binding uint32) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageFragment,
		Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
	}
}

// newPipelineSet builds the layout chain and pipeline for one pass. The
// fragment target and depth state come from the caller since they differ
// per pass and per antialiasing policy.
func newPipelineSet(device hal.Device, label string, entries []gputypes.BindGroupLayoutEntry, desc *hal.RenderPipelineDescriptor) (pipelineSet, error) {
	var set pipelineSet

	bgl, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   label + "_bgl",
		Entries: entries,
	})
	if err != nil {
		return set, fmt.Errorf("render: create %s bind group layout: %w", label, err)
	}
	set.bindGroupLayout = bgl

	layout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bgl},
	})
	if err != nil {
		set.destroy(device)
		return pipelineSet{}, fmt.Errorf("render: create %s pipeline layout: %w", label, err)
	}
	set.pipelineLayout = layout

	desc.Label = label
	desc.Layout = layout
	pipeline, err := device.CreateRenderPipeline(desc)
	if err != nil {
		set.destroy(device)
		return pipelineSet{}, fmt.Errorf("render: create %s pipeline: %w", label, err)
	}
	set.pipeline = pipeline
	return set, nil
}

// directDepthState is the depth configuration of the direct pass: write
// per-path depth so later coverage passes can test against it.
func directDepthState() *hal.DepthStencilState {
	return &hal.DepthStencilState{
		Format:            depthStencilFormat,
		DepthWriteEnabled: true,
		DepthCompare:      gputypes.CompareFunctionLessEqual,
		StencilFront: hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionAlways,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationKeep,
		},
		StencilBack: hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionAlways,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationKeep,
		},
		StencilReadMask:  0xFF,
		StencilWriteMask: 0xFF,
	}
}

// coverageDepthState tests EQUAL against the direct pass depth without
// writing, confining accumulation to pixels the edge's path owns.
func coverageDepthState() *hal.DepthStencilState {
	s := directDepthState()
	s.DepthWriteEnabled = false
	s.DepthCompare = gputypes.CompareFunctionEqual
	return s
}

var directBindGroupEntries = []gputypes.BindGroupLayoutEntry{
	{
		Binding:    0,
		Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
	},
	{
		Binding:    1,
		Visibility: gputypes.ShaderStageVertex,
		Texture: &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeUnfilterableFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		},
	},
	{
		Binding:    2,
		Visibility: gputypes.ShaderStageVertex,
		Texture: &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeUnfilterableFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		},
	},
	samplerEntry(3),
}

// newInteriorPipeline renders path interior triangles: position plus path
// ID per vertex, indexed, opaque color output with per-path depth.
func newInteriorPipeline(device hal.Device, shaders *ShaderSet) (pipelineSet, error) {
	return newPipelineSet(device, "direct_interior", directBindGroupEntries, &hal.RenderPipelineDescriptor{
		Vertex: hal.VertexState{
			Module:     shaders.Direct,
			EntryPoint: "vs_interior",
			Buffers: []gputypes.VertexBufferLayout{{
				ArrayStride: 12,
				StepMode:    gputypes.VertexStepModeVertex,
				Attributes: []gputypes.VertexAttribute{
					{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					{Format: gputypes.VertexFormatFloat32, Offset: 8, ShaderLocation: 1},
				},
			}},
		},
		Fragment: &hal.FragmentState{
			Module:     shaders.Direct,
			EntryPoint: "fs_interior",
			Targets: []gputypes.ColorTargetState{{
				Format:    colorFormat,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		DepthStencil: directDepthState(),
		Multisample:  gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
	})
}

// newCurvePipeline renders Loop-Blinn curve triangles, discarding fragments
// outside the implicit quadratic.
func newCurvePipeline(device hal.Device, shaders *ShaderSet) (pipelineSet, error) {
	return newPipelineSet(device, "direct_curve", directBindGroupEntries, &hal.RenderPipelineDescriptor{
		Vertex: hal.VertexState{
			Module:     shaders.Direct,
			EntryPoint: "vs_curve",
			Buffers: []gputypes.VertexBufferLayout{{
				ArrayStride: 24,
				StepMode:    gputypes.VertexStepModeVertex,
				Attributes: []gputypes.VertexAttribute{
					{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					{Format: gputypes.VertexFormatFloat32, Offset: 8, ShaderLocation: 1},
					{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 2},
					{Format: gputypes.VertexFormatFloat32, Offset: 20, ShaderLocation: 3},
				},
			}},
		},
		Fragment: &hal.FragmentState{
			Module:     shaders.Direct,
			EntryPoint: "fs_curve",
			Targets: []gputypes.ColorTargetState{{
				Format:    colorFormat,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		DepthStencil: directDepthState(),
		Multisample:  gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
	})
}

var coverageBindGroupEntries = []gputypes.BindGroupLayoutEntry{
	{
		Binding:    0,
		Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
	},
	{
		Binding:    1,
		Visibility: gputypes.ShaderStageVertex,
		Texture: &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeUnfilterableFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		},
	},
}

// newCoveragePipeline builds one edge accumulation pipeline. Lines and
// curves differ only in entry point and instance layout; both draw a
// four-vertex strip per instance into the accumulation target with
// reverse-subtract blending.
func newCoveragePipeline(device hal.Device, shaders *ShaderSet, curve bool) (pipelineSet, error) {
	label := "coverage_line"
	entry := "vs_line"
	layout := gputypes.VertexBufferLayout{
		ArrayStride: 20,
		StepMode:    gputypes.VertexStepModeInstance,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			{Format: gputypes.VertexFormatFloat32, Offset: 16, ShaderLocation: 2},
		},
	}
	if curve {
		label = "coverage_curve"
		entry = "vs_curve"
		layout = gputypes.VertexBufferLayout{
			ArrayStride: 28,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 16, ShaderLocation: 2},
				{Format: gputypes.VertexFormatFloat32, Offset: 24, ShaderLocation: 3},
			},
		}
	}

	blend := coverageBlend()
	return newPipelineSet(device, label, coverageBindGroupEntries, &hal.RenderPipelineDescriptor{
		Vertex: hal.VertexState{
			Module:     shaders.EdgeCoverage,
			EntryPoint: entry,
			Buffers:    []gputypes.VertexBufferLayout{layout},
		},
		Fragment: &hal.FragmentState{
			Module:     shaders.EdgeCoverage,
			EntryPoint: "fs_edge",
			Targets: []gputypes.ColorTargetState{{
				Format:    accumulationFormat,
				Blend:     &blend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		DepthStencil: coverageDepthState(),
		Multisample:  gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleStrip,
			CullMode: gputypes.CullModeNone,
		},
	})
}

var resolveBindGroupEntries = []gputypes.BindGroupLayoutEntry{
	{
		Binding:    0,
		Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
	},
	{
		Binding:    1,
		Visibility: gputypes.ShaderStageFragment,
		Texture: &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeUnfilterableFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		},
	},
	{
		Binding:    2,
		Visibility: gputypes.ShaderStageFragment,
		Texture: &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeUnfilterableFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		},
	},
	samplerEntry(3),
}

// newResolvePipeline builds the full-screen resolve pass compositing
// accumulated coverage over the direct color. The subpixel entry applies
// the LCD defringing kernel.
func newResolvePipeline(device hal.Device, shaders *ShaderSet, destFormat gputypes.TextureFormat, subpixel bool) (pipelineSet, error) {
	label, entry := "resolve_mono", "fs_mono"
	if subpixel {
		label, entry = "resolve_subpixel", "fs_subpixel"
	}
	return newPipelineSet(device, label, resolveBindGroupEntries, &hal.RenderPipelineDescriptor{
		Vertex: hal.VertexState{
			Module:     shaders.Resolve,
			EntryPoint: "vs_resolve",
		},
		Fragment: &hal.FragmentState{
			Module:     shaders.Resolve,
			EntryPoint: entry,
			Targets: []gputypes.ColorTargetState{{
				Format:    destFormat,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
	})
}

var blitBindGroupEntries = []gputypes.BindGroupLayoutEntry{
	{
		Binding:    0,
		Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
	},
	{
		Binding:    1,
		Visibility: gputypes.ShaderStageFragment,
		Texture: &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		},
	},
	samplerEntry(2),
}

// newBlitPipeline builds the supersample box-filter down-blit.
func newBlitPipeline(device hal.Device, shaders *ShaderSet, destFormat gputypes.TextureFormat) (pipelineSet, error) {
	return newPipelineSet(device, "blit", blitBindGroupEntries, &hal.RenderPipelineDescriptor{
		Vertex: hal.VertexState{
			Module:     shaders.Blit,
			EntryPoint: "vs_blit",
		},
		Fragment: &hal.FragmentState{
			Module:     shaders.Blit,
			EntryPoint: "fs_blit",
			Targets: []gputypes.ColorTargetState{{
				Format:    destFormat,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
	})
}
