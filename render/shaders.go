// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Embedded WGSL shader sources, compiled to SPIR-V with naga at init.

//go:embed shaders/direct.wgsl
var directShaderSource string

//go:embed shaders/edge_coverage.wgsl
var edgeCoverageShaderSource string

//go:embed shaders/resolve.wgsl
var resolveShaderSource string

//go:embed shaders/blit.wgsl
var blitShaderSource string

// ErrShaderSource is returned when an embedded shader source is missing.
var ErrShaderSource = errors.New("render: shader source is empty")

// ShaderSet holds the compiled shader modules for every render pass. The
// well-known program set is fixed; presence is validated once here rather
// than at every draw. Modules are nil in mock mode.
type ShaderSet struct {
	Direct       hal.ShaderModule
	EdgeCoverage hal.ShaderModule
	Resolve      hal.ShaderModule
	Blit         hal.ShaderModule

	device hal.Device
}

// shaderSources pairs each module with its WGSL text for validation and
// compilation.
func shaderSources() []struct {
	label  string
	source string
} {
	return []struct {
		label  string
		source string
	}{
		{"direct", directShaderSource},
		{"edge_coverage", edgeCoverageShaderSource},
		{"resolve", resolveShaderSource},
		{"blit", blitShaderSource},
	}
}

// NewShaderSet validates the embedded sources and compiles them to SPIR-V.
// With a nil device only the presence check runs; no modules are created.
func NewShaderSet(device hal.Device) (*ShaderSet, error) {
	s := &ShaderSet{device: device}
	modules := [...]*hal.ShaderModule{&s.Direct, &s.EdgeCoverage, &s.Resolve, &s.Blit}

	for i, src := range shaderSources() {
		module, err := compileModule(device, src.label, src.source)
		if err != nil {
			s.Destroy()
			return nil, err
		}
		*modules[i] = module
	}
	return s, nil
}

// compileModule compiles one WGSL source to SPIR-V and creates its module.
func compileModule(device hal.Device, label, source string) (hal.ShaderModule, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: %s", ErrShaderSource, label)
	}
	if device == nil {
		return nil, nil
	}

	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("render: compile %s shader: %w", label, err)
	}
	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("render: create %s shader module: %w", label, err)
	}
	return module, nil
}

// Destroy releases the shader modules. Safe on a partially built set.
func (s *ShaderSet) Destroy() {
	if s.device == nil {
		return
	}
	for _, m := range []hal.ShaderModule{s.Blit, s.Resolve, s.EdgeCoverage, s.Direct} {
		if m != nil {
			s.device.DestroyShaderModule(m)
		}
	}
	s.Direct, s.EdgeCoverage, s.Resolve, s.Blit = nil, nil, nil, nil
}
