// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/edgeaa"
)

// adaptiveStrategy holds two fully independent sub-strategies and routes
// each frame to one of them: the exact coverage variant when stem
// darkening is active, the fast variant otherwise. Both subs go through
// the whole lifecycle so switching between frames needs no setup work.
type adaptiveStrategy struct {
	heavy *policyStrategy
	fast  *policyStrategy
}

func newAdaptiveStrategy(opts edgeaa.Options) *adaptiveStrategy {
	return &adaptiveStrategy{
		heavy: newPolicyStrategy(edgeaa.AAEdgeCoverage, opts),
		fast:  newPolicyStrategy(edgeaa.AAEdgeCoverageFast, opts),
	}
}

// active picks the sub-strategy for the renderer's current stem darkening
// state.
func (s *adaptiveStrategy) active(r *Renderer) *policyStrategy {
	if r.opts.StemDarkeningEnabled() {
		return s.heavy
	}
	return s.fast
}

func (s *adaptiveStrategy) Variant() edgeaa.AAVariant { return edgeaa.AAAdaptive }

func (s *adaptiveStrategy) Ready() bool {
	return s.heavy.Ready() && s.fast.Ready()
}

func (s *adaptiveStrategy) Init(r *Renderer) error {
	if err := s.heavy.Init(r); err != nil {
		return err
	}
	if err := s.fast.Init(r); err != nil {
		s.heavy.Destroy(r)
		return err
	}
	return nil
}

func (s *adaptiveStrategy) AttachMeshes(r *Renderer) error {
	if err := s.heavy.AttachMeshes(r); err != nil {
		return err
	}
	return s.fast.AttachMeshes(r)
}

func (s *adaptiveStrategy) SetFramebufferSize(r *Renderer, size edgeaa.Size) error {
	if err := s.heavy.SetFramebufferSize(r, size); err != nil {
		return err
	}
	return s.fast.SetFramebufferSize(r, size)
}

func (s *adaptiveStrategy) PrepareForDirectRendering(r *Renderer, f *Frame) error {
	return s.active(r).PrepareForDirectRendering(r, f)
}

func (s *adaptiveStrategy) AntialiasObject(r *Renderer, f *Frame, objectIndex int) error {
	return s.active(r).AntialiasObject(r, f, objectIndex)
}

func (s *adaptiveStrategy) ResolveAAForObject(r *Renderer, f *Frame, objectIndex int) error {
	return s.active(r).ResolveAAForObject(r, f, objectIndex)
}

func (s *adaptiveStrategy) Resolve(r *Renderer, f *Frame) error {
	return s.active(r).Resolve(r, f)
}

func (s *adaptiveStrategy) Destroy(r *Renderer) {
	s.fast.Destroy(r)
	s.heavy.Destroy(r)
}
