// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/edgeaa"
)

func TestStrategyScale(t *testing.T) {
	tests := []struct {
		name string
		opts edgeaa.Options
		x, y int
	}{
		{
			name: "none is unscaled",
			opts: edgeaa.Options{Variant: edgeaa.AANone},
			x:    1, y: 1,
		},
		{
			name: "supersample uses level",
			opts: edgeaa.Options{Variant: edgeaa.AASupersample, Level: 4},
			x:    4, y: 4,
		},
		{
			name: "supersample level defaults to 2",
			opts: edgeaa.Options{Variant: edgeaa.AASupersample},
			x:    2, y: 2,
		},
		{
			name: "edge coverage is unscaled",
			opts: edgeaa.Options{Variant: edgeaa.AAEdgeCoverage},
			x:    1, y: 1,
		},
		{
			name: "subpixel triples horizontally",
			opts: edgeaa.Options{Variant: edgeaa.AAEdgeCoverage, Subpixel: edgeaa.SubpixelRGB},
			x:    3, y: 1,
		},
		{
			name: "multicolor ignores subpixel",
			opts: edgeaa.Options{Variant: edgeaa.AAEdgeCoverageMulticolor, Subpixel: edgeaa.SubpixelRGB},
			x:    1, y: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newPolicyStrategy(tt.opts.Variant, tt.opts)
			x, y := s.scale()
			if x != tt.x || y != tt.y {
				t.Errorf("scale() = (%d, %d), want (%d, %d)", x, y, tt.x, tt.y)
			}
		})
	}
}

func TestStrategyReadyLifecycle(t *testing.T) {
	r, err := NewRenderer(nil, Config{Options: edgeaa.Options{Variant: edgeaa.AAEdgeCoverage}})
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	defer r.Destroy()

	s := r.strategy
	if s.Ready() {
		t.Error("Ready() = true before any setup")
	}

	if err := r.AttachMeshes(testRenderLibrary(), testObjects()); err != nil {
		t.Fatalf("AttachMeshes() error = %v", err)
	}
	if s.Ready() {
		t.Error("Ready() = true with meshes but no framebuffer size")
	}

	if err := r.SetFramebufferSize(edgeaa.Sz(64, 32)); err != nil {
		t.Fatalf("SetFramebufferSize() error = %v", err)
	}
	if !s.Ready() {
		t.Error("Ready() = false after meshes and framebuffer size")
	}
}

func TestStrategySizeBeforeMeshes(t *testing.T) {
	r, err := NewRenderer(nil, Config{Options: edgeaa.Options{Variant: edgeaa.AANone}})
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	defer r.Destroy()

	// The lifecycle steps commute: sizing first is just as valid.
	if err := r.SetFramebufferSize(edgeaa.Sz(64, 32)); err != nil {
		t.Fatalf("SetFramebufferSize() error = %v", err)
	}
	if r.strategy.Ready() {
		t.Error("Ready() = true with size but no meshes")
	}
	if err := r.AttachMeshes(testRenderLibrary(), testObjects()); err != nil {
		t.Fatalf("AttachMeshes() error = %v", err)
	}
	if !r.strategy.Ready() {
		t.Error("Ready() = false after both steps")
	}
}

func TestStrategyRejectsEmptySize(t *testing.T) {
	r, err := NewRenderer(nil, Config{})
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	defer r.Destroy()

	if err := r.SetFramebufferSize(edgeaa.Sz(0, 32)); err == nil {
		t.Error("SetFramebufferSize(0x32) succeeded, want error")
	}
}

func TestAdaptiveStrategyDelegation(t *testing.T) {
	r, err := NewRenderer(nil, Config{Options: edgeaa.Options{Variant: edgeaa.AAAdaptive}})
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	defer r.Destroy()

	if got := r.Variant(); got != edgeaa.AAAdaptive {
		t.Fatalf("Variant() = %v, want AAAdaptive", got)
	}
	adaptive, ok := r.strategy.(*adaptiveStrategy)
	if !ok {
		t.Fatalf("strategy type = %T, want *adaptiveStrategy", r.strategy)
	}

	if got := adaptive.active(r); got != adaptive.fast {
		t.Error("active() without stem darkening = heavy, want fast")
	}
	r.SetStemDarkening(edgeaa.StemDarkeningAmount(24))
	if got := adaptive.active(r); got != adaptive.heavy {
		t.Error("active() with stem darkening = fast, want heavy")
	}
	if adaptive.heavy.variant != edgeaa.AAEdgeCoverage {
		t.Errorf("heavy variant = %v, want AAEdgeCoverage", adaptive.heavy.variant)
	}
	if adaptive.fast.variant != edgeaa.AAEdgeCoverageFast {
		t.Errorf("fast variant = %v, want AAEdgeCoverageFast", adaptive.fast.variant)
	}
}

func TestAdaptiveStrategyRendersBothModes(t *testing.T) {
	r, err := NewRenderer(nil, Config{Options: edgeaa.Options{Variant: edgeaa.AAAdaptive}})
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	defer r.Destroy()

	if err := r.AttachMeshes(testRenderLibrary(), testObjects()); err != nil {
		t.Fatalf("AttachMeshes() error = %v", err)
	}
	if err := r.SetFramebufferSize(edgeaa.Sz(64, 32)); err != nil {
		t.Fatalf("SetFramebufferSize() error = %v", err)
	}

	if err := r.RenderFrame(nil); err != nil {
		t.Errorf("RenderFrame() without stem darkening error = %v", err)
	}
	r.SetStemDarkening(edgeaa.StemDarkeningAmount(24))
	if err := r.RenderFrame(nil); err != nil {
		t.Errorf("RenderFrame() with stem darkening error = %v", err)
	}
}
