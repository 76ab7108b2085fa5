// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/edgeaa"
)

func TestVariantPolicyTable(t *testing.T) {
	tests := []struct {
		name         string
		variant      edgeaa.AAVariant
		accumulates  bool
		resolves     bool
		multicolor   bool
		supersamples bool
	}{
		{name: "none", variant: edgeaa.AANone},
		{name: "supersample", variant: edgeaa.AASupersample, multicolor: true, supersamples: true},
		{name: "edge coverage", variant: edgeaa.AAEdgeCoverage, accumulates: true, resolves: true},
		{name: "edge coverage multicolor", variant: edgeaa.AAEdgeCoverageMulticolor, accumulates: true, resolves: true, multicolor: true},
		{name: "edge coverage fast", variant: edgeaa.AAEdgeCoverageFast, accumulates: true, resolves: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := variantPolicies[tt.variant]
			if !ok {
				t.Fatalf("no policy for variant %v", tt.variant)
			}
			if p.accumulates != tt.accumulates {
				t.Errorf("accumulates = %v, want %v", p.accumulates, tt.accumulates)
			}
			if p.resolves != tt.resolves {
				t.Errorf("resolves = %v, want %v", p.resolves, tt.resolves)
			}
			if p.multicolor != tt.multicolor {
				t.Errorf("multicolor = %v, want %v", p.multicolor, tt.multicolor)
			}
			if p.supersamples != tt.supersamples {
				t.Errorf("supersamples = %v, want %v", p.supersamples, tt.supersamples)
			}
			if p.accumulates != p.resolves {
				t.Errorf("accumulates = %v but resolves = %v; coverage variants need both", p.accumulates, p.resolves)
			}
		})
	}
}

func TestVariantPolicyDepth(t *testing.T) {
	for variant, p := range variantPolicies {
		if !p.depthWrite {
			t.Errorf("variant %v: direct pass must write depth", variant)
		}
		if p.accumulates && !p.depthCompareEqual {
			t.Errorf("variant %v: accumulation requires the EQUAL depth test", variant)
		}
	}
}

func TestPolicyForAdaptive(t *testing.T) {
	darkened := edgeaa.Options{Variant: edgeaa.AAAdaptive, StemDarkening: edgeaa.Pt(0.02, 0.02)}
	plain := edgeaa.Options{Variant: edgeaa.AAAdaptive}

	if got, want := policyFor(edgeaa.AAAdaptive, darkened), variantPolicies[edgeaa.AAEdgeCoverage]; got != want {
		t.Errorf("policy with stem darkening = %+v, want %+v", got, want)
	}
	if got, want := policyFor(edgeaa.AAAdaptive, plain), variantPolicies[edgeaa.AAEdgeCoverageFast]; got != want {
		t.Errorf("policy without stem darkening = %+v, want %+v", got, want)
	}
}

func TestPolicyForUnknownVariant(t *testing.T) {
	got := policyFor(edgeaa.AAVariant(99), edgeaa.Options{})
	if want := variantPolicies[edgeaa.AANone]; got != want {
		t.Errorf("policy for unknown variant = %+v, want %+v", got, want)
	}
}
