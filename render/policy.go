// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/edgeaa"
)

// variantPolicy captures how one antialiasing variant drives the frame:
// which passes run, how depth is used during direct rendering, and which
// subpixel and multicolor capabilities it supports.
type variantPolicy struct {
	// depthWrite and depthCompareEqual control the direct pass. Coverage
	// variants first lay down per-path depth, then accumulate coverage only
	// where depth matches.
	depthWrite        bool
	depthCompareEqual bool

	// accumulates selects the edge coverage accumulation pass.
	accumulates bool

	// resolves selects the final resolve pass over the accumulation target.
	resolves bool

	// multicolor allows per-path colors in a single object.
	multicolor bool

	// supersamples renders at an enlarged framebuffer and box-filters down.
	supersamples bool

	// subpixelCapable permits LCD subpixel resolve for this variant.
	subpixelCapable bool
}

var variantPolicies = map[edgeaa.AAVariant]variantPolicy{
	edgeaa.AANone: {
		depthWrite: true,
	},
	edgeaa.AASupersample: {
		depthWrite:      true,
		supersamples:    true,
		multicolor:      true,
		subpixelCapable: true,
	},
	edgeaa.AAEdgeCoverage: {
		depthWrite:        true,
		depthCompareEqual: true,
		accumulates:       true,
		resolves:          true,
		subpixelCapable:   true,
	},
	edgeaa.AAEdgeCoverageMulticolor: {
		depthWrite:        true,
		depthCompareEqual: true,
		accumulates:       true,
		resolves:          true,
		multicolor:        true,
	},
	edgeaa.AAEdgeCoverageFast: {
		depthWrite:        true,
		depthCompareEqual: true,
		accumulates:       true,
		resolves:          true,
		subpixelCapable:   true,
	},
}

// policyFor resolves the policy for a variant under the given options.
// AAAdaptive follows the heavier coverage variant when stem darkening is
// active and the fast variant otherwise, so hinted text keeps exact curve
// coverage while plain text takes the cheaper path.
func policyFor(variant edgeaa.AAVariant, opts edgeaa.Options) variantPolicy {
	if variant == edgeaa.AAAdaptive {
		variant = adaptiveVariant(opts)
	}
	p, ok := variantPolicies[variant]
	if !ok {
		return variantPolicies[edgeaa.AANone]
	}
	return p
}

// adaptiveVariant picks the concrete variant AAAdaptive delegates to.
func adaptiveVariant(opts edgeaa.Options) edgeaa.AAVariant {
	if opts.StemDarkeningEnabled() {
		return edgeaa.AAEdgeCoverage
	}
	return edgeaa.AAEdgeCoverageFast
}
