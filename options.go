// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package edgeaa

import "fmt"

// AAVariant selects an antialiasing strategy.
type AAVariant int

const (
	// AANone renders directly with no extra antialiasing pass.
	AANone AAVariant = iota

	// AASupersample renders into an oversized target and down-filters.
	AASupersample

	// AAEdgeCoverage accumulates analytic per-edge coverage in a single
	// color, with no per-path depth separation.
	AAEdgeCoverage

	// AAEdgeCoverageMulticolor accumulates per-edge coverage with per-path
	// depth planes so overlapping paths of different colors resolve
	// independently.
	AAEdgeCoverageMulticolor

	// AAEdgeCoverageFast is the mesh-based edge-coverage variant that skips
	// the emboldening-aware edge setup. It cannot render stem darkening.
	AAEdgeCoverageFast

	// AAAdaptive switches between AAEdgeCoverage and AAEdgeCoverageFast per
	// frame depending on whether stem darkening is active.
	AAAdaptive
)

// String returns the variant name used in logs and diagnostics.
func (v AAVariant) String() string {
	switch v {
	case AANone:
		return "none"
	case AASupersample:
		return "ssaa"
	case AAEdgeCoverage:
		return "ecaa"
	case AAEdgeCoverageMulticolor:
		return "mcaa"
	case AAEdgeCoverageFast:
		return "ecaa-fast"
	case AAAdaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("AAVariant(%d)", int(v))
	}
}

// SubpixelMode controls LCD-style subpixel antialiasing.
type SubpixelMode int

const (
	// SubpixelOff disables subpixel antialiasing.
	SubpixelOff SubpixelMode = iota

	// SubpixelRGB enables subpixel antialiasing with 3x horizontal
	// supersampling for an RGB-striped display.
	SubpixelRGB
)

// Options selects and parameterizes an antialiasing strategy.
// The zero value is a usable configuration: direct rendering, no
// supersampling, no subpixel AA, no stem darkening.
type Options struct {
	// Variant is the antialiasing strategy to use.
	Variant AAVariant

	// Level is the supersampling factor for AASupersample. Values below 2
	// are clamped to 2; other variants ignore it.
	Level int

	// Subpixel enables LCD subpixel coverage. Only the edge-coverage
	// variants honor it.
	Subpixel SubpixelMode

	// StemDarkening is the embolden amount in em units, applied along
	// vertex normals. Zero disables stem darkening.
	StemDarkening Point

	// Multicolor configures blending and depth for multiple path colors.
	// Implied by AAEdgeCoverageMulticolor.
	Multicolor bool
}

// SupersampleScale returns the (x, y) resolution multiplier the options
// require for intermediate targets: (3, 1) when subpixel AA is on, the
// supersample level for AASupersample, and (1, 1) otherwise.
func (o Options) SupersampleScale() (int, int) {
	if o.Subpixel != SubpixelOff {
		return 3, 1
	}
	if o.Variant == AASupersample {
		level := o.Level
		if level < 2 {
			level = 2
		}
		return level, level
	}
	return 1, 1
}

// StemDarkeningEnabled reports whether any embolden amount is set.
func (o Options) StemDarkeningEnabled() bool {
	return o.StemDarkening.X != 0 || o.StemDarkening.Y != 0
}
