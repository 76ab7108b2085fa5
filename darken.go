// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package edgeaa

// Stem darkening thickens glyph outlines slightly at small sizes to
// compensate for the thinning that linear-light antialiasing produces.
// The factors are in em units per pixel-per-em of font size.

// StemDarkeningFactors is the per-axis embolden amount added per
// pixel-per-em of font size, in em units.
var StemDarkeningFactors = Point{X: 0.0121, Y: 0.0121 * 1.25}

// MaxStemDarkeningAmount caps the total embolden amount in em units.
var MaxStemDarkeningAmount = Point{X: 0.3, Y: 0.3}

// MaxStemDarkeningPixelsPerEm is the font size above which stem darkening
// is no longer applied.
const MaxStemDarkeningPixelsPerEm float32 = 72.0

// StemDarkeningAmount returns the embolden amount in em units for a font
// rendered at the given pixels-per-em, clamped per axis.
func StemDarkeningAmount(pixelsPerEm float32) Point {
	if pixelsPerEm > MaxStemDarkeningPixelsPerEm {
		return Point{}
	}
	return Point{
		X: minf(StemDarkeningFactors.X*pixelsPerEm, MaxStemDarkeningAmount.X),
		Y: minf(StemDarkeningFactors.Y*pixelsPerEm, MaxStemDarkeningAmount.Y),
	}
}

// DefringingKernel is a 4-tap filter applied during subpixel resolve to
// suppress color fringes. Taps are symmetric around the center sample.
type DefringingKernel [4]float32

// Defringing kernels matching the rasterization conventions of the two
// common font rendering stacks.
var (
	DefringingKernelCoreGraphics = DefringingKernel{0.033165660, 0.102074051, 0.221434336, 0.286651906}
	DefringingKernelFreeType     = DefringingKernel{0.0, 0.031372549, 0.301960784, 0.337254902}
)
