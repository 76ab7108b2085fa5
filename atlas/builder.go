// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"errors"
	"fmt"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/edgeaa"
)

// Builder errors.
var (
	// ErrAtlasFull is returned when a glyph cannot be placed on the sheet.
	ErrAtlasFull = errors.New("atlas: no space left")
)

// subpixelGranularity is the number of distinct horizontal subpixel
// positions a glyph may be rendered at. Offsets are quantized to quarter
// pixels so nearly identical instances share one atlas slot.
const subpixelGranularity = 4

// QuantizeOffset rounds a horizontal subpixel offset to the nearest
// quarter pixel.
func QuantizeOffset(offset fixed.Int26_6) fixed.Int26_6 {
	step := fixed.Int26_6(64 / subpixelGranularity)
	return (offset + step/2) / step * step
}

// BuilderOptions configures a glyph atlas builder.
type BuilderOptions struct {
	// AvailableWidth is the sheet width in pixels. 1024 or 2048 makes
	// efficient use of the space on current hardware.
	AvailableWidth int

	// ShelfHeight is the uniform shelf height. It must be at least the
	// tallest glyph that will be placed, plus the two-pixel border.
	ShelfHeight int
}

// Glyph is one placed glyph instance.
type Glyph struct {
	// PathID is the source path in the attached mesh library.
	PathID uint16

	// Origin is the subpixel top-left position of the glyph on the sheet.
	Origin edgeaa.Point

	// Bounds is the glyph outline bounds in path space.
	Bounds edgeaa.Rect

	// Offset is the quantized horizontal subpixel offset.
	Offset fixed.Int26_6
}

type glyphKey struct {
	pathID uint16
	offset fixed.Int26_6
}

// Builder packs glyph instances onto a sheet and records the ordered
// instance list. The same path at the same quantized subpixel offset is
// placed only once; later requests return the existing slot.
type Builder struct {
	packer    *Packer
	glyphs    []Glyph
	positions map[glyphKey]int
}

// NewBuilder returns a builder over a fresh sheet.
func NewBuilder(opts BuilderOptions) (*Builder, error) {
	if opts.AvailableWidth <= 2 || opts.ShelfHeight <= 2 {
		return nil, fmt.Errorf("atlas: sheet %dx%d leaves no usable space",
			opts.AvailableWidth, opts.ShelfHeight)
	}
	return &Builder{
		packer:    NewPacker(opts.AvailableWidth, opts.ShelfHeight),
		positions: make(map[glyphKey]int),
	}, nil
}

// Pack places one glyph instance and returns it. bounds is the outline
// bounding rectangle in pixel units at the target size; offset is the
// horizontal subpixel offset, quantized to quarter pixels before placement.
//
// Returns ErrAtlasFull when the glyph cannot fit on the sheet.
func (b *Builder) Pack(pathID uint16, bounds edgeaa.Rect, offset fixed.Int26_6) (Glyph, error) {
	offset = QuantizeOffset(offset)
	key := glyphKey{pathID: pathID, offset: offset}
	if i, ok := b.positions[key]; ok {
		return b.glyphs[i], nil
	}

	frac := float32(offset) / 64
	size := pixelSize(bounds, frac)
	x, y, ok := b.packer.Pack(size)
	if !ok {
		return Glyph{}, fmt.Errorf("%w: glyph %dx%d", ErrAtlasFull, size.Width, size.Height)
	}

	g := Glyph{
		PathID: pathID,
		Origin: edgeaa.Pt(float32(x)+frac, float32(y)),
		Bounds: bounds,
		Offset: offset,
	}
	b.positions[key] = len(b.glyphs)
	b.glyphs = append(b.glyphs, g)
	return g, nil
}

// pixelSize is the whole-pixel footprint of subpixel bounds shifted right
// by frac.
func pixelSize(bounds edgeaa.Rect, frac float32) edgeaa.Size {
	left := floorf(bounds.MinX + frac)
	right := ceilf(bounds.MaxX + frac)
	top := floorf(bounds.MinY)
	bottom := ceilf(bounds.MaxY)
	return edgeaa.Sz(right-left, bottom-top)
}

// Len returns the number of distinct placed glyphs.
func (b *Builder) Len() int { return len(b.glyphs) }

// Glyphs returns the placed instances in placement order.
func (b *Builder) Glyphs() []Glyph { return b.glyphs }

// PathIDs returns the source path IDs in placement order. The slice is the
// instance list for mesh expansion: instance i becomes expanded path i+1.
func (b *Builder) PathIDs() []uint16 {
	ids := make([]uint16, len(b.glyphs))
	for i, g := range b.glyphs {
		ids[i] = g.PathID
	}
	return ids
}

// Transforms returns one translation per placed glyph mapping its outline
// from path space to its slot on the sheet, in placement order.
func (b *Builder) Transforms() []edgeaa.Transform {
	ts := make([]edgeaa.Transform, len(b.glyphs))
	for i, g := range b.glyphs {
		ts[i] = edgeaa.TranslateTransform(g.Origin.X-g.Bounds.MinX, g.Origin.Y-g.Bounds.MinY)
	}
	return ts
}

// SheetSize returns the pixel size of the sheet region used so far.
func (b *Builder) SheetSize() edgeaa.Size {
	return edgeaa.Sz(b.packer.AvailableWidth(), b.packer.Height())
}

func floorf(v float32) int {
	i := int(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return i
}

func ceilf(v float32) int {
	i := int(v)
	if v > 0 && float32(i) != v {
		i++
	}
	return i
}
