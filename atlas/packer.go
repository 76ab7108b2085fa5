// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package atlas places rendered glyph outlines on a shared texture sheet.
//
// Sheets are composed of vertically stacked shelves of uniform height, and
// no glyph may cross a shelf. A Builder collects glyph instances, reusing
// already-placed glyphs when the same outline is requested again at the
// same subpixel offset, and emits the ordered path-ID list and per-instance
// transforms consumed by mesh expansion and rendering.
package atlas

import "github.com/gogpu/edgeaa"

// freeRect is a reusable region left over from earlier placements.
type freeRect struct {
	x, y, w, h int
}

func (r freeRect) area() int { return r.w * r.h }

// Packer allocates rectangles on a sheet of fixed width and unbounded
// height. Space freed by guillotine splits is reused best-fit by area.
type Packer struct {
	freeRects        []freeRect
	availableWidth   int
	shelfHeight      int
	shelfCount       int
	widthOfLastShelf int
}

// NewPacker returns a packer for a sheet of the given width whose shelves
// are shelfHeight pixels tall.
func NewPacker(availableWidth, shelfHeight int) *Packer {
	return &Packer{
		availableWidth: availableWidth,
		shelfHeight:    shelfHeight,
	}
}

// Pack allocates a rectangle of the given size and returns its top-left
// position. A one-pixel border is reserved around the rectangle so that
// neighboring glyphs never bleed into each other when sampled. Pack
// reports false when the rectangle can never fit.
func (p *Packer) Pack(size edgeaa.Size) (x, y int, ok bool) {
	allocW := size.Width + 2
	allocH := size.Height + 2

	// Nothing taller than a shelf can ever be placed.
	if allocH > p.shelfHeight || allocW > p.availableWidth {
		return 0, 0, false
	}

	chosenIndex := -1
	for i, r := range p.freeRects {
		if allocW > r.w || allocH > r.h {
			continue
		}
		if chosenIndex < 0 || r.area() < p.freeRects[chosenIndex].area() {
			chosenIndex = i
		}
	}

	var chosen freeRect
	if chosenIndex < 0 {
		// Open a new shelf.
		chosen = freeRect{
			x: 0,
			y: p.shelfHeight * p.shelfCount,
			w: p.availableWidth,
			h: p.shelfHeight,
		}
		p.shelfCount++
		p.widthOfLastShelf = 0
	} else {
		chosen = p.freeRects[chosenIndex]
		last := len(p.freeRects) - 1
		p.freeRects[chosenIndex] = p.freeRects[last]
		p.freeRects = p.freeRects[:last]
	}

	// Guillotine below and to the right of the allocation.
	if below := (freeRect{chosen.x, chosen.y + allocH, allocW, chosen.h - allocH}); below.w > 0 && below.h > 0 {
		p.freeRects = append(p.freeRects, below)
	}
	if right := (freeRect{chosen.x + allocW, chosen.y, chosen.w - allocW, chosen.h}); right.w > 0 && right.h > 0 {
		p.freeRects = append(p.freeRects, right)
	}

	if chosen.y+chosen.h >= p.shelfHeight*p.shelfCount && p.widthOfLastShelf < chosen.x+chosen.w {
		p.widthOfLastShelf = chosen.x + chosen.w
	}

	return chosen.x + 1, chosen.y + 1, true
}

// AvailableWidth returns the sheet width the packer was created with.
func (p *Packer) AvailableWidth() int { return p.availableWidth }

// ShelfHeight returns the uniform shelf height.
func (p *Packer) ShelfHeight() int { return p.shelfHeight }

// Height returns the total sheet height allocated so far.
func (p *Packer) Height() int { return p.shelfHeight * p.shelfCount }
