package atlas

import (
	"testing"

	"github.com/gogpu/edgeaa"
)

func TestPackFirstShelf(t *testing.T) {
	p := NewPacker(256, 32)

	// The one-pixel border shifts every origin by (1, 1).
	x, y, ok := p.Pack(edgeaa.Sz(10, 10))
	if !ok {
		t.Fatal("Pack(10x10) reported no space on an empty sheet")
	}
	if x != 1 || y != 1 {
		t.Errorf("first origin = (%d, %d), want (1, 1)", x, y)
	}
	if got := p.Height(); got != 32 {
		t.Errorf("Height() = %d, want 32", got)
	}
}

func TestPackReusesFreedSpace(t *testing.T) {
	p := NewPacker(64, 32)

	// Fills the shelf width exactly (62 + 2 border = 64).
	if _, _, ok := p.Pack(edgeaa.Sz(62, 10)); !ok {
		t.Fatal("Pack(62x10) failed")
	}
	// Fits below the first allocation on the same shelf.
	x, y, ok := p.Pack(edgeaa.Sz(20, 10))
	if !ok {
		t.Fatal("Pack(20x10) failed")
	}
	if y != 13 {
		t.Errorf("second origin = (%d, %d), want y = 13 below the first allocation", x, y)
	}
	if got := p.Height(); got != 32 {
		t.Errorf("Height() = %d, want 32 (no new shelf)", got)
	}
}

func TestPackOpensNewShelf(t *testing.T) {
	p := NewPacker(64, 16)

	// Consumes the whole first shelf.
	if _, _, ok := p.Pack(edgeaa.Sz(62, 14)); !ok {
		t.Fatal("Pack(62x14) failed")
	}
	x, y, ok := p.Pack(edgeaa.Sz(30, 14))
	if !ok {
		t.Fatal("Pack(30x14) failed")
	}
	if x != 1 || y != 17 {
		t.Errorf("origin on second shelf = (%d, %d), want (1, 17)", x, y)
	}
	if got := p.Height(); got != 32 {
		t.Errorf("Height() = %d, want 32", got)
	}
}

func TestPackRejectsOversize(t *testing.T) {
	p := NewPacker(64, 16)

	tests := []struct {
		name string
		size edgeaa.Size
	}{
		{name: "taller than shelf", size: edgeaa.Sz(10, 15)},
		{name: "wider than sheet", size: edgeaa.Sz(63, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, ok := p.Pack(tt.size); ok {
				t.Errorf("Pack(%dx%d) = ok, want rejection", tt.size.Width, tt.size.Height)
			}
		})
	}
}
