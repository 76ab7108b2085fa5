package atlas

import (
	"errors"
	"reflect"
	"testing"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/edgeaa"
)

func TestQuantizeOffset(t *testing.T) {
	tests := []struct {
		name string
		in   fixed.Int26_6
		want fixed.Int26_6
	}{
		{name: "zero", in: 0, want: 0},
		{name: "rounds down", in: 7, want: 0},
		{name: "rounds up", in: 9, want: 16},
		{name: "exact quarter", in: 32, want: 32},
		{name: "near full pixel", in: 60, want: 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuantizeOffset(tt.in); got != tt.want {
				t.Errorf("QuantizeOffset(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuilderPack(t *testing.T) {
	b, err := NewBuilder(BuilderOptions{AvailableWidth: 128, ShelfHeight: 32})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}

	bounds := edgeaa.Rect{MinX: 0.5, MinY: -10, MaxX: 9.5, MaxY: 2}
	g, err := b.Pack(3, bounds, 0)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if g.PathID != 3 {
		t.Errorf("PathID = %d, want 3", g.PathID)
	}
	if g.Origin != edgeaa.Pt(1, 1) {
		t.Errorf("Origin = %v, want (1, 1)", g.Origin)
	}

	// Same path and offset reuses the slot instead of packing again.
	again, err := b.Pack(3, bounds, 5)
	if err != nil {
		t.Fatalf("Pack repeat: %v", err)
	}
	if again != g {
		t.Errorf("repeat Pack = %+v, want same instance %+v", again, g)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}

	// A different subpixel offset is a distinct instance.
	shifted, err := b.Pack(3, bounds, 32)
	if err != nil {
		t.Fatalf("Pack shifted: %v", err)
	}
	if shifted.Offset != 32 {
		t.Errorf("shifted Offset = %d, want 32", shifted.Offset)
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
	if frac := shifted.Origin.X - float32(int(shifted.Origin.X)); frac != 0.5 {
		t.Errorf("shifted Origin.X fraction = %v, want 0.5", frac)
	}
}

func TestBuilderInstanceOrder(t *testing.T) {
	b, err := NewBuilder(BuilderOptions{AvailableWidth: 256, ShelfHeight: 32})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}

	bounds := edgeaa.Rect{MinX: 0, MinY: 0, MaxX: 8, MaxY: 8}
	for _, id := range []uint16{5, 2, 5, 9} {
		if _, err := b.Pack(id, bounds, 0); err != nil {
			t.Fatalf("Pack(%d): %v", id, err)
		}
	}

	// 5 repeats at the same offset, so only three instances exist.
	want := []uint16{5, 2, 9}
	if got := b.PathIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("PathIDs() = %v, want %v", got, want)
	}

	ts := b.Transforms()
	if len(ts) != 3 {
		t.Fatalf("len(Transforms()) = %d, want 3", len(ts))
	}
	glyphs := b.Glyphs()
	for i, tr := range ts {
		got := tr.Apply(edgeaa.Pt(glyphs[i].Bounds.MinX, glyphs[i].Bounds.MinY))
		if got != glyphs[i].Origin {
			t.Errorf("transform %d maps bounds min to %v, want %v", i, got, glyphs[i].Origin)
		}
	}
}

func TestBuilderFull(t *testing.T) {
	b, err := NewBuilder(BuilderOptions{AvailableWidth: 16, ShelfHeight: 16})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}

	_, err = b.Pack(1, edgeaa.Rect{MinX: 0, MinY: 0, MaxX: 40, MaxY: 8}, 0)
	if !errors.Is(err, ErrAtlasFull) {
		t.Errorf("Pack oversize error = %v, want ErrAtlasFull", err)
	}
}

func TestNewBuilderRejectsEmptySheet(t *testing.T) {
	if _, err := NewBuilder(BuilderOptions{AvailableWidth: 2, ShelfHeight: 32}); err == nil {
		t.Error("NewBuilder accepted an unusable sheet width")
	}
}
