// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"reflect"
	"testing"

	"github.com/gogpu/edgeaa"
	"github.com/gogpu/edgeaa/mesh"
)

func TestInteriorVertexData(t *testing.T) {
	lib := &mesh.Library{
		BVertexPositions: []edgeaa.Point{{X: 1, Y: 2}, {X: 3, Y: 4}},
		BVertexPathIDs:   []uint16{1, 2},
	}
	got := interiorVertexData(lib)
	want := []float32{1, 2, 1, 3, 4, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("interiorVertexData() = %v, want %v", got, want)
	}
}

func TestCurveVertexData(t *testing.T) {
	lib := &mesh.Library{
		BVertexPositions: []edgeaa.Point{{X: 1, Y: 2}},
		BVertexPathIDs:   []uint16{1},
		BVertexLoopBlinn: []mesh.LoopBlinnData{{TexCoordX: 255, TexCoordY: 0, Sign: -1}},
	}
	got := curveVertexData(lib)
	want := []float32{1, 2, 1, 1, 0, -1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("curveVertexData() = %v, want %v", got, want)
	}
}

func TestLineInstanceData(t *testing.T) {
	lines := []mesh.LineEndpoints{
		{Left: edgeaa.Pt(0, 1), Right: edgeaa.Pt(2, 3)},
	}
	got := lineInstanceData(lines, []uint16{7})
	want := []float32{0, 1, 2, 3, 7}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lineInstanceData() = %v, want %v", got, want)
	}
}

func TestCurveInstanceData(t *testing.T) {
	curves := []mesh.CurveEndpoints{
		{Left: edgeaa.Pt(0, 1), ControlPoint: edgeaa.Pt(2, 3), Right: edgeaa.Pt(4, 5)},
	}
	got := curveInstanceData(curves, []uint16{2})
	want := []float32{0, 1, 2, 3, 4, 5, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("curveInstanceData() = %v, want %v", got, want)
	}
}

func TestPathBoundsTexels(t *testing.T) {
	lib := &mesh.Library{
		BVertexPositions: []edgeaa.Point{
			{X: 0, Y: 0}, {X: 10, Y: 5},
			{X: -2, Y: 1}, {X: 4, Y: 9},
		},
		BVertexPathIDs: []uint16{1, 1, 2, 2},
	}
	got := pathBoundsTexels(lib)
	want := []float32{0, 0, 10, 5, -2, 1, 4, 9}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("pathBoundsTexels() = %v, want %v", got, want)
	}
}

func TestEdgeInstanceRange(t *testing.T) {
	ids := []uint16{1, 1, 2, 3, 3, 3}
	tests := []struct {
		name  string
		paths mesh.PathRange
		want  instanceRange
	}{
		{name: "first path", paths: mesh.PathRange{Start: 1, End: 2}, want: instanceRange{first: 0, count: 2}},
		{name: "middle path", paths: mesh.PathRange{Start: 2, End: 3}, want: instanceRange{first: 2, count: 1}},
		{name: "two paths", paths: mesh.PathRange{Start: 2, End: 4}, want: instanceRange{first: 2, count: 4}},
		{name: "absent path", paths: mesh.PathRange{Start: 4, End: 5}, want: instanceRange{first: 6, count: 0}},
		{name: "empty range", paths: mesh.PathRange{Start: 2, End: 2}, want: instanceRange{first: 2, count: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := edgeInstanceRange(ids, tt.paths); got != tt.want {
				t.Errorf("edgeInstanceRange() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFloatBytesRoundTrip(t *testing.T) {
	got := floatBytes([]float32{1.0})
	// 1.0f is 0x3F800000 little-endian.
	want := []byte{0x00, 0x00, 0x80, 0x3F}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("floatBytes(1.0) = %v, want %v", got, want)
	}
}
