package mesh

import (
	"testing"

	"github.com/gogpu/edgeaa"
)

// testLibrary builds a small three-path library exercising every buffer
// role. Vertex layout:
//
//	path 1: vertices 0..2
//	path 2: vertices 3..6
//	path 3: vertices 7..8
func testLibrary() *Library {
	lib := &Library{
		BVertexPositions: []edgeaa.Point{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1},
			{X: 2, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 1}, {X: 2, Y: 1},
			{X: 5, Y: 5}, {X: 6, Y: 5},
		},
		BVertexPathIDs: []uint16{1, 1, 1, 2, 2, 2, 2, 3, 3},
		BVertexLoopBlinn: []LoopBlinnData{
			{0, 0, 0, 0}, {2, 2, 0, 0}, {1, 0, 1, 0},
			{0, 0, 0, 0}, {2, 2, 0, 0}, {1, 0, -1, 0}, {0, 0, 0, 0},
			{0, 0, 0, 0}, {2, 2, 0, 0},
		},
		BVertexNormals: []float32{0, 0.5, 1, 0, 0.5, 1, 1.5, 0, 0.5},
		CoverIndices: CoverIndices{
			InteriorIndices: []uint32{0, 1, 2, 3, 4, 5, 3, 5, 6},
			CurveIndices:    []uint32{4, 5, 6},
		},
		BQuads: []BQuad{
			{0, 1, NoSuchVertex, 0, 2, 1, NoSuchVertex, 1},
			{3, 4, 5, 1, 6, 4, NoSuchVertex, 0},
		},
	}
	lib.Edges = EdgeData{
		BoundingBoxes: []BoundingBox{
			{UpperLeft: edgeaa.Pt(0, 0), LowerRight: edgeaa.Pt(1, 1)},
			{UpperLeft: edgeaa.Pt(2, 0), LowerRight: edgeaa.Pt(3, 1)},
			{UpperLeft: edgeaa.Pt(5, 5), LowerRight: edgeaa.Pt(6, 5)},
		},
		BoundingBoxPathIDs: []uint16{1, 2, 3},
		UpperLines: []LineEndpoints{
			{Left: edgeaa.Pt(0, 0), Right: edgeaa.Pt(1, 0)},
			{Left: edgeaa.Pt(2, 0), Right: edgeaa.Pt(3, 0)},
		},
		UpperLinePathIDs: []uint16{1, 2},
		LowerLines: []LineEndpoints{
			{Left: edgeaa.Pt(2, 1), Right: edgeaa.Pt(3, 1)},
		},
		LowerLinePathIDs: []uint16{2},
		UpperCurves: []CurveEndpoints{
			{Left: edgeaa.Pt(5, 5), ControlPoint: edgeaa.Pt(5.5, 4), Right: edgeaa.Pt(6, 5)},
		},
		UpperCurvePathIDs: []uint16{3},
	}
	lib.Segments = Segments{
		Lines: []LineSegment{
			{Endpoint0: edgeaa.Pt(0, 0), Endpoint1: edgeaa.Pt(1, 0)},
			{Endpoint0: edgeaa.Pt(2, 0), Endpoint1: edgeaa.Pt(3, 0)},
		},
		LinePathIDs: []uint16{1, 2},
		Curves: []CurveSegment{
			{Endpoint0: edgeaa.Pt(5, 5), ControlPoint: edgeaa.Pt(5.5, 4), Endpoint1: edgeaa.Pt(6, 5)},
		},
		CurvePathIDs: []uint16{3},
	}
	lib.SegmentNormals = SegmentNormals{
		LineNormals:  []LineNormals{{0, 0.5}, {1, 1.5}},
		CurveNormals: []CurveNormals{{0, 0.25, 0.5}},
	}
	return lib
}

func TestVertexRangeForPath(t *testing.T) {
	lib := testLibrary()

	tests := []struct {
		name       string
		pathID     uint16
		start, end int
	}{
		{name: "first path", pathID: 1, start: 0, end: 3},
		{name: "middle path", pathID: 2, start: 3, end: 7},
		{name: "last path", pathID: 3, start: 7, end: 9},
		{name: "absent path", pathID: 4, start: 9, end: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := lib.VertexRangeForPath(tt.pathID)
			if start != tt.start || end != tt.end {
				t.Errorf("VertexRangeForPath(%d) = [%d, %d), want [%d, %d)",
					tt.pathID, start, end, tt.start, tt.end)
			}
		})
	}
}

func TestPathCount(t *testing.T) {
	lib := testLibrary()
	if got := lib.PathCount(); got != 3 {
		t.Errorf("PathCount() = %d, want 3", got)
	}

	empty := &Library{}
	if got := empty.PathCount(); got != 0 {
		t.Errorf("empty PathCount() = %d, want 0", got)
	}
}

func TestBoundsForPath(t *testing.T) {
	lib := testLibrary()

	bounds, ok := lib.BoundsForPath(2)
	if !ok {
		t.Fatal("BoundsForPath(2) reported no vertices")
	}
	want := edgeaa.Rect{MinX: 2, MinY: 0, MaxX: 3, MaxY: 1}
	if bounds != want {
		t.Errorf("BoundsForPath(2) = %+v, want %+v", bounds, want)
	}

	if _, ok := lib.BoundsForPath(9); ok {
		t.Error("BoundsForPath(9) = ok, want no vertices")
	}
}

func TestPathRangeCount(t *testing.T) {
	tests := []struct {
		name  string
		r     PathRange
		count int
	}{
		{name: "normal", r: PathRange{Start: 1, End: 4}, count: 3},
		{name: "empty", r: PathRange{Start: 2, End: 2}, count: 0},
		{name: "inverted", r: PathRange{Start: 3, End: 1}, count: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Count(); got != tt.count {
				t.Errorf("Count() = %d, want %d", got, tt.count)
			}
		})
	}
}
