// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mesh holds partitioned vector path geometry ready for GPU upload:
// the mesh library container, its chunked binary serialization, and the
// expansion step that instances one path definition at many destinations.
//
// A mesh library is produced once per partitioning response and is
// immutable afterwards. Path IDs are 1-based and dense; 0 is reserved as
// "no path". Within every vertex buffer, entries are grouped by path ID in
// ascending order, so a contiguous run holds all data for one path.
package mesh

import "github.com/gogpu/edgeaa"

// NoSuchVertex is the sentinel index meaning "no such point". It appears in
// b-quad control-point slots for line edges and is never translated by
// expansion.
const NoSuchVertex = ^uint32(0)

// BQuad is the legacy quadrilateral record used by the cover-based
// antialiasing variant: corner and control-point indices for the upper and
// lower edge of one curve span, plus an opaque per-edge winding side
// channel.
type BQuad struct {
	UpperLeftVertex    uint32
	UpperRightVertex   uint32
	UpperControlVertex uint32
	UpperSide          uint32
	LowerLeftVertex    uint32
	LowerRightVertex   uint32
	LowerControlVertex uint32
	LowerSide          uint32
}

// LoopBlinnData carries the per-vertex curve texture coordinates and
// concavity sign consumed by the cover shaders.
type LoopBlinnData struct {
	TexCoordX uint8
	TexCoordY uint8
	Sign      int8
	Pad       uint8
}

// LineEndpoints is a pair of edge endpoints for a line edge primitive.
type LineEndpoints struct {
	Left  edgeaa.Point
	Right edgeaa.Point
}

// CurveEndpoints is an endpoint pair plus control point for a quadratic
// curve edge primitive.
type CurveEndpoints struct {
	Left         edgeaa.Point
	ControlPoint edgeaa.Point
	Right        edgeaa.Point
}

// BoundingBox is the corner pair of an edge primitive's clip rectangle.
type BoundingBox struct {
	UpperLeft  edgeaa.Point
	LowerRight edgeaa.Point
}

// LineNormals holds the vertex normal angles of a line segment.
type LineNormals struct {
	Endpoint0 float32
	Endpoint1 float32
}

// CurveNormals holds the vertex normal angles of a quadratic curve segment.
type CurveNormals struct {
	Endpoint0    float32
	ControlPoint float32
	Endpoint1    float32
}

// LineSegment is a raw line segment of a path outline.
type LineSegment struct {
	Endpoint0 edgeaa.Point
	Endpoint1 edgeaa.Point
}

// CurveSegment is a raw quadratic curve segment of a path outline.
type CurveSegment struct {
	Endpoint0    edgeaa.Point
	ControlPoint edgeaa.Point
	Endpoint1    edgeaa.Point
}

// EdgeData groups the per-edge-kind instance buffers consumed by the
// edge-coverage strategies. Each vertex slice has a parallel path-ID slice
// of the same length, grouped ascending by path ID.
type EdgeData struct {
	BoundingBoxes      []BoundingBox
	UpperLines         []LineEndpoints
	LowerLines         []LineEndpoints
	UpperCurves        []CurveEndpoints
	LowerCurves        []CurveEndpoints
	BoundingBoxPathIDs []uint16
	UpperLinePathIDs   []uint16
	LowerLinePathIDs   []uint16
	UpperCurvePathIDs  []uint16
	LowerCurvePathIDs  []uint16
}

// Segments groups the raw path segments used for emboldening and hit
// testing, with their parallel path-ID slices.
type Segments struct {
	Lines        []LineSegment
	Curves       []CurveSegment
	LinePathIDs  []uint16
	CurvePathIDs []uint16
}

// SegmentNormals holds the per-segment vertex normal angles.
type SegmentNormals struct {
	LineNormals  []LineNormals
	CurveNormals []CurveNormals
}

// CoverIndices are the triangle index lists for the cover passes.
type CoverIndices struct {
	InteriorIndices []uint32
	CurveIndices    []uint32
}

// Library is an immutable set of typed geometry buffers for a group of
// partitioned paths. All slices indexed by vertex share BVertexPathIDs; see
// the package comment for the grouping invariant.
type Library struct {
	BQuads           []BQuad
	BVertexPositions []edgeaa.Point
	BVertexPathIDs   []uint16
	BVertexLoopBlinn []LoopBlinnData
	BVertexNormals   []float32
	CoverIndices     CoverIndices
	Edges            EdgeData
	Segments         Segments
	SegmentNormals   SegmentNormals
}

// PathRange is a half-open [Start, End) range of path IDs slicing a shared
// library when one render call covers several logical objects packed into
// the same buffers.
type PathRange struct {
	Start, End uint16
}

// Count returns the number of paths in the range.
func (r PathRange) Count() int {
	if r.End < r.Start {
		return 0
	}
	return int(r.End - r.Start)
}

// PathCount returns the number of distinct paths in the library, assuming
// dense 1-based IDs.
func (l *Library) PathCount() int {
	if len(l.BVertexPathIDs) == 0 {
		return 0
	}
	return int(l.BVertexPathIDs[len(l.BVertexPathIDs)-1])
}

// VertexRangeForPath returns the half-open run [start, end) of b-vertices
// belonging to the given path ID. Path IDs are grouped ascending, so one
// forward scan suffices. A path with no vertices yields an empty range.
func (l *Library) VertexRangeForPath(pathID uint16) (start, end int) {
	ids := l.BVertexPathIDs
	start = 0
	for start < len(ids) && ids[start] < pathID {
		start++
	}
	end = start
	for end < len(ids) && ids[end] == pathID {
		end++
	}
	return start, end
}

// pathIDRun returns the half-open run of entries in ids equal to pathID.
// Shared by expansion for every per-role path-ID slice.
func pathIDRun(ids []uint16, pathID uint16) (start, end int) {
	start = 0
	for start < len(ids) && ids[start] < pathID {
		start++
	}
	end = start
	for end < len(ids) && ids[end] == pathID {
		end++
	}
	return start, end
}

// BoundsForPath computes the bounding rectangle of one path's vertices.
// Returns the zero rectangle and false when the path has no vertices.
func (l *Library) BoundsForPath(pathID uint16) (edgeaa.Rect, bool) {
	start, end := l.VertexRangeForPath(pathID)
	if start == end {
		return edgeaa.Rect{}, false
	}
	p := l.BVertexPositions[start]
	bounds := edgeaa.Rect{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
	for _, q := range l.BVertexPositions[start+1 : end] {
		bounds = bounds.ExtendTo(q)
	}
	return bounds, true
}
