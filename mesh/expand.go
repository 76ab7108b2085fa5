// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

// Expand builds a new library in which the i-th entry of pathIDs becomes
// destination path ID i+1, so a list of (possibly repeated) source path
// references yields a dense, ordered set of instance IDs.
//
// For each requested source path, the contiguous vertex run is spliced into
// the destination buffers with its path IDs relabeled, and every index that
// falls inside the source run is translated by the distance between the
// destination and source run starts. The NoSuchVertex sentinel is copied
// through untranslated wherever it appears. B-quad winding side channels
// are copied unchanged.
//
// A requested path with no vertices (an absent ID, or an empty glyph such
// as .notdef) contributes nothing and does not advance any output index.
//
// Expand is pure: lib is never modified, and expanding with an empty ID
// list yields an empty library.
func Expand(lib *Library, pathIDs []uint16) *Library {
	out := &Library{}
	for i, srcID := range pathIDs {
		destID := uint16(i + 1)
		expandVertices(out, lib, srcID, destID)
		expandEdges(out, lib, srcID, destID)
		expandSegments(out, lib, srcID, destID)
	}
	return out
}

// expandVertices splices one path's b-vertex run and everything indexed
// against it: cover index lists and b-quads.
func expandVertices(out, lib *Library, srcID, destID uint16) {
	srcStart, srcEnd := lib.VertexRangeForPath(srcID)
	if srcStart == srcEnd {
		return
	}
	destStart := len(out.BVertexPositions)
	delta := destStart - srcStart

	out.BVertexPositions = append(out.BVertexPositions, lib.BVertexPositions[srcStart:srcEnd]...)
	for range lib.BVertexPositions[srcStart:srcEnd] {
		out.BVertexPathIDs = append(out.BVertexPathIDs, destID)
	}
	if len(lib.BVertexLoopBlinn) >= srcEnd {
		out.BVertexLoopBlinn = append(out.BVertexLoopBlinn, lib.BVertexLoopBlinn[srcStart:srcEnd]...)
	}
	if len(lib.BVertexNormals) >= srcEnd {
		out.BVertexNormals = append(out.BVertexNormals, lib.BVertexNormals[srcStart:srcEnd]...)
	}

	out.CoverIndices.InteriorIndices = appendTranslated(
		out.CoverIndices.InteriorIndices, lib.CoverIndices.InteriorIndices, srcStart, srcEnd, delta)
	out.CoverIndices.CurveIndices = appendTranslated(
		out.CoverIndices.CurveIndices, lib.CoverIndices.CurveIndices, srcStart, srcEnd, delta)

	for _, q := range lib.BQuads {
		if !indexInRange(q.UpperLeftVertex, srcStart, srcEnd) {
			continue
		}
		out.BQuads = append(out.BQuads, BQuad{
			UpperLeftVertex:    translateIndex(q.UpperLeftVertex, delta),
			UpperRightVertex:   translateIndex(q.UpperRightVertex, delta),
			UpperControlVertex: translateIndex(q.UpperControlVertex, delta),
			UpperSide:          q.UpperSide,
			LowerLeftVertex:    translateIndex(q.LowerLeftVertex, delta),
			LowerRightVertex:   translateIndex(q.LowerRightVertex, delta),
			LowerControlVertex: translateIndex(q.LowerControlVertex, delta),
			LowerSide:          q.LowerSide,
		})
	}
}

// expandEdges splices the per-edge-kind instance runs. Each role carries
// its own path-ID slice, grouped ascending like the vertex buffer.
func expandEdges(out, lib *Library, srcID, destID uint16) {
	out.Edges.BoundingBoxes, out.Edges.BoundingBoxPathIDs = appendRun(
		out.Edges.BoundingBoxes, out.Edges.BoundingBoxPathIDs,
		lib.Edges.BoundingBoxes, lib.Edges.BoundingBoxPathIDs, srcID, destID)
	out.Edges.UpperLines, out.Edges.UpperLinePathIDs = appendRun(
		out.Edges.UpperLines, out.Edges.UpperLinePathIDs,
		lib.Edges.UpperLines, lib.Edges.UpperLinePathIDs, srcID, destID)
	out.Edges.LowerLines, out.Edges.LowerLinePathIDs = appendRun(
		out.Edges.LowerLines, out.Edges.LowerLinePathIDs,
		lib.Edges.LowerLines, lib.Edges.LowerLinePathIDs, srcID, destID)
	out.Edges.UpperCurves, out.Edges.UpperCurvePathIDs = appendRun(
		out.Edges.UpperCurves, out.Edges.UpperCurvePathIDs,
		lib.Edges.UpperCurves, lib.Edges.UpperCurvePathIDs, srcID, destID)
	out.Edges.LowerCurves, out.Edges.LowerCurvePathIDs = appendRun(
		out.Edges.LowerCurves, out.Edges.LowerCurvePathIDs,
		lib.Edges.LowerCurves, lib.Edges.LowerCurvePathIDs, srcID, destID)
}

// expandSegments splices raw segment runs. Segment normals have no path-ID
// slice of their own; they parallel the segment slices, so the same runs
// apply when normals are present.
func expandSegments(out, lib *Library, srcID, destID uint16) {
	lineStart, lineEnd := pathIDRun(lib.Segments.LinePathIDs, srcID)
	for i := lineStart; i < lineEnd; i++ {
		out.Segments.Lines = append(out.Segments.Lines, lib.Segments.Lines[i])
		out.Segments.LinePathIDs = append(out.Segments.LinePathIDs, destID)
		if i < len(lib.SegmentNormals.LineNormals) {
			out.SegmentNormals.LineNormals = append(out.SegmentNormals.LineNormals,
				lib.SegmentNormals.LineNormals[i])
		}
	}

	curveStart, curveEnd := pathIDRun(lib.Segments.CurvePathIDs, srcID)
	for i := curveStart; i < curveEnd; i++ {
		out.Segments.Curves = append(out.Segments.Curves, lib.Segments.Curves[i])
		out.Segments.CurvePathIDs = append(out.Segments.CurvePathIDs, destID)
		if i < len(lib.SegmentNormals.CurveNormals) {
			out.SegmentNormals.CurveNormals = append(out.SegmentNormals.CurveNormals,
				lib.SegmentNormals.CurveNormals[i])
		}
	}
}

// appendRun copies the run of values whose path ID equals srcID, relabeling
// to destID.
func appendRun[T any](outVals []T, outIDs []uint16, vals []T, ids []uint16, srcID, destID uint16) ([]T, []uint16) {
	start, end := pathIDRun(ids, srcID)
	for i := start; i < end; i++ {
		outVals = append(outVals, vals[i])
		outIDs = append(outIDs, destID)
	}
	return outVals, outIDs
}

// appendTranslated copies indices that fall inside [srcStart, srcEnd),
// translated by delta. A NoSuchVertex sentinel carries no index of its own;
// it belongs to the run it is embedded in and passes through untouched.
func appendTranslated(out, indices []uint32, srcStart, srcEnd, delta int) []uint32 {
	for i, idx := range indices {
		if idx == NoSuchVertex {
			if sentinelInRange(indices, i, srcStart, srcEnd) {
				out = append(out, idx)
			}
			continue
		}
		if int(idx) >= srcStart && int(idx) < srcEnd {
			out = append(out, uint32(int(idx)+delta))
		}
	}
	return out
}

// sentinelInRange decides the run a sentinel at position i belongs to: the
// nearest preceding non-sentinel index, or the nearest following one when
// the sentinel leads the list.
func sentinelInRange(indices []uint32, i, start, end int) bool {
	for j := i - 1; j >= 0; j-- {
		if indices[j] != NoSuchVertex {
			return indexInRange(indices[j], start, end)
		}
	}
	for j := i + 1; j < len(indices); j++ {
		if indices[j] != NoSuchVertex {
			return indexInRange(indices[j], start, end)
		}
	}
	return false
}

func indexInRange(idx uint32, start, end int) bool {
	return idx != NoSuchVertex && int(idx) >= start && int(idx) < end
}

// translateIndex shifts a vertex index by delta, passing the NoSuchVertex
// sentinel through untouched.
func translateIndex(idx uint32, delta int) uint32 {
	if idx == NoSuchVertex {
		return idx
	}
	return uint32(int(idx) + delta)
}
