// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/edgeaa/mesh"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// edgeRole indexes the four instanced edge draws of the coverage pass.
type edgeRole int

const (
	edgeUpperLines edgeRole = iota
	edgeLowerLines
	edgeUpperCurves
	edgeLowerCurves
	edgeRoleCount
)

// instanceRange is a half-open run of edge instances belonging to one
// object's paths.
type instanceRange struct {
	first uint32
	count uint32
}

// meshBuffers holds an expanded mesh library packed into GPU vertex and
// index buffers. Geometry is static after upload; transforms and colors
// live in buffer textures updated per frame.
type meshBuffers struct {
	device hal.Device

	interiorVertices hal.Buffer
	curveVertices    hal.Buffer
	interiorIndices  hal.Buffer
	curveIndices     hal.Buffer
	edgeInstances    [edgeRoleCount]hal.Buffer

	interiorIndexCount uint32
	curveIndexCount    uint32
	edgeCounts         [edgeRoleCount]uint32

	pathCount int
}

// interiorVertexData packs b-vertex positions with their path IDs for the
// interior vertex layout: x, y, id per vertex.
func interiorVertexData(lib *mesh.Library) []float32 {
	data := make([]float32, 0, len(lib.BVertexPositions)*3)
	for i, p := range lib.BVertexPositions {
		data = append(data, p.X, p.Y, float32(lib.BVertexPathIDs[i]))
	}
	return data
}

// curveVertexData packs the Loop-Blinn layout: x, y, id, u, v, sign per
// vertex. Texture coordinates are stored as bytes in the library and map
// onto [0, 1].
func curveVertexData(lib *mesh.Library) []float32 {
	data := make([]float32, 0, len(lib.BVertexPositions)*6)
	for i, p := range lib.BVertexPositions {
		var lb mesh.LoopBlinnData
		if i < len(lib.BVertexLoopBlinn) {
			lb = lib.BVertexLoopBlinn[i]
		}
		data = append(data,
			p.X, p.Y, float32(lib.BVertexPathIDs[i]),
			float32(lb.TexCoordX)/255, float32(lb.TexCoordY)/255, float32(lb.Sign))
	}
	return data
}

// lineInstanceData packs line edge instances: left.x, left.y, right.x,
// right.y, id per instance.
func lineInstanceData(lines []mesh.LineEndpoints, ids []uint16) []float32 {
	data := make([]float32, 0, len(lines)*5)
	for i, l := range lines {
		data = append(data, l.Left.X, l.Left.Y, l.Right.X, l.Right.Y, float32(ids[i]))
	}
	return data
}

// curveInstanceData packs curve edge instances: left, control, right, id.
func curveInstanceData(curves []mesh.CurveEndpoints, ids []uint16) []float32 {
	data := make([]float32, 0, len(curves)*7)
	for i, c := range curves {
		data = append(data,
			c.Left.X, c.Left.Y,
			c.ControlPoint.X, c.ControlPoint.Y,
			c.Right.X, c.Right.Y,
			float32(ids[i]))
	}
	return data
}

// pathBoundsTexels packs one RGBA32Float texel per path holding its
// bounding rectangle, indexed by dense path ID minus one. Paths without
// vertices get the zero rectangle.
func pathBoundsTexels(lib *mesh.Library) []float32 {
	count := lib.PathCount()
	data := make([]float32, 0, count*4)
	for id := 1; id <= count; id++ {
		bounds, _ := lib.BoundsForPath(uint16(id))
		data = append(data, bounds.MinX, bounds.MinY, bounds.MaxX, bounds.MaxY)
	}
	return data
}

// edgeInstanceRange returns the run of instances in ids covered by the
// path range. Path IDs are grouped ascending, so the run is contiguous.
func edgeInstanceRange(ids []uint16, paths mesh.PathRange) instanceRange {
	first := 0
	for first < len(ids) && ids[first] < paths.Start {
		first++
	}
	end := first
	for end < len(ids) && ids[end] < paths.End {
		end++
	}
	return instanceRange{first: uint32(first), count: uint32(end - first)}
}

func floatBytes(data []float32) []byte {
	buf := make([]byte, len(data)*4)
	for i, f := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func uint32Bytes(data []uint32) []byte {
	buf := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}

// newMeshBuffers uploads an expanded library. A nil device yields a mock
// instance carrying only counts.
func newMeshBuffers(device hal.Device, queue hal.Queue, lib *mesh.Library) (*meshBuffers, error) {
	m := &meshBuffers{
		device:             device,
		interiorIndexCount: uint32(len(lib.CoverIndices.InteriorIndices)),
		curveIndexCount:    uint32(len(lib.CoverIndices.CurveIndices)),
		pathCount:          lib.PathCount(),
	}
	m.edgeCounts = [edgeRoleCount]uint32{
		uint32(len(lib.Edges.UpperLines)),
		uint32(len(lib.Edges.LowerLines)),
		uint32(len(lib.Edges.UpperCurves)),
		uint32(len(lib.Edges.LowerCurves)),
	}
	if device == nil {
		return m, nil
	}

	uploads := []struct {
		target *hal.Buffer
		label  string
		usage  gputypes.BufferUsage
		data   []byte
	}{
		{&m.interiorVertices, "mesh_interior_vertices", gputypes.BufferUsageVertex, floatBytes(interiorVertexData(lib))},
		{&m.curveVertices, "mesh_curve_vertices", gputypes.BufferUsageVertex, floatBytes(curveVertexData(lib))},
		{&m.interiorIndices, "mesh_interior_indices", gputypes.BufferUsageIndex, uint32Bytes(lib.CoverIndices.InteriorIndices)},
		{&m.curveIndices, "mesh_curve_indices", gputypes.BufferUsageIndex, uint32Bytes(lib.CoverIndices.CurveIndices)},
		{&m.edgeInstances[edgeUpperLines], "mesh_upper_lines", gputypes.BufferUsageVertex, floatBytes(lineInstanceData(lib.Edges.UpperLines, lib.Edges.UpperLinePathIDs))},
		{&m.edgeInstances[edgeLowerLines], "mesh_lower_lines", gputypes.BufferUsageVertex, floatBytes(lineInstanceData(lib.Edges.LowerLines, lib.Edges.LowerLinePathIDs))},
		{&m.edgeInstances[edgeUpperCurves], "mesh_upper_curves", gputypes.BufferUsageVertex, floatBytes(curveInstanceData(lib.Edges.UpperCurves, lib.Edges.UpperCurvePathIDs))},
		{&m.edgeInstances[edgeLowerCurves], "mesh_lower_curves", gputypes.BufferUsageVertex, floatBytes(curveInstanceData(lib.Edges.LowerCurves, lib.Edges.LowerCurvePathIDs))},
	}
	for _, u := range uploads {
		if len(u.data) == 0 {
			continue
		}
		buf, err := device.CreateBuffer(&hal.BufferDescriptor{
			Label: u.label,
			Size:  uint64(len(u.data)),
			Usage: u.usage | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			m.destroy()
			return nil, fmt.Errorf("render: create %s buffer: %w", u.label, err)
		}
		queue.WriteBuffer(buf, 0, u.data)
		*u.target = buf
	}
	return m, nil
}

func (m *meshBuffers) destroy() {
	if m.device == nil {
		return
	}
	buffers := []*hal.Buffer{
		&m.edgeInstances[edgeLowerCurves], &m.edgeInstances[edgeUpperCurves],
		&m.edgeInstances[edgeLowerLines], &m.edgeInstances[edgeUpperLines],
		&m.curveIndices, &m.interiorIndices,
		&m.curveVertices, &m.interiorVertices,
	}
	for _, b := range buffers {
		if *b != nil {
			m.device.DestroyBuffer(*b)
			*b = nil
		}
	}
}
