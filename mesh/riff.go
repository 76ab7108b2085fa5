// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// The container is a RIFF file: "RIFF", a 32-bit little-endian total
// length, the sub-format tag "PFML", then repeated (4-byte chunk tag,
// 32-bit little-endian payload length, payload) records. Every record type
// has a byte size that is a multiple of 4, so chunks are always even-
// aligned by construction and no explicit padding is required. Unknown
// chunk tags are skipped by length.

// Container codec errors.
var (
	// ErrBadContainer is returned when the input does not start with the
	// RIFF magic bytes.
	ErrBadContainer = errors.New("mesh: not a RIFF container")

	// ErrBadFormat is returned when the container sub-format tag is not a
	// mesh library.
	ErrBadFormat = errors.New("mesh: unknown container sub-format")

	// ErrTruncated is returned when a chunk header or payload extends past
	// the end of the container.
	ErrTruncated = errors.New("mesh: truncated container")

	// ErrBadChunkSize is returned when a chunk payload length is not a
	// multiple of its record size.
	ErrBadChunkSize = errors.New("mesh: chunk length not a multiple of record size")
)

const (
	containerTag = "RIFF"
	formatTag    = "PFML"
	headerSize   = 12
	chunkHeader  = 8
)

// ParseLibrary reads a serialized mesh library from r.
//
// Parsing is all-or-nothing: on any error the returned library is nil, so a
// failed attach never leaves partial geometry visible.
func ParseLibrary(r io.Reader) (*Library, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("mesh: read container: %w", err)
	}
	if len(data) < headerSize {
		return nil, ErrBadContainer
	}
	if string(data[0:4]) != containerTag {
		return nil, ErrBadContainer
	}
	total := binary.LittleEndian.Uint32(data[4:8])
	if int(total) > len(data)-8 {
		return nil, ErrTruncated
	}
	if string(data[8:12]) != formatTag {
		return nil, ErrBadFormat
	}

	lib := &Library{}
	body := data[headerSize : 8+int(total)]
	for len(body) > 0 {
		if len(body) < chunkHeader {
			return nil, ErrTruncated
		}
		tag := string(body[0:4])
		length := int(binary.LittleEndian.Uint32(body[4:8]))
		body = body[chunkHeader:]
		if length > len(body) {
			return nil, fmt.Errorf("%w: chunk %q", ErrTruncated, tag)
		}
		if err := lib.readChunk(tag, body[:length]); err != nil {
			return nil, err
		}
		body = body[length:]
	}
	return lib, nil
}

// readChunk decodes one chunk payload into its buffer role. Unknown tags
// are ignored.
func (l *Library) readChunk(tag string, payload []byte) error {
	switch tag {
	case "bqua":
		return readRecords(tag, payload, &l.BQuads)
	case "bvpo":
		return readRecords(tag, payload, &l.BVertexPositions)
	case "bvpi":
		return readRecords(tag, payload, &l.BVertexPathIDs)
	case "bvlb":
		return readRecords(tag, payload, &l.BVertexLoopBlinn)
	case "bvno":
		return readRecords(tag, payload, &l.BVertexNormals)
	case "cvii":
		return readRecords(tag, payload, &l.CoverIndices.InteriorIndices)
	case "cvci":
		return readRecords(tag, payload, &l.CoverIndices.CurveIndices)
	case "ebbv":
		return readRecords(tag, payload, &l.Edges.BoundingBoxes)
	case "eulv":
		return readRecords(tag, payload, &l.Edges.UpperLines)
	case "ellv":
		return readRecords(tag, payload, &l.Edges.LowerLines)
	case "eucv":
		return readRecords(tag, payload, &l.Edges.UpperCurves)
	case "elcv":
		return readRecords(tag, payload, &l.Edges.LowerCurves)
	case "ebbp":
		return readRecords(tag, payload, &l.Edges.BoundingBoxPathIDs)
	case "eulp":
		return readRecords(tag, payload, &l.Edges.UpperLinePathIDs)
	case "ellp":
		return readRecords(tag, payload, &l.Edges.LowerLinePathIDs)
	case "eucp":
		return readRecords(tag, payload, &l.Edges.UpperCurvePathIDs)
	case "elcp":
		return readRecords(tag, payload, &l.Edges.LowerCurvePathIDs)
	case "slin":
		return readRecords(tag, payload, &l.Segments.Lines)
	case "scur":
		return readRecords(tag, payload, &l.Segments.Curves)
	case "slpi":
		return readRecords(tag, payload, &l.Segments.LinePathIDs)
	case "scpi":
		return readRecords(tag, payload, &l.Segments.CurvePathIDs)
	case "snli":
		return readRecords(tag, payload, &l.SegmentNormals.LineNormals)
	case "sncu":
		return readRecords(tag, payload, &l.SegmentNormals.CurveNormals)
	default:
		// Unknown tag: skipped by length.
		return nil
	}
}

// readRecords decodes a packed little-endian record slice.
func readRecords[T any](tag string, payload []byte, out *[]T) error {
	var zero T
	size := binary.Size(zero)
	if len(payload)%size != 0 {
		return fmt.Errorf("%w: chunk %q", ErrBadChunkSize, tag)
	}
	if len(payload) == 0 {
		return nil
	}
	records := make([]T, len(payload)/size)
	if err := binary.Read(bytes.NewReader(payload), binary.LittleEndian, records); err != nil {
		return fmt.Errorf("mesh: chunk %q: %w", tag, err)
	}
	*out = records
	return nil
}

// SerializeTo writes the library to w in the RIFF container format,
// emitting every known chunk in a fixed order.
func (l *Library) SerializeTo(w io.Writer) error {
	var body bytes.Buffer
	body.WriteString(formatTag)

	chunks := []struct {
		tag  string
		data any
	}{
		{"bqua", l.BQuads},
		{"bvpo", l.BVertexPositions},
		{"bvpi", l.BVertexPathIDs},
		{"bvlb", l.BVertexLoopBlinn},
		{"bvno", l.BVertexNormals},
		{"cvii", l.CoverIndices.InteriorIndices},
		{"cvci", l.CoverIndices.CurveIndices},
		{"ebbv", l.Edges.BoundingBoxes},
		{"eulv", l.Edges.UpperLines},
		{"ellv", l.Edges.LowerLines},
		{"eucv", l.Edges.UpperCurves},
		{"elcv", l.Edges.LowerCurves},
		{"ebbp", l.Edges.BoundingBoxPathIDs},
		{"eulp", l.Edges.UpperLinePathIDs},
		{"ellp", l.Edges.LowerLinePathIDs},
		{"eucp", l.Edges.UpperCurvePathIDs},
		{"elcp", l.Edges.LowerCurvePathIDs},
		{"slin", l.Segments.Lines},
		{"scur", l.Segments.Curves},
		{"slpi", l.Segments.LinePathIDs},
		{"scpi", l.Segments.CurvePathIDs},
		{"snli", l.SegmentNormals.LineNormals},
		{"sncu", l.SegmentNormals.CurveNormals},
	}
	for _, c := range chunks {
		if err := writeChunk(&body, c.tag, c.data); err != nil {
			return err
		}
	}

	header := make([]byte, 8)
	copy(header, containerTag)
	binary.LittleEndian.PutUint32(header[4:], uint32(body.Len()))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("mesh: write container: %w", err)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return fmt.Errorf("mesh: write container: %w", err)
	}
	return nil
}

// writeChunk appends one (tag, length, payload) record to buf.
func writeChunk(buf *bytes.Buffer, tag string, data any) error {
	size := binary.Size(data)
	if size < 0 {
		return fmt.Errorf("mesh: chunk %q: unencodable record type", tag)
	}
	buf.WriteString(tag)
	var lenb [4]byte
	binary.LittleEndian.PutUint32(lenb[:], uint32(size))
	buf.Write(lenb[:])
	if err := binary.Write(buf, binary.LittleEndian, data); err != nil {
		return fmt.Errorf("mesh: chunk %q: %w", tag, err)
	}
	return nil
}
