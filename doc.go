// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package edgeaa renders antialiased coverage for vector path outlines on
// the GPU using analytic edge-coverage techniques instead of brute-force
// supersampling.
//
// The library is organized around three stages:
//
//   - Package mesh holds partitioned path geometry (the mesh library), its
//     chunked binary container format, and the expansion step that instances
//     one path definition at many destinations.
//   - Package atlas packs glyph instances into a sheet and produces the
//     ordered path-ID list that mesh expansion consumes.
//   - Package render owns GPU resources and the family of interchangeable
//     antialiasing strategies (direct, supersampled, edge-coverage variants,
//     and an adaptive switcher) that drive per-frame rendering.
//
// This package itself carries only the small value types shared by the
// others: points, sizes, rectangles, affine transforms, and the
// antialiasing options that select a strategy.
//
// edgeaa never creates a GPU device. The host application supplies one
// through render.DeviceHandle, sharing the device with the rest of the
// gogpu stack.
package edgeaa
