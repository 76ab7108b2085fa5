// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws partitioned path meshes with analytic antialiasing.
//
// The package receives a GPU device from the host application and never
// creates one. A Renderer owns the shader set, render target set, and
// buffer textures; an antialiasing strategy selected from Options drives
// the per-frame pass order: direct interior/curve rendering, per-object
// edge coverage accumulation, per-object resolve, and a final composite.
//
// All GPU-facing types tolerate a nil device. In that mode resource sizes
// and frame state are tracked without issuing GPU work, which keeps the
// frame logic testable on machines with no GPU.
package render
