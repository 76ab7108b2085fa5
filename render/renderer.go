// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/edgeaa"
	"github.com/gogpu/edgeaa/mesh"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoObjects is returned when a frame is rendered with nothing attached.
var ErrNoObjects = errors.New("render: no objects attached")

// Config configures a Renderer. The zero value renders with no
// antialiasing into an RGBA8 destination.
type Config struct {
	// Options selects the antialiasing variant and its parameters.
	Options edgeaa.Options

	// DestFormat is the format of the destination texture view passed to
	// RenderFrame. Defaults to the provider's surface format when one is
	// exposed, RGBA8Unorm otherwise.
	DestFormat gputypes.TextureFormat

	// Background is the frame clear color.
	Background gputypes.Color
}

// ObjectMeshes describes one renderable object: which source paths it
// instances, in order, and its fill color.
type ObjectMeshes struct {
	PathIDs []uint16
	Color   [4]float32
}

// renderObject is the attached form: a dense path range into the shared
// expanded library plus precomputed edge instance runs per role.
type renderObject struct {
	paths mesh.PathRange
	Color [4]float32
	edges [edgeRoleCount]instanceRange
}

// Renderer drives the full antialiasing pipeline: mesh attachment, path
// state, and the per-frame pass sequence of the active strategy. All
// methods are safe for concurrent use; command issue itself is
// single-threaded under the mutex.
type Renderer struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue

	shaders    *ShaderSet
	opts       edgeaa.Options
	destFormat gputypes.TextureFormat
	background gputypes.Color

	strategy Strategy
	meshes   *meshBuffers
	objects  []renderObject

	pathTransforms *BufferTexture
	pathColors     *BufferTexture
	pathBounds     *BufferTexture
	transforms     []edgeaa.Transform
	colors         [][4]float32

	fbSize      edgeaa.Size
	needsRedraw bool
	timer       *FrameTimer
}

// NewRenderer wraps a host-supplied device provider. A nil provider yields
// a mock renderer that exercises all frame logic without GPU work.
func NewRenderer(provider any, cfg Config) (*Renderer, error) {
	r := &Renderer{
		opts:       cfg.Options,
		destFormat: cfg.DestFormat,
		background: cfg.Background,
	}
	if provider != nil {
		device, queue, err := HALFromProvider(provider)
		if err != nil {
			return nil, err
		}
		r.device = device
		r.queue = queue
		if r.destFormat == gputypes.TextureFormatUndefined {
			if dh, ok := provider.(DeviceHandle); ok {
				r.destFormat = dh.SurfaceFormat()
			}
		}
	}
	if r.destFormat == gputypes.TextureFormatUndefined {
		r.destFormat = gputypes.TextureFormatRGBA8Unorm
	}

	shaders, err := NewShaderSet(r.device)
	if err != nil {
		return nil, err
	}
	r.shaders = shaders

	r.pathTransforms = NewBufferTexture(r.device, r.queue, "path_transforms", gputypes.TextureFormatRGBA32Float)
	r.pathColors = NewBufferTexture(r.device, r.queue, "path_colors", gputypes.TextureFormatRGBA32Float)
	r.pathBounds = NewBufferTexture(r.device, r.queue, "path_bounds", gputypes.TextureFormatRGBA32Float)

	r.strategy = newStrategy(cfg.Options.Variant, cfg.Options)
	if err := r.strategy.Init(r); err != nil {
		r.destroyLocked()
		return nil, err
	}

	r.timer = NewFrameTimer()
	return r, nil
}

// Variant reports the active antialiasing variant.
func (r *Renderer) Variant() edgeaa.AAVariant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.strategy.Variant()
}

// NeedsRedraw reports whether any state changed since the last frame.
func (r *Renderer) NeedsRedraw() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.needsRedraw
}

// AttachMeshes expands the library over the objects' path instances and
// uploads the geometry. Dense expanded path IDs are assigned in object
// order: object 0's instances first, then object 1's, and so on.
func (r *Renderer) AttachMeshes(lib *mesh.Library, objects []ObjectMeshes) error {
	if lib == nil {
		return errors.New("render: nil mesh library")
	}
	if len(objects) == 0 {
		return ErrNoObjects
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []uint16
	for _, o := range objects {
		all = append(all, o.PathIDs...)
	}
	expanded := mesh.Expand(lib, all)

	meshes, err := newMeshBuffers(r.device, r.queue, expanded)
	if err != nil {
		return err
	}
	if r.meshes != nil {
		r.meshes.destroy()
	}
	r.meshes = meshes

	r.objects = r.objects[:0]
	next := uint16(1)
	for _, o := range objects {
		obj := renderObject{
			paths: mesh.PathRange{Start: next, End: next + uint16(len(o.PathIDs))},
			Color: o.Color,
		}
		obj.edges = [edgeRoleCount]instanceRange{
			edgeInstanceRange(expanded.Edges.UpperLinePathIDs, obj.paths),
			edgeInstanceRange(expanded.Edges.LowerLinePathIDs, obj.paths),
			edgeInstanceRange(expanded.Edges.UpperCurvePathIDs, obj.paths),
			edgeInstanceRange(expanded.Edges.LowerCurvePathIDs, obj.paths),
		}
		r.objects = append(r.objects, obj)
		next = obj.paths.End
	}

	// Path state is sized by the requested list, not the vertex buffer, so
	// absent trailing paths still own a transform and color slot.
	pathCount := len(all)
	r.transforms = make([]edgeaa.Transform, pathCount)
	r.colors = make([][4]float32, pathCount)
	for i := range r.transforms {
		r.transforms[i] = edgeaa.IdentityTransform()
	}
	for _, obj := range r.objects {
		for id := obj.paths.Start; id < obj.paths.End; id++ {
			r.colors[id-1] = obj.Color
		}
	}

	// Sizing the buffer textures here means per-frame uploads never grow
	// them, so bind groups built against their views stay valid.
	if err := r.pathBounds.Upload(floatBytes(pathBoundsTexels(expanded))); err != nil {
		return err
	}
	if err := r.uploadPathState(); err != nil {
		return err
	}

	if err := r.strategy.AttachMeshes(r); err != nil {
		return err
	}
	slogger().Info("attached meshes", "objects", len(objects), "paths", pathCount)
	r.needsRedraw = true
	return nil
}

// transformTexels packs two texels per path: (a, b, c, d) then (e, f, 0, 0).
func transformTexels(ts []edgeaa.Transform) []float32 {
	data := make([]float32, 0, len(ts)*8)
	for _, t := range ts {
		data = append(data, t.A, t.B, t.C, t.D, t.E, t.F, 0, 0)
	}
	return data
}

func colorTexels(cs [][4]float32) []float32 {
	data := make([]float32, 0, len(cs)*4)
	for _, c := range cs {
		data = append(data, c[0], c[1], c[2], c[3])
	}
	return data
}

func (r *Renderer) uploadPathState() error {
	if err := r.pathTransforms.Upload(floatBytes(transformTexels(r.transforms))); err != nil {
		return err
	}
	return r.pathColors.Upload(floatBytes(colorTexels(r.colors)))
}

// SetFramebufferSize resizes the strategy's render targets.
func (r *Renderer) SetFramebufferSize(size edgeaa.Size) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.strategy.SetFramebufferSize(r, size); err != nil {
		return err
	}
	r.fbSize = size
	r.needsRedraw = true
	return nil
}

// SetAntialiasingOptions swaps the active strategy at runtime. The old
// strategy is destroyed; the new one is taken through the lifecycle steps
// already performed.
func (r *Renderer) SetAntialiasingOptions(opts edgeaa.Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := newStrategy(opts.Variant, opts)
	if err := next.Init(r); err != nil {
		return err
	}
	prevOpts := r.opts
	r.opts = opts
	if r.meshes != nil {
		if err := next.AttachMeshes(r); err != nil {
			next.Destroy(r)
			r.opts = prevOpts
			return err
		}
	}
	if !r.fbSize.IsEmpty() {
		if err := next.SetFramebufferSize(r, r.fbSize); err != nil {
			next.Destroy(r)
			r.opts = prevOpts
			return err
		}
	}
	r.strategy.Destroy(r)
	r.strategy = next
	slogger().Info("switched antialiasing strategy", "variant", opts.Variant)
	r.needsRedraw = true
	return nil
}

// SetStemDarkening updates the embolden amount without a strategy swap.
// The adaptive strategy reads it per frame to pick its sub-strategy.
func (r *Renderer) SetStemDarkening(amount edgeaa.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts.StemDarkening = amount
	r.needsRedraw = true
}

// SetPathTransform positions one expanded path for the next frame.
func (r *Renderer) SetPathTransform(pathID uint16, t edgeaa.Transform) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pathID == 0 || int(pathID) > len(r.transforms) {
		return fmt.Errorf("render: path %d out of range", pathID)
	}
	r.transforms[pathID-1] = t
	r.needsRedraw = true
	return nil
}

// SetPathColor overrides the fill color of one expanded path.
func (r *Renderer) SetPathColor(pathID uint16, color [4]float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pathID == 0 || int(pathID) > len(r.colors) {
		return fmt.Errorf("render: path %d out of range", pathID)
	}
	r.colors[pathID-1] = color
	r.needsRedraw = true
	return nil
}

// RenderFrame encodes and submits one frame into dest. In mock mode the
// pass sequence runs without GPU work, which keeps the frame logic
// testable. The destination view must match the configured DestFormat.
func (r *Renderer) RenderFrame(dest hal.TextureView) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.strategy.Ready() {
		return ErrNotReady
	}
	if len(r.objects) == 0 {
		return ErrNoObjects
	}
	if err := r.uploadPathState(); err != nil {
		return err
	}

	f := &Frame{
		dest:       dest,
		size:       r.fbSize,
		background: r.background,
	}

	var encoder hal.CommandEncoder
	if r.device != nil {
		r.timer.beginFrame()
		var err error
		encoder, err = r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "edgeaa_frame"})
		if err != nil {
			r.timer.discard()
			return fmt.Errorf("render: create command encoder: %w", err)
		}
		if err := encoder.BeginEncoding("edgeaa_frame"); err != nil {
			r.timer.discard()
			return fmt.Errorf("render: begin encoding: %w", err)
		}
		f.encoder = encoder
	}

	if err := r.encodeFrame(f); err != nil {
		if encoder != nil {
			encoder.DiscardEncoding()
			r.timer.discard()
		}
		return err
	}

	if r.device != nil {
		cmdBuf, err := encoder.EndEncoding()
		if err != nil {
			r.timer.discard()
			return fmt.Errorf("render: end encoding: %w", err)
		}
		submission, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf})
		r.device.FreeCommandBuffer(cmdBuf)
		if err != nil {
			r.timer.discard()
			return fmt.Errorf("render: submit frame: %w", err)
		}
		r.timer.endFrame(submission)
	}

	r.needsRedraw = false
	return nil
}

func (r *Renderer) encodeFrame(f *Frame) error {
	if err := r.strategy.PrepareForDirectRendering(r, f); err != nil {
		return err
	}
	for i := range r.objects {
		if err := r.strategy.AntialiasObject(r, f, i); err != nil {
			return err
		}
		if err := r.strategy.ResolveAAForObject(r, f, i); err != nil {
			return err
		}
	}
	return r.strategy.Resolve(r, f)
}

// FrameTime reports the encode-and-submit duration of the most recently
// submitted frame, or false when no frame has been submitted yet.
func (r *Renderer) FrameTime() (seconds float64, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.timer.Last()
	return d.Seconds(), ok
}

func (r *Renderer) destroyLocked() {
	if r.strategy != nil {
		r.strategy.Destroy(r)
		r.strategy = nil
	}
	if r.meshes != nil {
		r.meshes.destroy()
		r.meshes = nil
	}
	for _, bt := range []*BufferTexture{r.pathBounds, r.pathColors, r.pathTransforms} {
		if bt != nil {
			bt.Destroy()
		}
	}
	if r.shaders != nil {
		r.shaders.Destroy()
		r.shaders = nil
	}
}

// Destroy releases every GPU resource the renderer owns.
func (r *Renderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destroyLocked()
}
