// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "sync"

// FrameScheduler coalesces redraw requests into single frames. Mutations
// call Invalidate from any goroutine; the host's event loop calls Flush
// once per tick, which renders at most one frame no matter how many
// invalidations arrived in between.
type FrameScheduler struct {
	mu     sync.Mutex
	dirty  bool
	active bool
	render func()
}

// NewFrameScheduler wraps the frame callback. The callback runs on the
// goroutine that calls Flush.
func NewFrameScheduler(render func()) *FrameScheduler {
	return &FrameScheduler{render: render}
}

// Invalidate marks the frame dirty. Cheap and safe to call repeatedly.
func (s *FrameScheduler) Invalidate() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// Pending reports whether a frame will run on the next Flush.
func (s *FrameScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Flush renders one frame if anything invalidated since the last flush,
// and reports whether it did. Invalidations arriving while the callback
// runs are kept for the next flush rather than rendered immediately.
func (s *FrameScheduler) Flush() bool {
	s.mu.Lock()
	if !s.dirty || s.active {
		s.mu.Unlock()
		return false
	}
	s.dirty = false
	s.active = true
	render := s.render
	s.mu.Unlock()

	if render != nil {
		render()
	}

	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
	return true
}
