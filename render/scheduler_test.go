// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "testing"

func TestSchedulerCoalescesInvalidations(t *testing.T) {
	frames := 0
	s := NewFrameScheduler(func() { frames++ })

	for i := 0; i < 10; i++ {
		s.Invalidate()
	}
	if !s.Flush() {
		t.Fatal("Flush() = false after invalidations, want true")
	}
	if frames != 1 {
		t.Errorf("frames = %d, want 1", frames)
	}
	if s.Flush() {
		t.Error("second Flush() = true, want false with nothing pending")
	}
}

func TestSchedulerFlushWithoutInvalidate(t *testing.T) {
	s := NewFrameScheduler(func() { t.Error("render ran without invalidation") })
	if s.Flush() {
		t.Error("Flush() = true, want false")
	}
}

func TestSchedulerInvalidateDuringRender(t *testing.T) {
	var s *FrameScheduler
	frames := 0
	s = NewFrameScheduler(func() {
		frames++
		// A mutation arriving mid-frame must be kept for the next flush.
		s.Invalidate()
	})

	s.Invalidate()
	s.Flush()
	if frames != 1 {
		t.Fatalf("frames = %d, want 1", frames)
	}
	if !s.Pending() {
		t.Error("Pending() = false, want true for the mid-frame invalidation")
	}
	s.Flush()
	if frames != 2 {
		t.Errorf("frames = %d, want 2", frames)
	}
}

func TestSchedulerNilCallback(t *testing.T) {
	s := NewFrameScheduler(nil)
	s.Invalidate()
	if !s.Flush() {
		t.Error("Flush() = false, want true even with nil callback")
	}
}
