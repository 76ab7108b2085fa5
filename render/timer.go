// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "time"

// FrameTimer measures the CPU cost of a frame from the start of command
// encoding to queue submission, and remembers the submission index the
// queue returned. The queue exposes no completion signal to wait on, so
// GPU latency is not part of the reading.
type FrameTimer struct {
	begin      time.Time
	inFlight   bool
	last       time.Duration
	submission uint64
	hasResult  bool
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{}
}

// beginFrame marks the start of frame encoding.
func (t *FrameTimer) beginFrame() {
	t.begin = time.Now()
	t.inFlight = true
}

// endFrame records the duration of a submitted frame.
func (t *FrameTimer) endFrame(submission uint64) {
	if !t.inFlight {
		return
	}
	t.last = time.Since(t.begin)
	t.submission = submission
	t.inFlight = false
	t.hasResult = true
}

// discard abandons an in-flight measurement after a failed frame.
func (t *FrameTimer) discard() {
	t.inFlight = false
}

// Last returns the most recent completed frame duration.
func (t *FrameTimer) Last() (time.Duration, bool) {
	return t.last, t.hasResult
}

// Submission returns the queue submission index of the last timed frame.
func (t *FrameTimer) Submission() uint64 {
	return t.submission
}
