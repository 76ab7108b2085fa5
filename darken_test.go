// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package edgeaa

import "testing"

func TestStemDarkeningAmount(t *testing.T) {
	tests := []struct {
		name        string
		pixelsPerEm float32
		want        Point
	}{
		{
			name:        "small size scales linearly",
			pixelsPerEm: 10,
			want:        Point{X: 0.121, Y: 0.121 * 1.25},
		},
		{
			name:        "large size clamps per axis",
			pixelsPerEm: 70,
			want:        Point{X: 0.3, Y: 0.3},
		},
		{
			name:        "above threshold disables darkening",
			pixelsPerEm: 73,
			want:        Point{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StemDarkeningAmount(tt.pixelsPerEm)
			if !nearPoint(got, tt.want, 1e-6) {
				t.Errorf("StemDarkeningAmount(%v) = %v, want %v", tt.pixelsPerEm, got, tt.want)
			}
		})
	}
}

func TestStemDarkeningYExceedsX(t *testing.T) {
	// Vertical stems thin more than horizontal ones under linear AA, so
	// the unclamped y amount always leads x.
	got := StemDarkeningAmount(20)
	if got.Y <= got.X {
		t.Errorf("amount = %v, want Y > X", got)
	}
}

func TestDefringingKernelWeights(t *testing.T) {
	for _, tt := range []struct {
		name   string
		kernel DefringingKernel
	}{
		{name: "core graphics", kernel: DefringingKernelCoreGraphics},
		{name: "freetype", kernel: DefringingKernelFreeType},
	} {
		t.Run(tt.name, func(t *testing.T) {
			// The 7-tap expansion mirrors taps 0..2 around the center,
			// so full coverage must resolve to full opacity.
			sum := tt.kernel[3]
			for _, w := range tt.kernel[:3] {
				sum += 2 * w
			}
			if sum < 0.99 || sum > 1.01 {
				t.Errorf("mirrored tap sum = %v, want 1", sum)
			}
		})
	}
}

func nearPoint(a, b Point, eps float32) bool {
	return nearf(a.X, b.X, eps) && nearf(a.Y, b.Y, eps)
}

func nearf(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
