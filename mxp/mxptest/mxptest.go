// Copyright 2025 go-mxp Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mxptest provides test patterns and comparison helpers for mxp
// kernels.
//
// Patterns are returned as pitched images whose padding is filled with
// Sentinel, so a kernel that writes past the image width is easy to catch.
package mxptest

import (
	"fmt"

	"github.com/ajroetker/go-highway/hwy"

	"github.com/ajroetker/go-mxp/mxp/contrib/image"
)

// Sentinel fills padding and untouched output.
const Sentinel uint32 = 0xDEADBEEF

// LFSR32 advances a 32-bit linear-feedback shift register with taps at
// bits 31, 21, 1 and 0. A zero state stays zero.
func LFSR32(prev uint32) uint32 {
	return ((prev>>31)^(prev>>21)^(prev>>1)^prev)&1 | prev<<1
}

// newPattern allocates a pitched image with every element set to Sentinel.
func newPattern(width, height, pitch int) *image.Image[uint32] {
	img := image.NewImageWithPitch[uint32](width, height, pitch)
	img.Fill(Sentinel)
	return img
}

// Random fills an image with LFSR output starting from seed. The alpha byte
// is left as generated.
func Random(width, height, pitch int, seed uint32) *image.Image[uint32] {
	img := newPattern(width, height, pitch)
	lfsr := seed
	for y := range height {
		row := img.RowSlice(y)
		for x := range row {
			row[x] = lfsr
			lfsr = LFSR32(lfsr)
		}
	}
	return img
}

// Checkerboard alternates dark and light squares of cell pixels.
func Checkerboard(width, height, pitch, cell int, dark, light uint32) *image.Image[uint32] {
	img := newPattern(width, height, pitch)
	cell = max(cell, 1)
	for y := range height {
		row := img.RowSlice(y)
		for x := range row {
			if (x/cell+y/cell)%2 == 0 {
				row[x] = dark
			} else {
				row[x] = light
			}
		}
	}
	return img
}

// HorizontalRamp brightens from black at x=0 to white at x=width-1.
func HorizontalRamp(width, height, pitch int) *image.Image[uint32] {
	img := newPattern(width, height, pitch)
	for y := range height {
		row := img.RowSlice(y)
		for x := range row {
			row[x] = image.Gray(rampLevel(x, width))
		}
	}
	return img
}

// VerticalRamp brightens from black at y=0 to white at y=height-1.
func VerticalRamp(width, height, pitch int) *image.Image[uint32] {
	img := newPattern(width, height, pitch)
	for y := range height {
		row := img.RowSlice(y)
		for x := range row {
			row[x] = image.Gray(rampLevel(y, height))
		}
	}
	return img
}

func rampLevel(i, n int) uint8 {
	if n <= 1 {
		return 0
	}
	return uint8(i * 255 / (n - 1))
}

// Verify compares want and got element by element and reports the first
// difference.
func Verify[T comparable](want, got []T) error {
	if len(want) != len(got) {
		return fmt.Errorf("length mismatch: want %d, got %d", len(want), len(got))
	}
	for i := range want {
		if want[i] != got[i] {
			return fmt.Errorf("fail at sample %d: want %v, got %v", i, want[i], got[i])
		}
	}
	return nil
}

// VerifyImage compares two images inside their width and reports the first
// differing pixel by coordinate.
func VerifyImage[T interface {
	hwy.Lanes
	comparable
}](want, got *image.Image[T]) error {
	if !image.SameSize(want, got) {
		return fmt.Errorf("size mismatch: want %dx%d, got %dx%d",
			want.Width(), want.Height(), got.Width(), got.Height())
	}
	for y := range want.Height() {
		w, g := want.RowSlice(y), got.RowSlice(y)
		for x := range w {
			if w[x] != g[x] {
				return fmt.Errorf("fail at (%d,%d): want %v, got %v", x, y, w[x], g[x])
			}
		}
	}
	return nil
}
