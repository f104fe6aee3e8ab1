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

// Package image provides pitched 2D pixel buffers for the mxp kernels.
//
// An Image wraps one linear slice addressed by (x, y) with a row pitch that
// may exceed the width, which is how frame buffers and camera buffers are
// handed to the kernels:
//
//	img := image.NewImage[uint32](640, 480)
//	img.Fill(image.PackARGB(0, 255, 255, 255))
//	sobel.Process(dev, out.Pix(), img.Pix(), img.Width(), img.Height(), img.Pitch(), 2)
//
// Packed aRGB pixels store blue in the low byte:
//
//	bits 31..24  alpha (unused by the kernels)
//	bits 23..16  red
//	bits 15..8   green
//	bits  7..0   blue
package image

import (
	"fmt"

	"github.com/ajroetker/go-highway/hwy"
)

// Image is a 2D array stored row-major in one slice with a row pitch of at
// least Width elements.
type Image[T hwy.Lanes] struct {
	data   []T
	width  int
	height int
	pitch  int // elements per row (includes padding)
}

// NewImage allocates an image whose pitch is the width rounded up to the
// SIMD vector length.
func NewImage[T hwy.Lanes](width, height int) *Image[T] {
	if width <= 0 || height <= 0 {
		return &Image[T]{}
	}
	lanes := hwy.MaxLanes[T]()
	return NewImageWithPitch[T](width, height, ((width+lanes-1)/lanes)*lanes)
}

// NewImageWithPitch allocates an image with an explicit pitch.
// A pitch smaller than width is raised to width.
func NewImageWithPitch[T hwy.Lanes](width, height, pitch int) *Image[T] {
	if width <= 0 || height <= 0 {
		return &Image[T]{}
	}
	pitch = max(pitch, width)
	return &Image[T]{
		data:   make([]T, pitch*height),
		width:  width,
		height: height,
		pitch:  pitch,
	}
}

// FromSlice wraps existing data without copying. It panics if data is too
// short for the requested geometry or pitch is smaller than width.
func FromSlice[T hwy.Lanes](data []T, width, height, pitch int) *Image[T] {
	if width <= 0 || height <= 0 {
		return &Image[T]{}
	}
	if pitch < width {
		panic(fmt.Sprintf("image: pitch %d smaller than width %d", pitch, width))
	}
	if need := (height-1)*pitch + width; len(data) < need {
		panic(fmt.Sprintf("image: data has %d elements, need %d", len(data), need))
	}
	return &Image[T]{
		data:   data,
		width:  width,
		height: height,
		pitch:  pitch,
	}
}

// Width returns the image width in pixels.
func (img *Image[T]) Width() int {
	return img.width
}

// Height returns the image height in pixels.
func (img *Image[T]) Height() int {
	return img.height
}

// Pitch returns the number of elements between the starts of two rows.
func (img *Image[T]) Pitch() int {
	return img.pitch
}

// Pix returns the underlying storage.
func (img *Image[T]) Pix() []T {
	return img.data
}

// Row returns row y including the padding up to the pitch. The last row of
// a wrapped slice may be shorter than the pitch.
func (img *Image[T]) Row(y int) []T {
	if y < 0 || y >= img.height || img.data == nil {
		return nil
	}
	start := y * img.pitch
	return img.data[start:min(start+img.pitch, len(img.data))]
}

// RowSlice returns row y limited to the image width.
func (img *Image[T]) RowSlice(y int) []T {
	if y < 0 || y >= img.height || img.data == nil {
		return nil
	}
	start := y * img.pitch
	return img.data[start : start+img.width]
}

// At returns the value at (x, y), or zero outside the image.
func (img *Image[T]) At(x, y int) T {
	if x < 0 || x >= img.width || y < 0 || y >= img.height || img.data == nil {
		var zero T
		return zero
	}
	return img.data[y*img.pitch+x]
}

// Set stores value at (x, y). Out-of-range coordinates are ignored.
func (img *Image[T]) Set(x, y int, value T) {
	if x < 0 || x >= img.width || y < 0 || y >= img.height || img.data == nil {
		return
	}
	img.data[y*img.pitch+x] = value
}

// Fill sets every element, padding included, to value.
func (img *Image[T]) Fill(value T) {
	for i := range img.data {
		img.data[i] = value
	}
}

// Clone returns a deep copy with the same pitch.
func (img *Image[T]) Clone() *Image[T] {
	clone := &Image[T]{
		width:  img.width,
		height: img.height,
		pitch:  img.pitch,
	}
	if img.data != nil {
		clone.data = make([]T, len(img.data))
		copy(clone.data, img.data)
	}
	return clone
}

// SameSize reports whether both images have the same width and height.
func SameSize[T, U hwy.Lanes](a *Image[T], b *Image[U]) bool {
	return a.width == b.width && a.height == b.height
}
