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

package sobel

const (
	// maxIntensity is the clamp applied after renormalisation.
	maxIntensity = 255

	// grayReplicate copies the low byte into the green and red bytes.
	grayReplicate = 0x00010101

	// maxShift is the first shift that clears every uint16 magnitude.
	maxShift = 16
)

// emitRow packs one output row:
//
//	out[i+1] = gray(min((gx[i] + gy[i]) >> renorm, 255))   i in [0, width-2)
//	out[0] = out[width-1] = 0
func emitRow(out []uint32, gx, gy []uint16, width int, renorm uint) {
	out = out[:width]
	out[0] = 0
	out[width-1] = 0

	shift := min(renorm, maxShift)
	dst := out[1 : width-1]
	gx, gy = gx[:len(dst)], gy[:len(dst)]
	for i := range dst {
		dst[i] = edgePixel(gx[i], gy[i], shift)
	}
}

// edgePixel packs one gradient pair into a gray pixel.
func edgePixel(gx, gy uint16, shift uint) uint32 {
	m := min((gx+gy)>>shift, maxIntensity)
	return uint32(m) * grayReplicate
}

// zeroRow clears the first width pixels of out.
func zeroRow(out []uint32, width int) {
	clear(out[:width])
}
