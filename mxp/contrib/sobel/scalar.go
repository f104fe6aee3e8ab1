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

// ProcessScalar computes the same result as Process on the host, one pixel
// at a time and without a device. It shares no code with the row kernels
// Process runs, which makes it the reference the pipeline is tested against.
// It needs no scratchpad and cannot fail; it allocates one intensity plane
// for the whole image.
func ProcessScalar(output, input []uint32, width, height, pitch int, renorm uint) {
	luma := make([]int, width*height)
	for y := range height {
		for x := range width {
			p := input[y*pitch+x]
			r, g, b := int(p>>16&0xFF), int(p>>8&0xFF), int(p&0xFF)
			luma[y*width+x] = (66*r + 129*g + 25*b + 128) >> 8
		}
	}
	at := func(x, y int) int {
		return luma[y*width+x]
	}
	abs := func(v int) int {
		if v < 0 {
			return -v
		}
		return v
	}

	for y := range height {
		out := output[y*pitch : y*pitch+width]
		if y == 0 || y == height-1 {
			clear(out)
			continue
		}
		out[0] = 0
		out[width-1] = 0
		for x := 1; x < width-1; x++ {
			left := at(x-1, y-1) + 2*at(x-1, y) + at(x-1, y+1)
			right := at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1)
			above := at(x-1, y-1) + 2*at(x, y-1) + at(x+1, y-1)
			below := at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)

			m := (abs(left-right) + abs(above-below)) >> renorm
			m = min(m, 255)
			out[x] = uint32(m) * 0x00010101
		}
	}
}
