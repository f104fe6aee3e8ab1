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

// Fixed-point luma weights; they sum to 220, and with the rounding term the
// result always fits in 8 bits.
const (
	lumaR     = 66
	lumaG     = 129
	lumaB     = 25
	lumaRound = 128
	lumaShift = 8
)

// rgbToLuma converts width packed pixels of row into intensities.
func rgbToLuma(luma []uint16, row []uint32, width int) {
	row = row[:width]
	luma = luma[:len(row)]
	for i, p := range row {
		luma[i] = lumaOf(p)
	}
}

func lumaOf(p uint32) uint16 {
	r := (p >> 16) & 0xFF
	g := (p >> 8) & 0xFF
	b := p & 0xFF
	return uint16((lumaR*r + lumaG*g + lumaB*b + lumaRound) >> lumaShift)
}
