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

// gradients computes both gradient magnitudes for one window position.
//
//	tmp[i] = top[i] + 2*mid[i] + bot[i]       i in [0, width)
//	gx[i]  = |tmp[i] - tmp[i+2]|              i in [0, width-2)
//	gy[i]  = |topS[i] - botS[i]|              i in [0, width-2)
//
// topS and botS are the smoothed top and bottom rows. Index i of gx and gy
// belongs to output column i+1.
func gradients(gx, gy, top, mid, bot, topS, botS, tmp []uint16, width int) {
	tmp = tmp[:width]
	top, mid, bot = top[:width], mid[:width], bot[:width]
	for i := range tmp {
		tmp[i] = top[i] + mid[i]<<1 + bot[i]
	}

	n := width - 2
	gx, gy = gx[:n], gy[:n]
	topS, botS = topS[:n], botS[:n]
	for i := range gx {
		gx[i] = absDiff(tmp[i], tmp[i+2])
		gy[i] = absDiff(topS[i], botS[i])
	}
}

func absDiff(a, b uint16) uint16 {
	if a > b {
		return a - b
	}
	return b - a
}
