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

// smoothRow applies the [1 2 1] filter along a row as two pairwise sums:
//
//	out[i] = in[i] + 2*in[i+1] + in[i+2]    for i in [0, width-3]
//
// out[width-2] and out[width-1] are left with intermediate values and must
// not be read.
func smoothRow(out, in []uint16, width int) {
	in = in[:width]
	out = out[:width]

	// out[i] = in[i] + in[i+1]
	for i := range width - 1 {
		out[i] = in[i] + in[i+1]
	}

	// out[i] = out[i] + out[i+1], in place and ascending so out[i+1] is
	// still the first-pass value when it is read.
	for i := range width - 2 {
		out[i] += out[i+1]
	}
}
