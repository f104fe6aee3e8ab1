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

// Package sobel implements a streaming 3x3 Sobel edge filter for packed
// 32-bit aRGB images on an mxp.Device.
//
// The filter never holds more than a few rows in the device scratchpad. Nine
// row slots are reserved up front: two input rows used as a double buffer,
// three intensity rows and three smoothed rows forming the sliding window,
// and one output row. While row y is computed, row y+1 is already being
// copied in by the DMA engine.
//
// Per pixel the filter computes
//
//	luma = (66*R + 129*G + 25*B + 128) >> 8
//	gx   = |v[x-1] - v[x+1]|            v = top + 2*mid + bot
//	gy   = |s_top[x] - s_bot[x]|        s = [1 2 1] row smoothing
//	out  = min((gx + gy) >> renorm, 255) replicated into R, G and B
//
// The first and last rows and columns of the output are always zero.
//
// Usage:
//
//	dev := mxp.NewDevice()
//	defer dev.Close()
//	if err := sobel.Process(dev, out, in, width, height, pitch, 2); err != nil {
//	    // errors.Is(err, mxp.ErrExhausted): the image is too wide for the
//	    // scratchpad and out was not touched.
//	}
//
// ProcessScalar computes the same result on the host without a device.
package sobel
