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

import (
	"testing"

	"github.com/ajroetker/go-mxp/mxp"
	"github.com/ajroetker/go-mxp/mxp/mxptest"
)

// lumaRow builds a pseudo-random intensity row in [0, 219].
func lumaRow(width int, seed uint32) []uint16 {
	row := make([]uint16, width)
	lfsr := seed
	for i := range row {
		row[i] = uint16(lfsr % 220)
		lfsr = mxptest.LFSR32(lfsr)
	}
	return row
}

func TestSmoothRow(t *testing.T) {
	for _, width := range testWidths {
		t.Run(widthName(width), func(t *testing.T) {
			in := lumaRow(width, 0x1234+uint32(width))
			out := make([]uint16, width)
			smoothRow(out, in, width)
			for i := 0; i <= width-3; i++ {
				want := in[i] + 2*in[i+1] + in[i+2]
				if out[i] != want {
					t.Errorf("out[%d] = %d, want %d", i, out[i], want)
				}
			}
		})
	}
}

func TestGradients(t *testing.T) {
	for _, width := range testWidths {
		t.Run(widthName(width), func(t *testing.T) {
			top := lumaRow(width, 0x11)
			mid := lumaRow(width, 0x22)
			bot := lumaRow(width, 0x33)
			topS := make([]uint16, width)
			botS := make([]uint16, width)
			smoothRow(topS, top, width)
			smoothRow(botS, bot, width)

			gx := make([]uint16, width)
			gy := make([]uint16, width)
			tmp := make([]uint16, width)
			gradients(gx, gy, top, mid, bot, topS, botS, tmp, width)

			for i := 0; i < width-2; i++ {
				vl := int(top[i]) + 2*int(mid[i]) + int(bot[i])
				vr := int(top[i+2]) + 2*int(mid[i+2]) + int(bot[i+2])
				if want := uint16(abs(vl - vr)); gx[i] != want {
					t.Errorf("gx[%d] = %d, want %d", i, gx[i], want)
				}
				if want := uint16(abs(int(topS[i]) - int(botS[i]))); gy[i] != want {
					t.Errorf("gy[%d] = %d, want %d", i, gy[i], want)
				}
			}
		})
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestEmitRow(t *testing.T) {
	for _, width := range testWidths {
		t.Run(widthName(width), func(t *testing.T) {
			n := width - 2
			gx := make([]uint16, n)
			gy := make([]uint16, n)
			for i := range n {
				// Sweep magnitudes across the clamp point.
				gx[i] = uint16(i * 37 % 1021)
				gy[i] = uint16(i * 53 % 1021)
			}
			for _, renorm := range []uint{0, 1, 2, 3, 8, 16, 40} {
				out := make([]uint32, width)
				for i := range out {
					out[i] = mxptest.Sentinel
				}
				emitRow(out, gx, gy, width, renorm)

				if out[0] != 0 || out[width-1] != 0 {
					t.Errorf("renorm %d: border = %#x, %#x; want 0", renorm, out[0], out[width-1])
				}
				for i := range n {
					m := int(gx[i]) + int(gy[i])
					if renorm >= 16 {
						m = 0
					} else {
						m >>= renorm
					}
					m = min(m, 255)
					want := uint32(m) | uint32(m)<<8 | uint32(m)<<16
					if out[i+1] != want {
						t.Errorf("renorm %d: out[%d] = %#08x, want %#08x", renorm, i+1, out[i+1], want)
					}
				}
			}
		})
	}
}

func TestWindowRotatesWithoutCopy(t *testing.T) {
	dev := mxp.NewDevice(mxp.WithScratchpadSize(4096))
	defer dev.Close()
	sp := dev.Scratchpad()
	bufs, err := sp.ReserveAll(16, 6)
	if err != nil {
		t.Fatal(err)
	}
	defer sp.ReleaseAll()

	w := window{
		luma:   [3]mxp.Buffer{bufs[0], bufs[1], bufs[2]},
		smooth: [3]mxp.Buffer{bufs[3], bufs[4], bufs[5]},
		width:  4,
	}
	w.lumaRow(roleTop)[0] = 10
	w.lumaRow(roleMid)[0] = 20
	w.lumaRow(roleBot)[0] = 30
	w.smoothRow(roleBot)[0] = 300

	w.advance()
	if got := w.lumaRow(roleTop)[0]; got != 20 {
		t.Errorf("after advance top = %d, want old mid 20", got)
	}
	if got := w.lumaRow(roleMid)[0]; got != 30 {
		t.Errorf("after advance mid = %d, want old bottom 30", got)
	}
	if got := w.lumaRow(roleBot)[0]; got != 10 {
		t.Errorf("after advance bottom slot = %d, want recycled old top 10", got)
	}
	if got := w.smoothRow(roleMid)[0]; got != 300 {
		t.Errorf("after advance smoothed mid = %d, want 300", got)
	}

	w.advance()
	w.advance()
	if w.pos != 0 || w.lumaRow(roleTop)[0] != 10 {
		t.Errorf("three advances should restore the initial roles, pos = %d", w.pos)
	}

	r := inputRing{slots: [2]mxp.Buffer{bufs[0], bufs[1]}}
	if r.current().Offset() != bufs[0].Offset() || r.next().Offset() != bufs[1].Offset() {
		t.Error("inputRing initial roles wrong")
	}
	r.swap()
	if r.current().Offset() != bufs[1].Offset() || r.next().Offset() != bufs[0].Offset() {
		t.Error("inputRing roles not swapped")
	}
}

func TestKernelsDoNotAllocate(t *testing.T) {
	const width = 1920
	row := mxptest.Random(width, 1, width, 0x77).Pix()
	luma := make([]uint16, width)
	top, mid, bot := lumaRow(width, 1), lumaRow(width, 2), lumaRow(width, 3)
	topS, botS := make([]uint16, width), lumaRow(width, 4)
	gx, gy, tmp := make([]uint16, width), make([]uint16, width), make([]uint16, width)
	out := make([]uint32, width)

	tests := []struct {
		name string
		fn   func()
	}{
		{"rgbToLuma", func() { rgbToLuma(luma, row, width) }},
		{"smoothRow", func() { smoothRow(topS, top, width) }},
		{"gradients", func() { gradients(gx, gy, top, mid, bot, topS, botS, tmp, width) }},
		{"emitRow", func() { emitRow(out, gx, gy, width, 2) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if allocs := testing.AllocsPerRun(50, tc.fn); allocs != 0 {
				t.Errorf("%s allocates %v times per row, want 0", tc.name, allocs)
			}
		})
	}
}
