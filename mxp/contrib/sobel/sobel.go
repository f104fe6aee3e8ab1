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
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/ajroetker/go-mxp/mxp"
)

// numSlots is the number of scratchpad rows a pipeline holds: two input
// rows, three intensity rows, three smoothed rows and one output row.
const numSlots = 9

// pixelBytes is the size of one packed pixel. Every slot is one pixel row
// so that any slot can hold an intensity row or the gx and gy rows together.
const pixelBytes = 4

// state is a pipeline stage.
type state int

const (
	stateInit state = iota
	statePrime
	stateStream
	stateDrain
	stateRelease
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateInit:
		return "init"
	case statePrime:
		return "prime"
	case stateStream:
		return "stream"
	case stateDrain:
		return "drain"
	case stateRelease:
		return "release"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ScratchpadBytes returns how many scratchpad bytes Process reserves on dev
// for an image of the given width.
func ScratchpadBytes(dev *mxp.Device, width int) int {
	align := dev.Scratchpad().Alignment()
	slot := (width*pixelBytes + align - 1) / align * align
	return numSlots * slot
}

// Process runs the edge filter over input and writes the result to output.
// Both buffers hold height rows of pitch pixels; only the first width pixels
// of each row are read or written. renorm is the right shift applied to the
// gradient magnitude before it is clamped to 255.
//
// If dev's scratchpad cannot hold the nine row buffers, Process returns an
// error wrapping mxp.ErrExhausted and leaves output untouched.
//
// The caller guarantees width >= 3, height >= 3, pitch >= width and that the
// buffers do not overlap. On a checked device violations panic.
func Process(dev *mxp.Device, output, input []uint32, width, height, pitch int, renorm uint) error {
	if dev.Checked() {
		checkArgs(output, input, width, height, pitch)
	}
	return dev.Exclusive(func(sp *mxp.Scratchpad, dma *mxp.Engine) error {
		p := &pipeline{sp: sp, dma: dma, log: dev.Logger(), width: width}
		if err := p.reserve(); err != nil {
			return fmt.Errorf("sobel: %dx%d image: %w", width, height, err)
		}
		p.run(output, input, height, pitch, renorm)
		return nil
	})
}

// pipeline is one invocation of the filter.
type pipeline struct {
	sp    *mxp.Scratchpad
	dma   *mxp.Engine
	log   *slog.Logger
	width int

	in    inputRing
	win   window
	out   mxp.Buffer
	state state
	start mxp.Stats
}

func (p *pipeline) enter(s state) {
	p.state = s
	p.log.Debug("sobel pipeline", "state", s, "width", p.width)
}

// reserve acquires all nine slots or none. The slots sit above a mark taken
// here, so reservations the caller already holds survive the pipeline.
func (p *pipeline) reserve() error {
	p.enter(stateInit)
	p.sp.Push()
	bufs, err := p.sp.ReserveAll(p.width*pixelBytes, numSlots)
	if err != nil {
		p.sp.Pop()
		p.enter(stateFailed)
		return err
	}
	p.in.slots = [2]mxp.Buffer{bufs[0], bufs[1]}
	p.win = window{
		luma:   [3]mxp.Buffer{bufs[2], bufs[3], bufs[4]},
		smooth: [3]mxp.Buffer{bufs[5], bufs[6], bufs[7]},
		width:  p.width,
	}
	p.out = bufs[8]
	p.start = p.dma.Stats()
	return nil
}

func (p *pipeline) run(output, input []uint32, height, pitch int, renorm uint) {
	w := p.width
	row := func(img []uint32, y int) []uint32 {
		return img[y*pitch : y*pitch+w]
	}

	p.enter(statePrime)
	first, second := p.in.slots[0], p.in.slots[1]
	p.dma.ToScratch(first, row(input, 0))
	p.dma.ToScratch(second, row(input, 1))
	p.convert(first, roleTop)
	p.dma.ToScratch(first, row(input, 2))
	p.convert(second, roleMid)
	p.in.cur = 0

	out := p.out.Words()[:w]
	zeroRow(out, w)
	p.dma.ToHost(row(output, 0), p.out)

	p.enter(stateStream)
	for y := 1; y < height-1; y++ {
		if y+2 < height {
			p.dma.ToScratch(p.in.next(), row(input, y+2))
		}
		src := p.in.current()
		p.convert(src, roleBot)

		// The raw row has been consumed; its slot now holds gx and gy.
		// The output slot holds the vertical sums until emitRow packs it.
		halves := src.Halves()
		gx, gy := halves[:w], halves[w:2*w]
		p.dma.Await(p.out)
		gradients(gx, gy,
			p.win.lumaRow(roleTop), p.win.lumaRow(roleMid), p.win.lumaRow(roleBot),
			p.win.smoothRow(roleTop), p.win.smoothRow(roleBot),
			p.out.Halves()[:w], w)
		emitRow(out, gx, gy, w, renorm)
		p.dma.ToHost(row(output, y), p.out)

		p.win.advance()
		p.in.swap()
	}

	p.enter(stateDrain)
	p.dma.Await(p.out)
	zeroRow(out, w)
	p.dma.ToHost(row(output, height-1), p.out)

	p.release()
}

// convert turns the raw row in src into the intensity and smoothed rows
// playing role.
func (p *pipeline) convert(src mxp.Buffer, role int) {
	p.dma.Await(src)
	luma := p.win.lumaRow(role)
	rgbToLuma(luma, src.Words()[:p.width], p.width)
	smoothRow(p.win.smoothRow(role), luma, p.width)
}

func (p *pipeline) release() {
	p.enter(stateRelease)
	p.dma.Sync()
	st := p.dma.Stats()
	p.log.Debug("sobel dma", "transfers", st.Transfers-p.start.Transfers, "bytes", st.Bytes-p.start.Bytes)
	p.sp.Pop()
}

func checkArgs(output, input []uint32, width, height, pitch int) {
	if width < 3 || height < 3 {
		panic(fmt.Sprintf("sobel: image %dx%d smaller than 3x3", width, height))
	}
	if pitch < width {
		panic(fmt.Sprintf("sobel: pitch %d smaller than width %d", pitch, width))
	}
	need := (height-1)*pitch + width
	if len(input) < need {
		panic("sobel: input slice too short")
	}
	if len(output) < need {
		panic("sobel: output slice too short")
	}
	in0 := uintptr(unsafe.Pointer(&input[0]))
	out0 := uintptr(unsafe.Pointer(&output[0]))
	span := uintptr(need) * pixelBytes
	if in0 < out0+span && out0 < in0+span {
		panic("sobel: input and output overlap")
	}
}
