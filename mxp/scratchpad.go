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

package mxp

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"
)

// minAlign keeps every reservation aligned for uint64 views.
const minAlign = 8

// poison fills fresh reservations in checked mode.
const poison = 0xA5

// Scratchpad is a fixed-capacity bump allocator over a device's working
// memory. Reservations are never freed individually: ReleaseAll returns the
// whole scratchpad, and Pop returns everything reserved since the matching
// Push.
type Scratchpad struct {
	mu      sync.Mutex
	backing []uint64 // keeps mem 8-byte aligned
	mem     []byte
	align   int
	top     int
	marks   []int
	checked bool
	log     *slog.Logger
}

// Buffer is a reserved region of a Scratchpad. The zero Buffer is empty.
// Views returned by Bytes, Words and Halves alias scratchpad memory and are
// only valid until the reservation is released.
type Buffer struct {
	sp  *Scratchpad
	off int
	n   int
}

func newScratchpad(o options, log *slog.Logger) *Scratchpad {
	size := max(o.size, 0)
	backing := make([]uint64, (size+7)/8)
	var mem []byte
	if len(backing) > 0 {
		mem = unsafe.Slice((*byte)(unsafe.Pointer(&backing[0])), size)
	}
	return &Scratchpad{
		backing: backing,
		mem:     mem,
		align:   alignment(o.align),
		checked: o.checked,
		log:     log,
	}
}

// alignment rounds n up to a power of two no smaller than minAlign.
func alignment(n int) int {
	a := minAlign
	for a < n {
		a <<= 1
	}
	return a
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// Size returns the scratchpad capacity in bytes.
func (sp *Scratchpad) Size() int {
	return len(sp.mem)
}

// Alignment returns the alignment applied to every reservation.
func (sp *Scratchpad) Alignment() int {
	return sp.align
}

// Used returns the number of bytes currently reserved, including padding.
func (sp *Scratchpad) Used() int {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.top
}

// Free returns the number of bytes still available.
func (sp *Scratchpad) Free() int {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return len(sp.mem) - sp.top
}

// Reserve reserves n bytes, padded up to the alignment. It returns an error
// wrapping ErrExhausted when the remaining capacity is too small.
//
// In checked mode a non-positive n panics and the reserved bytes are filled
// with a poison pattern.
func (sp *Scratchpad) Reserve(n int) (Buffer, error) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.reserveLocked(n)
}

// ReserveAll reserves count buffers of n bytes each. Either all of them are
// reserved or none are: on failure the scratchpad is left as it was.
func (sp *Scratchpad) ReserveAll(n, count int) ([]Buffer, error) {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	mark := sp.top
	bufs := make([]Buffer, count)
	for i := range bufs {
		b, err := sp.reserveLocked(n)
		if err != nil {
			sp.top = mark
			return nil, fmt.Errorf("buffer %d of %d: %w", i+1, count, err)
		}
		bufs[i] = b
	}
	return bufs, nil
}

func (sp *Scratchpad) reserveLocked(n int) (Buffer, error) {
	if sp.checked && n <= 0 {
		panic(fmt.Sprintf("mxp: reserve of %d bytes", n))
	}
	n = max(n, 0)
	padded := alignUp(n, sp.align)
	free := len(sp.mem) - sp.top
	if padded > free {
		sp.log.Warn("scratchpad exhausted", "request", n, "padded", padded, "free", free)
		return Buffer{}, fmt.Errorf("%w: requested %d bytes, %d free", ErrExhausted, n, free)
	}

	b := Buffer{sp: sp, off: sp.top, n: n}
	sp.top += padded
	if sp.checked {
		region := sp.mem[b.off:sp.top]
		for i := range region {
			region[i] = poison
		}
		sp.log.Debug("scratchpad reserve", "offset", b.off, "bytes", n, "used", sp.top)
	}
	return b, nil
}

// ReleaseAll returns every reservation, including those under open Push
// marks.
func (sp *Scratchpad) ReleaseAll() {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if sp.checked {
		sp.log.Debug("scratchpad release", "bytes", sp.top)
	}
	sp.top = 0
	sp.marks = sp.marks[:0]
}

// Push records the current allocation point.
func (sp *Scratchpad) Push() {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.marks = append(sp.marks, sp.top)
}

// Pop releases everything reserved since the matching Push. An unmatched
// Pop is ignored, or panics in checked mode.
func (sp *Scratchpad) Pop() {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if len(sp.marks) == 0 {
		if sp.checked {
			panic("mxp: Pop without Push")
		}
		return
	}
	last := len(sp.marks) - 1
	sp.top = sp.marks[last]
	sp.marks = sp.marks[:last]
}

// Offset returns the buffer's byte offset in the scratchpad. Buffers are
// identified by offset for DMA ordering.
func (b Buffer) Offset() int {
	return b.off
}

// Len returns the requested size in bytes.
func (b Buffer) Len() int {
	return b.n
}

// IsZero reports whether b is the zero Buffer.
func (b Buffer) IsZero() bool {
	return b.sp == nil
}

// Bytes returns the buffer contents.
func (b Buffer) Bytes() []byte {
	if b.sp == nil {
		return nil
	}
	return b.sp.mem[b.off : b.off+b.n : b.off+b.n]
}

// Words returns the buffer as 32-bit elements.
func (b Buffer) Words() []uint32 {
	if b.sp == nil || b.n < 4 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&b.sp.mem[b.off])), b.n/4)
}

// Halves returns the buffer as 16-bit elements.
func (b Buffer) Halves() []uint16 {
	if b.sp == nil || b.n < 2 {
		return nil
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(&b.sp.mem[b.off])), b.n/2)
}
