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
	"github.com/ajroetker/go-mxp/mxp"
)

// Window roles, relative to the row being emitted.
const (
	roleTop = iota
	roleMid
	roleBot
)

// window is the sliding three-row window. The six slots never move; pos
// selects which slot currently plays the top role, so advancing the window
// is a single index update.
type window struct {
	luma   [3]mxp.Buffer
	smooth [3]mxp.Buffer
	pos    int
	width  int
}

func (w *window) slot(role int) int {
	return (w.pos + role) % 3
}

// lumaRow returns the intensity row playing role.
func (w *window) lumaRow(role int) []uint16 {
	return w.luma[w.slot(role)].Halves()[:w.width]
}

// smoothRow returns the smoothed row playing role.
func (w *window) smoothRow(role int) []uint16 {
	return w.smooth[w.slot(role)].Halves()[:w.width]
}

// advance moves the window down one row: bottom becomes mid, mid becomes top
// and the old top slots are recycled as the next bottom.
func (w *window) advance() {
	w.pos = (w.pos + 1) % 3
}

// inputRing is the double buffer for raw input rows. current holds the row
// about to be converted; next is free for the prefetch of the row after it.
type inputRing struct {
	slots [2]mxp.Buffer
	cur   int
}

func (r *inputRing) current() mxp.Buffer {
	return r.slots[r.cur]
}

func (r *inputRing) next() mxp.Buffer {
	return r.slots[r.cur^1]
}

func (r *inputRing) swap() {
	r.cur ^= 1
}
