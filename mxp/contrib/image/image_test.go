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

package image

import (
	"fmt"
	"testing"

	"github.com/ajroetker/go-highway/hwy"
)

func TestNewImage(t *testing.T) {
	for _, width := range []int{1, 7, 8, 15, 16, 17, 100} {
		t.Run(fmt.Sprintf("w%d", width), func(t *testing.T) {
			img := NewImage[uint32](width, 3)
			lanes := hwy.MaxLanes[uint32]()
			if img.Pitch() < width || img.Pitch()%lanes != 0 {
				t.Errorf("Pitch() = %d, want >= %d and a multiple of %d", img.Pitch(), width, lanes)
			}
			if len(img.Pix()) != img.Pitch()*3 {
				t.Errorf("len(Pix()) = %d, want %d", len(img.Pix()), img.Pitch()*3)
			}
			if len(img.RowSlice(2)) != width {
				t.Errorf("len(RowSlice(2)) = %d, want %d", len(img.RowSlice(2)), width)
			}
		})
	}
}

func TestNewImageEmpty(t *testing.T) {
	for _, img := range []*Image[uint16]{NewImage[uint16](0, 4), NewImageWithPitch[uint16](4, -1, 8)} {
		if img.Width() != 0 || img.Height() != 0 || img.Pix() != nil || img.Row(0) != nil {
			t.Errorf("empty image = %+v", img)
		}
	}
}

func TestPitchedAccess(t *testing.T) {
	img := NewImageWithPitch[uint32](3, 2, 5)
	img.Fill(0xFFFFFFFF)
	img.Set(0, 1, 7)
	img.Set(3, 1, 9)  // outside width
	img.Set(-1, 0, 9) // outside
	if got := img.Pix()[5]; got != 7 {
		t.Errorf("Pix()[5] = %d, want 7", got)
	}
	if got := img.At(0, 1); got != 7 {
		t.Errorf("At(0,1) = %d, want 7", got)
	}
	if got := img.At(3, 1); got != 0 {
		t.Errorf("At(3,1) = %d, want 0", got)
	}
	if got := len(img.Row(1)); got != 5 {
		t.Errorf("len(Row(1)) = %d, want 5", got)
	}
	if img.Row(2) != nil || img.RowSlice(-1) != nil {
		t.Error("out-of-range rows should be nil")
	}
}

func TestFromSlice(t *testing.T) {
	data := make([]uint32, 2*6+4) // last row needs only width elements
	img := FromSlice(data, 4, 3, 6)
	img.Set(3, 2, 5)
	if data[15] != 5 {
		t.Errorf("FromSlice does not alias data: data[15] = %d", data[15])
	}
	if got := len(img.Row(2)); got != 4 {
		t.Errorf("len(Row(2)) = %d, want 4", got)
	}

	assertPanics(t, "short data", func() { FromSlice(make([]uint32, 10), 4, 3, 6) })
	assertPanics(t, "small pitch", func() { FromSlice(make([]uint32, 100), 4, 3, 2) })
}

func TestClone(t *testing.T) {
	img := NewImage[uint16](5, 5)
	img.Set(2, 2, 42)
	clone := img.Clone()
	img.Set(2, 2, 0)
	if clone.At(2, 2) != 42 {
		t.Errorf("clone.At(2,2) = %d, want 42", clone.At(2, 2))
	}
	if !SameSize(img, clone) {
		t.Error("SameSize(img, clone) = false")
	}
	if SameSize(img, NewImage[uint32](5, 4)) {
		t.Error("SameSize with different height = true")
	}
}

func TestARGB(t *testing.T) {
	p := PackARGB(0x11, 0x22, 0x33, 0x44)
	if p != 0x11223344 {
		t.Errorf("PackARGB = %#08x, want 0x11223344", p)
	}
	a, r, g, b := UnpackARGB(p)
	if a != 0x11 || r != 0x22 || g != 0x33 || b != 0x44 {
		t.Errorf("UnpackARGB = %#x %#x %#x %#x", a, r, g, b)
	}
	if Gray(0xAB) != 0x00ABABAB {
		t.Errorf("Gray(0xAB) = %#08x", Gray(0xAB))
	}
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}
