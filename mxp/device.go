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

	"github.com/ajroetker/go-highway/hwy"
)

// Device is a handle to one vector unit: its scratchpad, its DMA engine and
// its configuration. Kernels receive the device explicitly; there is no
// process-wide current device.
type Device struct {
	mu   sync.Mutex
	sp   *Scratchpad
	dma  *Engine
	opts options
	log  *slog.Logger
}

// NewDevice creates a device. Defaults come from DefaultScratchpadSize,
// CacheLineSize and the MXP_* environment variables; opts override them.
func NewDevice(opts ...Option) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}
	return &Device{
		sp:   newScratchpad(o, log),
		dma:  NewEngine(o.queueDepth),
		opts: o,
		log:  log,
	}
}

// Scratchpad returns the device's working memory.
func (d *Device) Scratchpad() *Scratchpad {
	return d.sp
}

// DMA returns the device's transfer engine.
func (d *Device) DMA() *Engine {
	return d.dma
}

// Checked reports whether the device validates reservations and kernel
// preconditions.
func (d *Device) Checked() bool {
	return d.opts.checked
}

// Logger returns the logger the device reports to.
func (d *Device) Logger() *slog.Logger {
	return d.log
}

// VectorLanes returns the number of 32-bit lanes per vector on this host.
func (d *Device) VectorLanes() int {
	return hwy.MaxLanes[uint32]()
}

// Exclusive runs fn with sole ownership of the scratchpad and DMA engine.
// Concurrent callers wait for each other.
func (d *Device) Exclusive(fn func(sp *Scratchpad, dma *Engine) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(d.sp, d.dma)
}

// Close waits for a running kernel and its outstanding transfers, then
// stops the DMA engine. Kernels run after Close still work; their transfers
// complete synchronously.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dma.Sync()
	d.dma.Close()
}

// String describes the device parameters.
func (d *Device) String() string {
	return fmt.Sprintf("mxp: simd=%s vector_lanes=%d scratchpad_size=%d alignment=%d queue_depth=%d checked=%t",
		hwy.CurrentName(), d.VectorLanes(), d.sp.Size(), d.sp.Alignment(), d.opts.queueDepth, d.opts.checked)
}
