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
	"log/slog"
	"os"
	"strconv"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// DefaultScratchpadSize is the scratchpad capacity used when neither
// WithScratchpadSize nor MXP_SCRATCHPAD_SIZE is given.
const DefaultScratchpadSize = 64 << 10

// DefaultQueueDepth is the number of transfers the DMA engine accepts before
// ToScratch and ToHost start to block.
const DefaultQueueDepth = 16

// Option configures a Device during creation.
//
// Example:
//
//	dev := mxp.NewDevice(
//	    mxp.WithScratchpadSize(128<<10),
//	    mxp.WithChecked(true),
//	)
type Option func(*options)

type options struct {
	size       int
	align      int
	queueDepth int
	checked    bool
	logger     *slog.Logger
}

// defaultOptions starts from the built-in defaults and applies the
// environment on top. Explicit options are applied afterwards by NewDevice.
func defaultOptions() options {
	o := options{
		size:       DefaultScratchpadSize,
		align:      CacheLineSize(),
		queueDepth: DefaultQueueDepth,
	}
	if n, ok := ScratchpadSizeEnv(); ok {
		o.size = n
	}
	o.checked = CheckedEnv()
	return o
}

// WithScratchpadSize sets the scratchpad capacity in bytes.
func WithScratchpadSize(n int) Option {
	return func(o *options) {
		o.size = n
	}
}

// WithAlignment sets the alignment of every reservation in bytes. It is
// rounded up to a power of two of at least 8. The default is CacheLineSize.
func WithAlignment(n int) Option {
	return func(o *options) {
		o.align = max(n, 1)
	}
}

// WithQueueDepth sets how many transfers may be queued on the DMA engine.
func WithQueueDepth(n int) Option {
	return func(o *options) {
		o.queueDepth = max(n, 0)
	}
}

// WithChecked turns on reservation validation and poisoning.
func WithChecked(checked bool) Option {
	return func(o *options) {
		o.checked = checked
	}
}

// WithLogger sets the logger for one device. Without it the device uses the
// package logger current at creation time.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// CacheLineSize returns the CPU cache-line size in bytes as reported by
// golang.org/x/sys/cpu.
func CacheLineSize() int {
	return int(unsafe.Sizeof(cpu.CacheLinePad{}))
}

// ScratchpadSizeEnv reads MXP_SCRATCHPAD_SIZE. It reports false when the
// variable is unset or not a non-negative integer.
func ScratchpadSizeEnv() (int, bool) {
	val := os.Getenv("MXP_SCRATCHPAD_SIZE")
	if val == "" {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// CheckedEnv reports whether MXP_CHECKED is set. Any non-empty value other
// than an explicit false counts as set.
func CheckedEnv() bool {
	val := os.Getenv("MXP_CHECKED")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
