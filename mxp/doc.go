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

// Package mxp models a scratchpad vector processor: a data-parallel compute
// unit with a small fixed-capacity working memory and a DMA engine that moves
// rows between host memory and that working memory while compute runs.
//
// A Device bundles the three parts:
//
//	dev := mxp.NewDevice(mxp.WithScratchpadSize(64 << 10))
//	defer dev.Close()
//
//	err := dev.Exclusive(func(sp *mxp.Scratchpad, dma *mxp.Engine) error {
//	    sp.Push()
//	    defer sp.Pop()
//	    bufs, err := sp.ReserveAll(rowBytes, 4)
//	    if err != nil {
//	        return err
//	    }
//	    dma.ToScratch(bufs[0], hostRow)
//	    dma.Await(bufs[0])
//	    // compute on bufs[0].Words() ...
//	    dma.Sync()
//	    return nil
//	})
//
// # Scratchpad
//
// The Scratchpad is a bump allocator. Reservations are aligned to the CPU
// cache line by default. A kernel brackets its working set with Push and Pop
// so that one Pop returns it in a single batch and leaves whatever the caller
// reserved earlier in place. ReleaseAll empties the whole scratchpad.
//
// # DMA
//
// Transfers are queued to a single DMA goroutine and complete in issue order.
// Await blocks until the last transfer touching a buffer has landed; Sync
// waits for everything.
//
// # Configuration
//
// Options passed to NewDevice take precedence over the environment:
//
//	MXP_SCRATCHPAD_SIZE  scratchpad capacity in bytes
//	MXP_CHECKED          validate and poison reservations (any true value)
package mxp
