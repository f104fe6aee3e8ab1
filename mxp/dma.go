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
	"sync"
	"sync/atomic"
)

// Engine is the DMA engine of a device. A single persistent goroutine
// executes transfers in the order they were issued, so a transfer that
// overwrites a buffer always lands after earlier transfers reading it.
//
// Issuing, Await and Sync must be called from one goroutine at a time; the
// owning Device serialises them through Exclusive.
type Engine struct {
	queue     chan transfer
	issued    uint64         // sequence number of the newest transfer
	pending   map[int]uint64 // newest transfer per buffer offset
	closeOnce sync.Once
	closed    atomic.Bool

	mu   sync.Mutex
	cond sync.Cond
	done uint64 // guarded by mu; transfers up to done have landed

	transfers atomic.Int64
	bytes     atomic.Int64
}

// transfer is one queued copy. Transfers are passed by value so issuing
// one does not allocate.
type transfer struct {
	seq      uint64
	dst, src []uint32
}

// Stats counts the transfers an engine has issued.
type Stats struct {
	Transfers int64
	Bytes     int64
}

// NewEngine starts a DMA engine that buffers up to queueDepth transfers
// before issuing blocks.
func NewEngine(queueDepth int) *Engine {
	e := &Engine{
		queue:   make(chan transfer, max(queueDepth, 0)),
		pending: make(map[int]uint64),
	}
	e.cond.L = &e.mu
	go e.worker()
	return e
}

func (e *Engine) worker() {
	for t := range e.queue {
		copy(t.dst, t.src)
		e.complete(t.seq)
	}
}

func (e *Engine) complete(seq uint64) {
	e.mu.Lock()
	e.done = seq
	e.mu.Unlock()
	e.cond.Broadcast()
}

// wait blocks until the transfer numbered seq has landed.
func (e *Engine) wait(seq uint64) {
	e.mu.Lock()
	for e.done < seq {
		e.cond.Wait()
	}
	e.mu.Unlock()
}

// Close stops the DMA goroutine after queued transfers finish. Transfers
// issued afterwards run synchronously. Calling Close more than once is safe.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		close(e.queue)
	})
}

// ToScratch copies src from host memory into dst. The copy may still be in
// flight when ToScratch returns; call Await(dst) before reading dst.
// At most dst.Len()/4 words are copied.
func (e *Engine) ToScratch(dst Buffer, src []uint32) {
	words := dst.Words()
	n := min(len(words), len(src))
	e.issue(dst, words[:n], src[:n])
}

// ToHost copies src from the scratchpad into host memory dst. src must not
// be modified until Await(src) or Sync returns.
func (e *Engine) ToHost(dst []uint32, src Buffer) {
	words := src.Words()
	n := min(len(words), len(dst))
	e.issue(src, dst[:n], words[:n])
}

// issue queues copy(dst, src) on behalf of buffer b.
func (e *Engine) issue(b Buffer, dst, src []uint32) {
	e.issued++
	seq := e.issued
	e.pending[b.Offset()] = seq
	e.transfers.Add(1)
	e.bytes.Add(int64(4 * len(src)))

	if e.closed.Load() {
		// Earlier queued transfers still land first.
		e.wait(seq - 1)
		copy(dst, src)
		e.complete(seq)
		return
	}
	e.queue <- transfer{seq: seq, dst: dst, src: src}
}

// Await blocks until the most recent transfer touching b has completed.
// Transfers complete in order, so earlier ones have completed too.
func (e *Engine) Await(b Buffer) {
	seq, ok := e.pending[b.Offset()]
	if !ok {
		return
	}
	e.wait(seq)
	delete(e.pending, b.Offset())
}

// Sync blocks until every issued transfer has completed.
func (e *Engine) Sync() {
	e.wait(e.issued)
	clear(e.pending)
}

// Stats returns the running totals of issued transfers.
func (e *Engine) Stats() Stats {
	return Stats{
		Transfers: e.transfers.Load(),
		Bytes:     e.bytes.Load(),
	}
}
