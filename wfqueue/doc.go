// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wfqueue provides a wait-free-enqueue, blocking-dequeue FIFO
// queue: an unbounded singly linked list with an inline dummy node,
// ported from Userspace RCU's wfqueue onto [sync/atomic.Pointer].
//
// Enqueue never blocks and completes in a bounded number of steps
// regardless of what other producers are doing. Dequeue is exclusive to a
// single consumer (guarded by an internal mutex) and may briefly spin or
// sleep while a concurrent enqueue finishes linking its node in.
//
// # Basic Usage
//
//	q := wfqueue.NewQueue[*Task]()
//
//	// Producers (any number, concurrent)
//	q.Enqueue(wfqueue.NewNode(task))
//
//	// Consumer (single)
//	for {
//	    n, ok := q.DequeueBlocking()
//	    if !ok {
//	        break // queue was observably empty
//	    }
//	    process(n.Value)
//	}
//
// # Why a Linked List
//
// This queue is unbounded and dequeue can observe a transient state where
// a producer has claimed the tail slot but has not yet linked its node in
// — the consumer waits that out rather than failing. That is a different
// contract from the bounded, non-blocking ring-buffer queues used
// elsewhere in this ecosystem: those return immediately when full or
// empty rather than waiting, and are sized up front rather than growing
// without bound. Use this queue when producers must never be rejected and
// the consumer can afford to block briefly; use a bounded queue when
// backpressure is part of the design.
package wfqueue
