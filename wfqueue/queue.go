// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wfqueue

import (
	"sync"
	"sync/atomic"
	"time"

	"code.hybscloud.com/spin"
)

// wfqAdaptAttempts is the number of CPU-relax spins DequeueBlocking tries
// before falling back to sleeping.
const wfqAdaptAttempts = 10

// wfqWait is how long DequeueBlocking sleeps between adaptive-backoff
// attempts once it has given up spinning.
const wfqWait = 10 * time.Millisecond

// Node is a queue element. The zero value is not usable; create one with
// [NewNode].
type Node[T any] struct {
	next  atomic.Pointer[Node[T]]
	Value T
}

// NewNode wraps v in a Node ready to [Queue.Enqueue].
func NewNode[T any](v T) *Node[T] {
	return &Node[T]{Value: v}
}

// Queue is a wait-free-enqueue, blocking-dequeue FIFO. The zero value is
// not ready for use; construct one with [NewQueue].
//
// tail always points at the most recently appended node (or at dummy when
// the queue is empty). A C-style version of this design points tail at the
// next-slot awaiting an enqueue, addressing a node's next field directly
// rather than the node itself.
// sync/atomic.Pointer works on whole pointers, not field addresses, so
// this implementation swaps the last-node pointer and then stores into
// that node's next field as a second step. DequeueBlocking waits out the
// transient window between those two steps, where a node is reachable
// from tail but its next field has not yet been linked.
type Queue[T any] struct {
	mu    sync.Mutex
	head  *Node[T]
	tail  atomic.Pointer[Node[T]]
	dummy Node[T]
}

// NewQueue creates an empty queue.
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.head = &q.dummy
	q.tail.Store(&q.dummy)
	return q
}

// Enqueue appends node to the queue. Safe for any number of concurrent
// producers; wait-free regardless of what other producers or the consumer
// are doing.
func (q *Queue[T]) Enqueue(node *Node[T]) {
	node.next.Store(nil)
	prev := q.tail.Swap(node)
	// Between the swap above and this store, a concurrent DequeueBlocking
	// that has reached prev sees a nil next and waits for exactly this.
	prev.next.Store(node)
}

// DequeueBlocking removes and returns the oldest node. It reports
// (nil, false) only when the queue was observably empty at entry — head
// and tail both still the dummy node. Otherwise it waits, spinning then
// sleeping, for an in-flight concurrent Enqueue to finish linking its
// node in, and always eventually returns one.
//
// DequeueBlocking serializes with other DequeueBlocking callers through
// an internal mutex; only one consumer may be active at a time.
func (q *Queue[T]) DequeueBlocking() (*Node[T], bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		if q.head == &q.dummy && q.tail.Load() == &q.dummy {
			return nil, false
		}

		node := q.head
		next := node.next.Load()
		if next == nil {
			sw := spin.Wait{}
			attempts := 0
			for next == nil {
				if attempts >= wfqAdaptAttempts {
					time.Sleep(wfqWait)
					attempts = 0
				} else {
					sw.Once()
					attempts++
				}
				next = node.next.Load()
			}
		}

		q.head = next
		if node != &q.dummy {
			return node, true
		}

		// Just dequeued the dummy: put it back at the tail and retry so
		// the caller never sees it.
		q.Enqueue(&q.dummy)
	}
}
