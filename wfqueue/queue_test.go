// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wfqueue_test

import (
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/rcu/wfqueue"
)

// TestQueueEmptyThenEnqueue is scenario 6: a consumer on an empty queue
// gets none, and a subsequent enqueue makes the next dequeue succeed.
func TestQueueEmptyThenEnqueue(t *testing.T) {
	q := wfqueue.NewQueue[int]()

	if _, ok := q.DequeueBlocking(); ok {
		t.Fatal("DequeueBlocking on empty queue: got a node, want none")
	}

	q.Enqueue(wfqueue.NewNode(42))

	n, ok := q.DequeueBlocking()
	if !ok {
		t.Fatal("DequeueBlocking after Enqueue: got none, want a node")
	}
	if n.Value != 42 {
		t.Fatalf("DequeueBlocking: got %d, want 42", n.Value)
	}

	if _, ok := q.DequeueBlocking(); ok {
		t.Fatal("DequeueBlocking after draining: got a node, want none")
	}
}

// TestQueueFIFOSingleProducer checks strict FIFO order for one producer.
func TestQueueFIFOSingleProducer(t *testing.T) {
	q := wfqueue.NewQueue[int]()
	const n = 1000

	for i := range n {
		q.Enqueue(wfqueue.NewNode(i))
	}
	for i := range n {
		node, ok := q.DequeueBlocking()
		if !ok {
			t.Fatalf("DequeueBlocking(%d): got none, want a node", i)
		}
		if node.Value != i {
			t.Fatalf("DequeueBlocking(%d): got %d, want %d", i, node.Value, i)
		}
	}
}

// TestQueueMPSCFIFO is scenario 5: N producers each enqueue M distinct
// values; a single consumer dequeues all of them, losing none, and each
// producer's own values come out in its own enqueue order.
func TestQueueMPSCFIFO(t *testing.T) {
	const numProducers = 8
	const itemsPerProducer = 2000
	const total = numProducers * itemsPerProducer

	q := wfqueue.NewQueue[int]()

	var wg sync.WaitGroup
	for p := range numProducers {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := range itemsPerProducer {
				q.Enqueue(wfqueue.NewNode(p*itemsPerProducer + i))
			}
		}(p)
	}

	seen := make([]int, total)
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	last := make([]int, numProducers)
	for p := range last {
		last[p] = -1
	}
	count := 0
	deadline := time.Now().Add(10 * time.Second)
	for count < total {
		node, ok := q.DequeueBlocking()
		if !ok {
			if time.Now().After(deadline) {
				t.Fatalf("timed out with %d/%d items consumed", count, total)
			}
			continue
		}
		p, i := node.Value/itemsPerProducer, node.Value%itemsPerProducer
		if i <= last[p] {
			t.Fatalf("producer %d: item %d dequeued after item %d", p, i, last[p])
		}
		last[p] = i
		seen[node.Value]++
		count++
	}
	<-done

	// Non-loss and uniqueness: every encoded value 0..total-1 dequeued
	// exactly once.
	for v, c := range seen {
		if c != 1 {
			t.Fatalf("value %d dequeued %d times, want 1", v, c)
		}
	}
}

// TestQueueFIFOPerProducer checks that within the interleaved MPSC stream,
// each producer's own items still come out in its own enqueue order.
func TestQueueFIFOPerProducer(t *testing.T) {
	const numProducers = 4
	const itemsPerProducer = 500

	q := wfqueue.NewQueue[string]()
	var wg sync.WaitGroup
	for p := range numProducers {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := range itemsPerProducer {
				q.Enqueue(wfqueue.NewNode(fmt.Sprintf("p%d-%04d", p, i)))
			}
		}(p)
	}

	byProducer := make(map[int][]string)
	total := numProducers * itemsPerProducer
	for range total {
		// DequeueBlocking reports (nil, false) whenever the queue is
		// observably empty, which can happen while producers are still
		// running; retry until a node arrives.
		node, ok := q.DequeueBlocking()
		for !ok {
			node, ok = q.DequeueBlocking()
		}
		var p, i int
		fmt.Sscanf(node.Value, "p%d-%04d", &p, &i)
		byProducer[p] = append(byProducer[p], node.Value)
	}
	wg.Wait()

	for p, seq := range byProducer {
		sorted := append([]string(nil), seq...)
		sort.Strings(sorted)
		for i := range seq {
			if seq[i] != sorted[i] {
				t.Fatalf("producer %d: item %d out of order: got %q, want %q", p, i, seq[i], sorted[i])
			}
		}
	}
}

// TestQueueConsumerPollsUntilDelayedProducerEnqueues exercises the usual
// consumer idiom — retry DequeueBlocking on (nil, false) — against a
// producer that enqueues only after a delay, so the consumer observes the
// empty state at least once before the item becomes available.
func TestQueueConsumerPollsUntilDelayedProducerEnqueues(t *testing.T) {
	q := wfqueue.NewQueue[int]()

	done := make(chan struct{})
	go func() {
		time.Sleep(20 * time.Millisecond)
		q.Enqueue(wfqueue.NewNode(2))
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for {
		if n, ok := q.DequeueBlocking(); ok {
			if n.Value != 2 {
				t.Fatalf("DequeueBlocking: got %d, want 2", n.Value)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for the delayed producer")
		}
		time.Sleep(time.Millisecond)
	}
	<-done
}
