// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rcu

import (
	"sync/atomic"

	"code.hybscloud.com/rcu/internal/membar"
)

// Dereference acquire-loads an RCU-protected pointer slot. Call it only
// from inside a read-side critical section; the returned pointer is valid
// to read for the remainder of that critical section.
func Dereference[T any](slot *atomic.Pointer[T]) *T {
	return slot.Load()
}

// AssignPointer publishes a freshly constructed value into slot. Use it
// when there is no prior value the caller needs to reclaim — publishing a
// value into a slot that previously held nothing, or that this goroutine
// already owns exclusively.
//
// AssignPointer orders every store the caller issued while constructing v
// ahead of the value becoming visible through slot.
func AssignPointer[T any](slot *atomic.Pointer[T], v *T) {
	membar.Full()
	slot.Store(v)
}

// XchgPointer atomically replaces slot's value with v and returns the
// value it held before. The caller owns the returned value and may
// reclaim it once a grace period has elapsed — typically by passing it
// through [Domain.Synchronize] or by using [PublishContent] instead.
func XchgPointer[T any](slot *atomic.Pointer[T], v *T) *T {
	membar.Full()
	return slot.Swap(v)
}

// PublishContent replaces slot's value with v and waits for a grace
// period to elapse before returning. The returned previous value is safe
// to reclaim immediately: every reader that could have observed it has
// exited its critical section at least once.
func PublishContent[T any](d *Domain, slot *atomic.Pointer[T], v *T) *T {
	old := XchgPointer(slot, v)
	d.Synchronize()
	return old
}
