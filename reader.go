// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rcu

import (
	"code.hybscloud.com/atomix"

	"code.hybscloud.com/rcu/internal/membar"
)

// ReadHandle is a registered reader's per-goroutine state: a nesting
// count in the low bits of activeDepth, with the grace-period parity
// bit the reader observed on its outermost Lock sitting above it. It
// is heap-allocated once at [Domain.Register] time —
// there is no address-stable goroutine-local storage in Go to hold it
// implicitly, so the handle itself is the "thread-local" state, and the
// caller is responsible for keeping it with the goroutine that owns it.
type ReadHandle struct {
	_           pad
	activeDepth atomix.Uint64
	domain      *Domain
}

// Lock enters a read-side critical section. On the outermost call it
// snapshots the domain's current grace-period parity into activeDepth; on
// a nested call it only bumps the nesting depth, leaving the snapshot
// untouched. Either way it then issues a full fence, so the activeDepth
// store is ordered before every load of protected data that follows.
//
// Lock is wait-free, never blocks, and never allocates. It performs no
// validation: calling it on an unregistered or unregistering handle is
// undefined behavior.
func (h *ReadHandle) Lock() {
	depth := h.activeDepth.LoadRelaxed()
	if depth == 0 {
		h.activeDepth.StoreRelease(h.domain.gpCtr.LoadAcquire())
		membar.Full()
		return
	}
	h.activeDepth.StoreRelease(depth + gpCount)
	membar.Full()
}

// Unlock leaves one level of a read-side critical section. At depth zero
// after the decrement, the reader has left the critical section entirely
// and activeDepth is reset to zero, clearing the parity snapshot.
//
// Unlock is wait-free and never blocks. Calling it without a matching
// prior Lock is undefined behavior.
func (h *ReadHandle) Unlock() {
	depth := h.activeDepth.LoadRelaxed() - gpCount
	if depth&(gpPhaseBit-1) == 0 {
		depth = 0
	}
	h.activeDepth.StoreRelease(depth)
}

// Unregister removes the reader from its domain. The handle must be at
// nesting depth zero — i.e. not inside any Lock/Unlock pair — when this is
// called; violating that, or unregistering a handle twice, panics.
func (h *ReadHandle) Unregister() {
	h.domain.unregister(h)
}
