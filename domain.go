// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rcu

import (
	"sync"

	"code.hybscloud.com/atomix"
)

// gpCount is the nesting constant: the amount added to a reader's
// activeDepth word on each nested Lock and subtracted on each Unlock.
const gpCount = 1

// gpPhaseBit is the parity bit of the grace period counter. The bits below
// it hold the nesting depth, which must never overflow into the parity
// bit — this module supports up to gpPhaseBit-1 levels of nesting per
// reader, far beyond any realistic call depth.
const gpPhaseBit = 1 << 8

// initRegistryCap is the registry's initial capacity, matching the
// INIT_NUM_THREADS constant the underlying algorithm uses to size its
// reader table before the first growth.
const initRegistryCap = 4

// Domain is a process-wide (or, for tests, independently scoped) RCU
// instance: a grace-period counter, a mutex excluding writers from each
// other and from registry mutation, and the registry of currently
// registered readers.
//
// The zero value is not ready for use; construct one with [NewDomain], or
// use the shared instance returned by [Default].
type Domain struct {
	_        pad
	gpCtr    atomix.Uint64
	_        pad
	mu       sync.Mutex
	registry []*ReadHandle
}

// NewDomain creates an independent RCU domain with an empty reader
// registry and the grace period counter at its initial parity.
func NewDomain() *Domain {
	d := &Domain{
		registry: make([]*ReadHandle, 0, initRegistryCap),
	}
	d.gpCtr.StoreRelaxed(gpCount)
	return d
}

var defaultDomain = NewDomain()

// Default returns the process-wide RCU domain. Most programs register
// their readers against this domain rather than creating their own.
func Default() *Domain {
	return defaultDomain
}

// Register admits the calling goroutine as an RCU reader and returns a
// handle it must use for every subsequent [ReadHandle.Lock],
// [ReadHandle.Unlock], and the eventual [ReadHandle.Unregister]. The
// handle must not be shared with, or used from, any other goroutine.
func (d *Domain) Register() *ReadHandle {
	h := &ReadHandle{domain: d}

	d.mu.Lock()
	d.registry = append(d.registry, h)
	d.mu.Unlock()

	return h
}

// unregister removes h from the registry. It panics if h is not currently
// registered in d, or if h is still inside a read-side critical section:
// both are programmer contract violations, not recoverable conditions.
func (d *Domain) unregister(h *ReadHandle) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if h.activeDepth.LoadRelaxed() != 0 {
		panic("rcu: unregister called while the reader is still inside a critical section")
	}

	for i, r := range d.registry {
		if r == h {
			last := len(d.registry) - 1
			d.registry[i] = d.registry[last]
			d.registry[last] = nil
			d.registry = d.registry[:last]
			return
		}
	}
	panic("rcu: unregister called for a reader that is not registered")
}
