// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rcu

import (
	"code.hybscloud.com/spin"

	"code.hybscloud.com/rcu/internal/membar"
)

// Synchronize blocks until every read-side critical section that was
// already under way when it was called has completed at least once. It
// flips the domain's grace-period parity twice: because a reader only
// snapshots the counter's parity at the outermost Lock, a single flip
// cannot distinguish "entered before the flip" from "entered during the
// flip's propagation", so the writer flips twice and drains readers
// against each parity in turn.
//
// Synchronize takes the domain's mutex for its entire duration, excluding
// concurrent writers and registry mutation. It must not be called from
// inside a read-side critical section.
func (d *Domain) Synchronize() {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Order any publication the caller issued before this call ahead of
	// the parity flip becoming observable.
	membar.Full()

	d.flipParity()
	membar.Full() // advisory: makes the protocol's ordering easier to reason about

	d.waitForQuiescence()

	membar.Full()
	d.flipParity()
	membar.Full()

	d.waitForQuiescence()

	// No speculative access to data this call is about to let the caller
	// reclaim may leak past the grace period boundary.
	membar.Full()
}

// flipParity toggles the domain's grace-period parity bit. Callers must
// hold d.mu.
func (d *Domain) flipParity() {
	d.gpCtr.StoreRelease(d.gpCtr.LoadAcquire() ^ gpPhaseBit)
}

// waitForQuiescence busy-waits, with CPU-relax backoff, until every
// registered reader has either left its critical section (activeDepth ==
// 0) or re-entered under the domain's current parity. Callers must hold
// d.mu, which is what makes it safe to range over d.registry directly:
// nothing else can append to or remove from it while the lock is held.
func (d *Domain) waitForQuiescence() {
	parity := d.gpCtr.LoadAcquire()
	for _, h := range d.registry {
		sw := spin.Wait{}
		for oldGracePeriodOngoing(h.activeDepth.LoadAcquire(), parity) {
			sw.Once()
		}
	}
}

// oldGracePeriodOngoing reports whether a reader snapshot depth is still
// inside a critical section that began under the grace period parity that
// gp_ctr no longer holds.
func oldGracePeriodOngoing(depth, gpCtr uint64) bool {
	return depth != 0 && (depth^gpCtr)&gpPhaseBit != 0
}
