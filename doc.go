// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rcu provides userspace read-copy-update synchronization.
//
// RCU lets many reader goroutines traverse a shared pointer-based
// structure with wait-free, non-blocking reads, while a writer publishes
// updates and waits for every reader that started before the update to
// leave its read-side critical section before reclaiming the memory the
// update replaced.
//
// # Quick Start
//
//	d := rcu.Default()
//	h := d.Register()
//	defer h.Unregister()
//
//	var slot atomic.Pointer[Config]
//	slot.Store(initialConfig)
//
//	// Reader
//	h.Lock()
//	cfg := rcu.Dereference(&slot)
//	use(cfg)
//	h.Unlock()
//
//	// Writer
//	old := rcu.PublishContent(d, &slot, newConfig)
//	// old is now safe to reclaim: every reader that observed it has
//	// exited its critical section at least once.
//
// # Reader Registration
//
// Go has no goroutine-local storage, so registration returns an explicit
// handle instead of installing hidden thread-local state. A goroutine
// calls [Domain.Register] once, keeps the returned [*ReadHandle], and uses
// it for every [ReadHandle.Lock]/[ReadHandle.Unlock] pair until it calls
// [ReadHandle.Unregister]. Sharing a handle across goroutines, or calling
// Lock/Unlock from a goroutine other than the one that registered it, is
// undefined behavior: the handle's nesting depth is not synchronized
// across goroutines.
//
// # Publication
//
//	rcu.AssignPointer(&slot, freshlyConstructed)       // no prior value to reclaim
//	old := rcu.XchgPointer(&slot, replacement)          // caller reclaims old after a grace period
//	old := rcu.PublishContent(d, &slot, replacement)    // xchg + synchronize, old is reclaimable now
//
// # Grace Periods
//
// [Domain.Synchronize] returns only after every read-side critical section
// that was already in progress when it was called has completed at least
// once. It may block for a while and takes the domain's internal mutex;
// never call it from inside a read-side critical section.
//
// # Domains
//
// Most programs use the process-wide default domain via [Default]. Tests
// and libraries that want isolation from other RCU users in the same
// process can construct their own with [NewDomain].
package rcu
