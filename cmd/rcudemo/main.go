// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command rcudemo exercises [code.hybscloud.com/rcu] end to end: a writer
// periodically publishes a new configuration, readers traverse the
// current one, and replaced configurations flow through
// [code.hybscloud.com/rcu/wfqueue] to a reclaimer goroutine that waits out
// a grace period before dropping them.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/rcu"
	"code.hybscloud.com/rcu/wfqueue"
)

// config is the RCU-protected payload. Real callers protect arbitrary
// pointer-based structures; this one is deliberately small.
type config struct {
	generation int
	replicas   int
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	domain := rcu.NewDomain()
	var slot atomic.Pointer[config]
	slot.Store(&config{generation: 0, replicas: 1})

	reclaim := wfqueue.NewQueue[*config]()

	const numReaders = 4
	for i := range numReaders {
		go runReader(ctx, log, domain, &slot, i)
	}
	go runReclaimer(ctx, log, domain, reclaim)

	runWriter(ctx, log, domain, &slot, reclaim)
}

func runReader(ctx context.Context, log *slog.Logger, domain *rcu.Domain, slot *atomic.Pointer[config], id int) {
	h := domain.Register()
	defer h.Unregister()

	backoff := iox.Backoff{}
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		h.Lock()
		cfg := rcu.Dereference(slot)
		_ = cfg.replicas // stand-in for real traversal work
		h.Unlock()

		backoff.Wait()
	}
}

func runWriter(ctx context.Context, log *slog.Logger, domain *rcu.Domain, slot *atomic.Pointer[config], reclaim *wfqueue.Queue[*config]) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	generation := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		generation++
		next := &config{generation: generation, replicas: 1 + generation%3}
		old := rcu.XchgPointer(slot, next)
		reclaim.Enqueue(wfqueue.NewNode(old))
		log.Info("published configuration", "generation", generation, "replicas", next.replicas)
	}
}

// runReclaimer is the demo's stand-in for a call_rcu scheduler: it is not
// part of the rcu package (the real call_rcu machinery is explicitly out
// of scope for this module), just an example of how a caller would drain
// [wfqueue.Queue] behind a grace period.
func runReclaimer(ctx context.Context, log *slog.Logger, domain *rcu.Domain, reclaim *wfqueue.Queue[*config]) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		// Take the batch first, then wait out a grace period that starts
		// after every config in it was replaced.
		var pending []*config
		for {
			n, ok := reclaim.DequeueBlocking()
			if !ok {
				break
			}
			pending = append(pending, n.Value)
		}
		if len(pending) == 0 {
			continue
		}
		domain.Synchronize()
		// nothing to free explicitly; the GC reclaims pending once it is dropped
		log.Info("reclaimed configurations", "count", len(pending))
	}
}
