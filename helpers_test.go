// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rcu_test

import (
	"testing"
	"time"

	"code.hybscloud.com/iox"
)

// retryWithTimeout retries f until it returns true or timeout expires.
// Reports failure with the given message if the timeout is reached.
func retryWithTimeout(t *testing.T, timeout time.Duration, f func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	backoff := iox.Backoff{}
	for !f() {
		if time.Now().After(deadline) {
			t.Fatalf("timeout after %v: %s", timeout, msg)
		}
		backoff.Wait()
	}
}

// neverWithin asserts f never returns true for the given duration, polling
// with backoff. Used to check that a blocking call has not returned yet.
func neverWithin(t *testing.T, window time.Duration, f func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(window)
	backoff := iox.Backoff{}
	for time.Now().Before(deadline) {
		if f() {
			t.Fatalf("%s: condition became true before the window elapsed", msg)
		}
		backoff.Wait()
	}
}
