// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package rcu

// RaceEnabled is true when the race detector is active.
// It lets tests skip linearizability checks whose correctness depends on
// acquire/release orderings the race detector cannot observe across
// independently-addressed atomic words; no test in this module reads it.
const RaceEnabled = true
