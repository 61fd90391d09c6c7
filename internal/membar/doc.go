// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package membar provides the full-fence primitive the grace-period
// protocol needs at its fence points.
//
// store_shared/load_acquire and xchg are not wrapped here: callers use
// [code.hybscloud.com/atomix]'s StoreRelease/LoadAcquire methods directly
// on the counter words, and sync/atomic.Pointer's Store/Load/Swap directly
// on the published pointer slots.
package membar
