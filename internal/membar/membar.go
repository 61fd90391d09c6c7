// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membar

import "code.hybscloud.com/atomix"

// sink absorbs the throwaway round trip Full uses to realize a fence.
var sink atomix.Uint64

// Full issues a full memory fence.
//
// The Go toolchain exposes no standalone hardware fence intrinsic, and none
// of the targets it supports require one beyond what a sequentially
// consistent atomic round trip already provides. Full performs exactly
// that round trip on a throwaway word, which is enough to order every
// store issued before the call against every load issued after it on every
// architecture code.hybscloud.com/atomix runs on.
func Full() {
	sink.AddAcqRel(1)
}
