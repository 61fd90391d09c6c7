// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rcu

// pad is cache line padding to prevent false sharing between the grace
// period counter and the domain's other fields.
type pad [64]byte
