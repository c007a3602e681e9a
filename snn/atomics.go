// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// atomicAddFloat32 atomically adds delta to *addr via a CAS loop, used for
// dopamine-concentration increments (§4.3: "dopamine uses atomic-add").
// Go has no native atomic float32 add, so this bit-reinterprets through
// atomic.CompareAndSwapUint32 the same way sync/atomic itself recommends
// for types it doesn't support natively.
func atomicAddFloat32(addr *float32, delta float32) {
	bits := (*uint32)(unsafe.Pointer(addr))
	for {
		old := atomic.LoadUint32(bits)
		newF := math.Float32frombits(old) + delta
		if atomic.CompareAndSwapUint32(bits, old, math.Float32bits(newF)) {
			return
		}
	}
}
