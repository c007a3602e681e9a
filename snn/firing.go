// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import "sync/atomic"

// FiringTable is the compact spike log for one delay class (D1 or D2): a
// flat array of neuron ids plus a millisecond index table, as described
// in §3. Spikes[timeTable[ms+MaxDelay]:timeTable[ms+MaxDelay+1]] are the
// ids that fired during tick ms of the current second.
type FiringTable struct {
	Spikes    []int32
	TimeTable []int32

	tail      int32 // atomic: next free slot in Spikes
	MaxSpikes int32
	MaxDelay  int32
}

// NewFiringTable allocates a firing table sized for maxSpikes total
// occupancy and a MaxDelay-long carry-over window.
func NewFiringTable(maxSpikes, maxDelay int32) *FiringTable {
	return &FiringTable{
		Spikes:    make([]int32, maxSpikes),
		TimeTable: make([]int32, 1000+maxDelay+2),
		MaxSpikes: maxSpikes,
		MaxDelay:  maxDelay,
	}
}

// Reserve atomically reserves n consecutive slots in Spikes, returning the
// start index. If the reservation would exceed MaxSpikes it is rolled
// back and ok is false -- the caller reports a capacity overflow.
func (ft *FiringTable) Reserve(n int32) (start int32, ok bool) {
	newTail := atomic.AddInt32(&ft.tail, n)
	start = newTail - n
	if newTail > ft.MaxSpikes {
		atomic.AddInt32(&ft.tail, -n)
		return 0, false
	}
	return start, true
}

// Occupancy returns the number of spikes currently reserved.
func (ft *FiringTable) Occupancy() int32 { return atomic.LoadInt32(&ft.tail) }

// ResetTail sets the occupancy counter directly, used by second-boundary
// compaction to re-seat the tail after copying carry-over spikes forward.
func (ft *FiringTable) ResetTail(v int32) { atomic.StoreInt32(&ft.tail, v) }
