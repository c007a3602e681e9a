// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

// UpdateTimeTable is kernel 4 of the tick, §3/§8: records the current
// occupancy of each firing table into its index table at slot
// simTime+MaxDelay+1, so that timeTableX[ms+MaxDelay+1]-timeTableX[ms+MaxDelay]
// gives the spike count for tick ms, and delivery can slice a firing table
// by millisecond.
func (s *SimState) UpdateTimeTable() {
	idx := s.SimTime + s.Cfg.MaxDelay + 1
	s.FiringD1.TimeTable[idx] = s.FiringD1.Occupancy()
	s.FiringD2.TimeTable[idx] = s.FiringD2.Occupancy()
}

// spikesAtTick returns the slice of a firing table's Spikes recorded
// during tick ms, per the timeTable convention above.
func spikesAtTick(table *FiringTable, maxDelay, ms int32) []int32 {
	lo := ms + maxDelay
	hi := ms + maxDelay + 1
	if lo < 0 || hi < 0 || int(hi) >= len(table.TimeTable) {
		return nil
	}
	return table.Spikes[table.TimeTable[lo]:table.TimeTable[hi]]
}
