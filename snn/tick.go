// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

// Tick runs the seven fixed-order kernels for one simulated millisecond,
// per §2, and the second-boundary compaction pass every 1000 ticks (§4.8).
// A non-nil error means the tick is corrupt in its entirety (§7): Tick
// returns at the failing kernel without advancing SimTime/MS, and state
// changes made by the kernels that already ran are not undone; the caller
// should not advance SimTime/MS again without first handling the error.
func (s *SimState) Tick() error {
	if err := s.StpAndDecay(); err != nil {
		return err
	}
	// SPIKE_GEN is the host-side refresh of Poisson rates/spike-gen bits
	// and their transfer to device (§2 kernel 2); that refresh is an
	// external collaborator's responsibility per §1 ("Poisson rate
	// refresh plumbing (only the RNG contract is specified)") -- by the
	// time Tick runs, Group.Rate/SpikeGenBits already reflect this tick.
	if err := s.FindFiring(); err != nil {
		return err
	}
	s.UpdateTimeTable()
	if err := s.DeliverD2(); err != nil {
		return err
	}
	if err := s.DeliverD1(); err != nil {
		return err
	}
	if err := s.ConductanceUpdate(); err != nil {
		return err
	}
	if err := s.NeuronStateUpdate(); err != nil {
		return err
	}

	if s.Cfg.StdpScaleFactor > 0 && s.MS%s.Cfg.StdpScaleFactor == 0 {
		if err := s.UpdateWeights(); err != nil {
			return err
		}
	}

	s.SimTime++
	s.MS++
	if s.SimTime == 1000 {
		s.secondBoundary()
		s.SimTime = 0
	}
	return nil
}

// secondBoundary is §4.8: SHIFT_FIRING_TABLE + SHIFT_TIME_TABLE. D1 and D2
// both compact their carry-over window -- spikes recorded near the end of
// this second whose delivery delay extends into the next one -- to the
// front of their buffers; the carry-over formula is symmetric for D1 and D2
// (spec.md line 155).
func (s *SimState) secondBoundary() {
	md := s.Cfg.MaxDelay

	d1CarryStart := s.FiringD1.TimeTable[md] // occupancy at this second's start
	d1Total := s.FiringD1.Occupancy() - d1CarryStart
	s.SpikeCountD1 += int64(d1Total)

	d1Base := s.FiringD1.TimeTable[1000]
	d1Carry := s.FiringD1.TimeTable[1000+md] - d1Base
	copy(s.FiringD1.Spikes[0:d1Carry], s.FiringD1.Spikes[d1Base:d1Base+d1Carry])
	for i := int32(1); i <= md; i++ {
		s.FiringD1.TimeTable[i] = s.FiringD1.TimeTable[1000+i] - d1Base
	}
	s.FiringD1.ResetTail(d1Carry)
	s.SpikeCountD1Sec = d1Carry

	d2CarryStart := s.FiringD2.TimeTable[md] // occupancy at this second's start
	d2Total := s.FiringD2.Occupancy() - d2CarryStart
	s.SpikeCountD2 += int64(d2Total)

	d2Base := s.FiringD2.TimeTable[1000]
	d2Carry := s.FiringD2.TimeTable[1000+md] - d2Base
	copy(s.FiringD2.Spikes[0:d2Carry], s.FiringD2.Spikes[d2Base:d2Base+d2Carry])
	for i := int32(1); i <= md; i++ {
		s.FiringD2.TimeTable[i] = s.FiringD2.TimeTable[1000+i] - d2Base
	}
	s.FiringD2.ResetTail(d2Carry)
	s.SpikeCountD2Sec = d2Carry
}
