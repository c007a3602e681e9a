// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

// DeliverD1 is kernel 5a, the unit-delay path of §4.3: every neuron that
// fired on tick simTime-1 delivers to its delay-1 targets this tick.
func (s *SimState) DeliverD1() error {
	spikes := spikesAtTick(s.FiringD1, s.Cfg.MaxDelay, s.SimTime-1)
	return s.deliverSpikes(spikes, 1)
}

// DeliverD2 is kernel 5b, the multi-delay path of §4.3: for every active
// delay d, neurons that fired on tick simTime-d deliver to their delay-d
// targets this tick.
func (s *SimState) DeliverD2() error {
	for d := int32(1); d <= s.Cfg.MaxDelay; d++ {
		spikes := spikesAtTick(s.FiringD2, s.Cfg.MaxDelay, s.SimTime-d)
		if err := s.deliverSpikes(spikes, d); err != nil {
			return err
		}
	}
	return nil
}

// deliverSpikes fans each pre-neuron id in spikes out to its delay-d
// targets. This is parallelized by splitting the spike slice across the
// Workers pool rather than by neuron chunk, since delivery work is
// per-spike, not per-resident-neuron.
func (s *SimState) deliverSpikes(spikes []int32, delay int32) error {
	if len(spikes) == 0 {
		return nil
	}
	n := s.Workers.NThreadsUsed()
	return s.Workers.Run("Deliver", func(tid int, _ []Chunk) error {
		for i := tid; i < len(spikes); i += n {
			pre := spikes[i]
			if err := s.deliverOne(pre, delay); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SimState) deliverOne(pre, delay int32) error {
	preGrp := &s.Groups[s.Conn.GrpIds[pre]]
	targets := s.Conn.PostDelay(pre, delay)
	for _, tgt := range targets {
		post := tgt.Post
		slot := tgt.Slot

		if preGrp.Type.Has(TypeTargetDA) {
			postGrp := s.GroupOf(post)
			if postGrp == nil {
				return &TickError{Code: ErrCurrentUpdateGroupUnknown, Kernel: "CURRENT_UPDATE", SimTime: s.SimTime}
			}
			atomicAddFloat32(&postGrp.GrpDA, 0.04)
		}

		s.ISet.SetBit(post, slot)

		synIdx := s.Conn.SynIndex(post, slot)
		syn := &s.Synapses[synIdx]
		syn.SynSpikeTime = s.SimTime - delay // pre-neuron's original firing tick

		postGrp := s.GroupOf(post)
		if postGrp == nil {
			return &TickError{Code: ErrCurrentUpdateGroupUnknown, Kernel: "CURRENT_UPDATE", SimTime: s.SimTime}
		}
		if s.Cfg.SimWithSTDP && postGrp.WithSTDP && !s.Cfg.SimInTesting {
			dt := float32(s.SimTime - s.Neurons[post].LastSpikeTime)
			if dt >= 0 {
				if syn.IsExcitatory() {
					if postGrp.WithESTDP {
						syn.WtChange += postGrp.ESTDP.Delta(dt, false)
					}
				} else {
					if postGrp.WithISTDP {
						syn.WtChange += postGrp.ISTDP.Delta(dt, false)
					}
				}
			}
		}
	}
	return nil
}
