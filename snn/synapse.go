// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

// Synapse holds the per-connection mutable state: the signed weight (sign
// encodes excitatory/inhibitory), its accumulated change, its sign-matched
// saturation bound, and the tick of its last spike arrival.
type Synapse struct {
	Wt           float32
	WtChange     float32
	MaxSynWt     float32
	SynSpikeTime int32
}

// IsExcitatory reports whether this synapse's saturation bound marks it
// excitatory (positive) rather than inhibitory (negative).
func (s *Synapse) IsExcitatory() bool { return s.MaxSynWt > 0 }

// Clip clamps Wt to [0, MaxSynWt] for excitatory synapses or
// [MaxSynWt, 0] for inhibitory ones, per §4.9.
func (s *Synapse) Clip() {
	if s.IsExcitatory() {
		if s.Wt < 0 {
			s.Wt = 0
		} else if s.Wt > s.MaxSynWt {
			s.Wt = s.MaxSynWt
		}
		return
	}
	if s.Wt > 0 {
		s.Wt = 0
	} else if s.Wt < s.MaxSynWt {
		s.Wt = s.MaxSynWt
	}
}
