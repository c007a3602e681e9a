// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"github.com/chewxy/math32"
	"github.com/emer/snncore/stdp"
)

// UpdateWeights is §4.9, run every Cfg.StdpScaleFactor ticks: applies each
// plastic synapse's accumulated wtChange to its weight, optionally scaled
// by homeostasis and dopamine modulation, then clips to the sign-matched
// saturation bound.
func (s *SimState) UpdateWeights() error {
	return s.Workers.Run("UpdateWeights", func(tid int, chunks []Chunk) error {
		for _, c := range chunks {
			g := &s.Groups[c.GroupId]
			if g.IsPoisson() || g.FixedInputWts {
				continue
			}
			for post := c.StartN; post < c.StartN+c.Size; post++ {
				s.updateWeightsFor(g, post)
			}
		}
		return nil
	})
}

func (s *SimState) updateWeightsFor(g *Group, post int32) {
	nrn := &s.Neurons[post]
	start := s.Conn.CumulativePre[post]
	end := start + s.Conn.Npre[post]
	for idx := start; idx < end; idx++ {
		syn := &s.Synapses[idx]
		eff := float32(s.Cfg.StdpScaleFactor) * syn.WtChange

		daMod := false
		if syn.IsExcitatory() {
			daMod = g.ESTDPType == stdp.DAMod
		} else {
			daMod = g.ISTDPType == stdp.DAMod
		}
		if daMod {
			eff *= g.GrpDA
		}

		var delta float32
		if g.WithHomeostasis && s.Cfg.SimWithHomeostasis {
			baseFiring := s.NPars.BaseFiring[post]
			diff := float32(1)
			if baseFiring != 0 {
				diff = 1 - nrn.AvgFiring/baseFiring
			}
			factor := baseFiring * g.Homeo.AvgTimeScaleInv / (1 + 50*math32.Abs(diff))
			delta = (diff*syn.Wt*g.Homeo.Scale + eff) * factor
		} else {
			delta = eff
		}

		syn.Wt += delta
		syn.WtChange *= s.Cfg.WtChangeDecay
		syn.Clip()
	}
}
