// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"github.com/emer/snncore/izhik"
	"github.com/emer/snncore/stdp"
)

// NeuronStateUpdate is kernel 7 of the tick, §4.5-4.6: integrates
// membrane voltage and recovery for every regular neuron (Izhikevich
// sub-stepping via izhik.Params), then runs GROUP_STATE_UPDATE's
// dopamine decay and logging once per group.
func (s *SimState) NeuronStateUpdate() error {
	err := s.Workers.Run("NeuronStateUpdate", func(tid int, chunks []Chunk) error {
		for _, c := range chunks {
			g := &s.Groups[c.GroupId]
			if g.IsPoisson() {
				continue
			}
			for n := c.StartN; n < c.StartN+c.Size; n++ {
				s.integrateOne(g, n)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.groupStateUpdate()
	return nil
}

func (s *SimState) integrateOne(g *Group, n int32) {
	nrn := &s.Neurons[n]
	v, u := nrn.Voltage, nrn.Recovery

	var curFn func(v float32) float32
	var lastCur float32
	if s.Cfg.SimWithConductances {
		// AMPA/GABAa/GABAb conductances and the NMDA gating fraction all
		// depend on v, so cur must be recomputed from each sub-step's
		// evolving voltage rather than fixed at the tick's starting v (§4.5).
		gN := s.Cfg.Decay.NMDA(&nrn.Channels, s.Cfg.SimWithNMDARise)
		gGb := s.Cfg.Decay.GABAb(&nrn.Channels, s.Cfg.SimWithGABAbRise)
		curFn = func(v float32) float32 {
			nmdaTmp := izhik.NMDAFraction(v)
			lastCur = -(nrn.AMPA*v + gN*nmdaTmp*v + nrn.GABAa*(v+70) + gGb*(v+90))
			return lastCur + nrn.ExtCurrent
		}
	} else {
		lastCur = nrn.Current
		curFn = func(float32) float32 { return lastCur + nrn.ExtCurrent }
	}

	nv, nu, spiked := s.Izh.Integrate(v, u, curFn, s.NPars.IzhA[n], s.NPars.IzhB[n])
	nrn.Voltage = nv
	nrn.Recovery = nu
	_ = spiked // threshold crossing is detected independently in FindFiring via Voltage>=30

	if s.Cfg.SimWithConductances {
		nrn.Current = lastCur
	} else {
		nrn.Current = 0
	}

	if g.WithHomeostasis && s.Cfg.SimWithHomeostasis {
		nrn.AvgFiring *= g.Homeo.AvgTimeScaleDecay
	}
}

// groupStateUpdate is §4.6: dopamine-concentration decay for every
// DA-modulated group, and logging of every group's concentration.
func (s *SimState) groupStateUpdate() {
	slot := s.SimTime % 1000
	if slot < 0 {
		slot += 1000
	}
	for i := range s.Groups {
		g := &s.Groups[i]
		if g.ESTDPType == stdp.DAMod || g.ISTDPType == stdp.DAMod {
			if g.GrpDA > g.BaseDP {
				g.GrpDA *= g.DecayDP
			}
		}
		g.DALog[slot] = g.GrpDA
	}
}
