// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

// StpAndDecay is kernel 1 of the tick, §4.7: decays COBA conductance state
// for every regular neuron, and advances the STP ring buffer one step for
// every neuron in an STP-enabled group. Firing-triggered STP augmentation
// happens later, in FindFiring.
func (s *SimState) StpAndDecay() error {
	return s.Workers.Run("StpAndDecay", func(tid int, chunks []Chunk) error {
		for _, c := range chunks {
			g := &s.Groups[c.GroupId]
			for n := c.StartN; n < c.StartN+c.Size; n++ {
				if s.Cfg.SimWithConductances && !g.IsPoisson() {
					s.Cfg.Decay.Decay(&s.Neurons[n].Channels, s.Cfg.SimWithNMDARise, s.Cfg.SimWithGABAbRise)
				}
				if s.Cfg.SimWithSTP && g.WithSTP {
					uMinus := s.STP.Ut(s.SimTime-1, n)
					xMinus := s.STP.Xt(s.SimTime-1, n)
					u, x := g.STP.Decay(uMinus, xMinus)
					s.STP.SetU(s.SimTime, n, u)
					s.STP.SetX(s.SimTime, n, x)
				}
			}
		}
		return nil
	})
}

