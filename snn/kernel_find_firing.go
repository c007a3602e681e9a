// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import "sync/atomic"

// PoissonMaxRange is MAX_RANGE from §4.2's rate-pointer contract: the
// exclusive upper bound of the uniform draw r. The spec leaves the exact
// value an implementation detail of the RNG; 1<<16 gives ample resolution
// for rates expressed in spikes/sec up to 1000.
const PoissonMaxRange int32 = 1 << 16

// fireChunkCnt mirrors FIRE_CHUNK_CNT from §4.2: the reference flushes a
// shared per-block buffer at this size. Since a goroutine-per-thread
// Workers pool has no shared-memory buffer to size, this implementation
// reserves firing-table space per fired neuron directly; the constant is
// kept only as a documented link back to the spec's batching detail.
const fireChunkCnt = 512

// FindFiring is kernel 3 of the tick, §4.2: detects which neurons fire
// this tick, appends them to the D1/D2 firing tables, resets Izhikevich
// state on fire, advances STP on fire, and performs LTP for each fired
// post-neuron's plastic incoming synapses.
func (s *SimState) FindFiring() error {
	return s.Workers.Run("FindFiring", func(tid int, chunks []Chunk) error {
		for _, c := range chunks {
			g := &s.Groups[c.GroupId]
			for n := c.StartN; n < c.StartN+c.Size; n++ {
				if !s.neuronFires(g, n) {
					continue
				}
				if err := s.recordFiring(g, n); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *SimState) neuronFires(g *Group, n int32) bool {
	if g.IsPoisson() {
		local := n - g.StartN
		switch g.SpikeGen {
		case SpikeGenUserBits:
			bit := local + g.Noffset
			word := bit / 64
			if int(word) >= len(g.SpikeGenBits) {
				return false
			}
			return g.SpikeGenBits[word]&(1<<uint(bit%64)) != 0
		case SpikeGenRate:
			if int(local) >= len(g.Rate) {
				return false
			}
			return s.poissonRateFires(g.Rate[local], PoissonMaxRange)
		default:
			return false
		}
	}
	return s.Neurons[n].Voltage >= 30
}

// recordFiring reserves a firing-table slot for n, applies the Izhikevich
// reset and STP augmentation if applicable, and runs LTP for n's
// plastic incoming synapses.
func (s *SimState) recordFiring(g *Group, n int32) error {
	table, code, secCount := s.FiringD2, ErrFireUpdateOverflowD2, &s.SpikeCountD2Sec
	if g.MaxDelay == 1 {
		table, code, secCount = s.FiringD1, ErrFireUpdateOverflowD1, &s.SpikeCountD1Sec
	}
	start, ok := table.Reserve(1)
	if !ok {
		return &TickError{Code: code, Kernel: "FIND_FIRING", SimTime: s.SimTime}
	}
	table.Spikes[start] = n
	atomic.AddInt32(secCount, 1)

	s.Neurons[n].NSpikeCnt++

	if !g.IsPoisson() {
		nrn := &s.Neurons[n]
		nrn.Voltage = s.NPars.IzhC[n]
		nrn.Recovery += s.NPars.IzhD[n]
		if g.WithSTDP {
			nrn.LastSpikeTime = s.SimTime
		}
		if g.WithHomeostasis && s.Cfg.SimWithHomeostasis {
			nrn.AvgFiring++
		}
		if g.WithSTP && s.Cfg.SimWithSTP {
			uMinus := s.STP.Ut(s.SimTime-1, n)
			xMinus := s.STP.Xt(s.SimTime-1, n)
			uPlusDecayed := s.STP.Ut(s.SimTime, n)
			xPlusDecayed := s.STP.Xt(s.SimTime, n)
			u, x := g.STP.Augment(uMinus, xMinus, uPlusDecayed, xPlusDecayed)
			s.STP.SetU(s.SimTime, n, u)
			s.STP.SetX(s.SimTime, n, x)
		}
	}

	if s.Cfg.SimWithSTDP && !s.Cfg.SimInTesting {
		s.applyLTP(g, n)
	}
	return nil
}

// applyLTP implements the LTP half of §4.2: for fired post-neuron n, every
// plastic incoming synapse whose last arrival is no later than now gets an
// STDP increment keyed on dt = simTime - synSpikeTime.
func (s *SimState) applyLTP(postGrp *Group, post int32) {
	start := s.Conn.CumulativePre[post]
	end := start + s.Conn.Npre[post]
	for idx := start; idx < end; idx++ {
		syn := &s.Synapses[idx]
		if syn.SynSpikeTime > s.SimTime {
			continue
		}
		dt := float32(s.SimTime - syn.SynSpikeTime)
		if syn.IsExcitatory() {
			if postGrp.WithESTDP {
				syn.WtChange += postGrp.ESTDP.Delta(dt, true)
			}
		} else {
			if postGrp.WithISTDP {
				syn.WtChange += postGrp.ISTDP.Delta(dt, true)
			}
		}
	}
}
