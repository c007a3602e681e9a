// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

// stpDelayCompensation is tD from §4.4's STP scaling formula. The
// reference leaves per-synapse delay compensation as an implementer
// degree of freedom and itself uses 0; preserved verbatim per §9(i) --
// flagged here for review rather than silently "fixed".
const stpDelayCompensation = 0

// ConductanceUpdate is kernel 6 of the tick, §4.4: every regular
// post-neuron scans its incoming-spike bit rows, accumulates conductance
// (COBA) or current (CUBA) contributions scaled by STP if enabled, and
// clears each row after consuming it.
func (s *SimState) ConductanceUpdate() error {
	return s.Workers.Run("ConductanceUpdate", func(tid int, chunks []Chunk) error {
		for _, c := range chunks {
			g := &s.Groups[c.GroupId]
			if g.IsPoisson() {
				continue
			}
			for post := c.StartN; post < c.StartN+c.Size; post++ {
				if err := s.conductanceUpdateOne(post); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *SimState) conductanceUpdateOne(post int32) error {
	nrn := &s.Neurons[post]
	for row := int32(0); row < s.ISet.Rows(); row++ {
		w := s.ISet.Row(row, post)
		if w == 0 {
			continue
		}
		var err error
		ScanSetBits(w, func(bit int) {
			if err != nil {
				return
			}
			slot := row*32 + int32(bit)
			err = s.accumulateOne(nrn, post, slot)
		})
		if err != nil {
			return err
		}
		s.ISet.ClearRow(row, post)
	}
	return nil
}

func (s *SimState) accumulateOne(nrn *Neuron, post, slot int32) error {
	synIdx := s.Conn.SynIndex(post, slot)
	pre := s.Conn.PreSynapticIds[synIdx]
	preGrpId := s.Conn.GrpIds[pre]
	if int(preGrpId) < 0 || int(preGrpId) >= len(s.Groups) {
		return &TickError{Code: ErrCurrentUpdateGroupUnknown, Kernel: "CONDUCTANCE_UPDATE", SimTime: s.SimTime}
	}
	preGrp := &s.Groups[preGrpId]

	wSyn := s.Synapses[synIdx].Wt
	if s.Cfg.SimWithSTP && preGrp.WithSTP {
		minus := s.SimTime - 1 - stpDelayCompensation
		plus := s.SimTime - stpDelayCompensation
		wSyn *= preGrp.STP.Weight(s.STP.Ut(plus, pre), s.STP.Xt(minus, pre))
	}

	connId := s.Conn.ConnIdsPreIdx[synIdx]
	mulFast := float32(1)
	mulSlow := float32(1)
	if int(connId) < len(s.Conn.MulSynFast) {
		mulFast = s.Conn.MulSynFast[connId]
	}
	if int(connId) < len(s.Conn.MulSynSlow) {
		mulSlow = s.Conn.MulSynSlow[connId]
	}

	if !s.Cfg.SimWithConductances {
		nrn.Current += wSyn
		return nil
	}
	if preGrp.Type.Has(TypeTargetAMPA) {
		nrn.AMPA += wSyn * mulFast
	}
	if preGrp.Type.Has(TypeTargetNMDA) {
		if s.Cfg.SimWithNMDARise {
			nrn.NMDAr += wSyn * mulSlow
			nrn.NMDAd += wSyn * mulSlow
		} else {
			nrn.NMDA += wSyn * mulSlow
		}
	}
	if preGrp.Type.Has(TypeTargetGABAa) {
		nrn.GABAa += wSyn * mulFast
	}
	if preGrp.Type.Has(TypeTargetGABAb) {
		if s.Cfg.SimWithGABAbRise {
			nrn.GABAbr += wSyn * mulSlow
			nrn.GABAbd += wSyn * mulSlow
		} else {
			nrn.GABAb += wSyn * mulSlow
		}
	}
	return nil
}
