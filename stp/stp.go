// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stp provides short-term plasticity: per-neuron release probability
(u) and resource (x) dynamics that decay toward a baseline each tick and
are augmented whenever the neuron fires, scaling the effective synaptic
weight of its outgoing connections at delivery time.
*/
package stp

// Params holds one group's short-term plasticity constants.
type Params struct {
	U        float32 `def:"0.2" desc:"release-probability increment applied to u on each spike"`
	TauUInv  float32 `def:"0.05" desc:"inverse decay time constant for u toward 0"`
	TauXInv  float32 `def:"0.0125" desc:"inverse recovery time constant for x toward 1"`
	A        float32 `def:"1" desc:"overall scale applied to the u*x product when weighting a synapse"`
}

func (p *Params) Defaults() {
	p.U = 0.2
	p.TauUInv = 0.05
	p.TauXInv = 0.0125
	p.A = 1
}

func (p *Params) Update() {
	// no derived fields
}

// Decay advances u and x by one tick with no spike, per §4.7:
//
//	stpu[plus] = stpu[minus] * (1 - TauUInv)
//	stpx[plus] = stpx[minus] + (1 - stpx[minus]) * TauXInv
func (p *Params) Decay(uMinus, xMinus float32) (u, x float32) {
	u = uMinus * (1 - p.TauUInv)
	x = xMinus + (1-xMinus)*p.TauXInv
	return u, x
}

// Augment applies the on-spike correction to the already-decayed (u, x)
// values for this tick, per §4.7:
//
//	stpu[plus] += U * (1 - stpu[minus])
//	stpx[plus] -= stpu[plus] * stpx[minus]
//
// uPlusDecayed/xPlusDecayed are the results of Decay for this tick;
// uMinus/xMinus are the prior tick's (pre-decay) values the formula also
// references directly.
func (p *Params) Augment(uMinus, xMinus, uPlusDecayed, xPlusDecayed float32) (u, x float32) {
	u = uPlusDecayed + p.U*(1-uMinus)
	x = xPlusDecayed - u*xMinus
	return u, x
}

// Weight returns the STP-scaled multiplier A*x*u applied to a synaptic
// weight at delivery time (§4.4).
func (p *Params) Weight(u, x float32) float32 {
	return p.A * x * u
}
