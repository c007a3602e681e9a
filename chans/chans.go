// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides the per-tick conductance decay parameters for
COBA (conductance-based) synapses: AMPA, NMDA, GABAa and GABAb channels,
each with a simple exponential decay and, for NMDA/GABAb, an optional
rise/decay pair. These are network-scoped -- every regular neuron decays
its conductance state against the same constants each STP_AND_DECAY pass.
*/
package chans

// DecayParams holds the network-wide conductance decay multipliers applied
// once per tick to every regular neuron's channel state.
type DecayParams struct {
	DAMPA  float32 `def:"0.9048" desc:"AMPA conductance decay multiplier per tick"`
	DNMDA  float32 `def:"0.9980" desc:"NMDA decay multiplier (plain or decay-arm of rise/decay pair)"`
	RNMDA  float32 `def:"0.9900" desc:"NMDA rise-arm multiplier, used only when rise dynamics are enabled"`
	DGABAa float32 `def:"0.9048" desc:"GABAa conductance decay multiplier per tick"`
	DGABAb float32 `def:"0.9980" desc:"GABAb decay multiplier (plain or decay-arm of rise/decay pair)"`
	RGABAb float32 `def:"0.9900" desc:"GABAb rise-arm multiplier, used only when rise dynamics are enabled"`
	SNMDA  float32 `def:"1" desc:"scale applied to the NMDA rise/decay difference before use"`
	SGABAb float32 `def:"1" desc:"scale applied to the GABAb rise/decay difference before use"`
}

func (dp *DecayParams) Defaults() {
	dp.DAMPA = 0.9048
	dp.DNMDA = 0.9980
	dp.RNMDA = 0.9900
	dp.DGABAa = 0.9048
	dp.DGABAb = 0.9980
	dp.RGABAb = 0.9900
	dp.SNMDA = 1
	dp.SGABAb = 1
}

func (dp *DecayParams) Update() {
	// no derived fields -- constants are used directly in the decay kernel
}

// Channels holds the decaying per-neuron conductance state for one regular
// neuron's COBA channels. NMDA and GABAb each carry either a single plain
// value or a rise/decay pair, selected by the network's rise-dynamics flags.
type Channels struct {
	AMPA   float32
	NMDA   float32
	NMDAr  float32
	NMDAd  float32
	GABAa  float32
	GABAb  float32
	GABAbr float32
	GABAbd float32
}

// Decay applies one tick's worth of exponential decay to every channel,
// per §4.7 STP_AND_DECAY. withNMDArise and withGABAbrise select whether the
// rise/decay pair or the plain conductance is decayed for that channel.
func (dp *DecayParams) Decay(ch *Channels, withNMDArise, withGABAbrise bool) {
	ch.AMPA *= dp.DAMPA
	if withNMDArise {
		ch.NMDAr *= dp.RNMDA
		ch.NMDAd *= dp.DNMDA
	} else {
		ch.NMDA *= dp.DNMDA
	}
	ch.GABAa *= dp.DGABAa
	if withGABAbrise {
		ch.GABAbr *= dp.RGABAb
		ch.GABAbd *= dp.DGABAb
	} else {
		ch.GABAb *= dp.DGABAb
	}
}

// NMDA returns the effective NMDA conductance, collapsing the rise/decay
// pair (scaled by SNMDA) down to a single value when rise dynamics are on.
func (dp *DecayParams) NMDA(ch *Channels, withNMDArise bool) float32 {
	if withNMDArise {
		return dp.SNMDA * (ch.NMDAd - ch.NMDAr)
	}
	return ch.NMDA
}

// GABAb returns the effective GABAb conductance, collapsing the rise/decay
// pair (scaled by SGABAb) down to a single value when rise dynamics are on.
func (dp *DecayParams) GABAb(ch *Channels, withGABAbrise bool) float32 {
	if withGABAbrise {
		return dp.SGABAb * (ch.GABAbd - ch.GABAbr)
	}
	return ch.GABAb
}
