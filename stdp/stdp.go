// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stdp provides the spike-timing-dependent plasticity curves used to
compute weight-change increments from a pre/post spike-time difference:
a standard exponential curve, a timing-based curve with a linear-ish near
region and exponential tail, and a pulse curve that steps by a fixed
amount within a time window. Each group selects one curve independently
for its excitatory and inhibitory synapses.
*/
package stdp

import "github.com/chewxy/math32"

// Curve selects the STDP weight-change shape for a group's excitatory or
// inhibitory synapses.
type Curve int32

const (
	CurveExp Curve = iota
	CurveTimingBased
	CurvePulse
)

// Kind distinguishes ordinary STDP from dopamine-modulated STDP. DA
// modulation only scales the eventual weight-change application in
// UPDATE_WEIGHTS (see snn package); it does not alter curve evaluation.
type Kind int32

const (
	Standard Kind = iota
	DAMod
)

// gatingThresh gates the exponential curve: beyond this many time-constants
// the contribution is treated as zero, matching the reference's |Δt|·τ_inv < 25.
const gatingThresh = 25

// Params holds the constants for one STDP curve (one instance per group,
// per sign -- excitatory and inhibitory curves are configured separately).
type Params struct {
	Curve Curve

	// exponential curve
	AlphaPlus   float32 `def:"0.01" desc:"LTP magnitude for the exponential curve"`
	TauPlusInv  float32 `def:"0.05" desc:"inverse LTP time constant for the exponential curve"`
	AlphaMinus  float32 `def:"0.01" desc:"LTD magnitude for the exponential curve"`
	TauMinusInv float32 `def:"0.05" desc:"inverse LTD time constant for the exponential curve"`

	// timing-based curve (excitatory only)
	Gamma float32 `desc:"timing-based curve breakpoint"`
	Omega float32 `desc:"timing-based curve near-region offset"`
	Kappa float32 `desc:"timing-based curve near-region exponential coefficient"`

	// pulse curve (inhibitory only)
	Lambda     float32 `desc:"pulse curve LTP window width"`
	PulseDelta float32 `desc:"pulse curve LTD window width"`
	BetaLTP    float32 `desc:"pulse curve LTP step size"`
	BetaLTD    float32 `desc:"pulse curve LTD step size"`
}

func (p *Params) Defaults() {
	p.Curve = CurveExp
	p.AlphaPlus = 0.01
	p.TauPlusInv = 0.05
	p.AlphaMinus = 0.01
	p.TauMinusInv = 0.05
	p.Gamma = 4
	p.Omega = -0.5
	p.Kappa = 1
	p.Lambda = 20
	p.PulseDelta = 20
	p.BetaLTP = 0.01
	p.BetaLTD = 0.01
}

func (p *Params) Update() {
	// no derived fields
}

// Delta returns the signed weight-change contribution for a spike pair
// separated by dt (always >= 0, per the delivery-path and firing-path
// callers in the snn package), given whether this is the LTP (pre-before-
// post) or LTD (post-before-pre) direction. The sign is baked into the
// return value; callers add it directly to wtChange.
func (p *Params) Delta(dt float32, ltp bool) float32 {
	switch p.Curve {
	case CurveTimingBased:
		if dt < p.Gamma {
			return p.Omega + p.Kappa*math32.Exp(-dt*p.TauPlusInv)
		}
		return -math32.Exp(-dt * p.TauPlusInv)
	case CurvePulse:
		if ltp {
			if dt < p.Lambda {
				return p.BetaLTP
			}
			return 0
		}
		if dt < p.PulseDelta {
			return -p.BetaLTD
		}
		return 0
	default: // CurveExp
		a, tauInv := p.AlphaPlus, p.TauPlusInv
		if !ltp {
			a, tauInv = p.AlphaMinus, p.TauMinusInv
		}
		if dt*tauInv >= gatingThresh {
			return 0
		}
		v := a * math32.Exp(-dt*tauInv)
		if ltp {
			return v
		}
		return -v
	}
}
