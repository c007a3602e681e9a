// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package izhik provides the Izhikevich two-variable spiking neuron model:
a quadratic membrane-voltage term coupled to a slower recovery variable,
integrated in fixed sub-steps per simulation tick. Four per-neuron
parameters (a, b, c, d) select the firing regime (regular spiking,
bursting, chattering, etc); the integration constants here (sub-step
count, voltage clamp range) are shared network-wide.
*/
package izhik

// Params holds the network-wide Izhikevich integration constants: how many
// sub-steps to take per simulated millisecond, and the voltage range the
// membrane potential is clamped to after each sub-step.
type Params struct {
	SubSteps int32   `def:"2" desc:"number of integration sub-steps per simulation tick"`
	Scale    float32 `def:"2" desc:"divisor applied to the v and u derivatives each sub-step, paired with SubSteps"`
	VPeak    float32 `def:"30" desc:"spike threshold / reset ceiling for voltage"`
	VMin     float32 `def:"-90" desc:"floor clamp for voltage"`
}

func (ip *Params) Defaults() {
	ip.SubSteps = 2
	ip.Scale = 2
	ip.VPeak = 30
	ip.VMin = -90
}

func (ip *Params) Update() {
	// no derived fields -- constants are used directly
}

// Step advances the membrane voltage v and recovery u by one sub-step,
// given the (already-summed) driving current cur and the neuron's a, b
// parameters. It returns the updated (v, u) and whether the sub-step loop
// should stop because threshold was crossed.
func (ip *Params) Step(v, u, cur, a, b float32) (nv, nu float32, crossed bool) {
	nv = v + ((0.04*v+5)*v+140-u+cur)/ip.Scale
	nu = u + a*(b*v-u)/ip.Scale
	if nv > ip.VPeak {
		return ip.VPeak, nu, true
	}
	if nv < ip.VMin {
		nv = ip.VMin
	}
	return nv, nu, false
}

// Integrate runs the full SubSteps loop for one tick, stopping early if
// voltage crosses VPeak, and reports whether it did. curFn recomputes the
// driving current from each sub-step's evolving voltage, so a
// voltage-dependent current (e.g. conductance-based synaptic current) stays
// current with v across the whole loop rather than being frozen at the
// tick's starting voltage; a caller with a voltage-independent current can
// ignore v and return a constant.
func (ip *Params) Integrate(v, u float32, curFn func(v float32) float32, a, b float32) (nv, nu float32, spiked bool) {
	nv, nu = v, u
	for i := int32(0); i < ip.SubSteps; i++ {
		var crossed bool
		nv, nu, crossed = ip.Step(nv, nu, curFn(nv), a, b)
		if crossed {
			return nv, nu, true
		}
	}
	return nv, nu, false
}

// NMDAFraction computes the voltage-dependent NMDA gating fraction
// ((v+80)/60)^2 / (1 + ((v+80)/60)^2) used when distributing NMDA
// conductance into the driving current.
func NMDAFraction(v float32) float32 {
	t := (v + 80) / 60
	t2 := t * t
	return t2 / (1 + t2)
}
