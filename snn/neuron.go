// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import "github.com/emer/snncore/chans"

// Neuron holds the per-tick mutable state of one regular (Izhikevich)
// neuron. Poisson generator neurons (ids >= NumNReg) do not use this
// struct's dynamics -- they only produce spikes.
type Neuron struct {
	Voltage    float32
	Recovery   float32
	Current    float32
	ExtCurrent float32

	chans.Channels

	AvgFiring     float32
	LastSpikeTime int32
	NSpikeCnt     int32
}
