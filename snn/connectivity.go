// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

// DelayRange names a contiguous slice of PostSynapticIds: all outgoing
// targets of one presynaptic neuron with a specific delay.
type DelayRange struct {
	Start  int32
	Length int32
}

// PostTarget is one outgoing connection of a presynaptic neuron: which
// post-neuron it targets, and which of that post-neuron's presynaptic
// slots (indexing into PreSynapticIds/Synapses for that post) it occupies.
type PostTarget struct {
	Post int32
	Slot int32
}

// Connectivity is the static wiring of the network, supplied whole by an
// external network builder and treated as immutable for the lifetime of
// the simulation.
type Connectivity struct {
	NumN, NumNReg, NumNPois int32
	MaxDelay                int32

	Npre, Npost                   []int32
	CumulativePre, CumulativePost []int32

	// PreSynapticIds is indexed by CumulativePre[post]+slot and yields the
	// presynaptic neuron id for that post-neuron's slot-th incoming synapse.
	PreSynapticIds []int32

	// PostSynapticIds is indexed by CumulativePost[pre]+j and yields the
	// (post, slot) pair for the pre-neuron's j-th outgoing connection.
	PostSynapticIds []PostTarget

	// PostDelayInfo is indexed by pre*(MaxDelay+1)+d and gives the
	// contiguous run within PostSynapticIds of pre's targets at delay d.
	PostDelayInfo []DelayRange

	GrpIds        []int32
	ConnIdsPreIdx []int32

	MulSynFast []float32
	MulSynSlow []float32
}

// PostDelay returns the delay-d outgoing targets of neuron pre.
func (c *Connectivity) PostDelay(pre, d int32) []PostTarget {
	r := c.PostDelayInfo[pre*(c.MaxDelay+1)+d]
	return c.PostSynapticIds[r.Start : r.Start+r.Length]
}

// SynIndex returns the flat synapse/PreSynapticIds index for post-neuron's
// slot-th incoming connection.
func (c *Connectivity) SynIndex(post, slot int32) int32 {
	return c.CumulativePre[post] + slot
}

// NeuronParams holds the per-neuron builder-supplied constants that are
// immutable during a tick: the Izhikevich shape parameters and the
// homeostatic baseline firing rate.
type NeuronParams struct {
	IzhA, IzhB, IzhC, IzhD []float32
	BaseFiring             []float32
	BaseFiringInv          []float32
}
