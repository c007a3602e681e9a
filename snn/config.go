// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"github.com/emer/emergent/v2/params"
	"github.com/emer/snncore/chans"
	"github.com/emer/snncore/stdp"
	"github.com/emer/snncore/stp"
)

// GroupType is a bitmask of what a group is and what neuromodulator
// channel(s) it targets on delivery.
type GroupType int32

const (
	TypePoisson GroupType = 1 << iota
	TypeTargetAMPA
	TypeTargetNMDA
	TypeTargetGABAa
	TypeTargetGABAb
	TypeTargetDA
)

func (t GroupType) Has(f GroupType) bool { return t&f != 0 }

// SpikeGenMode selects how a Poisson/external group decides whether a
// neuron fires on a given tick.
type SpikeGenMode int32

const (
	SpikeGenNone SpikeGenMode = iota
	SpikeGenUserBits
	SpikeGenRate
)

// HomeostasisParams holds one group's homeostatic weight-scaling constants.
type HomeostasisParams struct {
	Scale             float32 `def:"0.1" desc:"overall scale on the homeostatic weight-change correction"`
	AvgTimeScale      float32 `def:"10000" desc:"time scale (in ticks) over which avgFiring is averaged"`
	AvgTimeScaleDecay float32 `def:"0.9999" desc:"per-tick multiplier applied to avgFiring after integration"`
	AvgTimeScaleInv   float32 `desc:"derived: 1/AvgTimeScale"`
}

func (hp *HomeostasisParams) Defaults() {
	hp.Scale = 0.1
	hp.AvgTimeScale = 10000
	hp.AvgTimeScaleDecay = 0.9999
	hp.Update()
}

func (hp *HomeostasisParams) Update() {
	if hp.AvgTimeScale != 0 {
		hp.AvgTimeScaleInv = 1 / hp.AvgTimeScale
	}
}

// Group holds the parameters shared by every neuron in one named group:
// its neuron-id range, its type/spike-generation mode, and its plasticity
// and neuromodulator configuration.
type Group struct {
	Name  string
	Id    int32
	StartN, EndN int32
	MaxDelay int32

	Type     GroupType
	SpikeGen SpikeGenMode
	Noffset  int32 // offset into the spike-gen bit vector / rate array

	SpikeGenBits []uint64
	Rate         []float32

	WithSTDP            bool
	WithESTDP, WithISTDP bool
	ESTDPCurve, ISTDPCurve stdp.Curve
	ESTDPType, ISTDPType   stdp.Kind
	ESTDP, ISTDP           stdp.Params

	WithSTP bool
	STP     stp.Params

	WithHomeostasis bool
	Homeo           HomeostasisParams

	BaseDP, DecayDP float32
	GrpDA           float32
	DALog           [1000]float32

	FixedInputWts bool
	SpkCntBufPos  int32
}

// IsPoisson reports whether this group is a spike-generator group rather
// than a regular Izhikevich group.
func (g *Group) IsPoisson() bool { return g.Type.Has(TypePoisson) }

// Defaults sets the sub-structures to sane defaults; callers still must
// set StartN/EndN/Id/Type/SpikeGen for a usable group.
func (g *Group) Defaults() {
	g.ESTDP.Defaults()
	g.ISTDP.Defaults()
	g.STP.Defaults()
	g.Homeo.Defaults()
	g.BaseDP = 0
	g.DecayDP = 0.995
}

// NetConfig holds the network-wide configuration recognized by the core:
// array sizing, feature flags, and conductance-decay / STDP-cadence
// constants.
type NetConfig struct {
	MaxDelay int32
	NumN, NumNReg, NumNPois int32
	NumGroups               int32
	MaxNumPreSynN           int32
	MaxSpikesD1, MaxSpikesD2 int32

	SimWithConductances bool
	SimWithNMDARise     bool
	SimWithGABAbRise    bool
	SimWithSTDP         bool
	SimWithSTP          bool
	SimWithHomeostasis  bool
	SimWithFixedWts     bool
	SimInTesting        bool

	Decay chans.DecayParams

	StdpScaleFactor int32
	WtChangeDecay   float32
}

func (nc *NetConfig) Defaults() {
	nc.Decay.Defaults()
	nc.StdpScaleFactor = 100
	nc.WtChangeDecay = 1
}

func (nc *NetConfig) Update() {
	nc.Decay.Update()
}

// ApplyParamSheet styles a group's parameters from a params.Sheet, following
// the convention of leabra.LayerBase.ApplyParams: the sheet's selectors are
// matched against the receiver's type/class by reflection, matching fields
// set, and, whenever the sheet applied anything, Update is called on every
// parameter sub-struct (ESTDP, ISTDP, STP, Homeo) so derived fields stay
// consistent.
func ApplyParamSheet(sheet *params.Sheet, g *Group, setMsg bool) (bool, error) {
	applied, err := sheet.Apply(g, setMsg)
	if applied {
		g.ESTDP.Update()
		g.ISTDP.Update()
		g.STP.Update()
		g.Homeo.Update()
	}
	return applied, err
}
