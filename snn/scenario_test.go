// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"math"
	"testing"

	"github.com/emer/snncore/stdp"
)

// singleNeuron builds a one-neuron, no-synapse SimState for scenario 1.
func singleNeuron(t *testing.T) *SimState {
	t.Helper()
	cfg := NetConfig{
		MaxDelay: 1, NumN: 1, NumNReg: 1, NumGroups: 1,
		MaxNumPreSynN: 1, MaxSpikesD1: 10, MaxSpikesD2: 10,
	}
	groups := []Group{{Id: 0, StartN: 0, EndN: 1, MaxDelay: 1}}
	groups[0].Defaults()
	conn := Connectivity{
		NumN: 1, MaxDelay: 1,
		Npre: []int32{0}, CumulativePre: []int32{0},
		Npost: []int32{0}, CumulativePost: []int32{0},
		PostDelayInfo: make([]DelayRange, 1*2),
		GrpIds:        []int32{0},
	}
	npars := NeuronParams{
		IzhA: []float32{0.02}, IzhB: []float32{0.2},
		IzhC: []float32{-65}, IzhD: []float32{8},
		BaseFiring: []float32{0}, BaseFiringInv: []float32{0},
	}
	s := NewSimState(cfg, groups, conn, npars, 16, 1, 1)
	s.Neurons[0] = Neuron{Voltage: -70, Recovery: -14, ExtCurrent: 10}
	return s
}

func TestScenario1SingleNeuronSpikesAndResets(t *testing.T) {
	s := singleNeuron(t)
	defer s.Close()

	spiked := false
	for i := 0; i < 500; i++ {
		prevCnt := s.Neurons[0].NSpikeCnt
		uBefore := s.Neurons[0].Recovery

		if err := s.StpAndDecay(); err != nil {
			t.Fatal(err)
		}
		if err := s.FindFiring(); err != nil {
			t.Fatal(err)
		}
		if s.Neurons[0].NSpikeCnt > prevCnt {
			spiked = true
			if s.Neurons[0].Voltage != -65 {
				t.Fatalf("tick %d: voltage after reset = %v, want -65", i, s.Neurons[0].Voltage)
			}
			if got, want := s.Neurons[0].Recovery, uBefore+8; got != want {
				t.Fatalf("tick %d: recovery after reset = %v, want %v", i, got, want)
			}
		}
		s.UpdateTimeTable()
		if err := s.DeliverD2(); err != nil {
			t.Fatal(err)
		}
		if err := s.DeliverD1(); err != nil {
			t.Fatal(err)
		}
		if err := s.ConductanceUpdate(); err != nil {
			t.Fatal(err)
		}
		if err := s.NeuronStateUpdate(); err != nil {
			t.Fatal(err)
		}
		s.SimTime++
		s.MS++
	}
	if !spiked {
		t.Fatal("expected at least one spike within 500 ticks")
	}
}

// oneSynapseChain builds A->B, a single synapse with the given delay, for
// scenarios 2 and 3.
func oneSynapseChain(t *testing.T, delay int32, wt, maxSynWt float32) *SimState {
	t.Helper()
	cfg := NetConfig{
		MaxDelay: delay, NumN: 2, NumNReg: 2, NumGroups: 1,
		MaxNumPreSynN: 1, MaxSpikesD1: 10, MaxSpikesD2: 10,
		SimWithSTDP: true, SimInTesting: false,
	}
	g := Group{Id: 0, StartN: 0, EndN: 2, MaxDelay: delay, WithSTDP: true, WithESTDP: true}
	g.Defaults()
	g.ESTDP.Curve = stdp.CurveExp
	g.ESTDP.AlphaPlus = 0.01
	g.ESTDP.TauPlusInv = 0.05
	groups := []Group{g}

	conn := Connectivity{
		NumN: 2, MaxDelay: delay,
		Npre:          []int32{0, 1},
		CumulativePre: []int32{0, 0},
		Npost:         []int32{1, 0},
		CumulativePost: []int32{0, 1},
		PreSynapticIds: []int32{0},
		PostSynapticIds: []PostTarget{{Post: 1, Slot: 0}},
		PostDelayInfo:  make([]DelayRange, 2*(int(delay)+1)),
		GrpIds:         []int32{0, 0},
		ConnIdsPreIdx:  []int32{0},
		MulSynFast:     []float32{1},
		MulSynSlow:     []float32{1},
	}
	conn.PostDelayInfo[0*(delay+1)+delay] = DelayRange{Start: 0, Length: 1}

	npars := NeuronParams{
		IzhA: []float32{0.02, 0.02}, IzhB: []float32{0.2, 0.2},
		IzhC: []float32{-65, -65}, IzhD: []float32{8, 8},
		BaseFiring: []float32{0, 0}, BaseFiringInv: []float32{0, 0},
	}
	s := NewSimState(cfg, groups, conn, npars, 16, 1, 1)
	s.Synapses[0] = Synapse{Wt: wt, MaxSynWt: maxSynWt}
	return s
}

func (s *SimState) stepOneTick() error {
	if err := s.StpAndDecay(); err != nil {
		return err
	}
	if err := s.FindFiring(); err != nil {
		return err
	}
	s.UpdateTimeTable()
	if err := s.DeliverD2(); err != nil {
		return err
	}
	if err := s.DeliverD1(); err != nil {
		return err
	}
	if err := s.ConductanceUpdate(); err != nil {
		return err
	}
	s.SimTime++
	s.MS++
	return nil
}

func TestScenario2DelayedCUBADelivery(t *testing.T) {
	s := oneSynapseChain(t, 3, 10, 100)
	defer s.Close()
	s.Cfg.SimWithSTDP = false // isolate delivery from STDP for this scenario

	for s.SimTime < 100 {
		if err := s.stepOneTick(); err != nil {
			t.Fatal(err)
		}
	}
	// tick 100: force A to fire by setting its voltage over threshold.
	s.Neurons[0].Voltage = 35
	if err := s.stepOneTick(); err != nil { // SimTime 100 -> 101
		t.Fatal(err)
	}
	for s.SimTime < 105 {
		gotBefore := s.Neurons[1].Current
		if err := s.stepOneTick(); err != nil {
			t.Fatal(err)
		}
		processedTick := s.SimTime - 1
		if processedTick == 103 {
			if s.Neurons[1].Current != gotBefore+10 {
				t.Fatalf("tick 103: B.current = %v, want %v", s.Neurons[1].Current, gotBefore+10)
			}
		} else if processedTick == 101 || processedTick == 102 || processedTick == 104 {
			if s.Neurons[1].Current != gotBefore {
				t.Fatalf("tick %d: B.current changed from %v to %v, want unchanged", processedTick, gotBefore, s.Neurons[1].Current)
			}
		}
	}
}

func TestScenario3ExponentialSTDPMagnitude(t *testing.T) {
	s := oneSynapseChain(t, 1, 10, 100)
	defer s.Close()

	for s.SimTime < 100 {
		if err := s.stepOneTick(); err != nil {
			t.Fatal(err)
		}
	}
	s.Neurons[0].Voltage = 35 // A fires at tick 100
	if err := s.stepOneTick(); err != nil {
		t.Fatal(err)
	}
	for s.SimTime < 110 {
		if err := s.stepOneTick(); err != nil {
			t.Fatal(err)
		}
	}
	s.Neurons[1].Voltage = 35 // B fires at tick 110
	if err := s.FindFiring(); err != nil {
		t.Fatal(err)
	}

	want := float32(0.01 * math.Exp(-10*0.05))
	got := s.Synapses[0].WtChange
	if diff := got - want; diff > 1e-5 || diff < -1e-5 {
		t.Fatalf("wtChange = %v, want ~%v", got, want)
	}
}

func TestScenario4FiringTableOverflowD1(t *testing.T) {
	cfg := NetConfig{
		MaxDelay: 1, NumN: 5, NumNReg: 5, NumGroups: 1,
		MaxNumPreSynN: 1, MaxSpikesD1: 4, MaxSpikesD2: 10,
	}
	g := Group{Id: 0, StartN: 0, EndN: 5, MaxDelay: 1}
	g.Defaults()
	groups := []Group{g}
	conn := Connectivity{
		NumN: 5, MaxDelay: 1,
		Npre: make([]int32, 5), CumulativePre: make([]int32, 5),
		Npost: make([]int32, 5), CumulativePost: make([]int32, 5),
		PostDelayInfo: make([]DelayRange, 5*2),
		GrpIds:        []int32{0, 0, 0, 0, 0},
	}
	npars := NeuronParams{
		IzhA: make([]float32, 5), IzhB: make([]float32, 5),
		IzhC: make([]float32, 5), IzhD: make([]float32, 5),
		BaseFiring: make([]float32, 5), BaseFiringInv: make([]float32, 5),
	}
	s := NewSimState(cfg, groups, conn, npars, 16, 1, 1)
	defer s.Close()

	for n := range s.Neurons {
		s.Neurons[n].Voltage = 35
	}
	err := s.FindFiring()
	if err == nil {
		t.Fatal("expected overflow error, got nil")
	}
	te, ok := err.(*TickError)
	if !ok || te.Code != ErrFireUpdateOverflowD1 {
		t.Fatalf("got %v, want FIRE_UPDATE_OVERFLOW_D1", err)
	}
}

// fillMonotoneTimeTable records one spike id at each of spikeMs (in
// ascending order) and fills every timeTable slot up to 999 with the
// running cumulative occupancy, so the table is monotone nondecreasing
// everywhere, per the invariant in §8 -- not just at the spike indices.
func fillMonotoneTimeTable(ft *FiringTable, maxDelay int32, spikeMs []int32, spikeIds []int32) int32 {
	cum := int32(0)
	next := 0
	for ms := int32(0); ms <= 999; ms++ {
		if next < len(spikeMs) && ms == spikeMs[next] {
			ft.Spikes[cum] = spikeIds[next]
			cum++
			next++
		}
		ft.TimeTable[ms+maxDelay+1] = cum
	}
	ft.ResetTail(cum)
	return cum
}

func TestScenario5SecondBoundaryCompaction(t *testing.T) {
	const maxDelay = int32(20)

	d2 := NewFiringTable(100, maxDelay)
	fillMonotoneTimeTable(d2, maxDelay, []int32{985, 990, 995}, []int32{7, 8, 9})

	d1 := NewFiringTable(100, maxDelay)
	fillMonotoneTimeTable(d1, maxDelay, []int32{997, 998}, []int32{3, 4})

	s := &SimState{Cfg: NetConfig{MaxDelay: maxDelay}, FiringD2: d2, FiringD1: d1}
	s.secondBoundary()

	for i, want := range []int32{7, 8, 9} {
		if s.FiringD2.Spikes[i] != want {
			t.Fatalf("D2 Spikes[%d] = %d, want %d", i, s.FiringD2.Spikes[i], want)
		}
	}
	for i := int32(0); i < maxDelay; i++ {
		cnt := s.FiringD2.TimeTable[i+1] - s.FiringD2.TimeTable[i]
		if cnt < 0 {
			t.Fatalf("timeTableD2[%d] not monotone nondecreasing", i)
		}
	}

	// D1's two spikes (ms 997, 998) fall inside the carry-over window for
	// maxDelay=20 and must survive the boundary the same way D2's do --
	// spec.md's carry-over formula is symmetric for D1 and D2.
	for i, want := range []int32{3, 4} {
		if s.FiringD1.Spikes[i] != want {
			t.Fatalf("D1 Spikes[%d] = %d, want %d", i, s.FiringD1.Spikes[i], want)
		}
	}
	if s.FiringD1.Occupancy() != 2 {
		t.Fatalf("D1 occupancy after boundary = %d, want 2", s.FiringD1.Occupancy())
	}
	for i := int32(0); i < maxDelay; i++ {
		cnt := s.FiringD1.TimeTable[i+1] - s.FiringD1.TimeTable[i]
		if cnt < 0 {
			t.Fatalf("timeTableD1[%d] not monotone nondecreasing", i)
		}
	}
}

func TestScenario6InhibitoryWeightClamping(t *testing.T) {
	syn := Synapse{Wt: -19.5, MaxSynWt: -20, WtChange: -10}
	syn.Wt += syn.WtChange
	syn.Clip()
	if syn.Wt != -20 {
		t.Fatalf("Wt = %v, want -20", syn.Wt)
	}
}
