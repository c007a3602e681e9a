// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package snn implements the per-timestep simulation core of a spiking
network engine: Izhikevich neurons and Poisson generators organized into
groups, connected by delayed weighted synapses with optional short-term
plasticity, spike-timing-dependent plasticity, conductance- or
current-based synapses, homeostatic weight scaling, and dopamine-modulated
learning. A single SimState owns every array; kernels operate on it one
tick at a time, mirroring a host dispatching fixed-order GPU kernel
launches with an implicit barrier between them.
*/
package snn

import (
	"math"
	"math/rand"

	"github.com/emer/snncore/izhik"
)

// SimState is the simulation context object referenced in §9 "Global
// state": it owns every array used by the tick, rather than scattering
// lifetime counters into package globals.
type SimState struct {
	Cfg    NetConfig
	Groups []Group
	Conn   Connectivity
	NPars  NeuronParams
	Izh    izhik.Params

	Neurons  []Neuron
	Synapses []Synapse

	FiringD1 *FiringTable
	FiringD2 *FiringTable
	ISet     *IncomingSpikeGrid
	STP      *STPBuffer

	Partition []Chunk
	Workers   *Workers

	SimTime int32 // current tick, 0-999 within a second (resets every 1000 ticks)
	MS      int32 // absolute millisecond counter, never resets

	SpikeCountD1, SpikeCountD2       int64 // lifetime totals
	SpikeCountD1Sec, SpikeCountD2Sec int32 // current-second totals, seeded with the carry-over count at each second boundary

	rng *rand.Rand
}

// NewSimState allocates a ready-to-run context from builder-supplied
// configuration, connectivity, and per-neuron constants. nThreads selects
// the Workers pool size; seed is the Poisson RNG seed.
func NewSimState(cfg NetConfig, groups []Group, conn Connectivity, npars NeuronParams, bufSize int32, nThreads int, seed int64) *SimState {
	s := &SimState{
		Cfg:    cfg,
		Groups: groups,
		Conn:   conn,
		NPars:  npars,
		rng:    rand.New(rand.NewSource(seed)),
	}
	s.Izh.Defaults()

	s.Neurons = make([]Neuron, cfg.NumN)
	// A neuron that has never fired gets a far-future LastSpikeTime, so
	// delivery-time LTD (dt = SimTime - LastSpikeTime) stays negative and
	// is skipped until its first spike.
	for i := range s.Neurons {
		s.Neurons[i].LastSpikeTime = math.MaxInt32
	}
	nsyn := int32(len(conn.PreSynapticIds))
	s.Synapses = make([]Synapse, nsyn)

	s.FiringD1 = NewFiringTable(cfg.MaxSpikesD1, cfg.MaxDelay)
	s.FiringD2 = NewFiringTable(cfg.MaxSpikesD2, cfg.MaxDelay)
	s.ISet = NewIncomingSpikeGrid(cfg.MaxNumPreSynN, cfg.NumNReg)
	s.STP = NewSTPBuffer(cfg.NumN, cfg.MaxDelay)

	s.Partition = BuildPartition(groups, bufSize)
	s.Workers = NewWorkers(s.Partition, nThreads)
	s.Workers.Start()

	return s
}

// Close stops the worker pool's goroutines. Call once the SimState is no
// longer needed.
func (s *SimState) Close() { s.Workers.Stop() }

// GroupOf returns the group owning neuron n, or nil if out of range. With
// many groups a builder-supplied sorted lookup would be faster; this is a
// straightforward linear scan suitable for the group counts this core
// targets.
func (s *SimState) GroupOf(n int32) *Group {
	for i := range s.Groups {
		g := &s.Groups[i]
		if n >= g.StartN && n < g.EndN {
			return g
		}
	}
	return nil
}

// poissonRateFires draws r in [0, maxRange) and reports whether
// r*1000/maxRange < rate, per §4.2's rate-pointer contract.
func (s *SimState) poissonRateFires(rate float32, maxRange int32) bool {
	r := s.rng.Int31n(maxRange)
	return float32(r)*1000/float32(maxRange) < rate
}

// TimerReport prints per-kernel and per-thread timing, delegating to the
// Workers pool -- see workers.go for the grounding of this pattern.
func (s *SimState) TimerReport() { s.Workers.TimerReport("SimState") }
