// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

// STPBuffer is the ring buffer of per-neuron short-term-plasticity state:
// (maxDelay+1) time slots of (u, x) per neuron, indexed by
// simTime mod (maxDelay+1).
type STPBuffer struct {
	U, X  []float32
	Pitch int32 // number of neurons per slot
	Slots int32 // maxDelay + 1
}

// NewSTPBuffer allocates a buffer for numN neurons with maxDelay+1 slots.
// X starts at 1.0 (resource pool starts full); U starts at 0.
func NewSTPBuffer(numN, maxDelay int32) *STPBuffer {
	slots := maxDelay + 1
	b := &STPBuffer{
		U:     make([]float32, slots*numN),
		X:     make([]float32, slots*numN),
		Pitch: numN,
		Slots: slots,
	}
	for i := range b.X {
		b.X[i] = 1
	}
	return b
}

func (b *STPBuffer) slot(t int32) int32 { return ((t % b.Slots) + b.Slots) % b.Slots }
func (b *STPBuffer) idx(t, n int32) int32 { return b.slot(t)*b.Pitch + n }

func (b *STPBuffer) Ut(t, n int32) float32 { return b.U[b.idx(t, n)] }
func (b *STPBuffer) Xt(t, n int32) float32 { return b.X[b.idx(t, n)] }

func (b *STPBuffer) SetU(t, n int32, v float32) { b.U[b.idx(t, n)] = v }
func (b *STPBuffer) SetX(t, n int32, v float32) { b.X[b.idx(t, n)] = v }
