// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import "testing"

func TestIncomingSpikeGridSetBitAndClear(t *testing.T) {
	g := NewIncomingSpikeGrid(40, 3)
	g.SetBit(1, 5)
	g.SetBit(1, 33)
	if g.Row(0, 1)&(1<<5) == 0 {
		t.Fatal("bit 5 not set in row 0")
	}
	if g.Row(1, 1)&(1<<1) == 0 {
		t.Fatal("bit 33 (row 1, bit 1) not set")
	}
	if g.AllZero() {
		t.Fatal("grid should not be all-zero after SetBit")
	}
	for row := int32(0); row < g.Rows(); row++ {
		g.ClearRow(row, 1)
	}
	if !g.AllZero() {
		t.Fatal("grid should be all-zero after clearing every touched row")
	}
}

func TestIncomingSpikeGridSetBitIdempotent(t *testing.T) {
	g := NewIncomingSpikeGrid(40, 1)
	g.SetBit(0, 3)
	g.SetBit(0, 3)
	if g.Row(0, 0) != 1<<3 {
		t.Fatalf("got %b, want single bit 3 set", g.Row(0, 0))
	}
}

func TestIncomingSpikeGridColumnsIndependent(t *testing.T) {
	g := NewIncomingSpikeGrid(32, 2)
	g.SetBit(0, 0)
	if g.Row(0, 1) != 0 {
		t.Fatal("setting post 0's bit should not affect post 1's row")
	}
}
