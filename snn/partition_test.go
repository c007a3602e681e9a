// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import "testing"

func TestBuildPartitionNeverCrossesGroupBoundary(t *testing.T) {
	groups := []Group{
		{Id: 0, StartN: 0, EndN: 10},
		{Id: 1, StartN: 10, EndN: 13},
		{Id: 2, StartN: 13, EndN: 40},
	}
	chunks := BuildPartition(groups, 7)
	var covered int32
	for _, c := range chunks {
		g := &groups[c.GroupId]
		if c.StartN < g.StartN || c.StartN+c.Size > g.EndN {
			t.Fatalf("chunk %+v crosses group %+v boundary", c, g)
		}
		covered += c.Size
	}
	if want := groups[2].EndN - groups[0].StartN; covered != want {
		t.Fatalf("covered %d neurons, want %d", covered, want)
	}
}

func TestChunkPackUnpackRoundTrip(t *testing.T) {
	cases := []Chunk{
		{StartN: 0, Size: 1, GroupId: 0},
		{StartN: 12345, Size: 128, GroupId: 63},
		{StartN: 1 << 20, Size: 65535, GroupId: 65535},
	}
	for _, c := range cases {
		got := UnpackChunk(c.Pack())
		if got != c {
			t.Fatalf("round-trip mismatch: got %+v, want %+v", got, c)
		}
	}
}

func TestScanSetBits(t *testing.T) {
	var got []int
	ScanSetBits(0b1000_0000_0000_0000_0000_0000_0000_0101, func(bit int) {
		got = append(got, bit)
	})
	want := []int{0, 2, 31}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestScanSetBitsZero(t *testing.T) {
	called := false
	ScanSetBits(0, func(bit int) { called = true })
	if called {
		t.Fatal("ScanSetBits(0, ...) should not call fn")
	}
}
