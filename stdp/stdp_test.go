// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdp

import (
	"testing"

	"github.com/chewxy/math32"
)

const difTol = float32(1.0e-6)

func TestExpCurveLTP(t *testing.T) {
	p := Params{}
	p.Defaults()
	p.AlphaPlus = 0.01
	p.TauPlusInv = 0.05

	got := p.Delta(10, true)
	want := float32(0.01 * math32.Exp(-10*0.05))
	if math32.Abs(got-want) > difTol {
		t.Errorf("Delta(10, true) = %v, want %v", got, want)
	}
	if math32.Abs(got-0.00607) > 1e-4 {
		t.Errorf("Delta(10, true) = %v, want ~0.00607", got)
	}
}

func TestExpCurveLTDIsNegative(t *testing.T) {
	p := Params{}
	p.Defaults()
	got := p.Delta(5, false)
	if got >= 0 {
		t.Errorf("expected negative LTD contribution, got %v", got)
	}
}

func TestExpCurveGating(t *testing.T) {
	p := Params{}
	p.Defaults()
	got := p.Delta(1000, true)
	if got != 0 {
		t.Errorf("expected gated-out contribution of 0 for large dt, got %v", got)
	}
}

func TestPulseCurve(t *testing.T) {
	p := Params{}
	p.Defaults()
	p.Curve = CurvePulse
	p.Lambda = 20
	p.PulseDelta = 20
	p.BetaLTP = 0.01
	p.BetaLTD = 0.02

	if v := p.Delta(10, true); v != p.BetaLTP {
		t.Errorf("pulse LTP within window = %v, want %v", v, p.BetaLTP)
	}
	if v := p.Delta(25, true); v != 0 {
		t.Errorf("pulse LTP outside window = %v, want 0", v)
	}
	if v := p.Delta(10, false); v != -p.BetaLTD {
		t.Errorf("pulse LTD within window = %v, want %v", v, -p.BetaLTD)
	}
}
