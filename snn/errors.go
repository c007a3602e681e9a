// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import "fmt"

// ErrorCode identifies the sticky per-tick error a kernel can report. A
// non-zero code means the tick is corrupt and must be reported to the
// caller rather than silently patched or retried.
type ErrorCode int32

const (
	ErrNone ErrorCode = iota
	ErrFireUpdateOverflowD1
	ErrFireUpdateOverflowD2
	ErrCurrentUpdateGroupUnknown
	ErrWeightsSizeMismatch
)

func (c ErrorCode) String() string {
	switch c {
	case ErrNone:
		return "none"
	case ErrFireUpdateOverflowD1:
		return "FIRE_UPDATE_OVERFLOW_D1"
	case ErrFireUpdateOverflowD2:
		return "FIRE_UPDATE_OVERFLOW_D2"
	case ErrCurrentUpdateGroupUnknown:
		return "CURRENT_UPDATE_GROUP_UNKNOWN"
	case ErrWeightsSizeMismatch:
		return "WEIGHTS_SIZE_MISMATCH"
	default:
		return "unknown error code"
	}
}

// TickError reports which kernel failed, at what simulation time, and why.
// A tick that produces one is considered corrupt in its entirety: nothing
// is retried, and state changes made before the failure are not rolled back.
type TickError struct {
	Code    ErrorCode
	Kernel  string
	SimTime int32
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d: kernel %s: %s", e.SimTime, e.Kernel, e.Code)
}
