// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"fmt"
)

// PinState is a pin state response.
//
// State is the output value for output modes and the pull-up setting for
// inputs.
type PinState struct {
	Pin   uint8
	Mode  PinMode
	State int
}

func parsePinState(data []byte) (PinState, error) {
	if len(data) < 2 {
		return PinState{}, fmt.Errorf("%w: pin state needs 2 bytes, got %d", ErrMalformedMessage, len(data))
	}
	if data[0] >= MaxPins {
		return PinState{}, fmt.Errorf("%w: pin state for pin %d", ErrMalformedMessage, data[0])
	}
	ps := PinState{Pin: data[0], Mode: PinMode(data[1])}
	// State is at most 4 groups of 7 bits.
	for i, b := range data[2:min(len(data), 6)] {
		ps.State |= int(b&SevenBitMask) << (7 * i)
	}
	return ps, nil
}

func (p PinState) String() string {
	return fmt.Sprintf("pin(%d) mode(%s) state(%d)", p.Pin, p.Mode, p.State)
}
