// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"bytes"
	"fmt"
)

// CapabilityResponsePinDelimiter ends the list of modes of one pin.
const CapabilityResponsePinDelimiter = 0x7F

// PinCapability lists the modes a pin supports and their resolution in bits.
type PinCapability struct {
	Modes      []PinMode
	Resolution map[PinMode]uint8
}

// Capabilities is indexed by pin number.
type Capabilities []PinCapability

// parseCapabilities decodes the body of a capability response, without the
// command byte.
func parseCapabilities(data []byte) (Capabilities, error) {
	var out Capabilities
	cur := PinCapability{Resolution: map[PinMode]uint8{}}
	for i := 0; i < len(data); {
		if data[i] == CapabilityResponsePinDelimiter {
			out = append(out, cur)
			cur = PinCapability{Resolution: map[PinMode]uint8{}}
			i++
			continue
		}
		if i+1 >= len(data) {
			return nil, fmt.Errorf("%w: capability of pin %d has no resolution", ErrMalformedMessage, len(out))
		}
		m := PinMode(data[i])
		cur.Modes = append(cur.Modes, m)
		cur.Resolution[m] = data[i+1]
		i += 2
	}
	if len(out) > MaxPins {
		return nil, fmt.Errorf("%w: capability response lists %d pins", ErrMalformedMessage, len(out))
	}
	return out, nil
}

// Supports reports whether pin p supports mode m.
func (c Capabilities) Supports(p uint8, m PinMode) bool {
	if int(p) >= len(c) {
		return false
	}
	_, ok := c[p].Resolution[m]
	return ok
}

func (c Capabilities) String() string {
	str := bytes.Buffer{}
	for p, pc := range c {
		_, _ = fmt.Fprintf(&str, "pin %2v: [", p)
		for i, m := range pc.Modes {
			if i != 0 {
				str.WriteString(", ")
			}
			_, _ = fmt.Fprintf(&str, "%s: %d", m, pc.Resolution[m])
		}
		_, _ = fmt.Fprintf(&str, "]\n")
	}
	return str.String()
}
