// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"bytes"
	"fmt"
)

// AnalogMapping is the pin to channel mapping received from the board.
type AnalogMapping struct {
	// ChannelToPin is indexed by analog channel. Holes are AnalogChannelNone.
	ChannelToPin []uint8
	PinToChannel map[uint8]uint8
}

func (a AnalogMapping) String() string {
	str := bytes.Buffer{}
	for ch, p := range a.ChannelToPin {
		if p == AnalogChannelNone {
			continue
		}
		_, _ = fmt.Fprintf(&str, "A%d: %d\n", ch, p)
	}
	return str.String()
}
