// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"fmt"
	"strconv"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// Pin is a board pin seen as a periph output pin.
//
// Input levels are the ones last reported by the board: enable the reporting
// of the pin's port with Client.ReportDigital to keep them current.
type Pin struct {
	c *Client
	n uint8
}

func (p *Pin) String() string {
	return p.Name()
}

// Halt drives the pin low.
func (p *Pin) Halt() error {
	return p.c.DigitalWrite(p.n, gpio.Low)
}

// Name returns "A<channel>" for pins with an analog channel, the pin number
// otherwise.
func (p *Pin) Name() string {
	if ch, _ := p.c.AnalogChannel(p.n); ch != AnalogChannelNone {
		return "A" + strconv.Itoa(int(ch))
	}
	return strconv.Itoa(int(p.n))
}

func (p *Pin) Number() int {
	return int(p.n)
}

// Function implements pin.Pin.
func (p *Pin) Function() string {
	return string(p.Func())
}

// Func returns the function matching the cached pin mode.
func (p *Pin) Func() pin.Func {
	m, _ := p.c.PinMode(p.n)
	return m.Func()
}

// SupportedFuncs returns the functions of the capability reply, or nil before
// Client.QueryCapabilities was answered.
func (p *Pin) SupportedFuncs() []pin.Func {
	caps := p.c.Capabilities()
	if int(p.n) >= len(caps) {
		return nil
	}
	out := make([]pin.Func, 0, len(caps[p.n].Modes))
	for _, m := range caps[p.n].Modes {
		if f := m.Func(); f != pin.FuncNone {
			out = append(out, f)
		}
	}
	return out
}

func (p *Pin) SetFunc(f pin.Func) error {
	m, ok := PinModeFromFunc(f)
	if !ok {
		return fmt.Errorf("%w: pin %d has no function %q", ErrInvalidArgument, p.n, f)
	}
	return p.c.SetPinMode(p.n, m)
}

// Read returns the last reported input level.
func (p *Pin) Read() gpio.Level {
	l, _ := p.c.DigitalRead(p.n)
	return l
}

// Out sets the output level. The pin must be in PinModeOutput.
func (p *Pin) Out(l gpio.Level) error {
	return p.c.DigitalWrite(p.n, l)
}

// PWM scales duty to 8 bits. f is ignored, the firmware sets the frequency.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	if !duty.Valid() {
		return fmt.Errorf("%w: duty %d", ErrInvalidArgument, duty)
	}
	v := uint8(int64(duty) * 255 / int64(gpio.DutyMax))
	if p.n < MaxAnalogChannels {
		return p.c.AnalogWrite(p.n, v)
	}
	if err := p.c.SetPinMode(p.n, PinModePWM); err != nil {
		return err
	}
	return p.c.ExtendedAnalogWrite(p.n, uint32(v))
}

var _ gpio.PinOut = &Pin{}
var _ pin.PinFunc = &Pin{}
