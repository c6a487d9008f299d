// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"fmt"
)

// Fixed sizes of the device state. Indices at or above these bounds are
// rejected with ErrInvalidArgument.
const (
	MaxPins           = 128
	MaxPorts          = 16
	MaxAnalogChannels = 16
	MaxSteppers       = 16
	MaxSysExSize      = 4096
)

// AnalogChannelNone marks a pin without analog channel in an analog mapping
// reply. It is also the mapping of every pin until a reply is received.
const AnalogChannelNone uint8 = 0x7F

// RegisterKey identifies the last reply of an I2C style extension device.
type RegisterKey struct {
	Address  uint16
	Register uint16
}

func (k RegisterKey) String() string {
	return fmt.Sprintf("0x%02X/0x%02X", k.Address, k.Register)
}

// StepperStatus is the motion status of a stepper as last known by the host.
type StepperStatus uint8

const (
	StepperIdle   StepperStatus = 0
	StepperMoving StepperStatus = 1
)

func (s StepperStatus) String() string {
	if s == StepperIdle {
		return "Idle"
	}
	return "Moving"
}

// Version is the protocol version reported by the board.
type Version struct {
	Major uint8
	Minor uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// state is the cache of last known values. The parser is its only writer,
// except for the output bitmasks, the pin modes and the stepper status which
// the encoder maintains.
type state struct {
	pinModes      [MaxPins]PinMode
	analogChannel [MaxPins]uint8
	capabilities  Capabilities
	digitalInput  [MaxPorts]uint16
	digitalOutput [MaxPorts]uint16
	analogInput   [MaxAnalogChannels]uint16
	steppers      [MaxSteppers]StepperStatus
	stepperPos    [MaxSteppers]int32
	registers     map[RegisterKey][]uint16
	version       Version
	firmware      FirmwareReport
}

func newState() *state {
	s := &state{registers: map[RegisterKey][]uint16{}}
	for i := range s.pinModes {
		s.pinModes[i] = PinModeUnset
		s.analogChannel[i] = AnalogChannelNone
	}
	return s
}

// setAnalogMapping replaces the whole pin to channel mapping. Entries past
// MaxPins are dropped.
func (s *state) setAnalogMapping(channels []byte) {
	for i := range s.analogChannel {
		s.analogChannel[i] = AnalogChannelNone
	}
	copy(s.analogChannel[:], channels)
}

// setRegister stores a copy of values, overwriting the previous reply.
func (s *state) setRegister(k RegisterKey, values []uint16) {
	s.registers[k] = append([]uint16(nil), values...)
}

func (s *state) register(k RegisterKey) ([]uint16, bool) {
	v, ok := s.registers[k]
	if !ok {
		return nil, false
	}
	return append([]uint16(nil), v...), true
}

// writeOutputBit updates the output bitmask of the port holding p and
// returns the new mask.
func (s *state) writeOutputBit(p uint8, set bool) (uint8, uint16) {
	port := (p >> 3) & 0x0F
	if set {
		s.digitalOutput[port] |= 1 << (p & 0x07)
	} else {
		s.digitalOutput[port] &^= 1 << (p & 0x07)
	}
	return port, s.digitalOutput[port]
}

func (s *state) analogMapping() AnalogMapping {
	m := AnalogMapping{PinToChannel: map[uint8]uint8{}}
	for p, ch := range s.analogChannel {
		if ch == AnalogChannelNone {
			continue
		}
		m.PinToChannel[uint8(p)] = ch
		for int(ch) >= len(m.ChannelToPin) {
			m.ChannelToPin = append(m.ChannelToPin, AnalogChannelNone)
		}
		m.ChannelToPin[ch] = uint8(p)
	}
	return m
}
