// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"fmt"
)

// Event is a decoded incoming message, returned by Client.Feed once the last
// byte of the message was consumed.
//
// The concrete type is one of the types below.
type Event interface {
	fmt.Stringer
	event()
}

// DigitalPortChanged reports the input bitmask of a port.
type DigitalPortChanged struct {
	Port  uint8
	Value uint16
}

// AnalogChannelChanged reports a 14 bits reading of an analog channel.
type AnalogChannelChanged struct {
	Channel uint8
	Value   uint16
}

// VersionReported reports the protocol version.
type VersionReported struct {
	Version Version
}

// ExtensionReplyReceived reports the values read from an extension device
// register. Values is a copy owned by the receiver.
type ExtensionReplyReceived struct {
	Key    RegisterKey
	Values []uint16
}

// StepperCompleted reports that a stepper finished its move.
//
// HasPosition is false when the board did not send the final position.
type StepperCompleted struct {
	Index       uint8
	Position    int32
	HasPosition bool
}

// StepperPositionReported replies to a stepper position request.
type StepperPositionReported struct {
	Index    uint8
	Position int32
}

// AnalogMappingReceived reports a new pin to analog channel mapping.
type AnalogMappingReceived struct {
	Mapping AnalogMapping
}

// CapabilitiesReceived reports the modes supported by each pin.
type CapabilitiesReceived struct {
	Capabilities Capabilities
}

// PinStateReceived replies to a pin state query.
type PinStateReceived struct {
	State PinState
}

// FirmwareReported reports the firmware name and version.
type FirmwareReported struct {
	Report FirmwareReport
}

// StringReceived is a text message sent by the firmware.
type StringReceived struct {
	Text string
}

func (DigitalPortChanged) event()      {}
func (AnalogChannelChanged) event()    {}
func (VersionReported) event()         {}
func (ExtensionReplyReceived) event()  {}
func (StepperCompleted) event()        {}
func (StepperPositionReported) event() {}
func (AnalogMappingReceived) event()   {}
func (CapabilitiesReceived) event()    {}
func (PinStateReceived) event()        {}
func (FirmwareReported) event()        {}
func (StringReceived) event()          {}

func (e DigitalPortChanged) String() string {
	return fmt.Sprintf("port %d = 0b%08b", e.Port, e.Value)
}

func (e AnalogChannelChanged) String() string {
	return fmt.Sprintf("A%d = %d", e.Channel, e.Value)
}

func (e VersionReported) String() string {
	return "protocol " + e.Version.String()
}

func (e ExtensionReplyReceived) String() string {
	return fmt.Sprintf("reply %s = %v", e.Key, e.Values)
}

func (e StepperCompleted) String() string {
	if !e.HasPosition {
		return fmt.Sprintf("stepper %d done", e.Index)
	}
	return fmt.Sprintf("stepper %d done at %d", e.Index, e.Position)
}

func (e StepperPositionReported) String() string {
	return fmt.Sprintf("stepper %d at %d", e.Index, e.Position)
}

func (e AnalogMappingReceived) String() string {
	return fmt.Sprintf("analog mapping of %d channels", len(e.Mapping.ChannelToPin))
}

func (e CapabilitiesReceived) String() string {
	return fmt.Sprintf("capabilities of %d pins", len(e.Capabilities))
}

func (e PinStateReceived) String() string {
	return e.State.String()
}

func (e FirmwareReported) String() string {
	return "firmware " + e.Report.String()
}

func (e StringReceived) String() string {
	return fmt.Sprintf("device: [%s]", e.Text)
}
