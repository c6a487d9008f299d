// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

type (
	MessageType uint8
)

const (
	AnalogIOMessage    MessageType = 0xE0 // pin #	LSB(bits 0-6)	MSB(bits 7-13)
	DigitalIOMessage   MessageType = 0x90 // port	LSB(bits 0-6)	MSB(bits 7-13)
	ReportAnalogPin    MessageType = 0xC0 // pin #	disable/enable(0/1)	- n/a -
	ReportDigitalPort  MessageType = 0xD0 // port	disable/enable(0/1)	- n/a -
	StartSysEx         MessageType = 0xF0 //
	SetPinMode         MessageType = 0xF4 // pin # (0-127)	pin mode
	SetDigitalPinValue MessageType = 0xF5 // pin # (0-127)	pin value(0/1)
	EndSysEx           MessageType = 0xF7 //
	ProtocolVersion    MessageType = 0xF9 // major version	minor version
	SystemReset        MessageType = 0xFF //
)

var messageTypeToStringMap = map[MessageType]string{
	AnalogIOMessage:    "AnalogIOMessage",
	DigitalIOMessage:   "DigitalIOMessage",
	ReportAnalogPin:    "ReportAnalogPin",
	ReportDigitalPort:  "ReportDigitalPort",
	StartSysEx:         "StartSysEx",
	SetPinMode:         "SetPinMode",
	SetDigitalPinValue: "SetDigitalPinValue",
	EndSysEx:           "EndSysEx",
	ProtocolVersion:    "ProtocolVersion",
	SystemReset:        "SystemReset",
}

// command returns the message type carried by a status byte and the channel
// in its low nibble. Bytes in the 0xF0 range carry no channel.
func command(b byte) (MessageType, uint8) {
	if b < byte(StartSysEx) {
		return MessageType(b & 0xF0), b & 0x0F
	}
	return MessageType(b), 0
}

func (m MessageType) String() string {
	switch {
	case AnalogIOMessage <= m && m <= (AnalogIOMessage+0xF):
		return messageTypeToStringMap[AnalogIOMessage]
	case DigitalIOMessage <= m && m <= (DigitalIOMessage+0xF):
		return messageTypeToStringMap[DigitalIOMessage]
	case ReportAnalogPin <= m && m <= (ReportAnalogPin+0xF):
		return messageTypeToStringMap[ReportAnalogPin]
	case ReportDigitalPort <= m && m <= (ReportDigitalPort+0xF):
		return messageTypeToStringMap[ReportDigitalPort]
	}

	if v, ok := messageTypeToStringMap[m]; ok {
		return v
	}

	return "Unknown"
}
