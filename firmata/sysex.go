// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

type SysExCmd uint8

// Base Features
const (
	SysExAnalogMappingQuery    SysExCmd = 0x69 // ask for mapping of analog pin names to pin numbers
	SysExAnalogMappingResponse SysExCmd = 0x6A // reply with mapping info
	SysExCapabilityQuery       SysExCmd = 0x6B // ask for supported modes and resolution of all pins
	SysExCapabilityResponse    SysExCmd = 0x6C // reply with supported modes and resolution
	SysExPinStateQuery         SysExCmd = 0x6D // ask for a pin's current mode and state (different from value)
	SysExPinStateResponse      SysExCmd = 0x6E // reply with a pin's current mode and state (different from value)
	SysExExtendedAnalog        SysExCmd = 0x6F // analog write (PWM, Servo, etc.) to any pin
	SysExServoConfig           SysExCmd = 0x70 // set max angle, minPulse, maxPulse, freq
	SysExStringData            SysExCmd = 0x71 // a string message with 14-bits per char
	SysExShiftData             SysExCmd = 0x75 // a bitstream to/from a shift register
	SysExReportFirmware        SysExCmd = 0x79 // report name and version of the firmware
	SysExSamplingInterval      SysExCmd = 0x7A // the interval at which analog input is sampled (default = 19ms)
	SysExNonRealtime           SysExCmd = 0x7E // MIDI Reserved for non-realtime messages
	SysExRealtime              SysExCmd = 0x7F // MIDI Reserved for realtime messages
)

// Extensions understood by the Interfaz firmware.
//
// The DC output and LCD features use user defined feature codes 0x02 and 0x03.
const (
	SysExDCRequest        SysExCmd = 0x02
	SysExLCDRequest       SysExCmd = 0x03
	SysExAccelStepperData SysExCmd = 0x62 // https://github.com/firmata/protocol/blob/master/accelStepperFirmata.md
	SysExI2CRequest       SysExCmd = 0x76 // https://github.com/firmata/protocol/blob/master/i2c.md
	SysExI2CReply         SysExCmd = 0x77 // https://github.com/firmata/protocol/blob/master/i2c.md
	SysExI2CConfig        SysExCmd = 0x78 // https://github.com/firmata/protocol/blob/master/i2c.md
)

var sysExCmdToStringMap = map[SysExCmd]string{
	SysExAnalogMappingQuery:    "AnalogMappingQuery",
	SysExAnalogMappingResponse: "AnalogMappingResponse",
	SysExCapabilityQuery:       "CapabilityQuery",
	SysExCapabilityResponse:    "CapabilityResponse",
	SysExPinStateQuery:         "PinStateQuery",
	SysExPinStateResponse:      "PinStateResponse",
	SysExExtendedAnalog:        "ExtendedAnalog",
	SysExServoConfig:           "ServoConfig",
	SysExStringData:            "StringData",
	SysExShiftData:             "ShiftData",
	SysExReportFirmware:        "ReportFirmware",
	SysExSamplingInterval:      "SamplingInterval",
	SysExNonRealtime:           "NonRealtime",
	SysExRealtime:              "Realtime",
	SysExDCRequest:             "DCRequest",
	SysExLCDRequest:            "LCDRequest",
	SysExAccelStepperData:      "AccelStepperData",
	SysExI2CRequest:            "I2CRequest",
	SysExI2CReply:              "I2CReply",
	SysExI2CConfig:             "I2CConfig",
}

func (s SysExCmd) String() string {
	if v, ok := sysExCmdToStringMap[s]; ok {
		return v
	}

	return "Unknown"
}
