// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"strconv"

	"periph.io/x/conn/v3/pin"
)

// PinMode is the mode byte sent with SetPinMode and reported by the board.
type PinMode uint8

const (
	PinModeInput       PinMode = 0x0
	PinModeOutput      PinMode = 0x1
	PinModeAnalog      PinMode = 0x2
	PinModePWM         PinMode = 0x3
	PinModeServo       PinMode = 0x4
	PinModeShift       PinMode = 0x5
	PinModeI2C         PinMode = 0x6
	PinModeOneWire     PinMode = 0x7
	PinModeStepper     PinMode = 0x8
	PinModeEncoder     PinMode = 0x9
	PinModeSerial      PinMode = 0xA
	PinModeInputPullUp PinMode = 0xB
	PinModeSPI         PinMode = 0xC
	PinModeSonar       PinMode = 0xD
	PinModeTone        PinMode = 0xE
	PinModeDHT         PinMode = 0xF

	// PinModeUnset is the cached mode of a pin that was never configured.
	// It is never sent on the wire.
	PinModeUnset PinMode = 0x7F
)

const (
	PinFuncDigitalInput  pin.Func = "Digital Input"
	PinFuncDigitalOutput pin.Func = "Digital Output"
	PinFuncAnalogInput   pin.Func = "Analog Input"
	PinFuncPWM           pin.Func = "PWM"
	PinFuncServo         pin.Func = "Servo"
	PinFuncShift         pin.Func = "Shift"
	PinFuncI2C           pin.Func = "I2C"
	PinFuncOneWire       pin.Func = "OneWire"
	PinFuncStepper       pin.Func = "Stepper"
	PinFuncEncoder       pin.Func = "Encoder"
	PinFuncSerial        pin.Func = "Serial"
	PinFuncInputPullUp   pin.Func = "Input Pull-Up"
	PinFuncSPI           pin.Func = "SPI"
	PinFuncSonar         pin.Func = "Sonar"
	PinFuncTone          pin.Func = "Tone"
	PinFuncDHT           pin.Func = "DHT"
)

var pinModeToFunc = [...]pin.Func{
	PinModeInput:       PinFuncDigitalInput,
	PinModeOutput:      PinFuncDigitalOutput,
	PinModeAnalog:      PinFuncAnalogInput,
	PinModePWM:         PinFuncPWM,
	PinModeServo:       PinFuncServo,
	PinModeShift:       PinFuncShift,
	PinModeI2C:         PinFuncI2C,
	PinModeOneWire:     PinFuncOneWire,
	PinModeStepper:     PinFuncStepper,
	PinModeEncoder:     PinFuncEncoder,
	PinModeSerial:      PinFuncSerial,
	PinModeInputPullUp: PinFuncInputPullUp,
	PinModeSPI:         PinFuncSPI,
	PinModeSonar:       PinFuncSonar,
	PinModeTone:        PinFuncTone,
	PinModeDHT:         PinFuncDHT,
}

// Valid reports whether the mode can be sent with SetPinMode.
func (m PinMode) Valid() bool {
	return int(m) < len(pinModeToFunc)
}

// Func returns the periph function matching the mode, or pin.FuncNone.
func (m PinMode) Func() pin.Func {
	if !m.Valid() {
		return pin.FuncNone
	}
	return pinModeToFunc[m]
}

func (m PinMode) String() string {
	if m == PinModeUnset {
		return "Unset"
	}
	if !m.Valid() {
		return "PinMode(" + strconv.Itoa(int(m)) + ")"
	}
	return string(pinModeToFunc[m])
}

// PinModeFromFunc returns the mode matching a periph function.
func PinModeFromFunc(f pin.Func) (PinMode, bool) {
	for m, v := range pinModeToFunc {
		if v == f {
			return PinMode(m), true
		}
	}
	return PinModeUnset, false
}
