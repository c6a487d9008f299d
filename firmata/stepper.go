// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"fmt"
)

// StepperCmd is the second byte of an AccelStepper sysex.
type StepperCmd uint8

const (
	StepperCmdConfig          StepperCmd = 0x00
	StepperCmdZero            StepperCmd = 0x01
	StepperCmdStep            StepperCmd = 0x02
	StepperCmdTo              StepperCmd = 0x03
	StepperCmdEnable          StepperCmd = 0x04
	StepperCmdStop            StepperCmd = 0x05
	StepperCmdReportPosition  StepperCmd = 0x06
	StepperCmdSetAcceleration StepperCmd = 0x08
	StepperCmdSetSpeed        StepperCmd = 0x09
	StepperCmdMoveComplete    StepperCmd = 0x0A
)

// StepperInterface is the wiring of a stepper, in bits 4-6 of the interface
// byte.
type StepperInterface uint8

const (
	StepperDriver    StepperInterface = 0x10 // step + direction
	StepperTwoWire   StepperInterface = 0x20
	StepperThreeWire StepperInterface = 0x30
	StepperFourWire  StepperInterface = 0x40
)

func (i StepperInterface) pins() int {
	switch i {
	case StepperDriver, StepperTwoWire:
		return 2
	case StepperThreeWire:
		return 3
	case StepperFourWire:
		return 4
	}
	return 0
}

// StepSize is the step resolution, in bits 1-3 of the interface byte.
type StepSize uint8

const (
	StepWhole   StepSize = 0x00
	StepHalf    StepSize = 0x02
	StepQuarter StepSize = 0x04
)

// StepperConfig describes how a stepper is wired to the board.
type StepperConfig struct {
	Interface StepperInterface
	StepSize  StepSize
	// Pins are the motor pins, 2 to 4 depending on Interface.
	Pins         []uint8
	HasEnablePin bool
	EnablePin    uint8
	// Invert is a bitmask of pins to invert, bit 0 for Pins[0] and bit 4 for
	// EnablePin.
	Invert uint8
}

// StepperConfigPayload returns the sysex that declares stepper index.
func StepperConfigPayload(index uint8, cfg *StepperConfig) ([]byte, error) {
	if err := checkStepper(index); err != nil {
		return nil, err
	}
	n := cfg.Interface.pins()
	if n == 0 {
		return nil, fmt.Errorf("%w: stepper interface 0x%02X", ErrInvalidArgument, byte(cfg.Interface))
	}
	if len(cfg.Pins) != n {
		return nil, fmt.Errorf("%w: stepper interface 0x%02X needs %d pins, got %d", ErrInvalidArgument, byte(cfg.Interface), n, len(cfg.Pins))
	}
	switch cfg.StepSize {
	case StepWhole, StepHalf, StepQuarter:
	default:
		return nil, fmt.Errorf("%w: step size 0x%02X", ErrInvalidArgument, byte(cfg.StepSize))
	}
	if cfg.Invert > 0x1F {
		return nil, fmt.Errorf("%w: invert mask 0x%02X", ErrInvalidArgument, cfg.Invert)
	}

	iface := byte(cfg.Interface) | byte(cfg.StepSize)
	if cfg.HasEnablePin {
		iface |= 0x01
	}
	payload := []byte{byte(SysExAccelStepperData), byte(StepperCmdConfig), index, iface}
	for _, p := range cfg.Pins {
		if err := checkPin(p); err != nil {
			return nil, err
		}
		payload = append(payload, p)
	}
	if cfg.HasEnablePin {
		if err := checkPin(cfg.EnablePin); err != nil {
			return nil, err
		}
		payload = append(payload, cfg.EnablePin)
	}
	if cfg.Invert != 0 {
		payload = append(payload, cfg.Invert)
	}
	return payload, nil
}

// StepperZeroPayload resets the current position to zero without moving.
func StepperZeroPayload(index uint8) ([]byte, error) {
	return stepperPayload(index, StepperCmdZero)
}

// StepperStepPayload moves by steps relative to the current position.
func StepperStepPayload(index uint8, steps int32) ([]byte, error) {
	return stepperIntPayload(index, StepperCmdStep, steps)
}

// StepperToPayload moves to an absolute position.
func StepperToPayload(index uint8, position int32) ([]byte, error) {
	return stepperIntPayload(index, StepperCmdTo, position)
}

// StepperEnablePayload drives the enable pin of the stepper driver.
func StepperEnablePayload(index uint8, enable bool) ([]byte, error) {
	return stepperPayload(index, StepperCmdEnable, boolToByte(enable))
}

// StepperStopPayload stops the motor. The board replies with a move complete
// notification.
func StepperStopPayload(index uint8) ([]byte, error) {
	return stepperPayload(index, StepperCmdStop)
}

// StepperReportPositionPayload asks for the current position.
func StepperReportPositionPayload(index uint8) ([]byte, error) {
	return stepperPayload(index, StepperCmdReportPosition)
}

// StepperAccelerationPayload sets the acceleration in steps/s².
//
// accel must be encodable by EncodeCustomFloat, 0 or between about 1e-11 and
// 8.3e10 in magnitude.
func StepperAccelerationPayload(index uint8, accel float64) ([]byte, error) {
	return stepperFloatPayload(index, StepperCmdSetAcceleration, accel)
}

// StepperSpeedPayload sets the maximum speed in steps/s.
//
// speed has the same range as the acceleration of StepperAccelerationPayload.
func StepperSpeedPayload(index uint8, speed float64) ([]byte, error) {
	return stepperFloatPayload(index, StepperCmdSetSpeed, speed)
}

func stepperPayload(index uint8, cmd StepperCmd, args ...byte) ([]byte, error) {
	if err := checkStepper(index); err != nil {
		return nil, err
	}
	return append([]byte{byte(SysExAccelStepperData), byte(cmd), index}, args...), nil
}

func stepperIntPayload(index uint8, cmd StepperCmd, v int32) ([]byte, error) {
	enc, err := EncodeSigned32(v)
	if err != nil {
		return nil, err
	}
	return stepperPayload(index, cmd, enc...)
}

func stepperFloatPayload(index uint8, cmd StepperCmd, v float64) ([]byte, error) {
	enc, err := EncodeCustomFloat(v)
	if err != nil {
		return nil, err
	}
	return stepperPayload(index, cmd, enc...)
}

func checkStepper(index uint8) error {
	if index >= MaxSteppers {
		return fmt.Errorf("%w: stepper %d, max %d", ErrInvalidArgument, index, MaxSteppers-1)
	}
	return nil
}
