// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"fmt"
)

// DCCmd is the second byte of a DC output sysex.
type DCCmd uint8

const (
	DCCmdConfig  DCCmd = 0x00
	DCCmdOn      DCCmd = 0x01
	DCCmdOff     DCCmd = 0x02
	DCCmdBrake   DCCmd = 0x03
	DCCmdInverse DCCmd = 0x04
	DCCmdDir     DCCmd = 0x05
	DCCmdSpeed   DCCmd = 0x06
)

// MaxDCOutputs is the number of DC outputs. They are labelled 1 to 8 on the
// board and indexed 0 to 7 on the wire.
const MaxDCOutputs = 8

// DCPayload returns a DC output command without argument: DCCmdOn, DCCmdOff,
// DCCmdBrake or DCCmdInverse.
func DCPayload(index uint8, cmd DCCmd) ([]byte, error) {
	switch cmd {
	case DCCmdOn, DCCmdOff, DCCmdBrake, DCCmdInverse:
	default:
		return nil, fmt.Errorf("%w: dc command %d takes a value", ErrInvalidArgument, cmd)
	}
	if err := checkDCOutput(index); err != nil {
		return nil, err
	}
	return []byte{byte(SysExDCRequest), byte(cmd), index}, nil
}

// DCDirectionPayload sets the direction of an output, 0 or 1.
func DCDirectionPayload(index, dir uint8) ([]byte, error) {
	if dir > 1 {
		return nil, fmt.Errorf("%w: dc direction %d", ErrInvalidArgument, dir)
	}
	return dcValuePayload(index, DCCmdDir, dir)
}

// DCSpeedPayload sets the power of an output, 0 to 127.
func DCSpeedPayload(index, power uint8) ([]byte, error) {
	return dcValuePayload(index, DCCmdSpeed, power)
}

func dcValuePayload(index uint8, cmd DCCmd, v uint8) ([]byte, error) {
	if err := checkDCOutput(index); err != nil {
		return nil, err
	}
	if v > MaxUInt7 {
		return nil, fmt.Errorf("%w: dc value %d, max %d", ErrInvalidArgument, v, MaxUInt7)
	}
	return []byte{byte(SysExDCRequest), byte(cmd), index, v}, nil
}

func checkDCOutput(index uint8) error {
	if index >= MaxDCOutputs {
		return fmt.Errorf("%w: dc output %d, max %d", ErrInvalidArgument, index, MaxDCOutputs-1)
	}
	return nil
}
