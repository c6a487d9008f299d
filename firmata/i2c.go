// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"fmt"
)

// Bits of the second byte of an I2C request.
const (
	I2CRestartTransmission uint8 = 0b01000000
	I2CTenBitAddress       uint8 = 0b00100000
	I2CModeMask            uint8 = 0b00011000
)

// MaxI2CAddress is the largest 10 bits address. Addresses above 0x7F are
// sent in 10 bits mode.
const MaxI2CAddress uint16 = 0x3FF

type I2CMode uint8

const (
	I2CModeWrite            I2CMode = 0b00000000
	I2CModeRead             I2CMode = 0b00001000
	I2CModeReadContinuously I2CMode = 0b00010000
	I2CModeStopReading      I2CMode = 0b00011000
)

// I2CRequest is a read or write request to a device on the board's I2C bus.
// Replies to reads are stored by the client under RegisterKey{Address,
// Register}.
type I2CRequest struct {
	Address uint16
	Mode    I2CMode
	Restart bool

	// HasRegister sends Register ahead of Length on reads.
	HasRegister bool
	Register    uint16
	// Length is the number of bytes to read.
	Length uint16

	// Data is written on I2CModeWrite.
	Data []byte
}

// Payload returns the sysex body of the request.
func (r *I2CRequest) Payload() ([]byte, error) {
	if r.Address > MaxI2CAddress {
		return nil, fmt.Errorf("%w: i2c address 0x%X, max 0x%X", ErrInvalidArgument, r.Address, MaxI2CAddress)
	}
	if byte(r.Mode)&^I2CModeMask != 0 {
		return nil, fmt.Errorf("%w: i2c mode 0x%02X", ErrInvalidArgument, byte(r.Mode))
	}

	mode := byte(r.Mode)
	if r.Restart {
		mode |= I2CRestartTransmission
	}
	if r.Address > uint16(MaxUInt7) {
		mode |= I2CTenBitAddress | byte(r.Address>>7)&0x07
	}
	payload := []byte{byte(SysExI2CRequest), byte(r.Address) & SevenBitMask, mode}

	switch r.Mode {
	case I2CModeWrite:
		payload = append(payload, ByteSliceToTwoByteRepresentation(r.Data)...)
	case I2CModeRead, I2CModeReadContinuously:
		if r.HasRegister {
			if r.Register > MaxUInt14 {
				return nil, fmt.Errorf("%w: i2c register 0x%X", ErrInvalidArgument, r.Register)
			}
			lsb, msb := WordToTwoByte(r.Register)
			payload = append(payload, lsb, msb)
		}
		if r.Length > MaxUInt14 {
			return nil, fmt.Errorf("%w: i2c read of %d bytes, max %d", ErrInvalidArgument, r.Length, MaxUInt14)
		}
		lsb, msb := WordToTwoByte(r.Length)
		payload = append(payload, lsb, msb)
	}
	return payload, nil
}

// I2CWritePayload writes data to the device at address.
func I2CWritePayload(address uint16, data []byte) ([]byte, error) {
	r := I2CRequest{Address: address, Mode: I2CModeWrite, Data: data}
	return r.Payload()
}

// I2CReadRegisterPayload reads length bytes once, starting at register.
func I2CReadRegisterPayload(address, register, length uint16) ([]byte, error) {
	r := I2CRequest{Address: address, Mode: I2CModeRead, HasRegister: true, Register: register, Length: length}
	return r.Payload()
}

// I2CStopReadingPayload stops a continuous read on address.
func I2CStopReadingPayload(address uint16) ([]byte, error) {
	r := I2CRequest{Address: address, Mode: I2CModeStopReading}
	return r.Payload()
}

// I2CConfigPayload sets the delay between writing the register and reading
// the data.
func I2CConfigPayload(delayMicroseconds uint16) ([]byte, error) {
	if delayMicroseconds > MaxUInt14 {
		return nil, fmt.Errorf("%w: i2c delay %dµs, max %d", ErrInvalidArgument, delayMicroseconds, MaxUInt14)
	}
	lsb, msb := WordToTwoByte(delayMicroseconds)
	return []byte{byte(SysExI2CConfig), lsb, msb}, nil
}
