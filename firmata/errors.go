// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"errors"
)

var (
	// ErrInvalidArgument is returned by the encoder when an index or a value
	// cannot be represented on the wire. Nothing is written in that case.
	ErrInvalidArgument = errors.New("firmata: invalid argument")
	// ErrSysExOverflow is returned by Feed when a sysex message grows past
	// MaxSysExSize. The message is discarded.
	ErrSysExOverflow = errors.New("firmata: sysex buffer overflow")
	// ErrMalformedMessage is returned by Feed when a known sysex reply is too
	// short or references an index out of range.
	ErrMalformedMessage = errors.New("firmata: malformed message")
	// ErrDeviceDisconnected is returned when the byte stream ends.
	ErrDeviceDisconnected = errors.New("firmata: device disconnected")
)
