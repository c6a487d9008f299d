// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package firmata implements the host side of the Firmata protocol as spoken
// by the Interfaz board firmware.
//
// A Client decodes the byte stream received from the board, one byte at a
// time with Feed, into a cache of the board state and a sequence of events.
// It also encodes commands into a ByteSink. The Client does no I/O of its
// own: see package firmataserial for a serial port transport.
//
// Extension commands (AccelStepper, I2C, LCD, DC outputs) are built as sysex
// payloads by the *Payload functions and sent with Client.SendSysEx.
//
// More details
//
// See https://github.com/firmata/protocol for the protocol description.
package firmata
