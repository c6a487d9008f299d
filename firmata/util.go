// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"fmt"
	"strings"
)

// SevenBitMask keeps the data bits of a byte. Bytes with the high bit set are
// status bytes on the wire.
const SevenBitMask byte = 0b01111111

// Data bytes carry 7 bits, so these are the largest values that fit in one
// and two data bytes.
const (
	MaxUInt7  uint8  = 1<<7 - 1
	MaxUInt14 uint16 = 1<<14 - 1
)

func TwoByteToByte(a, b byte) byte {
	return (a & SevenBitMask) | ((b & SevenBitMask) << 7)
}

func TwoByteToWord(a, b byte) uint16 {
	return uint16(a&SevenBitMask) | (uint16(b&SevenBitMask) << 7)
}

func ByteToTwoByte(b byte) (lsb, msb byte) {
	return b & SevenBitMask, (b >> 7) & SevenBitMask
}

func WordToTwoByte(w uint16) (lsb, msb byte) {
	return byte(w) & SevenBitMask, byte(w>>7) & SevenBitMask
}

// TwoByteString decodes a string sent as two data bytes per character.
func TwoByteString(data []byte) string {
	var s strings.Builder
	for i := 0; i < len(data); i += 2 {
		var msb byte
		if i+1 < len(data) {
			msb = data[i+1]
		}
		s.WriteRune(rune(TwoByteToWord(data[i], msb)))
	}
	return s.String()
}

// StringToTwoByteRepresentation encodes each rune of s as two data bytes.
//
// Runes above 14 bits are truncated.
func StringToTwoByteRepresentation(s string) []byte {
	d := make([]byte, 0, 2*len(s))
	for _, r := range s {
		lsb, msb := WordToTwoByte(uint16(r))
		d = append(d, lsb, msb)
	}
	return d
}

func TwoByteRepresentationToByteSlice(data []byte) []byte {
	d := make([]byte, (len(data)+1)/2)
	for i := range d {
		var msb byte
		if 2*i+1 < len(data) {
			msb = data[2*i+1]
		}
		d[i] = TwoByteToByte(data[2*i], msb)
	}
	return d
}

func ByteSliceToTwoByteRepresentation(data []byte) []byte {
	d := make([]byte, len(data)*2)
	for i, b := range data {
		d[2*i], d[2*i+1] = ByteToTwoByte(b)
	}
	return d
}

func SprintHexArray(data []byte) string {
	var s strings.Builder
	for i, b := range data {
		if i != 0 {
			s.WriteByte(' ')
		}
		fmt.Fprintf(&s, "0x%02X", b)
	}
	return s.String()
}

// isSevenBit reports whether every byte of data is a data byte.
func isSevenBit(data []byte) bool {
	for _, b := range data {
		if b > MaxUInt7 {
			return false
		}
	}
	return true
}
