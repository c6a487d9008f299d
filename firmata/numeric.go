// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"fmt"
	"math"
)

const (
	// Signed32Size is the number of data bytes of an encoded 32 bits integer.
	Signed32Size = 5
	// CustomFloatSize is the number of data bytes of an encoded custom float.
	CustomFloatSize = 4

	// maxSignificand is the largest significand of a custom float, 2^23.
	maxSignificand = 1 << 23
	// exponentBias is added to the base 10 exponent of a custom float.
	exponentBias = 11
)

// EncodeSigned32 encodes v as used by the AccelStepper extension: the
// magnitude in 7 bit groups, least significant first, with the sign carried
// in bit 3 of the last byte.
//
// math.MinInt32 has no representable magnitude and is rejected.
func EncodeSigned32(v int32) ([]byte, error) {
	if v == math.MinInt32 {
		return nil, fmt.Errorf("%w: %d has no 31 bits magnitude", ErrInvalidArgument, v)
	}
	negative := v < 0
	if negative {
		v = -v
	}
	encoded := []byte{
		byte(v & 0x7F),
		byte((v >> 7) & 0x7F),
		byte((v >> 14) & 0x7F),
		byte((v >> 21) & 0x7F),
		byte((v >> 28) & 0x07),
	}
	if negative {
		encoded[4] |= 0x08
	}
	return encoded, nil
}

// DecodeSigned32 is the inverse of EncodeSigned32.
func DecodeSigned32(data []byte) (int32, error) {
	if len(data) != Signed32Size {
		return 0, fmt.Errorf("%w: signed 32 needs %d bytes, got %d", ErrInvalidArgument, Signed32Size, len(data))
	}
	v := int32(data[0]&0x7F) |
		int32(data[1]&0x7F)<<7 |
		int32(data[2]&0x7F)<<14 |
		int32(data[3]&0x7F)<<21 |
		int32(data[4]&0x07)<<28
	if data[4]&0x08 != 0 {
		v = -v
	}
	return v, nil
}

// EncodeCustomFloat encodes v in the AccelStepper float format: a 23 bits
// significand, a 4 bits exponent biased by 11 and a sign bit.
//
// The encoding is lossy. The decimal point is shifted right until the
// significand is integral or reaches 2^23, then precision is dropped until
// it fits. Integral values with an exponent above 4 are shifted back into
// the significand while it stays below 2^23, so 100000 encodes as 10e4.
// Values that still need an exponent outside -11..4 are rejected: the range
// is about 1e-11 to 8.3e10. Zero encodes to four zero bytes.
func EncodeCustomFloat(v float64) ([]byte, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, v)
	}
	if v == 0 {
		return make([]byte, CustomFloatSize), nil
	}
	var sign int32
	if v < 0 {
		sign = 1
	}
	input := math.Abs(v)

	base10 := math.Floor(math.Log10(input))
	exponent := int32(base10)
	input /= math.Pow(10, base10)

	for input-math.Floor(input) > 0 && input < maxSignificand {
		exponent--
		input *= 10
	}
	for input > maxSignificand {
		exponent++
		input /= 10
	}
	significand := int32(math.Floor(input))
	exponent += exponentBias
	for exponent > 0x0F && significand*10 < maxSignificand {
		exponent--
		significand *= 10
	}
	if exponent < 0 || exponent > 0x0F {
		return nil, fmt.Errorf("%w: %v exponent out of range", ErrInvalidArgument, v)
	}

	return []byte{
		byte(significand & 0x7F),
		byte((significand >> 7) & 0x7F),
		byte((significand >> 14) & 0x7F),
		byte((significand>>21)&0x03 | (exponent&0x0F)<<2 | (sign&0x01)<<6),
	}, nil
}

// DecodeCustomFloat is the inverse of EncodeCustomFloat.
func DecodeCustomFloat(data []byte) (float64, error) {
	if len(data) != CustomFloatSize {
		return 0, fmt.Errorf("%w: custom float needs %d bytes, got %d", ErrInvalidArgument, CustomFloatSize, len(data))
	}
	significand := int32(data[0]&0x7F) |
		int32(data[1]&0x7F)<<7 |
		int32(data[2]&0x7F)<<14 |
		int32(data[3]&0x03)<<21
	exponent := int32((data[3]>>2)&0x0F) - exponentBias
	v := float64(significand)
	if exponent < 0 {
		// Powers of ten up to 1e22 are exact, negative ones are not.
		v /= math.Pow(10, float64(-exponent))
	} else {
		v *= math.Pow(10, float64(exponent))
	}
	if (data[3]>>6)&0x01 == 1 {
		v = -v
	}
	return v, nil
}
