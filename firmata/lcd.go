// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"fmt"
	"unicode/utf8"
)

// LCDCmd is the second byte of an LCD sysex.
type LCDCmd uint8

const (
	LCDCmdPrint LCDCmd = 0x00
	LCDCmdPush  LCDCmd = 0x01
	LCDCmdClear LCDCmd = 0x02
)

// LCDColumns is the width of a row of the character LCD.
const LCDColumns = 16

// LCDClearPayload clears the screen.
func LCDClearPayload() []byte {
	return []byte{byte(SysExLCDRequest), byte(LCDCmdClear)}
}

// LCDPrintPayload replaces the content of row with text.
func LCDPrintPayload(row uint8, text string) ([]byte, error) {
	if row > MaxUInt7 {
		return nil, fmt.Errorf("%w: lcd row %d", ErrInvalidArgument, row)
	}
	if err := checkLCDText(text); err != nil {
		return nil, err
	}
	return append([]byte{byte(SysExLCDRequest), byte(LCDCmdPrint), row}, StringToTwoByteRepresentation(text)...), nil
}

// LCDPushPayload scrolls the screen up one row and writes text on the last
// row.
func LCDPushPayload(text string) ([]byte, error) {
	if err := checkLCDText(text); err != nil {
		return nil, err
	}
	return append([]byte{byte(SysExLCDRequest), byte(LCDCmdPush)}, StringToTwoByteRepresentation(text)...), nil
}

func checkLCDText(text string) error {
	if n := utf8.RuneCountInString(text); n > LCDColumns {
		return fmt.Errorf("%w: lcd text of %d chars, max %d", ErrInvalidArgument, n, LCDColumns)
	}
	return nil
}
