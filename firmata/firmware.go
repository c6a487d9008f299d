// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"fmt"
)

// FirmwareReport is the name and version of the sketch running on the board.
type FirmwareReport struct {
	Major uint8
	Minor uint8
	Name  string
}

func parseFirmwareReport(data []byte) (FirmwareReport, error) {
	if len(data) < 2 {
		return FirmwareReport{}, fmt.Errorf("%w: firmware report needs 2 bytes, got %d", ErrMalformedMessage, len(data))
	}
	return FirmwareReport{
		Major: data[0],
		Minor: data[1],
		Name:  TwoByteString(data[2:]),
	}, nil
}

func (r FirmwareReport) String() string {
	return fmt.Sprintf("%s [%d.%d]", r.Name, r.Major, r.Minor)
}
