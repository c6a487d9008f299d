// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// dispatch interprets a complete sysex payload. data[0] is the command and
// data aliases the parser buffer, so anything kept must be copied.
//
// Unknown commands are ignored.
func (p *parser) dispatch(data []byte, s *state) (Event, error) {
	if len(data) == 0 {
		return nil, nil
	}

	cmd := SysExCmd(data[0])
	switch cmd {
	case SysExAnalogMappingResponse:
		s.setAnalogMapping(data[1:])
		return AnalogMappingReceived{Mapping: s.analogMapping()}, nil
	case SysExAccelStepperData:
		return p.dispatchStepper(data, s)
	case SysExI2CReply:
		return p.dispatchI2CReply(data, s)
	case SysExCapabilityResponse:
		c, err := parseCapabilities(data[1:])
		if err != nil {
			return nil, p.malformed(cmd, err)
		}
		s.capabilities = c
		return CapabilitiesReceived{Capabilities: c}, nil
	case SysExPinStateResponse:
		ps, err := parsePinState(data[1:])
		if err != nil {
			return nil, p.malformed(cmd, err)
		}
		if ps.Mode.Valid() {
			s.pinModes[ps.Pin] = ps.Mode
		}
		return PinStateReceived{State: ps}, nil
	case SysExReportFirmware:
		r, err := parseFirmwareReport(data[1:])
		if err != nil {
			return nil, p.malformed(cmd, err)
		}
		s.firmware = r
		p.log.WithField("firmware", r).Debug("firmata: firmware reported")
		return FirmwareReported{Report: r}, nil
	case SysExStringData:
		text := TwoByteString(data[1:])
		p.log.WithField("text", text).Debug("firmata: string received")
		return StringReceived{Text: text}, nil
	}

	p.log.WithFields(logrus.Fields{
		"cmd":  fmt.Sprintf("0x%02X", data[0]),
		"size": len(data),
	}).Debug("firmata: ignoring sysex")
	return nil, nil
}

// Stepper replies are [0x62, sub command, index, position...], the position
// being 5 bytes of signed 32.
func (p *parser) dispatchStepper(data []byte, s *state) (Event, error) {
	if len(data) < 3 {
		return nil, p.malformed(SysExAccelStepperData, fmt.Errorf("%w: %d bytes", ErrMalformedMessage, len(data)))
	}
	idx := data[2]
	if idx >= MaxSteppers {
		return nil, p.malformed(SysExAccelStepperData, fmt.Errorf("%w: stepper %d", ErrMalformedMessage, idx))
	}
	pos, hasPos := int32(0), false
	if len(data) >= 3+Signed32Size {
		pos, _ = DecodeSigned32(data[3 : 3+Signed32Size])
		hasPos = true
	}

	switch StepperCmd(data[1]) {
	case StepperCmdMoveComplete:
		s.steppers[idx] = StepperIdle
		if hasPos {
			s.stepperPos[idx] = pos
		}
		return StepperCompleted{Index: idx, Position: pos, HasPosition: hasPos}, nil
	case StepperCmdReportPosition:
		if !hasPos {
			return nil, p.malformed(SysExAccelStepperData, fmt.Errorf("%w: position report without position", ErrMalformedMessage))
		}
		s.stepperPos[idx] = pos
		return StepperPositionReported{Index: idx, Position: pos}, nil
	}
	return nil, nil
}

// I2C replies are [0x77, address lsb, address msb, register lsb, register msb,
// then one lsb/msb pair per value]. A trailing odd byte is ignored.
func (p *parser) dispatchI2CReply(data []byte, s *state) (Event, error) {
	if len(data) < 5 {
		return nil, p.malformed(SysExI2CReply, fmt.Errorf("%w: i2c reply needs 5 bytes, got %d", ErrMalformedMessage, len(data)))
	}
	k := RegisterKey{
		Address:  TwoByteToWord(data[1], data[2]),
		Register: TwoByteToWord(data[3], data[4]),
	}
	values := make([]uint16, 0, (len(data)-5)/2)
	for i := 5; i+1 < len(data); i += 2 {
		values = append(values, TwoByteToWord(data[i], data[i+1]))
	}
	s.setRegister(k, values)
	return ExtensionReplyReceived{Key: k, Values: values}, nil
}

func (p *parser) malformed(cmd SysExCmd, err error) error {
	p.log.WithField("cmd", cmd).WithError(err).Warn("firmata: dropping sysex")
	return err
}
