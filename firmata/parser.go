// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// parser reassembles messages from the incoming byte stream, one byte at a
// time.
//
// Two data byte messages are stored in buf in reverse arrival order, so
// buf[0] holds the last byte received.
type parser struct {
	log logrus.FieldLogger

	pending int
	active  MessageType
	channel uint8

	inSysEx  bool
	overflow bool
	n        int
	buf      [MaxSysExSize]byte
}

func (p *parser) reset() {
	p.pending = 0
	p.active = 0
	p.channel = 0
	p.inSysEx = false
	p.overflow = false
	p.n = 0
}

// feed consumes b and returns the event of the message it completes, if
// any. Errors leave the parser in a state where feeding can continue.
func (p *parser) feed(b byte, s *state) (Event, error) {
	if p.inSysEx {
		return p.feedSysEx(b, s)
	}

	if p.pending > 0 && b <= MaxUInt7 {
		p.pending--
		p.buf[p.pending] = b
		if p.pending == 0 {
			return p.complete(s), nil
		}
		return nil, nil
	}

	// A status byte always starts over, even in the middle of a message.
	p.pending = 0
	p.active = 0
	cmd, ch := command(b)
	switch cmd {
	case DigitalIOMessage, AnalogIOMessage, ProtocolVersion:
		p.pending = 2
		p.active = cmd
		p.channel = ch
	case StartSysEx:
		p.inSysEx = true
		p.overflow = false
		p.n = 0
	}
	return nil, nil
}

func (p *parser) feedSysEx(b byte, s *state) (Event, error) {
	if b == byte(EndSysEx) {
		p.inSysEx = false
		if p.overflow {
			p.overflow = false
			return nil, nil
		}
		return p.dispatch(p.buf[:p.n], s)
	}

	if p.overflow {
		// Drop everything up to the end of the oversized message, or up to
		// the start of a new one.
		if b == byte(StartSysEx) {
			p.overflow = false
			p.n = 0
		}
		return nil, nil
	}

	if p.n == len(p.buf) {
		p.overflow = true
		p.n = 0
		p.log.WithField("limit", MaxSysExSize).Warn("firmata: sysex overflow, discarding message")
		return nil, fmt.Errorf("%w: more than %d bytes", ErrSysExOverflow, MaxSysExSize)
	}
	p.buf[p.n] = b
	p.n++
	return nil, nil
}

func (p *parser) complete(s *state) Event {
	active := p.active
	p.active = 0
	v := uint16(p.buf[0])<<7 + uint16(p.buf[1])
	switch active {
	case DigitalIOMessage:
		s.digitalInput[p.channel] = v
		return DigitalPortChanged{Port: p.channel, Value: v}
	case AnalogIOMessage:
		s.analogInput[p.channel] = v
		return AnalogChannelChanged{Channel: p.channel, Value: v}
	case ProtocolVersion:
		// The major version comes first on the wire.
		s.version = Version{Major: p.buf[1], Minor: p.buf[0]}
		return VersionReported{Version: s.version}
	}
	return nil
}
