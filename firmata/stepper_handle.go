// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"strconv"
)

// Stepper is a handle on one AccelStepper motor of a Client.
//
// Reverse is a host side setting: when set, the steps of relative moves are
// negated before being sent. Absolute moves are not affected.
type Stepper struct {
	Reverse bool

	c     *Client
	index uint8
}

func (s *Stepper) String() string {
	return "stepper" + strconv.Itoa(int(s.index))
}

// Index returns the board index of the stepper.
func (s *Stepper) Index() uint8 {
	return s.index
}

// Step moves the stepper by steps, in the direction set by Reverse.
func (s *Stepper) Step(steps int32) error {
	if s.Reverse {
		steps = -steps
	}
	return s.c.StepperStep(s.index, steps)
}

// To moves the stepper to an absolute position.
func (s *Stepper) To(position int32) error {
	return s.c.StepperTo(s.index, position)
}

// Stop stops the motor. The board answers with a move complete.
func (s *Stepper) Stop() error {
	b, err := StepperStopPayload(s.index)
	if err != nil {
		return err
	}
	return s.c.SendSysEx(b...)
}

// Status returns the motion status last known by the host.
func (s *Stepper) Status() StepperStatus {
	st, _ := s.c.StepperStatus(s.index)
	return st
}

// Position returns the last position reported by the board.
func (s *Stepper) Position() int32 {
	p, _ := s.c.StepperPosition(s.index)
	return p
}
