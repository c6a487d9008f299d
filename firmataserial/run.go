// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmataserial

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/GermanBionicSystems/interfaz/firmata"
	"github.com/sirupsen/logrus"
)

// readSize is the number of bytes requested from the port per read.
const readSize = 64

// Run feeds the bytes read from r into c until ctx is done or r fails, and
// calls fn for each decoded event. fn may be nil.
//
// Parser errors are logged and do not stop the pump. On io.EOF the client's
// parser is reset and firmata.ErrDeviceDisconnected is returned.
//
// r must honor a read timeout, or be closed, for cancellation to be noticed
// while no byte is received.
func Run(ctx context.Context, r io.Reader, c *firmata.Client, fn func(firmata.Event), log logrus.FieldLogger) error {
	log = logger(log)
	var buf [readSize]byte
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := r.Read(buf[:])
		for _, b := range buf[:n] {
			e, ferr := c.Feed(b)
			if ferr != nil {
				log.WithError(ferr).WithField("byte", fmt.Sprintf("0x%02X", b)).Warn("firmataserial: dropped message")
				continue
			}
			if e != nil {
				log.WithField("event", e).Trace("firmataserial: event")
				if fn != nil {
					fn(e)
				}
			}
		}
		if err != nil {
			c.Reset()
			if errors.Is(err, io.EOF) {
				log.Warn("firmataserial: device disconnected")
				return firmata.ErrDeviceDisconnected
			}
			log.WithError(err).Error("firmataserial: read failed")
			return fmt.Errorf("firmataserial: read: %w", err)
		}
	}
}

// Run pumps the bytes received on the port into c. See the package level
// Run.
func (p *Port) Run(ctx context.Context, c *firmata.Client, fn func(firmata.Event)) error {
	return Run(ctx, p, c, fn, p.log)
}
