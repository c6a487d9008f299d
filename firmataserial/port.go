// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmataserial

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial"
)

// Opts holds the serial port configuration.
type Opts struct {
	// BaudRate is the line speed. StandardFirmata uses 57600.
	BaudRate int
	// ReadTimeout bounds each read so Run can notice context cancellation.
	ReadTimeout time.Duration
	// Logger defaults to a logger that discards everything.
	Logger logrus.FieldLogger
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	BaudRate:    57600,
	ReadTimeout: 100 * time.Millisecond,
}

// Port is an open serial port to a board.
//
// It implements firmata.ByteSink, io.Reader and io.Closer.
type Port struct {
	name string
	log  logrus.FieldLogger

	mu  sync.Mutex
	p   serial.Port
	buf [1]byte
}

// Open opens the serial port name. opts may be nil.
func Open(name string, opts *Opts) (*Port, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	mode := &serial.Mode{
		BaudRate: opts.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	sp, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("firmataserial: open %s: %w", name, err)
	}
	if opts.ReadTimeout > 0 {
		if err := sp.SetReadTimeout(opts.ReadTimeout); err != nil {
			_ = sp.Close()
			return nil, fmt.Errorf("firmataserial: %s: %w", name, err)
		}
	}
	p := New(sp, name, opts)
	p.log.WithField("baud", opts.BaudRate).Info("firmataserial: port opened")
	return p, nil
}

// New wraps an already open serial port.
func New(sp serial.Port, name string, opts *Opts) *Port {
	if opts == nil {
		opts = &DefaultOpts
	}
	return &Port{name: name, log: logger(opts.Logger).WithField("port", name), p: sp}
}

func (p *Port) String() string {
	return p.name
}

// WriteByte implements firmata.ByteSink.
func (p *Port) WriteByte(b byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buf[0] = b
	_, err := p.p.Write(p.buf[:])
	return err
}

// Read implements io.Reader. It returns 0, nil when the read timeout expires.
func (p *Port) Read(b []byte) (int, error) {
	return p.p.Read(b)
}

// Close implements io.Closer.
func (p *Port) Close() error {
	p.log.Debug("firmataserial: closing port")
	return p.p.Close()
}

func logger(l logrus.FieldLogger) logrus.FieldLogger {
	if l != nil {
		return l
	}
	d := logrus.New()
	d.Out = io.Discard
	return d
}
