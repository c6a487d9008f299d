// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"periph.io/x/conn/v3"
)

// ByteSink receives the bytes emitted by the encoder, one at a time and in
// order. io.ByteWriter implementations such as *bytes.Buffer and
// *bufio.Writer satisfy it.
//
// Errors are returned to the caller of the encoder operation as is.
type ByteSink interface {
	WriteByte(c byte) error
}

// NewConnSink returns a ByteSink that sends each byte as its own write-only
// transaction on c.
func NewConnSink(c conn.Conn) ByteSink {
	return &connSink{c: c}
}

type connSink struct {
	c   conn.Conn
	buf [1]byte
}

func (s *connSink) WriteByte(b byte) error {
	s.buf[0] = b
	return s.c.Tx(s.buf[:], nil)
}

func (s *connSink) String() string {
	return s.c.String()
}
