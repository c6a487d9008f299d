// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
)

// newRecordedClient returns a Client whose output accumulates in the
// returned buffer, going through the conn.Conn sink.
func newRecordedClient(t *testing.T) (*Client, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewClient(NewConnSink(&conntest.RecordRaw{W: &buf}), nil), &buf
}

func expectBytes(t *testing.T, buf *bytes.Buffer, want ...byte) {
	t.Helper()
	if diff := cmp.Diff(want, buf.Bytes(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("written bytes mismatch (-want +got):\n%s", diff)
	}
	buf.Reset()
}

func TestConnSink_OneTxPerByte(t *testing.T) {
	r := &conntest.Record{}
	c := NewClient(NewConnSink(r), nil)
	if err := c.SetPinMode(13, PinModeOutput); err != nil {
		t.Fatal(err)
	}
	want := []conntest.IO{{W: []byte{0xF4}}, {W: []byte{13}}, {W: []byte{0x01}}}
	if diff := cmp.Diff(want, r.Ops); diff != "" {
		t.Fatalf("ops mismatch (-want +got):\n%s", diff)
	}
	if s := c.String(); s != "firmata(record)" {
		t.Fatalf("String() = %q", s)
	}
}

func TestConnSink_Playback(t *testing.T) {
	p := &conntest.Playback{Ops: []conntest.IO{{W: []byte{0xFF}}}}
	c := NewClient(NewConnSink(p), nil)
	if err := c.SendReset(); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSetPinMode(t *testing.T) {
	c, buf := newRecordedClient(t)
	if err := c.SetPinMode(13, PinModeOutput); err != nil {
		t.Fatal(err)
	}
	expectBytes(t, buf, 0xF4, 13, 0x01)
	if m, _ := c.PinMode(13); m != PinModeOutput {
		t.Fatalf("PinMode(13) = %s", m)
	}
	if m, _ := c.PinMode(12); m != PinModeUnset {
		t.Fatalf("PinMode(12) = %s", m)
	}

	if err := c.SetPinMode(128, PinModeOutput); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
	if err := c.SetPinMode(1, PinModeUnset); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
	expectBytes(t, buf)
}

func TestDigitalWrite_ReadModifyWrite(t *testing.T) {
	c, buf := newRecordedClient(t)
	if err := c.DigitalWrite(10, gpio.High); err != nil {
		t.Fatal(err)
	}
	expectBytes(t, buf, 0x91, 0x04, 0x00)
	if err := c.DigitalWrite(15, gpio.High); err != nil {
		t.Fatal(err)
	}
	expectBytes(t, buf, 0x91, 0x04, 0x01)
	if err := c.DigitalWrite(10, gpio.Low); err != nil {
		t.Fatal(err)
	}
	expectBytes(t, buf, 0x91, 0x00, 0x01)
	if v, _ := c.OutputPort(1); v != 0x80 {
		t.Fatalf("OutputPort(1) = 0x%02X", v)
	}
}

func TestDigitalWrite_PreservesPort(t *testing.T) {
	c := NewClient(&bytes.Buffer{}, nil)
	var want uint16
	seq := []struct {
		pin uint8
		l   gpio.Level
	}{
		{16, gpio.High}, {17, gpio.High}, {23, gpio.High}, {17, gpio.Low}, {20, gpio.High}, {16, gpio.Low}, {23, gpio.High},
	}
	for _, s := range seq {
		if err := c.DigitalWrite(s.pin, s.l); err != nil {
			t.Fatal(err)
		}
		if s.l {
			want |= 1 << (s.pin & 7)
		} else {
			want &^= 1 << (s.pin & 7)
		}
		if got, _ := c.OutputPort(2); got != want {
			t.Fatalf("after DigitalWrite(%d, %s): OutputPort(2) = 0b%08b, want 0b%08b", s.pin, s.l, got, want)
		}
	}
	if got, _ := c.OutputPort(1); got != 0 {
		t.Fatalf("OutputPort(1) = %d", got)
	}
}

func TestSetDigitalPinValue(t *testing.T) {
	c, buf := newRecordedClient(t)
	if err := c.SetDigitalPinValue(3, gpio.High); err != nil {
		t.Fatal(err)
	}
	expectBytes(t, buf, 0xF5, 3, 1)
	if v, _ := c.OutputPort(0); v != 0x08 {
		t.Fatalf("OutputPort(0) = 0x%02X", v)
	}
}

func TestAnalogWrite(t *testing.T) {
	c, buf := newRecordedClient(t)
	if err := c.AnalogWrite(9, 200); err != nil {
		t.Fatal(err)
	}
	expectBytes(t, buf, 0xF4, 9, 0x03, 0xE9, 200&0x7F, 200>>7)
	if m, _ := c.PinMode(9); m != PinModePWM {
		t.Fatalf("PinMode(9) = %s", m)
	}
	if err := c.AnalogWrite(16, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
	expectBytes(t, buf)
}

func TestServoWrite(t *testing.T) {
	c, buf := newRecordedClient(t)
	if err := c.ServoWrite(5, 180); err != nil {
		t.Fatal(err)
	}
	expectBytes(t, buf, 0xE5, 180&0x7F, 180>>7)
	if err := c.ServoWrite(5, 181); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
	expectBytes(t, buf)
}

func TestReport(t *testing.T) {
	c, buf := newRecordedClient(t)
	if err := c.ReportAnalog(2, true); err != nil {
		t.Fatal(err)
	}
	if err := c.ReportDigital(1, false); err != nil {
		t.Fatal(err)
	}
	expectBytes(t, buf, 0xC2, 1, 0xD1, 0)
	if err := c.ReportAnalog(16, true); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
	if err := c.ReportDigital(16, true); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}

func TestSendSysEx(t *testing.T) {
	c, buf := newRecordedClient(t)
	if err := c.SendSysEx(0x71, 'h', 0); err != nil {
		t.Fatal(err)
	}
	expectBytes(t, buf, 0xF0, 0x71, 'h', 0, 0xF7)
	if err := c.SendSysEx(0x71, 0xF7); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
	expectBytes(t, buf)
}

func TestQueries(t *testing.T) {
	tests := []struct {
		name string
		f    func(c *Client) error
		want []byte
	}{
		{"reset", (*Client).SendReset, []byte{0xFF}},
		{"version", (*Client).QueryVersion, []byte{0xF9}},
		{"firmware", (*Client).QueryFirmware, []byte{0xF0, 0x79, 0xF7}},
		{"init", (*Client).Init, []byte{0xF0, 0x69, 0xF7}},
		{"capabilities", (*Client).QueryCapabilities, []byte{0xF0, 0x6B, 0xF7}},
		{"pin state", func(c *Client) error { return c.QueryPinState(7) }, []byte{0xF0, 0x6D, 7, 0xF7}},
		{"sampling", func(c *Client) error { return c.SetSamplingInterval(1000) }, []byte{0xF0, 0x7A, 0x68, 0x07, 0xF7}},
		{"servo config", func(c *Client) error { return c.ServoConfig(4, 544, 2400) }, []byte{0xF0, 0x70, 4, 0x20, 0x04, 0x60, 0x12, 0xF7}},
		{"extended analog", func(c *Client) error { return c.ExtendedAnalogWrite(20, 1000) }, []byte{0xF0, 0x6F, 20, 0x68, 0x07, 0x00, 0xF7}},
		{"extended analog 28 bits", func(c *Client) error { return c.ExtendedAnalogWrite(20, 1<<21) }, []byte{0xF0, 0x6F, 20, 0, 0, 0, 1, 0xF7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, buf := newRecordedClient(t)
			if err := tt.f(c); err != nil {
				t.Fatal(err)
			}
			expectBytes(t, buf, tt.want...)
		})
	}
}

func TestInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		f    func(c *Client) error
	}{
		{"pin state", func(c *Client) error { return c.QueryPinState(200) }},
		{"sampling", func(c *Client) error { return c.SetSamplingInterval(MaxUInt14 + 1) }},
		{"servo config", func(c *Client) error { return c.ServoConfig(4, 2400, 544) }},
		{"extended analog", func(c *Client) error { return c.ExtendedAnalogWrite(20, 1<<28) }},
		{"digital write", func(c *Client) error { return c.DigitalWrite(128, gpio.High) }},
		{"stepper", func(c *Client) error { return c.StepperStep(MaxSteppers, 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, buf := newRecordedClient(t)
			if err := tt.f(c); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("got %v, want ErrInvalidArgument", err)
			}
			expectBytes(t, buf)
		})
	}
}

func TestGetters_OutOfRange(t *testing.T) {
	c := NewClient(&bytes.Buffer{}, nil)
	if _, err := c.DigitalRead(128); !errors.Is(err, ErrInvalidArgument) {
		t.Fatal(err)
	}
	if _, err := c.DigitalPort(16); !errors.Is(err, ErrInvalidArgument) {
		t.Fatal(err)
	}
	if _, err := c.AnalogRead(16); !errors.Is(err, ErrInvalidArgument) {
		t.Fatal(err)
	}
	if _, err := c.AnalogChannel(128); !errors.Is(err, ErrInvalidArgument) {
		t.Fatal(err)
	}
	if _, err := c.StepperStatus(16); !errors.Is(err, ErrInvalidArgument) {
		t.Fatal(err)
	}
	if _, err := c.Pin(128); !errors.Is(err, ErrInvalidArgument) {
		t.Fatal(err)
	}
}

func TestStepperStep(t *testing.T) {
	c, buf := newRecordedClient(t)
	if err := c.StepperStep(1, -1000); err != nil {
		t.Fatal(err)
	}
	expectBytes(t, buf,
		0xF0, 0x62, 0x04, 1, 1, 0xF7,
		0xF0, 0x62, 0x02, 1, 0x68, 0x07, 0, 0, 0x08, 0xF7)
	if s, _ := c.StepperStatus(1); s != StepperMoving {
		t.Fatalf("StepperStatus(1) = %s", s)
	}
	if err := c.StepperTo(0, 5); err != nil {
		t.Fatal(err)
	}
	expectBytes(t, buf,
		0xF0, 0x62, 0x04, 0, 1, 0xF7,
		0xF0, 0x62, 0x03, 0, 5, 0, 0, 0, 0, 0xF7)
}

type failingSink struct {
	n   int
	err error
}

func (f *failingSink) WriteByte(byte) error {
	if f.n == 0 {
		return f.err
	}
	f.n--
	return nil
}

func TestSinkErrorPropagated(t *testing.T) {
	errBoom := errors.New("boom")
	for n := 0; n < 3; n++ {
		c := NewClient(&failingSink{n: n, err: errBoom}, nil)
		if err := c.DigitalWrite(1, gpio.High); err != errBoom {
			t.Fatalf("DigitalWrite() after %d bytes = %v, want the sink error", n, err)
		}
	}
	c := NewClient(&failingSink{n: 4, err: errBoom}, nil)
	if err := c.SendSysEx(0x71, 1, 2); err != errBoom {
		t.Fatalf("SendSysEx() = %v, want the sink error", err)
	}
}

func TestSinkError_CacheKept(t *testing.T) {
	errBoom := errors.New("boom")
	c := NewClient(&failingSink{err: errBoom}, nil)
	if err := c.DigitalWrite(1, gpio.High); err != errBoom {
		t.Fatalf("DigitalWrite() = %v, want the sink error", err)
	}
	if m, _ := c.OutputPort(0); m != 0x02 {
		t.Fatalf("OutputPort(0) = 0x%X, want 0x2", m)
	}
	if err := c.SetDigitalPinValue(9, gpio.High); err != errBoom {
		t.Fatalf("SetDigitalPinValue() = %v, want the sink error", err)
	}
	if m, _ := c.OutputPort(1); m != 0x02 {
		t.Fatalf("OutputPort(1) = 0x%X, want 0x2", m)
	}
	if err := c.StepperStep(0, 10); err != errBoom {
		t.Fatalf("StepperStep() = %v, want the sink error", err)
	}
	if s, _ := c.StepperStatus(0); s != StepperMoving {
		t.Fatalf("StepperStatus(0) = %s, want Moving", s)
	}
}

func TestStepperHandle(t *testing.T) {
	c, buf := newRecordedClient(t)
	s, err := c.Stepper(1)
	if err != nil {
		t.Fatal(err)
	}
	if s.String() != "stepper1" || s.Index() != 1 {
		t.Fatalf("got %s index %d", s, s.Index())
	}
	if err := s.Step(1000); err != nil {
		t.Fatal(err)
	}
	expectBytes(t, buf,
		0xF0, 0x62, 0x04, 1, 1, 0xF7,
		0xF0, 0x62, 0x02, 1, 0x68, 0x07, 0, 0, 0, 0xF7)

	s.Reverse = true
	if err := s.Step(1000); err != nil {
		t.Fatal(err)
	}
	expectBytes(t, buf,
		0xF0, 0x62, 0x04, 1, 1, 0xF7,
		0xF0, 0x62, 0x02, 1, 0x68, 0x07, 0, 0, 0x08, 0xF7)

	// Absolute moves ignore Reverse.
	if err := s.To(5); err != nil {
		t.Fatal(err)
	}
	expectBytes(t, buf,
		0xF0, 0x62, 0x04, 1, 1, 0xF7,
		0xF0, 0x62, 0x03, 1, 5, 0, 0, 0, 0, 0xF7)
	if s.Status() != StepperMoving {
		t.Fatalf("Status() = %s, want Moving", s.Status())
	}

	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	expectBytes(t, buf, 0xF0, 0x62, 0x05, 1, 0xF7)
	feedAll(t, c, 0xF0, 0x62, 0x0A, 1, 0x68, 0x07, 0, 0, 0, 0xF7)
	if s.Status() != StepperIdle {
		t.Fatalf("Status() = %s, want Idle", s.Status())
	}
	if p := s.Position(); p != 1000 {
		t.Fatalf("Position() = %d, want 1000", p)
	}
}

func TestStepperHandle_Index(t *testing.T) {
	c := newTestClient(t)
	if _, err := c.Stepper(MaxSteppers); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Stepper(%d) = %v, want ErrInvalidArgument", MaxSteppers, err)
	}
}
