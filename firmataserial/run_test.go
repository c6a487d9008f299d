// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmataserial

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/GermanBionicSystems/interfaz/firmata"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestRun_EOF(t *testing.T) {
	c := firmata.NewClient(&bytes.Buffer{}, nil)
	r := bytes.NewReader([]byte{0xF9, 2, 5, 0x90, 0x01, 0x00, 0xE1})
	var got []firmata.Event
	err := Run(context.Background(), r, c, func(e firmata.Event) { got = append(got, e) }, nil)
	if !errors.Is(err, firmata.ErrDeviceDisconnected) {
		t.Fatalf("Run() = %v, want ErrDeviceDisconnected", err)
	}
	want := []firmata.Event{
		firmata.VersionReported{Version: firmata.Version{Major: 2, Minor: 5}},
		firmata.DigitalPortChanged{Port: 0, Value: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}

	// The partial analog message was dropped on disconnection.
	if e, err := c.Feed(0x05); e != nil || err != nil {
		t.Fatalf("Feed() = %v, %v", e, err)
	}
}

func TestRun_LogsParserErrors(t *testing.T) {
	log, hook := test.NewNullLogger()
	c := firmata.NewClient(&bytes.Buffer{}, nil)
	data := []byte{0xF0, 0x6E, 0x05, 0xF7, 0xF9, 1, 2}
	var events int
	err := Run(context.Background(), bytes.NewReader(data), c, func(firmata.Event) { events++ }, log)
	if !errors.Is(err, firmata.ErrDeviceDisconnected) {
		t.Fatalf("Run() = %v", err)
	}
	if events != 1 {
		t.Fatalf("got %d events, want 1", events)
	}
	var warned bool
	for _, e := range hook.AllEntries() {
		if err, ok := e.Data[logrus.ErrorKey].(error); ok && e.Level == logrus.WarnLevel && errors.Is(err, firmata.ErrMalformedMessage) {
			warned = true
		}
	}
	if !warned {
		t.Fatal("malformed message was not logged")
	}
}

type stallReader struct {
	cancel func()
	n      int
}

// Read behaves like a serial port whose read timeout expires.
func (s *stallReader) Read([]byte) (int, error) {
	s.n++
	if s.n == 3 {
		s.cancel()
	}
	return 0, nil
}

func TestRun_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := firmata.NewClient(&bytes.Buffer{}, nil)
	r := &stallReader{cancel: cancel}
	if err := Run(ctx, r, c, nil, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
	if r.n != 3 {
		t.Fatalf("got %d reads", r.n)
	}
}

type failReader struct{}

func (failReader) Read([]byte) (int, error) {
	return 0, errors.New("unplugged")
}

func TestRun_ReadError(t *testing.T) {
	c := firmata.NewClient(&bytes.Buffer{}, nil)
	err := Run(context.Background(), failReader{}, c, nil, nil)
	if err == nil || errors.Is(err, firmata.ErrDeviceDisconnected) {
		t.Fatalf("Run() = %v", err)
	}
}
