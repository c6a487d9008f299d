// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// firmatamon prints the messages received from a Firmata board.
//
// It enables the reporting of the requested analog channels and digital
// ports, and can mirror a local GPIO onto a board pin:
//
//	firmatamon -port /dev/ttyACM0 -analog 0,1 -digital 1 -mirror GPIO17:13
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/GermanBionicSystems/interfaz/firmata"
	"github.com/GermanBionicSystems/interfaz/firmataserial"
	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

func mainImpl() error {
	port := flag.String("port", "", "serial port of the board")
	baud := flag.Int("baud", firmataserial.DefaultOpts.BaudRate, "baud rate")
	analog := flag.String("analog", "", "comma separated analog channels to report")
	digital := flag.String("digital", "", "comma separated digital ports to report")
	interval := flag.Uint("interval", 0, "sampling interval in ms, 0 keeps the firmware default")
	mirror := flag.String("mirror", "", "mirror a local GPIO on a board pin, as <gpio>:<pin>")
	verbose := flag.Bool("v", false, "verbose log")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	if *port == "" {
		return errors.New("-port is required")
	}

	log := logrus.New()
	log.Out = colorable.NewColorableStdout()
	log.Formatter = &logrus.TextFormatter{ForceColors: true, FullTimestamp: true}
	if *verbose {
		log.Level = logrus.DebugLevel
	}

	channels, err := parseList(*analog, firmata.MaxAnalogChannels)
	if err != nil {
		return fmt.Errorf("-analog: %w", err)
	}
	ports, err := parseList(*digital, firmata.MaxPorts)
	if err != nil {
		return fmt.Errorf("-digital: %w", err)
	}
	ms, err := samplingInterval(*interval)
	if err != nil {
		return fmt.Errorf("-interval: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := firmataserial.DefaultOpts
	opts.BaudRate = *baud
	opts.Logger = log
	p, err := firmataserial.Open(*port, &opts)
	if err != nil {
		return err
	}
	defer p.Close()

	c := firmata.NewClient(p, &firmata.Opts{Logger: log})
	done := make(chan error, 1)
	go func() {
		done <- p.Run(ctx, c, func(e firmata.Event) {
			log.WithField("type", fmt.Sprintf("%T", e)).Info(e.String())
		})
	}()

	if err := c.QueryVersion(); err != nil {
		return err
	}
	if err := c.QueryFirmware(); err != nil {
		return err
	}
	if err := c.Init(); err != nil {
		return err
	}
	if ms != 0 {
		if err := c.SetSamplingInterval(ms); err != nil {
			return err
		}
	}
	for _, ch := range channels {
		if err := c.ReportAnalog(ch, true); err != nil {
			return err
		}
	}
	for _, port := range ports {
		if err := c.ReportDigital(port, true); err != nil {
			return err
		}
	}

	if *mirror != "" {
		go func() {
			if err := mirrorPin(ctx, c, *mirror, log); err != nil {
				log.WithError(err).Error("mirror stopped")
			}
		}()
	}

	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// mirrorPin copies the level of a local GPIO onto a board pin, polling every
// 20ms.
func mirrorPin(ctx context.Context, c *firmata.Client, arg string, log logrus.FieldLogger) error {
	name, num, ok := strings.Cut(arg, ":")
	if !ok {
		return fmt.Errorf("-mirror %q: want <gpio>:<pin>", arg)
	}
	n, err := strconv.ParseUint(num, 10, 8)
	if err != nil {
		return fmt.Errorf("-mirror %q: %w", arg, err)
	}
	if _, err := host.Init(); err != nil {
		return err
	}
	in := gpioreg.ByName(name)
	if in == nil {
		return fmt.Errorf("-mirror: no gpio %q", name)
	}
	if err := in.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return err
	}
	out, err := c.Pin(uint8(n))
	if err != nil {
		return err
	}
	if err := out.SetFunc(firmata.PinFuncDigitalOutput); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"gpio": in, "pin": out}).Info("mirroring")

	t := time.NewTicker(20 * time.Millisecond)
	defer t.Stop()
	last := in.Read()
	if err := out.Out(last); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return out.Halt()
		case <-t.C:
			if l := in.Read(); l != last {
				if err := out.Out(l); err != nil {
					return err
				}
				last = l
			}
		}
	}
}

// parseList parses a comma separated list of indices below limit.
func parseList(s string, limit int) ([]uint8, error) {
	if s == "" {
		return nil, nil
	}
	var out []uint8
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		if v < 0 || v >= limit {
			return nil, fmt.Errorf("%d out of range 0-%d", v, limit-1)
		}
		out = append(out, uint8(v))
	}
	return out, nil
}

// samplingInterval checks that v fits the 14 bits of the sampling interval
// command.
func samplingInterval(v uint) (uint16, error) {
	if v > uint(firmata.MaxUInt14) {
		return 0, fmt.Errorf("%d out of range 0-%d", v, firmata.MaxUInt14)
	}
	return uint16(v), nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "firmatamon: %s.\n", err)
		os.Exit(1)
	}
}
