// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package firmata_test

import (
	"bytes"
	"fmt"
	"log"

	"github.com/GermanBionicSystems/interfaz/firmata"
	"periph.io/x/conn/v3/gpio"
)

func Example() {
	var out bytes.Buffer
	c := firmata.NewClient(&out, nil)

	if err := c.SetPinMode(13, firmata.PinModeOutput); err != nil {
		log.Fatal(err)
	}
	if err := c.DigitalWrite(13, gpio.High); err != nil {
		log.Fatal(err)
	}
	fmt.Println(firmata.SprintHexArray(out.Bytes()))

	// Bytes received from the board.
	for _, b := range []byte{0xF9, 0x02, 0x05, 0xE0, 0x7F, 0x03} {
		e, err := c.Feed(b)
		if err != nil {
			log.Fatal(err)
		}
		if e != nil {
			fmt.Println(e)
		}
	}
	// Output:
	// 0xF4 0x0D 0x01 0x91 0x20 0x00
	// protocol 2.5
	// A0 = 511
}

func ExampleStepperConfigPayload() {
	var out bytes.Buffer
	c := firmata.NewClient(&out, nil)

	cfg := firmata.StepperConfig{
		Interface: firmata.StepperDriver,
		StepSize:  firmata.StepWhole,
		Pins:      []uint8{2, 3},
	}
	payload, err := firmata.StepperConfigPayload(0, &cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := c.SendSysEx(payload...); err != nil {
		log.Fatal(err)
	}
	fmt.Println(firmata.SprintHexArray(out.Bytes()))
	// Output:
	// 0xF0 0x62 0x00 0x00 0x10 0x02 0x03 0xF7
}

func ExampleLCDPrintPayload() {
	payload, err := firmata.LCDPrintPayload(0, "Hi")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(firmata.SprintHexArray(payload))
	// Output:
	// 0x03 0x00 0x00 0x48 0x00 0x69 0x00
}
