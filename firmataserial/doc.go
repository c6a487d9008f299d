// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package firmataserial connects a firmata.Client to a board over a serial
// port.
//
// Open the port, hand it to firmata.NewClient as the ByteSink and pump the
// received bytes into the client with Run:
//
//	p, err := firmataserial.Open("/dev/ttyACM0", nil)
//	c := firmata.NewClient(p, nil)
//	go p.Run(ctx, c, func(e firmata.Event) { fmt.Println(e) })
package firmataserial
