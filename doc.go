// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package interfaz is a container for the Firmata protocol engine and its
// transport glue.
//
// The protocol engine lives in package firmata; firmataserial connects it to
// a serial port.
package interfaz
