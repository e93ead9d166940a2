// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors
//
// ufoctl - joystick bridge for WiFi UFO quadcopters
//
// Maps a physical joystick to the vehicle's proprietary UDP control
// protocol and provides an interactive calibration wizard for building
// the joystick mapping.

package main

import (
	"os"

	"github.com/openufo/ufoctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
