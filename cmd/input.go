// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package cmd

import (
	"fmt"

	"github.com/openufo/ufoctl/internal/input"
)

// openInputDriver opens the joystick backend selected by flags: the
// serial bridge when --input-port is set, SDL otherwise. The returned
// string describes the backend for the UI.
func openInputDriver() (input.Driver, string, error) {
	if serialPort != "" {
		d, err := input.OpenSerial(serialPort, serialBaud)
		if err != nil {
			return nil, "", err
		}
		return d, fmt.Sprintf("Serial: %s @ %d baud", serialPort, serialBaud), nil
	}

	d, err := input.OpenSDL()
	if err != nil {
		return nil, "", err
	}
	return d, "SDL", nil
}
