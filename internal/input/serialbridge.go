// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package input

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.bug.st/serial"
)

// The serial bridge speaks the INSEN controller line protocol: the
// host sends "GET <n>" and the bridge answers a single line of the
// form ">>> INPUT|id|lx,ly|rx,ry|lt,rt|0xBTNS|dpad|battery".
const (
	bridgeAxes    = 6 // lx, ly, rx, ry, lt, rt
	bridgeButtons = 16
	bridgeHats    = 1 // dpad
)

// dpad bitmask as reported by the bridge
const (
	bridgeDpadUp    = 0x01
	bridgeDpadRight = 0x02
	bridgeDpadDown  = 0x04
	bridgeDpadLeft  = 0x08
)

// SerialDriver exposes a controller attached through an INSEN-style
// serial bridge as a single joystick device.
type SerialDriver struct {
	port   serial.Port
	reader *bufio.Reader
	name   string
}

// OpenSerial opens the serial bridge at the given port and baud rate.
func OpenSerial(portName string, baudRate int) (*SerialDriver, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial bridge %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(100 * time.Millisecond); err != nil {
		port.Close()
		return nil, fmt.Errorf("set serial read timeout: %w", err)
	}
	return &SerialDriver{
		port:   port,
		reader: bufio.NewReader(port),
		name:   fmt.Sprintf("serial bridge %s", portName),
	}, nil
}

// Devices reports the single bridged controller.
func (d *SerialDriver) Devices() []DeviceInfo {
	return []DeviceInfo{{
		Name:    d.name,
		Axes:    bridgeAxes,
		Buttons: bridgeButtons,
		Hats:    bridgeHats,
	}}
}

// Sample polls the bridged controller. A timed-out or malformed
// response reports device absence for this tick; it is not an error.
func (d *SerialDriver) Sample(i int) (Sample, bool) {
	if i != 0 {
		return Sample{}, false
	}
	if _, err := d.port.Write([]byte("GET 0\r\n")); err != nil {
		return Sample{}, false
	}
	line, err := d.reader.ReadString('\n')
	if err != nil {
		return Sample{}, false
	}
	return parseBridgeInput(strings.TrimSpace(line))
}

// Close shuts the serial port.
func (d *SerialDriver) Close() error {
	return d.port.Close()
}

func parseBridgeInput(line string) (Sample, bool) {
	if !strings.HasPrefix(line, ">>> ") {
		return Sample{}, false
	}
	parts := strings.Split(line[4:], "|")
	if len(parts) < 8 || parts[0] != "INPUT" {
		return Sample{}, false
	}

	s := Sample{
		Axes:    make([]float64, bridgeAxes),
		Buttons: make([]bool, bridgeButtons),
		Hats:    make([][2]int, bridgeHats),
	}

	pair := func(field string, lo int) bool {
		xy := strings.Split(field, ",")
		if len(xy) != 2 {
			return false
		}
		x, errX := strconv.Atoi(xy[0])
		y, errY := strconv.Atoi(xy[1])
		if errX != nil || errY != nil {
			return false
		}
		s.Axes[lo] = float64(x) / 32767.0
		s.Axes[lo+1] = float64(y) / 32767.0
		return true
	}
	if !pair(parts[2], 0) || !pair(parts[3], 2) || !pair(parts[4], 4) {
		return Sample{}, false
	}

	buttons, err := strconv.ParseUint(strings.TrimPrefix(parts[5], "0x"), 16, 16)
	if err != nil {
		return Sample{}, false
	}
	for i := 0; i < bridgeButtons; i++ {
		s.Buttons[i] = buttons&(1<<i) != 0
	}

	dpad, err := strconv.ParseUint(parts[6], 10, 8)
	if err != nil {
		return Sample{}, false
	}
	if dpad&bridgeDpadLeft != 0 {
		s.Hats[0][0] = -1
	}
	if dpad&bridgeDpadRight != 0 {
		s.Hats[0][0] = 1
	}
	if dpad&bridgeDpadUp != 0 {
		s.Hats[0][1] = 1
	}
	if dpad&bridgeDpadDown != 0 {
		s.Hats[0][1] = -1
	}

	return s, true
}
