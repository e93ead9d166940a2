// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

// Package input turns raw joystick samples into normalized axis values
// and discrete down/up/active events, independent of the underlying
// device backend.
package input

// SourceKind identifies the class of a discrete input source.
type SourceKind uint8

const (
	// SourceButton is a plain joystick button.
	SourceButton SourceKind = iota
	// SourceHat is one direction of a hat, linearized as hat*4+dir.
	SourceHat
)

// Hat directions within a linearized hat slot.
const (
	HatLeft = iota
	HatRight
	HatUp
	HatDown
)

// Source addresses one discrete input on a device.
type Source struct {
	Kind  SourceKind
	Index int
}

// ButtonSource addresses a plain button.
func ButtonSource(index int) Source {
	return Source{Kind: SourceButton, Index: index}
}

// HatSource addresses one direction of a hat. Each hat occupies four
// consecutive virtual button slots.
func HatSource(hat, dir int) Source {
	return Source{Kind: SourceHat, Index: hat*4 + dir}
}

// DeviceInfo describes the capabilities of one attached device.
type DeviceInfo struct {
	Name    string
	Axes    int
	Buttons int
	Hats    int
}

// Sample is one raw poll of a device: axis levels in [-1, 1], button
// levels and hat positions with each component in {-1, 0, 1}.
type Sample struct {
	Axes    []float64
	Buttons []bool
	Hats    [][2]int
}

// Driver is the joystick backend contract. Implementations report the
// currently attached devices and their latest polled levels. A device
// disappearing is not an error; Sample simply reports absence.
type Driver interface {
	// Devices lists attached devices in stable order.
	Devices() []DeviceInfo
	// Sample returns the latest levels of device i, or ok=false if the
	// device is not currently available.
	Sample(i int) (Sample, bool)
	Close() error
}
