// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

// Package control maps normalized joystick input onto vehicle state:
// it holds the logical input table, the persisted joystick mapping,
// the per-tick input mapper and the interactive calibration wizard.
package control

import "github.com/openufo/ufoctl/pkg/ufolink"

// Kind is the dispatch semantics of a logical input.
type Kind uint8

const (
	// KindAxis is a continuous control written every tick.
	KindAxis Kind = iota
	// KindToggle flips its flag on every down edge.
	KindToggle
	// KindOnce raises a self-expiring pulse on a down edge.
	KindOnce
	// KindPush tracks the physical hold, with an explicit release.
	KindPush
)

// Descriptor describes one logical vehicle input.
type Descriptor struct {
	ID       string
	Kind     Kind
	Desc     string
	Trim     bool    // axis has dedicated trim inc/dec buttons
	TrimStep float64 // trim change per button press
}

// trimStep matches one wire unit of the 0..63 trim byte range.
const trimStep = 2.0 / 64

// Descriptors is the immutable, ordered table of every logical input
// the vehicle understands. The calibration wizard walks it in order;
// the mapper dispatches by it every tick.
var Descriptors = []Descriptor{
	{ID: ufolink.IDThrottle, Kind: KindAxis, Desc: "Throttle"},
	{ID: ufolink.IDRudder, Kind: KindAxis, Desc: "Rudder", Trim: true, TrimStep: trimStep},
	{ID: ufolink.IDAileron, Kind: KindAxis, Desc: "Aileron", Trim: true, TrimStep: trimStep},
	{ID: ufolink.IDElevator, Kind: KindAxis, Desc: "Elevator", Trim: true, TrimStep: trimStep},
	{ID: ufolink.IDFlyNoHead, Kind: KindToggle, Desc: "Headless Mode"},
	{ID: ufolink.IDSpeed, Kind: KindToggle, Desc: "Speed"},
	{ID: ufolink.IDFly360Roll, Kind: KindOnce, Desc: "3D Flip"},
	{ID: ufolink.IDEngineStart, Kind: KindOnce, Desc: "Engine Start"},
	{ID: ufolink.IDFlyDown, Kind: KindOnce, Desc: "Automatic Landing"},
	{ID: ufolink.IDFlyUp, Kind: KindOnce, Desc: "Automatic Take-Off"},
	{ID: ufolink.IDFlyBack, Kind: KindToggle, Desc: "Return Home (only in headless mode)"},
	{ID: ufolink.IDStop, Kind: KindPush, Desc: "Emergency Stop"},
	{ID: ufolink.IDUp, Kind: KindPush, Desc: "Upwards Evasion"},
	{ID: ufolink.IDLight, Kind: KindToggle, Desc: "Light"},
}
