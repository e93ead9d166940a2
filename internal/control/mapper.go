// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package control

import (
	"github.com/openufo/ufoctl/internal/input"
	"github.com/openufo/ufoctl/pkg/ufolink"
)

// Edge is the transition carried by a logical input event.
type Edge uint8

const (
	// EdgeDown is an inactive-to-active transition.
	EdgeDown Edge = iota
	// EdgeUp is an active-to-inactive transition.
	EdgeUp
	// EdgeHeld is the level-based "currently active" signal.
	EdgeHeld
)

// Event is one logical input event. Joystick edges (translated through
// the mapping) and UI-originated presses flow through the same event
// stream so dispatch semantics exist in exactly one place.
type Event struct {
	ID   string
	Edge Edge
}

// Mapper applies the persisted mapping to normalized joystick state
// and writes the result into the vehicle, once per control tick.
type Mapper struct {
	vehicle *ufolink.Vehicle
	mapping *Mapping
	descs   []Descriptor
	byID    map[string]Descriptor
}

// NewMapper builds a Mapper over the given descriptor table.
func NewMapper(vehicle *ufolink.Vehicle, mapping *Mapping, descs []Descriptor) *Mapper {
	byID := make(map[string]Descriptor, len(descs))
	for _, d := range descs {
		byID[d.ID] = d
	}
	return &Mapper{vehicle: vehicle, mapping: mapping, descs: descs, byID: byID}
}

// SelectDevice returns the index of the first attached device whose
// axis/button/hat counts cover every index the mapping references, or
// -1 if no attached device is capable.
func (m *Mapper) SelectDevice(devices []input.DeviceInfo) int {
	req := m.mapping.RequiredCapabilities()
	for i, d := range devices {
		if d.Axes >= req.Axes && d.Buttons >= req.Buttons && d.Hats >= req.Hats {
			return i
		}
	}
	return -1
}

// Apply consumes one tick of normalized joystick state plus any
// UI-originated events and updates the vehicle. Inputs without a
// mapping entry are skipped, never an error.
func (m *Mapper) Apply(st input.State, extra []Event) {
	var events []Event

	for _, d := range m.descs {
		if d.Kind == KindAxis {
			m.applyAxis(d, st)
			continue
		}
		src, ok := m.mapping.Button(d.ID)
		if !ok {
			continue
		}
		if st.Down[src] {
			events = append(events, Event{ID: d.ID, Edge: EdgeDown})
		}
		if st.Active[src] {
			events = append(events, Event{ID: d.ID, Edge: EdgeHeld})
		}
		if st.Up[src] {
			events = append(events, Event{ID: d.ID, Edge: EdgeUp})
		}
	}

	events = append(events, extra...)
	for _, ev := range events {
		m.Dispatch(ev)
	}
}

func (m *Mapper) applyAxis(d Descriptor, st input.State) {
	if b, ok := m.mapping.Axis(d.ID); ok && b.Axis < len(st.Axes) {
		value := st.Axes[b.Axis]
		if b.Invert {
			value = -value
		}
		m.vehicle.SetAxis(d.ID, value)
	}
	if !d.Trim {
		return
	}
	if src, ok := m.mapping.TrimDec(d.ID); ok && st.Down[src] {
		m.vehicle.AdjustTrim(d.ID, -d.TrimStep)
	}
	if src, ok := m.mapping.TrimInc(d.ID); ok && st.Down[src] {
		m.vehicle.AdjustTrim(d.ID, d.TrimStep)
	}
}

// Dispatch applies one logical event to the vehicle according to the
// input's kind.
func (m *Mapper) Dispatch(ev Event) {
	d, ok := m.byID[ev.ID]
	if !ok {
		return
	}
	switch d.Kind {
	case KindOnce:
		if ev.Edge == EdgeDown {
			m.vehicle.SetBool(d.ID, true)
		}
	case KindToggle:
		if ev.Edge == EdgeDown {
			m.vehicle.SetBool(d.ID, !m.vehicle.Bool(d.ID))
		}
	case KindPush:
		switch ev.Edge {
		case EdgeHeld:
			m.vehicle.SetBool(d.ID, true)
		case EdgeUp:
			m.vehicle.SetBool(d.ID, false)
		}
	}
}
