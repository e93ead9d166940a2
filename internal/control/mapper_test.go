// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package control

import (
	"testing"

	"github.com/openufo/ufoctl/internal/input"
	"github.com/openufo/ufoctl/pkg/ufolink"
)

func testState(axes []float64, down, up, active []input.Source) input.State {
	st := input.State{
		Axes:   axes,
		Down:   map[input.Source]bool{},
		Up:     map[input.Source]bool{},
		Active: map[input.Source]bool{},
	}
	for _, s := range down {
		st.Down[s] = true
	}
	for _, s := range up {
		st.Up[s] = true
	}
	for _, s := range active {
		st.Active[s] = true
	}
	return st
}

func testMapper(t *testing.T) (*Mapper, *ufolink.Vehicle, *Mapping) {
	t.Helper()
	v := ufolink.NewVehicle()
	m := NewMapping()
	return NewMapper(v, m, Descriptors), v, m
}

func TestMapper_AxisWrites(t *testing.T) {
	mp, v, m := testMapper(t)
	m.setAxis(ufolink.IDThrottle, AxisBinding{Axis: 0})
	m.setAxis(ufolink.IDElevator, AxisBinding{Axis: 1, Invert: true})

	mp.Apply(testState([]float64{0.75, 0.5}, nil, nil, nil), nil)

	if got := v.Axis(ufolink.IDThrottle); got != 0.75 {
		t.Errorf("throttle = %v, want 0.75", got)
	}
	if got := v.Axis(ufolink.IDElevator); got != -0.5 {
		t.Errorf("inverted elevator = %v, want -0.5", got)
	}
}

func TestMapper_AxisIndexBeyondSampleIsSkipped(t *testing.T) {
	mp, v, m := testMapper(t)
	m.setAxis(ufolink.IDThrottle, AxisBinding{Axis: 5})

	v.SetAxis(ufolink.IDThrottle, 0.3)
	mp.Apply(testState([]float64{0, 0}, nil, nil, nil), nil)

	if got := v.Axis(ufolink.IDThrottle); got != 0.3 {
		t.Errorf("throttle = %v, want previous value retained", got)
	}
}

func TestMapper_TrimButtons(t *testing.T) {
	mp, v, m := testMapper(t)
	dec := input.Source{Kind: input.SourceHat, Index: 0}
	inc := input.Source{Kind: input.SourceHat, Index: 1}
	m.setButton("aileron_trim_dec_btn", dec)
	m.setButton("aileron_trim_inc_btn", inc)

	// Down edge adjusts by exactly one step.
	mp.Apply(testState(nil, []input.Source{inc}, nil, []input.Source{inc}), nil)
	if got := v.Trim(ufolink.IDAileron); got != trimStep {
		t.Errorf("trim after one inc = %v, want %v", got, trimStep)
	}

	// Holding without a new down edge does nothing.
	mp.Apply(testState(nil, nil, nil, []input.Source{inc}), nil)
	if got := v.Trim(ufolink.IDAileron); got != trimStep {
		t.Errorf("trim while held = %v, want %v", got, trimStep)
	}

	mp.Apply(testState(nil, []input.Source{dec}, nil, []input.Source{dec}), nil)
	if got := v.Trim(ufolink.IDAileron); got != 0 {
		t.Errorf("trim after dec = %v, want 0", got)
	}
}

func TestMapper_OnceFiresOnDownOnly(t *testing.T) {
	mp, v, m := testMapper(t)
	btn := input.ButtonSource(4)
	m.setButton("engine_start_btn", btn)

	mp.Apply(testState(nil, nil, []input.Source{btn}, nil), nil)
	if v.Bool(ufolink.IDEngineStart) {
		t.Error("up edge should not fire a once input")
	}

	mp.Apply(testState(nil, []input.Source{btn}, nil, []input.Source{btn}), nil)
	if !v.Bool(ufolink.IDEngineStart) {
		t.Error("down edge should raise the pulse")
	}
}

func TestMapper_ToggleFlipsPerDownEdge(t *testing.T) {
	mp, v, m := testMapper(t)
	btn := input.ButtonSource(8)
	m.setButton("light_btn", btn)

	if !v.Bool(ufolink.IDLight) {
		t.Fatal("light should default on")
	}

	press := testState(nil, []input.Source{btn}, nil, []input.Source{btn})
	hold := testState(nil, nil, nil, []input.Source{btn})

	mp.Apply(press, nil)
	mp.Apply(hold, nil) // hold duration must not matter
	mp.Apply(hold, nil)
	if v.Bool(ufolink.IDLight) {
		t.Error("light should be off after one press regardless of hold")
	}

	mp.Apply(press, nil)
	mp.Apply(press, nil)
	if v.Bool(ufolink.IDLight) {
		t.Error("light should be off after three presses total")
	}
}

func TestMapper_PushTracksHold(t *testing.T) {
	mp, v, m := testMapper(t)
	btn := input.ButtonSource(7)
	m.setButton("stop_btn", btn)

	mp.Apply(testState(nil, []input.Source{btn}, nil, []input.Source{btn}), nil)
	if !v.Bool(ufolink.IDStop) {
		t.Error("push input should be true while held")
	}

	mp.Apply(testState(nil, nil, nil, []input.Source{btn}), nil)
	if !v.Bool(ufolink.IDStop) {
		t.Error("push input should stay true while still held")
	}

	// Release: false in the same tick as the up edge.
	mp.Apply(testState(nil, nil, []input.Source{btn}, nil), nil)
	if v.Bool(ufolink.IDStop) {
		t.Error("push input should be false on the release tick")
	}
}

func TestMapper_UnmappedInputsAreSkipped(t *testing.T) {
	mp, v, _ := testMapper(t)
	// Nothing mapped at all; a busy tick must not touch the vehicle.
	mp.Apply(testState([]float64{1, 1}, []input.Source{input.ButtonSource(0)}, nil, []input.Source{input.ButtonSource(0)}), nil)

	snap := v.Snapshot()
	if snap.Throttle != 0 || snap.Stop || snap.EngineStart {
		t.Errorf("unmapped tick mutated vehicle: %+v", snap)
	}
}

func TestMapper_UIEventsShareDispatch(t *testing.T) {
	mp, v, _ := testMapper(t)

	mp.Apply(testState(nil, nil, nil, nil), []Event{
		{ID: ufolink.IDSpeed, Edge: EdgeDown},
		{ID: ufolink.IDFlyUp, Edge: EdgeDown},
		{ID: ufolink.IDUp, Edge: EdgeHeld},
	})

	if !v.Bool(ufolink.IDSpeed) {
		t.Error("UI toggle event should flip speed")
	}
	if !v.Bool(ufolink.IDFlyUp) {
		t.Error("UI once event should raise fly_up pulse")
	}
	if !v.Bool(ufolink.IDUp) {
		t.Error("UI held event should set push input")
	}

	mp.Apply(testState(nil, nil, nil, nil), []Event{{ID: ufolink.IDUp, Edge: EdgeUp}})
	if v.Bool(ufolink.IDUp) {
		t.Error("UI up event should release push input")
	}
}

func TestMapper_SelectDevice(t *testing.T) {
	_, v, m := testMapper(t)
	m.setAxis(ufolink.IDThrottle, AxisBinding{Axis: 3})
	m.setButton("stop_btn", input.ButtonSource(7))
	m.setButton("aileron_trim_dec_btn", input.Source{Kind: input.SourceHat, Index: 2})
	mp := NewMapper(v, m, Descriptors)

	devices := []input.DeviceInfo{
		{Name: "tiny pad", Axes: 2, Buttons: 10, Hats: 1},   // too few axes
		{Name: "no hat", Axes: 6, Buttons: 12, Hats: 0},     // no hat
		{Name: "full stick", Axes: 4, Buttons: 8, Hats: 1},  // exactly enough
		{Name: "big stick", Axes: 8, Buttons: 16, Hats: 2},
	}
	if got := mp.SelectDevice(devices); got != 2 {
		t.Errorf("SelectDevice = %d, want 2 (first capable device)", got)
	}

	if got := mp.SelectDevice(devices[:2]); got != -1 {
		t.Errorf("SelectDevice with no capable device = %d, want -1", got)
	}
}
