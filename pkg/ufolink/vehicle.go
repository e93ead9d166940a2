// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package ufolink

import "time"

// Input ids understood by the Vehicle accessors. These match the keys
// used in joystick mapping files and persisted settings.
const (
	IDThrottle    = "throttle"
	IDRudder      = "rudder"
	IDAileron     = "aileron"
	IDElevator    = "elevator"
	IDHeight      = "height"
	IDFlyNoHead   = "fly_no_head"
	IDSpeed       = "speed"
	IDFly360Roll  = "fly_360_roll"
	IDEngineStart = "engine_start"
	IDFlyDown     = "fly_down"
	IDFlyUp       = "fly_up"
	IDFlyBack     = "fly_back"
	IDStop        = "stop"
	IDUp          = "up"
	IDMiddleSpeed = "middle_speed"
	IDControlType = "control_type"
	IDLight       = "light"
)

// pulse is a boolean command that auto-clears after a fixed timeout.
// Reading it returns the set value only while the timeout has not
// elapsed since the last set.
type pulse struct {
	timeout time.Duration
	setAt   time.Time
	value   bool
}

func (p *pulse) set(now time.Time, v bool) {
	p.setAt = now
	p.value = v
}

func (p *pulse) get(now time.Time) bool {
	if now.Sub(p.setAt) < p.timeout {
		return p.value
	}
	return false
}

// Vehicle holds the authoritative control state for one quadcopter.
//
// All axis and trim values are clamped to [-1, 1] on write; invariants
// between interdependent flags are enforced by the setters so every
// read observes a consistent state. Vehicle is not safe for concurrent
// use; the control tick is its single writer.
type Vehicle struct {
	now func() time.Time // injectable clock for pulse flags

	throttle, rudder, aileron, elevator                 float64
	throttleTrim, rudderTrim, aileronTrim, elevatorTrim float64

	height      bool
	speed       bool
	middleSpeed bool
	controlType bool
	light       bool
	productType int // 1..3

	flyNoHead bool
	flyBack   bool // observable only while flyNoHead is set
	stop      bool // mutually exclusive with up
	up        bool

	fly360Roll  pulse
	engineStart pulse
	flyDown     pulse
	flyUp       pulse
}

// NewVehicle returns a Vehicle with all axes neutral, light on and
// product type 1.
func NewVehicle() *Vehicle {
	return &Vehicle{
		now:         time.Now,
		light:       true,
		productType: 1,
		fly360Roll:  pulse{timeout: RollPulseTimeout},
		engineStart: pulse{timeout: EngineStartTimeout},
		flyDown:     pulse{timeout: AutoLandTimeout},
		flyUp:       pulse{timeout: AutoTakeOffTimeout},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SetAxis writes a control axis. Out-of-range values are clamped to
// [-1, 1], never rejected. Unknown ids are ignored.
func (v *Vehicle) SetAxis(id string, value float64) {
	value = clamp(value, -1, 1)
	switch id {
	case IDThrottle:
		v.throttle = value
	case IDRudder:
		v.rudder = value
	case IDAileron:
		v.aileron = value
	case IDElevator:
		v.elevator = value
	}
}

// Axis returns the current value of a control axis.
func (v *Vehicle) Axis(id string) float64 {
	switch id {
	case IDThrottle:
		return v.throttle
	case IDRudder:
		return v.rudder
	case IDAileron:
		return v.aileron
	case IDElevator:
		return v.elevator
	}
	return 0
}

// SetTrim writes an axis trim, clamped to [-1, 1].
func (v *Vehicle) SetTrim(id string, value float64) {
	value = clamp(value, -1, 1)
	switch id {
	case IDThrottle:
		v.throttleTrim = value
	case IDRudder:
		v.rudderTrim = value
	case IDAileron:
		v.aileronTrim = value
	case IDElevator:
		v.elevatorTrim = value
	}
}

// Trim returns the current trim of a control axis.
func (v *Vehicle) Trim(id string) float64 {
	switch id {
	case IDThrottle:
		return v.throttleTrim
	case IDRudder:
		return v.rudderTrim
	case IDAileron:
		return v.aileronTrim
	case IDElevator:
		return v.elevatorTrim
	}
	return 0
}

// AdjustTrim adds delta to an axis trim, clamping the result.
func (v *Vehicle) AdjustTrim(id string, delta float64) {
	v.SetTrim(id, v.Trim(id)+delta)
}

// SetBool writes a mode, pulse or push flag by id.
//
// Interdependent flags are kept consistent here rather than in the
// getters: setting fly_no_head clears the underlying fly_back, and
// stop/up force each other off.
func (v *Vehicle) SetBool(id string, value bool) {
	switch id {
	case IDHeight:
		v.height = value
	case IDSpeed:
		v.speed = value
	case IDMiddleSpeed:
		v.middleSpeed = value
	case IDControlType:
		v.controlType = value
	case IDLight:
		v.light = value
	case IDFlyNoHead:
		v.flyBack = false
		v.flyNoHead = value
	case IDFlyBack:
		v.flyBack = value
	case IDStop:
		if value {
			v.up = false
		}
		v.stop = value
	case IDUp:
		if value {
			v.stop = false
		}
		v.up = value
	case IDFly360Roll:
		v.fly360Roll.set(v.now(), value)
	case IDEngineStart:
		v.engineStart.set(v.now(), value)
	case IDFlyDown:
		v.flyDown.set(v.now(), value)
	case IDFlyUp:
		v.flyUp.set(v.now(), value)
	}
}

// Bool reads a mode, pulse or push flag by id. Pulse flags decay to
// false once their timeout elapses; fly_back reads true only while
// fly_no_head is also set.
func (v *Vehicle) Bool(id string) bool {
	switch id {
	case IDHeight:
		return v.height
	case IDSpeed:
		return v.speed
	case IDMiddleSpeed:
		return v.middleSpeed
	case IDControlType:
		return v.controlType
	case IDLight:
		return v.light
	case IDFlyNoHead:
		return v.flyNoHead
	case IDFlyBack:
		return v.flyNoHead && v.flyBack
	case IDStop:
		return v.stop
	case IDUp:
		return v.up
	case IDFly360Roll:
		return v.fly360Roll.get(v.now())
	case IDEngineStart:
		return v.engineStart.get(v.now())
	case IDFlyDown:
		return v.flyDown.get(v.now())
	case IDFlyUp:
		return v.flyUp.get(v.now())
	}
	return false
}

// SetProductType selects the vehicle hardware revision, clamped to 1..3.
func (v *Vehicle) SetProductType(t int) {
	if t < 1 {
		t = 1
	}
	if t > 3 {
		t = 3
	}
	v.productType = t
}

// ProductType returns the configured hardware revision.
func (v *Vehicle) ProductType() int {
	return v.productType
}

// Snapshot is a read-only copy of the vehicle state handed to
// presentation code once per tick.
type Snapshot struct {
	Throttle     float64 `json:"throttle"`
	Rudder       float64 `json:"rudder"`
	Aileron      float64 `json:"aileron"`
	Elevator     float64 `json:"elevator"`
	ThrottleTrim float64 `json:"throttle_trim"`
	RudderTrim   float64 `json:"rudder_trim"`
	AileronTrim  float64 `json:"aileron_trim"`
	ElevatorTrim float64 `json:"elevator_trim"`
	Height       bool    `json:"height"`
	Speed        bool    `json:"speed"`
	MiddleSpeed  bool    `json:"middle_speed"`
	ControlType  bool    `json:"control_type"`
	Light        bool    `json:"light"`
	FlyNoHead    bool    `json:"fly_no_head"`
	FlyBack      bool    `json:"fly_back"`
	Stop         bool    `json:"stop"`
	Up           bool    `json:"up"`
	Fly360Roll   bool    `json:"fly_360_roll"`
	EngineStart  bool    `json:"engine_start"`
	FlyDown      bool    `json:"fly_down"`
	FlyUp        bool    `json:"fly_up"`
	ProductType  int     `json:"product_type"`
}

// Snapshot captures the externally observable state, with pulse flags
// evaluated against the current clock.
func (v *Vehicle) Snapshot() Snapshot {
	now := v.now()
	return Snapshot{
		Throttle:     v.throttle,
		Rudder:       v.rudder,
		Aileron:      v.aileron,
		Elevator:     v.elevator,
		ThrottleTrim: v.throttleTrim,
		RudderTrim:   v.rudderTrim,
		AileronTrim:  v.aileronTrim,
		ElevatorTrim: v.elevatorTrim,
		Height:       v.height,
		Speed:        v.speed,
		MiddleSpeed:  v.middleSpeed,
		ControlType:  v.controlType,
		Light:        v.light,
		FlyNoHead:    v.flyNoHead,
		FlyBack:      v.flyNoHead && v.flyBack,
		Stop:         v.stop,
		Up:           v.up,
		Fly360Roll:   v.fly360Roll.get(now),
		EngineStart:  v.engineStart.get(now),
		FlyDown:      v.flyDown.get(now),
		FlyUp:        v.flyUp.get(now),
		ProductType:  v.productType,
	}
}
