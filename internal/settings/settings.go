// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

// Package settings round-trips the persistable subset of vehicle state
// (speed, light and the four trims) across sessions.
package settings

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/openufo/ufoctl/pkg/ufolink"
)

// Settings is a partial snapshot; nil fields were absent from the file
// and leave the vehicle default untouched.
type Settings struct {
	Speed        *bool    `json:"speed,omitempty"`
	Light        *bool    `json:"light,omitempty"`
	ThrottleTrim *float64 `json:"throttle_trim,omitempty"`
	RudderTrim   *float64 `json:"rudder_trim,omitempty"`
	AileronTrim  *float64 `json:"aileron_trim,omitempty"`
	ElevatorTrim *float64 `json:"elevator_trim,omitempty"`
}

// Load reads persisted settings. A missing file means "no prior state"
// and returns nil without error; unparseable content is an error the
// caller must treat as fatal.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("settings file %s: %w", path, err)
	}
	return &s, nil
}

// Apply seeds a vehicle from the loaded subset.
func (s *Settings) Apply(v *ufolink.Vehicle) {
	if s == nil {
		return
	}
	if s.Speed != nil {
		v.SetBool(ufolink.IDSpeed, *s.Speed)
	}
	if s.Light != nil {
		v.SetBool(ufolink.IDLight, *s.Light)
	}
	if s.ThrottleTrim != nil {
		v.SetTrim(ufolink.IDThrottle, *s.ThrottleTrim)
	}
	if s.RudderTrim != nil {
		v.SetTrim(ufolink.IDRudder, *s.RudderTrim)
	}
	if s.AileronTrim != nil {
		v.SetTrim(ufolink.IDAileron, *s.AileronTrim)
	}
	if s.ElevatorTrim != nil {
		v.SetTrim(ufolink.IDElevator, *s.ElevatorTrim)
	}
}

// Save writes the persistable subset of the current vehicle state.
func Save(path string, v *ufolink.Vehicle) error {
	snap := v.Snapshot()
	s := Settings{
		Speed:        &snap.Speed,
		Light:        &snap.Light,
		ThrottleTrim: &snap.ThrottleTrim,
		RudderTrim:   &snap.RudderTrim,
		AileronTrim:  &snap.AileronTrim,
		ElevatorTrim: &snap.ElevatorTrim,
	}
	data, err := json.Marshal(&s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
