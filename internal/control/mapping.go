// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package control

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/openufo/ufoctl/internal/input"
)

// Mapping file keys are derived from descriptor ids:
//
//	"<id>_axis":          AXIS | [AXIS, INVERTED] | null
//	"<id>_btn":           NR | ["btn", NR] | ["hat", NR] | null
//	"<id>_trim_dec_btn":  same as _btn
//	"<id>_trim_inc_btn":  same as _btn
//	"DEADZONE":           float
//
// Hat entries use the linearized index hat*4+direction. Null or
// negative values mean "unmapped".
const (
	axisKeySuffix = "_axis"
	btnKeySuffix  = "_btn"
	deadzoneKey   = "DEADZONE"
)

// AxisBinding associates a logical axis with a physical axis index.
type AxisBinding struct {
	Axis   int
	Invert bool
}

// Mapping is the persisted joystick-to-vehicle association. It is
// built once (by the calibration wizard or loaded from disk) and read
// only for the remainder of the session.
type Mapping struct {
	Deadzone float64
	axes     map[string]AxisBinding  // descriptor id -> binding
	buttons  map[string]input.Source // file key -> source
}

// NewMapping returns an empty mapping with the default deadzone.
func NewMapping() *Mapping {
	return &Mapping{
		Deadzone: input.DefaultDeadzone,
		axes:     map[string]AxisBinding{},
		buttons:  map[string]input.Source{},
	}
}

// Axis returns the physical binding of a logical axis.
func (m *Mapping) Axis(id string) (AxisBinding, bool) {
	b, ok := m.axes[id]
	return b, ok
}

// Button returns the source mapped to a non-axis input.
func (m *Mapping) Button(id string) (input.Source, bool) {
	s, ok := m.buttons[id+btnKeySuffix]
	return s, ok
}

// TrimDec returns the source of an axis's trim-decrease button.
func (m *Mapping) TrimDec(id string) (input.Source, bool) {
	s, ok := m.buttons[id+"_trim_dec"+btnKeySuffix]
	return s, ok
}

// TrimInc returns the source of an axis's trim-increase button.
func (m *Mapping) TrimInc(id string) (input.Source, bool) {
	s, ok := m.buttons[id+"_trim_inc"+btnKeySuffix]
	return s, ok
}

func (m *Mapping) setAxis(id string, b AxisBinding)       { m.axes[id] = b }
func (m *Mapping) setButton(key string, src input.Source) { m.buttons[key] = src }

// RequiredCapabilities returns the minimum axis/button/hat counts a
// device must have to satisfy every index this mapping references.
func (m *Mapping) RequiredCapabilities() input.DeviceInfo {
	var req input.DeviceInfo
	for _, b := range m.axes {
		if b.Axis+1 > req.Axes {
			req.Axes = b.Axis + 1
		}
	}
	for _, s := range m.buttons {
		switch s.Kind {
		case input.SourceButton:
			if s.Index+1 > req.Buttons {
				req.Buttons = s.Index + 1
			}
		case input.SourceHat:
			if s.Index/4+1 > req.Hats {
				req.Hats = s.Index/4 + 1
			}
		}
	}
	return req
}

// LoadMapping reads and parses a mapping file. A malformed file is an
// error; the caller must not proceed with a corrupt mapping.
func LoadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}
	m, err := ParseMapping(data)
	if err != nil {
		return nil, fmt.Errorf("mapping file %s: %w", path, err)
	}
	return m, nil
}

// ParseMapping parses the mapping file format. Unknown keys (such as
// "_comment") are ignored; null or negative entries are unmapped.
func ParseMapping(data []byte) (*Mapping, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	m := NewMapping()
	for key, val := range raw {
		switch {
		case key == deadzoneKey:
			var d float64
			if err := json.Unmarshal(val, &d); err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			if d >= 0 {
				m.Deadzone = d
			}
		case strings.HasSuffix(key, axisKeySuffix):
			b, ok, err := parseAxisEntry(val)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			if ok {
				m.setAxis(strings.TrimSuffix(key, axisKeySuffix), b)
			}
		case strings.HasSuffix(key, btnKeySuffix):
			src, ok, err := parseButtonEntry(val)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			if ok {
				m.setButton(key, src)
			}
		}
	}
	return m, nil
}

func parseAxisEntry(val json.RawMessage) (AxisBinding, bool, error) {
	if string(val) == "null" {
		return AxisBinding{}, false, nil
	}
	var idx int
	if err := json.Unmarshal(val, &idx); err == nil {
		if idx < 0 {
			return AxisBinding{}, false, nil
		}
		return AxisBinding{Axis: idx}, true, nil
	}
	var pair []json.RawMessage
	if err := json.Unmarshal(val, &pair); err != nil || len(pair) != 2 {
		return AxisBinding{}, false, fmt.Errorf("want AXIS or [AXIS, INVERTED]")
	}
	var b AxisBinding
	if err := json.Unmarshal(pair[0], &b.Axis); err != nil {
		return AxisBinding{}, false, fmt.Errorf("axis index: %w", err)
	}
	if err := json.Unmarshal(pair[1], &b.Invert); err != nil {
		return AxisBinding{}, false, fmt.Errorf("invert flag: %w", err)
	}
	if b.Axis < 0 {
		return AxisBinding{}, false, nil
	}
	return b, true, nil
}

func parseButtonEntry(val json.RawMessage) (input.Source, bool, error) {
	if string(val) == "null" {
		return input.Source{}, false, nil
	}
	var idx int
	if err := json.Unmarshal(val, &idx); err == nil {
		if idx < 0 {
			return input.Source{}, false, nil
		}
		return input.ButtonSource(idx), true, nil
	}
	var pair []json.RawMessage
	if err := json.Unmarshal(val, &pair); err != nil || len(pair) != 2 {
		return input.Source{}, false, fmt.Errorf("want NR, [\"btn\", NR] or [\"hat\", NR]")
	}
	var kind string
	if err := json.Unmarshal(pair[0], &kind); err != nil {
		return input.Source{}, false, fmt.Errorf("source kind: %w", err)
	}
	if err := json.Unmarshal(pair[1], &idx); err != nil {
		return input.Source{}, false, fmt.Errorf("source index: %w", err)
	}
	if idx < 0 {
		return input.Source{}, false, nil
	}
	switch kind {
	case "btn":
		return input.ButtonSource(idx), true, nil
	case "hat":
		return input.Source{Kind: input.SourceHat, Index: idx}, true, nil
	}
	return input.Source{}, false, fmt.Errorf("unknown source kind %q", kind)
}

// Save writes the mapping in the file format, one key per line.
func (m *Mapping) Save(path string) error {
	out := make(map[string]interface{}, len(m.axes)+len(m.buttons)+1)
	out[deadzoneKey] = m.Deadzone
	for id, b := range m.axes {
		out[id+axisKeySuffix] = []interface{}{b.Axis, b.Invert}
	}
	for key, src := range m.buttons {
		switch src.Kind {
		case input.SourceButton:
			out[key] = []interface{}{"btn", src.Index}
		case input.SourceHat:
			out[key] = []interface{}{"hat", src.Index}
		}
	}

	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write mapping file: %w", err)
	}
	return nil
}
