// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package input

import "math"

// DefaultDeadzone is used when the mapping file does not configure one.
const DefaultDeadzone = 0.1

// NormalizeAxis clamps a raw axis reading to [-1, 1], zeroes it inside
// the deadzone and linearly rescales the remainder to full range.
func NormalizeAxis(raw, deadzone float64) float64 {
	raw = math.Max(-1, math.Min(1, raw))
	abs := math.Abs(raw)
	if abs < deadzone {
		return 0
	}
	norm := math.Min(1, (abs-deadzone)/(1-deadzone))
	if raw < 0 {
		return -norm
	}
	return norm
}

// State is the normalized view of one tick's device sample: rescaled
// axis values plus the discrete edge and level sets.
type State struct {
	Axes   []float64
	Down   map[Source]bool // inactive -> active this tick
	Up     map[Source]bool // active -> inactive this tick
	Active map[Source]bool // currently held, level based
}

func emptyState() State {
	return State{
		Down:   map[Source]bool{},
		Up:     map[Source]bool{},
		Active: map[Source]bool{},
	}
}

// Normalizer converts raw device samples into States, tracking the
// previous active level of every discrete source to detect edges.
type Normalizer struct {
	deadzone float64
	prev     map[Source]bool
}

// NewNormalizer returns a Normalizer with the given axis deadzone.
func NewNormalizer(deadzone float64) *Normalizer {
	return &Normalizer{deadzone: deadzone, prev: map[Source]bool{}}
}

// Update consumes one device sample and returns the normalized state.
// When no device is present (ok=false) it returns empty sets and no
// axes without disturbing the edge-tracking state, so a device
// reappearing mid-hold does not replay a down edge.
func (n *Normalizer) Update(s Sample, ok bool) State {
	st := emptyState()
	if !ok {
		return st
	}

	st.Axes = make([]float64, len(s.Axes))
	for i, raw := range s.Axes {
		st.Axes[i] = NormalizeAxis(raw, n.deadzone)
	}

	for i, held := range s.Buttons {
		if held {
			st.Active[ButtonSource(i)] = true
		}
	}
	for i, hat := range s.Hats {
		// A hat at rest (0,0) asserts no direction.
		if hat[0] == -1 {
			st.Active[HatSource(i, HatLeft)] = true
		}
		if hat[0] == 1 {
			st.Active[HatSource(i, HatRight)] = true
		}
		if hat[1] == 1 {
			st.Active[HatSource(i, HatUp)] = true
		}
		if hat[1] == -1 {
			st.Active[HatSource(i, HatDown)] = true
		}
	}

	for src := range st.Active {
		if !n.prev[src] {
			st.Down[src] = true
		}
	}
	for src := range n.prev {
		if !st.Active[src] {
			st.Up[src] = true
		}
	}

	n.prev = make(map[Source]bool, len(st.Active))
	for src := range st.Active {
		n.prev[src] = true
	}
	return st
}
