// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package control

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/openufo/ufoctl/internal/input"
)

// Axis capture thresholds. An axis is captured at near-full deflection
// and stays locked until it returns near rest, so a still-deflected
// stick cannot immediately claim the next prompt.
const (
	captureThreshold = 0.9
	releaseThreshold = 0.1
)

// ErrAborted is returned when the wizard was exited before finishing;
// nothing captured in the run survives.
var ErrAborted = errors.New("calibration aborted")

// ErrIncomplete is returned when the mapping is requested before the
// wizard reached its terminal state.
var ErrIncomplete = errors.New("calibration not finished")

type wizardStep int

const (
	stepPrimary wizardStep = iota
	stepTrimDec
	stepTrimInc
)

// Wizard interactively builds a Mapping by walking the descriptor
// table. Each tick it is fed the current normalized input state; one
// capture or skip advances it by exactly one step. Trim-capable axes
// contribute two extra steps for their trim buttons.
type Wizard struct {
	descs   []Descriptor
	mapping *Mapping
	idx     int
	sub     wizardStep
	locked  map[int]bool
	aborted bool
}

// NewWizard starts a calibration run over the given descriptors. The
// deadzone is recorded into the resulting mapping.
func NewWizard(descs []Descriptor, deadzone float64) *Wizard {
	m := NewMapping()
	m.Deadzone = deadzone
	return &Wizard{
		descs:   descs,
		mapping: m,
		locked:  map[int]bool{},
	}
}

// Done reports whether every descriptor has been captured or skipped.
func (w *Wizard) Done() bool {
	return !w.aborted && w.idx >= len(w.descs)
}

// Aborted reports whether the run was exited early.
func (w *Wizard) Aborted() bool {
	return w.aborted
}

// Abort exits the wizard and discards the entire in-progress mapping.
func (w *Wizard) Abort() {
	w.aborted = true
}

// Skip advances one step without recording a mapping entry.
func (w *Wizard) Skip() {
	if w.aborted || w.Done() {
		return
	}
	w.advance()
}

// Step feeds one tick of normalized input into the wizard. It returns
// true when a capture was made and the wizard advanced.
func (w *Wizard) Step(st input.State) bool {
	if w.aborted || w.Done() {
		return false
	}

	// Unlock axes that have returned to rest.
	for i, v := range st.Axes {
		if w.locked[i] && math.Abs(v) < releaseThreshold {
			delete(w.locked, i)
		}
	}

	d := w.descs[w.idx]
	if d.Kind == KindAxis && w.sub == stepPrimary {
		for i, v := range st.Axes {
			if math.Abs(v) >= captureThreshold && !w.locked[i] {
				w.mapping.setAxis(d.ID, AxisBinding{Axis: i, Invert: v < 0})
				w.locked[i] = true
				w.advance()
				return true
			}
		}
		return false
	}

	src, ok := firstDown(st)
	if !ok {
		return false
	}
	w.mapping.setButton(w.currentKey(), src)
	w.advance()
	return true
}

// currentKey is the mapping file key for the slot being calibrated.
func (w *Wizard) currentKey() string {
	d := w.descs[w.idx]
	switch w.sub {
	case stepTrimDec:
		return d.ID + "_trim_dec" + btnKeySuffix
	case stepTrimInc:
		return d.ID + "_trim_inc" + btnKeySuffix
	}
	return d.ID + btnKeySuffix
}

func (w *Wizard) advance() {
	d := w.descs[w.idx]
	if d.Kind == KindAxis && d.Trim {
		switch w.sub {
		case stepPrimary:
			w.sub = stepTrimDec
			return
		case stepTrimDec:
			w.sub = stepTrimInc
			return
		}
	}
	w.sub = stepPrimary
	w.idx++
}

// Prompt returns the instruction for the current step.
func (w *Wizard) Prompt() string {
	if w.aborted {
		return "Calibration aborted, mapping discarded"
	}
	if w.Done() {
		return "Calibration complete"
	}
	d := w.descs[w.idx]
	switch {
	case d.Kind == KindAxis && w.sub == stepPrimary:
		return fmt.Sprintf("Push the %s axis to full deflection", d.Desc)
	case w.sub == stepTrimDec:
		return fmt.Sprintf("Press the button for %s trim decrease", d.Desc)
	case w.sub == stepTrimInc:
		return fmt.Sprintf("Press the button for %s trim increase", d.Desc)
	}
	return fmt.Sprintf("Press the button for %s", d.Desc)
}

// Progress returns completed and total capture/skip steps. Every
// descriptor is one step; trim-capable axes add two.
func (w *Wizard) Progress() (done, total int) {
	for i, d := range w.descs {
		steps := 1
		if d.Kind == KindAxis && d.Trim {
			steps = 3
		}
		total += steps
		if i < w.idx {
			done += steps
		}
	}
	if w.idx < len(w.descs) {
		done += int(w.sub)
	}
	return done, total
}

// Mapping returns the accumulated mapping once the wizard finished.
func (w *Wizard) Mapping() (*Mapping, error) {
	if w.aborted {
		return nil, ErrAborted
	}
	if !w.Done() {
		return nil, ErrIncomplete
	}
	return w.mapping, nil
}

// firstDown picks the first source with a down edge this tick, in
// stable order (buttons before hats, ascending index), so capture is
// deterministic when several sources fire together.
func firstDown(st input.State) (input.Source, bool) {
	if len(st.Down) == 0 {
		return input.Source{}, false
	}
	sources := make([]input.Source, 0, len(st.Down))
	for src := range st.Down {
		sources = append(sources, src)
	}
	sort.Slice(sources, func(i, j int) bool {
		if sources[i].Kind != sources[j].Kind {
			return sources[i].Kind < sources[j].Kind
		}
		return sources[i].Index < sources[j].Index
	})
	return sources[0], true
}
