// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package control

import (
	"testing"

	"github.com/openufo/ufoctl/internal/input"
	"github.com/openufo/ufoctl/pkg/ufolink"
)

func axisState(values ...float64) input.State {
	return testState(values, nil, nil, nil)
}

func downState(src input.Source) input.State {
	return testState(make([]float64, 4), []input.Source{src}, nil, []input.Source{src})
}

func idleState() input.State {
	return testState(make([]float64, 4), nil, nil, nil)
}

// runFullWizard drives a complete calibration over the standard
// descriptor table: axis i captured on axis i, every button slot on a
// distinct button.
func runFullWizard(t *testing.T) (*Wizard, int) {
	t.Helper()
	w := NewWizard(Descriptors, 0.1)

	axisIdx := 0
	btnIdx := 0
	actions := 0
	for !w.Done() {
		var st input.State
		if d := Descriptors[w.idx]; d.Kind == KindAxis && w.sub == stepPrimary {
			axes := make([]float64, 4)
			axes[axisIdx] = 1.0
			st = axisState(axes...)
			axisIdx++
		} else {
			st = downState(input.ButtonSource(btnIdx))
			btnIdx++
		}
		if !w.Step(st) {
			t.Fatalf("capture failed at descriptor %d sub %d", w.idx, w.sub)
		}
		actions++
		// recenter everything between prompts
		w.Step(idleState())
	}
	return w, actions
}

func TestWizard_FullRunCapturesAllSlots(t *testing.T) {
	w, actions := runFullWizard(t)

	// 14 descriptors, 3 trim-capable axes: N + 2T steps.
	if want := len(Descriptors) + 2*3; actions != want {
		t.Errorf("capture actions = %d, want %d", actions, want)
	}

	m, err := w.Mapping()
	if err != nil {
		t.Fatalf("Mapping: %v", err)
	}

	entries := len(m.axes) + len(m.buttons)
	if want := len(Descriptors) + 2*3; entries != want {
		t.Errorf("mapping entries = %d, want %d", entries, want)
	}

	if b, ok := m.Axis(ufolink.IDThrottle); !ok || b.Axis != 0 || b.Invert {
		t.Errorf("throttle binding = %+v ok=%v, want axis 0 non-inverted", b, ok)
	}
	if _, ok := m.TrimDec(ufolink.IDRudder); !ok {
		t.Error("rudder trim decrease should be captured")
	}
	if _, ok := m.Button(ufolink.IDLight); !ok {
		t.Error("light button should be captured")
	}
}

func TestWizard_NegativeDeflectionCapturesInvert(t *testing.T) {
	w := NewWizard(Descriptors, 0.1)
	if !w.Step(axisState(0, -1.0, 0, 0)) {
		t.Fatal("expected axis capture")
	}
	m := w.mapping
	if b, ok := m.Axis(ufolink.IDThrottle); !ok || b != (AxisBinding{Axis: 1, Invert: true}) {
		t.Errorf("binding = %+v ok=%v, want axis 1 inverted", b, ok)
	}
}

func TestWizard_LockedAxisNotRecaptured(t *testing.T) {
	w := NewWizard(Descriptors, 0.1)

	// Throttle captured on axis 0, which stays deflected.
	if !w.Step(axisState(1.0, 0, 0, 0)) {
		t.Fatal("expected throttle capture")
	}

	// Rudder prompt: axis 0 still at full deflection must be ignored.
	if w.Step(axisState(1.0, 0, 0, 0)) {
		t.Error("still-deflected axis must not be recaptured")
	}

	// Another axis deflecting is captured fine.
	if !w.Step(axisState(1.0, 1.0, 0, 0)) {
		t.Fatal("expected rudder capture on axis 1")
	}
	if b, _ := w.mapping.Axis(ufolink.IDRudder); b.Axis != 1 {
		t.Errorf("rudder bound to axis %d, want 1", b.Axis)
	}
}

func TestWizard_AxisUnlocksAfterRecentering(t *testing.T) {
	w := NewWizard(Descriptors, 0.1)

	// Throttle captured on axis 0; once it recenters the same axis may
	// be captured again for the rudder prompt.
	w.Step(axisState(1.0, 0, 0, 0))
	w.Step(axisState(0.05, 0, 0, 0)) // recenters and unlocks, captures nothing
	if !w.Step(axisState(1.0, 0, 0, 0)) {
		t.Error("recentered axis should be capturable again")
	}
	if b, _ := w.mapping.Axis(ufolink.IDRudder); b.Axis != 0 {
		t.Errorf("rudder bound to axis %d, want 0", b.Axis)
	}
}

func TestWizard_SkipAdvancesWithoutEntry(t *testing.T) {
	w := NewWizard(Descriptors, 0.1)
	total := 0
	for !w.Done() {
		w.Skip()
		total++
	}
	if want := len(Descriptors) + 2*3; total != want {
		t.Errorf("skips to terminal state = %d, want %d", total, want)
	}

	m, err := w.Mapping()
	if err != nil {
		t.Fatalf("Mapping: %v", err)
	}
	if entries := len(m.axes) + len(m.buttons); entries != 0 {
		t.Errorf("skipped run should capture nothing, got %d entries", entries)
	}
}

func TestWizard_AbortDiscardsEverything(t *testing.T) {
	w := NewWizard(Descriptors, 0.1)
	w.Step(axisState(1.0, 0, 0, 0))
	w.Step(downState(input.ButtonSource(0)))
	w.Abort()

	if !w.Aborted() {
		t.Error("wizard should report aborted")
	}
	if w.Done() {
		t.Error("aborted wizard must not report done")
	}
	if _, err := w.Mapping(); err != ErrAborted {
		t.Errorf("Mapping after abort = %v, want ErrAborted", err)
	}
	if w.Step(downState(input.ButtonSource(1))) {
		t.Error("aborted wizard must not capture")
	}
}

func TestWizard_TrimStepsOnlyForTrimCapableAxes(t *testing.T) {
	w := NewWizard(Descriptors, 0.1)

	// Throttle has no trim: a single capture moves to the next
	// descriptor (rudder primary).
	w.Step(axisState(1.0, 0, 0, 0))
	if w.idx != 1 || w.sub != stepPrimary {
		t.Errorf("after throttle capture: idx=%d sub=%d, want 1/primary", w.idx, w.sub)
	}

	// Rudder is trim capable: primary capture stays on the descriptor,
	// moving to the trim sub-steps.
	w.Step(axisState(0, 1.0, 0, 0))
	if w.idx != 1 || w.sub != stepTrimDec {
		t.Errorf("after rudder capture: idx=%d sub=%d, want 1/trimDec", w.idx, w.sub)
	}
	w.Step(downState(input.ButtonSource(0)))
	if w.idx != 1 || w.sub != stepTrimInc {
		t.Errorf("after trim dec capture: idx=%d sub=%d, want 1/trimInc", w.idx, w.sub)
	}
	w.Step(downState(input.ButtonSource(1)))
	if w.idx != 2 || w.sub != stepPrimary {
		t.Errorf("after trim inc capture: idx=%d sub=%d, want 2/primary", w.idx, w.sub)
	}
}

func TestWizard_ProgressCounts(t *testing.T) {
	w := NewWizard(Descriptors, 0.1)
	done, total := w.Progress()
	if done != 0 {
		t.Errorf("initial done = %d, want 0", done)
	}
	if want := len(Descriptors) + 2*3; total != want {
		t.Errorf("total = %d, want %d", total, want)
	}

	w.Step(axisState(1.0, 0, 0, 0)) // throttle
	w.Step(axisState(0, 1.0, 0, 0)) // rudder primary
	w.Step(downState(input.ButtonSource(0)))

	done, _ = w.Progress()
	if done != 3 {
		t.Errorf("done after three captures = %d, want 3", done)
	}

	full, _ := runFullWizard(t)
	done, total = full.Progress()
	if done != total {
		t.Errorf("completed wizard progress = %d/%d", done, total)
	}
}

func TestWizard_NoSpuriousCaptureWhenIdle(t *testing.T) {
	w := NewWizard(Descriptors, 0.1)
	for i := 0; i < 10; i++ {
		if w.Step(idleState()) {
			t.Fatal("idle input must not capture")
		}
	}
	if w.idx != 0 || w.sub != stepPrimary {
		t.Errorf("wizard advanced without input: idx=%d sub=%d", w.idx, w.sub)
	}
}
