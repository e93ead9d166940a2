// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openufo/ufoctl/pkg/ufolink"
)

func TestLoad_MissingFileIsNoPriorState(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s != nil {
		t.Errorf("missing file should yield nil settings, got %+v", s)
	}
}

func TestLoad_MalformedFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{corrupt"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed settings")
	}
}

func TestSaveLoadApply_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	v := ufolink.NewVehicle()
	v.SetBool(ufolink.IDSpeed, true)
	v.SetBool(ufolink.IDLight, false)
	v.SetTrim(ufolink.IDRudder, 0.25)
	v.SetTrim(ufolink.IDElevator, -0.5)
	// Non-persisted state must not leak into the file.
	v.SetAxis(ufolink.IDThrottle, 1.0)
	v.SetBool(ufolink.IDStop, true)

	if err := Save(path, v); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	fresh := ufolink.NewVehicle()
	s.Apply(fresh)

	snap := fresh.Snapshot()
	if !snap.Speed || snap.Light {
		t.Errorf("speed/light = %v/%v, want true/false", snap.Speed, snap.Light)
	}
	if snap.RudderTrim != 0.25 || snap.ElevatorTrim != -0.5 {
		t.Errorf("trims = %v/%v, want 0.25/-0.5", snap.RudderTrim, snap.ElevatorTrim)
	}
	if snap.Throttle != 0 || snap.Stop {
		t.Errorf("non-persisted state leaked: throttle=%v stop=%v", snap.Throttle, snap.Stop)
	}
}

func TestApply_PartialSettings(t *testing.T) {
	speed := true
	s := &Settings{Speed: &speed}

	v := ufolink.NewVehicle()
	s.Apply(v)

	snap := v.Snapshot()
	if !snap.Speed {
		t.Error("speed should be applied")
	}
	if !snap.Light {
		t.Error("absent light field should leave the default on")
	}

	// nil settings are a no-op
	var none *Settings
	none.Apply(v)
}
