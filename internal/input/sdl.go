// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package input

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/jupiterrider/purego-sdl3/sdl"
)

const sdlPollDelayNS = 16_000_000 // ~60Hz, faster than the control tick

// SDL hat bitmask values
const (
	sdlHatUp    uint8 = 0x01
	sdlHatRight uint8 = 0x02
	sdlHatDown  uint8 = 0x04
	sdlHatLeft  uint8 = 0x08
)

// SDLDriver reads joysticks through the SDL3 joystick API. SDL wants
// its event pump on a single locked OS thread, so the driver runs its
// own poll loop and the control tick reads the latest snapshot.
type SDLDriver struct {
	mu      sync.RWMutex
	devices []DeviceInfo
	samples []Sample

	quit chan struct{}
	done chan struct{}
}

// OpenSDL initializes the SDL joystick subsystem and starts polling.
func OpenSDL() (*SDLDriver, error) {
	d := &SDLDriver{
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	initErr := make(chan error, 1)
	go d.run(initErr)
	if err := <-initErr; err != nil {
		return nil, err
	}
	return d, nil
}

// Devices lists the currently attached joysticks.
func (d *SDLDriver) Devices() []DeviceInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]DeviceInfo, len(d.devices))
	copy(out, d.devices)
	return out
}

// Sample returns the latest snapshot of device i.
func (d *SDLDriver) Sample(i int) (Sample, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i < 0 || i >= len(d.samples) {
		return Sample{}, false
	}
	return d.samples[i], true
}

// Close stops the poll loop and shuts SDL down.
func (d *SDLDriver) Close() error {
	close(d.quit)
	<-d.done
	return nil
}

func (d *SDLDriver) run(initErr chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(d.done)

	if !sdl.Init(sdl.InitJoystick) {
		initErr <- fmt.Errorf("SDL joystick init failed: %s", sdl.GetError())
		return
	}
	defer sdl.Quit()
	initErr <- nil

	open := make(map[sdl.JoystickID]*sdl.Joystick)
	var order []sdl.JoystickID

	for _, id := range sdl.GetJoysticks() {
		if js := sdl.OpenJoystick(id); js != nil {
			open[id] = js
			order = append(order, id)
		}
	}

	for {
		select {
		case <-d.quit:
			for _, js := range open {
				sdl.CloseJoystick(js)
			}
			return
		default:
		}

		var event sdl.Event
		for sdl.PollEvent(&event) {
			switch event.Type() {
			case sdl.EventJoystickAdded:
				id := event.JDevice().Which
				if _, ok := open[id]; ok {
					break
				}
				if js := sdl.OpenJoystick(id); js != nil {
					open[id] = js
					order = append(order, id)
				}
			case sdl.EventJoystickRemoved:
				id := event.JDevice().Which
				if js, ok := open[id]; ok {
					sdl.CloseJoystick(js)
					delete(open, id)
					for i, o := range order {
						if o == id {
							order = append(order[:i], order[i+1:]...)
							break
						}
					}
				}
			}
		}

		devices := make([]DeviceInfo, 0, len(order))
		samples := make([]Sample, 0, len(order))
		for _, id := range order {
			js := open[id]
			if !sdl.JoystickConnected(js) {
				continue
			}
			devices = append(devices, DeviceInfo{
				Name:    sdl.GetJoystickName(js),
				Axes:    int(sdl.GetNumJoystickAxes(js)),
				Buttons: int(sdl.GetNumJoystickButtons(js)),
				Hats:    int(sdl.GetNumJoystickHats(js)),
			})
			samples = append(samples, snapshotJoystick(js))
		}

		d.mu.Lock()
		d.devices = devices
		d.samples = samples
		d.mu.Unlock()

		sdl.DelayNS(sdlPollDelayNS)
	}
}

func snapshotJoystick(js *sdl.Joystick) Sample {
	numAxes := sdl.GetNumJoystickAxes(js)
	numButtons := sdl.GetNumJoystickButtons(js)
	numHats := sdl.GetNumJoystickHats(js)

	s := Sample{
		Axes:    make([]float64, numAxes),
		Buttons: make([]bool, numButtons),
		Hats:    make([][2]int, numHats),
	}
	for i := int32(0); i < numAxes; i++ {
		s.Axes[i] = float64(sdl.GetJoystickAxis(js, i)) / 32767.0
	}
	for i := int32(0); i < numButtons; i++ {
		s.Buttons[i] = sdl.GetJoystickButton(js, i)
	}
	for i := int32(0); i < numHats; i++ {
		s.Hats[i] = hatToVector(sdl.GetJoystickHat(js, i))
	}
	return s
}

func hatToVector(mask uint8) [2]int {
	var v [2]int
	if mask&sdlHatLeft != 0 {
		v[0] = -1
	}
	if mask&sdlHatRight != 0 {
		v[0] = 1
	}
	if mask&sdlHatUp != 0 {
		v[1] = 1
	}
	if mask&sdlHatDown != 0 {
		v[1] = -1
	}
	return v
}
