// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

// Package ufolink implements the proprietary UDP control protocol spoken
// by WiFi UFO class quadcopters.
//
// The vehicle listens on a fixed host/port and consumes 26-byte command
// frames at a fixed rate. A frame carries the four control axes, their
// trims, packed mode/command flags, a per-frame sequence byte and a diff
// byte derived from the previously acknowledged frame. The package holds
// the authoritative vehicle control state, encodes it into wire frames
// and hands them to a Transport.
package ufolink

import "time"

// Vehicle network endpoints
const (
	DefaultHost        = "192.168.99.1"
	DefaultControlPort = 9001
	DefaultRTSPPort    = 554
	DefaultRTSPPath    = "/11"
)

// UpdateInterval is the control tick period. Frames must be sent
// continuously or the vehicle drops to failsafe.
const UpdateInterval = 50 * time.Millisecond

// FrameLen is the fixed size of a command frame.
const FrameLen = 26

// Frame layout offsets
const (
	offSeq      = 7  // sequence byte, previous + 1 mod 256
	offDest     = 8  // destination marker
	offDiff     = 10 // diff byte against previous sent frame
	offMarker   = 12 // payload marker 0xFF
	offCmd      = 13 // command id 0x02
	offThrottle = 14
	offRudder   = 15
	offElevator = 16
	offAileron  = 17
	offTrimT    = 18 // throttle trim
	offTrimA    = 19 // aileron trim
	offTrimE    = 20 // elevator trim
	offTrimR    = 21 // rudder trim
	offFlags1   = 22
	offFlags2   = 23
	offLight    = 24
	offChecksum = 25
)

// Fixed frame bytes
const (
	destMarker    = 0xE0
	payloadMarker = 0xFF
	commandID     = 0x02
)

// Pulse command timeouts. A pulse flag reads true only this long after
// it was set; the receiver treats expiry as release.
const (
	RollPulseTimeout   = 500 * time.Millisecond
	EngineStartTimeout = time.Second
	AutoLandTimeout    = time.Second
	AutoTakeOffTimeout = time.Second
)

// frameHeader precedes every command frame on the wire.
var frameHeader = [7]byte{0x5B, 0x52, 0x74, 0x3E, 0x1A, 0x00, 0x01}
