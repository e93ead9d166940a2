// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package ufolink

import "math"

// PackBits packs up to 8 booleans into one byte, bit i set iff the
// i-th argument is true.
func PackBits(bits ...bool) byte {
	if len(bits) > 8 {
		panic("ufolink: PackBits takes at most 8 bits")
	}
	var b byte
	for i, set := range bits {
		if set {
			b |= 1 << i
		}
	}
	return b
}

// axisByte scales a [-1, 1] axis value to the 0..127 wire range,
// centered at 64.
func axisByte(v float64) byte {
	b := int(math.Floor(v*64)) + 64
	if b > 127 {
		b = 127
	}
	return byte(b)
}

// trimByte scales a [-1, 1] trim value to the 0..63 wire range,
// centered at 32.
func trimByte(v float64) byte {
	b := int(math.Floor(v*32)) + 32
	if b > 63 {
		b = 63
	}
	return byte(b)
}

// Encoder serializes Vehicle state into command frames and transmits
// them. It keeps the last successfully sent frame: the sequence byte
// and the diff byte of every new frame are computed against it, and it
// advances only when the transport confirms the send. A failed send
// leaves the encoder state untouched so the next frame is based on the
// last frame the vehicle actually received.
type Encoder struct {
	transport Transport
	prev      [FrameLen]byte
}

// NewEncoder returns an Encoder transmitting on the given transport.
func NewEncoder(transport Transport) *Encoder {
	return &Encoder{transport: transport}
}

// Encode builds the 26-byte command frame for the current vehicle
// state. It is deterministic: identical state and identical
// previous-frame buffer produce a byte-identical frame.
func (e *Encoder) Encode(v *Vehicle) [FrameLen]byte {
	var f [FrameLen]byte
	copy(f[:], frameHeader[:])
	f[offSeq] = e.prev[offSeq] + 1
	f[offDest] = destMarker
	f[offMarker] = payloadMarker
	f[offCmd] = commandID

	f[offThrottle] = axisByte(v.throttle)
	f[offRudder] = axisByte(v.rudder)
	f[offElevator] = axisByte(v.elevator)
	f[offAileron] = axisByte(v.aileron)

	f[offTrimT] = trimByte(v.throttleTrim)
	f[offTrimA] = trimByte(v.aileronTrim)
	f[offTrimE] = trimByte(v.elevatorTrim)
	f[offTrimR] = trimByte(v.rudderTrim)

	now := v.now()
	f[offFlags1] = PackBits(
		v.height,
		v.flyNoHead,
		v.speed,
		v.fly360Roll.get(now),
		v.engineStart.get(now),
		v.flyDown.get(now),
		v.flyUp.get(now),
	)
	f[offFlags2] = PackBits(
		v.flyNoHead && v.flyBack,
		v.stop,
		v.middleSpeed,
		v.up,
		v.controlType,
		v.productType&1 != 0,
		v.productType&2 != 0,
	)
	f[offLight] = PackBits(v.light)

	var sum int
	for i := offCmd; i < offChecksum; i++ {
		sum += int(f[i])
	}
	f[offChecksum] = byte(sum & 0x7F)

	// Diff byte: byte-wise difference against the previous sent frame,
	// computed with the diff slot itself still zero, reduced mod 255.
	var diff int
	for i := range f {
		diff += int(e.prev[i]) - int(f[i])
	}
	f[offDiff] = byte(((diff % 255) + 255) % 255)

	return f
}

// Transmit encodes the current vehicle state and hands the frame to
// the transport. On success the previous-frame buffer advances to the
// just-sent frame; on failure it is left unchanged and the error is
// returned. Send failures are tick-scoped and never retried.
func (e *Encoder) Transmit(v *Vehicle) error {
	f := e.Encode(v)
	if err := e.transport.Send(f[:]); err != nil {
		return err
	}
	e.prev = f
	return nil
}

// Sequence returns the sequence byte of the last successfully sent
// frame.
func (e *Encoder) Sequence() byte {
	return e.prev[offSeq]
}
