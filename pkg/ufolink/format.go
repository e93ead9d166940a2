// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package ufolink

import (
	"fmt"
	"strings"
)

// FormatFrame renders a command frame as annotated hex for protocol
// debugging.
func FormatFrame(f [FrameLen]byte) string {
	var b strings.Builder

	b.WriteString("[FRAME] ")
	for i, v := range f {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02X", v)
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "  seq=%d diff=0x%02X checksum=0x%02X\n",
		f[offSeq], f[offDiff], f[offChecksum])
	fmt.Fprintf(&b, "  throttle=%d rudder=%d elevator=%d aileron=%d\n",
		f[offThrottle], f[offRudder], f[offElevator], f[offAileron])
	fmt.Fprintf(&b, "  trim t/a/e/r=%d/%d/%d/%d flags=0x%02X,0x%02X light=0x%02X\n",
		f[offTrimT], f[offTrimA], f[offTrimE], f[offTrimR],
		f[offFlags1], f[offFlags2], f[offLight])

	return b.String()
}
