// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openufo/ufoctl/pkg/ufolink"
)

var (
	dumpCount int
	dumpSend  bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print encoded command frames for protocol debugging",
	Long: `Encode a sequence of neutral command frames and print them as
annotated hex.

Shows the sequence, diff and checksum bytes evolving across consecutive
frames. With --send the frames are also transmitted to the vehicle,
which is useful to verify the control link without a joystick.`,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().IntVar(&dumpCount, "count", 4, "Number of frames to encode")
	dumpCmd.Flags().BoolVar(&dumpSend, "send", false, "Also transmit the frames to the vehicle")
	rootCmd.AddCommand(dumpCmd)
}

// discardTransport accepts every frame so the encoder sequence advances
// without a vehicle on the other end.
type discardTransport struct{}

func (discardTransport) Send(frame []byte) error { return nil }
func (discardTransport) Close() error            { return nil }

func runDump(cmd *cobra.Command, args []string) error {
	var transport ufolink.Transport = discardTransport{}
	if dumpSend {
		udp, err := ufolink.DialUDP(vehicleHost, vehiclePort)
		if err != nil {
			return err
		}
		defer udp.Close()
		transport = udp
	}

	vehicle := ufolink.NewVehicle()
	encoder := ufolink.NewEncoder(transport)

	for i := 0; i < dumpCount; i++ {
		frame := encoder.Encode(vehicle)
		fmt.Print(ufolink.FormatFrame(frame))
		if err := encoder.Transmit(vehicle); err != nil {
			return fmt.Errorf("send frame %d: %w", i+1, err)
		}
	}
	return nil
}
