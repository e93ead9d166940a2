// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/openufo/ufoctl/internal/control"
	"github.com/openufo/ufoctl/internal/monitor"
	"github.com/openufo/ufoctl/internal/settings"
	"github.com/openufo/ufoctl/internal/video"
	"github.com/openufo/ufoctl/pkg/ufolink"
)

var flyCmd = &cobra.Command{
	Use:   "fly <mapping-file>",
	Short: "Fly the vehicle with a calibrated joystick",
	Long: `Fly the vehicle using the given joystick mapping file.

The TUI shows the live control axes, trims and mode flags, and every
non-axis control can also be triggered from the keyboard. Command frames
are sent continuously; the vehicle falls back to failsafe if the stream
stops, so keep the session running while airborne.

Persisted settings (speed, light, trims) are loaded on start and written
back on exit. Create a mapping file first with 'ufoctl calibrate'.`,
	Args: cobra.ExactArgs(1),
	RunE: runFly,
}

func init() {
	rootCmd.AddCommand(flyCmd)
}

func runFly(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("fly needs an interactive terminal")
	}

	mapping, err := control.LoadMapping(args[0])
	if err != nil {
		return err
	}

	stored, err := settings.Load(settingsPath)
	if err != nil {
		return err
	}
	vehicle := ufolink.NewVehicle()
	stored.Apply(vehicle)

	transport, err := ufolink.DialUDP(vehicleHost, vehiclePort)
	if err != nil {
		return err
	}
	defer transport.Close()

	driver, inputInfo, err := openInputDriver()
	if err != nil {
		return err
	}
	defer driver.Close()

	var mon *monitor.Server
	if monitorAddr != "" {
		mon, err = monitor.Listen(monitorAddr)
		if err != nil {
			return err
		}
		defer mon.Close()
	}

	var player *video.Player
	if withVideo {
		player = video.New(ufolink.RTSPURL(vehicleHost))
		defer player.Cleanup()
	}

	m := initialFlyModel(flySession{
		vehicle:   vehicle,
		mapping:   mapping,
		encoder:   ufolink.NewEncoder(transport),
		driver:    driver,
		monitor:   mon,
		player:    player,
		inputInfo: inputInfo,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}

	// Settings are written before the deferred service teardown runs.
	if err := settings.Save(settingsPath, vehicle); err != nil {
		return err
	}
	return nil
}
