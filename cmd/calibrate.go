// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/openufo/ufoctl/internal/input"
)

var calibrateDeadzone float64

var calibrateCmd = &cobra.Command{
	Use:   "calibrate <mapping-file>",
	Short: "Create a joystick mapping interactively",
	Long: `Walk through every vehicle control and capture the joystick axis or
button for it.

Axes are captured at full deflection; buttons and hat directions on a
press. A control your joystick has no input for can be skipped and
stays unmapped. The mapping file is only written when the run completes
and is confirmed; aborting discards everything.`,
	Args: cobra.ExactArgs(1),
	RunE: runCalibrate,
}

func init() {
	calibrateCmd.Flags().Float64Var(&calibrateDeadzone, "deadzone", input.DefaultDeadzone, "Axis deadzone recorded into the mapping")
	rootCmd.AddCommand(calibrateCmd)
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("calibrate needs an interactive terminal")
	}

	driver, inputInfo, err := openInputDriver()
	if err != nil {
		return err
	}
	defer driver.Close()

	m := initialCalibrateModel(driver, inputInfo, calibrateDeadzone)

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}

	cm := final.(calibrateModel)
	if !cm.confirmed {
		fmt.Println("Calibration aborted, nothing written")
		return nil
	}

	mapping, err := cm.wizard.Mapping()
	if err != nil {
		return err
	}
	if err := mapping.Save(args[0]); err != nil {
		return err
	}
	fmt.Printf("Mapping written to %s\n", args[0])
	return nil
}
