// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/openufo/ufoctl/internal/control"
	"github.com/openufo/ufoctl/internal/input"
)

// calibrateModel is the Bubble Tea model for the calibration wizard.
// Each tick feeds the normalized state of the first attached joystick
// into the wizard; keys only skip, abort or confirm.
type calibrateModel struct {
	driver     input.Driver
	normalizer *input.Normalizer
	wizard     *control.Wizard
	inputInfo  string

	bar        progress.Model
	deviceName string
	captured   string

	confirmed bool
	quitting  bool
	width     int
}

type calibrateTickMsg time.Time

func calibrateTickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return calibrateTickMsg(t)
	})
}

func initialCalibrateModel(driver input.Driver, inputInfo string, deadzone float64) calibrateModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	return calibrateModel{
		driver:     driver,
		normalizer: input.NewNormalizer(deadzone),
		wizard:     control.NewWizard(control.Descriptors, deadzone),
		inputInfo:  inputInfo,
		bar:        bar,
		width:      80,
	}
}

func (m calibrateModel) Init() tea.Cmd {
	return calibrateTickCmd()
}

func (m calibrateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if !m.wizard.Done() {
				m.wizard.Abort()
			}
			m.quitting = true
			return m, tea.Quit

		case "s":
			m.wizard.Skip()
			m.captured = "skipped"

		case "enter":
			if m.wizard.Done() {
				m.confirmed = true
				m.quitting = true
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case calibrateTickMsg:
		m.tick()
		return m, calibrateTickCmd()
	}
	return m, nil
}

func (m *calibrateModel) tick() {
	if m.wizard.Done() {
		return
	}

	devices := m.driver.Devices()
	if len(devices) == 0 {
		m.deviceName = ""
		m.normalizer.Update(input.Sample{}, false)
		return
	}
	m.deviceName = devices[0].Name

	sample, ok := m.driver.Sample(0)
	st := m.normalizer.Update(sample, ok)
	if m.wizard.Step(st) {
		m.captured = "captured"
	}
}

func (m calibrateModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var s strings.Builder

	s.WriteString(titleStyle.Render("UFOCTL CALIBRATION"))
	s.WriteString(" ")
	s.WriteString(headerStyle.Render(fmt.Sprintf("| %s | s=skip esc=abort", m.inputInfo)))
	s.WriteString("\n")

	device := warningStyle.Render("waiting for joystick...")
	if m.deviceName != "" {
		device = valueStyle.Render(m.deviceName)
	}
	s.WriteString(fmt.Sprintf(" %s %s\n\n", labelStyle.Render("Joystick:"), device))

	done, total := m.wizard.Progress()
	var body strings.Builder
	body.WriteString(m.wizard.Prompt())
	body.WriteString("\n\n")
	body.WriteString(m.bar.ViewAs(float64(done) / float64(total)))
	body.WriteString(fmt.Sprintf("  %s\n", valueStyle.Render(fmt.Sprintf("%d/%d", done, total))))
	if m.captured != "" {
		body.WriteString(headerStyle.Render(fmt.Sprintf("last step: %s", m.captured)))
		body.WriteString("\n")
	}
	if m.wizard.Done() {
		body.WriteString("\n")
		body.WriteString(valueStyle.Render("Press enter to save the mapping, esc to discard"))
	}
	s.WriteString(boxStyle.Width(m.width - 4).Render(body.String()))
	s.WriteString("\n")

	return s.String()
}
