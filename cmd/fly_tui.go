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
	"github.com/openufo/ufoctl/internal/monitor"
	"github.com/openufo/ufoctl/internal/video"
	"github.com/openufo/ufoctl/pkg/ufolink"
)

const axisBarWidth = 30

//////////////////////////////////////////////////////////////
// Types
//////////////////////////////////////////////////////////////

// flySession bundles the services the flight TUI drives each tick.
type flySession struct {
	vehicle   *ufolink.Vehicle
	mapping   *control.Mapping
	encoder   *ufolink.Encoder
	driver    input.Driver
	monitor   *monitor.Server // nil when disabled
	player    *video.Player   // nil when disabled
	inputInfo string
}

// flyModel is the Bubble Tea model for the flight TUI. The control
// tick lives in Update, so joystick input, keyboard input and frame
// transmission are serialized in one place.
type flyModel struct {
	session    flySession
	mapper     *control.Mapper
	normalizer *input.Normalizer

	// Keyboard-triggered events, drained into the next tick so they
	// share dispatch with joystick edges.
	pending []control.Event

	// Switch panel: every non-axis control, navigable by cursor.
	switches []control.Descriptor
	cursor   int

	axisBar progress.Model

	deviceName string
	sendErrs   int
	lastErr    error

	width    int
	height   int
	quitting bool
}

type flyTickMsg time.Time

func flyTickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return flyTickMsg(t)
	})
}

//////////////////////////////////////////////////////////////
// Model Initialization
//////////////////////////////////////////////////////////////

func initialFlyModel(session flySession) flyModel {
	var switches []control.Descriptor
	for _, d := range control.Descriptors {
		if d.Kind != control.KindAxis {
			switches = append(switches, d)
		}
	}

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = axisBarWidth
	bar.ShowPercentage = false

	return flyModel{
		session:    session,
		mapper:     control.NewMapper(session.vehicle, session.mapping, control.Descriptors),
		normalizer: input.NewNormalizer(session.mapping.Deadzone),
		switches:   switches,
		axisBar:    bar,
		width:      80,
		height:     24,
	}
}

//////////////////////////////////////////////////////////////
// Bubble Tea Interface
//////////////////////////////////////////////////////////////

func (m flyModel) Init() tea.Cmd {
	return flyTickCmd()
}

func (m flyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case flyTickMsg:
		m.tick()
		return m, flyTickCmd()
	}
	return m, nil
}

func (m *flyModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.switches)-1 {
			m.cursor++
		}

	case "enter", " ":
		m.pressSelected()
	}
	return m, nil
}

// pressSelected queues the cursor's control for the next tick. Push
// controls have no keyboard release, so a press alternates between the
// engage and release events.
func (m *flyModel) pressSelected() {
	d := m.switches[m.cursor]
	if d.Kind == control.KindPush {
		if m.session.vehicle.Bool(d.ID) {
			m.pending = append(m.pending, control.Event{ID: d.ID, Edge: control.EdgeUp})
		} else {
			m.pending = append(m.pending, control.Event{ID: d.ID, Edge: control.EdgeHeld})
		}
		return
	}
	m.pending = append(m.pending, control.Event{ID: d.ID, Edge: control.EdgeDown})
}

// tick is one control cycle: poll the joystick, apply it together with
// queued keyboard events, transmit the frame and feed the side services.
func (m *flyModel) tick() {
	devices := m.session.driver.Devices()
	idx := m.mapper.SelectDevice(devices)

	var st input.State
	if idx >= 0 {
		sample, ok := m.session.driver.Sample(idx)
		st = m.normalizer.Update(sample, ok)
		m.deviceName = devices[idx].Name
	} else {
		st = m.normalizer.Update(input.Sample{}, false)
		m.deviceName = ""
	}

	m.mapper.Apply(st, m.pending)
	m.pending = nil

	if err := m.session.encoder.Transmit(m.session.vehicle); err != nil {
		m.sendErrs++
		m.lastErr = err
	}

	if m.session.monitor != nil {
		m.session.monitor.Broadcast(m.session.vehicle.Snapshot())
	}
	if m.session.player != nil {
		m.session.player.Update()
	}
}

//////////////////////////////////////////////////////////////
// View
//////////////////////////////////////////////////////////////

func (m flyModel) View() string {
	if m.quitting {
		return "Saving settings...\n"
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

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var s strings.Builder

	s.WriteString(titleStyle.Render("UFOCTL FLIGHT"))
	s.WriteString(" ")
	device := warningStyle.Render("NO CAPABLE JOYSTICK")
	if m.deviceName != "" {
		device = valueStyle.Render(m.deviceName)
	}
	s.WriteString(headerStyle.Render(fmt.Sprintf("| %s | up/down=select enter=press q=quit", m.session.inputInfo)))
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf(" %s %s\n\n", labelStyle.Render("Joystick:"), device))

	snap := m.session.vehicle.Snapshot()

	// Axes and trims
	var axes strings.Builder
	axes.WriteString(labelStyle.Render("AXES"))
	axes.WriteString("\n")
	for _, a := range []struct {
		name  string
		value float64
		trim  float64
	}{
		{"Throttle", snap.Throttle, snap.ThrottleTrim},
		{"Rudder", snap.Rudder, snap.RudderTrim},
		{"Aileron", snap.Aileron, snap.AileronTrim},
		{"Elevator", snap.Elevator, snap.ElevatorTrim},
	} {
		axes.WriteString(fmt.Sprintf("%-9s %s %s  %s %s\n",
			a.name,
			m.axisBar.ViewAs((a.value+1)/2),
			valueStyle.Render(fmt.Sprintf("%+.2f", a.value)),
			labelStyle.Render("trim"),
			valueStyle.Render(fmt.Sprintf("%+.2f", a.trim))))
	}
	s.WriteString(boxStyle.Width(m.width - 4).Render(axes.String()))
	s.WriteString("\n\n")

	// Switch panel
	var sw strings.Builder
	sw.WriteString(labelStyle.Render("CONTROLS"))
	sw.WriteString("\n")
	for i, d := range m.switches {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		state := headerStyle.Render("off")
		if m.session.vehicle.Bool(d.ID) {
			state = valueStyle.Render("ON")
		}
		sw.WriteString(fmt.Sprintf("%s%-40s %s\n", cursor, d.Desc, state))
	}
	s.WriteString(boxStyle.Width(m.width - 4).Render(sw.String()))
	s.WriteString("\n\n")

	// Link status
	status := fmt.Sprintf(" %s %s  %s %s",
		labelStyle.Render("Vehicle:"), valueStyle.Render(fmt.Sprintf("%s:%d", vehicleHost, vehiclePort)),
		labelStyle.Render("Seq:"), valueStyle.Render(fmt.Sprintf("%d", m.session.encoder.Sequence())))
	if m.sendErrs > 0 {
		status += fmt.Sprintf("  %s %s",
			labelStyle.Render("Send errors:"),
			errorStyle.Render(fmt.Sprintf("%d (%v)", m.sendErrs, m.lastErr)))
	}
	s.WriteString(status)
	s.WriteString("\n")

	return s.String()
}
