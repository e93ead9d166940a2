// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

// Package video launches an external media player for the vehicle's
// RTSP camera stream.
package video

import (
	"os"
	"os/exec"
	"sync"
	"syscall"
)

const ffplayCmd = "ffplay"

// TCP transport avoids the vehicle's flaky UDP RTP delivery.
var extraFFplayArgs = []string{"-rtsp_transport", "tcp"}

// Player keeps one ffplay process running against the stream URL,
// relaunching it if the player exits.
type Player struct {
	url string

	mu     sync.Mutex
	cmd    *exec.Cmd
	exited chan struct{}
}

// New returns a Player for the given stream URL. Nothing is launched
// until the first Update.
func New(url string) *Player {
	return &Player{url: url}
}

// Update launches the player if it is not currently running. Called
// once per control tick; a vanished player is restarted on the next
// tick, launch failures are retried the same way.
func (p *Player) Update() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd != nil {
		select {
		case <-p.exited:
			p.cmd = nil
		default:
			return
		}
	}

	cmd := exec.Command(ffplayCmd, append([]string{p.url}, extraFFplayArgs...)...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return
	}

	exited := make(chan struct{})
	go func() {
		cmd.Wait()
		close(exited)
	}()
	p.cmd = cmd
	p.exited = exited
}

// Cleanup terminates the player if it is still running.
func (p *Player) Cleanup() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd == nil || p.cmd.Process == nil {
		return nil
	}
	select {
	case <-p.exited:
		return nil
	default:
	}
	if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil && err != os.ErrProcessDone {
		return err
	}
	return nil
}
