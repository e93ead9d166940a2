// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

package ufolink

import (
	"fmt"
	"net"
	"strconv"
)

// Transport delivers encoded command frames to the vehicle. Send is
// expected to be non-blocking; a returned error means the frame was
// not delivered and the caller's encoder state must not advance.
type Transport interface {
	Send(frame []byte) error
	Close() error
}

// UDPTransport sends command frames as UDP datagrams to the vehicle's
// control port.
type UDPTransport struct {
	conn *net.UDPConn
}

// DialUDP opens a UDP transport to the vehicle control endpoint.
func DialUDP(host string, port int) (*UDPTransport, error) {
	addr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("resolve vehicle address: %w", err)
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dial vehicle: %w", err)
	}
	return &UDPTransport{conn: conn}, nil
}

// Send transmits one command frame.
func (t *UDPTransport) Send(frame []byte) error {
	_, err := t.conn.Write(frame)
	return err
}

// Close shuts the underlying socket.
func (t *UDPTransport) Close() error {
	return t.conn.Close()
}

// RTSPURL returns the vehicle's camera stream URL for the given host.
func RTSPURL(host string) string {
	return fmt.Sprintf("rtsp://%s:%d%s", host, DefaultRTSPPort, DefaultRTSPPath)
}
