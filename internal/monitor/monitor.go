// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (c) 2026 The ufoctl authors

// Package monitor publishes read-only vehicle state snapshots to
// websocket observers, one JSON message per control tick.
package monitor

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/openufo/ufoctl/pkg/ufolink"
)

const writeTimeout = time.Second

// Server accepts websocket observers on /state and broadcasts every
// snapshot it is handed. Observers are read-only; anything they send
// is discarded.
type Server struct {
	httpSrv  *http.Server
	listener net.Listener
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// Listen starts the monitor server on addr.
func Listen(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("monitor listen: %w", err)
	}

	s := &Server{
		listener: ln,
		clients:  map[*websocket.Conn]bool{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/state", s.handleState)
	s.httpSrv = &http.Server{Handler: mux}

	go s.httpSrv.Serve(ln)
	return s, nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	// Drain inbound messages to notice the peer going away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.drop(conn)
				return
			}
		}
	}()
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

// Broadcast sends one vehicle snapshot to every connected observer.
// A client that cannot keep up is dropped rather than stalling the
// control tick.
func (s *Server) Broadcast(snap ufolink.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}

	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.drop(conn)
		}
	}
}

// Close disconnects all observers and stops the server.
func (s *Server) Close() error {
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = map[*websocket.Conn]bool{}
	s.mu.Unlock()
	return s.httpSrv.Close()
}
