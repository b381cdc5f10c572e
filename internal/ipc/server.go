// Package ipc exposes the controller on a unix socket, one command per line.
package ipc

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// MaxLine bounds a single request
	MaxLine = 1024
	// ConnTimeout closes connections that stay open too long
	ConnTimeout = 10 * time.Second
)

// Handler answers one request line with one reply line
type Handler interface {
	Handle(line string) string
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(line string) string

// Handle calls f
func (f HandlerFunc) Handle(line string) string {
	return f(line)
}

type Server struct {
	path    string
	handler Handler
	server  *net.UnixListener
	running atomic.Bool
	wg      sync.WaitGroup
}

func NewServer(path string, handler Handler) *Server {
	return &Server{
		path:    path,
		handler: handler,
	}
}

func (s *Server) Start() error {
	if s.running.Load() {
		return fmt.Errorf("IPC server already running")
	}

	// Remove a stale socket left by a crashed instance
	if _, err := os.Stat(s.path); err == nil {
		os.Remove(s.path)
	}

	listener, err := net.Listen("unix", s.path)
	if err != nil {
		return fmt.Errorf("failed to create socket listener: %w", err)
	}

	s.server = listener.(*net.UnixListener)
	s.running.Store(true)

	log.Printf("[IPC] Listening on %s", s.path)

	s.wg.Add(1)
	go s.acceptConnections()

	return nil
}

func (s *Server) acceptConnections() {
	defer s.wg.Done()

	for s.running.Load() {
		conn, err := s.server.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			if s.running.Load() {
				log.Printf("[IPC] Error accepting connection: %v", err)
			}
			continue
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[IPC] Recovered from panic in handler: %v", r)
		}
	}()

	if err := conn.SetDeadline(time.Now().Add(ConnTimeout)); err != nil {
		log.Printf("[IPC] Failed to set deadline: %v", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, MaxLine), MaxLine)

	for scanner.Scan() {
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}

		log.Printf("[IPC] Received: %s", message)
		reply := s.handler.Handle(message)

		if _, err := fmt.Fprintln(conn, reply); err != nil {
			log.Printf("[IPC] Error writing reply: %v", err)
			return
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("[IPC] Error reading from connection: %v", err)
	}
}

// Stop closes the listener, waits for open connections and removes the socket
func (s *Server) Stop() error {
	if !s.running.Swap(false) {
		return nil
	}

	if s.server != nil {
		s.server.Close()
	}
	s.wg.Wait()

	if _, err := os.Stat(s.path); err == nil {
		os.Remove(s.path)
	}

	log.Println("[IPC] Server stopped")
	return nil
}
