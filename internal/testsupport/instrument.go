// Package testsupport provides shared fixtures for exercising the CLI and
// its collaborators against a scripted stand-in for a real oscilloscope.
package testsupport

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
)

// Handler maps one received SCPI command to its response. A nil response
// means the command produces no output (a plain write).
type Handler func(cmd string) []byte

// Instrument is a TCP stub that speaks the scope's raw-socket protocol:
// newline-terminated commands in, scripted responses out.
type Instrument struct {
	listener net.Listener

	mu       sync.Mutex
	handler  Handler
	received []string
}

// NewInstrument starts a stub instrument on a loopback port and registers
// cleanup with the test.
func NewInstrument(t testing.TB, handler Handler) *Instrument {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	inst := &Instrument{listener: listener, handler: handler}
	go inst.serve()
	t.Cleanup(func() { _ = listener.Close() })
	return inst
}

// Addr returns the host:port the stub listens on.
func (s *Instrument) Addr() string {
	return s.listener.Addr().String()
}

// Host returns the stub's host without the port.
func (s *Instrument) Host() string {
	host, _, _ := net.SplitHostPort(s.Addr())
	return host
}

// Port returns the stub's listening port.
func (s *Instrument) Port() int {
	addr := s.listener.Addr().(*net.TCPAddr)
	return addr.Port
}

// Received returns every command line the stub has seen, in order.
func (s *Instrument) Received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.received...)
}

func (s *Instrument) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handleConn(conn)
	}
}

func (s *Instrument) handleConn(conn net.Conn) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		cmd := strings.TrimSpace(scanner.Text())
		s.mu.Lock()
		s.received = append(s.received, cmd)
		handler := s.handler
		s.mu.Unlock()

		if handler == nil {
			continue
		}
		if resp := handler(cmd); resp != nil {
			if _, err := conn.Write(resp); err != nil {
				return
			}
		}
	}
}

// Script builds a Handler from a command→reply table. Replies are sent as
// newline-terminated text; commands absent from the table get no response.
func Script(replies map[string]string) Handler {
	return func(cmd string) []byte {
		reply, ok := replies[cmd]
		if !ok {
			return nil
		}
		return []byte(reply + "\n")
	}
}

// Block frames a payload as an IEEE 488.2 definite-length block the way the
// scope returns display dumps.
func Block(payload []byte) []byte {
	length := fmt.Sprintf("%d", len(payload))
	framed := fmt.Sprintf("#%d%s", len(length), length)
	out := append([]byte(framed), payload...)
	return append(out, '\n')
}
