package scpi

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultPort is the SCPI raw-socket port on DS1000Z-series scopes.
const DefaultPort = 5555

const defaultTimeout = 5 * time.Second

// ErrClosed is returned for exchanges attempted after Close.
var ErrClosed = errors.New("scpi: connection closed")

// Options adjusts client behaviour.
type Options struct {
	// Timeout bounds each individual exchange (write plus read).
	// Zero means the 5s default.
	Timeout time.Duration
}

// Client is a synchronous SCPI connection to one instrument. Methods are safe
// for concurrent use, but exchanges are serialized: a second request waits for
// the first to complete.
type Client struct {
	addr    string
	timeout time.Duration

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

// Dial connects to the instrument at addr (host:port). The context bounds the
// dial only; per-exchange deadlines come from Options.Timeout.
func Dial(ctx context.Context, addr string, opts Options) (*Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	return &Client{
		addr:    addr,
		timeout: timeout,
		conn:    conn,
		reader:  bufio.NewReader(conn),
	}, nil
}

// Addr returns the remote address this client was dialed with.
func (c *Client) Addr() string {
	return c.addr
}

// Close shuts the connection down. Further exchanges return ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// Write sends a command that produces no response.
func (c *Client) Write(cmd string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.send(cmd)
}

// Query sends a command and returns its text response with surrounding
// whitespace and the line terminator removed.
func (c *Client) Query(cmd string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.send(cmd); err != nil {
		return "", err
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read response to %q: %w", cmd, err)
	}
	return strings.TrimSpace(line), nil
}

// QueryRaw sends a command and returns the response bytes. Definite-length
// block responses are decoded and returned without the #N header; anything
// else is read up to the line terminator, which is stripped.
func (c *Client) QueryRaw(cmd string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.send(cmd); err != nil {
		return nil, err
	}

	first, err := c.reader.Peek(1)
	if err != nil {
		return nil, fmt.Errorf("read response to %q: %w", cmd, err)
	}
	if first[0] == '#' {
		return c.readBlock(cmd)
	}

	line, err := c.reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read response to %q: %w", cmd, err)
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, nil
}

func (c *Client) send(cmd string) error {
	if c.conn == nil {
		return ErrClosed
	}
	if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return fmt.Errorf("set deadline: %w", err)
	}
	if _, err := c.conn.Write([]byte(cmd + "\n")); err != nil {
		return fmt.Errorf("write %q: %w", cmd, err)
	}
	return nil
}

// readBlock consumes an IEEE 488.2 definite-length block: '#', one digit N,
// N digits of payload length, then the payload and an optional trailing
// newline.
func (c *Client) readBlock(cmd string) ([]byte, error) {
	header := make([]byte, 2)
	if _, err := io.ReadFull(c.reader, header); err != nil {
		return nil, fmt.Errorf("read block header for %q: %w", cmd, err)
	}
	digits := int(header[1] - '0')
	if digits < 1 || digits > 9 {
		return nil, fmt.Errorf("malformed block header for %q: %q", cmd, header)
	}

	lengthField := make([]byte, digits)
	if _, err := io.ReadFull(c.reader, lengthField); err != nil {
		return nil, fmt.Errorf("read block length for %q: %w", cmd, err)
	}
	length, err := strconv.Atoi(string(lengthField))
	if err != nil {
		return nil, fmt.Errorf("malformed block length for %q: %q", cmd, lengthField)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(c.reader, payload); err != nil {
		return nil, fmt.Errorf("read block payload for %q: %w", cmd, err)
	}

	// The scope terminates the block with a newline; swallow it if present.
	if next, err := c.reader.Peek(1); err == nil && next[0] == '\n' {
		_, _ = c.reader.Discard(1)
	}
	return payload, nil
}
