// Package transportadapter wraps concrete byte-stream collaborators —
// a TCP socket, an SSH session's pipes, an OS pipe loopback — as
// channel.Transport implementations. None of this knows about COBS
// framing, sequencing, or TypeDescriptors; it is purely "how do bytes
// get from here to there".
package transportadapter

import (
	"errors"
	"net"
	"time"

	"github.com/FooBarShebang/com-lib/channel"
)

var _ channel.Transport = (*TCP)(nil)

// TCP wraps a net.Conn as a channel.Transport. Deadlines, not a separate
// poller goroutine, are what make ReadAvailable non-blocking: every read
// gets a short deadline and a timeout is treated as "nothing available
// yet".
type TCP struct {
	conn    net.Conn
	dialTo  string
	dialNet string
	open    bool
}

// NewTCP wraps an already-established connection. Use DialTCP to both
// dial and wrap in one step.
func NewTCP(conn net.Conn) *TCP {
	return &TCP{conn: conn, open: conn != nil}
}

// DialTCP dials network/address with a 3-second timeout (mirroring
// echoClient's use of net.DialTimeout over the bare, timeout-less
// net.Dial) and wraps the resulting connection.
func DialTCP(network, address string) (*TCP, error) {
	conn, err := net.DialTimeout(network, address, 3*time.Second)
	if err != nil {
		return nil, err
	}
	return &TCP{conn: conn, dialNet: network, dialTo: address, open: true}, nil
}

// Open satisfies channel.Transport; for a TCP adapter the dial already
// happened (or the caller supplied a live conn), so Open only validates
// that a connection is present. Settings such as baud rate are
// meaningless over TCP and are ignored.
func (t *TCP) Open(channel.Settings) error {
	if t.conn == nil {
		return errNoConnection
	}
	t.open = true
	return nil
}

func (t *TCP) Close() error {
	t.open = false
	if t.conn == nil {
		return nil
	}
	return t.conn.Close()
}

func (t *TCP) IsOpen() bool { return t.open }

// BytesWaitingIn has no portable equivalent over a stream socket; TCP
// exposes no query; this reports 0 always — callers must tolerate a
// best-effort or absent count and simply re-poll.
func (t *TCP) BytesWaitingIn() (int, error) { return 0, nil }

func (t *TCP) BytesWaitingOut() (int, error) { return 0, nil }

// ReadAvailable applies a short read deadline so an empty read returns
// (nil, nil) instead of blocking: a channel needs a poll that returns
// promptly even when nothing has arrived.
func (t *TCP) ReadAvailable(maxN int) ([]byte, error) {
	if err := t.conn.SetReadDeadline(time.Now().Add(5 * time.Millisecond)); err != nil {
		return nil, err
	}
	buf := make([]byte, maxN)
	n, err := t.conn.Read(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, nil
		}
		return nil, err
	}
	return buf[:n], nil
}

func (t *TCP) WriteAll(b []byte) error {
	_, err := t.conn.Write(b)
	return err
}

var errNoConnection = errors.New("transportadapter: no connection to open")
