//go:build unix

package transportadapter

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"

	"github.com/FooBarShebang/com-lib/channel"
)

var _ channel.Transport = (*Pipe)(nil)

// Pipe is a loopback channel.Transport built on a pair of os.Pipe file
// descriptors put into non-blocking mode with golang.org/x/sys/unix,
// the same read-deadline discipline TCP applies to a socket, adapted to
// a raw file descriptor. It gives a real-fd loopback in place of a serial
// device; the channel package's own tests use an in-memory fake instead.
type Pipe struct {
	read  *os.File
	write *os.File
	open  bool
}

// NewPipeLoopback creates a connected pair where whatever is written is
// immediately available to read back, the same role the original's mock
// serial device played for its own test suite.
func NewPipeLoopback() (*Pipe, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	if err := unix.SetNonblock(int(r.Fd()), true); err != nil {
		r.Close()
		w.Close()
		return nil, err
	}
	return &Pipe{read: r, write: w, open: true}, nil
}

// NewPipePair wraps an already-open read/write pair — e.g. one end of a
// bidirectional os.Pipe() set used to connect two Channels in the same
// process.
func NewPipePair(read, write *os.File) (*Pipe, error) {
	if err := unix.SetNonblock(int(read.Fd()), true); err != nil {
		return nil, err
	}
	return &Pipe{read: read, write: write, open: true}, nil
}

func (p *Pipe) Open(channel.Settings) error {
	p.open = true
	return nil
}

func (p *Pipe) Close() error {
	p.open = false
	rerr := p.read.Close()
	werr := p.write.Close()
	if rerr != nil {
		return rerr
	}
	return werr
}

func (p *Pipe) IsOpen() bool { return p.open }

func (p *Pipe) BytesWaitingIn() (int, error) { return 0, nil }

func (p *Pipe) BytesWaitingOut() (int, error) { return 0, nil }

// ReadAvailable relies on the fd's O_NONBLOCK flag: a read against an
// empty pipe returns EAGAIN immediately instead of blocking, which this
// maps to the "nothing available yet" (nil, nil) result the Transport
// contract expects.
func (p *Pipe) ReadAvailable(maxN int) ([]byte, error) {
	buf := make([]byte, maxN)
	n, err := p.read.Read(buf)
	if err != nil {
		if isWouldBlock(err) {
			return nil, nil
		}
		return nil, err
	}
	return buf[:n], nil
}

func (p *Pipe) WriteAll(b []byte) error {
	_, err := p.write.Write(b)
	return err
}

func isWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}
