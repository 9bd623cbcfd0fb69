// Package channel implements the framed, sequence-tracked byte-stream
// channel: COBS-framing payloads over an injected Transport, splitting
// the inbound stream on 0x00, and matching async Poll results or a
// synchronous Request against strictly increasing send/receive indices.
// It deals exclusively in raw []byte; callers serialize with package
// dtype (or anything else) before Send/Request and deserialize what
// Poll/Request hand back.
package channel

import (
	"bytes"
	"io"
	"time"

	"github.com/FooBarShebang/com-lib/cobs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type pendingFrame struct {
	payload []byte
	index   uint64
}

// Channel owns one Transport exclusively: a single goroutine is expected
// to drive all of a Channel's methods. It is not safe for concurrent use
// from multiple goroutines without external synchronization.
type Channel struct {
	transport Transport
	settings  Settings
	log       *logrus.Entry

	isOpen  bool
	sentIdx uint64
	recvIdx uint64

	inBuf []byte
	queue []pendingFrame
}

// New builds a Channel over transport with settings, not yet open. It
// logs nothing by default; call SetLogger to observe lifecycle events
// such as a forced close after a transport error or a request timeout.
func New(transport Transport, settings Settings) *Channel {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return &Channel{
		transport: transport,
		settings:  settings,
		log:       logrus.NewEntry(discard),
	}
}

// SetLogger installs log as the destination for the channel's internal
// lifecycle diagnostics.
func (c *Channel) SetLogger(log *logrus.Entry) { c.log = log }

// Settings returns the settings this channel was constructed with.
func (c *Channel) Settings() Settings { return c.settings }

// IsOpen reports whether the channel currently considers itself open.
func (c *Channel) IsOpen() bool { return c.isOpen }

// BytesWaitingIn passes through to the Transport, for callers that want
// to peek at backlog without polling.
func (c *Channel) BytesWaitingIn() (int, error) {
	n, err := c.transport.BytesWaitingIn()
	if err != nil {
		return 0, c.fail("bytes_waiting_in", err)
	}
	return n, nil
}

// BytesWaitingOut passes through to the Transport.
func (c *Channel) BytesWaitingOut() (int, error) {
	n, err := c.transport.BytesWaitingOut()
	if err != nil {
		return 0, c.fail("bytes_waiting_out", err)
	}
	return n, nil
}

// Open opens the underlying transport with this channel's settings. A
// channel that is already open treats a second Open as a silent no-op;
// the transport itself may still reject a genuine second open if asked
// directly.
func (c *Channel) Open() error {
	if c.isOpen {
		return nil
	}
	if err := c.transport.Open(c.settings); err != nil {
		return c.fail("open", err)
	}
	c.isOpen = true
	return nil
}

// Close closes the transport and resets all channel-owned state: the
// incoming buffer, the completed-frame queue, and both sequence
// counters. Closing an already-closed channel is a no-op.
func (c *Channel) Close() error {
	if !c.isOpen {
		return nil
	}
	err := c.transport.Close()
	c.isOpen = false
	c.sentIdx = 0
	c.recvIdx = 0
	c.inBuf = nil
	c.queue = nil
	if err != nil {
		return &TransportError{Op: "close", Err: errors.Wrap(err, "close")}
	}
	return nil
}

// fail wraps a transport-reported error as a TransportError and forces
// the channel closed as a side effect of the failure.
func (c *Channel) fail(op string, err error) error {
	c.log.WithError(err).WithField("op", op).Warn("closing channel after transport error")
	c.isOpen = false
	c.sentIdx = 0
	c.recvIdx = 0
	c.inBuf = nil
	c.queue = nil
	return &TransportError{Op: op, Err: errors.Wrap(err, op)}
}

// Send COBS-frames payload, writes it through the transport and returns
// its newly assigned sent index. It reopens the channel once if needed;
// it does not wait for any response.
func (c *Channel) Send(payload []byte) (uint64, error) {
	if err := c.Open(); err != nil {
		return 0, err
	}
	frame := cobs.EncodeFrame(payload)
	if err := c.transport.WriteAll(frame); err != nil {
		return 0, c.fail("write_all", err)
	}
	c.sentIdx++
	return c.sentIdx, nil
}

// drainIncoming reads whatever the transport has immediately available
// and folds it into completed frames, each assigned the next recvIdx in
// arrival order. The incoming buffer never holds a 0x00 byte once this
// returns: every terminator found is consumed into a queued frame.
func (c *Channel) drainIncoming() error {
	chunk, err := c.transport.ReadAvailable(c.settings.ReadChunk())
	if err != nil {
		return c.fail("read_available", err)
	}
	if len(chunk) == 0 {
		return nil
	}
	c.inBuf = append(c.inBuf, chunk...)
	for {
		idx := bytes.IndexByte(c.inBuf, 0x00)
		if idx < 0 {
			break
		}
		body := make([]byte, idx)
		copy(body, c.inBuf[:idx])
		c.inBuf = c.inBuf[idx+1:]
		c.recvIdx++
		c.queue = append(c.queue, pendingFrame{payload: body, index: c.recvIdx})
	}
	return nil
}

// Poll drains available transport bytes and, if a complete frame has
// accumulated, pops and COBS-decodes the earliest one. ok is false when
// no frame is ready yet; it is not an error to poll an empty backlog.
func (c *Channel) Poll() (payload []byte, recvIndex uint64, ok bool, err error) {
	if !c.isOpen {
		return nil, 0, false, nil
	}
	if err := c.drainIncoming(); err != nil {
		return nil, 0, false, err
	}
	if len(c.queue) == 0 {
		return nil, 0, false, nil
	}
	frame := c.queue[0]
	c.queue = c.queue[1:]
	decoded, err := cobs.DecodeFrame(frame.payload)
	if err != nil {
		return nil, frame.index, false, err
	}
	return decoded, frame.index, true, nil
}

// Request sends payload and blocks until a frame tagged with the
// resulting sent index arrives, discarding any earlier-indexed frame in
// the meantime. timeout == 0 blocks indefinitely; a positive timeout
// fails with TimeoutError once the deadline passes, closing the channel
// as a side effect.
func (c *Channel) Request(payload []byte, timeout time.Duration) ([]byte, uint64, error) {
	awaited, err := c.Send(payload)
	if err != nil {
		return nil, 0, err
	}

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		if timeout > 0 && !time.Now().Before(deadline) {
			c.log.WithField("sent_index", awaited).Warn("closing channel after request timeout")
			c.Close()
			return nil, 0, &TimeoutError{SentIndex: awaited, Waited: timeout}
		}
		resp, idx, ok, err := c.Poll()
		if err != nil {
			return nil, 0, err
		}
		if ok {
			if idx != awaited {
				// Earlier-indexed frames are responses to async sends the
				// caller chose not to collect; later ones would violate the
				// one-response-per-command assumption. Either way, discard
				// and keep waiting for an exact match.
				continue
			}
			return resp, idx, nil
		}
		time.Sleep(c.settings.PollInterval())
	}
}
