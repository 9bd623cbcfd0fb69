package transportadapter

import (
	"bytes"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/FooBarShebang/com-lib/channel"
)

var _ channel.Transport = (*SSH)(nil)

// SSH wraps one *ssh.Session's Stdin/Stdout pipes as a channel.Transport:
// instead of a single CombinedOutput() command, the remote process is
// expected to speak the COBS-framed protocol over the session's standard
// streams (a long-lived shell session, not a one-shot command).
type SSH struct {
	client  *ssh.Client
	session *ssh.Session
	stdin   interface {
		Write([]byte) (int, error)
	}
	stdout  *bufReader
	open    bool
}

// DialSSH authenticates to addr with password auth and starts a shell on
// the resulting session, returning it wrapped as a Transport. Host key
// verification is left to hostKeyCallback; callers should pass
// ssh.FixedHostKey or a knownhosts callback rather than
// ssh.InsecureIgnoreHostKey outside of throwaway test environments.
func DialSSH(addr, user, password string, hostKeyCallback ssh.HostKeyCallback, timeout time.Duration) (*SSH, error) {
	config := &ssh.ClientConfig{
		User:            user,
		Auth:            []ssh.AuthMethod{ssh.Password(password)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         timeout,
	}
	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, err
	}
	session, err := client.NewSession()
	if err != nil {
		client.Close()
		return nil, err
	}
	return NewSSH(client, session)
}

// NewSSH wraps an already-authenticated client/session pair, starting the
// remote shell and attaching to its Stdin/Stdout. The session is single-use
// for the lifetime of the Transport: one session, one long-running shell,
// rather than one session per command.
func NewSSH(client *ssh.Client, session *ssh.Session) (*SSH, error) {
	stdin, err := session.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := session.Shell(); err != nil {
		return nil, err
	}
	return &SSH{
		client:  client,
		session: session,
		stdin:   stdin,
		stdout:  newBufReader(stdout),
		open:    true,
	}, nil
}

func (s *SSH) Open(channel.Settings) error { return nil }

func (s *SSH) Close() error {
	s.open = false
	err := s.session.Close()
	if cerr := s.client.Close(); err == nil {
		err = cerr
	}
	return err
}

func (s *SSH) IsOpen() bool { return s.open }

func (s *SSH) BytesWaitingIn() (int, error) { return s.stdout.buffered(), nil }

func (s *SSH) BytesWaitingOut() (int, error) { return 0, nil }

func (s *SSH) ReadAvailable(maxN int) ([]byte, error) {
	return s.stdout.readAvailable(maxN)
}

func (s *SSH) WriteAll(b []byte) error {
	_, err := s.stdin.Write(b)
	return err
}

// bufReader adapts a blocking io.Reader (an SSH session's stdout pipe)
// into the non-blocking ReadAvailable contract channel.Transport needs,
// by running one background reader goroutine that feeds a byte buffer
// guarded by a channel-based signal rather than a mutex-plus-condvar —
// simplest correct option for a single-producer, single-consumer byte
// pipe.
type bufReader struct {
	chunks chan []byte
	buf    bytes.Buffer
}

func newBufReader(r interface{ Read([]byte) (int, error) }) *bufReader {
	br := &bufReader{chunks: make(chan []byte, 64)}
	go func() {
		for {
			tmp := make([]byte, 4096)
			n, err := r.Read(tmp)
			if n > 0 {
				br.chunks <- tmp[:n]
			}
			if err != nil {
				close(br.chunks)
				return
			}
		}
	}()
	return br
}

func (br *bufReader) drainAvailable() {
	for {
		select {
		case chunk, ok := <-br.chunks:
			if !ok {
				return
			}
			br.buf.Write(chunk)
		default:
			return
		}
	}
}

func (br *bufReader) buffered() int {
	br.drainAvailable()
	return br.buf.Len()
}

func (br *bufReader) readAvailable(maxN int) ([]byte, error) {
	br.drainAvailable()
	if br.buf.Len() == 0 {
		return nil, nil
	}
	out := make([]byte, maxN)
	n, _ := br.buf.Read(out)
	return out[:n], nil
}
