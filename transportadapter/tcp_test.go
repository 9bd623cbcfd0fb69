package transportadapter

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// echoOnce accepts a single connection on ln and copies whatever it
// receives straight back.
func echoOnce(t *testing.T, ln net.Listener) {
	t.Helper()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 4096)
		for {
			n, err := conn.Read(buf)
			if n > 0 {
				conn.Write(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()
}

func TestTCPRoundTripOverLoopback(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	echoOnce(t, ln)

	transport, err := DialTCP("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer transport.Close()

	require.NoError(t, transport.WriteAll([]byte("ping")))

	var got []byte
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		chunk, err := transport.ReadAvailable(64)
		require.NoError(t, err)
		got = append(got, chunk...)
		if len(got) >= len("ping") {
			break
		}
	}
	require.Equal(t, []byte("ping"), got)
}

func TestTCPReadAvailableReturnsNilOnIdleSocket(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	echoOnce(t, ln)

	transport, err := DialTCP("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer transport.Close()

	data, err := transport.ReadAvailable(64)
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestDialTCPFailsOnUnreachableAddress(t *testing.T) {
	_, err := DialTCP("tcp", "127.0.0.1:1")
	require.Error(t, err)
}
