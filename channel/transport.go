package channel

// Transport is the minimal byte-stream contract a framed channel needs:
// open/close lifecycle, best-effort waiting-byte counts, a non-blocking
// read and a fire-and-forget write. Implementations live in package
// transportadapter; tests use an in-memory fake.
type Transport interface {
	Open(settings Settings) error
	Close() error
	IsOpen() bool
	BytesWaitingIn() (int, error)
	BytesWaitingOut() (int, error)
	// ReadAvailable returns whatever is immediately available, up to maxN
	// bytes. It never blocks; zero bytes and a nil error is a valid,
	// expected result when nothing has arrived yet.
	ReadAvailable(maxN int) ([]byte, error)
	// WriteAll enqueues b with the transport in full or fails; it does
	// not wait for the remote side to consume it.
	WriteAll(b []byte) error
}
