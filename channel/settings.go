package channel

import "time"

// Settings are captured once at construction and are read-accessible but
// not write-accessible afterward; reconfiguring a channel means closing
// it and building a new Settings/Channel pair. Baudrate and similar
// transport-level knobs are forwarded to the Transport unchanged at Open
// time.
type Settings struct {
	baudRate     int
	readTimeout  time.Duration
	pollInterval time.Duration
	readChunk    int
}

// Option configures a Settings value at construction.
type Option func(*Settings)

// WithBaudRate sets the baud rate forwarded to the Transport at Open.
// Meaningless to Transports that are not baud-rate-based (e.g. TCP); such
// adapters are free to ignore it.
func WithBaudRate(rate int) Option {
	return func(s *Settings) { s.baudRate = rate }
}

// WithReadTimeout sets the deadline a Transport adapter should apply to
// its own blocking reads, independent of Request's polling timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Settings) { s.readTimeout = d }
}

// WithPollInterval sets how long Request sleeps between unsuccessful
// polls, to avoid a tight busy-loop.
func WithPollInterval(d time.Duration) Option {
	return func(s *Settings) { s.pollInterval = d }
}

// WithReadChunk sets the maximum number of bytes requested per
// ReadAvailable call while draining incoming data.
func WithReadChunk(n int) Option {
	return func(s *Settings) { s.readChunk = n }
}

// NewSettings builds a Settings value, defaulting to a 9600 baud rate, no
// read timeout, a 5ms poll interval and a 4096-byte read chunk, then
// applying opts in order.
func NewSettings(opts ...Option) Settings {
	s := Settings{
		baudRate:     9600,
		readTimeout:  0,
		pollInterval: 5 * time.Millisecond,
		readChunk:    4096,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s Settings) BaudRate() int             { return s.baudRate }
func (s Settings) ReadTimeout() time.Duration { return s.readTimeout }
func (s Settings) PollInterval() time.Duration { return s.pollInterval }
func (s Settings) ReadChunk() int            { return s.readChunk }
