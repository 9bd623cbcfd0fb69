package channel

import (
	"fmt"
	"time"
)

// TransportError wraps a failure reported by the Transport. Any
// TransportError observed by a Channel method closes the channel before
// the error returns.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TimeoutError reports that Request's deadline passed before a frame
// tagged with the awaited index arrived. The channel is closed as a side
// effect of returning this error.
type TimeoutError struct {
	SentIndex uint64
	Waited    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out after %s awaiting response to sent index %d", e.Waited, e.SentIndex)
}
