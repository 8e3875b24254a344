package httpf

import (
	"errors"

	"dqx0.com/go/framed/httpf/internal/http1"
)

// Parse errors are fatal to their connection and never retried.
var (
	ErrBadRequest         = http1.ErrBadRequest
	ErrUnsupportedVersion = http1.ErrUnsupportedVersion
	ErrTooManyHeaders     = http1.ErrTooManyHeaders
)

// Encode errors abort the in-flight response; whatever already reached the
// peer stands and nothing further is sent for that response.
var (
	ErrUnknownStatus = http1.ErrUnknownStatus
	ErrHeaderValue   = http1.ErrHeaderValue
)

var (
	// ErrTrailingBytes reports a stream that ended mid-frame.
	ErrTrailingBytes = errors.New("httpf: stream ended with trailing bytes")
	// ErrBrokenConn reports a zero-length write while data was pending.
	ErrBrokenConn = errors.New("httpf: zero-length write with data pending")
	// ErrServerClosed is returned by Serve after Shutdown.
	ErrServerClosed = errors.New("httpf: server closed")
)
