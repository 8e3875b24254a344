package httpf

import (
	"bytes"
	"io"
	"time"

	"dqx0.com/go/framed/httpf/internal/http1"
)

// ServerName is the fixed Server header value on every encoded response.
const ServerName = "httpf"

// MaxHeaderLines caps how many header lines one request head may carry.
const MaxHeaderLines = http1.MaxHeaderLines

// HTTPCodec is the HTTP/1.1 implementation of Codec[*Request, *Response].
// It is stateless across frames aside from the fixed header-line cap; one
// instance serves a connection's full duplex traffic sequentially.
type HTTPCodec struct{}

var _ Codec[*Request, *Response] = HTTPCodec{}

// NewHTTPFramed wraps rw with the HTTP/1.1 codec.
func NewHTTPFramed(rw io.ReadWriteCloser) *Framed[*Request, *Response] {
	return NewFramed[*Request, *Response](rw, HTTPCodec{})
}

// Decode scans src for a complete request head and consumes exactly its
// bytes. It reports no frame while the head is incomplete. The version
// must be exactly HTTP/1.1; anything else fails with
// ErrUnsupportedVersion, no downgrade.
func (HTTPCodec) Decode(src *bytes.Buffer) (*Request, bool, error) {
	pr, n, err := http1.ParseRequest(src.Bytes(), MaxHeaderLines)
	if err != nil {
		return nil, false, err
	}
	if pr == nil {
		return nil, false, nil
	}
	req := &Request{Method: pr.Method, Target: pr.Target, Proto: pr.Proto}
	if len(pr.Fields) > 0 {
		req.Header = make(Header, 0, len(pr.Fields))
		for _, f := range pr.Fields {
			req.Header = append(req.Header, Field{Name: f.Name, Value: f.Value})
		}
	}
	src.Next(n)
	return req, true, nil
}

// Encode appends the serialized response to dst: status line, the fixed
// Server, Date (wall clock at encode time) and Content-Length lines, the
// response's own fields in order, a blank line and the body verbatim.
func (HTTPCodec) Encode(resp *Response, dst *bytes.Buffer) error {
	var fields []http1.Field
	if len(resp.Header) > 0 {
		fields = make([]http1.Field, 0, len(resp.Header))
		for _, f := range resp.Header {
			fields = append(fields, http1.Field{Name: f.Name, Value: f.Value})
		}
	}
	return http1.WriteResponse(dst, ServerName, resp.StatusCode, fields, resp.Body, time.Now())
}
