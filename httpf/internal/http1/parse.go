package http1

import (
	"bytes"
	"errors"
	"strings"
)

// MaxHeaderLines is the fixed cap on header lines per request head.
const MaxHeaderLines = 64

var (
	ErrBadRequest         = errors.New("http1: malformed request head")
	ErrUnsupportedVersion = errors.New("http1: version not supported")
	ErrTooManyHeaders     = errors.New("http1: too many header lines")
)

// Field is one header line as it appeared on the wire.
type Field struct {
	Name  string
	Value string
}

// Request is a parsed request head. Bodies are never consumed here.
type Request struct {
	Method string
	Target string
	Proto  string
	Fields []Field
}

// ParseRequest scans buf for a complete request head: a CRLF-terminated
// request line, at most maxFields CRLF-terminated header lines and a
// terminating blank line. It returns the head and the exact number of
// bytes it occupies, or (nil, 0, nil) while the head is still incomplete.
// Field order and duplicates are preserved.
func ParseRequest(buf []byte, maxFields int) (*Request, int, error) {
	if maxFields <= 0 {
		maxFields = MaxHeaderLines
	}
	line, rest, ok := cutLine(buf)
	if !ok {
		return nil, 0, nil
	}
	method, target, proto, err := parseRequestLine(line)
	if err != nil {
		return nil, 0, err
	}
	req := &Request{Method: method, Target: target, Proto: proto}
	for {
		line, next, ok := cutLine(rest)
		if !ok {
			return nil, 0, nil
		}
		rest = next
		if len(line) == 0 {
			break
		}
		if len(req.Fields) == maxFields {
			return nil, 0, ErrTooManyHeaders
		}
		name, value, err := parseFieldLine(line)
		if err != nil {
			return nil, 0, err
		}
		req.Fields = append(req.Fields, Field{Name: name, Value: value})
	}
	// The version check applies to complete heads only; a partial head
	// with a stale version still reports incomplete above.
	if req.Proto != "HTTP/1.1" {
		return nil, 0, ErrUnsupportedVersion
	}
	return req, len(buf) - len(rest), nil
}

func cutLine(b []byte) (line, rest []byte, ok bool) {
	i := bytes.Index(b, []byte("\r\n"))
	if i < 0 {
		return nil, b, false
	}
	return b[:i], b[i+2:], true
}

func parseRequestLine(line []byte) (method, target, proto string, err error) {
	parts := strings.SplitN(string(line), " ", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", ErrBadRequest
	}
	return parts[0], parts[1], parts[2], nil
}

func parseFieldLine(line []byte) (name, value string, err error) {
	s := string(line)
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return "", "", ErrBadRequest
	}
	name = strings.TrimSpace(s[:i])
	value = strings.TrimSpace(s[i+1:])
	if !validFieldName(name) {
		return "", "", ErrBadRequest
	}
	return name, value, nil
}

func validFieldName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTokenChar(s[i]) {
			return false
		}
	}
	return true
}

// isTokenChar reports whether c is an RFC 9110 tchar.
func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}
