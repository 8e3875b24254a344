package http1

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestWriteResponse_Basic(t *testing.T) {
	var dst bytes.Buffer
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	if err := WriteResponse(&dst, "httpf", 200, nil, []byte("hi"), now); err != nil {
		t.Fatalf("WriteResponse error: %v", err)
	}
	got := dst.String()
	if !strings.HasPrefix(got, "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("status line: %q", got)
	}
	if !strings.Contains(got, "Server: httpf\r\n") {
		t.Fatalf("missing Server header: %q", got)
	}
	if !strings.Contains(got, "Date: Sun, 30 Aug 2026 12:00:00 GMT\r\n") {
		t.Fatalf("missing or wrong Date header: %q", got)
	}
	if !strings.Contains(got, "Content-Length: 2\r\n") {
		t.Fatalf("missing Content-Length: %q", got)
	}
	if !strings.HasSuffix(got, "\r\n\r\nhi") {
		t.Fatalf("tail: %q", got)
	}
}

func TestWriteResponse_FieldOrder(t *testing.T) {
	var dst bytes.Buffer
	fields := []Field{{"X-B", "2"}, {"X-A", "1"}, {"X-B", "3"}}
	if err := WriteResponse(&dst, "httpf", 204, fields, nil, time.Now()); err != nil {
		t.Fatalf("WriteResponse error: %v", err)
	}
	got := dst.String()
	i1 := strings.Index(got, "X-B: 2\r\n")
	i2 := strings.Index(got, "X-A: 1\r\n")
	i3 := strings.Index(got, "X-B: 3\r\n")
	if i1 < 0 || i2 < 0 || i3 < 0 || !(i1 < i2 && i2 < i3) {
		t.Fatalf("field order lost: %q", got)
	}
	if !strings.Contains(got, "Content-Length: 0\r\n") {
		t.Fatalf("missing Content-Length: %q", got)
	}
	// Fixed lines come before caller fields.
	if cl := strings.Index(got, "Content-Length:"); cl > i1 {
		t.Fatalf("fixed headers after caller fields: %q", got)
	}
}

func TestWriteResponse_UnknownStatus(t *testing.T) {
	var dst bytes.Buffer
	err := WriteResponse(&dst, "httpf", 299, nil, nil, time.Now())
	if !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("err = %v, want ErrUnknownStatus", err)
	}
	if dst.Len() != 0 {
		t.Fatalf("partial head written: %q", dst.String())
	}
}

func TestWriteResponse_BadHeaderField(t *testing.T) {
	cases := []Field{
		{"X-V", "a\x00b"},
		{"X-V", "line\r\nbreak"},
		{"X-V", "caf\xc3\xa9"}, // non-ASCII bytes
		{"Bad Name", "v"},
	}
	for _, f := range cases {
		var dst bytes.Buffer
		err := WriteResponse(&dst, "httpf", 200, []Field{f}, nil, time.Now())
		if !errors.Is(err, ErrHeaderValue) {
			t.Fatalf("%v: err = %v, want ErrHeaderValue", f, err)
		}
		if dst.Len() != 0 {
			t.Fatalf("%v: partial head written", f)
		}
	}
}

func TestReasonPhrase(t *testing.T) {
	if r, ok := ReasonPhrase(404); !ok || r != "Not Found" {
		t.Fatalf("404 = %q, %v", r, ok)
	}
	if r, ok := ReasonPhrase(418); ok {
		t.Fatalf("418 unexpectedly mapped to %q", r)
	}
	if _, ok := ReasonPhrase(299); ok {
		t.Fatal("299 unexpectedly mapped")
	}
}
