package httpf

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

func startServer(t *testing.T, h Handler) (addr string, stop func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &Server{Handler: h}
	go func() { _ = s.Serve(ln) }()
	return ln.Addr().String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	}
}

// readResponse parses one response off br: status line, headers, then a
// Content-Length delimited body.
func readResponse(t *testing.T, br *bufio.Reader) (status string, header map[string]string, body []byte) {
	t.Helper()
	status, err := br.ReadString('\n')
	if err != nil {
		t.Fatalf("read status line: %v", err)
	}
	status = strings.TrimSuffix(status, "\r\n")
	header = make(map[string]string)
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			t.Fatalf("read header line: %v", err)
		}
		line = strings.TrimSuffix(line, "\r\n")
		if line == "" {
			break
		}
		k, v, ok := strings.Cut(line, ": ")
		if !ok {
			t.Fatalf("bad header line %q", line)
		}
		header[k] = v
	}
	n, err := strconv.Atoi(header["Content-Length"])
	if err != nil {
		t.Fatalf("bad Content-Length %q", header["Content-Length"])
	}
	body = make([]byte, n)
	if _, err := io.ReadFull(br, body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return status, header, body
}

func TestServer_ServesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	addr, stop := startServer(t, &FileHandler{Root: dir})
	defer stop()

	c, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()
	if _, err := c.Write([]byte("GET / HTTP/1.1\r\nHost: t\r\nConnection: close\r\n\r\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	br := bufio.NewReader(c)
	status, header, body := readResponse(t, br)
	if status != "HTTP/1.1 200 OK" {
		t.Fatalf("status = %q", status)
	}
	if header["Server"] != "httpf" {
		t.Fatalf("Server = %q", header["Server"])
	}
	if header["Content-Length"] != "5" || string(body) != "hello" {
		t.Fatalf("body = %q (len %s)", body, header["Content-Length"])
	}
	if _, err := time.Parse("Mon, 02 Jan 2006 15:04:05 GMT", header["Date"]); err != nil {
		t.Fatalf("Date %q: %v", header["Date"], err)
	}
	// Connection: close ends the stream after the response.
	if _, err := br.ReadByte(); err != io.EOF {
		t.Fatalf("connection still open: %v", err)
	}
}

func TestServer_SequentialRequests(t *testing.T) {
	h := HandlerFunc(func(r *Request) *Response {
		return &Response{StatusCode: 200, Body: []byte(r.Target)}
	})
	addr, stop := startServer(t, h)
	defer stop()

	c, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()
	br := bufio.NewReader(c)

	if _, err := c.Write([]byte("GET /first HTTP/1.1\r\nHost: t\r\n\r\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, body := readResponse(t, br)
	if string(body) != "/first" {
		t.Fatalf("first body = %q", body)
	}

	if _, err := c.Write([]byte("GET /second HTTP/1.1\r\nHost: t\r\nConnection: close\r\n\r\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, body = readResponse(t, br)
	if string(body) != "/second" {
		t.Fatalf("second body = %q", body)
	}
}

func TestServer_MalformedRequestClosesConn(t *testing.T) {
	addr, stop := startServer(t, HandlerFunc(func(*Request) *Response {
		t.Error("handler ran for malformed request")
		return &Response{StatusCode: 200}
	}))
	defer stop()

	c, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()
	if _, err := c.Write([]byte("BOGUS\r\n\r\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	// No response at all: the connection just ends.
	buf := make([]byte, 64)
	n, err := c.Read(buf)
	if n != 0 || err != io.EOF {
		t.Fatalf("read = %d, %v; want 0, EOF", n, err)
	}
}

func TestServer_Shutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &Server{}
	done := make(chan error, 1)
	go func() { done <- s.Serve(ln) }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	select {
	case err := <-done:
		if !errors.Is(err, ErrServerClosed) {
			t.Fatalf("Serve = %v, want ErrServerClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
}
