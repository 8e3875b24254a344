package httpf

import (
	"context"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"dqx0.com/go/framed/internal/obs"
)

// Handler produces one Response for one Request.
type Handler interface {
	HandleRequest(*Request) *Response
}

type HandlerFunc func(*Request) *Response

func (f HandlerFunc) HandleRequest(r *Request) *Response { return f(r) }

// Server accepts connections and drives one Framed transport per
// connection: read a request, run the handler, send and flush the
// response, then read the next. Requests on one connection are strictly
// sequential and connections share no state.
type Server struct {
	Addr    string
	Handler Handler
	Logger  obs.Logger
	Meter   obs.Meter

	mu       sync.Mutex
	ln       net.Listener
	closed   bool
	inflight sync.WaitGroup
}

func (s *Server) ListenAndServe() error {
	addr := s.Addr
	if addr == "" {
		addr = ":8080"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts on l until l fails or Shutdown is called.
func (s *Server) Serve(l net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = l.Close()
		return ErrServerClosed
	}
	s.ln = l
	s.mu.Unlock()
	defer l.Close()

	s.logf(obs.Info, "listening on %s", l.Addr())
	for {
		c, err := l.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return ErrServerClosed
			}
			return err
		}
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			s.serveConn(c)
		}()
	}
}

// Shutdown closes the listener and waits for in-flight connections to
// finish, or for ctx to expire. Idle keep-alive connections count as
// in-flight until the peer closes them.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	ln := s.ln
	s.mu.Unlock()
	if ln != nil {
		_ = ln.Close()
	}
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) serveConn(c net.Conn) {
	f := NewHTTPFramed(c)
	f.Logger = s.Logger
	f.Meter = s.Meter
	for {
		req, err := f.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Fatal to this connection only; no response, no retry.
			s.logf(obs.Debug, "%s: read failed: %v", c.RemoteAddr(), err)
			s.metricCounter("httpf_conn_errors_total", 1, obs.Label{Key: "side", Value: "read"})
			_ = c.Close()
			return
		}
		start := time.Now()
		resp := s.handler().HandleRequest(req)
		if err := f.Send(resp); err != nil {
			s.logf(obs.Debug, "%s: send failed: %v", c.RemoteAddr(), err)
			s.metricCounter("httpf_conn_errors_total", 1, obs.Label{Key: "side", Value: "write"})
			_ = c.Close()
			return
		}
		if err := f.Flush(); err != nil {
			s.logf(obs.Debug, "%s: flush failed: %v", c.RemoteAddr(), err)
			s.metricCounter("httpf_conn_errors_total", 1, obs.Label{Key: "side", Value: "write"})
			_ = c.Close()
			return
		}
		s.metricCounter("httpf_requests_total", 1, obs.Label{Key: "method", Value: req.Method})
		s.metricHistogram("httpf_request_duration_ms", float64(time.Since(start).Milliseconds()),
			obs.Label{Key: "method", Value: req.Method})
		if strings.EqualFold(req.Header.Get("Connection"), "close") {
			break
		}
	}
	if err := f.Close(); err != nil {
		s.logf(obs.Debug, "%s: close failed: %v", c.RemoteAddr(), err)
	}
}

func (s *Server) handler() Handler {
	if s.Handler != nil {
		return s.Handler
	}
	return HandlerFunc(func(*Request) *Response {
		return &Response{StatusCode: 404}
	})
}

func (s *Server) logf(level obs.Level, format string, args ...interface{}) {
	lg := s.Logger
	if lg == nil {
		lg = obs.NopLogger{}
	}
	lg.Logf(level, format, args...)
}

func (s *Server) metricCounter(name string, value float64, labels ...obs.Label) {
	if s.Meter != nil {
		s.Meter.Counter(name, value, labels...)
	}
}

func (s *Server) metricHistogram(name string, value float64, labels ...obs.Label) {
	if s.Meter != nil {
		s.Meter.Histogram(name, value, labels...)
	}
}
