package httpf

import (
	"bytes"
	"io"

	"dqx0.com/go/framed/internal/obs"
)

// initialCapacity sizes the read scratch chunk, the up-front reservation
// of the accumulation buffer and the default backpressure boundary.
const initialCapacity = 8 * 1024

// Framed composes one codec with one raw duplex byte stream. The read
// side is a pull-based frame sequence (Next); the write side is a
// push-based sink (Send, Flush, Close) with explicit backpressure.
//
// A Framed serves exactly one connection and is driven by the single
// goroutine owning that connection, so it takes no locks. The only
// blocking points are the stream Read inside Next and the stream Write
// inside Flush. There is no internal timeout or cancellation; deadlines
// belong to whoever manages the raw stream.
type Framed[In, Out any] struct {
	Logger obs.Logger
	Meter  obs.Meter

	rw    io.ReadWriteCloser
	codec Codec[In, Out]

	// Read state. rbuf grows at the tail and is consumed from the head
	// by decodes; scratch is reused for every raw read and never
	// retained. readable means a decode attempt is owed before the next
	// network read; eof, once set, stays set.
	rbuf     bytes.Buffer
	scratch  [initialCapacity]byte
	readable bool
	eof      bool

	// Write state: pending encoded bytes and the boundary past which
	// Ready forces a flush.
	wbuf     bytes.Buffer
	boundary int
}

// NewFramed wraps rw with codec. The accumulation buffer reserves 8 KiB
// up front and never shrinks; it is reclaimed with the connection.
func NewFramed[In, Out any](rw io.ReadWriteCloser, codec Codec[In, Out]) *Framed[In, Out] {
	f := &Framed[In, Out]{rw: rw, codec: codec, boundary: initialCapacity}
	f.rbuf.Grow(initialCapacity)
	f.wbuf.Grow(initialCapacity)
	return f
}

// SetBoundary overrides the default 8 KiB backpressure boundary.
func (f *Framed[In, Out]) SetBoundary(n int) {
	if n > 0 {
		f.boundary = n
	}
}

// Buffered reports the encoded bytes not yet flushed to the stream.
func (f *Framed[In, Out]) Buffered() int { return f.wbuf.Len() }

// Next returns the next decoded frame. Frames already sitting in the
// accumulation buffer are drained before any network read, preserving
// arrival order, and at most one read of up to 8 KiB happens per retry.
// A clean end of stream surfaces as io.EOF; a truncated trailing frame as
// ErrTrailingBytes. The sequence is finite and not restartable after
// either.
func (f *Framed[In, Out]) Next() (In, error) {
	var zero In
	for {
		if f.readable {
			if f.eof {
				frame, ok, err := DecodeEOF[In](f.codec, &f.rbuf)
				if err != nil {
					return zero, err
				}
				if !ok {
					return zero, io.EOF
				}
				f.metricCounter("framed_frames_decoded_total", 1)
				return frame, nil
			}
			frame, ok, err := f.codec.Decode(&f.rbuf)
			if err != nil {
				return zero, err
			}
			if ok {
				f.metricCounter("framed_frames_decoded_total", 1)
				return frame, nil
			}
			f.readable = false
		}

		n, err := f.rw.Read(f.scratch[:])
		if n > 0 {
			f.rbuf.Write(f.scratch[:n])
			f.readable = true
		}
		if err == io.EOF {
			f.eof = true
			f.readable = true
		} else if err != nil {
			return zero, err
		}
	}
}

// Ready reports whether the sink can take another frame, flushing first
// when buffered bytes exceed the backpressure boundary.
func (f *Framed[In, Out]) Ready() error {
	if f.wbuf.Len() > f.boundary {
		return f.Flush()
	}
	return nil
}

// Send serializes item into the write buffer after a readiness check.
// The bytes may stay buffered indefinitely; Flush or Close puts them on
// the wire.
func (f *Framed[In, Out]) Send(item Out) error {
	if err := f.Ready(); err != nil {
		return err
	}
	if err := f.codec.Encode(item, &f.wbuf); err != nil {
		return err
	}
	f.metricCounter("framed_frames_encoded_total", 1)
	return nil
}

// Flush writes buffered bytes to the stream until none remain, advancing
// by exactly the amount each write reports. A zero-byte write with data
// pending is a broken connection; the loop never spins without progress.
func (f *Framed[In, Out]) Flush() error {
	flushed := 0
	for f.wbuf.Len() > 0 {
		n, err := f.rw.Write(f.wbuf.Bytes())
		if n > 0 {
			f.wbuf.Next(n)
			flushed += n
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrBrokenConn
		}
	}
	if flushed > 0 {
		f.metricHistogram("framed_flush_bytes", float64(flushed))
	}
	if fl, ok := f.rw.(Flusher); ok {
		return fl.Flush()
	}
	return nil
}

// Close flushes buffered bytes and closes the raw stream. Tearing a
// connection down without Close loses whatever is still buffered; Close
// must run to completion for sent frames to be durable.
func (f *Framed[In, Out]) Close() error {
	if err := f.Flush(); err != nil {
		f.logf(obs.Debug, "flush on close failed: %v", err)
		_ = f.rw.Close()
		return err
	}
	return f.rw.Close()
}

func (f *Framed[In, Out]) logf(level obs.Level, format string, args ...interface{}) {
	lg := f.Logger
	if lg == nil {
		lg = obs.NopLogger{}
	}
	lg.Logf(level, format, args...)
}

func (f *Framed[In, Out]) metricCounter(name string, value float64, labels ...obs.Label) {
	if f.Meter != nil {
		f.Meter.Counter(name, value, labels...)
	}
}

func (f *Framed[In, Out]) metricHistogram(name string, value float64, labels ...obs.Label) {
	if f.Meter != nil {
		f.Meter.Histogram(name, value, labels...)
	}
}
