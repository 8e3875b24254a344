package httpf

import "bytes"

// Decoder turns accumulated stream bytes into frames.
//
// Decode inspects src and performs no I/O. When a complete frame is
// present it consumes exactly that frame's bytes from the head of src and
// returns it with ok=true. ok=false with a nil error means more bytes are
// required and src was left untouched. Errors are fatal to the stream.
type Decoder[F any] interface {
	Decode(src *bytes.Buffer) (frame F, ok bool, err error)
}

// Encoder serializes one frame by appending its bytes to dst, in place and
// without I/O. A frame is consumed by a successful encode and must not be
// reused.
type Encoder[F any] interface {
	Encode(frame F, dst *bytes.Buffer) error
}

// Codec pairs a Decoder and an Encoder. One instance handles a whole
// connection's full duplex traffic; Decode and Encode are never invoked
// concurrently on the same instance.
type Codec[In, Out any] interface {
	Decoder[In]
	Encoder[Out]
}

// DecodeEOF drains src once end of stream has been observed. It calls
// Decode once; when no frame results the stream ended cleanly only if src
// is empty. A truncated trailing frame is never dropped silently: it
// surfaces as ErrTrailingBytes.
func DecodeEOF[F any](d Decoder[F], src *bytes.Buffer) (F, bool, error) {
	frame, ok, err := d.Decode(src)
	if err != nil || ok {
		return frame, ok, err
	}
	var zero F
	if src.Len() == 0 {
		return zero, false, nil
	}
	return zero, false, ErrTrailingBytes
}
