package httpf

// Flusher is implemented by raw streams that buffer writes themselves.
// Framed.Flush forwards to it after draining its own buffer.
type Flusher interface {
	Flush() error
}
