package httpf

// Request is one decoded HTTP/1.1 request head. Bodies are never read.
// A Request is immutable once produced and owned by its consumer.
type Request struct {
	Method string
	Target string
	Proto  string // always "HTTP/1.1"
	Header Header
}
