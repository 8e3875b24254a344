package httpf

// Response is built by a handler and consumed by the codec's Encode; it is
// not reusable afterward. Server, Date and Content-Length headers are
// written by the codec and must not appear in Header.
type Response struct {
	StatusCode int
	Header     Header
	Body       []byte
}
