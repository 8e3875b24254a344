// Package httpf is a minimal framed HTTP/1.1 server core.
//
// The heart of the package is the codec contract (Decoder, Encoder, Codec)
// and the Framed transport composing one codec with one raw duplex byte
// stream: incoming bytes accumulate in a connection-owned buffer and come
// out of Next as decoded Requests; Responses go in through Send and reach
// the wire on Flush, with backpressure once buffered bytes pass a
// boundary.
//
//	f := httpf.NewFramed(conn, httpf.HTTPCodec{})
//	for {
//		req, err := f.Next()
//		if err != nil { break } // io.EOF on a clean end of stream
//		resp := handle(req)
//		if err := f.Send(resp); err != nil { break }
//		if err := f.Flush(); err != nil { break }
//	}
//	f.Close()
//
// Server and FileHandler wrap this loop into a small static file server;
// any other wire format can reuse Framed by supplying its own codec.
//
// Scope: requests carry no bodies, responses always carry an explicit
// Content-Length, and there is no chunked transfer encoding, TLS or
// HTTP/2.
package httpf
