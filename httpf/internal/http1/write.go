package http1

import (
	"bytes"
	"errors"
	"fmt"
	"time"
)

// IMF-fixdate layout from RFC 9110 §5.6.7.
const dateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

var (
	ErrUnknownStatus = errors.New("http1: no reason phrase for status code")
	ErrHeaderValue   = errors.New("http1: header field is not printable")
)

// WriteResponse appends the serialized response head and body to dst.
// The fixed lines (status, Server, Date, Content-Length) come first, then
// the caller's fields in order, a blank line and the raw body. The head is
// validated before a single byte is appended, so a failed encode leaves
// dst untouched.
func WriteResponse(dst *bytes.Buffer, server string, status int, fields []Field, body []byte, now time.Time) error {
	reason, ok := ReasonPhrase(status)
	if !ok {
		return ErrUnknownStatus
	}
	for _, f := range fields {
		if !validFieldName(f.Name) || !printableValue(f.Value) {
			return ErrHeaderValue
		}
	}
	fmt.Fprintf(dst, "HTTP/1.1 %d %s\r\n", status, reason)
	fmt.Fprintf(dst, "Server: %s\r\n", server)
	fmt.Fprintf(dst, "Date: %s\r\n", now.UTC().Format(dateLayout))
	fmt.Fprintf(dst, "Content-Length: %d\r\n", len(body))
	for _, f := range fields {
		fmt.Fprintf(dst, "%s: %s\r\n", f.Name, f.Value)
	}
	dst.WriteString("\r\n")
	dst.Write(body)
	return nil
}

// printableValue reports whether v is visible ASCII plus SP and HTAB.
func printableValue(v string) bool {
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\t' {
			continue
		}
		if c < 0x20 || c >= 0x7f {
			return false
		}
	}
	return true
}

// ReasonPhrase returns the canonical reason phrase for a status code.
func ReasonPhrase(code int) (string, bool) {
	switch code {
	case 100:
		return "Continue", true
	case 101:
		return "Switching Protocols", true
	case 200:
		return "OK", true
	case 201:
		return "Created", true
	case 202:
		return "Accepted", true
	case 203:
		return "Non-Authoritative Information", true
	case 204:
		return "No Content", true
	case 205:
		return "Reset Content", true
	case 206:
		return "Partial Content", true
	case 300:
		return "Multiple Choices", true
	case 301:
		return "Moved Permanently", true
	case 302:
		return "Found", true
	case 303:
		return "See Other", true
	case 304:
		return "Not Modified", true
	case 307:
		return "Temporary Redirect", true
	case 308:
		return "Permanent Redirect", true
	case 400:
		return "Bad Request", true
	case 401:
		return "Unauthorized", true
	case 402:
		return "Payment Required", true
	case 403:
		return "Forbidden", true
	case 404:
		return "Not Found", true
	case 405:
		return "Method Not Allowed", true
	case 406:
		return "Not Acceptable", true
	case 407:
		return "Proxy Authentication Required", true
	case 408:
		return "Request Timeout", true
	case 409:
		return "Conflict", true
	case 410:
		return "Gone", true
	case 411:
		return "Length Required", true
	case 412:
		return "Precondition Failed", true
	case 413:
		return "Payload Too Large", true
	case 414:
		return "URI Too Long", true
	case 415:
		return "Unsupported Media Type", true
	case 416:
		return "Range Not Satisfiable", true
	case 417:
		return "Expectation Failed", true
	case 421:
		return "Misdirected Request", true
	case 426:
		return "Upgrade Required", true
	case 428:
		return "Precondition Required", true
	case 429:
		return "Too Many Requests", true
	case 431:
		return "Request Header Fields Too Large", true
	case 451:
		return "Unavailable For Legal Reasons", true
	case 500:
		return "Internal Server Error", true
	case 501:
		return "Not Implemented", true
	case 502:
		return "Bad Gateway", true
	case 503:
		return "Service Unavailable", true
	case 504:
		return "Gateway Timeout", true
	case 505:
		return "HTTP Version Not Supported", true
	default:
		return "", false
	}
}
