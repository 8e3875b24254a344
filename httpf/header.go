package httpf

import "strings"

// Field is one header name/value pair.
type Field struct {
	Name  string
	Value string
}

// Header is an ordered list of fields. Unlike a map it keeps duplicates
// and insertion order, which is exactly what the wire carries.
type Header []Field

// Get returns the first value whose name matches key, ASCII
// case-insensitively, or "" when absent.
func (h Header) Get(key string) string {
	for _, f := range h {
		if strings.EqualFold(f.Name, key) {
			return f.Value
		}
	}
	return ""
}

// Values returns every value recorded for key, in order.
func (h Header) Values(key string) []string {
	var vv []string
	for _, f := range h {
		if strings.EqualFold(f.Name, key) {
			vv = append(vv, f.Value)
		}
	}
	return vv
}

// Add appends a field, keeping insertion order.
func (h *Header) Add(name, value string) {
	*h = append(*h, Field{Name: name, Value: value})
}
