package httpf

import (
	"os"
	"path/filepath"
	"strings"
)

// FileHandler serves files from Root. Request targets are normalized by
// dropping empty, "." and ".." segments before joining under Root, so a
// request can never escape it. Directory targets fall through to Index.
// Missing or unreadable files answer 404 with an empty body.
type FileHandler struct {
	Root  string
	Index string // defaults to "index.html"
}

func (h *FileHandler) HandleRequest(r *Request) *Response {
	root := h.Root
	if root == "" {
		root = "."
	}
	index := h.Index
	if index == "" {
		index = "index.html"
	}

	target := r.Target
	if i := strings.IndexByte(target, '?'); i >= 0 {
		target = target[:i]
	}
	path := root
	for _, seg := range strings.Split(target, "/") {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		path = filepath.Join(path, seg)
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, index)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return &Response{StatusCode: 404}
	}
	return &Response{StatusCode: 200, Body: body}
}
