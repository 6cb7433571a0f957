package headers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

var (
	ErrMalformedHeader = fmt.Errorf("malformed header line")
)

const hostKey = "host"

// Field is one header line split at its first colon.
type Field struct {
	Name  string
	Value string
}

// IsHost reports whether the field is the Host header. The colon must follow the name
// directly, so "Host :" is some other header.
func (f Field) IsHost() bool {
	return strcomp.EqualFold(f.Name, hostKey)
}

func isHorizontalSpace(c byte) bool { return c == ' ' || c == '\t' }

func trimLeadingSpace(b []byte) []byte {
	for i, c := range b {
		if !isHorizontalSpace(c) {
			return b[i:]
		}
	}

	return b[:0]
}

// ParseLine interprets a single header line with its terminator already removed.
// Name and Value alias line, so they live only as long as the bytes behind it.
// returns
// $1: the field
// $2: is it the blank line that ends the head
// $3: err
func ParseLine(line []byte) (Field, bool, error) {
	if len(line) == 0 {
		return Field{}, true, nil
	}

	idx := bytes.IndexByte(line, ':')
	if idx == -1 {
		return Field{}, false, ErrMalformedHeader
	}

	return Field{
		Name:  uf.B2S(line[:idx]),
		Value: uf.B2S(trimLeadingSpace(line[idx+1:])),
	}, false, nil
}

// Headers is an ordered, case-insensitive set of outgoing header fields.
type Headers struct {
	names   []string
	headers map[string]string
}

func NewHeaders() *Headers {
	return &Headers{
		headers: map[string]string{},
	}
}

func (h *Headers) Get(name string) string {
	return h.headers[strings.ToLower(name)]
}

func (h *Headers) Len() int {
	return len(h.names)
}

// ForEach visits fields in the order they were first set.
func (h *Headers) ForEach(cb func(n, v string)) {
	for _, n := range h.names {
		cb(n, h.headers[n])
	}
}

func (h *Headers) Set(name, value string) {
	name = strings.ToLower(name)
	if v, ok := h.headers[name]; ok {
		h.headers[name] = fmt.Sprintf("%s,%s", v, value)
		return
	}
	h.names = append(h.names, name)
	h.headers[name] = value
}

func (h *Headers) Replace(name, value string) {
	name = strings.ToLower(name)
	if _, ok := h.headers[name]; !ok {
		h.names = append(h.names, name)
	}
	h.headers[name] = value
}

func (h *Headers) Delete(name string) {
	name = strings.ToLower(name)
	if _, ok := h.headers[name]; !ok {
		return
	}
	delete(h.headers, name)
	for i, n := range h.names {
		if n == name {
			h.names = append(h.names[:i], h.names[i+1:]...)
			break
		}
	}
}
