package request

import (
	"bytes"

	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

const (
	methodGet     = "GET"
	httpVersion11 = "HTTP/1.1"
	schemeHTTP    = "http://"
)

type RequestLine struct {
	Method        string
	RequestTarget string
	HttpVersion   string
}

func isHorizontalSpace(c byte) bool { return c == ' ' || c == '\t' }

func indexSpace(b []byte) int {
	return bytes.IndexAny(b, " \t")
}

func skipSpace(b []byte) []byte {
	for i, c := range b {
		if !isHorizontalSpace(c) {
			return b[i:]
		}
	}
	return b[:0]
}

// parseRequestLine tokenizes "<method> <target> <version>". The resulting strings alias
// line.
func parseRequestLine(line []byte) (RequestLine, error) {
	idx := indexSpace(line)
	if idx == -1 {
		return RequestLine{}, ErrMalformedRequestLine
	}
	method := uf.B2S(line[:idx])
	if !strcomp.EqualFold(method, methodGet) {
		return RequestLine{}, ErrUnsupportedMethod
	}

	rest := skipSpace(line[idx+1:])
	idx = indexSpace(rest)
	if idx == -1 {
		return RequestLine{}, ErrMalformedRequestLine
	}
	target := rest[:idx]
	version := uf.B2S(skipSpace(rest[idx+1:]))
	if !strcomp.EqualFold(version, httpVersion11) {
		return RequestLine{}, ErrUnsupportedHttpVersion
	}

	if len(target) >= len(schemeHTTP) && strcomp.EqualFold(uf.B2S(target[:len(schemeHTTP)]), schemeHTTP) {
		target = target[len(schemeHTTP):]
		slash := bytes.IndexByte(target, '/')
		if slash == -1 {
			return RequestLine{}, ErrInvalidTarget
		}
		target = target[slash:]
	}
	if len(target) == 0 || target[0] != '/' {
		return RequestLine{}, ErrInvalidTarget
	}

	return RequestLine{
		Method:        method,
		RequestTarget: uf.B2S(target),
		HttpVersion:   version,
	}, nil
}
