package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequestLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want RequestLine
		err  error
	}{
		{
			name: "simple",
			line: "GET /index.html HTTP/1.1",
			want: RequestLine{Method: "GET", RequestTarget: "/index.html", HttpVersion: "HTTP/1.1"},
		},
		{
			name: "case-insensitive method and version",
			line: "get / http/1.1",
			want: RequestLine{Method: "get", RequestTarget: "/", HttpVersion: "http/1.1"},
		},
		{
			name: "whitespace runs",
			line: "GET \t /coffee\t\t  HTTP/1.1",
			want: RequestLine{Method: "GET", RequestTarget: "/coffee", HttpVersion: "HTTP/1.1"},
		},
		{
			name: "absolute form",
			line: "GET http://host/a/b HTTP/1.1",
			want: RequestLine{Method: "GET", RequestTarget: "/a/b", HttpVersion: "HTTP/1.1"},
		},
		{
			name: "absolute form with port and upper-case scheme",
			line: "GET HTTP://host:8080/ HTTP/1.1",
			want: RequestLine{Method: "GET", RequestTarget: "/", HttpVersion: "HTTP/1.1"},
		},
		{name: "post", line: "POST / HTTP/1.1", err: ErrUnsupportedMethod},
		{name: "http 1.0", line: "GET /x HTTP/1.0", err: ErrUnsupportedHttpVersion},
		{name: "trailing space after version", line: "GET /x HTTP/1.1 ", err: ErrUnsupportedHttpVersion},
		{name: "missing version", line: "GET /x", err: ErrMalformedRequestLine},
		{name: "method only", line: "GET", err: ErrMalformedRequestLine},
		{name: "empty", line: "", err: ErrMalformedRequestLine},
		{name: "relative target", line: "GET index.html HTTP/1.1", err: ErrInvalidTarget},
		{name: "authority without path", line: "GET http://host HTTP/1.1", err: ErrInvalidTarget},
		{name: "https is not stripped", line: "GET https://host/ HTTP/1.1", err: ErrInvalidTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl, err := parseRequestLine([]byte(tt.line))
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rl)
		})
	}
}
