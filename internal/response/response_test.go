package response

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReply(t *testing.T) {
	// Test: Plain success
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteReply(ReplySuccess, false))
	assert.Equal(t, "I get a correct result\n", buf.String())

	// Test: Plain failure
	buf.Reset()
	require.NoError(t, NewWriter(&buf).WriteReply(ReplyFailure, false))
	assert.Equal(t, "Something wrong\n", buf.String())

	// Test: Framed failure
	buf.Reset()
	require.NoError(t, NewWriter(&buf).WriteReply(ReplyFailure, true))
	assert.Equal(t, "HTTP/1.1 400 Bad Request\r\n"+
		"content-length: 16\r\n"+
		"connection: close\r\n"+
		"content-type: text/plain\r\n"+
		"\r\n"+
		"Something wrong\n", buf.String())

	// Test: Framed success
	buf.Reset()
	require.NoError(t, NewWriter(&buf).WriteReply(ReplySuccess, true))
	assert.Equal(t, "HTTP/1.1 200 OK\r\n"+
		"content-length: 23\r\n"+
		"connection: close\r\n"+
		"content-type: text/plain\r\n"+
		"\r\n"+
		"I get a correct result\n", buf.String())
}

func TestWriteStatusLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteStatusLine(StatusInternalServerError))
	assert.Equal(t, "HTTP/1.1 500 Internal Server Error\r\n", buf.String())
	require.Error(t, w.WriteStatusLine(StatusCode(418)))
}
