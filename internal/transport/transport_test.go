package transport

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetConn(t *testing.T) {
	server, client := net.Pipe()
	conn := NewNetConn(server, time.Second, time.Second)

	go func() {
		client.Write([]byte("GET / HTTP/1.1\r\n"))
		buf := make([]byte, 64)
		n, _ := client.Read(buf)
		client.Write(buf[:n])
		client.Close()
	}()

	buf := make([]byte, 64)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "GET / HTTP/1.1\r\n", string(buf[:n]))

	n, err = conn.Write([]byte("echo"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = conn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "echo", string(buf[:n]))

	// Test: Peer closed
	_, err = conn.Read(buf)
	require.ErrorIs(t, err, ErrConnectionClosed)
	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, KindRead, terr.Kind)

	require.NoError(t, conn.Close())
}

func TestNetConnTimeout(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()
	conn := NewNetConn(server, 20*time.Millisecond, 0)
	defer conn.Close()

	_, err := conn.Read(make([]byte, 8))
	require.ErrorIs(t, err, ErrTimeout)
}

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend("net")
	require.NoError(t, err)
	assert.Equal(t, BackendNet, b)

	b, err = ParseBackend("uring")
	require.NoError(t, err)
	assert.Equal(t, BackendUring, b)

	_, err = ParseBackend("epoll")
	require.Error(t, err)
}

func TestOpenerNet(t *testing.T) {
	o, err := NewOpener(BackendNet, time.Second, time.Second)
	require.NoError(t, err)
	defer o.Close()
	assert.Equal(t, BackendNet, o.Backend())

	server, client := net.Pipe()
	defer client.Close()
	conn, err := o.Open(server)
	require.NoError(t, err)
	require.NoError(t, conn.Close())
}

func TestErrorString(t *testing.T) {
	err := newError(KindWrite, "connection closed during write", ErrConnectionClosed)
	assert.Equal(t, "write: connection closed during write: connection closed by peer", err.Error())
	assert.Equal(t, "io_uring: no io_uring instance", newError(KindRing, "no io_uring instance", nil).Error())
}
