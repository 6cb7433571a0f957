//go:build linux

package transport

import (
	"net"
	"os"
	"syscall"
	"time"

	"github.com/iceber/iouring-go"
)

const defaultRingEntries = 32

// Ring is an io_uring instance shared by every connection of a server.
type Ring struct {
	iour *iouring.IOURing
}

func NewRing(entries uint) (*Ring, error) {
	iour, err := iouring.New(entries)
	if err != nil {
		return nil, newError(KindRing, "failed to initialize io_uring", err)
	}
	return &Ring{iour: iour}, nil
}

func (r *Ring) Close() error {
	if err := r.iour.Close(); err != nil {
		return newError(KindRing, "close io_uring", err)
	}
	return nil
}

type uringConn struct {
	ring                      *Ring
	conn                      net.Conn
	file                      *os.File
	fd                        int
	readTimeout, writeTimeout time.Duration
	closed                    bool
}

// NewUringConn performs recv and send on a duplicate of conn's socket through ring.
func NewUringConn(ring *Ring, conn net.Conn, readTimeout, writeTimeout time.Duration) (Conn, error) {
	if ring == nil {
		return nil, newError(KindRing, "no io_uring instance", nil)
	}
	tcp, ok := conn.(*net.TCPConn)
	if !ok {
		return nil, newError(KindRing, "io_uring backend needs a TCP connection", nil)
	}

	file, err := tcp.File()
	if err != nil {
		return nil, newError(KindRing, "duplicate socket", err)
	}
	fd := int(file.Fd())
	if err := syscall.SetNonblock(fd, true); err != nil {
		file.Close()
		return nil, newError(KindRing, "failed to set non-blocking mode", err)
	}

	return &uringConn{
		ring:         ring,
		conn:         conn,
		file:         file,
		fd:           fd,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}, nil
}

// submit waits for one request. On timeout the request stays in flight until Close
// shuts the socket down.
func (c *uringConn) submit(kind ErrorKind, prep iouring.PrepRequest, timeout time.Duration) (int, error) {
	ch := make(chan iouring.Result, 1)
	if _, err := c.ring.iour.SubmitRequest(prep, ch); err != nil {
		return 0, newError(KindRing, "failed to submit request", err)
	}

	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case result := <-ch:
		// recv and send carry no resolver, so the raw completion value is read back.
		req, ok := result.(iouring.Request)
		if !ok {
			return 0, newError(KindRing, "unexpected completion type", nil)
		}
		n, err := req.GetRes()
		if err != nil {
			return 0, newError(KindRing, "read completion", err)
		}
		if n < 0 {
			return 0, newError(kind, kind.String()+" failed", syscall.Errno(-n))
		}
		return n, nil
	case <-deadline:
		return 0, newError(kind, "no completion in "+timeout.String(), ErrTimeout)
	}
}

func (c *uringConn) Read(p []byte) (int, error) {
	if c.closed {
		return 0, newError(KindRead, "connection closed", net.ErrClosed)
	}

	n, err := c.submit(KindRead, iouring.Recv(c.fd, p, 0), c.readTimeout)
	if err != nil {
		return 0, err
	}
	if n == 0 && len(p) > 0 {
		return 0, newError(KindRead, "connection closed", ErrConnectionClosed)
	}

	return n, nil
}

func (c *uringConn) Write(p []byte) (int, error) {
	if c.closed {
		return 0, newError(KindWrite, "connection closed", net.ErrClosed)
	}

	written := 0
	for written < len(p) {
		n, err := c.submit(KindWrite, iouring.Send(c.fd, p[written:], 0), c.writeTimeout)
		if err != nil {
			return written, err
		}
		if n <= 0 {
			return written, newError(KindWrite, "connection closed during write", ErrConnectionClosed)
		}
		written += n
	}

	return written, nil
}

func (c *uringConn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	_ = syscall.Shutdown(c.fd, syscall.SHUT_RDWR)
	ferr := c.file.Close()
	cerr := c.conn.Close()
	if ferr != nil {
		return newError(KindClose, "close duplicate socket", ferr)
	}
	if cerr != nil {
		return newError(KindClose, "close socket", cerr)
	}
	return nil
}
