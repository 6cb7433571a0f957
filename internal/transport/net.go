package transport

import (
	"net"
	"time"
)

type netConn struct {
	conn                      net.Conn
	readTimeout, writeTimeout time.Duration
}

// NewNetConn arms a fresh deadline before every read and write. A zero timeout
// disables it.
func NewNetConn(conn net.Conn, readTimeout, writeTimeout time.Duration) Conn {
	return &netConn{
		conn:         conn,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (c *netConn) Read(p []byte) (int, error) {
	if c.readTimeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return 0, newError(KindRead, "set read deadline", err)
		}
	}

	n, err := c.conn.Read(p)
	if err != nil {
		return n, classify(KindRead, err)
	}

	return n, nil
}

func (c *netConn) Write(p []byte) (int, error) {
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return 0, newError(KindWrite, "set write deadline", err)
		}
	}

	n, err := c.conn.Write(p)
	if err != nil {
		return n, classify(KindWrite, err)
	}

	return n, nil
}

func (c *netConn) Close() error {
	if err := c.conn.Close(); err != nil {
		return newError(KindClose, "close socket", err)
	}
	return nil
}
