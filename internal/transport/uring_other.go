//go:build !linux

package transport

import (
	"net"
	"time"
)

const defaultRingEntries = 32

type Ring struct{}

func NewRing(entries uint) (*Ring, error) {
	return nil, newError(KindRing, "io_uring", ErrUnsupported)
}

func (r *Ring) Close() error { return nil }

func NewUringConn(ring *Ring, conn net.Conn, readTimeout, writeTimeout time.Duration) (Conn, error) {
	return nil, newError(KindRing, "io_uring", ErrUnsupported)
}
