package transport

import (
	"fmt"
	"io"
	"net"
	"time"

	"github.com/pkg/errors"
)

// Conn is what the server reads request heads from and writes replies to.
type Conn interface {
	// Read receives data from the connection
	// Returns the number of bytes read
	Read(p []byte) (int, error)

	// Write sends all of p or fails
	Write(p []byte) (int, error)

	Close() error
}

// Backend selects how accepted sockets are read and written.
type Backend string

const (
	BackendNet   Backend = "net"
	BackendUring Backend = "uring"
)

func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case BackendNet, BackendUring:
		return b, nil
	}
	return "", errors.Errorf("unknown io backend %q", s)
}

// ErrorKind is the operation a transport error came from.
type ErrorKind int

const (
	KindRead ErrorKind = iota
	KindWrite
	KindClose
	KindRing
)

func (k ErrorKind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindWrite:
		return "write"
	case KindClose:
		return "close"
	case KindRing:
		return "io_uring"
	}
	return "unknown"
}

var (
	ErrConnectionClosed = errors.New("connection closed by peer")
	ErrTimeout          = errors.New("deadline exceeded")
	ErrUnsupported      = errors.New("io backend not supported on this platform")
)

// Error represents a failed transport operation
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

// Unwrap returns the underlying error for error chain support
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// classify maps an error from the socket onto the package's sentinels.
func classify(kind ErrorKind, err error) error {
	if errors.Is(err, io.EOF) {
		return newError(kind, "connection closed", ErrConnectionClosed)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return newError(kind, err.Error(), ErrTimeout)
	}
	return newError(kind, fmt.Sprintf("%s failed", kind), err)
}

// Opener wraps accepted connections with the configured backend.
type Opener struct {
	backend                   Backend
	ring                      *Ring
	readTimeout, writeTimeout time.Duration
}

func NewOpener(backend Backend, readTimeout, writeTimeout time.Duration) (*Opener, error) {
	o := &Opener{
		backend:      backend,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
	if backend == BackendUring {
		ring, err := NewRing(defaultRingEntries)
		if err != nil {
			return nil, err
		}
		o.ring = ring
	}
	return o, nil
}

func (o *Opener) Backend() Backend { return o.backend }

func (o *Opener) Open(conn net.Conn) (Conn, error) {
	if o.backend == BackendUring {
		return NewUringConn(o.ring, conn, o.readTimeout, o.writeTimeout)
	}
	return NewNetConn(conn, o.readTimeout, o.writeTimeout), nil
}

func (o *Opener) Close() error {
	if o.ring == nil {
		return nil
	}
	return o.ring.Close()
}
