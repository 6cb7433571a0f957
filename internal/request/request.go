package request

import (
	"io"

	"github.com/cherry77-cloud/Rookie2025-Spring/internal/headers"
	"github.com/pkg/errors"
)

type parserState int

const (
	StateRequestLine parserState = iota
	StateHeaders
)

// DefaultBufferSize bounds a request head.
const DefaultBufferSize = 4096

// Request is the parse context of a single connection's request head. It is not safe
// for concurrent use.
//
// RequestLine and Host alias the buffer and stay valid until Reset.
type Request struct {
	RequestLine RequestLine
	Host        string

	buf     *Buffer
	state   parserState
	outcome Outcome
	err     error
}

func New(bufferSize int) *Request {
	return &Request{
		buf:   NewBuffer(bufferSize),
		state: StateRequestLine,
	}
}

func (r *Request) Buffer() *Buffer { return r.buf }

// Free is where the next read should land.
func (r *Request) Free() []byte { return r.buf.Free() }

// Commit records n freshly read bytes at the append point and advances the parser.
func (r *Request) Commit(n int) (Outcome, error) {
	if r.outcome.Terminal() {
		return r.outcome, r.err
	}
	if err := r.buf.Commit(n); err != nil {
		return Incomplete, err
	}
	return r.parse()
}

// Feed copies p to the append point and commits it. When p does not fit, what fits is
// parsed and, unless that already ended the head, the request fails with
// ErrHeadTooLarge.
func (r *Request) Feed(p []byte) (Outcome, error) {
	if r.outcome.Terminal() {
		return r.outcome, r.err
	}
	n := copy(r.buf.Free(), p)
	outcome, err := r.Commit(n)
	if n < len(p) && !outcome.Terminal() {
		return r.finish(Malformed, ErrHeadTooLarge)
	}
	return outcome, err
}

// Outcome returns the result of the latest Commit.
func (r *Request) Outcome() Outcome { return r.outcome }

func (r *Request) Err() error { return r.err }

func (r *Request) State() parserState { return r.state }

// Exhausted reports a full buffer that still holds an unfinished head. The parser keeps
// answering Incomplete in that case; the reader must give up.
func (r *Request) Exhausted() bool {
	return r.buf.Full() && !r.outcome.Terminal()
}

// Reset discards the parse context so the request can be reused for a new connection.
func (r *Request) Reset() {
	r.buf.Reset()
	r.RequestLine = RequestLine{}
	r.Host = ""
	r.state = StateRequestLine
	r.outcome = Incomplete
	r.err = nil
}

func (r *Request) finish(outcome Outcome, err error) (Outcome, error) {
	r.outcome = outcome
	r.err = err
	return outcome, err
}

func (r *Request) parse() (Outcome, error) {
	for {
		line, status := r.buf.nextLine()
		switch status {
		case lineOpen:
			return Incomplete, nil
		case lineBad:
			return r.finish(Malformed, ErrBadLineEnding)
		}

		switch r.state {
		case StateRequestLine:
			rl, err := parseRequestLine(line)
			if err != nil {
				return r.finish(OutcomeOf(err), err)
			}
			r.RequestLine = rl
			r.state = StateHeaders
		case StateHeaders:
			field, end, err := headers.ParseLine(line)
			if err != nil {
				return r.finish(Malformed, ErrMalformedHeader)
			}
			if end {
				return r.finish(Accepted, nil)
			}
			if field.IsHost() {
				r.Host = field.Value
			}
		default:
			return r.finish(InternalFault, ErrInternal)
		}
	}
}

// RequestFromReader reads from reader straight into a buffer of bufferSize bytes until
// the head is accepted or rejected.
func RequestFromReader(reader io.Reader, bufferSize int) (*Request, error) {
	request := New(bufferSize)

	for {
		if request.Exhausted() {
			request.finish(Malformed, ErrHeadTooLarge)
			return request, ErrHeadTooLarge
		}

		n, err := reader.Read(request.Free())
		if n > 0 {
			outcome, perr := request.Commit(n)
			if perr != nil {
				return request, perr
			}
			if outcome == Accepted {
				return request, nil
			}
		}
		if err == io.EOF {
			return request, errors.Wrap(io.ErrUnexpectedEOF, "read request head")
		}
		if err != nil {
			return request, errors.Wrap(err, "read request head")
		}
	}
}
