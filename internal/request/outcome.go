package request

import "errors"

// Outcome classifies a request head after each batch of new bytes.
type Outcome int

const (
	Incomplete Outcome = iota
	Accepted
	Malformed
	// Unsupported is a Malformed head whose method or version is not recognized.
	Unsupported
	InternalFault
)

func (o Outcome) String() string {
	switch o {
	case Incomplete:
		return "incomplete"
	case Accepted:
		return "accepted"
	case Malformed:
		return "malformed"
	case Unsupported:
		return "unsupported"
	case InternalFault:
		return "internal fault"
	}
	return "unknown"
}

// Terminal reports whether parsing of this head is over.
func (o Outcome) Terminal() bool {
	return o != Incomplete
}

func (o Outcome) IsMalformed() bool {
	return o == Malformed || o == Unsupported
}

// ParseError is a terminal parse failure together with its outcome.
type ParseError struct {
	Outcome Outcome
	Reason  string
}

func (e *ParseError) Error() string {
	return e.Reason
}

var (
	ErrBadLineEnding          = &ParseError{Malformed, "bad line ending"}
	ErrMalformedRequestLine   = &ParseError{Malformed, "malformed request line"}
	ErrUnsupportedMethod      = &ParseError{Unsupported, "unsupported method"}
	ErrUnsupportedHttpVersion = &ParseError{Unsupported, "unsupported http version"}
	ErrInvalidTarget          = &ParseError{Malformed, "request target is not an absolute path"}
	ErrMalformedHeader        = &ParseError{Malformed, "malformed header line"}
	ErrHeadTooLarge           = &ParseError{Malformed, "request head exceeds buffer"}
	ErrInternal               = &ParseError{InternalFault, "parser reached an unknown state"}
)

// OutcomeOf returns the outcome carried by err, looking through wrapping.
// A nil error is Incomplete, an error without a ParseError is Malformed.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return Incomplete
	}
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr.Outcome
	}
	return Malformed
}
