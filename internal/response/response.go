package response

import (
	"fmt"
	"io"

	"github.com/cherry77-cloud/Rookie2025-Spring/internal/headers"
)

type StatusCode int

const (
	StatusOK                  StatusCode = 200
	StatusBadRequest          StatusCode = 400
	StatusInternalServerError StatusCode = 500
)

// Reply is one of the two fixed acknowledgments a connection gets before it is closed.
type Reply int

const (
	ReplySuccess Reply = iota
	ReplyFailure
)

const (
	successBody = "I get a correct result\n"
	failureBody = "Something wrong\n"
)

func (r Reply) Body() string {
	if r == ReplySuccess {
		return successBody
	}
	return failureBody
}

func (r Reply) StatusCode() StatusCode {
	if r == ReplySuccess {
		return StatusOK
	}
	return StatusBadRequest
}

func GetDefaultHeaders(contentLen int) *headers.Headers {
	h := headers.NewHeaders()
	h.Replace("Content-Length", fmt.Sprintf("%d", contentLen))
	h.Set("Connection", "close")
	h.Set("Content-Type", "text/plain")
	return h
}

type Writer struct {
	writer io.Writer
}

func NewWriter(writer io.Writer) *Writer {
	return &Writer{
		writer: writer,
	}
}

func (w *Writer) WriteStatusLine(statusCode StatusCode) error {
	statusLine := []byte{}
	switch statusCode {
	case StatusOK:
		statusLine = []byte("HTTP/1.1 200 OK")
	case StatusBadRequest:
		statusLine = []byte("HTTP/1.1 400 Bad Request")
	case StatusInternalServerError:
		statusLine = []byte("HTTP/1.1 500 Internal Server Error")
	default:
		return fmt.Errorf("unrecognized status code %d", statusCode)
	}
	statusLine = fmt.Appendf(statusLine, "\r\n")
	_, err := w.writer.Write(statusLine)
	return err
}

func (w *Writer) WriteHeaders(h headers.Headers) error {
	b := []byte{}
	h.ForEach(func(n, v string) {
		b = fmt.Appendf(b, "%s: %s\r\n", n, v)
	})
	b = fmt.Append(b, "\r\n")
	_, err := w.writer.Write(b)
	return err
}

func (w *Writer) WriteBody(p []byte) (int, error) {
	return w.writer.Write(p)
}

// WriteReply sends the reply body alone, or, when framed, as a complete HTTP/1.1
// response.
func (w *Writer) WriteReply(reply Reply, framed bool) error {
	body := reply.Body()
	if framed {
		if err := w.WriteStatusLine(reply.StatusCode()); err != nil {
			return err
		}
		if err := w.WriteHeaders(*GetDefaultHeaders(len(body))); err != nil {
			return err
		}
	}
	_, err := w.WriteBody([]byte(body))
	return err
}
