package server

import (
	"context"
	"io"
	"log"
	"net"
	"sync"
	"time"

	"github.com/cherry77-cloud/Rookie2025-Spring/internal/config"
	"github.com/cherry77-cloud/Rookie2025-Spring/internal/request"
	"github.com/cherry77-cloud/Rookie2025-Spring/internal/response"
	"github.com/cherry77-cloud/Rookie2025-Spring/internal/transport"
	"github.com/pkg/errors"
	"golang.org/x/net/http/httpguts"
)

// Handler picks the reply for an accepted request head. The request's strings alias
// its buffer and must not be kept after the handler returns.
type Handler func(req *request.Request) response.Reply

type Server struct {
	cfg      config.Config
	handler  Handler
	listener net.Listener
	opener   *transport.Opener

	mu        sync.Mutex
	closed    bool
	active    map[net.Conn]struct{}
	closeOnce sync.Once
	conns     sync.WaitGroup
	done      chan struct{}
}

// Serve starts accepting connections in the background. Cancelling ctx closes the
// server.
func Serve(ctx context.Context, cfg config.Config, handler Handler) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opener, err := transport.NewOpener(cfg.Backend, cfg.ReadTimeout, cfg.WriteTimeout)
	if err != nil {
		return nil, errors.Wrap(err, "open io backend")
	}
	listener, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		opener.Close()
		return nil, errors.Wrapf(err, "listen on %s", cfg.Addr())
	}

	s := &Server{
		cfg:      cfg,
		handler:  handler,
		listener: listener,
		opener:   opener,
		active:   make(map[net.Conn]struct{}),
		done:     make(chan struct{}),
	}
	go s.runServer()
	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()

	return s, nil
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Done is closed once the server has shut down and every connection has finished.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Close stops accepting and waits for open connections. Connections still running
// after the drain timeout have their read side shut down, which ends a pending read
// on either io backend.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		err = s.listener.Close()
		s.drain()
		if cerr := s.opener.Close(); err == nil {
			err = cerr
		}
		close(s.done)
	})
	return err
}

func (s *Server) drain() {
	finished := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(finished)
	}()

	timer := time.NewTimer(s.cfg.DrainTimeout)
	defer timer.Stop()
	select {
	case <-finished:
		return
	case <-timer.C:
	}

	s.mu.Lock()
	for conn := range s.active {
		log.Printf("%s: cutting off reads on shutdown", conn.RemoteAddr())
		stopReading(conn)
	}
	s.mu.Unlock()
	<-finished
}

func stopReading(conn net.Conn) {
	if cr, ok := conn.(interface{ CloseRead() error }); ok {
		cr.CloseRead()
		return
	}
	conn.Close()
}

// track registers conn with the drain unless the server is already closing.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns.Add(1)
	s.active[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.active, conn)
	s.mu.Unlock()
	s.conns.Done()
}

func (s *Server) runServer() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Println("error accepting a connection:", err)
			continue
		}

		if !s.track(conn) {
			conn.Close()
			return
		}

		if s.cfg.Once {
			s.runConnection(conn)
			s.untrack(conn)
			s.Close()
			return
		}

		go func() {
			defer s.untrack(conn)
			s.runConnection(conn)
		}()
	}
}

func (s *Server) runConnection(conn net.Conn) {
	remote := conn.RemoteAddr()
	c, err := s.opener.Open(conn)
	if err != nil {
		log.Printf("%s: %v", remote, err)
		conn.Close()
		return
	}
	defer c.Close()

	r, err := request.RequestFromReader(c, s.cfg.BufferSize)
	var perr *request.ParseError
	var reply response.Reply
	switch {
	case err == nil:
		reply = s.accept(remote, r)
	case errors.As(err, &perr):
		log.Printf("%s: bad request (%s): %v", remote, perr.Outcome, err)
		reply = response.ReplyFailure
	case errors.Is(err, transport.ErrConnectionClosed), errors.Is(err, io.ErrUnexpectedEOF):
		log.Printf("%s: remote client has closed the connection", remote)
		return
	default:
		log.Printf("%s: reading failed: %v", remote, err)
		return
	}

	if err := response.NewWriter(c).WriteReply(reply, s.cfg.Framed); err != nil {
		log.Printf("%s: write reply: %v", remote, err)
	}
}

func (s *Server) accept(remote net.Addr, r *request.Request) response.Reply {
	if s.cfg.StrictHost && (r.Host == "" || !httpguts.ValidHostHeader(r.Host)) {
		log.Printf("%s: rejected host %q", remote, r.Host)
		return response.ReplyFailure
	}

	log.Printf("%s: %s %s host=%q", remote, r.RequestLine.Method, r.RequestLine.RequestTarget, r.Host)
	if s.handler == nil {
		return response.ReplySuccess
	}
	return s.handler(r)
}
