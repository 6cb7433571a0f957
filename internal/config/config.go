package config

import (
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/cherry77-cloud/Rookie2025-Spring/internal/request"
	"github.com/cherry77-cloud/Rookie2025-Spring/internal/transport"
	"github.com/pkg/errors"
)

const (
	defaultReadTimeout  = 3 * time.Minute
	defaultWriteTimeout = 1 * time.Minute
	defaultDrainTimeout = 5 * time.Second
)

type Config struct {
	IP   string
	Port int

	// BufferSize caps the request head; a longer head gets the failure reply.
	BufferSize   int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// DrainTimeout is how long shutdown waits before cutting off reads on open
	// connections.
	DrainTimeout time.Duration

	// Framed wraps the fixed replies in an HTTP/1.1 status line and headers.
	Framed bool
	// StrictHost rejects heads whose Host value is not a valid host header.
	StrictHost bool
	Backend    transport.Backend
	// Once stops the server after its first connection.
	Once bool
}

func Default() Config {
	return Config{
		IP:           "127.0.0.1",
		BufferSize:   request.DefaultBufferSize,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		DrainTimeout: defaultDrainTimeout,
		Backend:      transport.BackendNet,
	}
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.IP, strconv.Itoa(c.Port))
}

func (c Config) Validate() error {
	if net.ParseIP(c.IP) == nil {
		return errors.Errorf("invalid ip address %q", c.IP)
	}
	if c.Port < 0 || c.Port > 65535 {
		return errors.Errorf("invalid port %d", c.Port)
	}
	if c.BufferSize <= 0 {
		return errors.Errorf("buffer size must be positive, got %d", c.BufferSize)
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 || c.DrainTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	if _, err := transport.ParseBackend(string(c.Backend)); err != nil {
		return err
	}
	return nil
}

// Load parses "[flags] ip_address port_number".
func Load(name string, args []string, output io.Writer) (Config, error) {
	cfg := Default()
	var backend string

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "usage: %s [flags] ip_address port_number\n", name)
		fs.PrintDefaults()
	}
	fs.IntVar(&cfg.BufferSize, "buffer", cfg.BufferSize, "request head buffer size in bytes")
	fs.DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "per-read deadline, 0 disables it")
	fs.DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "per-write deadline, 0 disables it")
	fs.DurationVar(&cfg.DrainTimeout, "drain-timeout", cfg.DrainTimeout, "grace period for open connections on shutdown")
	fs.BoolVar(&cfg.Framed, "framed", false, "send replies as HTTP/1.1 responses")
	fs.BoolVar(&cfg.StrictHost, "strict-host", false, "reject invalid Host header values")
	fs.StringVar(&backend, "io", string(cfg.Backend), "socket io backend: net or uring")
	fs.BoolVar(&cfg.Once, "once", false, "serve a single connection and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return cfg, errors.New("expected ip_address and port_number")
	}

	cfg.IP = fs.Arg(0)
	port, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return cfg, errors.Wrapf(err, "parse port %q", fs.Arg(1))
	}
	cfg.Port = port
	cfg.Backend = transport.Backend(backend)

	return cfg, cfg.Validate()
}
