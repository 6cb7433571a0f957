package config

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/cherry77-cloud/Rookie2025-Spring/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cfg, err := Load("headparse", []string{"127.0.0.1", "8080"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, 4096, cfg.BufferSize)
	assert.Equal(t, 3*time.Minute, cfg.ReadTimeout)
	assert.Equal(t, time.Minute, cfg.WriteTimeout)
	assert.Equal(t, 5*time.Second, cfg.DrainTimeout)
	assert.Equal(t, transport.BackendNet, cfg.Backend)
	assert.False(t, cfg.Framed)
	assert.False(t, cfg.Once)

	cfg, err = Load("headparse", []string{
		"-buffer", "512", "-framed", "-strict-host", "-once", "-io", "uring",
		"-read-timeout", "5s", "-drain-timeout", "0", "::1", "0",
	}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "[::1]:0", cfg.Addr())
	assert.Equal(t, 512, cfg.BufferSize)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, time.Duration(0), cfg.DrainTimeout)
	assert.Equal(t, transport.BackendUring, cfg.Backend)
	assert.True(t, cfg.Framed)
	assert.True(t, cfg.StrictHost)
	assert.True(t, cfg.Once)
}

func TestLoadErrors(t *testing.T) {
	var out strings.Builder
	_, err := Load("headparse", []string{"127.0.0.1"}, &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), "usage: headparse [flags] ip_address port_number")

	_, err = Load("headparse", []string{"127.0.0.1", "http"}, io.Discard)
	require.Error(t, err)

	_, err = Load("headparse", []string{"localhost", "80"}, io.Discard)
	require.Error(t, err)

	_, err = Load("headparse", []string{"127.0.0.1", "70000"}, io.Discard)
	require.Error(t, err)

	_, err = Load("headparse", []string{"-buffer", "0", "127.0.0.1", "80"}, io.Discard)
	require.Error(t, err)

	_, err = Load("headparse", []string{"-io", "epoll", "127.0.0.1", "80"}, io.Discard)
	require.Error(t, err)

	_, err = Load("headparse", []string{"-drain-timeout", "-1s", "127.0.0.1", "80"}, io.Discard)
	require.Error(t, err)

	_, err = Load("headparse", []string{"-nope", "127.0.0.1", "80"}, io.Discard)
	require.Error(t, err)
}
