package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCORSConfig(t *testing.T) {
	assert.True(t, CORSConfig(nil).AllowAllOrigins)
	assert.True(t, CORSConfig([]string{"https://a.com", "*"}).AllowAllOrigins)

	c := CORSConfig([]string{"https://a.com"})
	assert.False(t, c.AllowAllOrigins)
	assert.Equal(t, []string{"https://a.com"}, c.AllowOrigins)
	assert.Contains(t, c.ExposeHeaders, "X-Request-ID")
}

func TestRunShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	srv := BuildServer(addr, http.NotFoundHandler(), time.Second, time.Second, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, srv, zap.NewNop(), time.Second) }()

	require.Eventually(t, func() bool {
		res, err := http.Get("http://" + addr + "/")
		if err != nil {
			return false
		}
		_ = res.Body.Close()
		return res.StatusCode == http.StatusNotFound
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunReportsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := BuildServer(ln.Addr().String(), http.NotFoundHandler(), time.Second, time.Second, time.Second)
	assert.Error(t, Run(context.Background(), srv, zap.NewNop(), time.Second))
}
