package service

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"blogcms/app/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerGracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	srv := newServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		// Simulate work.
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, ln) }()

	respCh := make(chan int, 1)
	go func() {
		resp, err := http.Get(fmt.Sprintf("http://%s/", ln.Addr()))
		if err != nil {
			respCh <- 0
			return
		}
		resp.Body.Close()
		respCh <- resp.StatusCode
	}()

	<-started
	cancel()

	assert.Equal(t, http.StatusOK, <-respCh, "in-flight request completes")
	require.NoError(t, <-done)
}

func TestRunAppServer(t *testing.T) {
	cfg := setupTestConfig(t, config.DriverSQLite)

	// Reserve a port, then hand it to the server.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	cfg.Addr = ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunAppServer(ctx, cfg) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + cfg.Addr + "/about")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "About Me")

	cancel()
	require.NoError(t, <-done)
}

func TestRunAppServerBadAddress(t *testing.T) {
	cfg := setupTestConfig(t, config.DriverSQLite)
	cfg.Addr = "not-an-address"

	err := RunAppServer(context.Background(), cfg)
	assert.ErrorContains(t, err, "failed to listen")
}
