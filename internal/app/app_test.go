package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"page-relay/internal/adapter/logging"
)

type countingChecker struct {
	runs atomic.Int32
}

func (c *countingChecker) Run(context.Context) error {
	c.runs.Add(1)
	return nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
}

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return ln
}

func TestServe_ServesUntilCancelled(t *testing.T) {
	t.Parallel()

	checker := &countingChecker{}
	a := New(okHandler(), checker, logging.NewNop(), Options{MaxConnections: 4, ShutdownTimeout: time.Second})
	ln := listen(t)
	url := "http://" + ln.Addr().String() + "/livez"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "ok"
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	require.Zero(t, checker.runs.Load())
}

func TestServe_RunsTokenCheckAtStartup(t *testing.T) {
	t.Parallel()

	checker := &countingChecker{}
	a := New(okHandler(), checker, logging.NewNop(), Options{TokenCheckSchedule: "@every 1h"})

	ln := listen(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, ln) }()

	require.Eventually(t, func() bool { return checker.runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestServe_InvalidSchedule(t *testing.T) {
	t.Parallel()

	checker := &countingChecker{}
	a := New(okHandler(), checker, logging.NewNop(), Options{TokenCheckSchedule: "not a schedule"})

	err := a.Serve(context.Background(), listen(t))
	require.ErrorContains(t, err, "schedule token check")
	require.Zero(t, checker.runs.Load())
}
