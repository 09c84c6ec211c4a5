package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/net/netutil"

	"page-relay/internal/domain/ports"
)

const (
	readHeaderTimeout = 5 * time.Second
	tokenCheckTimeout = 2 * time.Minute
	cronStopTimeout   = 5 * time.Second

	defaultShutdownTimeout = 10 * time.Second
)

// TokenChecker runs one health check of the content API credentials.
type TokenChecker interface {
	Run(ctx context.Context) error
}

// Options configures the runtime.
type Options struct {
	Addr               string
	MaxConnections     int
	ShutdownTimeout    time.Duration
	TokenCheckSchedule string
}

// App manages the lifecycle of the webhook server and the optional token check.
type App struct {
	server  *http.Server
	cron    *cron.Cron
	checker TokenChecker
	logger  ports.Logger
	opts    Options
}

// New constructs an App instance.
func New(handler http.Handler, checker TokenChecker, logger ports.Logger, opts Options) *App {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	return &App{
		server: &http.Server{
			Addr:              opts.Addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		cron:    cron.New(),
		checker: checker,
		logger:  logger,
		opts:    opts,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.opts.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled or the server fails,
// then shuts down gracefully.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	if a.opts.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, a.opts.MaxConnections)
	}

	if err := a.startTokenCheck(ctx); err != nil {
		_ = ln.Close()
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	a.logger.Info(ctx, "webhook server listening", "addr", ln.Addr().String(), "max_connections", a.opts.MaxConnections)

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info(context.Background(), "shutdown requested")
	case err := <-serveErr:
		if err != nil {
			runErr = fmt.Errorf("serve http: %w", err)
		}
	}

	a.stopTokenCheck()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.opts.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn(shutdownCtx, "http shutdown incomplete", "error", err)
		if runErr == nil {
			runErr = fmt.Errorf("shutdown http: %w", err)
		}
	}

	a.logger.Info(context.Background(), "webhook server stopped")
	return runErr
}

func (a *App) startTokenCheck(ctx context.Context) error {
	if a.opts.TokenCheckSchedule == "" || a.checker == nil {
		return nil
	}

	_, err := a.cron.AddFunc(a.opts.TokenCheckSchedule, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), tokenCheckTimeout)
		defer cancel()
		if err := a.checker.Run(jobCtx); err != nil {
			a.logger.Error(jobCtx, "scheduled token check failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule token check %q: %w", a.opts.TokenCheckSchedule, err)
	}

	a.logger.Info(ctx, "running first token check immediately")
	checkCtx, cancel := context.WithTimeout(ctx, tokenCheckTimeout)
	defer cancel()
	if err := a.checker.Run(checkCtx); err != nil {
		a.logger.Error(ctx, "initial token check failed", "error", err)
	}

	a.logger.Info(ctx, "starting token check scheduler", "cron", a.opts.TokenCheckSchedule)
	a.cron.Start()
	return nil
}

func (a *App) stopTokenCheck() {
	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(cronStopTimeout):
	}
}
