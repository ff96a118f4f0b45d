// Command server is the dashboard edge: it guards navigations by session cookie
// and serves the dashboard shell.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/charlesng35/assetdesk/internal/app"
	"github.com/charlesng35/assetdesk/pkg/logger"
	"github.com/charlesng35/assetdesk/web"
)

const readHeaderTimeout = 10 * time.Second

type options struct {
	configPath string
	addr       string
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:])
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
	default:
		fmt.Fprintf(os.Stderr, "assetdesk-server: %v\n", err)
		os.Exit(1)
	}
}

func parseOptions(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("assetdesk-server", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Configuration directory or file")
	fs.StringVar(&opts.addr, "addr", "", "Listen address, overrides server.port")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level, overrides server.log_level")
	return opts, fs.Parse(args)
}

func run(ctx context.Context, args []string) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}

	cfg, err := app.LoadConfigFrom(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Server.LogLevel = opts.logLevel
	}
	derived, err := app.ApplyRuntimeDefaults(cfg)
	if err != nil {
		return err
	}
	if err := app.ConfigureLogging(cfg.Server.LogLevel); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer logger.Sync()

	log := logger.WithModule("edge")
	for key := range derived {
		log.Debug("derived runtime setting", zap.String("key", key))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	assets, err := web.FS()
	if err != nil {
		return fmt.Errorf("load dashboard assets: %w", err)
	}
	if os.Getenv("GIN_DEBUG") != "true" {
		setReleaseMode()
	}
	router, err := newRouter(cfg, assets)
	if err != nil {
		return fmt.Errorf("build edge router: %w", err)
	}

	addr := opts.addr
	if addr == "" {
		addr = net.JoinHostPort("", strconv.Itoa(cfg.Server.Port))
	}
	srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: readHeaderTimeout}
	log.Info("edge listening",
		zap.String("addr", addr),
		zap.String("auth_url", cfg.Services.AuthURL),
		zap.String("equipment_url", cfg.Services.EquipmentURL),
	)
	return serve(ctx, srv, cfg.Server.ShutdownTimeout, log)
}

// serve runs srv until ctx ends, then drains in-flight requests for at most grace.
func serve(ctx context.Context, srv *http.Server, grace time.Duration, log *zap.Logger) error {
	failed := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
		close(failed)
	}()

	select {
	case err, ok := <-failed:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down", zap.Duration("grace", grace))
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	if err, ok := <-failed; ok {
		return fmt.Errorf("listen: %w", err)
	}
	log.Info("edge stopped")
	return nil
}
