package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alscos/sample-app/internal/config"
	"github.com/alscos/sample-app/internal/httpserver"
	"github.com/alscos/sample-app/internal/sysinfo"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.Error("config", "error", err)
		os.Exit(1)
	}

	sys := sysinfo.NewCollector()

	r := httpserver.NewRouter(httpserver.RouterDeps{
		Config: cfg,
		Sys:    sys,
		// Dependency checks (database, downstream APIs) belong here.
		Ready:  nil,
		Logger: logger,
	})

	// Exit immediately on signal; in-flight requests are not drained.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info(signalName(sig) + " signal received: closing HTTP server")
		os.Exit(0)
	}()

	ln, err := httpserver.Listen(cfg)
	if err != nil {
		logger.Error("listen", "addr", cfg.ListenAddr(), "error", err)
		os.Exit(1)
	}

	if err := httpserver.WriteBanner(os.Stdout, cfg, ln.Addr().String(), sys.Hostname()); err != nil {
		logger.Warn("banner", "error", err)
	}

	srv := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		logger.Error("server", "error", err)
		os.Exit(1)
	}
}

func signalName(sig os.Signal) string {
	switch sig {
	case syscall.SIGTERM:
		return "SIGTERM"
	case syscall.SIGINT:
		return "SIGINT"
	}
	return sig.String()
}
