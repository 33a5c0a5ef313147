package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"netshield/internal/config"
	"netshield/internal/gateway"
	"netshield/internal/logger"
	"netshield/internal/server"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to configuration file (YAML)")
		addr       = flag.String("addr", "", "address for the web server (overrides listen_addr)")
	)
	flag.Parse()

	if err := run(*configPath, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "netshield-console: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, addr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr != "" {
		cfg.ListenAddr = addr
	}

	closer, err := logger.Init(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closer.Close()

	log := logger.WithComponent("console")

	gw := gateway.New(cfg.BackendURL, time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
	srv := server.New(cfg.ListenAddr, gw, log, server.Options{
		StreamInterval: time.Duration(cfg.StreamIntervalSeconds) * time.Second,
		AdminAPIKey:    cfg.AdminAPIKey,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("addr", cfg.ListenAddr).
			Str("backend", gw.BaseURL()).
			Bool("admin_key", cfg.AdminAPIKey != "").
			Msg("NetShield console listening")
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
			return err
		}
		log.Info().Msg("server stopped")
		return nil
	})

	return g.Wait()
}
