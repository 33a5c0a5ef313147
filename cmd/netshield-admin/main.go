package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"netshield/internal/admin"
	"netshield/internal/config"
	"netshield/internal/console"
	"netshield/internal/logger"
	"netshield/internal/statusclient"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to configuration file (YAML)")
		consoleURL = flag.String("console", "", "console base URL (overrides admin.console_url)")
		once       = flag.Bool("once", false, "print one report and exit")
		ssid       = flag.String("ssid", "", "network to load (with -once)")
		domain     = flag.String("domain", "", "domain filter, case-insensitive (with -once)")
		query      = flag.String("q", "", "search text (with -once)")
	)
	flag.Parse()

	var err error
	if *once {
		err = report(*configPath, *consoleURL, *ssid, *domain, *query)
	} else {
		err = interactive(*configPath, *consoleURL)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "netshield-admin: %v\n", err)
		os.Exit(1)
	}
}

func newClient(cfg config.Config) *statusclient.Client {
	return statusclient.New(cfg.Admin.ConsoleURL,
		statusclient.WithAPIKey(cfg.Admin.APIKey),
		statusclient.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second}),
	)
}

func loadConfig(path, consoleURL string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if consoleURL != "" {
		cfg.Admin.ConsoleURL = consoleURL
	}
	return cfg, nil
}

func report(configPath, consoleURL, ssid, domain, query string) error {
	cfg, err := loadConfig(configPath, consoleURL)
	if err != nil {
		return err
	}

	logCfg := cfg.Logging
	logCfg.Output = "stderr"
	closer, err := logger.Init(logCfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := newClient(cfg)
	s := admin.NewState()
	for _, a := range []admin.Action{
		admin.SetFilter{Filter: domain},
		admin.SetQuery{Query: query},
		admin.SetNetwork{NetworkID: ssid},
	} {
		s = admin.Dispatch(ctx, client, s, a)
	}
	if s.Err != nil {
		log := logger.WithComponent("admin")
		log.Warn().Err(s.Err).Str("ssid", s.NetworkID).Msg("device lookup failed")
	}

	fmt.Print(console.Render(s))
	return s.Err
}

func interactive(configPath, consoleURL string) error {
	cfg, err := loadConfig(configPath, consoleURL)
	if err != nil {
		return err
	}

	logCfg := cfg.Logging
	logCfg.Output = "discard"
	if cfg.Admin.LogFile != "" {
		logCfg.Output = cfg.Admin.LogFile
	}
	closer, err := logger.Init(logCfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return console.Run(ctx, newClient(cfg), cfg.Admin.Domains, logger.WithComponent("admin"), tea.WithAltScreen())
}
