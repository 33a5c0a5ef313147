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

	"netshield/internal/config"
	"netshield/internal/logger"
	"netshield/internal/statusclient"
	"netshield/internal/widget"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to configuration file (YAML)")
		consoleURL = flag.String("console", "", "console base URL (overrides widget.console_url)")
		inline     = flag.Bool("inline", false, "render inline instead of using the alternate screen")
	)
	flag.Parse()

	if err := run(*configPath, *consoleURL, *inline); err != nil {
		fmt.Fprintf(os.Stderr, "netshield-widget: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, consoleURL string, inline bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if consoleURL != "" {
		cfg.Widget.ConsoleURL = consoleURL
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	logCfg := cfg.Logging
	logCfg.Output = "discard"
	if cfg.Widget.LogFile != "" {
		logCfg.Output = cfg.Widget.LogFile
	}
	closer, err := logger.Init(logCfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closer.Close()

	log := logger.WithComponent("widget")

	client := statusclient.New(cfg.Widget.ConsoleURL,
		statusclient.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []tea.ProgramOption
	if !inline {
		opts = append(opts, tea.WithAltScreen())
	}

	interval := time.Duration(cfg.Widget.PollIntervalSeconds) * time.Second
	log.Info().Str("console", cfg.Widget.ConsoleURL).Dur("interval", interval).Msg("widget starting")
	if err := widget.Run(ctx, client, interval, log, opts...); err != nil {
		return err
	}
	log.Info().Msg("widget stopped")
	return nil
}
