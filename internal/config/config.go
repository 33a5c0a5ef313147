package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"netshield/internal/logger"
)

const (
	// DefaultBackendURL is used when neither the file nor BACKEND_URL set one.
	DefaultBackendURL = "http://localhost:8082"
	// DefaultConsoleURL is where the widget and admin console reach the proxy.
	DefaultConsoleURL = "http://localhost:3000"

	envBackendURL  = "BACKEND_URL"
	envAdminAPIKey = "NETSHIELD_ADMIN_API_KEY"
)

// Config represents configuration shared by the console, widget and admin binaries.
type Config struct {
	BackendURL            string        `yaml:"backend_url"`
	ListenAddr            string        `yaml:"listen_addr"`
	RequestTimeoutSeconds int           `yaml:"request_timeout_seconds"`
	StreamIntervalSeconds int           `yaml:"stream_interval_seconds"`
	AdminAPIKey           string        `yaml:"admin_api_key"`
	AllowedOrigins        []string      `yaml:"allowed_origins"`
	Logging               logger.Config `yaml:"logging"`
	Widget                Widget        `yaml:"widget"`
	Admin                 Admin         `yaml:"admin"`
}

// Widget configures the tray widget.
type Widget struct {
	ConsoleURL          string `yaml:"console_url"`
	PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
	LogFile             string `yaml:"log_file"`
}

// Admin configures the operator console.
type Admin struct {
	ConsoleURL string   `yaml:"console_url"`
	APIKey     string   `yaml:"api_key"`
	Domains    []string `yaml:"domains"`
	LogFile    string   `yaml:"log_file"`
}

// DefaultConfig returns sensible defaults in case no configuration file is provided.
func DefaultConfig() Config {
	return Config{
		BackendURL:            DefaultBackendURL,
		ListenAddr:            ":3000",
		RequestTimeoutSeconds: 10,
		StreamIntervalSeconds: 10,
		AllowedOrigins:        []string{"http://localhost:3000"},
		Logging: logger.Config{
			Level:  "info",
			Output: "stdout",
		},
		Widget: Widget{
			ConsoleURL:          DefaultConsoleURL,
			PollIntervalSeconds: 5,
		},
		Admin: Admin{
			ConsoleURL: DefaultConsoleURL,
		},
	}
}

// Load reads configuration from a yaml file. Missing files fall back to defaults.
// Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(content, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	applyEnv(&cfg)
	normalize(&cfg)

	if err := validateURL("backend_url", cfg.BackendURL); err != nil {
		return Config{}, err
	}
	if err := validateURL("widget.console_url", cfg.Widget.ConsoleURL); err != nil {
		return Config{}, err
	}
	if err := validateURL("admin.console_url", cfg.Admin.ConsoleURL); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envBackendURL)); v != "" {
		cfg.BackendURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envAdminAPIKey)); v != "" {
		cfg.AdminAPIKey = v
		if cfg.Admin.APIKey == "" {
			cfg.Admin.APIKey = v
		}
	}
}

func normalize(cfg *Config) {
	defaults := DefaultConfig()

	cfg.BackendURL = strings.TrimSuffix(strings.TrimSpace(cfg.BackendURL), "/")
	if cfg.BackendURL == "" {
		cfg.BackendURL = defaults.BackendURL
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaults.ListenAddr
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		cfg.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}
	if cfg.StreamIntervalSeconds <= 0 {
		cfg.StreamIntervalSeconds = defaults.StreamIntervalSeconds
	}
	cfg.Widget.ConsoleURL = strings.TrimSuffix(strings.TrimSpace(cfg.Widget.ConsoleURL), "/")
	if cfg.Widget.ConsoleURL == "" {
		cfg.Widget.ConsoleURL = defaults.Widget.ConsoleURL
	}
	if cfg.Widget.PollIntervalSeconds <= 0 {
		cfg.Widget.PollIntervalSeconds = defaults.Widget.PollIntervalSeconds
	}
	cfg.Admin.ConsoleURL = strings.TrimSuffix(strings.TrimSpace(cfg.Admin.ConsoleURL), "/")
	if cfg.Admin.ConsoleURL == "" {
		cfg.Admin.ConsoleURL = defaults.Admin.ConsoleURL
	}
	for i, d := range cfg.Admin.Domains {
		cfg.Admin.Domains[i] = strings.ToLower(strings.TrimSpace(d))
	}
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) url, got %q", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host", field)
	}
	return nil
}
