package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"

	"github.com/baxromumarov/warlords/internal/httpx"
)

const (
	DefaultURL        = "https://mume.org/news/war"
	DefaultOutputPath = "warlords.json"
	DefaultFile       = "warlords.json5"
)

type Config struct {
	URL        string `json:"url"`
	OutputPath string `json:"output"`
	// SchemaPath is empty for the embedded schema.
	SchemaPath string `json:"schema"`
	Timeout    string `json:"timeout"`
	UserAgent  string `json:"user_agent"`
	Transport  string `json:"transport"`
	ListenAddr string `json:"listen"`
	// Refresh is the serve-mode re-run interval; empty or "0" disables it.
	Refresh string `json:"refresh"`
}

func Default() Config {
	return Config{
		URL:        DefaultURL,
		OutputPath: DefaultOutputPath,
		Timeout:    httpx.DefaultTimeout.String(),
		UserAgent:  httpx.DefaultUserAgent,
		Transport:  httpx.TransportColly,
		ListenAddr: ":8080",
	}
}

// Load layers, lowest priority first: defaults, the config file at path,
// its ".local" sibling, then WARLORDS_* environment variables. Missing
// config files are skipped.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		for _, name := range []string{path, LocalPath(path)} {
			fileCfg, err := readFile(name)
			switch {
			case errors.Is(err, os.ErrNotExist):
				slog.Debug("no config file found", "path", name)
			case err != nil:
				return cfg, fmt.Errorf("failed to read config %s: %w", name, err)
			default:
				if err := mergo.Merge(&cfg, fileCfg, mergo.WithOverride); err != nil {
					return cfg, err
				}
				slog.Debug("merged config file", "path", name)
			}
		}
	}

	applyEnv(&cfg)
	err := cfg.Validate()
	return cfg, err
}

// LocalPath returns the override file for path: warlords.json5 becomes
// warlords.local.json5.
func LocalPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

func readFile(name string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(name)
	if err != nil {
		return cfg, err
	}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.URL, "WARLORDS_URL")
	set(&cfg.OutputPath, "WARLORDS_OUTPUT")
	set(&cfg.SchemaPath, "WARLORDS_SCHEMA")
	set(&cfg.Timeout, "WARLORDS_TIMEOUT")
	set(&cfg.UserAgent, "WARLORDS_USER_AGENT")
	set(&cfg.Transport, "WARLORDS_TRANSPORT")
	set(&cfg.Refresh, "WARLORDS_REFRESH")
	if port := os.Getenv("PORT"); port != "" {
		cfg.ListenAddr = ":" + port
	}
}

// Validate checks c and rewrites URL into its canonical form, defaulting
// the scheme to https.
func (c *Config) Validate() error {
	target, err := httpx.NormalizeURL(c.URL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", c.URL, err)
	}
	c.URL = target
	if c.OutputPath == "" {
		return errors.New("output path is required")
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.RefreshInterval(); err != nil {
		return err
	}
	switch c.Transport {
	case httpx.TransportColly, httpx.TransportResty:
	default:
		return fmt.Errorf("unknown transport %q", c.Transport)
	}
	return nil
}

func (c Config) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q: must be positive", c.Timeout)
	}
	return d, nil
}

func (c Config) RefreshInterval() (time.Duration, error) {
	if c.Refresh == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Refresh)
	if err != nil {
		return 0, fmt.Errorf("invalid refresh %q: %w", c.Refresh, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid refresh %q: must not be negative", c.Refresh)
	}
	return d, nil
}
