// Package config holds the settings shared by all zzk commands.
//
// Values are resolved in this order, later sources winning: built-in
// defaults, an optional TOML file, environment variables, and finally
// command-line flags (applied by the cli package).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/zzk-cli/zzk/pkg/batch"
	"github.com/zzk-cli/zzk/pkg/defaults"
	zzkerrors "github.com/zzk-cli/zzk/pkg/errors"
	"github.com/zzk-cli/zzk/pkg/serializer"
)

// Config is the resolved configuration of one invocation.
type Config struct {
	ZooHosts      string  `toml:"zoo_hosts"`
	TimeoutMillis int64   `toml:"timeout_ms"`
	Format        string  `toml:"format"`
	OnError       string  `toml:"on_error"`
	Concurrency   int     `toml:"concurrency"`
	Rate          float64 `toml:"rate"` // hydration requests per second, 0 = unlimited
	LogLevel      string  `toml:"log_level"`
	LogJSON       bool    `toml:"log_json"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		ZooHosts:      defaults.ZooHosts,
		TimeoutMillis: defaults.ConnectTimeoutMillis,
		Format:        string(serializer.FormatTable),
		OnError:       string(batch.PolicyAbort),
		Concurrency:   defaults.BatchConcurrency,
		Rate:          defaults.HydrationRate,
		LogLevel:      slog.LevelWarn.String(),
	}
}

// Load returns the defaults overlaid with the TOML file at path, if path is
// not empty, and then with the environment.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, zzkerrors.WrapWithContext(zzkerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("failed to read config file %s", path), err, map[string]any{"path": path})
		}
		if err := decode(data, cfg); err != nil {
			return nil, zzkerrors.WrapWithContext(zzkerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("failed to parse config file %s", path), err, map[string]any{"path": path})
		}
		slog.Debug("loaded config file", "path", path)
	}

	cfg.applyEnv()
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return errors.New(strings.TrimSpace(strict.String()))
		}
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(defaults.EnvZooHosts); v != "" {
		c.ZooHosts = v
	}
	if v := os.Getenv(defaults.EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return zzkerrors.New(zzkerrors.ErrCodeInvalidRequest, fmt.Sprintf(format, args...))
	}

	if len(c.Hosts()) == 0 {
		return invalid("no zookeeper hosts given")
	}
	if c.TimeoutMillis <= 0 {
		return invalid("timeout must be positive, got %d", c.TimeoutMillis)
	}
	if serializer.Format(c.Format).IsUnknown() {
		return invalid("unknown output format %q, supported: %s",
			c.Format, strings.Join(serializer.SupportedFormats(), ", "))
	}
	if batch.Policy(c.OnError).IsUnknown() {
		return invalid("unknown error policy %q, supported: %s",
			c.OnError, strings.Join(batch.SupportedPolicies(), ", "))
	}
	if c.Concurrency < 1 || c.Concurrency > defaults.MaxBatchConcurrency {
		return invalid("concurrency must be between 1 and %d, got %d", defaults.MaxBatchConcurrency, c.Concurrency)
	}
	if c.Rate < 0 {
		return invalid("rate must not be negative, got %g", c.Rate)
	}
	return nil
}

// Hosts splits ZooHosts on commas, trimming entries and dropping empty ones.
func (c *Config) Hosts() []string {
	return SplitHosts(c.ZooHosts)
}

// SplitHosts splits a comma separated host list.
func SplitHosts(s string) []string {
	var hosts []string
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// Timeout returns the connect timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMillis) * time.Millisecond
}

// WriteTOML writes c as a TOML document.
func (c *Config) WriteTOML(w io.Writer) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
