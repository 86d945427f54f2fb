// Package config loads citescore settings. Precedence, lowest first:
// built-in defaults, the YAML file, environment variables, CLI flags (applied
// by the caller).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gaurav-prasanna/citescore/core/fetch"
	yaml "gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "CITESCORE_CONFIG"

// Formats lists the accepted output formats.
var Formats = []string{"markdown", "json", "pdf"}

// Config is the single-file configuration schema.
type Config struct {
	Fetch struct {
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"userAgent"`
	} `yaml:"fetch"`

	Output struct {
		Dir             string `yaml:"dir"`
		Format          string `yaml:"format"`
		IncludeText     bool   `yaml:"includeText"`
		MarkdownExtract bool   `yaml:"markdownExtract"`
	} `yaml:"output"`

	Server struct {
		Addr         string        `yaml:"addr"`
		ReadTimeout  time.Duration `yaml:"readTimeout"`
		MaxBodyBytes int64         `yaml:"maxBodyBytes"`
	} `yaml:"server"`

	Batch struct {
		Concurrency int     `yaml:"concurrency"`
		RPS         float64 `yaml:"rps"`
	} `yaml:"batch"`

	Citation struct {
		// Markers are attribution phrases counted as citation-like.
		// Empty means the built-in Spanish markers.
		Markers []string `yaml:"markers"`
	} `yaml:"citation"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	c.Fetch.Timeout = fetch.DefaultTimeout
	c.Fetch.UserAgent = fetch.DefaultUserAgent
	c.Output.Format = "markdown"
	c.Server.Addr = ":8080"
	c.Server.ReadTimeout = 30 * time.Second
	c.Server.MaxBodyBytes = 5 << 20
	c.Batch.Concurrency = 4
	c.Batch.RPS = 1
	c.Log.Level = "info"
	return c
}

// Load returns the defaults overlaid with the YAML file at path (or at
// $CITESCORE_CONFIG when path is empty) and then the environment. A missing
// file is only an error when path was given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays CITESCORE_* variables.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("CITESCORE_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CITESCORE_TIMEOUT: %w", err)
		}
		cfg.Fetch.Timeout = d
	}
	if v, ok := lookup("CITESCORE_USER_AGENT"); ok && v != "" {
		cfg.Fetch.UserAgent = v
	}
	if v, ok := lookup("CITESCORE_ADDR"); ok && v != "" {
		cfg.Server.Addr = v
	}
	if v, ok := lookup("CITESCORE_LOG_LEVEL"); ok && v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive (got %s)", c.Fetch.Timeout)
	}
	if c.Batch.Concurrency <= 0 {
		return fmt.Errorf("batch.concurrency must be positive (got %d)", c.Batch.Concurrency)
	}
	if c.Batch.RPS < 0 {
		return fmt.Errorf("batch.rps must not be negative (got %g)", c.Batch.RPS)
	}
	if !isFormat(c.Output.Format) {
		return fmt.Errorf("unknown output format %q (want one of %s)", c.Output.Format, strings.Join(Formats, ", "))
	}
	if c.Output.Format == "pdf" && c.Output.Dir == "" {
		return fmt.Errorf("pdf output requires an output directory")
	}
	return nil
}

// CitationMarkers returns the configured markers, or nil for the defaults.
func (c Config) CitationMarkers() []string {
	if len(c.Citation.Markers) == 0 {
		return nil
	}
	return c.Citation.Markers
}

func isFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}
