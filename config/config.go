// Package config loads coursepipe settings. Values are layered as
// defaults → config file → COURSEPIPE_* environment → command-line flags.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Fetch  FetchConfig  `mapstructure:"fetch"`
	Crawl  CrawlConfig  `mapstructure:"crawl"`
	Output OutputConfig `mapstructure:"output"`
}

// LogConfig selects the zap encoder and level.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// FetchConfig configures the HTTP fetcher.
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// CrawlConfig configures catalog discovery and batch parsing.
type CrawlConfig struct {
	Workers  int    `mapstructure:"workers"`
	MaxPages int    `mapstructure:"max_pages"`
	Pattern  string `mapstructure:"pattern"` // regexp matched against course page URLs
}

// OutputConfig configures where rendered files go.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"timeout":    "fetch.timeout",
	"user-agent": "fetch.user_agent",
	"workers":    "crawl.workers",
	"max_pages":  "crawl.max_pages",
	"pattern":    "crawl.pattern",
	"output_dir": "output.dir",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("fetch.user_agent", "")
	v.SetDefault("crawl.workers", 4)
	v.SetDefault("crawl.max_pages", 500)
	v.SetDefault("crawl.pattern", `/course/`)
	v.SetDefault("output.dir", "")
}

// Load reads the configuration. path may be empty; flags may be nil.
// Only flags the user actually set override other sources.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("COURSEPIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later at run time.
func (c *Config) Validate() error {
	if c.Crawl.Workers <= 0 {
		return errors.New("crawl.workers must be positive")
	}
	if c.Crawl.MaxPages <= 0 {
		return errors.New("crawl.max_pages must be positive")
	}
	if _, err := regexp.Compile(c.Crawl.Pattern); err != nil {
		return fmt.Errorf("crawl.pattern: %w", err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}
