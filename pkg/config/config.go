// Package config holds the explicit settings every pipeline stage receives.
//
// Values come from built-in defaults, an optional YAML file and NBAPREP_* environment
// variables, in increasing order of precedence:
//
//	source:
//	  url: https://www.dropbox.com/s/wmgqf23ugn9sr3b/nba2k-full.csv?dl=1
//	  dir: ../Data
//	  file: nba2k-full.csv
//	target: salary
//	high_cardinality: 50
//	high_correlation: 0.5
//
// NBAPREP_SOURCE_DIR=/tmp/nba overrides source.dir.
package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/errors"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/logger"
)

const (
	DefaultURL             = "https://www.dropbox.com/s/wmgqf23ugn9sr3b/nba2k-full.csv?dl=1"
	DefaultDir             = "../Data"
	DefaultFile            = "nba2k-full.csv"
	DefaultTarget          = "salary"
	DefaultHighCardinality = 50
	DefaultHighCorrelation = 0.5
)

// Config is the full pipeline configuration
type Config struct {
	Source          SourceConfig `mapstructure:"source"`
	Target          string       `mapstructure:"target"`
	HighCardinality int          `mapstructure:"high_cardinality"`
	HighCorrelation float64      `mapstructure:"high_correlation"`
	Log             LogConfig    `mapstructure:"log"`
}

// SourceConfig locates the dataset remotely and in the local cache
type SourceConfig struct {
	URL  string `mapstructure:"url"`
	Dir  string `mapstructure:"dir"`
	File string `mapstructure:"file"`
	// Timeout bounds the download; zero waits indefinitely
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig mirrors logger.Config with mapstructure tags
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Encoding    string `mapstructure:"encoding"`
	Development bool   `mapstructure:"development"`
}

// Logger converts the log section into a logger.Config
func (l LogConfig) Logger() logger.Config {
	return logger.Config{Level: l.Level, Encoding: l.Encoding, Development: l.Development}
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			URL:  DefaultURL,
			Dir:  DefaultDir,
			File: DefaultFile,
		},
		Target:          DefaultTarget,
		HighCardinality: DefaultHighCardinality,
		HighCorrelation: DefaultHighCorrelation,
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("source.url", d.Source.URL)
	v.SetDefault("source.dir", d.Source.Dir)
	v.SetDefault("source.file", d.Source.File)
	v.SetDefault("source.timeout", d.Source.Timeout)
	v.SetDefault("target", d.Target)
	v.SetDefault("high_cardinality", d.HighCardinality)
	v.SetDefault("high_correlation", d.HighCorrelation)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.encoding", d.Log.Encoding)
	v.SetDefault("log.development", d.Log.Development)
}

// Load reads configuration. An empty configPath looks for an optional nbaprep.yaml in
// "." and "./configs"; an explicit path must exist.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("nbaprep")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("NBAPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return errors.New(errors.ErrorTypeConfig, "source.url is required")
	}
	if c.Source.Dir == "" || c.Source.File == "" {
		return errors.New(errors.ErrorTypeConfig, "source.dir and source.file are required")
	}
	if c.Source.Timeout < 0 {
		return errors.Newf(errors.ErrorTypeConfig, "invalid source.timeout: %s", c.Source.Timeout)
	}
	if c.Target == "" {
		return errors.New(errors.ErrorTypeConfig, "target is required")
	}
	if c.HighCardinality < 1 {
		return errors.Newf(errors.ErrorTypeConfig, "invalid high_cardinality: %d", c.HighCardinality)
	}
	if c.HighCorrelation <= 0 || c.HighCorrelation >= 1 {
		return errors.Newf(errors.ErrorTypeConfig, "high_correlation must be in (0, 1), got %g", c.HighCorrelation)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return errors.Newf(errors.ErrorTypeConfig, "invalid log level: %s", c.Log.Level)
	}
	if c.Log.Encoding != "json" && c.Log.Encoding != "console" {
		return errors.Newf(errors.ErrorTypeConfig, "invalid log encoding: %s, must be 'json' or 'console'", c.Log.Encoding)
	}

	return nil
}

// DataPath is the cached dataset location
func (c *Config) DataPath() string {
	return filepath.Join(c.Source.Dir, c.Source.File)
}
