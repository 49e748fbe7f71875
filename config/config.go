// Package config loads the .regionnames.yaml project file.
//
// The file lives in the project root and is optional. Every field can be
// overridden from the environment with the REGIONNAMES_ prefix:
//
//	data_dir: cldr/regions    # REGIONNAMES_DATA_DIR (empty = embedded tables)
//	default_locale: en        # REGIONNAMES_DEFAULT_LOCALE
//	ui_lang: ru               # REGIONNAMES_UI_LANG (CLI messages)
//	log_level: info           # REGIONNAMES_LOG_LEVEL
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/minios-linux/regionnames/localeid"
)

// FileName is the default config file name.
const FileName = ".regionnames.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REGIONNAMES_"

// Defaults applied when neither the file nor the environment sets a value.
const (
	DefaultLocale   = "en"
	DefaultLogLevel = "info"
)

// Config is the .regionnames.yaml structure.
type Config struct {
	// DataDir holds per-locale resource files. Relative paths are resolved
	// against the project root. Empty selects the embedded tables.
	DataDir string `yaml:"data_dir,omitempty" env:"DATA_DIR,overwrite"`
	// DefaultLocale is used when a command is given no locale.
	DefaultLocale string `yaml:"default_locale,omitempty" env:"DEFAULT_LOCALE,overwrite"`
	// UILang selects the language of CLI messages. Empty means detect from
	// LANGUAGE / LC_ALL / LC_MESSAGES / LANG.
	UILang string `yaml:"ui_lang,omitempty" env:"UI_LANG,overwrite"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level,omitempty" env:"LOG_LEVEL,overwrite"`
}

// Load reads .regionnames.yaml from rootDir, applies environment overrides
// and defaults, and validates the result. A missing file is not an error.
func Load(rootDir string) (*Config, error) {
	return LoadWith(context.Background(), rootDir, envconfig.OsLookuper())
}

// LoadWith is Load with an explicit environment source.
func LoadWith(ctx context.Context, rootDir string, env envconfig.Lookuper) (*Config, error) {
	cfg := &Config{
		DefaultLocale: DefaultLocale,
		LogLevel:      DefaultLogLevel,
	}

	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, env),
	}); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}

	if cfg.DataDir != "" && !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(rootDir, cfg.DataDir)
	}

	if !localeid.Valid(cfg.DefaultLocale) {
		return nil, fmt.Errorf("%s: default_locale %q is not a locale identifier", path, cfg.DefaultLocale)
	}
	cfg.DefaultLocale = localeid.Canonicalize(cfg.DefaultLocale)

	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("%s: log_level: %w", path, err)
	}
	return cfg, nil
}

// Level returns the configured log level. Load has already validated it.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Save writes the configuration to rootDir/.regionnames.yaml.
func (c *Config) Save(rootDir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(rootDir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
