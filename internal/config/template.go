package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rshade/esmatch/internal/cache"
)

// ErrConfigExists is returned by WriteTemplate when the file exists and
// overwrite was not requested.
var ErrConfigExists = errors.New("config file already exists")

type fileConfig struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	Cache struct {
		Dir      string `yaml:"dir"`
		Cooldown string `yaml:"cooldown"`
	} `yaml:"cache"`
	Feeds   []string      `yaml:"feeds"`
	Logging LoggingConfig `yaml:"logging"`
}

const templateHeader = `# esmatch configuration.
# The API token is never read from this file: set API_TOKEN in the
# environment or in a .env file in the working directory.
`

// RenderTemplate returns the YAML document for cfg.
func RenderTemplate(cfg Config) ([]byte, error) {
	var fc fileConfig
	fc.API.BaseURL = cfg.BaseURL
	fc.API.Timeout = cfg.Timeout.String()
	fc.Cache.Dir = cfg.CacheDir
	fc.Cache.Cooldown = cfg.Cooldown.String()
	fc.Feeds = cfg.Feeds
	fc.Logging = cfg.Logging

	var buf bytes.Buffer
	buf.WriteString(templateHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fc); err != nil {
		return nil, fmt.Errorf("encoding config template: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config template: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteTemplate writes the YAML template for cfg to path, creating parent
// directories. It refuses to replace an existing file unless overwrite is set.
func WriteTemplate(path string, cfg Config, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	data, err := RenderTemplate(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Defaults returns the configuration used when nothing overrides it.
// APIToken is left empty.
func Defaults() Config {
	appDir := AppDir()
	return Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  DefaultTimeout,
		CacheDir: filepath.Join(appDir, snapshotsDir),
		Cooldown: cache.DefaultCooldown,
		Feeds:    DefaultFeeds(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(appDir, logFileName),
		},
	}
}
