// Package config loads the immutable esmatch configuration from flags,
// environment variables, an optional YAML config file and an optional .env
// file in the working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rshade/esmatch/internal/cache"
)

// Environment variable names.
const (
	EnvAPIToken  = "API_TOKEN"
	EnvBaseURL   = "ESMATCH_BASE_URL"
	EnvCacheDir  = "ESMATCH_CACHE_DIR"
	EnvCooldown  = "ESMATCH_COOLDOWN"
	EnvTimeout   = "ESMATCH_TIMEOUT"
	EnvFeeds     = "ESMATCH_FEEDS"
	EnvLogLevel  = "ESMATCH_LOG_LEVEL"
	EnvLogFormat = "ESMATCH_LOG_FORMAT"
	EnvLogFile   = "ESMATCH_LOG_FILE"
)

// Viper keys. They double as the YAML paths of the config file.
const (
	keyBaseURL   = "api.base_url"
	keyTimeout   = "api.timeout"
	keyCacheDir  = "cache.dir"
	keyCooldown  = "cache.cooldown"
	keyFeeds     = "feeds"
	keyLogLevel  = "logging.level"
	keyLogFormat = "logging.format"
	keyLogFile   = "logging.file"
)

// Flag names registered by RegisterFlags.
const (
	FlagConfig   = "config"
	FlagBaseURL  = "base-url"
	FlagCacheDir = "cache-dir"
	FlagCooldown = "cooldown"
	FlagTimeout  = "timeout"
)

// Defaults.
const (
	DefaultBaseURL = "https://api.pandascore.co"
	DefaultTimeout = 15 * time.Second

	// minTimeout is the smallest request timeout accepted.
	minTimeout = time.Millisecond

	appDirName     = ".esmatch"
	configFileName = "config.yaml"
	dotEnvFileName = ".env"
	logFileName    = "esmatch.log"
	snapshotsDir   = "snapshots"
)

// DefaultFeeds are the resource keys offered by the session, in menu order.
func DefaultFeeds() []string {
	return []string{"/matches/upcoming", "/matches/running", "/matches/past"}
}

// Config is built once at startup and passed by value to every component.
type Config struct {
	APIToken string
	BaseURL  string
	Timeout  time.Duration
	CacheDir string
	Cooldown time.Duration
	Feeds    []string
	Logging  LoggingConfig

	// File is the config file that was read, or "" when none was used.
	File string
}

// DefaultFeed is the feed opened when the session starts.
func (c Config) DefaultFeed() string {
	if len(c.Feeds) == 0 {
		return DefaultFeeds()[0]
	}
	return c.Feeds[0]
}

// AppDir returns ~/.esmatch, falling back to ./.esmatch when no home is known.
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return appDirName
	}
	return filepath.Join(home, appDirName)
}

// DefaultConfigPath returns ~/.esmatch/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(AppDir(), configFileName)
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "config file (default ~/.esmatch/config.yaml)")
	fs.String(FlagBaseURL, "", "API base URL")
	fs.String(FlagCacheDir, "", "snapshot directory")
	fs.String(FlagCooldown, "", "reuse snapshots younger than this (e.g. 600, 10m; 0 always refetches)")
	fs.String(FlagTimeout, "", "HTTP request timeout (e.g. 30, 15s)")
}

// Load merges flags, env, config file, .env (from workDir) and defaults into a
// Config. A missing API token is reported as a *StartupError wrapping
// ErrMissingToken.
func Load(flags *pflag.FlagSet, workDir string) (Config, error) {
	v := viper.New()
	appDir := AppDir()

	v.SetDefault(keyBaseURL, DefaultBaseURL)
	v.SetDefault(keyTimeout, DefaultTimeout.String())
	v.SetDefault(keyCacheDir, filepath.Join(appDir, snapshotsDir))
	v.SetDefault(keyCooldown, cache.DefaultCooldown.String())
	v.SetDefault(keyFeeds, DefaultFeeds())
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "json")
	v.SetDefault(keyLogFile, filepath.Join(appDir, logFileName))

	envBindings := map[string]string{
		keyBaseURL:   EnvBaseURL,
		keyTimeout:   EnvTimeout,
		keyCacheDir:  EnvCacheDir,
		keyCooldown:  EnvCooldown,
		keyFeeds:     EnvFeeds,
		keyLogLevel:  EnvLogLevel,
		keyLogFormat: EnvLogFormat,
		keyLogFile:   EnvLogFile,
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	cfgFile := ""
	if flags != nil {
		flagBindings := map[string]string{
			keyBaseURL:  FlagBaseURL,
			keyTimeout:  FlagTimeout,
			keyCacheDir: FlagCacheDir,
			keyCooldown: FlagCooldown,
		}
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
		cfgFile, _ = flags.GetString(FlagConfig)
	}

	usedFile, err := readConfigFile(v, cfgFile)
	if err != nil {
		return Config{}, err
	}

	token, err := resolveToken(workDir)
	if err != nil {
		return Config{}, err
	}

	cooldown, err := cache.ParseCooldown(v.GetString(keyCooldown))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", keyCooldown, err)
	}

	timeout, err := ParseTimeout(v.GetString(keyTimeout))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", keyTimeout, err)
	}

	feeds := normalizeFeeds(v.GetStringSlice(keyFeeds))
	if len(feeds) == 0 {
		return Config{}, errors.New("at least one feed is required")
	}

	return Config{
		APIToken: token,
		BaseURL:  strings.TrimSuffix(v.GetString(keyBaseURL), "/"),
		Timeout:  timeout,
		CacheDir: v.GetString(keyCacheDir),
		Cooldown: cooldown,
		Feeds:    feeds,
		Logging: LoggingConfig{
			Level:  v.GetString(keyLogLevel),
			Format: v.GetString(keyLogFormat),
			File:   v.GetString(keyLogFile),
		},
		File: usedFile,
	}, nil
}

// readConfigFile reads an explicit config file (which must exist) or the
// default one (which may be missing).
func readConfigFile(v *viper.Viper, explicit string) (string, error) {
	path := explicit
	if path == "" {
		path = DefaultConfigPath()
		if _, err := os.Stat(path); err != nil {
			return "", nil //nolint:nilerr // the default config file is optional
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("read config %s: %w", path, err)
	}
	return path, nil
}

// resolveToken reads API_TOKEN from the environment, then from workDir/.env.
func resolveToken(workDir string) (string, error) {
	if token := strings.TrimSpace(os.Getenv(EnvAPIToken)); token != "" {
		return token, nil
	}

	if workDir != "" {
		path := filepath.Join(workDir, dotEnvFileName)
		if _, err := os.Stat(path); err == nil {
			dv := viper.New()
			dv.SetConfigFile(path)
			dv.SetConfigType("env")
			if readErr := dv.ReadInConfig(); readErr != nil {
				return "", fmt.Errorf("read %s: %w", path, readErr)
			}
			if token := strings.TrimSpace(dv.GetString(strings.ToLower(EnvAPIToken))); token != "" {
				return token, nil
			}
		}
	}

	return "", &StartupError{Err: ErrMissingToken}
}

func normalizeFeeds(raw []string) []string {
	var feeds []string
	seen := make(map[string]struct{}, len(raw))
	for _, entry := range raw {
		// env values arrive as a single comma separated string
		for _, f := range strings.Split(entry, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			if !strings.HasPrefix(f, "/") {
				f = "/" + f
			}
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			feeds = append(feeds, f)
		}
	}
	return feeds
}

// ParseTimeout reads integer seconds or a Go duration, like the cooldown. An
// empty string yields DefaultTimeout.
func ParseTimeout(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultTimeout, nil
	}
	d, err := cache.ParseSeconds(s)
	if err != nil {
		return 0, err
	}
	if d < minTimeout {
		return 0, fmt.Errorf("%w, got %s", ErrInvalidTimeout, d)
	}
	return d, nil
}
