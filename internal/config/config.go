// Package config loads settings for the sacramusic binaries.
//
// Precedence (highest to lowest): flags > SACRAMUSIC_* env vars > YAML
// config file > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/himanishpuri/SacraMusic/pkg/logger"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	EnvPrefix         = "SACRAMUSIC_"
	DefaultConfigFile = "sacramusic.yaml"
	DefaultDBPath     = "sacramusic.sqlite3"
	DefaultPort       = 8080
	DefaultCacheSize  = 256

	// MinSessionSecretLen is the shortest cookie signing key the server accepts.
	MinSessionSecretLen = 32
)

// Config holds every setting shared by the server and the CLI.
type Config struct {
	DBPath          string   `koanf:"db_path"`
	Port            int      `koanf:"port"`
	AllowedOrigins  []string `koanf:"allowed_origins"`
	SessionSecret   string   `koanf:"session_secret"`
	RenderCacheSize int      `koanf:"render_cache_size"`
	LogLevel        string   `koanf:"log_level"`
	LogFormat       string   `koanf:"log_format"`

	// FileUsed is the config file that was read, if any.
	FileUsed string `koanf:"-"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"db_path":           DefaultDBPath,
		"port":              DefaultPort,
		"allowed_origins":   []string{"http://localhost:5173"},
		"session_secret":    "",
		"render_cache_size": DefaultCacheSize,
		"log_level":         "info",
		"log_format":        "text",
	}
}

// findConfigFile returns the explicit path, or sacramusic.yaml / .yml in
// the working directory when present.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{DefaultConfigFile, "sacramusic.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load reads configuration from defaults, the config file, the environment
// and flags. Only flags that were explicitly set override other sources;
// kebab-case flag names map to snake_case keys.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// SACRAMUSIC_DB_PATH -> db_path
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if key == "db" {
				key = "db_path"
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = used
	cfg.AllowedOrigins = trimAll(cfg.AllowedOrigins)

	return &cfg, nil
}

// Validate checks the settings every binary needs.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.RenderCacheSize < 0 {
		return fmt.Errorf("render_cache_size must not be negative, got %d", c.RenderCacheSize)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", string(logger.FormatText), string(logger.FormatJSON):
	default:
		return fmt.Errorf("log_format must be %q or %q, got %q", logger.FormatText, logger.FormatJSON, c.LogFormat)
	}
	return nil
}

// ValidateServer additionally checks the settings only the HTTP server uses.
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if len(c.SessionSecret) < MinSessionSecretLen {
		return fmt.Errorf("session_secret must be at least %d bytes\nHint: set %sSESSION_SECRET", MinSessionSecretLen, EnvPrefix)
	}
	return nil
}

// Logger builds the logger described by log_level and log_format.
func (c *Config) Logger() *logger.Logger {
	lc := logger.DefaultConfig()
	lc.Level = logger.ParseLevel(c.LogLevel)
	if strings.EqualFold(c.LogFormat, string(logger.FormatJSON)) {
		lc.Format = logger.FormatJSON
	}
	return logger.New(lc)
}

// trimAll splits comma-separated entries, as given through env vars, and
// drops blanks.
func trimAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, entry := range list {
		for _, s := range strings.Split(entry, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
