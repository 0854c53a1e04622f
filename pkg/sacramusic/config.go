package sacramusic

import (
	"net/http"
	"time"
)

type Config struct {
	DBPath          string
	RenderCacheSize int
	Logger          Logger
	Storage         Storage
	HTTPClient      *http.Client
}

type Option func(*Config)

func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = path
	}
}

// WithRenderCacheSize bounds the number of transposed blocks kept in memory.
// Zero disables the cache.
func WithRenderCacheSize(size int) Option {
	return func(c *Config) {
		c.RenderCacheSize = size
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func WithStorage(storage Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

// WithHTTPClient sets the client used to fetch pages for song import.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

func defaultConfig() *Config {
	return &Config{
		DBPath:          "sacramusic.sqlite3",
		RenderCacheSize: 256,
		HTTPClient:      &http.Client{Timeout: 15 * time.Second},
	}
}
