package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	DefaultAPIURL      = "http://127.0.0.1:8000"
	DefaultSearchLimit = 12

	EnvAPIURL = "GIF_ASCII_API_URL"
	EnvToken  = "GIF_ASCII_TOKEN"
)

type Config struct {
	APIURL      string
	Token       string
	SearchLimit int
	Timeout     time.Duration

	CacheDir    string
	CacheSizeMB int
	CacheTTL    time.Duration

	// SearchCacheTTL enables HTTP caching of search listings when > 0.
	SearchCacheTTL time.Duration

	LogFile string
	Debug   bool
}

// ApplyEnv fills unset fields from the environment.
func (c *Config) ApplyEnv() {
	if c.APIURL == "" {
		c.APIURL = os.Getenv(EnvAPIURL)
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Token == "" {
		c.Token = os.Getenv(EnvToken)
	}
	if c.SearchLimit == 0 {
		c.SearchLimit = DefaultSearchLimit
	}
}

func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API URL must be http or https (got %q)", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("API URL %q has no host", c.APIURL)
	}
	if c.SearchLimit < 1 || c.SearchLimit > 50 {
		return fmt.Errorf("search limit must be between 1 and 50")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// Host returns the backend host name, used for display and for scoping the
// auth header.
func (c Config) Host() string {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return c.APIURL
	}
	return u.Hostname()
}

// Endpoint joins an API path onto the base URL.
func (c Config) Endpoint(path string) string {
	return strings.TrimRight(c.APIURL, "/") + "/" + strings.TrimLeft(path, "/")
}
