package config

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "defaults",
			cfg:  Config{APIURL: DefaultAPIURL, SearchLimit: DefaultSearchLimit},
		},
		{
			name:    "bad scheme",
			cfg:     Config{APIURL: "ftp://example.com", SearchLimit: 12},
			wantErr: true,
		},
		{
			name:    "no host",
			cfg:     Config{APIURL: "http://", SearchLimit: 12},
			wantErr: true,
		},
		{
			name:    "limit too large",
			cfg:     Config{APIURL: DefaultAPIURL, SearchLimit: 51},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			cfg:     Config{APIURL: DefaultAPIURL, SearchLimit: 1, Timeout: -time.Second},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://ascii.example.com")
	t.Setenv(EnvToken, "secret")

	var cfg Config
	cfg.ApplyEnv()
	if cfg.APIURL != "https://ascii.example.com" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Token != "secret" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.SearchLimit != DefaultSearchLimit {
		t.Errorf("SearchLimit = %d, want %d", cfg.SearchLimit, DefaultSearchLimit)
	}

	// Flags win over the environment.
	cfg = Config{APIURL: "http://localhost:9000"}
	cfg.ApplyEnv()
	if cfg.APIURL != "http://localhost:9000" {
		t.Errorf("APIURL = %q, flag value should be kept", cfg.APIURL)
	}
}

func TestEndpoint(t *testing.T) {
	cfg := Config{APIURL: "http://127.0.0.1:8000/"}
	got := cfg.Endpoint("/api/convert-from-url")
	want := "http://127.0.0.1:8000/api/convert-from-url"
	if got != want {
		t.Errorf("Endpoint() = %q, want %q", got, want)
	}
	if h := cfg.Host(); h != "127.0.0.1" {
		t.Errorf("Host() = %q", h)
	}
}
