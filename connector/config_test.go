package connector

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonwraymond/culrconnector/cache"
	"github.com/jonwraymond/culrconnector/observe"
	"github.com/jonwraymond/culrconnector/resilience"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvServiceURL, EnvConnectTimeout, EnvRequestTimeout, EnvCacheTTL, EnvRetryMax, EnvRetryDelay} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("http://culr")

	if cfg.ConnectTimeout != 2*time.Second {
		t.Errorf("ConnectTimeout = %v, want 2s", cfg.ConnectTimeout)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", cfg.RequestTimeout)
	}
	if cfg.CacheTTL != 8*time.Hour {
		t.Errorf("CacheTTL = %v, want 8h", cfg.CacheTTL)
	}
	if cfg.Retry.MaxRetries != 3 || cfg.Retry.Delay != 3*time.Second {
		t.Errorf("Retry = %+v, want 3 retries 3s apart", cfg.Retry)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"zero ttl", func(c *Config) { c.CacheTTL = 0 }, nil},
		{"no retries", func(c *Config) { c.Retry = resilience.NoRetryConfig() }, nil},
		{"empty endpoint", func(c *Config) { c.Endpoint = "" }, ErrMissingEndpoint},
		{"negative connect timeout", func(c *Config) { c.ConnectTimeout = -time.Second }, ErrNegativeDuration},
		{"negative request timeout", func(c *Config) { c.RequestTimeout = -time.Second }, ErrNegativeDuration},
		{"negative ttl", func(c *Config) { c.CacheTTL = -time.Minute }, cache.ErrNegativeTTL},
		{"negative retry delay", func(c *Config) { c.Retry.Delay = -time.Second }, ErrNegativeDuration},
		{"negative retries", func(c *Config) { c.Retry.MaxRetries = -1 }, ErrNegativeRetries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("http://culr")
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvServiceURL, "http://culr.test/1.6/CulrWebService")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := DefaultConfig("http://culr.test/1.6/CulrWebService")
	if cfg.Endpoint != want.Endpoint ||
		cfg.ConnectTimeout != want.ConnectTimeout ||
		cfg.RequestTimeout != want.RequestTimeout ||
		cfg.CacheTTL != want.CacheTTL ||
		cfg.Retry.MaxRetries != want.Retry.MaxRetries ||
		cfg.Retry.Delay != want.Retry.Delay {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvServiceURL, "http://culr.test")
	t.Setenv(EnvConnectTimeout, "500")
	t.Setenv(EnvRequestTimeout, "1500")
	t.Setenv(EnvCacheTTL, "30m")
	t.Setenv(EnvRetryMax, "1")
	t.Setenv(EnvRetryDelay, "250ms")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.ConnectTimeout != 500*time.Millisecond {
		t.Errorf("ConnectTimeout = %v, want 500ms", cfg.ConnectTimeout)
	}
	if cfg.RequestTimeout != 1500*time.Millisecond {
		t.Errorf("RequestTimeout = %v, want 1.5s", cfg.RequestTimeout)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Errorf("CacheTTL = %v, want 30m", cfg.CacheTTL)
	}
	if cfg.Retry.MaxRetries != 1 {
		t.Errorf("Retry.MaxRetries = %d, want 1", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.Delay != 250*time.Millisecond {
		t.Errorf("Retry.Delay = %v, want 250ms", cfg.Retry.Delay)
	}
}

func TestLoadConfig_ZeroTTLDisablesCache(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvServiceURL, "http://culr.test")
	t.Setenv(EnvCacheTTL, "0")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.CacheTTL != 0 {
		t.Errorf("CacheTTL = %v, want 0", cfg.CacheTTL)
	}

	c, err := New(cfg, WithClient(&fakeClient{}), WithLogger(observe.NopLogger()))
	if err != nil {
		t.Fatal(err)
	}
	if c.CacheEnabled() {
		t.Error("CacheEnabled() = true, want false")
	}
}

func TestLoadConfig_MissingEndpoint(t *testing.T) {
	clearEnv(t)

	if _, err := LoadConfig(""); !errors.Is(err, ErrMissingEndpoint) {
		t.Errorf("LoadConfig() error = %v, want ErrMissingEndpoint", err)
	}
}

func TestLoadConfig_File(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "culr.yaml")
	content := []byte(`culr_service_url: http://culr.file/1.6/CulrWebService
culr_connector_request_timeout_in_ms: 4000
culr_connector_cache_ttl: 1h
culr_connector_retry_max: 0
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvRequestTimeout, "6000")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Endpoint != "http://culr.file/1.6/CulrWebService" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.RequestTimeout != 6*time.Second {
		t.Errorf("RequestTimeout = %v, want env value 6s", cfg.RequestTimeout)
	}
	if cfg.ConnectTimeout != DefaultConnectTimeout {
		t.Errorf("ConnectTimeout = %v, want default", cfg.ConnectTimeout)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", cfg.CacheTTL)
	}
	if cfg.Retry.MaxRetries != 0 {
		t.Errorf("Retry.MaxRetries = %d, want 0", cfg.Retry.MaxRetries)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvServiceURL, "http://culr.test")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfig() error = nil, want error for missing file")
	}
}

func TestLoadConfig_MalformedValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{EnvConnectTimeout, "2s"},
		{EnvRequestTimeout, "ten seconds"},
		{EnvCacheTTL, "8 hours"},
		{EnvRetryMax, "three"},
		{EnvRetryDelay, "3 seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvServiceURL, "http://culr.test")
			t.Setenv(tt.key, tt.value)

			cfg, err := LoadConfig("")
			if !errors.Is(err, ErrInvalidValue) {
				t.Fatalf("LoadConfig() = %+v, %v; want ErrInvalidValue", cfg, err)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error %q should name %s", err.Error(), tt.key)
			}
		})
	}
}

func TestLoadConfig_MalformedFileValue(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "culr.yaml")
	content := []byte("culr_service_url: http://culr.file\nculr_connector_cache_ttl: eight hours\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("LoadConfig() error = %v, want ErrInvalidValue", err)
	}
}
