package connector

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/jonwraymond/culrconnector/cache"
	"github.com/jonwraymond/culrconnector/resilience"
)

// Environment variables read by LoadConfig.
const (
	EnvServiceURL     = "CULR_SERVICE_URL"
	EnvConnectTimeout = "CULR_CONNECTOR_CONNECT_TIMEOUT_IN_MS"
	EnvRequestTimeout = "CULR_CONNECTOR_REQUEST_TIMEOUT_IN_MS"
	EnvCacheTTL       = "CULR_CONNECTOR_CACHE_TTL"
	EnvRetryMax       = "CULR_CONNECTOR_RETRY_MAX"
	EnvRetryDelay     = "CULR_CONNECTOR_RETRY_DELAY"
)

// Defaults.
const (
	DefaultConnectTimeout = 2000 * time.Millisecond
	DefaultRequestTimeout = 10000 * time.Millisecond
)

// Config holds the construction parameters of a Connector.
type Config struct {
	// Endpoint is the registry base URL. Required.
	Endpoint string

	// ConnectTimeout bounds establishing a connection.
	ConnectTimeout time.Duration

	// RequestTimeout bounds a single attempt, response body included.
	RequestTimeout time.Duration

	// CacheTTL is how long found lookups are served from memory.
	// Zero disables caching.
	CacheTTL time.Duration

	// Retry is the retry policy for remote calls. A nil RetryIf retries
	// transient failures only.
	Retry resilience.RetryConfig
}

// DefaultConfig returns the default configuration for endpoint.
func DefaultConfig(endpoint string) Config {
	return Config{
		Endpoint:       endpoint,
		ConnectTimeout: DefaultConnectTimeout,
		RequestTimeout: DefaultRequestTimeout,
		CacheTTL:       cache.DefaultTTL,
		Retry:          resilience.DefaultRetryConfig(),
	}
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return ErrMissingEndpoint
	}
	if c.ConnectTimeout < 0 {
		return fmt.Errorf("%w: connect timeout %s", ErrNegativeDuration, c.ConnectTimeout)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%w: request timeout %s", ErrNegativeDuration, c.RequestTimeout)
	}
	if err := (cache.Policy{TTL: c.CacheTTL}).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrNegativeDuration, err)
	}
	if c.Retry.Delay < 0 {
		return fmt.Errorf("%w: retry delay %s", ErrNegativeDuration, c.Retry.Delay)
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("%w, got: %d", ErrNegativeRetries, c.Retry.MaxRetries)
	}
	return nil
}

// LoadConfig reads the configuration from the environment and, when
// path is not empty, from the config file at path. Environment variables
// take precedence over file values. File keys are the environment
// variable names in any case, e.g. culr_service_url.
func LoadConfig(path string) (Config, error) {
	v := viper.New()

	def := resilience.DefaultRetryConfig()
	v.SetDefault(EnvConnectTimeout, DefaultConnectTimeout.Milliseconds())
	v.SetDefault(EnvRequestTimeout, DefaultRequestTimeout.Milliseconds())
	v.SetDefault(EnvCacheTTL, cache.DefaultTTL.String())
	v.SetDefault(EnvRetryMax, def.MaxRetries)
	v.SetDefault(EnvRetryDelay, def.Delay.String())

	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("connector: reading config file %s: %w", path, err)
		}
	}

	connectMS, err := parseKey(v, EnvConnectTimeout, cast.ToInt64E)
	if err != nil {
		return Config{}, err
	}
	requestMS, err := parseKey(v, EnvRequestTimeout, cast.ToInt64E)
	if err != nil {
		return Config{}, err
	}
	ttl, err := parseKey(v, EnvCacheTTL, cast.ToDurationE)
	if err != nil {
		return Config{}, err
	}
	retryMax, err := parseKey(v, EnvRetryMax, cast.ToIntE)
	if err != nil {
		return Config{}, err
	}
	retryDelay, err := parseKey(v, EnvRetryDelay, cast.ToDurationE)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Endpoint:       v.GetString(EnvServiceURL),
		ConnectTimeout: time.Duration(connectMS) * time.Millisecond,
		RequestTimeout: time.Duration(requestMS) * time.Millisecond,
		CacheTTL:       ttl,
		Retry: resilience.RetryConfig{
			MaxRetries: retryMax,
			Delay:      retryDelay,
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parseKey reads key from v and converts it with conv. Unlike the viper
// typed getters it reports values that do not convert instead of
// returning the zero value.
func parseKey[T any](v *viper.Viper, key string, conv func(any) (T, error)) (T, error) {
	raw := v.Get(key)
	out, err := conv(raw)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s=%q: %w", ErrInvalidValue, key, fmt.Sprint(raw), err)
	}
	return out, nil
}
