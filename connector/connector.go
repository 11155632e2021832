package connector

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/culrconnector/account"
	"github.com/jonwraymond/culrconnector/cache"
	"github.com/jonwraymond/culrconnector/health"
	"github.com/jonwraymond/culrconnector/httpclient"
	"github.com/jonwraymond/culrconnector/observe"
	"github.com/jonwraymond/culrconnector/resilience"
)

// Operation names used in errors, logs, spans and metrics.
const (
	OpLookup = "lookup"
	OpCreate = "create"
)

const serviceName = "culr"

// Connector is a resilient facade over an account.Client. Found lookups
// are cached for the configured TTL and every remote call goes through
// the retry policy.
//
// Contract:
//   - Concurrency: safe for concurrent use. Concurrent misses on the same
//     key may each reach the registry.
//   - Errors: every failure is returned as *Error wrapping its cause.
//     "Not found" and registry rejections are responses, not errors.
type Connector struct {
	endpoint string
	client   account.Client

	// nil when caching is disabled.
	cache cache.Cache[CacheKey, *account.LookupResponse]

	// Both executors share one circuit breaker, if any.
	lookupExec *resilience.Executor
	createExec *resilience.Executor

	mw      *observe.Middleware
	metrics observe.Metrics
	logger  observe.Logger
}

// Option configures a Connector.
type Option func(*options)

type options struct {
	client     account.Client
	logger     observe.Logger
	observer   observe.Observer
	breaker    *resilience.CircuitBreakerConfig
	cacheClock func() time.Time
}

// WithClient replaces the HTTP client built from the config.
func WithClient(c account.Client) Option {
	return func(o *options) {
		o.client = c
	}
}

// WithLogger sets the logger. It takes precedence over the observer's.
func WithLogger(l observe.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithObserver enables tracing and metrics from obs.
func WithObserver(obs observe.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithCircuitBreaker guards remote calls with a circuit breaker. Only
// transient failures count against it unless cfg.IsFailure is set.
func WithCircuitBreaker(cfg resilience.CircuitBreakerConfig) Option {
	return func(o *options) {
		o.breaker = &cfg
	}
}

// WithCacheClock sets the clock used for cache expiry.
func WithCacheClock(now func() time.Time) Option {
	return func(o *options) {
		o.cacheClock = now
	}
}

// New creates a Connector.
func New(cfg Config, opts ...Option) (*Connector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := &Connector{endpoint: cfg.Endpoint, client: o.client}

	switch {
	case o.logger != nil:
		c.logger = o.logger
	case o.observer != nil:
		c.logger = o.observer.Logger()
	default:
		c.logger = observe.NewLogger("info")
	}

	if o.observer != nil {
		metrics, err := observe.NewMetrics(o.observer.Meter())
		if err != nil {
			return nil, fmt.Errorf("connector: creating metrics: %w", err)
		}
		c.metrics = metrics
		c.mw = observe.NewMiddleware(observe.NewTracer(o.observer.Tracer()), metrics, c.logger)
	} else {
		c.metrics = observe.NopMetrics()
		c.mw = observe.NewMiddleware(observe.NopTracer(), c.metrics, c.logger)
	}

	if c.client == nil {
		hc, err := httpclient.New(cfg.Endpoint,
			httpclient.WithConnectTimeout(cfg.ConnectTimeout),
			httpclient.WithRequestTimeout(cfg.RequestTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("connector: creating http client: %w", err)
		}
		c.client = hc
	}

	policy := cache.Policy{TTL: cfg.CacheTTL}
	if policy.Enabled() {
		var cacheOpts []cache.Option
		if o.cacheClock != nil {
			cacheOpts = append(cacheOpts, cache.WithClock(o.cacheClock))
		}
		c.cache = cache.NewMemory[CacheKey, *account.LookupResponse](policy, cacheOpts...)
	}

	var breaker *resilience.CircuitBreaker
	if o.breaker != nil {
		bc := *o.breaker
		if bc.IsFailure == nil {
			bc.IsFailure = account.IsTransient
		}
		userHook := bc.OnStateChange
		bc.OnStateChange = func(from, to resilience.State) {
			c.logger.Warn(context.Background(), "circuit breaker state changed",
				observe.F("from", from.String()),
				observe.F("to", to.String()),
				observe.F("endpoint", c.endpoint),
			)
			if userHook != nil {
				userHook(from, to)
			}
		}
		breaker = resilience.NewCircuitBreaker(bc)
	}

	c.lookupExec = c.newExecutor(cfg.Retry, c.meta(OpLookup, ""), breaker)
	c.createExec = c.newExecutor(cfg.Retry, c.meta(OpCreate, ""), breaker)

	c.logger.Info(context.Background(), "culr connector created",
		observe.F("endpoint", cfg.Endpoint),
		observe.F("connect_timeout_ms", cfg.ConnectTimeout.Milliseconds()),
		observe.F("request_timeout_ms", cfg.RequestTimeout.Milliseconds()),
		observe.F("retry_max", cfg.Retry.MaxRetries),
		observe.F("retry_delay", cfg.Retry.Delay.String()),
		observe.F("cache_ttl", cfg.CacheTTL.String()),
		observe.F("circuit_breaker", breaker != nil),
	)

	return c, nil
}

func (c *Connector) newExecutor(rc resilience.RetryConfig, meta observe.OperationMeta, breaker *resilience.CircuitBreaker) *resilience.Executor {
	if rc.RetryIf == nil {
		rc.RetryIf = account.IsTransient
	}
	userHook := rc.OnRetry
	rc.OnRetry = func(ctx context.Context, attempt int, err error, delay time.Duration) {
		c.metrics.RecordRetry(ctx, meta)
		c.logger.WithOperation(meta).Warn(ctx, "remote call failed, retrying",
			observe.F("attempt", attempt),
			observe.F("delay", delay.String()),
			observe.F("error", err),
		)
		if userHook != nil {
			userHook(ctx, attempt, err, delay)
		}
	}

	opts := []resilience.ExecutorOption{resilience.WithRetry(resilience.NewRetry(rc))}
	if breaker != nil {
		opts = append(opts, resilience.WithCircuitBreaker(breaker))
	}
	return resilience.NewExecutor(opts...)
}

func (c *Connector) meta(op, agencyID string) observe.OperationMeta {
	return observe.OperationMeta{
		Service:  serviceName,
		Name:     op,
		Endpoint: c.endpoint,
		AgencyID: agencyID,
	}
}

// Lookup fetches the account identified by creds. A fresh cached found
// result is returned without contacting the registry; a fetched found
// result is cached. Other results are returned but never cached.
// Every call returns its own copy, so callers may modify the result.
func (c *Connector) Lookup(ctx context.Context, agencyID string, creds account.Credentials, auth account.AuthCredentials) (*account.LookupResponse, error) {
	meta := c.meta(OpLookup, agencyID)

	if c.cache == nil {
		return c.fetch(ctx, meta, creds, auth)
	}

	key := DeriveKey(agencyID, creds, auth)
	if resp, ok := c.cache.Get(ctx, key); ok {
		c.metrics.RecordCacheLookup(ctx, meta, true)
		c.logger.WithOperation(meta).Debug(ctx, "lookup served from cache", observe.F("key", key.Fingerprint()))
		return resp.Clone(), nil
	}
	c.metrics.RecordCacheLookup(ctx, meta, false)

	resp, err := c.fetch(ctx, meta, creds, auth)
	if err != nil {
		return nil, err
	}

	if resp.Status.Code.Found() {
		c.cache.Put(ctx, key, resp.Clone())
		c.logger.WithOperation(meta).Debug(ctx, "lookup cached", observe.F("key", key.Fingerprint()))
	}
	return resp, nil
}

func (c *Connector) fetch(ctx context.Context, meta observe.OperationMeta, creds account.Credentials, auth account.AuthCredentials) (*account.LookupResponse, error) {
	var resp *account.LookupResponse

	err := c.mw.Wrap(func(ctx context.Context, op observe.OperationMeta) error {
		return c.lookupExec.Execute(ctx, func(ctx context.Context) error {
			r, err := c.client.FetchAccount(ctx, op.AgencyID, creds, auth)
			if err != nil {
				return err
			}
			if r == nil {
				return account.Permanent(op.Name, account.ErrEmptyResponse)
			}
			resp = r
			return nil
		})
	})(ctx, meta)
	if err != nil {
		return nil, &Error{Op: meta.Name, Err: err}
	}
	return resp, nil
}

// Create creates the account identified by creds. The cache is neither
// read nor written.
func (c *Connector) Create(ctx context.Context, agencyID string, creds account.Credentials, auth account.AuthCredentials) (*account.CreateResponse, error) {
	return c.CreateWithGlobalID(ctx, agencyID, creds, auth, nil, "")
}

// CreateWithGlobalID creates the account identified by creds and links it
// to globalUID. globalUID may be nil and municipalityNo may be empty.
func (c *Connector) CreateWithGlobalID(ctx context.Context, agencyID string, creds account.Credentials, auth account.AuthCredentials, globalUID *account.GlobalUID, municipalityNo string) (*account.CreateResponse, error) {
	meta := c.meta(OpCreate, agencyID)
	var resp *account.CreateResponse

	err := c.mw.Wrap(func(ctx context.Context, op observe.OperationMeta) error {
		return c.createExec.Execute(ctx, func(ctx context.Context) error {
			r, err := c.client.CreateAccount(ctx, op.AgencyID, creds, auth, globalUID, municipalityNo)
			if err != nil {
				return err
			}
			if r == nil {
				return account.Permanent(op.Name, account.ErrEmptyResponse)
			}
			resp = r
			return nil
		})
	})(ctx, meta)
	if err != nil {
		return nil, &Error{Op: meta.Name, Err: err}
	}
	return resp, nil
}

// Size returns the number of unexpired cached lookups. It is always 0
// when caching is disabled.
func (c *Connector) Size() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Size()
}

// Endpoint returns the registry endpoint.
func (c *Connector) Endpoint() string {
	return c.endpoint
}

// CacheEnabled reports whether found lookups are cached.
func (c *Connector) CacheEnabled() bool {
	return c.cache != nil
}

// Name implements health.Checker.
func (c *Connector) Name() string {
	return serviceName
}

// Check implements health.Checker. It reports the circuit breaker state
// and never contacts the registry.
func (c *Connector) Check(_ context.Context) health.Result {
	start := time.Now()
	details := map[string]any{
		"endpoint":   c.endpoint,
		"cache_size": c.Size(),
	}

	var r health.Result
	breaker := c.lookupExec.CircuitBreaker()
	if breaker == nil {
		r = health.Healthy("connector ready")
	} else {
		state := breaker.State()
		details["circuit"] = state.String()
		switch state {
		case resilience.StateOpen:
			r = health.Unhealthy("circuit open", resilience.ErrCircuitOpen)
		case resilience.StateHalfOpen:
			r = health.Degraded("circuit half-open")
		default:
			r = health.Healthy("connector ready")
		}
	}

	return r.WithDetails(details).WithDuration(time.Since(start))
}

var _ health.Checker = (*Connector)(nil)
