package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jonwraymond/culrconnector/account"
)

// Registry operation paths, relative to the endpoint.
const (
	PathGetAccount    = "/getAccountFromProvider"
	PathCreateAccount = "/createAccount"
)

const maxErrorBody = 4 << 10

var (
	// ErrInvalidEndpoint indicates an endpoint that is not an absolute http(s) URL.
	ErrInvalidEndpoint = errors.New("httpclient: endpoint must be an http or https URL")

	// ErrUnexpectedStatus is wrapped by failures caused by a non-2xx reply.
	ErrUnexpectedStatus = errors.New("httpclient: unexpected status")
)

// Client implements account.Client over JSON/HTTP.
//
// Every call is a single attempt. Failures are tagged transient or
// permanent with the same policy hashicorp/go-retryablehttp uses:
// connection errors, timeouts, 429 and 5xx other than 501 are transient.
type Client struct {
	endpoint string
	http     *http.Client
}

// Option configures a Client.
type Option func(*config)

type config struct {
	connectTimeout time.Duration
	requestTimeout time.Duration
	httpClient     *http.Client
}

// WithConnectTimeout bounds dialing the registry. Zero means no bound.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *config) {
		c.connectTimeout = d
	}
}

// WithRequestTimeout bounds a whole request, reading the body included.
// Zero means no bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *config) {
		c.requestTimeout = d
	}
}

// WithHTTPClient uses hc as is. Timeout options are ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		c.httpClient = hc
	}
}

// New creates a Client for endpoint, e.g.
// "http://culr.example.org/1.6/CulrWebService".
func New(endpoint string, opts ...Option) (*Client, error) {
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return nil, fmt.Errorf("%w, got: %q", ErrInvalidEndpoint, endpoint)
	}

	cfg := config{
		connectTimeout: 2 * time.Second,
		requestTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	hc := cfg.httpClient
	if hc == nil {
		transport := cleanhttp.DefaultPooledTransport()
		transport.DialContext = (&net.Dialer{
			Timeout:   cfg.connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext
		hc = &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   cfg.requestTimeout,
		}
	}

	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     hc,
	}, nil
}

type lookupRequest struct {
	AgencyID        string                  `json:"agencyId"`
	UserCredentials account.Credentials     `json:"userCredentials"`
	AuthCredentials account.AuthCredentials `json:"authCredentials"`
}

type createRequest struct {
	AgencyID        string                  `json:"agencyId"`
	UserCredentials account.Credentials     `json:"userCredentials"`
	AuthCredentials account.AuthCredentials `json:"authCredentials"`
	GlobalUID       *account.GlobalUID      `json:"globalUID,omitempty"`
	MunicipalityNo  string                  `json:"municipalityNo,omitempty"`
}

// FetchAccount implements account.Client.
func (c *Client) FetchAccount(ctx context.Context, agencyID string, creds account.Credentials, auth account.AuthCredentials) (*account.LookupResponse, error) {
	var resp account.LookupResponse
	req := lookupRequest{AgencyID: agencyID, UserCredentials: creds, AuthCredentials: auth}
	if err := c.post(ctx, "fetch account", PathGetAccount, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateAccount implements account.Client.
func (c *Client) CreateAccount(ctx context.Context, agencyID string, creds account.Credentials, auth account.AuthCredentials, globalUID *account.GlobalUID, municipalityNo string) (*account.CreateResponse, error) {
	var resp account.CreateResponse
	req := createRequest{
		AgencyID:        agencyID,
		UserCredentials: creds,
		AuthCredentials: auth,
		GlobalUID:       globalUID,
		MunicipalityNo:  municipalityNo,
	}
	if err := c.post(ctx, "create account", PathCreateAccount, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Endpoint returns the registry base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) post(ctx context.Context, op, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return account.Permanent(op, fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return account.Permanent(op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	retry, _ := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	if err != nil {
		return classify(op, retry, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
		if msg := strings.TrimSpace(string(snippet)); msg != "" {
			statusErr = fmt.Errorf("%w: %s: %s", ErrUnexpectedStatus, resp.Status, msg)
		}
		return classify(op, retry, statusErr)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return account.Permanent(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func classify(op string, retry bool, err error) error {
	if retry {
		return account.Transient(op, err)
	}
	return account.Permanent(op, err)
}

var _ account.Client = (*Client)(nil)
