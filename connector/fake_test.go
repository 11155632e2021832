package connector

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jonwraymond/culrconnector/account"
	"github.com/jonwraymond/culrconnector/observe"
	"github.com/jonwraymond/culrconnector/resilience"
)

const testAgency = "190976"

var (
	testAuth = account.AuthCredentials{UserIDAut: "netpunkt", GroupIDAut: testAgency, PasswordAut: "s3cret-pass"}
	found    = account.Credentials{UserIDType: account.UserIDTypeLocal, UserIDValue: "1111"}
	missing  = account.Credentials{UserIDType: account.UserIDTypeLocal, UserIDValue: "9999"}
)

// fakeClient counts calls and answers from a fixed table unless a hook
// overrides the behavior.
type fakeClient struct {
	fetchCalls  atomic.Int32
	createCalls atomic.Int32

	mu       sync.Mutex
	onFetch  func(call int, creds account.Credentials) (*account.LookupResponse, error)
	onCreate func(call int) (*account.CreateResponse, error)

	lastGlobalUID    *account.GlobalUID
	lastMunicipality string
}

func (f *fakeClient) FetchAccount(_ context.Context, _ string, creds account.Credentials, _ account.AuthCredentials) (*account.LookupResponse, error) {
	call := int(f.fetchCalls.Add(1))
	if f.onFetch != nil {
		return f.onFetch(call, creds)
	}
	if creds.UserIDValue == found.UserIDValue {
		return foundResponse(), nil
	}
	return notFoundResponse(), nil
}

func (f *fakeClient) CreateAccount(_ context.Context, _ string, _ account.Credentials, _ account.AuthCredentials, globalUID *account.GlobalUID, municipalityNo string) (*account.CreateResponse, error) {
	call := int(f.createCalls.Add(1))
	f.mu.Lock()
	f.lastGlobalUID = globalUID
	f.lastMunicipality = municipalityNo
	f.mu.Unlock()
	if f.onCreate != nil {
		return f.onCreate(call)
	}
	return &account.CreateResponse{Status: account.ResponseStatus{Code: account.CodeOK}}, nil
}

func foundResponse() *account.LookupResponse {
	return &account.LookupResponse{
		Status:         account.ResponseStatus{Code: account.CodeOK},
		GUID:           "4b3f0c8e-guid",
		MunicipalityNo: "101",
		Accounts: []account.Account{{
			ProviderID:  testAgency,
			UserIDType:  account.UserIDTypeLocal,
			UserIDValue: "1111",
		}},
	}
}

func notFoundResponse() *account.LookupResponse {
	return &account.LookupResponse{
		Status: account.ResponseStatus{Code: account.CodeAccountDoesNotExist, Message: "account does not exist"},
	}
}

func testConfig() Config {
	cfg := DefaultConfig("http://culr.test/1.6/CulrWebService")
	cfg.Retry = resilience.RetryConfig{MaxRetries: 3}
	return cfg
}

func newTestConnector(t *testing.T, cfg Config, client account.Client, opts ...Option) *Connector {
	t.Helper()
	opts = append([]Option{WithClient(client), WithLogger(observe.NopLogger())}, opts...)
	c, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}
