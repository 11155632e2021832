package account

import "context"

// Client performs single round trips against the account registry.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Blocking: each call is exactly one remote attempt; retrying is the
//     caller's business.
//   - Errors: every returned error should be tagged with Transient or
//     Permanent. Untagged errors are treated as permanent.
//   - Negatives: "not found" and registry-side rejections are returned
//     as responses with a non-OK ResponseCode, not as errors.
type Client interface {
	// FetchAccount looks up the account identified by creds.
	FetchAccount(ctx context.Context, agencyID string, creds Credentials, auth AuthCredentials) (*LookupResponse, error)

	// CreateAccount creates the account identified by creds. globalUID may
	// be nil and municipalityNo may be empty.
	CreateAccount(ctx context.Context, agencyID string, creds Credentials, auth AuthCredentials, globalUID *GlobalUID, municipalityNo string) (*CreateResponse, error)
}
