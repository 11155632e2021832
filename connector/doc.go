// Package connector provides a resilient client for the CULR account
// registry.
//
// A Connector wraps an account.Client with two policies:
//
//   - Retry: every remote call is retried on transient failure with a
//     fixed delay, three times three seconds apart by default.
//   - Cache: "found" lookups are kept in memory for a TTL, eight hours
//     by default. "Not found" and error results are never cached, and
//     creates never touch the cache. A TTL of zero disables caching.
//
// # Basic Usage
//
//	cfg, err := connector.LoadConfig("")
//	if err != nil {
//	    return err
//	}
//	c, err := connector.New(cfg)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := c.Lookup(ctx, "190976",
//	    account.Credentials{UserIDType: account.UserIDTypeLocal, UserIDValue: "1111"},
//	    account.AuthCredentials{UserIDAut: "netpunkt", GroupIDAut: "190976", PasswordAut: secret},
//	)
//	if err != nil {
//	    return err // *connector.Error
//	}
//	if resp.Status.Code.Found() {
//	    ...
//	}
//
// # Configuration
//
// LoadConfig reads CULR_SERVICE_URL, CULR_CONNECTOR_CONNECT_TIMEOUT_IN_MS,
// CULR_CONNECTOR_REQUEST_TIMEOUT_IN_MS, CULR_CONNECTOR_CACHE_TTL,
// CULR_CONNECTOR_RETRY_MAX and CULR_CONNECTOR_RETRY_DELAY from the
// environment, optionally layered over a config file.
//
// # Errors
//
// Failures are returned as *Error. Use errors.Is with
// resilience.ErrMaxRetriesExceeded or resilience.ErrCircuitOpen, and
// account.IsTransient to inspect the cause.
package connector
