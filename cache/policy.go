package cache

import "time"

// DefaultTTL is the entry lifetime used by DefaultPolicy.
const DefaultTTL = 8 * time.Hour

// Policy configures caching behavior.
type Policy struct {
	// TTL is how long an entry is served after it was stored.
	// If zero, caching is disabled.
	TTL time.Duration
}

// DefaultPolicy returns the default caching policy: 8 hour TTL.
func DefaultPolicy() Policy {
	return Policy{TTL: DefaultTTL}
}

// NoCachePolicy returns a policy that disables caching entirely.
func NoCachePolicy() Policy {
	return Policy{}
}

// Enabled returns true if caching is enabled by this policy.
func (p Policy) Enabled() bool {
	return p.TTL > 0
}

// Validate rejects negative TTLs.
func (p Policy) Validate() error {
	if p.TTL < 0 {
		return ErrNegativeTTL
	}
	return nil
}
