// Package cache provides a time-bounded, concurrency-safe key-value store.
//
// Memory keeps values for Policy.TTL after they were stored and treats
// older entries as absent. Expiry is lazy: reads drop stale entries and
// writes sweep them at most once per TTL. A zero TTL disables the cache:
// Get always misses and Put does nothing.
package cache
