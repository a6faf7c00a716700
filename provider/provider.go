// Package provider defines the store abstraction used by rediscache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the concatenation of every value passed to Append for a key since it was
// last deleted. No prepended/appended metadata, no re-encoding.
//
// Values are opaque HTTP object bodies owned by the proxy; the provider only
// stores and returns them.
package provider

import (
	"context"
)

// Provider is a minimal append-capable byte store.
// Must be safe for concurrent use, although rediscache serializes its own calls.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Exists reports whether key holds a value without fetching it.
	Exists(ctx context.Context, key string) (bool, error)

	// Append appends value to the value stored under key, creating it when
	// missing, and returns the length of the stored value after the append.
	// A store that refuses the write under pressure returns (0, nil).
	Append(ctx context.Context, key string, value []byte) (int64, error)

	// Del removes a key. Deleting a missing key is not an error.
	Del(ctx context.Context, key string) error

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close(ctx context.Context) error
}
