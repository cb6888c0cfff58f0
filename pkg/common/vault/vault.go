package vault

import "io"

// Vault stores opaque blobs by key. Implementations treat the blob contents
// as uninterpreted bytes and must be safe for concurrent use.
type Vault interface {
	// Import stores value under key, replacing any previous value.
	Import(key string, value []byte) error
	// Get returns the value stored under key or an error matching
	// ErrKeyNotFound of the implementing package.
	Get(key string) ([]byte, error)
}

// DurableVault is a Vault backed by a resource that must be released.
type DurableVault interface {
	Vault
	io.Closer
}
