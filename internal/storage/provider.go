// Package storage defines the durable named-record abstraction backing the
// catalog collections.
package storage

import "errors"

// ErrNoRecord is returned by Load when the key has never been saved.
var ErrNoRecord = errors.New("storage: no record")

// Provider persists opaque records under fixed string keys.
type Provider interface {
	// Load returns the raw bytes stored under key, or ErrNoRecord.
	Load(key string) ([]byte, error)
	// Save durably replaces the record under key.
	Save(key string, data []byte) error
	// Close releases any underlying resources.
	Close() error
}
