package capture

import "errors"

// ErrQuotaExceeded is returned by a Backend when a write fails because the
// underlying store is full. The store reacts by evicting stale sessions and
// retrying once.
var ErrQuotaExceeded = errors.New("capture: storage quota exceeded")

// Backend is the synchronous key/value substrate the store persists into.
// Implementations must be safe for single-writer use; the store never issues
// concurrent writes for the same key.
type Backend interface {
	// Get returns the stored value, or found=false if the key is absent.
	Get(key string) (value []byte, found bool, err error)
	Set(key string, value []byte) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(key string) error
	// Keys lists all stored keys that start with prefix, in a stable order.
	Keys(prefix string) ([]string, error)
}

// Logger is the minimal logging surface the capture package needs. The
// application's ILogger satisfies it.
type Logger interface {
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}

// NopLogger discards everything. Used as the default when no logger is wired.
var NopLogger Logger = nopLogger{}
