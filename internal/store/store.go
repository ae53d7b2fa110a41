// Package store provides the option store the pattern scanner persists cache
// entries through. The contract is deliberately small: string-keyed byte
// values with last-writer-wins overwrite semantics and no transactions.
// Concurrent writers may race on the same key; callers accept this because
// the values they persist are deterministic recomputations.
//
// The autoload flag is a hint to the persistence layer that the option is
// read on every request and should be loaded eagerly with the rest of the
// autoloaded options.
package store

// Store is the persistence contract for options.
type Store interface {
	// Get returns the stored value for key, and whether it exists.
	Get(key string) ([]byte, bool)
	// Set stores value under key, replacing any previous value. The
	// autoload flag marks the option for eager loading.
	Set(key string, value []byte, autoload bool) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}
