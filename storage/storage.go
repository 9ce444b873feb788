// Package storage holds the client-side state of a user: session, profile,
// cart contents and the in-progress pizza draft. It is the single source of
// truth for all of them; readers re-fetch on every call rather than caching
// across mutations. Malformed stored data is treated as absence.
package storage

// Keys for the persisted client-state blobs. All four are cleared together
// on logout.
const (
	KeySession = "pizzeriaSession"
	KeyUser    = "pizzeriaUser"
	KeyCart    = "cartItems"
	KeyDraft   = "pizzeriaDraftPizza"
)

// Store is a string-keyed blob store. Consumers define what goes under each
// key; values are JSON-encoded by the caller.
type Store interface {
	// Read returns the blob under key, or ok=false when nothing is stored.
	Read(key string) (data []byte, ok bool)
	// Write stores the blob under key, replacing any previous value.
	Write(key string, data []byte) error
	// Delete removes the blob under key. Deleting a missing key is a no-op.
	Delete(key string)
}

// ClearClientState removes every client-state key from the store, the full
// reset performed on logout.
func ClearClientState(s Store) {
	s.Delete(KeySession)
	s.Delete(KeyUser)
	s.Delete(KeyCart)
	s.Delete(KeyDraft)
}
