package storage

type namespaced struct {
	inner  Store
	prefix string
}

// ForUser scopes a store to one user by prefixing every key with the user id.
// Each user gets an isolated session, cart and draft.
func ForUser(s Store, userID string) Store {
	if userID == "" {
		return s
	}
	return &namespaced{inner: s, prefix: userID + ":"}
}

func (n *namespaced) Read(key string) ([]byte, bool) { return n.inner.Read(n.prefix + key) }

func (n *namespaced) Write(key string, data []byte) error {
	return n.inner.Write(n.prefix+key, data)
}

func (n *namespaced) Delete(key string) { n.inner.Delete(n.prefix + key) }
