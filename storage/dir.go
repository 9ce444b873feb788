package storage

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Dir persists each key as a JSON file under a directory. Last writer wins;
// there is no locking across processes.
type Dir struct {
	mu   sync.Mutex
	root string
}

// NewDir returns a file-backed store rooted at path, creating it if needed.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, err
	}
	return &Dir{root: path}, nil
}

func (d *Dir) path(key string) string {
	// Keys are fixed constants plus a user-id prefix; replace separators so
	// every key maps to a single file name.
	safe := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(d.root, safe+".json")
}

func (d *Dir) Read(key string) ([]byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	data, err := os.ReadFile(d.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (d *Dir) Write(key string, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return os.WriteFile(d.path(key), data, 0o644)
}

func (d *Dir) Delete(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	os.Remove(d.path(key))
}
