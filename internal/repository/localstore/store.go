// Package localstore persists collections as whole JSON snapshots in a local
// key-value backend, mirroring every mutation to durable storage and
// rehydrating on first access. It is the single-node alternative to the
// postgres/redis drivers: one file (or memory entry) per named collection,
// rewritten in full on each change. A single store-wide mutex makes every
// mutation a single-writer transaction, which is what lets checkout apply a
// compare-and-decrement across the whole catalog without oversell.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Collection keys. These match the browser localStorage entries the
// storefront historically used.
const (
	keyProducts      = "store_products"
	keyCarts         = "store_carts"
	keyOrders        = "store_orders"
	keyReviews       = "store_reviews"
	keyAnnouncements = "store_announcements"
	keySiteContent   = "store_site_content"
	keyChatMessages  = "store_chat_messages"
	keySessions      = "admin_sessions"
)

// Backend is the raw persistence capability pair: load a named entry (which
// may be absent) and overwrite a named entry.
type Backend interface {
	Load(key string) (data []byte, ok bool, err error)
	Save(key string, data []byte) error
}

// FileBackend stores each key as a JSON file in a directory. Writes go
// through a temp file and rename so a crash never leaves a half-written
// collection behind.
type FileBackend struct {
	dir string
}

// NewFileBackend creates the directory if needed and returns a file backend.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

// Load reads the entry for key. Returns ok=false when the entry is absent.
func (b *FileBackend) Load(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

// Save overwrites the entry for key atomically.
func (b *FileBackend) Save(key string, data []byte) error {
	tmp := b.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, b.path(key)); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

// MemoryBackend stores entries in a map. Used in tests and for ephemeral
// deployments.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string][]byte)}
}

// Load reads the entry for key. Returns ok=false when the entry is absent.
func (b *MemoryBackend) Load(key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.entries[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

// Save overwrites the entry for key.
func (b *MemoryBackend) Save(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	b.entries[key] = cp
	return nil
}

// Store coordinates access to all collections in a backend. All repository
// implementations in this package share one Store so that cross-collection
// operations (checkout's order append + stock decrement) happen under a
// single writer.
type Store struct {
	mu      sync.Mutex
	backend Backend
}

// NewStore creates a store over the given backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// load decodes the collection under key into a slice of T. An absent entry
// decodes to an empty slice. There is no schema versioning: the stored shape
// must match T field-for-field.
func load[T any](backend Backend, key string) ([]T, error) {
	data, ok, err := backend.Load(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

// save overwrites the collection under key with the full encoded slice.
// Cost is O(len(items)) per mutation; collections here are small enough
// that the simplicity wins.
func save[T any](backend Backend, key string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return backend.Save(key, data)
}

// loadMap decodes the map collection under key. An absent entry decodes to
// an empty map.
func loadMap[V any](backend Backend, key string) (map[string]V, error) {
	data, ok, err := backend.Load(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]V{}, nil
	}
	var m map[string]V
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return m, nil
}

// saveMap overwrites the map collection under key.
func saveMap[V any](backend Backend, key string, m map[string]V) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return backend.Save(key, data)
}
