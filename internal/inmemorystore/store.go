package inmemorystore

import (
	"context"
	"sort"
	"sync"

	"github.com/MiracleSNeko/dapper-alco-boost/internal/manifest"
)

// Store is an in-memory implementation of manifest.Store.
//
// The store keeps two independent pieces of state:
//   - iface: the encoded InterfaceRecord, nil until captured
//   - commands: maps record keys to encoded CommandRecord documents
type Store struct {
	mu       sync.RWMutex
	iface    []byte
	commands sync.Map // Key: record key, Value: []byte
}

var _ manifest.Store = (*Store)(nil)

// New creates a new, empty in-memory manifest store.
func New() *Store {
	return &Store{}
}

// GetInterface implements manifest.Store.
func (s *Store) GetInterface(ctx context.Context) (*manifest.InterfaceRecord, error) {
	s.mu.RLock()
	data := s.iface
	s.mu.RUnlock()
	if data == nil {
		return nil, manifest.ErrNotFound
	}
	rec, err := manifest.DecodeInterface(data)
	if err != nil {
		return nil, &manifest.DecodeError{Key: manifest.InterfaceKey, Err: err}
	}
	return rec, nil
}

// PutInterface implements manifest.Store.
func (s *Store) PutInterface(ctx context.Context, rec *manifest.InterfaceRecord) error {
	data, err := manifest.EncodeInterface(rec)
	if err != nil {
		return &manifest.StorageError{Op: "encode", Key: manifest.InterfaceKey, Err: err}
	}
	s.mu.Lock()
	s.iface = data
	s.mu.Unlock()
	return nil
}

// GetCommand implements manifest.Store.
func (s *Store) GetCommand(ctx context.Context, key string) (*manifest.CommandRecord, error) {
	data, ok := s.commands.Load(key)
	if !ok {
		return nil, manifest.ErrNotFound
	}
	rec, err := manifest.DecodeCommand(data.([]byte))
	if err != nil {
		return nil, &manifest.DecodeError{Key: key, Err: err}
	}
	return rec, nil
}

// PutCommand implements manifest.Store.
func (s *Store) PutCommand(ctx context.Context, key string, rec *manifest.CommandRecord) error {
	data, err := manifest.EncodeCommand(rec)
	if err != nil {
		return &manifest.StorageError{Op: "encode", Key: key, Err: err}
	}
	s.commands.Store(key, data)
	return nil
}

// PutRaw stores an already encoded command document at key, bypassing the
// encoder. It exists so tests can plant malformed documents.
func (s *Store) PutRaw(key string, data []byte) {
	s.commands.Store(key, data)
}

// DeleteCommand implements manifest.Store.
func (s *Store) DeleteCommand(ctx context.Context, key string) error {
	if _, loaded := s.commands.LoadAndDelete(key); !loaded {
		return manifest.ErrNotFound
	}
	return nil
}

// CommandKeys implements manifest.Store. Keys are returned sorted.
func (s *Store) CommandKeys(ctx context.Context) ([]string, error) {
	var keys []string
	s.commands.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	sort.Strings(keys)
	return keys, nil
}

// ListCommands implements manifest.Store.
func (s *Store) ListCommands(ctx context.Context) ([]*manifest.CommandRecord, error) {
	keys, _ := s.CommandKeys(ctx)
	records := make([]*manifest.CommandRecord, 0, len(keys))
	for _, key := range keys {
		rec, err := s.GetCommand(ctx, key)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
