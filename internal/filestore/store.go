// Package filestore provides the durable, filesystem-backed implementation
// of manifest.Store.
//
// Layout under the root directory:
//
//	interface.json          the InterfaceRecord
//	commands/<key>.json     one file per CommandRecord
//
// Every write lands in a temporary file in the destination directory and is
// renamed into place, so a reader never observes a half-written record and
// racing writers of the same key resolve as last-writer-wins.
package filestore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MiracleSNeko/dapper-alco-boost/internal/ctxlog"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/manifest"
)

const (
	interfaceFile = manifest.InterfaceKey + ".json"
	commandsDir   = "commands"
	recordExt     = ".json"
	tempPattern   = ".tmp-*"
)

// Store is a manifest.Store rooted at a directory.
type Store struct {
	root string
}

var _ manifest.Store = (*Store)(nil)

// New returns a Store rooted at dir. The directory is created lazily on the
// first write.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the directory the store writes to.
func (s *Store) Root() string {
	return s.root
}

// GetInterface implements manifest.Store.
func (s *Store) GetInterface(ctx context.Context) (*manifest.InterfaceRecord, error) {
	data, err := s.read(filepath.Join(s.root, interfaceFile), manifest.InterfaceKey)
	if err != nil {
		return nil, err
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
	ctxlog.FromContext(ctx).Debug("Writing interface record.", "path", filepath.Join(s.root, interfaceFile))
	return s.write(s.root, interfaceFile, manifest.InterfaceKey, data)
}

// GetCommand implements manifest.Store.
func (s *Store) GetCommand(ctx context.Context, key string) (*manifest.CommandRecord, error) {
	if err := validKey(key); err != nil {
		return nil, &manifest.StorageError{Op: "get", Key: key, Err: err}
	}
	data, err := s.read(s.commandPath(key), key)
	if err != nil {
		return nil, err
	}
	rec, err := manifest.DecodeCommand(data)
	if err != nil {
		return nil, &manifest.DecodeError{Key: key, Err: err}
	}
	return rec, nil
}

// PutCommand implements manifest.Store.
func (s *Store) PutCommand(ctx context.Context, key string, rec *manifest.CommandRecord) error {
	if err := validKey(key); err != nil {
		return &manifest.StorageError{Op: "put", Key: key, Err: err}
	}
	data, err := manifest.EncodeCommand(rec)
	if err != nil {
		return &manifest.StorageError{Op: "encode", Key: key, Err: err}
	}
	ctxlog.FromContext(ctx).Debug("Writing command record.", "key", key, "path", s.commandPath(key))
	return s.write(filepath.Join(s.root, commandsDir), key+recordExt, key, data)
}

// DeleteCommand implements manifest.Store.
func (s *Store) DeleteCommand(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return &manifest.StorageError{Op: "delete", Key: key, Err: err}
	}
	err := os.Remove(s.commandPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return manifest.ErrNotFound
	}
	if err != nil {
		return &manifest.StorageError{Op: "delete", Key: key, Err: err}
	}
	ctxlog.FromContext(ctx).Debug("Deleted command record.", "key", key)
	return nil
}

// CommandKeys implements manifest.Store. Keys are returned sorted.
func (s *Store) CommandKeys(ctx context.Context) ([]string, error) {
	dir := filepath.Join(s.root, commandsDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &manifest.StorageError{Op: "list", Key: commandsDir, Err: err}
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, recordExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, recordExt))
	}
	sort.Strings(keys)
	return keys, nil
}

// ListCommands implements manifest.Store.
func (s *Store) ListCommands(ctx context.Context) ([]*manifest.CommandRecord, error) {
	keys, err := s.CommandKeys(ctx)
	if err != nil {
		return nil, err
	}
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

func (s *Store) commandPath(key string) string {
	return filepath.Join(s.root, commandsDir, key+recordExt)
}

func (s *Store) read(path, key string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, manifest.ErrNotFound
	}
	if err != nil {
		return nil, &manifest.StorageError{Op: "read", Key: key, Err: err}
	}
	return data, nil
}

// write replaces dir/name with data via a temp file and rename.
func (s *Store) write(dir, name, key string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &manifest.StorageError{Op: "mkdir", Key: key, Err: err}
	}

	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return &manifest.StorageError{Op: "write", Key: key, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &manifest.StorageError{Op: "write", Key: key, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &manifest.StorageError{Op: "write", Key: key, Err: err}
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		return &manifest.StorageError{Op: "rename", Key: key, Err: err}
	}
	return nil
}

func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." || strings.HasPrefix(key, ".") {
		return errors.New("invalid record key")
	}
	return nil
}
