package manifest

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("manifest record not found")

// StorageError reports an I/O failure of the underlying storage.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("manifest %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// DecodeError reports a stored document that could not be decoded.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("manifest record %q is malformed: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Store is durable key to record storage for the build pipeline.
//
// Implementations must tolerate concurrent puts to different keys. Concurrent
// puts to the same key resolve as last-writer-wins.
type Store interface {
	// GetInterface returns ErrNotFound if no interface was captured yet.
	GetInterface(ctx context.Context) (*InterfaceRecord, error)

	// PutInterface overwrites any previous InterfaceRecord.
	PutInterface(ctx context.Context, rec *InterfaceRecord) error

	// GetCommand returns ErrNotFound if key has never been written.
	GetCommand(ctx context.Context, key string) (*CommandRecord, error)

	// PutCommand creates or replaces the record stored at key.
	PutCommand(ctx context.Context, key string, rec *CommandRecord) error

	// ListCommands enumerates every stored command record. Order is
	// unspecified.
	ListCommands(ctx context.Context) ([]*CommandRecord, error)

	// DeleteCommand removes the record at key. Deleting an absent key
	// returns ErrNotFound.
	DeleteCommand(ctx context.Context, key string) error

	// CommandKeys enumerates the keys of every stored command record.
	CommandKeys(ctx context.Context) ([]string, error)
}
