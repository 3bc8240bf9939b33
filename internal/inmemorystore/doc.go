// Package inmemorystore provides an ephemeral, thread-safe, in-memory
// implementation of the manifest.Store interface.
//
// # Purpose
//
// The pipeline stages only ever talk to a manifest.Store, so tests and
// one-shot in-process runs can substitute this store for the filesystem
// one. Records go through the same JSON/base64 codec as on disk, which keeps
// the encode/decode round trip under test even without a filesystem.
//
// # Concurrency Model
//
// Each key's document lives in a sync.Map entry. Collection stages write
// independent keys in parallel, which is the access pattern sync.Map is
// optimized for; same-key writes resolve as last-writer-wins.
package inmemorystore
