// Package manifest defines the persisted records exchanged by the cmdgen
// stages and the Store contract that holds them.
//
// Two kinds of record exist. The InterfaceRecord holds the canonical handler
// signature and lives at a single well-known key. A CommandRecord describes
// one registered handler and is keyed by the snake-cased command name, so
// re-registering a command overwrites its previous record.
//
// Records are stored as JSON documents. The "raw" field carries arbitrary Go
// source text and is base64 encoded on the wire; every other field is a plain
// JSON value.
package manifest
