// Package app wires configuration, logging, the manifest store and the
// three pipeline stages together. It is independent of any entrypoint; the
// CLI in package cli is a thin layer on top of it.
//
// A full build runs the stages in order:
//
//  1. scan the source paths for directives,
//  2. capture the interface signature,
//  3. collect every annotated command (concurrently),
//  4. generate the dispatch file.
//
// Each stage can also be run on its own, in which case it only sees what
// the previous runs left in the manifest store.
package app
