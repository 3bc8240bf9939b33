// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The dapper-alco-boost Authors
package config

import (
	"errors"
	"fmt"
	"go/token"
	"path/filepath"

	"github.com/MiracleSNeko/dapper-alco-boost/internal/manifest"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/naming"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "cmdgen.hcl"

// Model is the complete cmdgen configuration.
type Model struct {
	// Root is the directory relative paths are resolved against and the
	// default scan root: the directory of the loaded file, or ".".
	Root string

	Manifest  Manifest
	Interface Interface
	Dispatch  Dispatch
	Collect   Collect
	Log       Log
}

// Manifest locates the manifest store.
type Manifest struct {
	Dir string
}

// Interface selects the interface method commands must implement. Both
// fields only matter when no source file carries an interface directive,
// or when an annotated interface type has several methods.
type Interface struct {
	Name   string
	Method string
}

// Dispatch shapes the generated file.
type Dispatch struct {
	// Package defaults to the package of the scanned interface.
	Package string
	Type    string
	Default string
	Output  string
}

// Collect configures command collection.
type Collect struct {
	// RetainOriginal keeps handlers callable from the program during
	// development by writing their declarations to RetainedOutput.
	RetainOriginal bool
	RetainedOutput string
	Strictness     string
	// Workers bounds concurrent collection; 0 means one per declaration.
	Workers int
}

// Log configures the logger.
type Log struct {
	Level  string
	Format string
}

// Default returns the configuration used when no file is present.
func Default() *Model {
	return &Model{
		Root:     ".",
		Manifest: Manifest{Dir: ".autogen"},
		Interface: Interface{
			Method: "Execute",
		},
		Dispatch: Dispatch{
			Type:    "Commands",
			Default: "Nope",
			Output:  "commands_gen.go",
		},
		Collect: Collect{
			RetainOriginal: true,
			RetainedOutput: "commands_retained_gen.go",
			Strictness:     manifest.Strict.String(),
			Workers:        8,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Strictness returns the parsed collect.strictness value.
func (m *Model) Strictness() manifest.Strictness {
	s, err := manifest.ParseStrictness(m.Collect.Strictness)
	if err != nil {
		return manifest.Strict
	}
	return s
}

// Validate reports every invalid setting at once.
func (m *Model) Validate() error {
	var errs []error
	if m.Manifest.Dir == "" {
		errs = append(errs, errors.New("manifest.dir must not be empty"))
	}
	if m.Interface.Name != "" && !token.IsIdentifier(m.Interface.Name) {
		errs = append(errs, fmt.Errorf("interface.name %q is not a Go identifier", m.Interface.Name))
	}
	if m.Interface.Method != "" && !naming.IsExportedIdentifier(m.Interface.Method) {
		errs = append(errs, fmt.Errorf("interface.method %q is not an exported Go identifier", m.Interface.Method))
	}
	if m.Dispatch.Package != "" && !token.IsIdentifier(m.Dispatch.Package) {
		errs = append(errs, fmt.Errorf("dispatch.package %q is not a Go identifier", m.Dispatch.Package))
	}
	if !naming.IsExportedIdentifier(m.Dispatch.Type) {
		errs = append(errs, fmt.Errorf("dispatch.type %q is not an exported Go identifier", m.Dispatch.Type))
	}
	if m.Dispatch.Default == "" {
		errs = append(errs, errors.New("dispatch.default must not be empty"))
	}
	if err := checkGoFile("dispatch.output", m.Dispatch.Output); err != nil {
		errs = append(errs, err)
	}
	if m.Collect.RetainOriginal {
		if err := checkGoFile("collect.retained_output", m.Collect.RetainedOutput); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := manifest.ParseStrictness(m.Collect.Strictness); err != nil {
		errs = append(errs, fmt.Errorf("collect.strictness: %w", err))
	}
	if m.Collect.Workers < 0 {
		errs = append(errs, fmt.Errorf("collect.workers must not be negative, got %d", m.Collect.Workers))
	}
	switch m.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q must be 'debug', 'info', 'warn', or 'error'", m.Log.Level))
	}
	switch m.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be 'text' or 'json'", m.Log.Format))
	}
	return errors.Join(errs...)
}

// resolvePaths makes the relative paths of m relative to root.
func (m *Model) resolvePaths(root string) {
	m.Root = root
	for _, p := range []*string{&m.Manifest.Dir, &m.Dispatch.Output, &m.Collect.RetainedOutput} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(root, *p)
		}
	}
}

func checkGoFile(field, path string) error {
	if path == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	if filepath.Ext(path) != ".go" {
		return fmt.Errorf("%s %q must name a .go file", field, path)
	}
	return nil
}
