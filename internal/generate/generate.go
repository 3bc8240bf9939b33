// Package generate implements the dispatch generation stage.
//
// It reads every command record from the manifest store and emits one Go
// source file containing:
//
//   - a uint64 constant per command (NOPE = 1),
//   - a zero-size tag type per command implementing the interface with the
//     stored body,
//   - the closed dispatch type, whose interface method switches statically
//     over the variants,
//   - the default-construction rule (the zero value and Default<Dispatch>).
//
// Generation is all-or-nothing: any failure returns no output.
package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/MiracleSNeko/dapper-alco-boost/internal/ctxlog"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/manifest"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/naming"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/signature"
	"golang.org/x/tools/imports"
)

// Default option values.
const (
	DefaultMethod  = "Execute"
	DefaultVariant = "Nope"
)

var processOptions = &imports.Options{
	Comments:  true,
	TabIndent: true,
	TabWidth:  8,
}

// Options configures one generation run.
type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// Interface names the interface every variant implements.
	Interface string
	// Method is the interface method implemented by every variant.
	Method string
	// Dispatch names the generated closed dispatch type.
	Dispatch string
	// Default is the command name of the default variant.
	Default    string
	Strictness manifest.Strictness
	// Filename is used to resolve imports; it does not need to exist.
	Filename string
}

func (o *Options) setDefaults() {
	if o.Method == "" {
		o.Method = DefaultMethod
	}
	if o.Default == "" {
		o.Default = DefaultVariant
	}
	if o.Filename == "" {
		o.Filename = "dispatch_gen.go"
	}
}

func (o *Options) validate() error {
	if !token.IsIdentifier(o.Package) {
		return fmt.Errorf("invalid package name %q", o.Package)
	}
	if !naming.IsExportedIdentifier(o.Dispatch) {
		return fmt.Errorf("invalid dispatch type name %q: must be an exported identifier", o.Dispatch)
	}
	if !isTypeName(o.Interface) {
		return fmt.Errorf("invalid interface name %q", o.Interface)
	}
	if !naming.IsExportedIdentifier(o.Method) {
		return fmt.Errorf("invalid method name %q: must be an exported identifier", o.Method)
	}
	switch o.Method {
	case "Code", "Name", "String", o.Dispatch:
		return fmt.Errorf("method name %q clashes with a generated method of %s", o.Method, o.Dispatch)
	}
	return nil
}

// isTypeName accepts "Iface" or "pkg.Iface".
func isTypeName(s string) bool {
	pkg, name, qualified := strings.Cut(s, ".")
	if !qualified {
		return token.IsIdentifier(s)
	}
	return token.IsIdentifier(pkg) && naming.IsExportedIdentifier(name)
}

// Stage generates the dispatch file from a manifest store.
type Stage struct {
	store manifest.Store
}

// New returns a generation stage reading from store.
func New(store manifest.Store) *Stage {
	return &Stage{store: store}
}

// fileData feeds fileTemplate.
type fileData struct {
	Package     string
	Imports     []string
	Interface   string
	Method      string
	Dispatch    string
	Table       string
	DefaultType string
	DefaultTag  string
	HasDefault  bool
	Params      string
	Results     string
	Args        string
	HasResults  bool
	Variants    []*variant
}

// Generate renders the dispatch file. It returns nil and an error if any
// record is unusable.
func (s *Stage) Generate(ctx context.Context, opts Options) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)
	opts.setDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	iface, err := s.store.GetInterface(ctx)
	if errors.Is(err, manifest.ErrNotFound) {
		return nil, manifest.ErrInterfaceMissing
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read interface signature: %w", err)
	}
	ft, err := signature.ParseCanonical(iface.Raw)
	if err != nil {
		return nil, &MalformedBodyError{Key: manifest.InterfaceKey, Err: err}
	}

	records, err := s.store.ListCommands(ctx)
	var decodeErr *manifest.DecodeError
	if errors.As(err, &decodeErr) {
		return nil, &MalformedBodyError{Key: decodeErr.Key, Err: decodeErr.Err}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate commands: %w", err)
	}
	logger.Debug("Generating dispatch type.", "dispatch", opts.Dispatch, "commands", len(records), "strictness", opts.Strictness.String())

	variants := make([]*variant, 0, len(records))
	for _, rec := range records {
		v, err := buildVariant(rec, opts, iface.Raw)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}

	defaultType := naming.UpperCamel(opts.Default)
	if opts.Strictness == manifest.Strict {
		if err := checkClosedSet(variants, opts); err != nil {
			return nil, err
		}
	}
	orderVariants(variants, defaultType)
	hasDefault := len(variants) > 0 && variants[0].Type == defaultType

	params, args := paramList(ft)
	results := signature.Types(ft.Results)
	data := fileData{
		Package:     opts.Package,
		Imports:     mergeImports(records),
		Interface:   opts.Interface,
		Method:      opts.Method,
		Dispatch:    opts.Dispatch,
		Table:       tagPrefix(opts.Dispatch) + "Table",
		DefaultType: defaultType,
		DefaultTag:  tagPrefix(opts.Dispatch) + defaultType,
		HasDefault:  hasDefault,
		Params:      params,
		Results:     resultList(results),
		Args:        args,
		HasResults:  len(results) > 0,
		Variants:    variants,
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render dispatch file: %w", err)
	}
	out, err := imports.Process(opts.Filename, buf.Bytes(), processOptions)
	if err != nil {
		return nil, fmt.Errorf("generated dispatch file is not valid Go: %w", err)
	}

	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Type
	}
	logger.Debug("Dispatch type generated.", "dispatch", opts.Dispatch, "variants", names)
	return out, nil
}

// CheckRetained reports a RetainedClashError when one of funcs, the names of
// handler functions kept in the same package, is also declared by the file
// Generate would produce for the stored records.
func (s *Stage) CheckRetained(ctx context.Context, opts Options, funcs []string) error {
	opts.setDefaults()
	records, err := s.store.ListCommands(ctx)
	var decodeErr *manifest.DecodeError
	if errors.As(err, &decodeErr) {
		return &MalformedBodyError{Key: decodeErr.Key, Err: decodeErr.Err}
	}
	if err != nil {
		return fmt.Errorf("failed to enumerate commands: %w", err)
	}

	variants := make([]*variant, len(records))
	for i, rec := range records {
		variants[i] = newVariant(rec, opts)
	}
	orderVariants(variants, naming.UpperCamel(opts.Default))
	idents := generatedIdents(variants, opts)
	for _, fn := range funcs {
		if owners, ok := idents.owners[fn]; ok {
			return &RetainedClashError{Func: fn, Owner: owners[0]}
		}
	}
	return nil
}

// WriteFile generates the dispatch file and atomically replaces path with
// it. On failure path is left untouched.
func (s *Stage) WriteFile(ctx context.Context, path string, opts Options) error {
	if opts.Filename == "" {
		opts.Filename = path
	}
	out, err := s.Generate(ctx, opts)
	if err != nil {
		return err
	}
	if err := WriteAtomic(path, out); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Dispatch file written.", "path", path, "bytes", len(out))
	return nil
}

// WriteAtomic writes data to a temporary file next to path and renames it
// over path, so readers never observe a partial file.
func WriteAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".cmdgen-*.go.tmp")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// paramList names the interface parameters arg0..argN and returns both the
// declaration list and the forwarding argument list.
func paramList(ft *ast.FuncType) (string, string) {
	types := signature.Types(ft.Params)
	params := make([]string, len(types))
	args := make([]string, len(types))
	for i, typ := range types {
		name := fmt.Sprintf("arg%d", i)
		params[i] = name + " " + typ
		args[i] = name
		if strings.HasPrefix(typ, "...") {
			args[i] += "..."
		}
	}
	return strings.Join(params, ", "), strings.Join(args, ", ")
}

func resultList(types []string) string {
	switch len(types) {
	case 0:
		return ""
	case 1:
		return " " + types[0]
	default:
		return " (" + strings.Join(types, ", ") + ")"
	}
}
