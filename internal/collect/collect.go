// Package collect implements the command collection stage.
//
// Each handler declaration is canonicalized, checked against the captured
// interface signature and persisted as a CommandRecord keyed by its
// snake-cased name. Declarations are independent of each other, so many of
// them may be collected concurrently.
package collect

import (
	"context"
	"errors"
	"fmt"

	"github.com/MiracleSNeko/dapper-alco-boost/internal/ctxlog"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/manifest"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/naming"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/signature"
)

// Receiver is the synthetic receiver inserted into stored declarations. The
// generator replaces it with the variant type.
const Receiver = "Self"

// Declaration is one handler declaration plus the metadata registered with
// it.
type Declaration struct {
	// Source is the func declaration, optionally preceded by its doc comment.
	Source string
	Code   uint64
	Name   string
	// Imports are the import specs of the declaring file.
	Imports []string
	// Origin optionally locates the declaration for error messages.
	Origin string
}

// Options configures a Stage.
type Options struct {
	// RetainOriginal keeps the original declaration available to the
	// surrounding program (development configuration). When false the
	// declaration exists only inside the manifest.
	RetainOriginal bool
	Strictness     manifest.Strictness
	// Workers bounds CollectAll concurrency. Zero or less means unbounded.
	Workers int
}

// Result is the outcome of collecting one declaration.
type Result struct {
	Key    string
	Record *manifest.CommandRecord
	// Retained is the unchanged original declaration when RetainOriginal is
	// set, empty otherwise.
	Retained string
}

// Stage validates and records command handlers.
type Stage struct {
	store manifest.Store
	opts  Options
}

// New returns a collection stage backed by store.
func New(store manifest.Store, opts Options) *Stage {
	return &Stage{store: store, opts: opts}
}

// Collect validates decl against the captured interface and stores its
// record, replacing any record previously stored under the same key.
func (s *Stage) Collect(ctx context.Context, decl Declaration) (*Result, error) {
	res, err := s.collect(ctx, decl)
	if err != nil && decl.Origin != "" {
		return nil, fmt.Errorf("%s: %w", decl.Origin, err)
	}
	return res, err
}

func (s *Stage) collect(ctx context.Context, decl Declaration) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	if decl.Name == "" {
		return nil, ErrEmptyName
	}
	ident := naming.UpperCamel(decl.Name)
	if !naming.IsExportedIdentifier(ident) {
		return nil, &InvalidNameError{Name: decl.Name, Identifier: ident}
	}
	key := naming.Snake(decl.Name)
	logger.Debug("Collecting command.", "name", decl.Name, "code", decl.Code, "key", key)

	// Signature pass: parse and canonicalize, ignoring doc and directives.
	parsed, err := signature.ParseDecl(decl.Source)
	if err != nil {
		return nil, fmt.Errorf("command %q: %w", decl.Name, err)
	}
	if parsed.Func.Recv != nil {
		return nil, fmt.Errorf("command %q: handler must be a plain function, not a method", decl.Name)
	}
	if !parsed.HasBody() {
		return nil, fmt.Errorf("command %q: handler has no body", decl.Name)
	}
	found := signature.CanonicalDecl(parsed)

	iface, err := s.store.GetInterface(ctx)
	if errors.Is(err, manifest.ErrNotFound) {
		return nil, manifest.ErrInterfaceMissing
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read interface signature: %w", err)
	}
	if iface.Raw != found {
		return nil, &SignatureMismatchError{Name: decl.Name, Expected: iface.Raw, Found: found}
	}

	if s.opts.Strictness == manifest.Strict {
		if err := s.checkCollision(ctx, key, decl.Name); err != nil {
			return nil, err
		}
	}

	// Body pass: keep the body and give the declaration its receiver so the
	// generator can turn it into a method directly.
	body, err := parsed.WithReceiver(Receiver)
	if err != nil {
		return nil, fmt.Errorf("command %q: %w", decl.Name, err)
	}

	rec := &manifest.CommandRecord{
		Name:    decl.Name,
		Code:    decl.Code,
		Raw:     body,
		Imports: decl.Imports,
	}
	if err := s.store.PutCommand(ctx, key, rec); err != nil {
		return nil, fmt.Errorf("failed to store command %q: %w", decl.Name, err)
	}
	logger.Debug("Command collected.", "name", decl.Name, "key", key)

	res := &Result{Key: key, Record: rec}
	if s.opts.RetainOriginal {
		res.Retained = parsed.Text()
	}
	return res, nil
}

// checkCollision rejects a different name already stored under key.
func (s *Stage) checkCollision(ctx context.Context, key, name string) error {
	existing, err := s.store.GetCommand(ctx, key)
	var decodeErr *manifest.DecodeError
	switch {
	case err == nil:
		if existing.Name != name {
			return &NameCollisionError{Key: key, Existing: existing.Name, Name: name}
		}
		return nil
	case errors.Is(err, manifest.ErrNotFound), errors.As(err, &decodeErr):
		// Nothing usable stored yet; the new record replaces it.
		return nil
	default:
		return fmt.Errorf("failed to read command %q: %w", key, err)
	}
}
