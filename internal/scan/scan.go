package scan

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/MiracleSNeko/dapper-alco-boost/internal/collect"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/ctxlog"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/fsutil"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/signature"
	"golang.org/x/sync/errgroup"
)

const (
	directivePrefix    = "//cmdgen:"
	interfaceDirective = "interface"
	commandDirective   = "command"
)

// Options configures a scan.
type Options struct {
	// Interface names the interface type to use when no file carries an
	// interface directive.
	Interface string
	// Method selects the method of an annotated interface type. Empty
	// means the interface's only method.
	Method string
	// SkipSuffixes lists file name suffixes to ignore, typically the
	// generated and retained outputs.
	SkipSuffixes []string
}

// Interface is the interface method found by a scan.
type Interface struct {
	// Package is the package clause of the declaring file.
	Package string
	// TypeName is the name of the interface type.
	TypeName string
	Method   *signature.Method
	Origin   string

	// annotated is false when the interface was found by name only.
	annotated bool
}

// Result is everything found in the scanned files.
type Result struct {
	// Interface is nil when no interface was found.
	Interface *Interface
	// Commands are in file order, then source order.
	Commands []collect.Declaration
	// Package is the package clause of the first file declaring commands.
	Package string
}

// Paths scans every .go file under paths, skipping test files.
func Paths(ctx context.Context, paths []string, opts Options) (*Result, error) {
	skip := append([]string{"_test.go"}, opts.SkipSuffixes...)
	files, err := fsutil.FindFilesByExtension(paths, ".go", skip...)
	if err != nil {
		return nil, fmt.Errorf("failed to list source files: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Scanning source files.", "count", len(files))

	results := make([]*Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, filename := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", filename, err)
			}
			res, err := File(filename, src, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &Result{}
	for _, res := range results {
		if err := merged.merge(res); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

func (r *Result) merge(other *Result) error {
	switch cur, next := r.Interface, other.Interface; {
	case next == nil:
	case cur == nil:
		r.Interface = next
	case cur.annotated == next.annotated:
		return fmt.Errorf("%s: interface already declared at %s", next.Origin, cur.Origin)
	case next.annotated:
		r.Interface = next
	}
	r.Commands = append(r.Commands, other.Commands...)
	if r.Package == "" {
		r.Package = other.Package
	}
	return nil
}

// File scans one Go source file. filename is only used for positions.
func File(filename string, src []byte, opts Options) (*Result, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	s := &fileScanner{fset: fset, file: file, src: src, opts: opts, result: &Result{}}
	if err := s.scan(); err != nil {
		return nil, err
	}
	if len(s.result.Commands) > 0 {
		s.result.Package = file.Name.Name
	}
	return s.result, nil
}

type fileScanner struct {
	fset   *token.FileSet
	file   *ast.File
	src    []byte
	opts   Options
	result *Result
	// seen holds every directive comment attached to a declaration.
	seen map[*ast.Comment]bool
}

func (s *fileScanner) scan() error {
	s.seen = make(map[*ast.Comment]bool)
	imports := s.imports()

	for _, decl := range s.file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if err := s.scanFunc(d, imports); err != nil {
				return err
			}
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(d.Specs) == 1 {
					doc = d.Doc
				}
				if err := s.scanType(ts, doc); err != nil {
					return err
				}
			}
		}
	}

	// A directive that is not attached to any declaration we understand is
	// an error rather than being silently ignored.
	for _, cg := range s.file.Comments {
		for _, c := range cg.List {
			if isDirective(c.Text) && !s.seen[c] {
				return s.errorf(c, "not attached to an interface or func declaration")
			}
		}
	}
	return nil
}

func (s *fileScanner) scanFunc(fn *ast.FuncDecl, imports []string) error {
	for _, c := range s.directives(fn.Doc) {
		verb, args := splitDirective(c.Text)
		if verb != commandDirective {
			return s.errorf(c, "only %q is allowed on a func", commandDirective)
		}
		code, name, err := parseCommandArgs(args)
		if err != nil {
			return s.errorf(c, "%v", err)
		}
		s.result.Commands = append(s.result.Commands, collect.Declaration{
			Source:  s.text(fn.Doc.Pos(), fn.End()),
			Code:    code,
			Name:    name,
			Imports: imports,
			Origin:  s.position(fn.Pos()),
		})
	}
	return nil
}

func (s *fileScanner) scanType(ts *ast.TypeSpec, doc *ast.CommentGroup) error {
	iface, isIface := ts.Type.(*ast.InterfaceType)

	for _, c := range s.directives(doc) {
		if verb, _ := splitDirective(c.Text); verb != interfaceDirective {
			return s.errorf(c, "only %q is allowed on a type", interfaceDirective)
		}
		if !isIface {
			return s.errorf(c, "%s is not an interface type", ts.Name.Name)
		}
		m, err := signature.SelectMethod(iface, s.opts.Method)
		if err != nil {
			return s.errorf(c, "%v", err)
		}
		if err := s.setInterface(c, ts, m); err != nil {
			return err
		}
	}
	if !isIface {
		return nil
	}

	for _, field := range iface.Methods.List {
		for _, c := range s.directives(field.Doc) {
			if verb, _ := splitDirective(c.Text); verb != interfaceDirective {
				return s.errorf(c, "only %q is allowed on an interface method", interfaceDirective)
			}
			ft, ok := field.Type.(*ast.FuncType)
			if !ok || len(field.Names) != 1 {
				return s.errorf(c, "must annotate a single method")
			}
			if err := s.setInterface(c, ts, &signature.Method{Name: field.Names[0].Name, Type: ft}); err != nil {
				return err
			}
		}
	}

	// Fall back to the configured interface name.
	if s.result.Interface == nil && s.opts.Interface != "" && ts.Name.Name == s.opts.Interface {
		m, err := signature.SelectMethod(iface, s.opts.Method)
		if err != nil {
			return fmt.Errorf("%s: %w", s.position(ts.Pos()), err)
		}
		s.result.Interface = &Interface{
			Package:  s.file.Name.Name,
			TypeName: ts.Name.Name,
			Method:   m,
			Origin:   s.position(ts.Pos()),
		}
	}
	return nil
}

func (s *fileScanner) setInterface(c *ast.Comment, ts *ast.TypeSpec, m *signature.Method) error {
	if prev := s.result.Interface; prev != nil && prev.annotated {
		return s.errorf(c, "interface already declared at %s", prev.Origin)
	}
	s.result.Interface = &Interface{
		Package:   s.file.Name.Name,
		TypeName:  ts.Name.Name,
		Method:    m,
		Origin:    s.position(c.Pos()),
		annotated: true,
	}
	return nil
}

// directives returns the directive comments of doc and marks them seen.
func (s *fileScanner) directives(doc *ast.CommentGroup) []*ast.Comment {
	if doc == nil {
		return nil
	}
	var out []*ast.Comment
	for _, c := range doc.List {
		if isDirective(c.Text) {
			s.seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// imports renders the file's import specs in Go syntax.
func (s *fileScanner) imports() []string {
	var out []string
	for _, spec := range s.file.Imports {
		text := spec.Path.Value
		if spec.Name != nil {
			text = spec.Name.Name + " " + text
		}
		out = append(out, text)
	}
	return out
}

func (s *fileScanner) text(from, to token.Pos) string {
	f := s.fset.File(from)
	return string(s.src[f.Offset(from):f.Offset(to)])
}

func (s *fileScanner) position(pos token.Pos) string {
	p := s.fset.Position(pos)
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

func (s *fileScanner) errorf(c *ast.Comment, format string, args ...any) error {
	return &DirectiveError{
		Pos:     s.position(c.Pos()),
		Comment: c.Text,
		Msg:     fmt.Sprintf(format, args...),
	}
}

func isDirective(text string) bool {
	return strings.HasPrefix(text, directivePrefix)
}

func splitDirective(text string) (verb, args string) {
	rest := strings.TrimPrefix(text, directivePrefix)
	verb, args, _ = strings.Cut(rest, " ")
	return verb, strings.TrimSpace(args)
}

// parseCommandArgs parses `<code> "<name>"`.
func parseCommandArgs(args string) (uint64, string, error) {
	codeText, nameText, ok := strings.Cut(args, " ")
	if !ok {
		return 0, "", errors.New(`expected <code> "<name>"`)
	}
	code, err := strconv.ParseUint(codeText, 0, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid code %q: must be an unsigned 64-bit integer", codeText)
	}
	name, err := strconv.Unquote(strings.TrimSpace(nameText))
	if err != nil {
		return 0, "", fmt.Errorf("invalid name %s: must be a quoted string", nameText)
	}
	return code, name, nil
}
