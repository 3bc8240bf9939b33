package signature

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// filePrefix turns a bare declaration into a parseable file.
const filePrefix = "package p\n\n"

// Decl is one parsed func declaration together with the source it came
// from.
type Decl struct {
	Fset *token.FileSet
	File *ast.File
	Func *ast.FuncDecl
	src  string
}

// ParseDecl parses src, which must contain exactly one func declaration.
// Leading doc comments and directives are allowed and ignored for the
// purpose of the signature.
func ParseDecl(src string) (*Decl, error) {
	full := filePrefix + src
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "declaration.go", full, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("failed to parse declaration: %w", err)
	}
	if len(file.Decls) != 1 {
		return nil, fmt.Errorf("expected exactly one declaration, found %d", len(file.Decls))
	}
	fn, ok := file.Decls[0].(*ast.FuncDecl)
	if !ok {
		return nil, errors.New("declaration is not a func")
	}
	return &Decl{Fset: fset, File: file, Func: fn, src: full}, nil
}

// Name returns the declared function name.
func (d *Decl) Name() string {
	return d.Func.Name.Name
}

// HasBody reports whether the declaration has a body.
func (d *Decl) HasBody() bool {
	return d.Func.Body != nil
}

// Text returns the declaration exactly as written, doc comment included.
func (d *Decl) Text() string {
	start := d.Func.Pos()
	if d.Func.Doc != nil {
		start = d.Func.Doc.Pos()
	}
	return d.slice(start, d.Func.End())
}

// WithReceiver returns the declaration starting at the func keyword with
// "(recv)" inserted as its receiver. Doc comments and directives are not
// part of the result. The declaration must not already have a receiver.
func (d *Decl) WithReceiver(recv string) (string, error) {
	if d.Func.Recv != nil {
		return "", errors.New("declaration already has a receiver")
	}
	funcKw := d.Func.Type.Func
	afterKw := funcKw + token.Pos(len(token.FUNC.String()))
	return "func (" + recv + ")" + d.slice(afterKw, d.Func.End()), nil
}

func (d *Decl) slice(from, to token.Pos) string {
	f := d.Fset.File(from)
	return d.src[f.Offset(from):f.Offset(to)]
}

// Method is one method of an interface type.
type Method struct {
	Name string
	Type *ast.FuncType
}

// ParseMethod parses a single interface method spec such as
// "Execute(ctx context.Context) error".
func ParseMethod(src string) (*Method, error) {
	methods, err := parseInterfaceBody("type _ interface {\n" + src + "\n}")
	if err != nil {
		return nil, err
	}
	if len(methods) != 1 {
		return nil, fmt.Errorf("expected exactly one interface method, found %d", len(methods))
	}
	return methods[0], nil
}

// ParseInterface parses a "type X interface { ... }" declaration and returns
// the method called name. An empty name selects the interface's only method.
func ParseInterface(src, name string) (*Method, error) {
	methods, err := parseInterfaceBody(src)
	if err != nil {
		return nil, err
	}
	return selectMethod(methods, name)
}

// InterfaceMethods returns the explicit methods of iface.
func InterfaceMethods(iface *ast.InterfaceType) ([]*Method, error) {
	var methods []*Method
	for _, field := range iface.Methods.List {
		ft, ok := field.Type.(*ast.FuncType)
		if !ok {
			// Embedded interface or type constraint element.
			return nil, fmt.Errorf("interface embeds %s; only explicit methods are supported", exprString(field.Type))
		}
		for _, n := range field.Names {
			methods = append(methods, &Method{Name: n.Name, Type: ft})
		}
	}
	return methods, nil
}

// SelectMethod picks the method called name from iface, or its only method
// when name is empty.
func SelectMethod(iface *ast.InterfaceType, name string) (*Method, error) {
	methods, err := InterfaceMethods(iface)
	if err != nil {
		return nil, err
	}
	return selectMethod(methods, name)
}

func selectMethod(methods []*Method, name string) (*Method, error) {
	if name == "" {
		if len(methods) != 1 {
			return nil, fmt.Errorf("interface has %d methods; a method name is required", len(methods))
		}
		return methods[0], nil
	}
	for _, m := range methods {
		if m.Name == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("interface has no method %q", name)
}

func parseInterfaceBody(src string) ([]*Method, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "interface.go", filePrefix+src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("failed to parse interface: %w", err)
	}

	var iface *ast.InterfaceType
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			if it, ok := spec.(*ast.TypeSpec).Type.(*ast.InterfaceType); ok {
				if iface != nil {
					return nil, errors.New("source declares more than one interface")
				}
				iface = it
			}
		}
	}
	if iface == nil {
		return nil, errors.New("source declares no interface type")
	}
	return InterfaceMethods(iface)
}

// ParseCanonical parses a canonical signature string back into its func
// type.
func ParseCanonical(canonical string) (*ast.FuncType, error) {
	if !strings.HasPrefix(canonical, canonicalPrefix) {
		return nil, fmt.Errorf("not a canonical signature: %q", canonical)
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "canonical.go", filePrefix+canonical+" {}", parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("failed to parse canonical signature: %w", err)
	}
	if len(file.Decls) != 1 {
		return nil, fmt.Errorf("not a canonical signature: %q", canonical)
	}
	fn, ok := file.Decls[0].(*ast.FuncDecl)
	if !ok {
		return nil, fmt.Errorf("not a canonical signature: %q", canonical)
	}
	return fn.Type, nil
}
