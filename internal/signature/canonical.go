package signature

import (
	"go/ast"
	"go/parser"
	"go/types"
	"strings"

	"golang.org/x/tools/go/ast/astutil"
)

const (
	placeholder     = "_"
	canonicalPrefix = "func (_ _) _"
)

// Canonical renders ft in canonical form behind the synthetic receiver.
func Canonical(ft *ast.FuncType) string {
	var b strings.Builder
	b.WriteString(canonicalPrefix)

	if ft.TypeParams != nil && len(ft.TypeParams.List) > 0 {
		b.WriteByte('[')
		b.WriteString(strings.Join(namedTypes(ft.TypeParams), ", "))
		b.WriteByte(']')
	}

	b.WriteByte('(')
	b.WriteString(strings.Join(namedTypes(ft.Params), ", "))
	b.WriteByte(')')

	results := Types(ft.Results)
	switch len(results) {
	case 0:
	case 1:
		b.WriteByte(' ')
		b.WriteString(results[0])
	default:
		b.WriteString(" (")
		b.WriteString(strings.Join(results, ", "))
		b.WriteByte(')')
	}
	return b.String()
}

// CanonicalDecl canonicalizes the signature of a parsed declaration.
func CanonicalDecl(d *Decl) string {
	return Canonical(d.Func.Type)
}

// Types expands a field list into one normalized type string per entry, so
// "a, b int" yields two entries.
func Types(fields *ast.FieldList) []string {
	if fields == nil {
		return nil
	}
	var out []string
	for _, field := range fields.List {
		typ := normalizeType(field.Type)
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			out = append(out, typ)
		}
	}
	return out
}

func namedTypes(fields *ast.FieldList) []string {
	entries := Types(fields)
	for i, t := range entries {
		entries[i] = placeholder + " " + t
	}
	return entries
}

// normalizeType renders a type expression on one line with the names of
// nested func types removed and redundant parentheses dropped.
func normalizeType(expr ast.Expr) string {
	if e, ok := expr.(*ast.Ellipsis); ok {
		return "..." + normalizeType(e.Elt)
	}
	// Work on a private copy so the caller's tree is never rewritten.
	fresh, err := parser.ParseExpr(exprString(expr))
	if err != nil {
		return exprString(expr)
	}
	fresh = astutil.Apply(fresh, nil, func(c *astutil.Cursor) bool {
		switch n := c.Node().(type) {
		case *ast.ParenExpr:
			c.Replace(n.X)
		case *ast.FuncType:
			n.Params = unnamed(n.Params)
			n.Results = unnamed(n.Results)
		}
		return true
	}).(ast.Expr)
	return exprString(fresh)
}

// unnamed returns a field list with one anonymous field per entry.
func unnamed(fields *ast.FieldList) *ast.FieldList {
	if fields == nil {
		return nil
	}
	out := &ast.FieldList{}
	for _, field := range fields.List {
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			out.List = append(out.List, &ast.Field{Type: field.Type})
		}
	}
	return out
}

func exprString(expr ast.Expr) string {
	return types.ExprString(expr)
}
