package generate

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/printer"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MiracleSNeko/dapper-alco-boost/internal/manifest"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/naming"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/signature"
)

// variant is one command as it appears in the generated file.
type variant struct {
	Name  string
	Key   string
	Code  uint64
	Type  string
	Const string
	Tag   string
	// Method is the printed method declaration implementing the interface.
	Method string
}

// buildVariant turns a stored record into a variant of the dispatch type.
func buildVariant(rec *manifest.CommandRecord, opts Options, iface string) (*variant, error) {
	v := newVariant(rec, opts)
	key := v.Key

	decl, err := signature.ParseDecl(rec.Raw)
	if err != nil {
		return nil, &MalformedBodyError{Key: key, Err: err}
	}
	fn := decl.Func
	if fn.Recv == nil || len(fn.Recv.List) != 1 {
		return nil, &MalformedBodyError{Key: key, Err: errors.New("stored declaration has no receiver")}
	}
	if fn.Body == nil {
		return nil, &MalformedBodyError{Key: key, Err: errors.New("stored declaration has no body")}
	}

	if opts.Strictness == manifest.Strict {
		if found := signature.CanonicalDecl(decl); found != iface {
			return nil, &StaleRecordError{Name: rec.Name, Expected: iface, Found: found}
		}
	}

	// Give the declaration the dispatch method name and the variant as its
	// receiver.
	fn.Doc = nil
	fn.Name = &ast.Ident{NamePos: fn.Name.Pos(), Name: opts.Method}
	recv := fn.Recv.List[0]
	recv.Type = &ast.Ident{NamePos: recv.Type.Pos(), Name: v.Type}

	var comments []*ast.CommentGroup
	for _, cg := range decl.File.Comments {
		if cg.Pos() >= fn.Pos() && cg.End() <= fn.End() {
			comments = append(comments, cg)
		}
	}

	var buf bytes.Buffer
	cfg := printer.Config{Mode: printer.UseSpaces | printer.TabIndent, Tabwidth: 8}
	if err := cfg.Fprint(&buf, decl.Fset, &printer.CommentedNode{Node: fn, Comments: comments}); err != nil {
		return nil, &MalformedBodyError{Key: key, Err: err}
	}
	v.Method = buf.String()
	return v, nil
}

// newVariant derives the generated identifiers of rec without touching its
// body.
func newVariant(rec *manifest.CommandRecord, opts Options) *variant {
	v := &variant{
		Name:  rec.Name,
		Key:   naming.Snake(rec.Name),
		Code:  rec.Code,
		Type:  naming.UpperCamel(rec.Name),
		Const: naming.UpperSnake(rec.Name),
	}
	v.Tag = tagPrefix(opts.Dispatch) + v.Type
	return v
}

// orderVariants puts the default variant first, so the zero value of the
// dispatch type is the default, followed by the rest sorted by key.
func orderVariants(vs []*variant, defaultType string) {
	sort.SliceStable(vs, func(i, j int) bool {
		di, dj := vs[i].Type == defaultType, vs[j].Type == defaultType
		if di != dj {
			return di
		}
		return vs[i].Key < vs[j].Key
	})
}

// checkClosedSet enforces the strict-mode invariants.
func checkClosedSet(vs []*variant, opts Options) error {
	defaultType := naming.UpperCamel(opts.Default)
	hasDefault := false
	for _, v := range vs {
		if v.Type == defaultType {
			hasDefault = true
		}
	}
	if !hasDefault {
		return fmt.Errorf("%w: expected a command named %q", ErrDefaultMissing, opts.Default)
	}

	byCode := make(map[uint64][]string)
	for _, v := range vs {
		byCode[v.Code] = append(byCode[v.Code], v.Name)
	}
	for _, v := range vs {
		if names := byCode[v.Code]; len(names) > 1 {
			return &DuplicateCodeError{Code: v.Code, Names: names}
		}
	}

	// Every top-level identifier the file declares must be unique.
	idents := generatedIdents(vs, opts)
	for _, ident := range idents.order {
		if owners := idents.owners[ident]; len(owners) > 1 {
			return &DuplicateNameError{Ident: ident, Names: owners}
		}
	}
	return nil
}

// identSet records which declarations produce each identifier, in the order
// they were first reserved.
type identSet struct {
	owners map[string][]string
	order  []string
}

func (s *identSet) reserve(ident, owner string) {
	if _, ok := s.owners[ident]; !ok {
		s.order = append(s.order, ident)
	}
	s.owners[ident] = append(s.owners[ident], owner)
}

// generatedIdents collects the package-level identifiers the generated file
// declares or shares with the package. The interface counts when it lives
// in the same package.
func generatedIdents(vs []*variant, opts Options) *identSet {
	s := &identSet{owners: make(map[string][]string)}
	if opts.Interface != "" && !strings.Contains(opts.Interface, ".") {
		s.reserve(opts.Interface, "interface")
	}
	s.reserve(opts.Dispatch, "dispatch type")
	s.reserve("Default"+opts.Dispatch, "default constructor")
	s.reserve(opts.Dispatch+"FromCode", "code lookup")
	s.reserve(opts.Dispatch+"Values", "value list")
	s.reserve(tagPrefix(opts.Dispatch)+"Table", "code table")
	for _, v := range vs {
		s.reserve(v.Type, v.Name)
		s.reserve(v.Const, v.Name)
		s.reserve(v.Tag, v.Name)
	}
	return s
}

// tagPrefix returns the unexported prefix used for tag constants.
func tagPrefix(dispatch string) string {
	r, size := utf8.DecodeRuneInString(dispatch)
	return string(unicode.ToLower(r)) + dispatch[size:]
}

// mergeImports returns the sorted union of the records' import specs.
func mergeImports(records []*manifest.CommandRecord) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range records {
		for _, spec := range rec.Imports {
			spec = strings.TrimSpace(spec)
			if spec == "" || seen[spec] {
				continue
			}
			seen[spec] = true
			out = append(out, spec)
		}
	}
	sort.Strings(out)
	return out
}
