package testutil

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// TypeCheck type-checks files (name to source) as one package and returns
// the first type error. Every file must parse.
func TypeCheck(t *testing.T, files map[string]string) error {
	t.Helper()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	fset := token.NewFileSet()
	parsed := make([]*ast.File, 0, len(names))
	for _, name := range names {
		f, err := parser.ParseFile(fset, name, files[name], 0)
		require.NoError(t, err, "%s:\n%s", name, files[name])
		parsed = append(parsed, f)
	}

	conf := types.Config{Importer: importer.Default()}
	_, err := conf.Check(parsed[0].Name.Name, fset, parsed, nil)
	return err
}
