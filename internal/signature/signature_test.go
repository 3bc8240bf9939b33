package signature

import (
	"go/ast"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canonicalOf(t *testing.T, src string) string {
	t.Helper()
	d, err := ParseDecl(src)
	require.NoError(t, err)
	return CanonicalDecl(d)
}

func TestCanonical(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "no params",
			src:  "func executeNope() error { return nil }",
			want: "func (_ _) _() error",
		},
		{
			name: "no results",
			src:  "func run(ctx context.Context) {}",
			want: "func (_ _) _(_ context.Context)",
		},
		{
			name: "grouped params and named results",
			src:  "func h(a, b int, s ...string) (n int, err error) { return }",
			want: "func (_ _) _(_ int, _ int, _ ...string) (int, error)",
		},
		{
			name: "unnamed params",
			src:  "func h(int, []byte) error { return nil }",
			want: "func (_ _) _(_ int, _ []byte) error",
		},
		{
			name: "nested func type names are erased",
			src:  "func h(cb func(x int) (y error)) {}",
			want: "func (_ _) _(_ func(int) error)",
		},
		{
			name: "nested grouped params are expanded",
			src:  "func h(m map[string]func(a, b int)) {}",
			want: "func (_ _) _(_ map[string]func(int, int))",
		},
		{
			name: "redundant parentheses",
			src:  "func h(a (int), b *(string)) {}",
			want: "func (_ _) _(_ int, _ *string)",
		},
		{
			name: "type parameters",
			src:  "func h[T any](v T) T { return v }",
			want: "func (_ _) _[_ any](_ T) T",
		},
		{
			name: "doc and directives are ignored",
			src:  "// Panic aborts.\n//cmdgen:command 0xFF \"Panic\"\nfunc Panic() error { panic(1) }",
			want: "func (_ _) _() error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, canonicalOf(t, tc.src))
		})
	}
}

func TestCanonical_NameInsensitive(t *testing.T) {
	a := canonicalOf(t, "func first(ctx context.Context, payload []byte) (out string, err error) { return }")
	b := canonicalOf(t, "func Second(c context.Context, p []byte) (string, error) { return \"\", nil }")
	assert.Equal(t, a, b)
}

func TestCanonical_Deterministic(t *testing.T) {
	src := "func h(\n\ta int, // first\n\tb map[string]func(x, y int) error,\n) error {\n\treturn nil\n}"
	first := canonicalOf(t, src)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, canonicalOf(t, src))
	}
	assert.Equal(t, "func (_ _) _(_ int, _ map[string]func(int, int) error) error", first)
}

func TestCanonical_StructuralDifferences(t *testing.T) {
	base := canonicalOf(t, "func h(a int) error { return nil }")
	assert.NotEqual(t, base, canonicalOf(t, "func h(a int, b int) error { return nil }"), "extra param")
	assert.NotEqual(t, base, canonicalOf(t, "func h(a int) string { return \"\" }"), "return type")
	assert.NotEqual(t, base, canonicalOf(t, "func h(a int64) error { return nil }"), "param type")
	assert.NotEqual(t, base, canonicalOf(t, "func h(a ...int) error { return nil }"), "variadic")
}

func TestCanonical_DoesNotMutateInput(t *testing.T) {
	d, err := ParseDecl("func h(cb func(x int) error) {}")
	require.NoError(t, err)
	CanonicalDecl(d)
	assert.Equal(t, "func h(cb func(x int) error) {}", d.Text())
	nested := d.Func.Type.Params.List[0].Type.(*ast.FuncType)
	require.Len(t, nested.Params.List[0].Names, 1)
	assert.Equal(t, "x", nested.Params.List[0].Names[0].Name)
}

func TestMethodMatchesHandler(t *testing.T) {
	m, err := ParseMethod("Execute(ctx context.Context, args ...string) error")
	require.NoError(t, err)
	assert.Equal(t, "Execute", m.Name)
	assert.Equal(t,
		canonicalOf(t, "func run(c context.Context, a ...string) error { return nil }"),
		Canonical(m.Type),
	)
}

func TestParseMethod_Errors(t *testing.T) {
	_, err := ParseMethod("Execute() error\nOther()")
	require.Error(t, err)

	_, err = ParseMethod("fmt.Stringer")
	require.Error(t, err)

	_, err = ParseMethod("Execute(")
	require.Error(t, err)
}

func TestParseInterface(t *testing.T) {
	src := `// WgseCommandInterface is implemented by every command.
type WgseCommandInterface interface {
	// Execute runs the command.
	Execute() error
}`
	m, err := ParseInterface(src, "")
	require.NoError(t, err)
	assert.Equal(t, "Execute", m.Name)
	assert.Equal(t, "func (_ _) _() error", Canonical(m.Type))

	multi := "type I interface {\n\tA() error\n\tB(int)\n}"
	_, err = ParseInterface(multi, "")
	require.ErrorContains(t, err, "method name is required")

	m, err = ParseInterface(multi, "B")
	require.NoError(t, err)
	assert.Equal(t, "func (_ _) _(_ int)", Canonical(m.Type))

	_, err = ParseInterface(multi, "C")
	require.ErrorContains(t, err, `no method "C"`)

	_, err = ParseInterface("type S struct{}", "")
	require.ErrorContains(t, err, "no interface")
}

func TestParseDecl_Errors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"syntax error", "func broken( {"},
		{"not a func", "var x = 1"},
		{"two funcs", "func a() {}\nfunc b() {}"},
		{"empty", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDecl(tc.src)
			require.Error(t, err)
		})
	}
}

func TestDeclText(t *testing.T) {
	src := "// Nope does nothing.\n//cmdgen:command 1 \"Nope\"\nfunc executeNope() error {\n\t// say it\n\tfmt.Println(\"Nope!\")\n\treturn nil\n}"
	d, err := ParseDecl(src)
	require.NoError(t, err)
	assert.Equal(t, "executeNope", d.Name())
	assert.True(t, d.HasBody())
	assert.Equal(t, src, d.Text())

	withRecv, err := d.WithReceiver("Self")
	require.NoError(t, err)
	assert.Equal(t, "func (Self) executeNope() error {\n\t// say it\n\tfmt.Println(\"Nope!\")\n\treturn nil\n}", withRecv)

	again, err := ParseDecl(withRecv)
	require.NoError(t, err)
	require.NotNil(t, again.Func.Recv)
	assert.Equal(t, "func (_ _) _() error", CanonicalDecl(again))
}

func TestWithReceiver_RejectsMethods(t *testing.T) {
	d, err := ParseDecl("func (c Cmd) Execute() error { return nil }")
	require.NoError(t, err)
	_, err = d.WithReceiver("Self")
	require.Error(t, err)
}

func TestParseCanonical(t *testing.T) {
	canonical := "func (_ _) _(_ context.Context, _ ...string) (int, error)"
	ft, err := ParseCanonical(canonical)
	require.NoError(t, err)
	assert.Equal(t, canonical, Canonical(ft))
	assert.Equal(t, []string{"context.Context", "...string"}, Types(ft.Params))
	assert.Equal(t, []string{"int", "error"}, Types(ft.Results))

	_, err = ParseCanonical("Execute() error")
	require.Error(t, err)
}
