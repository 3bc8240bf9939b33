package generate

import "text/template"

// fileTemplate lays out the generated dispatch file. The output is passed
// through goimports afterwards, so spacing here only needs to be valid Go.
var fileTemplate = template.Must(template.New("dispatch").Parse(`// Code generated by cmdgen. DO NOT EDIT.

package {{.Package}}
{{if .Imports}}
import (
{{- range .Imports}}
	{{.}}
{{- end}}
)
{{end}}
// Command codes.
const (
{{- range .Variants}}
	{{.Const}} uint64 = {{.Code}}
{{- end}}
)
{{range .Variants}}
// {{.Type}} is the tag type of command {{printf "%q" .Name}}.
type {{.Type}} struct{}

{{.Method}}

// {{$.Dispatch}} returns the {{$.Dispatch}} value holding {{.Type}}.
func ({{.Type}}) {{$.Dispatch}}() {{$.Dispatch}} {
	return {{$.Dispatch}}{tag: {{.Tag}}}
}
{{end}}
// {{.Dispatch}} is the closed set of registered commands.
{{- if .HasDefault}} The zero value is
// the default command.
{{- end}}
type {{.Dispatch}} struct {
	tag int
}

const (
{{- range $i, $v := .Variants}}
	{{$v.Tag}}{{if eq $i 0}} = iota{{end}}
{{- end}}
)

var {{.Table}} = [...]struct {
	code uint64
	name string
}{
{{- range .Variants}}
	{{.Tag}}: { {{- .Const}}, {{printf "%q" .Name -}} },
{{- end}}
}

// Default{{.Dispatch}} returns the default command, {{.DefaultType}}.
func Default{{.Dispatch}}() {{.Dispatch}} {
	return {{.Dispatch}}{tag: {{.DefaultTag}}}
}

// {{.Dispatch}}FromCode returns the command registered with code.
func {{.Dispatch}}FromCode(code uint64) ({{.Dispatch}}, bool) {
	for tag, entry := range {{.Table}} {
		if entry.code == code {
			return {{.Dispatch}}{tag: tag}, true
		}
	}
	return {{.Dispatch}}{}, false
}

// {{.Dispatch}}Values returns every registered command.
func {{.Dispatch}}Values() []{{.Dispatch}} {
	values := make([]{{.Dispatch}}, len({{.Table}}))
	for tag := range {{.Table}} {
		values[tag] = {{.Dispatch}}{tag: tag}
	}
	return values
}

// Code returns the numeric code of the selected command.
func (c {{.Dispatch}}) Code() uint64 {
	return {{.Table}}[c.tag].code
}

// Name returns the registered name of the selected command.
func (c {{.Dispatch}}) Name() string {
	return {{.Table}}[c.tag].name
}

// String implements fmt.Stringer.
func (c {{.Dispatch}}) String() string {
	return c.Name()
}

// {{.Method}} runs the selected command.
func (c {{.Dispatch}}) {{.Method}}({{.Params}}){{.Results}} {
	switch c.tag {
{{- range .Variants}}
	case {{.Tag}}:
		{{if $.HasResults}}return {{end}}{{.Type}}{}.{{$.Method}}({{$.Args}})
{{- if not $.HasResults}}
		return
{{- end}}
{{- end}}
	}
	panic("invalid {{.Dispatch}} value")
}

var (
	_ {{.Interface}} = {{.Dispatch}}{}
{{- range .Variants}}
	_ {{$.Interface}} = {{.Type}}{}
{{- end}}
)
`))
