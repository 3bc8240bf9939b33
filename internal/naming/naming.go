// Package naming converts free-form command names into the identifier forms
// used by the manifest store and the generated dispatcher.
//
// Word boundaries come from strcase: spaces, '_', '-' and '.', lower to
// upper transitions, letter/digit transitions and the tail of an acronym
// ("HTTPServer" splits into "HTTP" and "Server"). The same split drives
// every output form, so "Nope", "nope" and "NOPE" all map to the storage key
// "nope". Case mapping of the words is Unicode-aware.
package naming

import (
	"go/token"
	"strings"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Words splits s into its lower-cased constituent words.
func Words(s string) []string {
	snake := cases.Lower(language.Und).String(strcase.ToSnake(s))
	return strings.FieldsFunc(snake, func(r rune) bool { return r == '_' })
}

// Snake returns the lower_snake form of s. It is the storage key of a
// command record.
func Snake(s string) string {
	return strings.Join(Words(s), "_")
}

// UpperSnake returns the UPPER_SNAKE form of s, used for code constants.
func UpperSnake(s string) string {
	return cases.Upper(language.Und).String(Snake(s))
}

// UpperCamel returns the UpperCamel form of s, used for variant types.
func UpperCamel(s string) string {
	title := cases.Title(language.Und)
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// IsExportedIdentifier reports whether s can be used verbatim as an exported
// Go identifier.
func IsExportedIdentifier(s string) bool {
	return token.IsIdentifier(s) && token.IsExported(s)
}
