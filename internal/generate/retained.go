package generate

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/tools/imports"
)

// Retained renders the companion file that keeps collected handlers
// callable by the surrounding program while developing. decls are the
// original declarations as written, in order.
func Retained(pkg, filename string, importSpecs []string, decls []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("// Code generated by cmdgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n", pkg)
	if len(importSpecs) > 0 {
		buf.WriteString("\nimport (\n")
		for _, spec := range importSpecs {
			fmt.Fprintf(&buf, "\t%s\n", strings.TrimSpace(spec))
		}
		buf.WriteString(")\n")
	}
	for _, decl := range decls {
		buf.WriteString("\n")
		buf.WriteString(decl)
		buf.WriteString("\n")
	}

	out, err := imports.Process(filename, buf.Bytes(), processOptions)
	if err != nil {
		return nil, fmt.Errorf("retained declarations are not valid Go: %w", err)
	}
	return out, nil
}
