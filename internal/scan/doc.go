// Package scan finds cmdgen directives in Go source files.
//
// Two directives are recognized, each written as a line comment in a doc
// comment with no space after the slashes:
//
//	//cmdgen:interface
//
// marks the interface method whose signature every command must match. It
// may annotate the method itself or the interface type, in which case the
// configured method (or the interface's only method) is used.
//
//	//cmdgen:command <code> "<name>"
//
// marks a func declaration as the handler of the named command. The code
// accepts Go integer literal syntax (255, 0xFF, 0o377, 0b1111_1111).
//
// Files are parsed regardless of build constraints, so handler files are
// usually kept out of the ordinary build with a "//go:build cmdgen" line.
package scan
