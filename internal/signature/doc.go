// Package signature parses handler and interface declarations from Go source
// text and reduces their signatures to a canonical, comparable string.
//
// The canonical form erases everything cosmetic about a signature: doc
// comments and directives, the function name, parameter names, result names,
// grouping of parameters that share a type, redundant parentheses and the
// names inside nested function types. What is left is the ordered list of
// parameter and result types, rendered on one line behind a synthetic
// receiver that stands for the command instance:
//
//	func (_ _) _(_ context.Context, _ ...string) error
//
// Two declarations are signature-equivalent iff their canonical strings are
// equal. Canonical is pure: the same declaration text always yields the same
// string.
package signature
