//go:build cmdgen

package commands

import (
	"fmt"
	"io"
)

// executeNope acknowledges the request and does nothing else.
//
//cmdgen:command 0x01 "Nope"
func executeNope(w io.Writer) error {
	_, err := fmt.Fprintln(w, "Nope!")
	return err
}

//cmdgen:command 0x10 "Hello World"
func executeHelloWorld(w io.Writer) error {
	_, err := io.WriteString(w, "Hello, World!\n")
	return err
}

// executePanic aborts the program.
//
//cmdgen:command 0xFF "Panic"
func executePanic(io.Writer) error {
	panic("Panic!")
}
