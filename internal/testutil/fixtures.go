package testutil

// InterfaceSource declares the Command interface with an annotated method.
const InterfaceSource = `package commands

// Command is implemented by every command.
type Command interface {
	//cmdgen:interface
	Execute() error
}
`

// HandlersSource declares the Nope (0x01) and Panic (0xFF) handlers.
const HandlersSource = `//go:build cmdgen

package commands

import "fmt"

// executeNope does nothing.
//cmdgen:command 0x01 "Nope"
func executeNope() error {
	fmt.Println("Nope!")
	return nil
}

//cmdgen:command 0xFF "Panic"
func executePanic() error {
	panic("Panic!")
}
`

// Project returns the files of a minimal cmdgen project: the interface,
// the handlers and a configuration file.
func Project() map[string]string {
	return map[string]string{
		"cmdgen.hcl": `dispatch {
  type = "WgseCommands"
}
`,
		"commands.go": InterfaceSource,
		"handlers.go": HandlersSource,
	}
}
