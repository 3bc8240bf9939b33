// Package commands holds the commands understood by the example device.
//
// The handlers live in handlers.go, which is excluded from normal builds.
// Run `go generate` after changing them to refresh commands_gen.go and
// commands_retained_gen.go, which keeps the handlers callable during
// development. Release builds set CMDGEN_RELEASE=1 and drop the latter.
package commands

import "io"

//go:generate go run github.com/MiracleSNeko/dapper-alco-boost/cmd/cmdgen build

// Command is implemented by every command and by WgseCommands.
type Command interface {
	// Execute runs the command, writing its response to w.
	//cmdgen:interface
	Execute(w io.Writer) error
}
