// Command example runs one command of the example device by code.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/MiracleSNeko/dapper-alco-boost/example/commands"
)

func main() {
	code := flag.Uint64("code", commands.DefaultWgseCommands().Code(), "Code of the command to run.")
	list := flag.Bool("list", false, "List the known commands and exit.")
	flag.Parse()

	if *list {
		for _, c := range commands.WgseCommandsValues() {
			fmt.Printf("%#04x\t%s\n", c.Code(), c)
		}
		return
	}

	cmd, ok := commands.WgseCommandsFromCode(*code)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command code %#x\n", *code)
		os.Exit(2)
	}
	if err := cmd.Execute(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
