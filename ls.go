package main

import (
	"fmt"
	"strings"

	core "pcf.io/pcf-hpc/core"
)

type LsCommand struct {
	Help bool `short:"h" long:"help" description:"Show this help message"`
	Args struct {
		Pattern []string `positional-arg-name:"pattern" description:"shell pattern or command"`
	} `positional-args:"true" required:"1"`
}

var lsCommand LsCommand

func (x *LsCommand) Execute(args []string) error {
	if x.Help {
		return createHelpErr()
	}
	ctx, cancel := commandContext(0)
	defer cancel()
	files, err := core.ShellListFiles(ctx, runner, strings.Join(x.Args.Pattern, " "))
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Println(f)
	}
	return nil
}

func init() {
	parser.AddCommand("ls",
		"List files",
		"List files in the current directory according to a unix-like pattern",
		&lsCommand)
}
