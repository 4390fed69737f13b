package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	_ "pcf.io/pcf-hpc/bridge"
	logger "pcf.io/pcf-hpc/logger"
	_ "pcf.io/pcf-hpc/slurm"
)

var parser = flags.NewNamedParser("pcf", flags.PassDoubleDash)

func printHelp(parser *flags.Parser) {
	// Print help for active command
	if parser.Command.Active != nil {
		parser.Command = parser.Command.Active
	}
	var b bytes.Buffer
	parser.WriteHelp(&b)
	fmt.Println(b.String())
}

func createHelpErr() error {
	err := flags.Error{
		Type:    flags.ErrHelp,
		Message: "show help message",
	}
	return &err
}

func main() {
	_, err := parser.ParseArgs(os.Args[1:])
	if err == nil {
		os.Exit(0)
	}
	switch flagsErr := err.(type) {
	case *flags.Error:
		if flagsErr.Type == flags.ErrHelp ||
			flagsErr.Type == flags.ErrCommandRequired {
			printHelp(parser)
			os.Exit(0)
		} else if flagsErr.Type == flags.ErrUnknownCommand {
			if len(os.Args) > 1 {
				fmt.Printf("`%v' not supported\n\n\n", os.Args[1])
			}
			printHelp(parser)
		} else if flagsErr.Type == flags.ErrMarshal ||
			flagsErr.Type == flags.ErrRequired {
			fmt.Println("\n\nInvalid syntax")
			printHelp(parser)
		}
		fmt.Println(flagsErr.Error())
		os.Exit(1)

	default:
		// submission, listing and job failures all end the pipeline
		logger.ErrorPrintf("%v", err)
		os.Exit(1)
	}
}
