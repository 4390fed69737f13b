package main

import (
	"os"
	"path/filepath"
	"strings"

	core "pcf.io/pcf-hpc/core"
	logger "pcf.io/pcf-hpc/logger"
)

type ScriptCommand struct {
	Help      bool           `short:"h" long:"help" description:"Show this help message"`
	Scheduler SchedulerFlags `group:"Scheduler Options"`
	Run       bool           `short:"r" long:"run" description:"submit the script, wait for it and check its accounting record"`
	Name      string         `short:"J" long:"job-name" description:"job name (defaults to the script file name)"`
	Args      struct {
		JobScript string `positional-arg-name:"jobscript" description:"existing job script"`
	} `positional-args:"true" required:"1"`
}

var scriptCommand ScriptCommand

func (x *ScriptCommand) Execute(args []string) error {
	if x.Help {
		return createHelpErr()
	}
	d, err := core.LookupDialect(x.Scheduler.Scheduler)
	if err != nil {
		return err
	}
	f, err := os.Open(x.Args.JobScript)
	if err != nil {
		return err
	}
	defer f.Close()
	script, err := core.ParseScript(d, f)
	if err != nil {
		return err
	}
	if len(script.Unsupported) > 0 {
		logger.WarningPrintf("%d unsupported directives: %s", len(script.Unsupported), strings.Join(script.Unsupported, " | "))
	}
	// the rewritten script must not overwrite the original
	name := x.Name
	if len(name) == 0 {
		name = filepath.Base(x.Args.JobScript) + "." + d.Name
	}
	job := script.Job(d, name)
	job.Dir = filepath.Dir(x.Args.JobScript)
	if !x.Run {
		return job.PrintCmd(os.Stdout)
	}
	ctx, cancel := commandContext(0)
	defer cancel()
	if err := job.Submit(ctx, runner); err != nil {
		return err
	}
	if err := job.Monitor(ctx, runner, sleep, core.DefaultPollInterval); err != nil {
		return err
	}
	return job.CheckJob(ctx, runner)
}

func init() {
	parser.AddCommand("script",
		"Read an existing job script",
		"Parse the directives of an existing job script, report unsupported ones and print or run the normalized script",
		&scriptCommand)
}
