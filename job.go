package main

import (
	"fmt"
	"os"
	"time"

	core "pcf.io/pcf-hpc/core"
)

type SchedulerFlags struct {
	Scheduler string `short:"s" long:"scheduler" description:"scheduler flavour (bridge, slurm)" default:"bridge"`
}

type SubmitCommand struct {
	Help     bool          `short:"h" long:"help" description:"Show this help message"`
	Pipeline PipelineFlags `group:"Pipeline Options"`
}

type PrintCommand struct {
	Help     bool          `short:"h" long:"help" description:"Show this help message"`
	Pipeline PipelineFlags `group:"Pipeline Options"`
}

type MonitorCommand struct {
	Help      bool           `short:"h" long:"help" description:"Show this help message"`
	Scheduler SchedulerFlags `group:"Scheduler Options"`
	Interval  time.Duration  `short:"i" long:"interval" description:"time between two queue polls" default:"10s"`
	Timeout   time.Duration  `short:"t" long:"timeout" description:"give up after this long (0 waits forever)"`
	Args      struct {
		JobID string `positional-arg-name:"id" description:"job id"`
	} `positional-args:"true" required:"1"`
}

type CheckCommand struct {
	Help      bool           `short:"h" long:"help" description:"Show this help message"`
	Scheduler SchedulerFlags `group:"Scheduler Options"`
	Args      struct {
		JobID string `positional-arg-name:"id" description:"job id"`
	} `positional-args:"true" required:"1"`
}

var (
	submitCommand  SubmitCommand
	printCommand   PrintCommand
	monitorCommand MonitorCommand
	checkCommand   CheckCommand
)

func (x *SubmitCommand) Execute(args []string) error {
	if x.Help {
		return createHelpErr()
	}
	jobs, err := loadJobs(x.Pipeline)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(0)
	defer cancel()
	for _, job := range jobs {
		if err := job.Submit(ctx, runner); err != nil {
			return err
		}
		fmt.Printf("%s %s\n", job.Name, job.ID)
	}
	return nil
}

func (x *PrintCommand) Execute(args []string) error {
	if x.Help {
		return createHelpErr()
	}
	jobs, err := loadJobs(x.Pipeline)
	if err != nil {
		return err
	}
	for _, job := range jobs {
		if err := job.PrintCmd(os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

func (x *MonitorCommand) Execute(args []string) error {
	if x.Help {
		return createHelpErr()
	}
	d, err := core.LookupDialect(x.Scheduler.Scheduler)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(x.Timeout)
	defer cancel()
	job := core.NewSubmittedJob(d, x.Args.JobID)
	return job.Monitor(ctx, runner, sleep, x.Interval)
}

func (x *CheckCommand) Execute(args []string) error {
	if x.Help {
		return createHelpErr()
	}
	d, err := core.LookupDialect(x.Scheduler.Scheduler)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(0)
	defer cancel()
	return core.NewSubmittedJob(d, x.Args.JobID).CheckJob(ctx, runner)
}

func init() {
	parser.AddCommand("submit",
		"Submit pipeline jobs",
		"Write the batch script of each job and submit it without waiting",
		&submitCommand)
	parser.AddCommand("print",
		"Print job scripts",
		"Print the name and batch script of each pipeline job",
		&printCommand)
	parser.AddCommand("monitor",
		"Wait for a job",
		"Poll the cluster queue until the job is no longer listed",
		&monitorCommand)
	parser.AddCommand("check",
		"Check a finished job",
		"Look the job up in the accounting records and fail if it was cancelled, failed, timed out or lost its node",
		&checkCommand)
}
