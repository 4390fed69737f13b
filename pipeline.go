package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	core "pcf.io/pcf-hpc/core"
	logger "pcf.io/pcf-hpc/logger"
)

type PipelineFlags struct {
	Config string `short:"c" long:"config" description:"pipeline file" default:"pipeline.yaml"`
	Job    string `short:"j" long:"job" description:"only use the job with this name"`
}

type RunCommand struct {
	Help     bool          `short:"h" long:"help" description:"Show this help message"`
	Pipeline PipelineFlags `group:"Pipeline Options"`
	Timeout  time.Duration `short:"t" long:"timeout" description:"give up on the pipeline after this long (0 waits forever)"`
}

var runCommand RunCommand

// runner and sleep are replaced in tests
var (
	runner core.Runner  = core.ExecRunner{}
	sleep  core.Sleeper = core.Sleep
)

// Interrupts cancel polling; a timeout is added when requested
func commandContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}
	tctx, cancel := context.WithTimeout(ctx, timeout)
	return tctx, func() {
		cancel()
		stop()
	}
}

func loadJobs(x PipelineFlags) ([]*core.Job, error) {
	pipeline, err := core.LoadPipeline(x.Config)
	if err != nil {
		return nil, err
	}
	jobs, err := pipeline.BuildJobs()
	if err != nil {
		return nil, err
	}
	if len(x.Job) == 0 {
		return jobs, nil
	}
	for _, job := range jobs {
		if job.Name == x.Job {
			return []*core.Job{job}, nil
		}
	}
	return nil, errors.New("pipeline: no job named " + x.Job + " in " + x.Config)
}

func (x *RunCommand) Execute(args []string) error {
	if x.Help {
		return createHelpErr()
	}
	pipeline, err := core.LoadPipeline(x.Pipeline.Config)
	if err != nil {
		return err
	}
	if len(x.Pipeline.Job) > 0 {
		selected := []core.Options{}
		for _, opts := range pipeline.Jobs {
			if opts.JobName == x.Pipeline.Job {
				selected = append(selected, opts)
			}
		}
		if len(selected) == 0 {
			return errors.New("run: no job named " + x.Pipeline.Job + " in " + x.Pipeline.Config)
		}
		pipeline.Jobs = selected
	}
	ctx, cancel := commandContext(x.Timeout)
	defer cancel()
	jobs, err := pipeline.Run(ctx, runner, sleep)
	if err != nil {
		return err
	}
	logger.InfoPrintf("pipeline %s: %d jobs done", x.Pipeline.Config, len(jobs))
	return nil
}

func init() {
	parser.AddCommand("run",
		"Run a pipeline",
		"Submit each job of the pipeline, wait for it to leave the queue and check its accounting record before moving on",
		&runCommand)
}
