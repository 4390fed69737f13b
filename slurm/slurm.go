package slurm

import (
	core "pcf.io/pcf-hpc/core"
)

// Slurm CLI commands
const (
	Name          = "slurm"
	SBatchName    = "sbatch"
	SQueueName    = "squeue"
	SAcctName     = "sacct"
	ScriptCmdName = "#SBATCH"
	SRunTemplate  = `srun -n1 --exclusive bash -c "%s" &`
)

var Dialect = core.Dialect{
	Name:  Name,
	Shell: core.DefaultShell,
	Prefixes: map[string]string{
		core.DirectiveProject:    ScriptCmdName + " -A",
		core.DirectiveNCores:     ScriptCmdName + " -c",
		core.DirectiveErrorFile:  ScriptCmdName + " -e",
		core.DirectiveNTasks:     ScriptCmdName + " -n",
		core.DirectiveNNodes:     ScriptCmdName + " -N",
		core.DirectiveOutputFile: ScriptCmdName + " -o",
		core.DirectiveQueue:      ScriptCmdName + " -p",
		core.DirectiveTime:       ScriptCmdName + " -t",
	},
	// Slurm support Short and Long options in job scripts
	LongNames: map[string]string{
		core.DirectiveProject:    "account",
		core.DirectiveNCores:     "cpus-per-task",
		core.DirectiveErrorFile:  "error",
		core.DirectiveNTasks:     "ntasks",
		core.DirectiveNNodes:     "nodes",
		core.DirectiveOutputFile: "output",
		core.DirectiveQueue:      "partition",
		core.DirectiveTime:       "time",
	},
	SubmitCommand:     SBatchName,
	TaskTemplate:      SRunTemplate,
	QueueCommand:      []string{SQueueName},
	AccountingCommand: []string{SAcctName, "--jobs"},
}

func init() {
	core.RegisterDialect(Dialect)
}
