// Package bridge describes the BRIDGE (ccc_msub) front end to SLURM.
package bridge

import (
	core "pcf.io/pcf-hpc/core"
)

// BRIDGE CLI commands
const (
	Name          = "bridge"
	MSubName      = "ccc_msub"
	ScriptCmdName = "#MSUB"
	// single task, exclusive allocation, backgrounded
	MPRunTemplate = `ccc_mprun -n1 -E'--exclusive' bash -c "%s" &`
)

// Queue and accounting still go through the SLURM tools
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
		core.DirectiveQueue:      ScriptCmdName + " -q",
		core.DirectiveTime:       ScriptCmdName + " -T",
	},
	SubmitCommand:     MSubName,
	TaskTemplate:      MPRunTemplate,
	QueueCommand:      []string{"squeue"},
	AccountingCommand: []string{"sacct", "--jobs"},
}

func init() {
	core.RegisterDialect(Dialect)
}
