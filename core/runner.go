package core

import (
	"context"
	"os/exec"

	logger "pcf.io/pcf-hpc/logger"
)

// Runner executes the scheduler command line tools.
type Runner interface {
	// Output returns the standard output of the command.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// CombinedOutput returns standard output and standard error together.
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands as local subprocesses.
type ExecRunner struct {
	// Working directory, current directory when empty
	Dir string
}

func (r ExecRunner) command(ctx context.Context, name string, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	logger.DebugPrintf("exec command is %v", cmd)
	return cmd
}

func (r ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := r.command(ctx, name, args).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			logger.DebugPrintf("%s exited with an error: %v\n%s", name, exitErr, exitErr.Stderr)
		}
		return out, err
	}
	return out, nil
}

func (r ExecRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := r.command(ctx, name, args).CombinedOutput()
	if err != nil {
		logger.DebugPrintf("%s exited with an error: %v\n%s", name, err, out)
		return out, err
	}
	return out, nil
}
