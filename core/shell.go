package core

import (
	"context"
	"fmt"
	"strings"

	logger "pcf.io/pcf-hpc/logger"
)

const shellPath = "/bin/sh"

// ShellListFiles lists files according to a unix-like pattern, or the
// output of any shell command. Lines shorter than two characters are
// dropped.
func ShellListFiles(ctx context.Context, runner Runner, pattern string) ([]string, error) {
	out, err := runner.Output(ctx, shellPath, "-c", pattern)
	if err != nil {
		logger.ErrorPrintf("%v", err)
		return nil, fmt.Errorf("ls: %s: %w: %v", pattern, ErrShellList, err)
	}
	files := []string{}
	for _, line := range strings.Split(string(out), "\n") {
		if len(line) > 1 {
			files = append(files, line)
		}
	}
	return files, nil
}
