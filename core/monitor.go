package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	logger "pcf.io/pcf-hpc/logger"
)

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the Sleeper backed by a real timer.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Poll checks the job in the cluster queue. A job missing from the
// queue is assumed to be finished.
func (j *Job) Poll(ctx context.Context, runner Runner) (bool, error) {
	if !j.Submitted() {
		return false, ErrNotSubmitted
	}
	if len(j.Dialect.QueueCommand) == 0 {
		return false, fmt.Errorf("monitor: %s: no queue command", j.Dialect.Name)
	}
	out, err := runner.Output(ctx, j.Dialect.QueueCommand[0], j.Dialect.QueueCommand[1:]...)
	if err != nil {
		return false, fmt.Errorf("monitor: %s: %w", strings.Join(j.Dialect.QueueCommand, " "), err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != j.ID {
			continue
		}
		if len(fields) > 4 {
			j.Status = fields[4]
		}
		logger.InfoPrintf("job %s status %s", j.ID, j.Status)
		return true, nil
	}
	return false, nil
}

// Monitor polls the queue every interval until the job leaves it.
// A zero interval means DefaultPollInterval.
func (j *Job) Monitor(ctx context.Context, runner Runner, sleep Sleeper, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if sleep == nil {
		sleep = Sleep
	}
	for {
		active, err := j.Poll(ctx, runner)
		if err != nil {
			return err
		}
		if !active {
			return nil
		}
		if err := sleep(ctx, interval); err != nil {
			return fmt.Errorf("monitor: job %s: %w", j.ID, err)
		}
	}
}

// CheckJob looks the finished job up in the accounting records and
// fails if any failure state shows up. There is no explicit check for
// a completed state.
func (j *Job) CheckJob(ctx context.Context, runner Runner) error {
	if !j.Submitted() {
		return ErrNotSubmitted
	}
	if len(j.Dialect.AccountingCommand) == 0 {
		return fmt.Errorf("check: %s: no accounting command", j.Dialect.Name)
	}
	args := append(append([]string{}, j.Dialect.AccountingCommand[1:]...), j.ID)
	out, err := runner.Output(ctx, j.Dialect.AccountingCommand[0], args...)
	if err != nil {
		return fmt.Errorf("check: %s: %w", j.Dialect.AccountingCommand[0], err)
	}
	failed := false
	for _, state := range FailureStates {
		if strings.Contains(string(out), state) {
			failed = true
		}
	}
	for _, line := range strings.Split(string(out), "\n") {
		logger.InfoPrintf("sacct output: %s", line)
	}
	if failed {
		logger.ErrorPrintf("job %s failed", j.ID)
		return fmt.Errorf("check: job %s: %w", j.ID, ErrJobFailed)
	}
	return nil
}
