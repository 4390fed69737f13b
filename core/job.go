package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "pcf.io/pcf-hpc/logger"
)

const scriptFilePerms = 0644

var jobIDPattern = regexp.MustCompile(`(\d+)`)

// Job is one batch script and its scheduler id.
type Job struct {
	Name     string
	ID       string
	Headers  []string
	Commands []string
	// Last status reported by the queue command
	Status  string
	Dialect Dialect
	// Directory the script is written to
	Dir string
}

// NewJob translates options into directive lines and command lines.
func NewJob(d Dialect, o Options) *Job {
	job := &Job{
		Name:     DefaultJobName,
		ID:       UnsubmittedID,
		Headers:  []string{},
		Commands: []string{},
		Dialect:  d,
		Dir:      DefaultWorkDir,
	}
	if len(o.JobName) > 0 {
		job.Name = o.JobName
	}
	// exclusive single task per command, then wait for all of them
	if len(o.Msub) > 0 {
		for _, cmd := range o.Msub {
			job.Commands = append(job.Commands, fmt.Sprintf(d.TaskTemplate, cmd))
		}
		job.Commands = append(job.Commands, WaitLine)
	}
	job.Commands = append(job.Commands, o.Cmd...)
	for _, key := range DirectiveKeys {
		value, ok := o.Directive(key)
		if !ok {
			continue
		}
		prefix, ok := d.Prefixes[key]
		if !ok {
			logger.WarningPrintf("%s: %s directive not supported, skipping", d.Name, key)
			continue
		}
		job.Headers = append(job.Headers, prefix+" "+value)
	}
	return job
}

// NewSubmittedJob returns a job handle for an id obtained elsewhere.
func NewSubmittedJob(d Dialect, id string) *Job {
	job := NewJob(d, Options{})
	job.ID = id
	return job
}

func (j *Job) Submitted() bool {
	return len(j.ID) > 0 && j.ID != UnsubmittedID
}

// ScriptPath is where Submit writes the job script.
func (j *Job) ScriptPath() string {
	return filepath.Join(j.Dir, j.Name)
}

// Script renders the batch script: shell line, directives, commands.
func (j *Job) Script() []byte {
	var b bytes.Buffer
	b.WriteString(j.Dialect.shell() + "\n")
	for _, line := range j.Headers {
		b.WriteString(line + "\n")
	}
	for _, line := range j.Commands {
		b.WriteString(line + "\n")
	}
	return b.Bytes()
}

// PrintCmd writes the job name followed by the script.
func (j *Job) PrintCmd(w io.Writer) error {
	if _, err := fmt.Fprintln(w, j.Name); err != nil {
		return err
	}
	_, err := w.Write(j.Script())
	return err
}

// Submit writes the job script and hands it to the scheduler. The first
// number printed by the submit command becomes the job id.
func (j *Job) Submit(ctx context.Context, runner Runner) error {
	if err := os.WriteFile(j.ScriptPath(), j.Script(), scriptFilePerms); err != nil {
		return fmt.Errorf("submit: cannot write job script %s: %w", j.ScriptPath(), err)
	}
	out, err := runner.CombinedOutput(ctx, j.Dialect.SubmitCommand, j.ScriptPath())
	if err != nil {
		logger.ErrorPrintf("An error occured while trying to submit the job to the cluster")
		logger.ErrorPrintf("%s", strings.TrimSpace(string(out)))
		return fmt.Errorf("submit: %s: %w: %v", j.Name, ErrSubmit, err)
	}
	if match := jobIDPattern.FindString(string(out)); len(match) > 0 {
		j.ID = match
		logger.InfoPrintf("job %s submitted", j.ID)
	} else {
		logger.WarningPrintf("no job id in %s output: %s", j.Dialect.SubmitCommand, strings.TrimSpace(string(out)))
	}
	return nil
}
