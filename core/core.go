package core

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Default constants
const (
	DefaultJobName      = "cmd"
	DefaultShell        = "#!/bin/bash"
	DefaultWorkDir      = "."
	DefaultPollInterval = 10 * time.Second
	// Job id before a successful submission
	UnsubmittedID = "0"
	WaitLine      = "wait"
)

// Directive keys, in the order their lines are written to the job script
const (
	DirectiveProject    = "project"
	DirectiveNCores     = "ncores"
	DirectiveErrorFile  = "error_file"
	DirectiveNTasks     = "ntasks"
	DirectiveNNodes     = "nnodes"
	DirectiveOutputFile = "output_file"
	DirectiveQueue      = "queue"
	DirectiveTime       = "time"
)

var DirectiveKeys = []string{
	DirectiveProject,
	DirectiveNCores,
	DirectiveErrorFile,
	DirectiveNTasks,
	DirectiveNNodes,
	DirectiveOutputFile,
	DirectiveQueue,
	DirectiveTime,
}

// Scheduler status codes reported by the accounting command.
// If one of those codes appears, then something went wrong.
var FailureStates = []string{"CANCELLED", "FAILED", "NODE_FAIL", "TIMEOUT"}

var (
	ErrSubmit       = errors.New("job submission failed")
	ErrShellList    = errors.New("shell listing failed")
	ErrJobFailed    = errors.New("job failed")
	ErrNotSubmitted = errors.New("job not submitted")
	ErrNoDialect    = errors.New("unknown scheduler")
)

// Dialect describes one flavour of SLURM-family scheduler: how its
// directives are spelled and which commands drive it.
type Dialect struct {
	Name  string
	Shell string
	// directive key -> line prefix, e.g. "queue" -> "#MSUB -q"
	Prefixes map[string]string
	// Optional long spelling of a directive flag, e.g. "queue" -> "partition"
	LongNames map[string]string
	// Command receiving the script path as its only argument
	SubmitCommand string
	// Exclusive single task wrapper, %s is replaced by the sub-command
	TaskTemplate      string
	QueueCommand      []string
	AccountingCommand []string
}

// Marker returns the comment token shared by all directive prefixes
// ("#MSUB", "#SBATCH").
func (d Dialect) Marker() string {
	for _, key := range DirectiveKeys {
		if prefix, ok := d.Prefixes[key]; ok {
			if fields := strings.Fields(prefix); len(fields) > 0 {
				return fields[0]
			}
		}
	}
	return ""
}

func (d Dialect) shell() string {
	if len(d.Shell) > 0 {
		return d.Shell
	}
	return DefaultShell
}

var (
	dialectsMu sync.RWMutex
	dialects   = map[string]Dialect{}
)

// RegisterDialect makes a dialect available by name to pipeline files
// and the command line.
func RegisterDialect(d Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[d.Name] = d
}

func LookupDialect(name string) (Dialect, error) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	if d, ok := dialects[name]; ok {
		return d, nil
	}
	return Dialect{}, fmt.Errorf("core: %w: %s", ErrNoDialect, name)
}

func DialectNames() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := []string{}
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options is the job description: name, body and optional directives.
// Empty strings and zero counts are left out of the script.
type Options struct {
	JobName string   `koanf:"job_name"`
	Msub    []string `koanf:"msub"`
	Cmd     []string `koanf:"cmd"`

	Project    string `koanf:"project"`
	NCores     int    `koanf:"ncores"`
	ErrorFile  string `koanf:"error_file"`
	NTasks     int    `koanf:"ntasks"`
	NNodes     int    `koanf:"nnodes"`
	OutputFile string `koanf:"output_file"`
	Queue      string `koanf:"queue"`
	Time       string `koanf:"time"`
}

// Directive returns the value of a directive key and whether it is set.
func (o Options) Directive(key string) (string, bool) {
	count := func(n int) (string, bool) {
		if n > 0 {
			return strconv.Itoa(n), true
		}
		return "", false
	}
	text := func(s string) (string, bool) {
		return s, len(s) > 0
	}
	switch key {
	case DirectiveProject:
		return text(o.Project)
	case DirectiveNCores:
		return count(o.NCores)
	case DirectiveErrorFile:
		return text(o.ErrorFile)
	case DirectiveNTasks:
		return count(o.NTasks)
	case DirectiveNNodes:
		return count(o.NNodes)
	case DirectiveOutputFile:
		return text(o.OutputFile)
	case DirectiveQueue:
		return text(o.Queue)
	case DirectiveTime:
		return text(o.Time)
	}
	return "", false
}

// SetDirective is the inverse of Directive. Counts must be positive
// integers.
func (o *Options) SetDirective(key, value string) error {
	count := func(n *int) error {
		i, err := strconv.Atoi(value)
		if err != nil || i <= 0 {
			return errors.New("core: invalid " + key + " value: " + value)
		}
		*n = i
		return nil
	}
	switch key {
	case DirectiveProject:
		o.Project = value
	case DirectiveNCores:
		return count(&o.NCores)
	case DirectiveErrorFile:
		o.ErrorFile = value
	case DirectiveNTasks:
		return count(&o.NTasks)
	case DirectiveNNodes:
		return count(&o.NNodes)
	case DirectiveOutputFile:
		o.OutputFile = value
	case DirectiveQueue:
		o.Queue = value
	case DirectiveTime:
		o.Time = value
	default:
		return errors.New("core: unknown directive " + key)
	}
	return nil
}
