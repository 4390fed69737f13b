package core

import (
	"context"
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	logger "pcf.io/pcf-hpc/logger"
)

const DefaultScheduler = "bridge"

// Pipeline is an ordered list of jobs run one after the other.
type Pipeline struct {
	Scheduler    string        `koanf:"scheduler"`
	WorkDir      string        `koanf:"workdir"`
	PollInterval time.Duration `koanf:"poll_interval"`
	Jobs         []Options     `koanf:"jobs"`
}

// LoadPipeline loads a pipeline description from a YAML file.
func LoadPipeline(path string) (*Pipeline, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load pipeline: %w", err)
	}
	p := Pipeline{
		Scheduler:    DefaultScheduler,
		WorkDir:      DefaultWorkDir,
		PollInterval: DefaultPollInterval,
	}
	if err := k.Unmarshal("", &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pipeline: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline validation failed: %w", err)
	}
	logger.DebugObj("pipeline", p)
	return &p, nil
}

// Validate validates the pipeline and fills in defaults
func (p *Pipeline) Validate() error {
	if len(p.Jobs) == 0 {
		return fmt.Errorf("at least one job must be configured")
	}
	if len(p.Scheduler) == 0 {
		p.Scheduler = DefaultScheduler
	}
	if _, err := LookupDialect(p.Scheduler); err != nil {
		return err
	}
	if p.PollInterval < 0 {
		return fmt.Errorf("poll_interval must not be negative")
	}
	if p.PollInterval == 0 {
		p.PollInterval = DefaultPollInterval
	}
	if len(p.WorkDir) == 0 {
		p.WorkDir = DefaultWorkDir
	}
	return nil
}

// BuildJobs turns every job description into a Job.
func (p *Pipeline) BuildJobs() ([]*Job, error) {
	d, err := LookupDialect(p.Scheduler)
	if err != nil {
		return nil, err
	}
	jobs := []*Job{}
	for _, opts := range p.Jobs {
		job := NewJob(d, opts)
		job.Dir = p.WorkDir
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Run submits, monitors and checks each job in order and stops at the
// first failure. Jobs already submitted are left to the scheduler.
func (p *Pipeline) Run(ctx context.Context, runner Runner, sleep Sleeper) ([]*Job, error) {
	jobs, err := p.BuildJobs()
	if err != nil {
		return nil, err
	}
	for index, job := range jobs {
		logger.InfoPrintf("pipeline step %d/%d: %s", index+1, len(jobs), job.Name)
		if err := job.Submit(ctx, runner); err != nil {
			return jobs[:index+1], err
		}
		if err := job.Monitor(ctx, runner, sleep, p.PollInterval); err != nil {
			return jobs[:index+1], err
		}
		if err := job.CheckJob(ctx, runner); err != nil {
			return jobs[:index+1], err
		}
	}
	return jobs, nil
}
