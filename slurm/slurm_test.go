package slurm

import (
	"reflect"
	"strings"
	"testing"

	core "pcf.io/pcf-hpc/core"
)

func TestSlurmJobScript(t *testing.T) {
	job := core.NewJob(Dialect, core.Options{
		Queue:  "debug",
		NNodes: 1,
		Msub:   []string{"run1", "run2"},
	})
	expectedHeaders := []string{"#SBATCH -N 1", "#SBATCH -p debug"}
	if !reflect.DeepEqual(job.Headers, expectedHeaders) {
		t.Errorf("Got headers %v expected %v", job.Headers, expectedHeaders)
	}
	expectedCommands := []string{
		`srun -n1 --exclusive bash -c "run1" &`,
		`srun -n1 --exclusive bash -c "run2" &`,
		"wait",
	}
	if !reflect.DeepEqual(job.Commands, expectedCommands) {
		t.Errorf("Got commands %v expected %v", job.Commands, expectedCommands)
	}
}

func TestSlurmParseLongOptions(t *testing.T) {
	text := `#!/bin/bash
#SBATCH --job-name=job_test
#SBATCH --time=00:05:00
#SBATCH --partition=gpu
#SBATCH --nodes 2
#SBATCH -A proj
pwd; hostname; date
`
	script, err := core.ParseScript(Dialect, strings.NewReader(text))
	if err != nil {
		t.Fatal(err)
	}
	expected := core.Options{Project: "proj", NNodes: 2, Queue: "gpu", Time: "00:05:00"}
	if !reflect.DeepEqual(script.Options, expected) {
		t.Errorf("Got options %+v expected %+v", script.Options, expected)
	}
	if !reflect.DeepEqual(script.Unsupported, []string{"#SBATCH --job-name=job_test"}) {
		t.Errorf("Got unsupported %v", script.Unsupported)
	}
	if !reflect.DeepEqual(script.Commands, []string{"pwd; hostname; date"}) {
		t.Errorf("Got commands %v", script.Commands)
	}
}
