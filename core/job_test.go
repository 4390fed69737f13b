package core

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestNewJobDefaults(t *testing.T) {
	job := NewJob(testDialect, Options{})
	if job.Name != "cmd" {
		t.Errorf("Got job name %s expected cmd", job.Name)
	}
	if job.ID != "0" {
		t.Errorf("Got job id %s expected 0", job.ID)
	}
	if len(job.Headers) != 0 || len(job.Commands) != 0 {
		t.Errorf("Expected an empty job, got %s", spew.Sdump(job))
	}
	if job.Submitted() {
		t.Error("A new job should not be submitted")
	}
}

func TestNewJobHeaderOrder(t *testing.T) {
	job := NewJob(testDialect, Options{
		JobName:    "align",
		Time:       "3600",
		Queue:      "normal",
		OutputFile: "out.log",
		NNodes:     2,
		NTasks:     8,
		ErrorFile:  "err.log",
		NCores:     4,
		Project:    "gen1234",
	})
	expected := []string{
		"#MSUB -A gen1234",
		"#MSUB -c 4",
		"#MSUB -e err.log",
		"#MSUB -n 8",
		"#MSUB -N 2",
		"#MSUB -o out.log",
		"#MSUB -q normal",
		"#MSUB -T 3600",
	}
	if !reflect.DeepEqual(job.Headers, expected) {
		t.Errorf("Got headers %s expected %s", spew.Sdump(job.Headers), spew.Sdump(expected))
	}
	if job.Name != "align" {
		t.Errorf("Got job name %s expected align", job.Name)
	}
}

func TestNewJobSkipsUnsetDirectives(t *testing.T) {
	job := NewJob(testDialect, Options{Queue: "normal"})
	if !reflect.DeepEqual(job.Headers, []string{"#MSUB -q normal"}) {
		t.Errorf("Got unexpected headers %s", spew.Sdump(job.Headers))
	}
}

func TestNewJobCmd(t *testing.T) {
	job := NewJob(testDialect, Options{Cmd: []string{"echo a", "echo b"}})
	if !reflect.DeepEqual(job.Commands, []string{"echo a", "echo b"}) {
		t.Errorf("Got unexpected commands %s", spew.Sdump(job.Commands))
	}
}

func TestNewJobMsub(t *testing.T) {
	job := NewJob(testDialect, Options{Msub: []string{"run1", "run2"}, Cmd: []string{"echo done"}})
	expected := []string{
		`ccc_mprun -n1 -E'--exclusive' bash -c "run1" &`,
		`ccc_mprun -n1 -E'--exclusive' bash -c "run2" &`,
		"wait",
		"echo done",
	}
	if !reflect.DeepEqual(job.Commands, expected) {
		t.Errorf("Got commands %s expected %s", spew.Sdump(job.Commands), spew.Sdump(expected))
	}
}

func TestScriptAndPrintCmd(t *testing.T) {
	job := NewJob(testDialect, Options{JobName: "step1", Queue: "normal", Cmd: []string{"hostname"}})
	expected := "#!/bin/bash\n#MSUB -q normal\nhostname\n"
	if string(job.Script()) != expected {
		t.Errorf("Got script %q expected %q", job.Script(), expected)
	}
	var b bytes.Buffer
	if err := job.PrintCmd(&b); err != nil {
		t.Fatal(err)
	}
	if b.String() != "step1\n"+expected {
		t.Errorf("Got print output %q", b.String())
	}
}

func TestSubmit(t *testing.T) {
	dir := t.TempDir()
	job := NewJob(testDialect, Options{JobName: "step1", Cmd: []string{"hostname"}})
	job.Dir = dir
	runner := newFakeRunner().on("ccc_msub", "Submitted batch job 12345\n", nil)

	if err := job.Submit(context.Background(), runner); err != nil {
		t.Fatalf("Submit returned unexpected error %s", err)
	}
	if job.ID != "12345" {
		t.Errorf("Got job id %s expected 12345", job.ID)
	}
	written, err := os.ReadFile(filepath.Join(dir, "step1"))
	if err != nil {
		t.Fatalf("job script was not written: %s", err)
	}
	if string(written) != "#!/bin/bash\nhostname\n" {
		t.Errorf("Got unexpected script %q", written)
	}
	expectedCall := []string{"ccc_msub", filepath.Join(dir, "step1")}
	if !reflect.DeepEqual(runner.calls[0], expectedCall) {
		t.Errorf("Got call %s expected %s", spew.Sdump(runner.calls[0]), spew.Sdump(expectedCall))
	}
}

func TestSubmitNoDigits(t *testing.T) {
	job := NewJob(testDialect, Options{})
	job.Dir = t.TempDir()
	runner := newFakeRunner().on("ccc_msub", "queued, no number here\n", nil)
	if err := job.Submit(context.Background(), runner); err != nil {
		t.Fatalf("Submit returned unexpected error %s", err)
	}
	if job.ID != "0" {
		t.Errorf("Got job id %s expected 0", job.ID)
	}
}

func TestSubmitFailure(t *testing.T) {
	job := NewJob(testDialect, Options{})
	job.Dir = t.TempDir()
	runner := newFakeRunner().on("ccc_msub", "invalid queue\n", errors.New("exit status 1"))
	err := job.Submit(context.Background(), runner)
	if !errors.Is(err, ErrSubmit) {
		t.Errorf("Got error %v expected ErrSubmit", err)
	}
	if job.Submitted() {
		t.Error("A failed submission should not set the job id")
	}
}

func TestSubmitUnwritableDir(t *testing.T) {
	job := NewJob(testDialect, Options{})
	job.Dir = filepath.Join(t.TempDir(), "missing")
	runner := newFakeRunner()
	if err := job.Submit(context.Background(), runner); err == nil {
		t.Error("Submit should fail when the script cannot be written")
	}
	if len(runner.calls) != 0 {
		t.Errorf("No command should run, got %s", spew.Sdump(runner.calls))
	}
}
