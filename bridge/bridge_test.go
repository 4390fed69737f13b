package bridge

import (
	"reflect"
	"strings"
	"testing"

	core "pcf.io/pcf-hpc/core"
)

func TestBridgeJobScript(t *testing.T) {
	job := core.NewJob(Dialect, core.Options{
		JobName: "align",
		Project: "gen1234",
		Queue:   "rome",
		Time:    "86400",
		Msub:    []string{"bwa mem a.fq > a.sam"},
	})
	expected := `#!/bin/bash
#MSUB -A gen1234
#MSUB -q rome
#MSUB -T 86400
ccc_mprun -n1 -E'--exclusive' bash -c "bwa mem a.fq > a.sam" &
wait
`
	if string(job.Script()) != expected {
		t.Errorf("Got script\n%s\nexpected\n%s", job.Script(), expected)
	}
}

func TestBridgeRegistered(t *testing.T) {
	d, err := core.LookupDialect("bridge")
	if err != nil {
		t.Fatal(err)
	}
	if d.SubmitCommand != "ccc_msub" || d.Marker() != "#MSUB" {
		t.Errorf("Got unexpected dialect %+v", d)
	}
}

func TestBridgeParseScript(t *testing.T) {
	script, err := core.ParseScript(Dialect, strings.NewReader("#!/bin/bash\n#MSUB -n 16\n#MSUB -o run.out\nccc_mprun ./a.out\n"))
	if err != nil {
		t.Fatal(err)
	}
	expected := core.Options{NTasks: 16, OutputFile: "run.out"}
	if !reflect.DeepEqual(script.Options, expected) {
		t.Errorf("Got options %+v expected %+v", script.Options, expected)
	}
}
