package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/banksean/doco"
	"github.com/banksean/doco/engine"
)

type fakeRunner struct {
	out string
	err error
}

func (f *fakeRunner) Run(ctx context.Context, cmd engine.Command) error {
	if f.err != nil {
		return f.err
	}
	if cmd.Stdout != nil {
		cmd.Stdout.Write([]byte(f.out))
	}
	return nil
}

func TestVerifyPrerequisites(t *testing.T) {
	checks := []diagnosticCheck{
		{Name: "passes", Run: func(context.Context) error { return nil }},
		{Name: "fails", Run: func(context.Context) error { return errors.New("boom") }},
	}
	failures := verifyPrerequisites(context.Background(), checks)
	if len(failures) != 1 || failures["fails"] != "boom" {
		t.Fatalf("failures = %v", failures)
	}

	var out bytes.Buffer
	printReport(&out, checks, failures)
	want := "[ OK ] passes\n[FAIL] fails: boom\n"
	if out.String() != want {
		t.Errorf("report = %q, want %q", out.String(), want)
	}
}

func TestDoctorChecks(t *testing.T) {
	dir := t.TempDir()
	host := doco.Host{WorkDir: dir, HomeDir: dir}

	tests := []struct {
		name      string
		runner    *fakeRunner
		wantFails []string
	}{
		{
			name:      "engine responds, project not set up",
			runner:    &fakeRunner{out: "27.3.1\n"},
			wantFails: []string{"doco.yaml loads and is valid", "Dockerfile exists"},
		},
		{
			name:      "engine broken",
			runner:    &fakeRunner{err: errors.New("cannot connect")},
			wantFails: []string{"docker responds to version", "doco.yaml loads and is valid", "Dockerfile exists"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := engine.New("docker", tt.runner)
			cctx := &Context{host: host, engine: eng, launcher: doco.NewLauncher(host, eng, &bytes.Buffer{})}
			cmd := &DoctorCmd{Dockerfile: "Dockerfile"}

			failures := verifyPrerequisites(context.Background(), cmd.diagnosticChecks(cctx))
			// Whether docker is on PATH depends on the machine running the test.
			delete(failures, "docker is on PATH")
			if len(failures) != len(tt.wantFails) {
				t.Errorf("failures = %v, want %v", failures, tt.wantFails)
			}
			for _, name := range tt.wantFails {
				if _, ok := failures[name]; !ok {
					t.Errorf("expected %q to fail, failures = %v", name, failures)
				}
			}
			if msg := failures["doco.yaml loads and is valid"]; !strings.Contains(msg, "not found") {
				t.Errorf("config failure %q should say the file was not found", msg)
			}
		})
	}
}
