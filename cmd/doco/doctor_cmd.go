package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

type diagnosticCheck struct {
	Name string
	Run  func(context.Context) error
}

type DoctorCmd struct {
	Dockerfile string `default:"Dockerfile" predictor:"file" placeholder:"<path>" help:"Dockerfile to check for, relative to the current directory"`
}

func (c *DoctorCmd) Run(ctx context.Context, cctx *Context) error {
	checks := c.diagnosticChecks(cctx)
	failures := verifyPrerequisites(ctx, checks)
	printReport(os.Stdout, checks, failures)
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d checks failed", len(failures), len(checks))
	}
	return nil
}

func (c *DoctorCmd) diagnosticChecks(cctx *Context) []diagnosticCheck {
	binary := cctx.engine.Binary()
	return []diagnosticCheck{
		{
			Name: fmt.Sprintf("%s is on PATH", binary),
			Run: func(ctx context.Context) error {
				path, err := exec.LookPath(binary)
				if err != nil {
					return err
				}
				slog.InfoContext(ctx, "DoctorCmd", "binary", path)
				return nil
			},
		},
		{
			Name: fmt.Sprintf("%s responds to version", binary),
			Run: func(ctx context.Context) error {
				v, err := cctx.launcher.EngineVersion(ctx)
				if err != nil {
					return err
				}
				if v == "" {
					return errors.New("empty client version")
				}
				slog.InfoContext(ctx, "DoctorCmd", "engineVersion", v)
				return nil
			},
		},
		{
			Name: "doco.yaml loads and is valid",
			Run: func(ctx context.Context) error {
				cfg, err := cctx.launcher.LoadConfig()
				if err != nil {
					return err
				}
				return cfg.Validate()
			},
		},
		{
			Name: fmt.Sprintf("%s exists", c.Dockerfile),
			Run: func(ctx context.Context) error {
				return cctx.launcher.CheckDockerfile(c.Dockerfile)
			},
		},
	}
}

// verifyPrerequisites runs every check and returns the failures by check name.
func verifyPrerequisites(ctx context.Context, checks []diagnosticCheck) map[string]string {
	failures := map[string]string{}
	for _, check := range checks {
		if err := check.Run(ctx); err != nil {
			failures[check.Name] = err.Error()
			slog.ErrorContext(ctx, "diagnosticCheck failed", "name", check.Name, "error", err)
		} else {
			slog.InfoContext(ctx, "diagnosticCheck passed", "name", check.Name)
		}
	}
	return failures
}

func printReport(w io.Writer, checks []diagnosticCheck, failures map[string]string) {
	for _, check := range checks {
		if msg, failed := failures[check.Name]; failed {
			fmt.Fprintf(w, "[FAIL] %s: %s\n", check.Name, msg)
		} else {
			fmt.Fprintf(w, "[ OK ] %s\n", check.Name)
		}
	}
}
