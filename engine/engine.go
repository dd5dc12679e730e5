package engine

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/banksean/doco/engine/options"
)

const (
	// DefaultBinary is the container engine CLI used when none is configured.
	DefaultBinary = "docker"

	// BuildKitEnv enables the engine's extended build mode, which secret mounts require.
	BuildKitEnv = "DOCKER_BUILDKIT=1"
)

// Engine composes and runs commands for a docker-compatible container CLI.
type Engine struct {
	binary string
	runner Runner
}

// New returns an Engine that invokes binary through runner.
func New(binary string, runner Runner) *Engine {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Engine{binary: binary, runner: runner}
}

// Binary returns the name or path of the engine CLI.
func (e *Engine) Binary() string {
	return e.binary
}

// BuildArgs composes "<engine> build <opts> <contextDir>".
func (e *Engine) BuildArgs(opts options.Build, contextDir string) []string {
	args := []string{e.binary, "build"}
	args = append(args, options.ToArgs(opts)...)
	return append(args, contextDir)
}

// Build builds an image and blocks until the build finishes. Output is streamed
// to the user; a failed build returns an *ExitError carrying the tail of it.
func (e *Engine) Build(ctx context.Context, opts options.Build, contextDir, dir string, env []string) error {
	cmd := Command{
		Args: e.BuildArgs(opts, contextDir),
		Dir:  dir,
		Env:  env,
		Mode: Captured,
	}
	slog.InfoContext(ctx, "Engine.Build", "cmd", cmd.String())
	return e.runner.Run(ctx, cmd)
}

// RunArgs composes "<engine> run <opts> <extra...> <image> <cmdArgs...>".
func (e *Engine) RunArgs(opts options.RunContainer, extra []string, image string, cmdArgs ...string) []string {
	args := []string{e.binary, "run"}
	args = append(args, options.ToArgs(opts)...)
	args = append(args, extra...)
	args = append(args, image)
	return append(args, cmdArgs...)
}

// Run starts a container attached to the invoking terminal and blocks until it exits.
func (e *Engine) Run(ctx context.Context, opts options.RunContainer, extra []string, image string, cmdArgs []string, dir string, env []string) error {
	cmd := Command{
		Args: e.RunArgs(opts, extra, image, cmdArgs...),
		Dir:  dir,
		Env:  env,
		Mode: Interactive,
	}
	slog.InfoContext(ctx, "Engine.Run", "cmd", cmd.String())
	return e.runner.Run(ctx, cmd)
}

// Version returns the engine client's version string, or an error if the
// engine cannot be invoked.
func (e *Engine) Version(ctx context.Context, env []string) (string, error) {
	var out bytes.Buffer
	args := append([]string{e.binary, "version"}, options.ToArgs(options.Version{Format: "{{.Client.Version}}"})...)
	err := e.runner.Run(ctx, Command{
		Args:   args,
		Env:    env,
		Mode:   Captured,
		Stdout: &out,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}

// MergeEnv returns base with overrides applied. Keys already present in base
// keep their position; new keys are appended in override order. Entries
// without "=" are dropped.
func MergeEnv(base []string, overrides ...string) []string {
	merged := make([]string, 0, len(base)+len(overrides))
	index := make(map[string]int, len(base)+len(overrides))
	set := func(entry string) {
		k, _, ok := strings.Cut(entry, "=")
		if !ok {
			return
		}
		if i, exists := index[k]; exists {
			merged[i] = entry
			return
		}
		index[k] = len(merged)
		merged = append(merged, entry)
	}
	for _, entry := range base {
		set(entry)
	}
	for _, entry := range overrides {
		set(entry)
	}
	return merged
}
