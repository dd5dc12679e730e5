package doco

import (
	"context"
	"io"
	"log/slog"

	"github.com/banksean/doco/engine"
)

// Host is the ambient state of the invoking process, captured once at startup
// and passed down explicitly.
type Host struct {
	// WorkDir is mounted into the container and holds doco.yaml and the Dockerfile.
	WorkDir string
	// HomeDir expands "~" in key paths and locates ~/.ssh/config.
	HomeDir string
	// Environ is the base environment for child processes.
	Environ []string
}

// UpOptions are the per-invocation choices for Up.
type UpOptions struct {
	// NoBuild skips the image build and runs the configured image name as is.
	NoBuild bool
	// Dockerfile is the build definition, relative to the working directory. Defaults to "Dockerfile".
	Dockerfile string
}

// Launcher wires the doco pipeline together: precondition checks, config
// loading, image build and the interactive container session.
type Launcher struct {
	host       Host
	fileOps    FileOps
	messenger  UserMessenger
	engine     *engine.Engine
	validator  *Validator
	builder    *ImageBuilder
	containers *ContainerLauncher
}

func NewLauncher(host Host, eng *engine.Engine, terminalWriter io.Writer) *Launcher {
	return newLauncherWithDeps(host, eng, NewDefaultFileOps(), NewTerminalMessenger(terminalWriter))
}

func newLauncherWithDeps(host Host, eng *engine.Engine, fileOps FileOps, messenger UserMessenger) *Launcher {
	validator := NewValidator(fileOps, host.HomeDir, messenger)
	return &Launcher{
		host:       host,
		fileOps:    fileOps,
		messenger:  messenger,
		engine:     eng,
		validator:  validator,
		builder:    NewImageBuilder(host, eng, validator, messenger),
		containers: NewContainerLauncher(host, eng, messenger),
	}
}

// Up checks the Dockerfile, loads doco.yaml, builds the image unless
// opts.NoBuild is set, and then runs the container session. The first failure
// ends the run; nothing is retried.
func (l *Launcher) Up(ctx context.Context, opts UpOptions) error {
	if opts.Dockerfile == "" {
		opts.Dockerfile = DefaultDockerfile
	}
	slog.InfoContext(ctx, "Launcher.Up", "workDir", l.host.WorkDir, "dockerfile", opts.Dockerfile, "noBuild", opts.NoBuild)

	if err := l.validator.CheckDockerfile(l.host.WorkDir, opts.Dockerfile); err != nil {
		return err
	}

	cfg, err := l.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Launcher.Up", "config", cfg)

	image := cfg.ImageName
	if !opts.NoBuild {
		image, err = l.builder.Build(ctx, cfg, opts.Dockerfile)
		if err != nil {
			return err
		}
	}

	return l.containers.Launch(ctx, image, cfg)
}

// Init writes a default doco.yaml to the working directory.
func (l *Launcher) Init(ctx context.Context) (string, error) {
	path, err := Initialize(l.fileOps, l.host.WorkDir)
	if err != nil {
		slog.ErrorContext(ctx, "Launcher.Init", "error", err)
		return "", err
	}
	l.messenger.Message(ctx, "Created "+path)
	return path, nil
}

// LoadConfig reads doco.yaml from the working directory.
func (l *Launcher) LoadConfig() (*Config, error) {
	return LoadConfig(l.fileOps, l.host.WorkDir)
}

// CheckDockerfile confirms dockerfile exists relative to the working directory.
func (l *Launcher) CheckDockerfile(dockerfile string) error {
	return l.validator.CheckDockerfile(l.host.WorkDir, dockerfile)
}

// EngineVersion returns the container engine's client version.
func (l *Launcher) EngineVersion(ctx context.Context) (string, error) {
	return l.engine.Version(ctx, l.host.Environ)
}
