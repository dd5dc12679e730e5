package doco

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/banksean/doco/engine"
	"github.com/banksean/doco/engine/options"
)

// ContainerLauncher runs an interactive container with the working directory mounted.
type ContainerLauncher struct {
	host      Host
	engine    *engine.Engine
	messenger UserMessenger
}

func NewContainerLauncher(host Host, eng *engine.Engine, messenger UserMessenger) *ContainerLauncher {
	return &ContainerLauncher{host: host, engine: eng, messenger: messenger}
}

// Launch runs image and blocks until the session ends. A session the user
// interrupts is not an error.
func (l *ContainerLauncher) Launch(ctx context.Context, image string, cfg *Config) error {
	opts := options.RunContainer{
		InteractiveTTY: true,
		Remove:         true,
		Platform:       cfg.Platform,
		Volume:         []string{l.host.WorkDir + ":" + cfg.MountPath},
		WorkDir:        cfg.MountPath,
	}
	var cmdArgs []string
	if cfg.Shell != "" {
		cmdArgs = []string{cfg.Shell}
	}

	l.messenger.Message(ctx, fmt.Sprintf("Starting container with %s mounted at %s...", l.host.WorkDir, cfg.MountPath))
	err := l.engine.Run(ctx, opts, cfg.DockerOptions, image, cmdArgs, l.host.WorkDir, l.host.Environ)
	return l.sessionResult(ctx, image, err)
}

func (l *ContainerLauncher) sessionResult(ctx context.Context, image string, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *engine.ExitError
	isExit := errors.As(err, &exitErr)
	if ctx.Err() != nil || (isExit && exitErr.Interrupted()) {
		l.messenger.Message(ctx, "\nExiting container...")
		return nil
	}
	slog.ErrorContext(ctx, "ContainerLauncher.Launch", "image", image, "error", err)
	return fmt.Errorf("%w: %s: %w", ErrRunFailed, image, err)
}
