package doco

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/banksean/doco/engine"
	"github.com/banksean/doco/engine/options"
)

// sshSecretID is the id a Dockerfile uses to mount the key:
//
//	RUN --mount=type=secret,id=ssh_key ...
const sshSecretID = "ssh_key"

// ImageBuilder builds the workspace image from a Dockerfile.
type ImageBuilder struct {
	host      Host
	engine    *engine.Engine
	validator *Validator
	messenger UserMessenger
}

func NewImageBuilder(host Host, eng *engine.Engine, validator *Validator, messenger UserMessenger) *ImageBuilder {
	return &ImageBuilder{host: host, engine: eng, validator: validator, messenger: messenger}
}

// Build builds cfg.ImageName from dockerfile with the working directory as
// build context, and returns the image name.
func (b *ImageBuilder) Build(ctx context.Context, cfg *Config, dockerfile string) (string, error) {
	opts := options.Build{
		Tag:      cfg.ImageName,
		Platform: cfg.Platform,
		File:     dockerfile,
	}

	keyPath, err := b.sshKey(ctx, cfg)
	if err != nil {
		return "", err
	}
	if keyPath != "" {
		opts.Secret = []string{fmt.Sprintf("id=%s,src=%s", sshSecretID, keyPath)}
	}

	if cfg.Platform != "" {
		b.messenger.Message(ctx, fmt.Sprintf("Building image %s for %s...", cfg.ImageName, cfg.Platform))
	} else {
		b.messenger.Message(ctx, fmt.Sprintf("Building image %s...", cfg.ImageName))
	}

	env := engine.MergeEnv(b.host.Environ, engine.BuildKitEnv)
	if err := b.engine.Build(ctx, opts, ".", b.host.WorkDir, env); err != nil {
		var exitErr *engine.ExitError
		if errors.As(err, &exitErr) {
			slog.ErrorContext(ctx, "ImageBuilder.Build", "image", cfg.ImageName, "code", exitErr.Code, "tail", exitErr.Tail)
		} else {
			slog.ErrorContext(ctx, "ImageBuilder.Build", "image", cfg.ImageName, "error", err)
		}
		return "", fmt.Errorf("%w: %s: %w", ErrBuildFailed, cfg.ImageName, err)
	}

	b.messenger.Message(ctx, "Build successful!")
	return cfg.ImageName, nil
}

// sshKey returns the absolute path of the configured build key, or "" if none is configured.
func (b *ImageBuilder) sshKey(ctx context.Context, cfg *Config) (string, error) {
	switch {
	case cfg.SSHKeyPath != "":
		return b.validator.ResolveSSHKey(ctx, b.host.WorkDir, cfg.SSHKeyPath)
	case cfg.SSHHost != "":
		return b.validator.ResolveSSHHostKey(ctx, b.host.WorkDir, cfg.SSHHost)
	default:
		return "", nil
	}
}
