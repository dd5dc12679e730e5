package doco

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/kevinburke/ssh_config"
	"golang.org/x/crypto/ssh"
)

// Validator checks the local files a build depends on before any engine command runs.
type Validator struct {
	fileOps   FileOps
	homeDir   string
	messenger UserMessenger
}

func NewValidator(fileOps FileOps, homeDir string, messenger UserMessenger) *Validator {
	return &Validator{fileOps: fileOps, homeDir: homeDir, messenger: messenger}
}

// CheckDockerfile confirms the Dockerfile exists. Relative paths are resolved
// against workDir.
func (v *Validator) CheckDockerfile(workDir, dockerfile string) error {
	if _, err := v.fileOps.Stat(v.resolve(workDir, dockerfile)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w at %s", ErrDockerfileNotFound, dockerfile)
		}
		return fmt.Errorf("checking dockerfile %s: %w", dockerfile, err)
	}
	return nil
}

// ResolveSSHKey expands a leading "~", makes keyPath absolute and confirms the
// file exists. Errors name keyPath as the user wrote it.
func (v *Validator) ResolveSSHKey(ctx context.Context, workDir, keyPath string) (string, error) {
	resolved := v.resolve(workDir, v.expandHome(keyPath))
	data, err := v.fileOps.ReadFile(resolved)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w at %s", ErrSSHKeyNotFound, keyPath)
	}
	if err != nil {
		return "", fmt.Errorf("reading ssh key %s: %w", keyPath, err)
	}

	// The engine mounts the file as is, so an unparseable key only warns.
	if _, err := ssh.ParseRawPrivateKey(data); err != nil {
		var missing *ssh.PassphraseMissingError
		if !errors.As(err, &missing) {
			slog.WarnContext(ctx, "Validator.ResolveSSHKey: not an ssh private key", "path", resolved, "error", err)
			v.messenger.Message(ctx, fmt.Sprintf("Warning: %s does not look like an SSH private key (%v)", keyPath, err))
		}
	}
	slog.InfoContext(ctx, "Validator.ResolveSSHKey", "path", keyPath, "resolved", resolved)
	return resolved, nil
}

// ResolveSSHHostKey looks up the IdentityFile configured for host in
// ~/.ssh/config and resolves it like ResolveSSHKey.
func (v *Validator) ResolveSSHHostKey(ctx context.Context, workDir, host string) (string, error) {
	configPath := filepath.Join(v.homeDir, ".ssh", "config")
	data, err := v.fileOps.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: ssh_host %q set but %s does not exist", ErrSSHKeyNotFound, host, configPath)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", configPath, err)
	}

	cfg, err := ssh_config.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("couldn't decode %s: %w", configPath, err)
	}
	identity, err := cfg.Get(host, "IdentityFile")
	if err != nil {
		return "", fmt.Errorf("looking up IdentityFile for %q: %w", host, err)
	}
	if identity == "" {
		return "", fmt.Errorf("%w: no IdentityFile for host %q in %s", ErrSSHKeyNotFound, host, configPath)
	}
	hostName, err := cfg.Get(host, "HostName")
	if err != nil || hostName == "" {
		hostName = host
	}
	identity, err = v.expandTokens(identity, hostName)
	if err != nil {
		return "", fmt.Errorf("IdentityFile for host %q in %s: %w", host, configPath, err)
	}
	slog.InfoContext(ctx, "Validator.ResolveSSHHostKey", "host", host, "identityFile", identity)
	return v.ResolveSSHKey(ctx, workDir, identity)
}

// expandTokens substitutes the ssh_config(5) tokens that make sense for a
// local key path: %d (home directory), %h (remote host name) and %%.
func (v *Validator) expandTokens(p, hostName string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(p); i++ {
		if p[i] != '%' {
			b.WriteByte(p[i])
			continue
		}
		if i+1 == len(p) {
			return "", fmt.Errorf("%q ends with a lone %%", p)
		}
		i++
		switch p[i] {
		case 'd':
			b.WriteString(v.homeDir)
		case 'h':
			b.WriteString(hostName)
		case '%':
			b.WriteByte('%')
		default:
			return "", fmt.Errorf("%q uses unsupported token %%%c (supported: %%d, %%h, %%%%)", p, p[i])
		}
	}
	return b.String(), nil
}

func (v *Validator) expandHome(p string) string {
	if p == "~" {
		return v.homeDir
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return filepath.Join(v.homeDir, rest)
	}
	return p
}

func (v *Validator) resolve(workDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(workDir, p)
}
