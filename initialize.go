package doco

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/banksean/doco/paths"
)

//go:embed default_doco.yaml
var defaultConfigYAML []byte

const configFileMode = paths.DefaultFileMode

// Initialize writes a default doco.yaml into workDir and returns its path. An
// existing file is never overwritten.
func Initialize(fops FileOps, workDir string) (string, error) {
	path := filepath.Join(workDir, ConfigFileName)
	if _, err := fops.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", ErrConfigExists, path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking %s: %w", path, err)
	}

	if err := fops.WriteFileExclusive(path, defaultConfigYAML, configFileMode); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
