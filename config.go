package doco

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the project configuration file, looked up in the working directory.
	ConfigFileName = "doco.yaml"

	DefaultImageName  = "doco-workspace"
	DefaultMountPath  = "/workspace"
	DefaultDockerfile = "Dockerfile"
)

// Config is the contents of doco.yaml.
type Config struct {
	// ImageName tags the built image and names the image to run.
	ImageName string `yaml:"image_name"`
	// Platform is the target platform for build and run. Empty lets the engine pick.
	Platform string `yaml:"platform,omitempty"`
	// MountPath is where the working directory is mounted inside the container.
	MountPath string `yaml:"mount_path"`
	// DockerOptions are appended verbatim to the run command, before the image name.
	DockerOptions []string `yaml:"docker_options"`
	// Shell, if set, is the command started in the container.
	Shell string `yaml:"shell,omitempty"`
	// SSHKeyPath is a private key exposed to the build as a secret, never baked into the image.
	SSHKeyPath string `yaml:"ssh_key_path,omitempty"`
	// SSHHost names a ~/.ssh/config host whose IdentityFile is used when SSHKeyPath is empty.
	SSHHost string `yaml:"ssh_host,omitempty"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() *Config {
	return &Config{
		ImageName: DefaultImageName,
		MountPath: DefaultMountPath,
	}
}

// LoadConfig reads doco.yaml from workDir.
func LoadConfig(fops FileOps, workDir string) (*Config, error) {
	path := filepath.Join(workDir, ConfigFileName)
	data, err := fops.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s not found in %s", ErrConfigNotFound, ConfigFileName, workDir)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}
	return cfg, nil
}

// ParseConfig decodes a YAML mapping into a Config. Unknown keys are ignored
// and missing or empty keys take their defaults.
func ParseConfig(data []byte) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedConfig, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrMalformedConfig)
	}

	cfg := DefaultConfig()
	if err := doc.Content[0].Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedConfig, err)
	}
	if cfg.ImageName == "" {
		cfg.ImageName = DefaultImageName
	}
	if cfg.MountPath == "" {
		cfg.MountPath = DefaultMountPath
	}
	return cfg, nil
}

// Validate checks the values an engine would otherwise reject halfway through a run.
func (c *Config) Validate() error {
	if _, err := name.ParseReference(c.ImageName); err != nil {
		return fmt.Errorf("%w: image_name %q: %w", ErrInvalidConfig, c.ImageName, err)
	}
	if c.Platform != "" {
		if _, err := v1.ParsePlatform(c.Platform); err != nil {
			return fmt.Errorf("%w: platform %q: %w", ErrInvalidConfig, c.Platform, err)
		}
	}
	// Container paths are unix paths whatever the host is.
	if !strings.HasPrefix(c.MountPath, "/") {
		return fmt.Errorf("%w: mount_path %q must be absolute", ErrInvalidConfig, c.MountPath)
	}
	return nil
}
