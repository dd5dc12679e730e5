package doco

import "errors"

var (
	ErrConfigNotFound     = errors.New("config not found")
	ErrMalformedConfig    = errors.New("malformed config")
	ErrInvalidConfig      = errors.New("invalid config")
	ErrConfigExists       = errors.New("config already exists")
	ErrDockerfileNotFound = errors.New("dockerfile not found")
	ErrSSHKeyNotFound     = errors.New("ssh key not found")
	ErrBuildFailed        = errors.New("image build failed")
	ErrRunFailed          = errors.New("container run failed")
)
