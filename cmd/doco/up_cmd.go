package main

import (
	"context"

	"github.com/banksean/doco"
)

type UpCmd struct {
	NoBuild    bool   `help:"skip the image build and run image_name as it is"`
	Dockerfile string `default:"Dockerfile" predictor:"file" placeholder:"<path>" help:"Dockerfile to build from, relative to the current directory"`
}

func (c *UpCmd) Run(ctx context.Context, cctx *Context) error {
	return cctx.launcher.Up(ctx, doco.UpOptions{
		NoBuild:    c.NoBuild,
		Dockerfile: c.Dockerfile,
	})
}
