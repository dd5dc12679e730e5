package main

import "context"

type InitCmd struct{}

func (c *InitCmd) Run(ctx context.Context, cctx *Context) error {
	_, err := cctx.launcher.Init(ctx)
	return err
}
