package main

import (
	"fmt"

	"github.com/banksean/doco/version"
)

type VersionCmd struct {
	Verbose bool `short:"v" help:"print each field on its own line"`
}

func (c *VersionCmd) Run(cctx *Context) error {
	info := version.Get()
	if !c.Verbose {
		fmt.Println(info.String())
		return nil
	}
	fmt.Printf("Version: %s\n", info.Version)
	fmt.Printf("Git Commit: %s\n", info.GitCommit)
	fmt.Printf("Build Time: %s\n", info.BuildTime)
	fmt.Printf("Modified: %t\n", info.Modified)
	fmt.Printf("Go Version: %s\n", info.GoVersion)
	return nil
}
