package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nxadm/tail"
	"golang.org/x/term"
)

type LogsCmd struct {
	Follow bool   `short:"f" help:"keep printing entries as they are written"`
	Path   string `arg:"" optional:"" predictor:"file" help:"log file to read (defaults to --log-file)"`
}

func (c *LogsCmd) Run(ctx context.Context, cctx *Context) error {
	path := c.Path
	if path == "" {
		path = cctx.LogFile
	}

	t, err := tail.TailFile(path, tail.Config{
		Follow:        c.Follow,
		ReOpen:        c.Follow,
		MustExist:     true,
		CompleteLines: true,
		Logger:        tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("opening log %s: %w", path, err)
	}
	defer t.Cleanup()

	printer := newEntryPrinter(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
	for {
		select {
		case <-ctx.Done():
			return t.Stop()
		case line, ok := <-t.Lines:
			if !ok {
				return t.Wait()
			}
			if line.Err != nil {
				return line.Err
			}
			if err := printer.PrintLine(line.Text); err != nil {
				return err
			}
		}
	}
}
