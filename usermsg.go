package doco

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

type UserMessenger interface {
	Message(ctx context.Context, msg string)
}

type terminalMessenger struct {
	writer io.Writer
	color  bool
}

// NewTerminalMessenger prints messages to writer, dimmed when writer is a terminal.
func NewTerminalMessenger(writer io.Writer) UserMessenger {
	color := false
	if f, ok := writer.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &terminalMessenger{writer: writer, color: color}
}

func (tm *terminalMessenger) Message(ctx context.Context, msg string) {
	slog.DebugContext(ctx, "userMsg", "msg", msg)
	if tm.writer == nil {
		return
	}
	if tm.color {
		msg = "\033[90m" + msg + "\033[0m"
	}
	fmt.Fprintln(tm.writer, msg)
}
