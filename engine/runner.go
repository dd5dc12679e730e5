package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"
)

// Mode selects how a Command's stdio is wired.
type Mode int

const (
	// Captured streams the child's output to the user while keeping the tail
	// of it for error reports. Stdin is not attached.
	Captured Mode = iota
	// Interactive attaches the child to the invoking terminal.
	Interactive
)

func (m Mode) String() string {
	switch m {
	case Captured:
		return "captured"
	case Interactive:
		return "interactive"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

const (
	// maxTailBytes bounds how much captured output an ExitError carries.
	maxTailBytes = 4096

	cancelWaitDelay = 10 * time.Second
)

// Command is a single external process invocation.
type Command struct {
	// Args holds the program followed by its arguments.
	Args []string
	// Dir is the child's working directory.
	Dir string
	// Env is the complete child environment. It is never applied to the parent.
	Env []string
	// Mode selects captured or interactive stdio.
	Mode Mode
	// Stdout, if set, replaces the runner's stdout in Captured mode.
	Stdout io.Writer
}

func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Runner runs external commands to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExitError reports a command that started but exited unsuccessfully.
type ExitError struct {
	Command Command
	// Code is the exit status, or -1 if the child was killed by a signal.
	Code int
	// Signal is the signal that terminated the child, if any.
	Signal syscall.Signal
	// Tail is the end of the child's captured output. Empty in Interactive mode.
	// Error reports only its last line; the rest was already streamed to the user.
	Tail string
	Err  error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Command.Args[0], e.Code)
	if e.Signal != 0 {
		msg = fmt.Sprintf("%s terminated by signal %s", e.Command.Args[0], e.Signal)
	}
	if last := lastLine(e.Tail); last != "" {
		msg += ": " + last
	}
	return msg
}

// lastLine returns the last non-blank line of s, trimmed.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Interrupted reports whether the child ended because the user interrupted it.
func (e *ExitError) Interrupted() bool {
	return e.Signal == syscall.SIGINT || e.Signal == syscall.SIGTERM || e.Code == 130
}

type execRunner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewExecRunner returns a Runner that starts real processes wired to the given stdio.
func NewExecRunner(stdin io.Reader, stdout, stderr io.Writer) Runner {
	return &execRunner{stdin: stdin, stdout: stdout, stderr: stderr}
}

func (r *execRunner) Run(ctx context.Context, c Command) error {
	if len(c.Args) == 0 {
		return errors.New("empty command")
	}
	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	// On cancellation, interrupt the child the way a ^C would and give it
	// time to clean up (the engine removes --rm containers) before killing it.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = cancelWaitDelay
	slog.InfoContext(ctx, "Runner.Run", "cmd", c.String(), "dir", c.Dir, "mode", c.Mode.String())

	var tail *tailBuffer
	switch c.Mode {
	case Interactive:
		cmd.Stdin = r.stdin
		cmd.Stdout = r.stdout
		cmd.Stderr = r.stderr
	default:
		// Keep captured children out of the terminal's process group so a ^C
		// reaches us first and we cancel them through ctx.
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
		stdout := r.stdout
		if c.Stdout != nil {
			stdout = c.Stdout
		}
		tail = &tailBuffer{max: maxTailBytes}
		cmd.Stdout = io.MultiWriter(stdout, tail)
		cmd.Stderr = io.MultiWriter(r.stderr, tail)
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}
	slog.ErrorContext(ctx, "Runner.Run", "cmd", c.String(), "error", err)

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("%s: %w", c.Args[0], err)
	}
	ee := &ExitError{Command: c, Code: exitErr.ExitCode(), Err: err}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		ee.Signal = ws.Signal()
	}
	if tail != nil {
		ee.Tail = tail.String()
	}
	return ee
}

// tailBuffer is an io.Writer that keeps only the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	max int
	buf []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = t.buf[over:]
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.TrimSpace(string(t.buf))
}
