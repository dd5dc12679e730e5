package doco

import (
	"context"
	"io/fs"
	"os"
	"sync"

	"github.com/banksean/doco/engine"
)

// mockFileOps implements FileOps over an in-memory map of absolute paths.
type mockFileOps struct {
	files map[string][]byte
	reads []string
	stats []string
}

func newMockFileOps(files map[string]string) *mockFileOps {
	m := &mockFileOps{files: map[string][]byte{}}
	for k, v := range files {
		m.files[k] = []byte(v)
	}
	return m
}

func (m *mockFileOps) Stat(path string) (os.FileInfo, error) {
	m.stats = append(m.stats, path)
	if _, ok := m.files[path]; ok {
		return nil, nil // File exists
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

func (m *mockFileOps) ReadFile(path string) ([]byte, error) {
	m.reads = append(m.reads, path)
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *mockFileOps) WriteFileExclusive(path string, data []byte, perm os.FileMode) error {
	if _, ok := m.files[path]; ok {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrExist}
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

// mockRunner records every command instead of running it.
type mockRunner struct {
	cmds    []engine.Command
	runFunc func(ctx context.Context, cmd engine.Command) error
}

func (m *mockRunner) Run(ctx context.Context, cmd engine.Command) error {
	m.cmds = append(m.cmds, cmd)
	if m.runFunc != nil {
		return m.runFunc(ctx, cmd)
	}
	return nil
}

func (m *mockRunner) modes() []engine.Mode {
	var ret []engine.Mode
	for _, c := range m.cmds {
		ret = append(ret, c.Mode)
	}
	return ret
}

// recordingMessenger keeps every message for assertions.
type recordingMessenger struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recordingMessenger) Message(ctx context.Context, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}
