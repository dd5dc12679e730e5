package doco

import (
	"os"
)

// FileOps is the slice of the filesystem doco reads and writes.
type FileOps interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	// WriteFileExclusive creates path and writes data to it. It fails with an
	// error satisfying errors.Is(err, fs.ErrExist) if path already exists.
	WriteFileExclusive(path string, data []byte, perm os.FileMode) error
}

type defaultFileOps struct{}

func NewDefaultFileOps() FileOps {
	return &defaultFileOps{}
}

func (f *defaultFileOps) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (f *defaultFileOps) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (f *defaultFileOps) WriteFileExclusive(path string, data []byte, perm os.FileMode) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
