package history

import (
	"io"
	"os"
	"path/filepath"
)

// FileBackend stores the history file at a fixed filesystem path,
// typically on a removable storage mount.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend for the history file at path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// FileBackends returns one FileBackend per path, preserving order.
func FileBackends(paths []string) []Backend {
	backends := make([]Backend, 0, len(paths))
	for _, p := range paths {
		backends = append(backends, NewFileBackend(p))
	}
	return backends
}

func (b *FileBackend) Name() string {
	return b.path
}

func (b *FileBackend) Exists() bool {
	f, err := os.Open(b.path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

func (b *FileBackend) OpenRead() (io.ReadCloser, error) {
	return os.Open(b.path)
}

// OpenWrite creates or truncates the file. The parent directory must
// already exist: a missing mount point means the device is absent.
func (b *FileBackend) OpenWrite() (io.WriteCloser, error) {
	if _, err := os.Stat(filepath.Dir(b.path)); err != nil {
		return nil, err
	}
	return os.OpenFile(b.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, defaultFilePerm)
}
