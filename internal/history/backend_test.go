package history

import (
	"bytes"
	"errors"
	"io"
)

var errInjected = errors.New("injected failure")

// memBackend is an in-memory Backend for tests.
type memBackend struct {
	name      string
	data      []byte
	exists    bool
	readOnly  bool
	failWrite bool
	writes    int
}

func (m *memBackend) Name() string { return m.name }

func (m *memBackend) Exists() bool { return m.exists }

func (m *memBackend) OpenRead() (io.ReadCloser, error) {
	if !m.exists {
		return nil, errInjected
	}
	return io.NopCloser(bytes.NewReader(m.data)), nil
}

func (m *memBackend) OpenWrite() (io.WriteCloser, error) {
	if m.readOnly {
		return nil, errInjected
	}
	return &memWriter{backend: m}, nil
}

type memWriter struct {
	backend *memBackend
	buf     bytes.Buffer
}

func (w *memWriter) Write(p []byte) (int, error) {
	if w.backend.failWrite {
		return 0, errInjected
	}
	return w.buf.Write(p)
}

func (w *memWriter) Close() error {
	w.backend.data = w.buf.Bytes()
	w.backend.exists = true
	w.backend.writes++
	return nil
}
