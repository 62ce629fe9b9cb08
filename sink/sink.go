// Package sink abstracts the destinations that encoded files are streamed to.
//
// A Sink creates named objects and hands back a writer; the object is complete
// once the writer has been closed without error. Local writes to the file
// system. Remote stores live in the miniosink and s3sink subpackages and are
// built on Upload.
package sink

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// Sink creates named objects for writing.
type Sink interface {
	// Create returns a writer for the object called name. An existing object
	// with the same name is replaced. Close must be called to complete the
	// object and reports any error from finalizing it.
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}

// Local writes objects as files. Relative names are resolved against Dir.
type Local struct {
	Dir string
}

var _ Sink = Local{}

// Path returns the file path used for name.
func (l Local) Path(name string) string {
	if l.Dir == "" || filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(l.Dir, name)
}

// Create creates or truncates the file for name.
func (l Local) Create(_ context.Context, name string) (io.WriteCloser, error) {
	return os.Create(l.Path(name))
}

// Memory keeps objects in memory. It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
}

var _ Sink = (*Memory)(nil)

// NewMemory creates an empty Memory sink.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

// Create returns a writer that stores the object when closed.
func (m *Memory) Create(_ context.Context, name string) (io.WriteCloser, error) {
	return &memoryObject{sink: m, name: name}, nil
}

// Object returns the stored bytes of name.
func (m *Memory) Object(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.objects[name]

	return data, ok
}

type memoryObject struct {
	sink   *Memory
	name   string
	buf    bytes.Buffer
	closed bool
}

func (o *memoryObject) Write(p []byte) (int, error) {
	if o.closed {
		return 0, os.ErrClosed
	}

	return o.buf.Write(p)
}

func (o *memoryObject) Close() error {
	if o.closed {
		return os.ErrClosed
	}
	o.closed = true

	o.sink.mu.Lock()
	o.sink.objects[o.name] = o.buf.Bytes()
	o.sink.mu.Unlock()

	return nil
}

// UploadFunc consumes an object body until EOF and stores it.
type UploadFunc func(ctx context.Context, body io.Reader) error

// Upload starts upload in the background and returns a writer feeding it
// through an io.Pipe. Close signals EOF and waits for the upload result.
func Upload(ctx context.Context, upload UploadFunc) io.WriteCloser {
	pr, pw := io.Pipe()
	w := &uploadWriter{
		pw:   pw,
		done: make(chan error, 1),
	}

	go func() {
		err := upload(ctx, pr)
		_ = pr.CloseWithError(err)
		w.done <- err
	}()

	return w
}

type uploadWriter struct {
	pw     *io.PipeWriter
	done   chan error
	closed atomic.Bool
}

func (w *uploadWriter) Write(p []byte) (int, error) {
	if w.closed.Load() {
		return 0, io.ErrClosedPipe
	}

	return w.pw.Write(p)
}

func (w *uploadWriter) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return io.ErrClosedPipe
	}
	if err := w.pw.Close(); err != nil {
		return err
	}

	return <-w.done
}
