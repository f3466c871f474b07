package assignment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Backend loads and saves the whole assignment document.
type Backend interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error

	// ReadOnly reports whether Save is refused.
	ReadOnly() bool
}

func decodeDocument(data []byte) (*Document, error) {
	doc := &Document{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode assignments: %w", err)
	}
	return doc, nil
}

func encodeDocument(doc *Document) ([]byte, error) {
	if doc.Assignments == nil {
		doc = &Document{Assignments: []Assignment{}}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FileBackend keeps the document in a JSON file. A missing file is an
// empty collection; the file is created on first save.
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend for the JSON file at path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Load(_ context.Context) (*Document, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return &Document{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDocument(data)
}

func (b *FileBackend) Save(_ context.Context, doc *Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".assignments-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.path)
}

func (b *FileBackend) ReadOnly() bool { return false }

// EnvBackend serves a snapshot document from an environment variable.
// It is read-only.
type EnvBackend struct {
	name string
}

// NewEnvBackend creates a backend reading the variable name.
func NewEnvBackend(name string) *EnvBackend {
	return &EnvBackend{name: name}
}

func (b *EnvBackend) Load(_ context.Context) (*Document, error) {
	return decodeDocument([]byte(os.Getenv(b.name)))
}

func (b *EnvBackend) Save(context.Context, *Document) error {
	return ErrUnsupported
}

func (b *EnvBackend) ReadOnly() bool { return true }

// ReadOnly wraps b so that every Save is refused.
func ReadOnly(b Backend) Backend {
	return readOnlyBackend{b}
}

type readOnlyBackend struct {
	Backend
}

func (readOnlyBackend) Save(context.Context, *Document) error { return ErrUnsupported }

func (readOnlyBackend) ReadOnly() bool { return true }
