package assignment

import (
	"context"

	"github.com/abhisek/homeworkpal/internal/store"
)

// DocumentKey is the key the collection is stored under in the SQLite
// document table.
const DocumentKey = "assignments"

// StoreBackend keeps the document in the local SQLite store.
type StoreBackend struct {
	repo store.DocumentRepo
}

// NewStoreBackend creates a backend on repo.
func NewStoreBackend(repo store.DocumentRepo) *StoreBackend {
	return &StoreBackend{repo: repo}
}

func (b *StoreBackend) Load(ctx context.Context) (*Document, error) {
	data, err := b.repo.LoadDocument(ctx, DocumentKey)
	if err != nil {
		return nil, err
	}
	return decodeDocument(data)
}

func (b *StoreBackend) Save(ctx context.Context, doc *Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	return b.repo.SaveDocument(ctx, DocumentKey, data)
}

func (b *StoreBackend) ReadOnly() bool { return false }
