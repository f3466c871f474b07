package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// documentRepo implements DocumentRepo on the documents table.
type documentRepo struct {
	db *sql.DB
}

func (r *documentRepo) LoadDocument(ctx context.Context, key string) ([]byte, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("body").
		From(entsql.Table(tableDocuments)).
		Where(entsql.EQ("key", key)).
		Query()

	var body string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document %q: %w", key, err)
	}
	return []byte(body), nil
}

func (r *documentRepo) SaveDocument(ctx context.Context, key string, body []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableDocuments).
		Columns("key", "body", "updated_at").
		Values(key, string(body), toMillis(time.Now())).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save document %q: %w", key, err)
	}
	return nil
}
