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

// sessionRepo implements SessionRepo on the quest_sessions and
// session_turns tables.
type sessionRepo struct {
	db  *sql.DB
	seq *sequence
}

var sessionColumns = []string{
	"id", "assignment_id", "stage", "presented", "correct", "stars_earned",
	"total", "completed", "created_at", "updated_at",
}

func (r *sessionRepo) SaveSession(ctx context.Context, rec SessionRecord, turns ...TurnRecord) error {
	// Sequence numbers come from a separate statement, so draw them before
	// the transaction takes the write lock.
	seqs, err := r.seq.Reserve(ctx, len(turns))
	if err != nil {
		return err
	}

	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableSessions).
		Columns(sessionColumns...).
		Values(
			rec.ID, rec.AssignmentID, rec.Stage, rec.Presented, rec.Correct, rec.StarsEarned,
			rec.Total, rec.Completed, toMillis(rec.CreatedAt), toMillis(rec.UpdatedAt),
		).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				for _, c := range []string{"stage", "presented", "correct", "stars_earned", "total", "completed", "updated_at"} {
					u.SetExcluded(c)
				}
			}),
		).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert session %s: %w", rec.ID, err)
	}

	for i, t := range turns {
		ts := t.Timestamp
		if ts.IsZero() {
			ts = now
		}
		query, args := entsql.Dialect(dialect.SQLite).
			Insert(tableSessionTurns).
			Columns("sequence", "session_id", "position", "role", "body", "timestamp").
			Values(seqs[i], rec.ID, t.Position, t.Role, string(t.Body), toMillis(ts)).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("append turn %d of session %s: %w", t.Position, rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session %s: %w", rec.ID, err)
	}
	return nil
}

func (r *sessionRepo) GetSession(ctx context.Context, id string) (*SessionRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(sessionColumns...).
		From(entsql.Table(tableSessions)).
		Where(entsql.EQ("id", id)).
		Query()

	rec, err := scanSession(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *sessionRepo) SessionTurns(ctx context.Context, id string) ([]TurnRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("sequence", "position", "role", "body", "timestamp").
		From(entsql.Table(tableSessionTurns)).
		Where(entsql.EQ("session_id", id)).
		OrderBy(entsql.Asc("position")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query turns of session %s: %w", id, err)
	}
	defer rows.Close()

	var out []TurnRecord
	for rows.Next() {
		var (
			t    TurnRecord
			body string
			ts   int64
		)
		if err := rows.Scan(&t.Sequence, &t.Position, &t.Role, &body, &ts); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		t.Body = []byte(body)
		t.Timestamp = fromMillis(ts)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *sessionRepo) SessionsForAssignment(ctx context.Context, assignmentID string) ([]SessionRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(sessionColumns...).
		From(entsql.Table(tableSessions)).
		Where(entsql.EQ("assignment_id", assignmentID)).
		OrderBy(entsql.Desc("updated_at")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions of %s: %w", assignmentID, err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func scanSession(row rowScanner) (*SessionRecord, error) {
	var (
		rec              SessionRecord
		created, updated int64
	)
	err := row.Scan(
		&rec.ID, &rec.AssignmentID, &rec.Stage, &rec.Presented, &rec.Correct, &rec.StarsEarned,
		&rec.Total, &rec.Completed, &created, &updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	rec.CreatedAt = fromMillis(created)
	rec.UpdatedAt = fromMillis(updated)
	return &rec, nil
}
