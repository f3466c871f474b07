package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequence is the ordering shared by model calls and session turns, so a
// session can be replayed with its model calls interleaved.
//
// Draw numbers before opening a write transaction: the counter runs its
// own statement on the pool.
type sequence struct {
	mu sync.Mutex
	db *sql.DB
}

// Reserve returns n consecutive numbers.
func (s *sequence) Reserve(ctx context.Context, n int) ([]int64, error) {
	if n <= 0 {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var first int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE `+tableSequence+` SET next_val = next_val + ? WHERE id = 1 RETURNING next_val - ?`,
		n, n,
	).Scan(&first)
	if err != nil {
		return nil, fmt.Errorf("reserve sequence: %w", err)
	}

	out := make([]int64, n)
	for i := range out {
		out[i] = first + int64(i)
	}
	return out, nil
}

func (s *sequence) Next(ctx context.Context) (int64, error) {
	got, err := s.Reserve(ctx, 1)
	if err != nil {
		return 0, err
	}
	return got[0], nil
}
