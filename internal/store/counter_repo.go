package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/abhisek/lexio/internal/tracker"
)

// CounterRepo returns the daily-counter adapter.
func (s *Store) CounterRepo() tracker.DailyCounterStore {
	return &counterRepo{db: s.db}
}

type counterRepo struct {
	db *sqlx.DB
}

func (r *counterRepo) Increment(ctx context.Context, name, day string, n int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_counters (name, day, count) VALUES (?, ?, ?)
		ON CONFLICT(name, day) DO UPDATE SET count = count + excluded.count`,
		name, day, n)
	return err
}

func (r *counterRepo) Get(ctx context.Context, name, day string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT count FROM daily_counters WHERE name = ? AND day = ?`, name, day)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}
