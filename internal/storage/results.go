package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Result is one won game.
type Result struct {
	ID        int64
	BallsUsed int
	Bricks    int
	Score     int
	Duration  time.Duration
	Engine    string
	CreatedAt time.Time
}

// SaveResult records a won game and returns its ID.
func (s *Store) SaveResult(r Result) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO results (balls_used, bricks, score, duration_ms, engine)
		 VALUES (?, ?, ?, ?, ?)`,
		r.BallsUsed, r.Bricks, r.Score, r.Duration.Milliseconds(), r.Engine,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const resultColumns = `id, balls_used, bricks, score, duration_ms, engine, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (Result, error) {
	var r Result
	var durationMS int64
	var createdAt any
	if err := row.Scan(&r.ID, &r.BallsUsed, &r.Bricks, &r.Score, &durationMS, &r.Engine, &createdAt); err != nil {
		return r, err
	}
	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// RecentResults returns up to limit results, newest first.
func (s *Store) RecentResults(limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// BestResult returns the win with the fewest balls used for the given
// brick count, ties broken by the shorter game. It returns nil if there
// is none.
func (s *Store) BestResult(bricks int) (*Result, error) {
	row := s.db.QueryRow(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE bricks = ?
		 ORDER BY balls_used ASC, duration_ms ASC, id ASC
		 LIMIT 1`,
		bricks,
	)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best result: %w", err)
	}
	return &r, nil
}

// ClearResults deletes every stored result.
func (s *Store) ClearResults() error {
	_, err := s.db.Exec("DELETE FROM results")
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}
