package storage

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-breakout/internal/settings"
)

// Setting keys. They match the keys the mobile game stored.
const (
	KeyBalls      = "Number Of Balls"
	KeyBricks     = "Number Of Bricks"
	KeyBounciness = "Ball Bounciness"
)

var _ settings.Store = (*Store)(nil)

// Load reads the stored settings. Missing or unparsable values fall back
// to settings.Defaults.
func (s *Store) Load() (settings.Settings, error) {
	out := settings.Defaults()

	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return out, fmt.Errorf("storage: cannot query settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return out, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		switch key {
		case KeyBalls:
			if n, err := strconv.Atoi(value); err == nil {
				out.Balls = n
			}
		case KeyBricks:
			if n, err := strconv.Atoi(value); err == nil {
				out.Bricks = n
			}
		case KeyBounciness:
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				out.Bounciness = f
			}
		}
	}

	if err := rows.Err(); err != nil {
		return out, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Save stores all settings in one transaction.
func (s *Store) Save(set settings.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	values := map[string]string{
		KeyBalls:      strconv.Itoa(set.Balls),
		KeyBricks:     strconv.Itoa(set.Bricks),
		KeyBounciness: strconv.FormatFloat(set.Bounciness, 'g', -1, 64),
	}
	for key, value := range values {
		_, err := tx.Exec(
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save setting %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit settings: %w", err)
	}
	return nil
}

// ResetSettings deletes every stored setting so Load returns defaults.
func (s *Store) ResetSettings() error {
	_, err := s.db.Exec("DELETE FROM settings")
	if err != nil {
		return fmt.Errorf("storage: cannot reset settings: %w", err)
	}
	return nil
}
