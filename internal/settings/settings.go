// Package settings holds the player-facing game settings and the
// persistence contract the game session reads them through.
package settings

import (
	"fmt"
	"math"
	"sync"
)

// Limits applied by Clamp.
const (
	MaxBalls  = 3
	MaxBricks = 40
)

// Settings are the values a player can change between games.
type Settings struct {
	Balls      int     `yaml:"balls" json:"balls"`
	Bricks     int     `yaml:"bricks" json:"bricks"`
	Bounciness float64 `yaml:"bounciness" json:"bounciness"`
}

// Defaults returns the settings used when nothing is stored.
// Balls is above MaxBalls on purpose: the stored default is five and the
// session only ever runs three of them.
func Defaults() Settings {
	return Settings{
		Balls:      5,
		Bricks:     20,
		Bounciness: 1.0,
	}
}

// Clamp bounds every field to its playable range.
func (s Settings) Clamp() Settings {
	s.Balls = min(max(s.Balls, 1), MaxBalls)
	s.Bricks = min(max(s.Bricks, 1), MaxBricks)
	if math.IsNaN(s.Bounciness) {
		s.Bounciness = Defaults().Bounciness
	}
	s.Bounciness = min(max(s.Bounciness, 0), 1)
	return s
}

// Equal reports whether both settings hold the same values.
func (s Settings) Equal(other Settings) bool {
	return s.Balls == other.Balls && s.Bricks == other.Bricks && s.Bounciness == other.Bounciness
}

// NeedsRestart reports whether moving from s to other requires a new game.
// Bounciness alone can be applied to a running game.
func (s Settings) NeedsRestart(other Settings) bool {
	return s.Balls != other.Balls || s.Bricks != other.Bricks
}

func (s Settings) String() string {
	return fmt.Sprintf("balls=%d bricks=%d bounciness=%.2f", s.Balls, s.Bricks, s.Bounciness)
}

// Store loads and saves settings. Absent values load as Defaults.
type Store interface {
	Load() (Settings, error)
	Save(Settings) error
}

// MemoryStore is a Store kept in memory.
type MemoryStore struct {
	mu    sync.Mutex
	saved *Settings
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return Defaults(), nil
	}
	return *m.saved, nil
}

func (m *MemoryStore) Save(s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = &s
	return nil
}
