package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/settings"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if store.Path() != dbPath {
		t.Errorf("Path() = %q, expected %q", store.Path(), dbPath)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in       string
		expected string
	}{
		{"/tmp/x.db", "/tmp/x.db"},
		{"", ""},
		{"~/.breakout/breakout.db", filepath.Join(home, ".breakout/breakout.db")},
	}
	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil || got != tt.expected {
			t.Errorf("ExpandPath(%q) = %q, %v; expected %q", tt.in, got, err, tt.expected)
		}
	}
}

func TestSettingsDefaultsWhenEmpty(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !got.Equal(settings.Defaults()) {
		t.Errorf("Load() = %v, expected defaults %v", got, settings.Defaults())
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	store := openTestStore(t)
	want := settings.Settings{Balls: 2, Bricks: 15, Bounciness: 0.7}

	if err := store.Save(want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("Load() = %v, expected %v", got, want)
	}

	// The loaded values configure a session unchanged.
	s, err := breakout.New(config.DefaultBreakoutConfig(), got)
	if err != nil {
		t.Fatalf("breakout.New() failed: %v", err)
	}
	if !s.Settings().Equal(want) {
		t.Errorf("session settings = %v, expected %v", s.Settings(), want)
	}

	// Saving again overwrites.
	if err := store.Save(settings.Settings{Balls: 3, Bricks: 40, Bounciness: 0}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	got, _ = store.Load()
	if got.Balls != 3 || got.Bricks != 40 || got.Bounciness != 0 {
		t.Errorf("Load() after overwrite = %v", got)
	}
}

func TestSettingsPartialAndInvalid(t *testing.T) {
	store := openTestStore(t)

	_, err := store.db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?), (?, ?)",
		KeyBricks, "12", KeyBounciness, "bouncy",
	)
	if err != nil {
		t.Fatal(err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	expected := settings.Settings{Balls: 5, Bricks: 12, Bounciness: 1}
	if !got.Equal(expected) {
		t.Errorf("Load() = %v, expected %v", got, expected)
	}
}

func TestResetSettings(t *testing.T) {
	store := openTestStore(t)

	if err := store.Save(settings.Settings{Balls: 1, Bricks: 1, Bounciness: 0.1}); err != nil {
		t.Fatal(err)
	}
	if err := store.ResetSettings(); err != nil {
		t.Fatalf("ResetSettings() failed: %v", err)
	}
	got, _ := store.Load()
	if !got.Equal(settings.Defaults()) {
		t.Errorf("Load() after reset = %v, expected defaults", got)
	}
}

func TestResults(t *testing.T) {
	store := openTestStore(t)

	if best, err := store.BestResult(20); err != nil || best != nil {
		t.Fatalf("BestResult() on empty store = %v, %v; expected nil, nil", best, err)
	}

	results := []Result{
		{BallsUsed: 4, Bricks: 20, Score: 20, Duration: 90 * time.Second, Engine: "builtin"},
		{BallsUsed: 2, Bricks: 20, Score: 20, Duration: 120 * time.Second, Engine: "chipmunk"},
		{BallsUsed: 2, Bricks: 20, Score: 20, Duration: 60 * time.Second, Engine: "builtin"},
		{BallsUsed: 1, Bricks: 10, Score: 10, Duration: 30 * time.Second, Engine: "builtin"},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	recent, err := store.RecentResults(3)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("RecentResults(3) returned %d results", len(recent))
	}
	if recent[0].Bricks != 10 || recent[2].Engine != "chipmunk" {
		t.Errorf("RecentResults() order = %+v, expected newest first", recent)
	}
	if recent[0].Duration != 30*time.Second {
		t.Errorf("Duration = %v, expected 30s", recent[0].Duration)
	}
	if recent[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	best, err := store.BestResult(20)
	if err != nil {
		t.Fatalf("BestResult() failed: %v", err)
	}
	if best == nil || best.BallsUsed != 2 || best.Duration != 60*time.Second {
		t.Errorf("BestResult(20) = %+v, expected 2 balls in 60s", best)
	}

	if err := store.ClearResults(); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}
	if recent, _ := store.RecentResults(10); len(recent) != 0 {
		t.Errorf("RecentResults() after clear = %d results", len(recent))
	}
}

func TestWatcherSeesCommittedSettings(t *testing.T) {
	store := openTestStore(t)
	w, err := settings.NewWatcher(store.Path())
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	reader, err := Open(store.Path())
	if err != nil {
		t.Fatalf("Open() second connection failed: %v", err)
	}
	defer reader.Close()

	want := settings.Settings{Balls: 2, Bricks: 15, Bounciness: 0.7}
	saved := make(chan error, 1)
	go func() { saved <- store.Save(want) }()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case <-w.Events:
			got, err := reader.Load()
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if got.Equal(want) {
				if err := <-saved; err != nil {
					t.Fatalf("Save() failed: %v", err)
				}
				return
			}
		case <-timeout:
			got, _ := reader.Load()
			t.Fatalf("no change event after commit; last Load() = %v, expected %v", got, want)
		}
	}
}
