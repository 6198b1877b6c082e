package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func run(hash, player string, d time.Duration) Run {
	return Run{MapHash: hash, MapID: hash + "-id", MapName: "Map " + hash, Player: player, Duration: d}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTemp(t)

	for _, r := range []Run{
		run("aaa", "alice", 40*time.Second),
		run("aaa", "bob", 25500*time.Millisecond),
		run("aaa", "carol", 90*time.Second),
		run("bbb", "alice", 5*time.Second),
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.BestRuns("aaa", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	want := []string{"bob", "alice", "carol"}
	for i, r := range runs {
		if r.Player != want[i] {
			t.Errorf("runs[%d].Player = %s, expected %s", i, r.Player, want[i])
		}
	}
	if runs[0].Duration != 25500*time.Millisecond {
		t.Errorf("Duration = %v, expected 25.5s", runs[0].Duration)
	}
	if runs[0].MapID != "aaa-id" || runs[0].MapName != "Map aaa" {
		t.Errorf("map fields = %q %q", runs[0].MapID, runs[0].MapName)
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreBestRunsLimitAndTies(t *testing.T) {
	store := openTemp(t)

	for i := 0; i < 15; i++ {
		store.SaveRun(run("aaa", "p", time.Duration(20-i)*time.Second))
	}
	first, _ := store.SaveRun(run("aaa", "first", time.Second))
	store.SaveRun(run("aaa", "second", time.Second))

	runs, err := store.BestRuns("aaa", 5)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Fatalf("Expected 5 runs, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].Player != "second" {
		t.Errorf("ties should keep insertion order, got %s then %s", runs[0].Player, runs[1].Player)
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].Duration < runs[i-1].Duration {
			t.Errorf("runs not sorted: %v before %v", runs[i-1].Duration, runs[i].Duration)
		}
	}

	runs, _ = store.BestRuns("aaa", 0)
	if len(runs) != 10 {
		t.Errorf("default limit returned %d runs, expected 10", len(runs))
	}
}

func TestStoreSaveRunValidation(t *testing.T) {
	store := openTemp(t)

	tests := []struct {
		name string
		run  Run
	}{
		{"no hash", Run{Duration: time.Second}},
		{"zero duration", Run{MapHash: "aaa"}},
		{"negative duration", Run{MapHash: "aaa", Duration: -time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.SaveRun(tt.run); err == nil {
				t.Error("SaveRun() should fail")
			}
		})
	}
}

func TestStoreBestTime(t *testing.T) {
	store := openTemp(t)

	if _, ok, err := store.BestTime("aaa"); err != nil || ok {
		t.Fatalf("BestTime() on empty map = ok %v, err %v", ok, err)
	}

	store.SaveRun(run("aaa", "p", 30*time.Second))
	store.SaveRun(run("aaa", "p", 12*time.Second))
	store.SaveRun(run("bbb", "p", time.Second))

	best, ok, err := store.BestTime("aaa")
	if err != nil || !ok {
		t.Fatalf("BestTime() = ok %v, err %v", ok, err)
	}
	if best != 12*time.Second {
		t.Errorf("BestTime() = %v, expected 12s", best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTemp(t)

	store.SaveRun(run("aaa", "p", time.Second))
	store.SaveRun(run("aaa", "p", 2*time.Second))
	store.SaveRun(run("bbb", "p", 3*time.Second))

	if err := store.ClearRuns("aaa"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	if runs, _ := store.BestRuns("aaa", 10); len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	if runs, _ := store.BestRuns("bbb", 10); len(runs) != 1 {
		t.Errorf("Other maps should not be affected by clearing")
	}
}

func TestStorePlayerRuns(t *testing.T) {
	store := openTemp(t)

	store.SaveRun(run("aaa", "alice", time.Second))
	store.SaveRun(run("bbb", "bob", time.Second))
	store.SaveRun(run("bbb", "alice", 2*time.Second))

	runs, err := store.PlayerRuns("alice", 10)
	if err != nil {
		t.Fatalf("PlayerRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].MapHash != "bbb" {
		t.Errorf("most recent run should come first, got map %s", runs[0].MapHash)
	}
}

func TestStoreAllMapStats(t *testing.T) {
	store := openTemp(t)

	store.SaveRun(run("bbb", "p", 10*time.Second))
	store.SaveRun(run("bbb", "p", 20*time.Second))
	store.SaveRun(run("aaa", "p", 4*time.Second))

	stats, err := store.AllMapStats()
	if err != nil {
		t.Fatalf("AllMapStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 maps, got %d", len(stats))
	}
	if stats[0].MapName != "Map aaa" {
		t.Errorf("stats should be ordered by name, first is %s", stats[0].MapName)
	}

	b := stats[1]
	if b.Runs != 2 || b.Best != 10*time.Second || b.Average != 15*time.Second {
		t.Errorf("stats for bbb = %+v", b)
	}
	if b.MapID != "bbb-id" {
		t.Errorf("MapID = %s", b.MapID)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
