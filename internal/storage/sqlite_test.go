package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

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
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveRound(300, 2, 45, EndBomb); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if _, err := store.SaveRound(1200, 3, 60, EndTimeout); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if _, err := store.SaveRound(700, 3, 60, EndTimeout); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}

	rounds, err := store.TopRounds(10)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}

	if len(rounds) != 3 {
		t.Fatalf("Expected 3 rounds, got %d", len(rounds))
	}

	// Should be sorted by score descending
	if rounds[0].Score != 1200 {
		t.Errorf("Expected highest score to be 1200, got %d", rounds[0].Score)
	}
	if rounds[1].Score != 700 {
		t.Errorf("Expected second score to be 700, got %d", rounds[1].Score)
	}
	if rounds[2].Score != 300 {
		t.Errorf("Expected third score to be 300, got %d", rounds[2].Score)
	}

	if rounds[2].EndReason != EndBomb {
		t.Errorf("Expected bomb ending, got %q", rounds[2].EndReason)
	}
	if rounds[0].Level != 3 {
		t.Errorf("Expected level 3, got %d", rounds[0].Level)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := Open(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Empty database returns 0
	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty database, got %d", high)
	}

	store.SaveRound(500, 2, 30, EndBomb)
	store.SaveRound(900, 3, 60, EndTimeout)

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 900 {
		t.Errorf("Expected high score 900, got %d", high)
	}
}

func TestStoreStats(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := Open(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRound(100, 1, 12, EndBomb)
	store.SaveRound(300, 2, 33, EndBomb)
	store.SaveRound(800, 3, 60, EndTimeout)

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}

	if stats.RoundsCount != 3 {
		t.Errorf("RoundsCount = %d, want 3", stats.RoundsCount)
	}
	if stats.HighScore != 800 {
		t.Errorf("HighScore = %d, want 800", stats.HighScore)
	}
	if stats.AvgScore != 400 {
		t.Errorf("AvgScore = %v, want 400", stats.AvgScore)
	}
	if stats.BombEndings != 2 {
		t.Errorf("BombEndings = %d, want 2", stats.BombEndings)
	}
}

func TestStoreClearRounds(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := Open(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRound(100, 1, 10, EndAbort)
	if err := store.ClearRounds(); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}

	rounds, err := store.TopRounds(10)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(rounds) != 0 {
		t.Errorf("Expected no rounds after clear, got %d", len(rounds))
	}
}
