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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreKVPutGet(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Missing key
	_, ok, err := store.Get("santavors-meta")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if ok {
		t.Error("Expected missing key")
	}

	// Put then get
	if err := store.Put("santavors-meta", `{"v":1}`); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	v, ok, err := store.Get("santavors-meta")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !ok || v != `{"v":1}` {
		t.Errorf("Get() = %q, %v", v, ok)
	}

	// Upsert overwrites
	if err := store.Put("santavors-meta", `{"v":2}`); err != nil {
		t.Fatalf("Put() overwrite failed: %v", err)
	}
	v, _, _ = store.Get("santavors-meta")
	if v != `{"v":2}` {
		t.Errorf("Expected overwritten value, got %q", v)
	}

	// Delete
	if err := store.Delete("santavors-meta"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	_, ok, _ = store.Get("santavors-meta")
	if ok {
		t.Error("Key still present after delete")
	}
}

func TestStoreSaveAndRetrieveRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	runs := []RunEntry{
		{ClassID: "santa", Score: 100, Kills: 12, Wave: 2},
		{ClassID: "elf", Score: 50, Kills: 6, Wave: 1},
		{ClassID: "santa", Score: 200, Kills: 55, Wave: 6, StreakPeak: 7, BossDefeated: true},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(got))
	}

	// Should be sorted descending by score
	if got[0].Score != 200 || got[1].Score != 100 || got[2].Score != 50 {
		t.Errorf("Runs not in expected order: %v", got)
	}
	if !got[0].BossDefeated {
		t.Error("Boss flag lost on round trip")
	}
	if got[0].ClassID != "santa" || got[0].Kills != 55 || got[0].Wave != 6 || got[0].StreakPeak != 7 {
		t.Errorf("Run fields mismatch: %+v", got[0])
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		store.SaveRun(RunEntry{ClassID: "santa", Score: (i + 1) * 100})
	}

	got, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(got))
	}
	if got[0].Score != 500 || got[1].Score != 400 || got[2].Score != 300 {
		t.Errorf("Runs not in expected order: %v", got)
	}
}

func TestStoreBestScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No runs yet
	best, err := store.BestScore()
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best score of 0 with no runs, got %d", best)
	}

	store.SaveRun(RunEntry{ClassID: "santa", Score: 100})
	store.SaveRun(RunEntry{ClassID: "elf", Score: 300})
	store.SaveRun(RunEntry{ClassID: "santa", Score: 200})

	best, err = store.BestScore()
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected best score of 300, got %d", best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(RunEntry{ClassID: "santa", Score: 100})
	store.SaveRun(RunEntry{ClassID: "elf", Score: 200})

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	n, err := store.RunCount()
	if err != nil {
		t.Fatalf("RunCount() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", n)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
