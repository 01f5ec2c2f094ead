package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const expectedTotalMigrations = 2

type testStore struct {
	name  string
	store *recordStore
}

func openTestSqliteBackend(t *testing.T) sqliteBackend {
	t.Helper()
	dbFilePath := filepath.Join(t.TempDir(), dbFileName)
	backend, err := openSqliteBackend(dbFilePath)
	if err != nil {
		t.Fatal(err)
	}
	return backend
}

// openTestStores returns one store per backend, closed when the test ends
func openTestStores(t *testing.T) []testStore {
	t.Helper()

	sqlite := openTestSqliteBackend(t)
	if _, err := sqlite.migrateDatabase(); err != nil {
		t.Fatal(err)
	}

	bdg, err := openBadgerBackend(badgerOptions{inMemory: true})
	if err != nil {
		t.Fatal(err)
	}

	stores := []testStore{
		{"memory", newRecordStore(newMemoryBackend())},
		{"sqlite", newRecordStore(sqlite)},
		{"badger", newRecordStore(bdg)},
	}
	for _, ts := range stores {
		ts.store.now = func() time.Time { return testEpoch }
		store := ts.store
		t.Cleanup(func() {
			if err := store.close(); err != nil {
				t.Error(err)
			}
		})
	}
	return stores
}

func TestMigrateDatabase(t *testing.T) {
	db := openTestSqliteBackend(t)
	defer db.close()

	count, err := db.migrateDatabase()
	if err != nil {
		t.Fatal(err)
	}
	if count != expectedTotalMigrations {
		t.Errorf("Migration count is %d, expected %d", count, expectedTotalMigrations)
	}

	count2, err := db.migrateDatabase()
	if err != nil {
		t.Fatal(err)
	}
	if count2 != 0 {
		t.Errorf("Migration count is %d, expected %d", count2, 0)
	}
}

func TestDefaultProgress(t *testing.T) {
	for _, ts := range openTestStores(t) {
		p := ts.store.getProgress()
		if p.CurrentLevel != 1 || p.TotalStars != 0 {
			t.Error(ts.name, "expected level 1 with no stars, got", p.CurrentLevel, p.TotalStars)
		}
		if len(p.UnlockedSongs) != 3 {
			t.Error(ts.name, "expected 3 unlocked songs, got", p.UnlockedSongs)
		}
		if p.LastPlayDate != "2024-03-01" {
			t.Error(ts.name, "expected today's date, got", p.LastPlayDate)
		}

		s := ts.store.getSettings()
		if !s.SoundEnabled || s.AnimalSoundsEnabled || s.Volume != 0.8 {
			t.Error(ts.name, "expected default settings, got", s)
		}
	}
}

func TestSaveGameScoreKeepsBest(t *testing.T) {
	for _, ts := range openTestStores(t) {
		if err := ts.store.saveGameScore(noteCatcherGameID, 900); err != nil {
			t.Fatal(err)
		}
		if err := ts.store.saveGameScore(noteCatcherGameID, 500); err != nil {
			t.Fatal(err)
		}
		if best := ts.store.getProgress().bestScore(noteCatcherGameID); best != 900 {
			t.Errorf("%s: best score is %d, expected %d", ts.name, best, 900)
		}

		if err := ts.store.saveGameScore(noteCatcherGameID, 1200); err != nil {
			t.Fatal(err)
		}
		if best := ts.store.getProgress().bestScore(noteCatcherGameID); best != 1200 {
			t.Errorf("%s: best score is %d, expected %d", ts.name, best, 1200)
		}
	}
}

func TestCompleteLessonIsIdempotent(t *testing.T) {
	for _, ts := range openTestStores(t) {
		for i := 0; i < 2; i++ {
			if err := ts.store.completeLesson("lesson-1", 3); err != nil {
				t.Fatal(err)
			}
		}
		p := ts.store.getProgress()
		if p.TotalStars != 3 {
			t.Errorf("%s: total stars is %d, expected %d", ts.name, p.TotalStars, 3)
		}
		if len(p.CompletedLessons) != 1 || p.CompletedLessons[0] != "lesson-1" {
			t.Error(ts.name, "expected lesson-1 completed once, got", p.CompletedLessons)
		}
		if p.CurrentLevel != 2 {
			t.Errorf("%s: level is %d, expected %d", ts.name, p.CurrentLevel, 2)
		}
	}
}

func TestLevelIsCapped(t *testing.T) {
	store := openMemoryStore()
	for i := 0; i < 15; i++ {
		if err := store.completeLesson("lesson-"+string(rune('a'+i)), 1); err != nil {
			t.Fatal(err)
		}
	}
	if level := store.getProgress().CurrentLevel; level != maxLevel {
		t.Error("Expected level capped at", maxLevel, "got", level)
	}
}

func TestProgressUpdates(t *testing.T) {
	for _, ts := range openTestStores(t) {
		if err := ts.store.unlockSong("ode-to-joy"); err != nil {
			t.Fatal(err)
		}
		if err := ts.store.unlockSong("ode-to-joy"); err != nil {
			t.Fatal(err)
		}
		total, err := ts.store.addStars(2)
		if err != nil {
			t.Fatal(err)
		}
		if total != 2 {
			t.Error(ts.name, "expected 2 stars, got", total)
		}

		ts.store.now = func() time.Time { return testEpoch.Add(48 * time.Hour) }
		if err := ts.store.updatePlayTime(15); err != nil {
			t.Fatal(err)
		}
		if err := ts.store.updatePlayTime(10); err != nil {
			t.Fatal(err)
		}

		p := ts.store.getProgress()
		if len(p.UnlockedSongs) != 4 {
			t.Error(ts.name, "expected 4 unlocked songs, got", p.UnlockedSongs)
		}
		if p.PlayTimeMinutes != 25 {
			t.Error(ts.name, "expected 25 minutes, got", p.PlayTimeMinutes)
		}
		if p.LastPlayDate != "2024-03-03" {
			t.Error(ts.name, "expected last play date to move, got", p.LastPlayDate)
		}

		if err := ts.store.resetProgress(); err != nil {
			t.Fatal(err)
		}
		p = ts.store.getProgress()
		if p.TotalStars != 0 || p.PlayTimeMinutes != 0 || len(p.UnlockedSongs) != 3 {
			t.Error(ts.name, "expected fresh progress after reset, got", p)
		}
	}
}

func TestSaveSettings(t *testing.T) {
	for _, ts := range openTestStores(t) {
		settings := settingsRecord{SoundEnabled: false, AnimalSoundsEnabled: true, Volume: 0.5}
		if err := ts.store.saveSettings(settings); err != nil {
			t.Fatal(err)
		}
		if got := ts.store.getSettings(); got != settings {
			t.Error(ts.name, "expected", settings, "got", got)
		}
	}
}

func TestDecodeProgressDefaultsMissingFields(t *testing.T) {
	p := decodeProgress([]byte(`{"totalStars": 7, "somethingNew": true}`), testEpoch)
	if p.TotalStars != 7 {
		t.Error("Expected 7 stars, got", p.TotalStars)
	}
	if p.CurrentLevel != 1 {
		t.Error("Expected default level, got", p.CurrentLevel)
	}
	if p.GameScores == nil || p.CompletedLessons == nil {
		t.Error("Expected empty collections instead of nil")
	}
	if len(p.UnlockedSongs) != 3 {
		t.Error("Expected default unlocked songs, got", p.UnlockedSongs)
	}
}

func TestDecodeProgressRepairsOrResets(t *testing.T) {
	// trailing comma and a missing closing brace
	repaired := decodeProgress([]byte(`{"totalStars": 4, "currentLevel": 2,`), testEpoch)
	if repaired.TotalStars != 4 || repaired.CurrentLevel != 2 {
		t.Error("Expected the record to be repaired, got", repaired)
	}

	garbage := decodeProgress([]byte(`{"totalStars": "lots"}`), testEpoch)
	if garbage.TotalStars != 0 || garbage.CurrentLevel != 1 {
		t.Error("Expected defaults for a record of the wrong shape, got", garbage)
	}
}

func TestCorruptStoredRecordReadsAsDefaults(t *testing.T) {
	backend := newMemoryBackend()
	backend.records[progressRecordKey] = []byte(`{"gameScores": [1, 2, 3]}`)
	store := newRecordStore(backend)

	p := store.getProgress()
	if p.CurrentLevel != 1 || len(p.GameScores) != 0 {
		t.Error("Expected defaults, got", p)
	}

	if err := store.saveGameScore(rhythmTapGameID, 300); err != nil {
		t.Fatal(err)
	}
	if best := store.getProgress().bestScore(rhythmTapGameID); best != 300 {
		t.Error("Expected the store to recover on the next write, got", best)
	}
}

func TestRecordAndVerifyResults(t *testing.T) {
	for _, ts := range openTestStores(t) {
		for i := 0; i < 4; i++ {
			r := newResult(melodyCopyGameID, 100*i, melodyCopyMaxScore, gameStarThresholds, testEpoch.Add(time.Duration(i)*time.Minute))
			if err := ts.store.recordResult(r); err != nil {
				t.Fatal(err)
			}
		}
		other := newResult(rhythmTapGameID, 1200, rhythmTapMaxScore, rhythmStarThresholds, testEpoch)
		if err := ts.store.recordResult(other); err != nil {
			t.Fatal(err)
		}

		results, err := ts.store.verifiedResults(melodyCopyGameID, 3)
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != 3 {
			t.Fatal(ts.name, "expected 3 results, got", len(results))
		}
		if results[0].Score != 300 || results[2].Score != 100 {
			t.Error(ts.name, "expected newest first, got", results)
		}
		for _, r := range results {
			if r.GameID != melodyCopyGameID {
				t.Error(ts.name, "expected only melody copy results, got", r.GameID)
			}
		}

		all, err := ts.store.verifiedResults("", 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 5 {
			t.Error(ts.name, "expected 5 results in total, got", len(all))
		}
	}
}

func TestTamperedResultIsSkipped(t *testing.T) {
	backend := newMemoryBackend()
	store := newRecordStore(backend)
	if err := store.recordResult(newResult(noteCatcherGameID, 400, noteCatcherMaxScore, gameStarThresholds, testEpoch)); err != nil {
		t.Fatal(err)
	}
	if err := store.recordResult(newResult(noteCatcherGameID, 500, noteCatcherMaxScore, gameStarThresholds, testEpoch)); err != nil {
		t.Fatal(err)
	}

	backend.results[0].Score = 1100

	results, err := store.verifiedResults(noteCatcherGameID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Score != 500 {
		t.Error("Expected only the untouched result, got", results)
	}
}

func TestFingerprintResult(t *testing.T) {
	id := "6f1c7f3e-4b7a-4a53-9a0e-0c6c5a3f2b11"
	f1, err := fingerprintResult(id, noteCatcherGameID, 900, 3, testEpoch.Unix())
	if err != nil {
		t.Fatal(err)
	}
	f2, _ := fingerprintResult(id, noteCatcherGameID, 900, 3, testEpoch.Unix())
	if f1 != f2 {
		t.Error("Expected fingerprint to be stable")
	}
	if len(f1) != 64 {
		t.Error("Expected a hex sha256, got", f1)
	}

	f3, _ := fingerprintResult(id, noteCatcherGameID, 901, 3, testEpoch.Unix())
	if f1 == f3 {
		t.Error("Expected a different score to change the fingerprint")
	}

	if _, err := fingerprintResult("not-a-uuid", noteCatcherGameID, 1, 1, 1); err == nil {
		t.Error("Expected an invalid id to fail")
	}
}

func TestOpenSqliteStoreCreatesDataFolder(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "Piano Pals")
	store, err := openSqliteStore(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	defer store.close()

	if _, err := os.Stat(filepath.Join(dataDir, ".db", dbFileName)); err != nil {
		t.Error("Expected the database file to exist:", err)
	}
	if err := store.completeLesson("lesson-1", 2); err != nil {
		t.Fatal(err)
	}
}

func TestOpenBadgerStorePersists(t *testing.T) {
	dataDir := t.TempDir()
	store, err := openBadgerStore(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.saveGameScore(melodyCopyGameID, 400); err != nil {
		t.Fatal(err)
	}
	if err := store.close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := openBadgerStore(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.close()
	if best := reopened.getProgress().bestScore(melodyCopyGameID); best != 400 {
		t.Error("Expected score to survive a reopen, got", best)
	}
}

func TestGetMigrationFilePaths(t *testing.T) {
	entries, err := getMigrationFilePaths()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != expectedTotalMigrations {
		t.Errorf("Found %d migration files, expected %d", len(entries), expectedTotalMigrations)
	}
}
