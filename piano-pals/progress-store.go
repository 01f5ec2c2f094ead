package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/kaptinlin/jsonrepair"
	"github.com/pkg/errors"
)

// Usage:
// store := newRecordStore(backend)
// store.completeLesson("lesson-1", 3)
// store.saveGameScore("note-catcher", 900) // only kept if it beats the best
// store.getProgress()
// store.close()

const (
	progressRecordKey = "kids-piano-progress"
	settingsRecordKey = "kids-piano-settings"
	maxLevel          = 10
)

type progressStore interface {
	getProgress() progressRecord
	getSettings() settingsRecord
	saveSettings(s settingsRecord) error
	saveGameScore(gameID string, score int) error
	completeLesson(lessonID string, stars int) error
	unlockSong(songID string) error
	addStars(count int) (int, error)
	updatePlayTime(minutes int) error
	resetProgress() error
	recordResult(r result) error
	verifiedResults(gameID string, limit int) ([]storedResult, error)
	close() error
}

// recordBackend is the storage engine under a recordStore. updateRecord must
// run the read and the write as one atomic step. Returning nil bytes from
// the update func skips the write.
type recordBackend interface {
	loadRecord(key string) ([]byte, error)
	updateRecord(key string, update func(current []byte) ([]byte, error)) error
	insertResult(r storedResult) error
	listResults(gameID string) ([]storedResult, error)
	close() error
}

type progressRecord struct {
	CurrentLevel     int            `json:"currentLevel"`
	TotalStars       int            `json:"totalStars"`
	CompletedLessons []string       `json:"completedLessons"`
	UnlockedSongs    []string       `json:"unlockedSongs"`
	Achievements     []string       `json:"achievements"`
	PlayTimeMinutes  int            `json:"playTimeMinutes"`
	LastPlayDate     string         `json:"lastPlayDate"`
	GameScores       map[string]int `json:"gameScores"`
}

type settingsRecord struct {
	SoundEnabled        bool    `json:"soundEnabled"`
	AnimalSoundsEnabled bool    `json:"animalSoundsEnabled"`
	Volume              float64 `json:"volume"`
}

func defaultProgress(today time.Time) progressRecord {
	return progressRecord{
		CurrentLevel:     1,
		CompletedLessons: []string{},
		UnlockedSongs:    []string{"twinkle-twinkle", "mary-lamb", "happy-birthday"},
		Achievements:     []string{},
		LastPlayDate:     dateString(today),
		GameScores:       map[string]int{},
	}
}

func defaultSettingsRecord() settingsRecord {
	return settingsRecord{
		SoundEnabled: true,
		Volume:       0.8,
	}
}

func (p progressRecord) hasCompleted(lessonID string) bool {
	return containsString(p.CompletedLessons, lessonID)
}

func (p progressRecord) bestScore(gameID string) int {
	return p.GameScores[gameID]
}

// decodeRecord fills v from data on top of whatever v already holds, so
// fields missing from data keep their defaults. Damaged JSON is repaired
// once before giving up.
func decodeRecord(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	if _, ok := err.(*json.SyntaxError); ok {
		fixed, err := jsonrepair.JSONRepair(string(data))
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(fixed), v)
	}
	return err
}

func decodeProgress(data []byte, today time.Time) progressRecord {
	p := defaultProgress(today)
	if len(data) == 0 {
		return p
	}
	if err := decodeRecord(data, &p); err != nil {
		log.Error("Corrupt progress record, using defaults", "err", err)
		return defaultProgress(today)
	}
	if p.CompletedLessons == nil {
		p.CompletedLessons = []string{}
	}
	if p.UnlockedSongs == nil {
		p.UnlockedSongs = []string{}
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
	if p.GameScores == nil {
		p.GameScores = map[string]int{}
	}
	return p
}

func decodeSettings(data []byte) settingsRecord {
	s := defaultSettingsRecord()
	if len(data) == 0 {
		return s
	}
	if err := decodeRecord(data, &s); err != nil {
		log.Error("Corrupt settings record, using defaults", "err", err)
		return defaultSettingsRecord()
	}
	return s
}

type recordStore struct {
	backend recordBackend
	now     func() time.Time
}

func newRecordStore(backend recordBackend) *recordStore {
	return &recordStore{backend: backend, now: time.Now}
}

func (s *recordStore) getProgress() progressRecord {
	data, err := s.backend.loadRecord(progressRecordKey)
	if err != nil {
		log.Error("Failed to load progress", "err", err)
		return defaultProgress(s.now())
	}
	return decodeProgress(data, s.now())
}

func (s *recordStore) getSettings() settingsRecord {
	data, err := s.backend.loadRecord(settingsRecordKey)
	if err != nil {
		log.Error("Failed to load settings", "err", err)
		return defaultSettingsRecord()
	}
	return decodeSettings(data)
}

func (s *recordStore) saveSettings(settings settingsRecord) error {
	err := s.backend.updateRecord(settingsRecordKey, func(_ []byte) ([]byte, error) {
		return json.Marshal(settings)
	})
	return errors.Wrap(err, "saving settings")
}

// updateProgress runs change against the stored record inside one
// read-modify-write. change returns false when nothing needs saving.
func (s *recordStore) updateProgress(change func(p *progressRecord) bool) error {
	today := s.now()
	err := s.backend.updateRecord(progressRecordKey, func(current []byte) ([]byte, error) {
		p := decodeProgress(current, today)
		if !change(&p) {
			return nil, nil
		}
		return json.Marshal(p)
	})
	return errors.Wrap(err, "updating progress")
}

func (s *recordStore) saveGameScore(gameID string, score int) error {
	return s.updateProgress(func(p *progressRecord) bool {
		if score <= p.GameScores[gameID] {
			// don't update if the new score isn't better than the old one
			return false
		}
		p.GameScores[gameID] = score
		return true
	})
}

func (s *recordStore) completeLesson(lessonID string, stars int) error {
	return s.updateProgress(func(p *progressRecord) bool {
		if p.hasCompleted(lessonID) {
			return false
		}
		p.CompletedLessons = append(p.CompletedLessons, lessonID)
		p.TotalStars += stars
		p.CurrentLevel = minInt(maxLevel, 1+len(p.CompletedLessons))
		return true
	})
}

func (s *recordStore) unlockSong(songID string) error {
	return s.updateProgress(func(p *progressRecord) bool {
		if containsString(p.UnlockedSongs, songID) {
			return false
		}
		p.UnlockedSongs = append(p.UnlockedSongs, songID)
		return true
	})
}

func (s *recordStore) addStars(count int) (int, error) {
	total := 0
	err := s.updateProgress(func(p *progressRecord) bool {
		p.TotalStars += count
		total = p.TotalStars
		return true
	})
	return total, err
}

func (s *recordStore) updatePlayTime(minutes int) error {
	today := dateString(s.now())
	return s.updateProgress(func(p *progressRecord) bool {
		p.PlayTimeMinutes += minutes
		p.LastPlayDate = today
		return true
	})
}

func (s *recordStore) resetProgress() error {
	fresh := defaultProgress(s.now())
	err := s.backend.updateRecord(progressRecordKey, func(_ []byte) ([]byte, error) {
		return json.Marshal(fresh)
	})
	return errors.Wrap(err, "resetting progress")
}

// storedResult is one row of game history. The fingerprint makes hand
// edited rows easy to spot.
type storedResult struct {
	ID          string `msgpack:"id"`
	GameID      string `msgpack:"gameId"`
	Score       int    `msgpack:"score"`
	Stars       int    `msgpack:"stars"`
	Timestamp   int64  `msgpack:"timestamp"`
	Fingerprint string `msgpack:"fingerprint"`
}

func (s *recordStore) recordResult(r result) error {
	at := r.at
	if at.IsZero() {
		at = s.now()
	}
	row := storedResult{
		ID:        uuid.New().String(),
		GameID:    r.gameID,
		Score:     r.score,
		Stars:     r.stars,
		Timestamp: at.Unix(),
	}

	fingerprint, err := fingerprintResult(row.ID, row.GameID, row.Score, row.Stars, row.Timestamp)
	if err != nil {
		return errors.Wrap(err, "fingerprinting result")
	}
	row.Fingerprint = fingerprint

	return errors.Wrap(s.backend.insertResult(row), "recording result")
}

// verifiedResults returns the newest results for gameID, skipping any row
// whose fingerprint doesn't match. An empty gameID means every game.
func (s *recordStore) verifiedResults(gameID string, limit int) ([]storedResult, error) {
	rows, err := s.backend.listResults(gameID)
	if err != nil {
		return nil, errors.Wrap(err, "listing results")
	}

	verified := make([]storedResult, 0, len(rows))
	for _, row := range rows {
		ok, err := verifyResult(row)
		if err != nil {
			log.Error("Failed to verify result", "id", row.ID, "err", err)
			continue
		}
		if ok {
			verified = append(verified, row)
		}
	}

	sort.SliceStable(verified, func(i, j int) bool {
		return verified[i].Timestamp > verified[j].Timestamp
	})
	if limit > 0 && len(verified) > limit {
		verified = verified[:limit]
	}
	return verified, nil
}

func (s *recordStore) close() error {
	return s.backend.close()
}

func fingerprintResult(id string, gameID string, score int, stars int, timestamp int64) (string, error) {
	rowID, err := uuid.Parse(id)
	if err != nil {
		return "", err
	}

	resultHash := sha256.New()
	resultHash.Write(rowID[:])
	resultHash.Write([]byte(gameID))

	buff := new(bytes.Buffer)
	err = binary.Write(buff, binary.LittleEndian, uint32(score))
	if err != nil {
		return "", err
	}

	err = binary.Write(buff, binary.LittleEndian, uint32(stars))
	if err != nil {
		return "", err
	}

	err = binary.Write(buff, binary.LittleEndian, uint64(timestamp))
	if err != nil {
		return "", err
	}

	resultHash.Write(buff.Bytes())

	return hex.EncodeToString(resultHash.Sum(nil)), nil
}

func verifyResult(r storedResult) (bool, error) {
	fngr, err := fingerprintResult(r.ID, r.GameID, r.Score, r.Stars, r.Timestamp)
	if err != nil {
		return false, err
	}
	return fngr == r.Fingerprint, nil
}
