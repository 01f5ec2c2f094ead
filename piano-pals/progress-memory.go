package main

import "sync"

// memoryBackend keeps everything in process. Used for tests, for
// --store memory, and as the fallback when the real store can't be opened.
type memoryBackend struct {
	mu      sync.Mutex
	records map[string][]byte
	results []storedResult
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{records: map[string][]byte{}}
}

func (b *memoryBackend) loadRecord(key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.records[key]...), nil
}

func (b *memoryBackend) updateRecord(key string, update func(current []byte) ([]byte, error)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := update(b.records[key])
	if err != nil || next == nil {
		return err
	}
	b.records[key] = next
	return nil
}

func (b *memoryBackend) insertResult(r storedResult) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.results = append(b.results, r)
	return nil
}

func (b *memoryBackend) listResults(gameID string) ([]storedResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var rows []storedResult
	for _, r := range b.results {
		if gameID == "" || r.GameID == gameID {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

func (b *memoryBackend) close() error {
	return nil
}

func openMemoryStore() *recordStore {
	return newRecordStore(newMemoryBackend())
}
