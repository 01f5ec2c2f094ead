package main

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	badgerRecordPrefix = "record:"
	badgerResultPrefix = "result:"
)

// badgerBackend stores records as raw JSON under "record:<key>" and result
// rows msgpack-encoded under "result:<game>:<timestamp>:<id>".
type badgerBackend struct {
	db *badger.DB
}

type badgerOptions struct {
	dir      string
	inMemory bool
}

func openBadgerStore(dataDir string) (*recordStore, error) {
	dir, err := createAndGetSubDataFolder(dataDir, ".badger")
	if err != nil {
		return nil, err
	}
	backend, err := openBadgerBackend(badgerOptions{dir: dir})
	if err != nil {
		return nil, err
	}
	return newRecordStore(backend), nil
}

func openBadgerBackend(bopts badgerOptions) (*badgerBackend, error) {
	if !bopts.inMemory && bopts.dir == "" {
		return nil, errors.New("badger store needs a directory")
	}
	dbOpts := badger.DefaultOptions(bopts.dir)
	if bopts.inMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	dbOpts = dbOpts.WithLogger(badgerLogger{})

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrap(err, "opening badger at "+filepath.Clean(bopts.dir))
	}
	return &badgerBackend{db: db}, nil
}

func badgerRecordKey(key string) []byte {
	return []byte(badgerRecordPrefix + key)
}

func badgerResultKey(r storedResult) []byte {
	// zero padded so keys sort by time within a game
	return []byte(fmt.Sprintf("%s%s:%020d:%s", badgerResultPrefix, r.GameID, r.Timestamp, r.ID))
}

func (b *badgerBackend) loadRecord(key string) ([]byte, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerRecordKey(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	return val, err
}

func (b *badgerBackend) updateRecord(key string, update func(current []byte) ([]byte, error)) error {
	k := badgerRecordKey(key)
	return b.db.Update(func(txn *badger.Txn) error {
		var current []byte
		item, err := txn.Get(k)
		if err == nil {
			current, err = item.ValueCopy(nil)
			if err != nil {
				return err
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		next, err := update(current)
		if err != nil || next == nil {
			return err
		}
		return txn.Set(k, next)
	})
}

func (b *badgerBackend) insertResult(r storedResult) error {
	data, err := msgpack.Marshal(r)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerResultKey(r), data)
	})
}

func (b *badgerBackend) listResults(gameID string) ([]storedResult, error) {
	prefix := []byte(badgerResultPrefix)
	if gameID != "" {
		prefix = []byte(badgerResultPrefix + gameID + ":")
	}

	var results []storedResult
	err := b.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = prefix
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var r storedResult
			if err := msgpack.Unmarshal(val, &r); err != nil {
				log.Error("Skipping unreadable result", "key", string(it.Item().Key()), "err", err)
				continue
			}
			results = append(results, r)
		}
		return nil
	})
	return results, err
}

func (b *badgerBackend) close() error {
	return b.db.Close()
}

// badgerLogger routes badger's own logging into ours and drops the chatter
type badgerLogger struct{}

func (badgerLogger) Errorf(f string, v ...interface{})   { log.Errorf("[badger] "+f, v...) }
func (badgerLogger) Warningf(f string, v ...interface{}) { log.Warnf("[badger] "+f, v...) }
func (badgerLogger) Infof(string, ...interface{})        {}
func (badgerLogger) Debugf(string, ...interface{})       {}
