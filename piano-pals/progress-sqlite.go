package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/glebarez/go-sqlite"
	"github.com/pkg/errors"
)

const dbFileName = "pianopals.db"

type sqliteBackend struct {
	db *sql.DB
}

func openSqliteStore(dataDir string) (*recordStore, error) {
	dbFolderPath, err := createAndGetSubDataFolder(dataDir, ".db")
	if err != nil {
		return nil, err
	}
	backend, err := openSqliteBackend(filepath.Join(dbFolderPath, dbFileName))
	if err != nil {
		return nil, err
	}
	if _, err := backend.migrateDatabase(); err != nil {
		backend.close()
		return nil, errors.Wrap(err, "migrating database")
	}
	return newRecordStore(backend), nil
}

func openSqliteBackend(dbFilePath string) (sqliteBackend, error) {
	db, err := sql.Open("sqlite", dbFilePath)
	if err != nil {
		return sqliteBackend{}, errors.Wrap(err, "opening "+dbFilePath)
	}
	// one writer at a time keeps read-modify-write transactions simple
	db.SetMaxOpenConns(1)

	return sqliteBackend{db}, nil
}

func (conn sqliteBackend) migrateDatabase() (int, error) {
	row := conn.db.QueryRow("PRAGMA user_version")

	var migrationVersion int
	if row.Err() != nil && row.Err() != sql.ErrNoRows {
		return 0, row.Err()
	} else {
		err := row.Scan(&migrationVersion)
		if err != nil && err != sql.ErrNoRows {
			return 0, err
		}
	}

	migrationsApplied := 0

	migrationFilePaths, err := getMigrationFilePaths()
	if err != nil {
		return 0, err
	}

	for _, migrationFilePath := range migrationFilePaths {
		migrationNumber := migrationFilePath.Name()[0:3]
		migrationNumberInt, err := strconv.Atoi(migrationNumber)
		if err != nil {
			return migrationsApplied, err
		}

		if migrationVersion != migrationNumberInt-1 {
			continue
		}

		data, err := readEmbeddedResourceFile("migrations", migrationFilePath.Name())
		if err != nil {
			return migrationsApplied, err
		}
		_, err = conn.db.Exec(string(data))
		if err != nil {
			return migrationsApplied, errors.Wrap(err, migrationFilePath.Name())
		}

		migrationsApplied++
		migrationVersion++

		// db doesn't allow parameters in PRAGMA statements
		_, err = conn.db.Exec("PRAGMA user_version = " + strconv.Itoa(migrationVersion))
		if err != nil {
			return migrationsApplied, err
		}
	}

	return migrationsApplied, nil
}

func getMigrationFilePaths() ([]fs.DirEntry, error) {
	entries, err := readEmbeddedResourceDir("migrations")
	if err != nil {
		return nil, err
	}

	var migrationFilePaths []fs.DirEntry
	expectedFileIncrement := 1

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if filepath.Ext(e.Name()) == ".sql" {
			migrationNumber := e.Name()[0:3]
			if migrationNumber != fmt.Sprintf("%03d", expectedFileIncrement) {
				return nil, errors.Errorf("migration file %s is not in the expected format", e.Name())
			}
			migrationFilePaths = append(migrationFilePaths, e)
			expectedFileIncrement++
		}
	}
	return migrationFilePaths, nil
}

func (conn sqliteBackend) loadRecord(key string) ([]byte, error) {
	row := conn.db.QueryRow("SELECT Value FROM Records WHERE Key=?", key)
	if row.Err() != nil {
		return nil, row.Err()
	}
	var value []byte
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return value, err
}

func (conn sqliteBackend) updateRecord(key string, update func(current []byte) ([]byte, error)) error {
	tx, err := conn.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current []byte
	err = tx.QueryRow("SELECT Value FROM Records WHERE Key=?", key).Scan(&current)
	if err != nil && err != sql.ErrNoRows {
		return err
	}

	next, err := update(current)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}

	_, err = tx.Exec("INSERT INTO Records (Key, Value) VALUES (?, ?) ON CONFLICT(Key) DO UPDATE SET Value=excluded.Value",
		key, next)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (conn sqliteBackend) insertResult(r storedResult) error {
	_, err := conn.db.Exec("INSERT INTO Results (Id, GameId, Score, Stars, Timestamp, Fingerprint) VALUES (?, ?, ?, ?, ?, ?)",
		r.ID, r.GameID, r.Score, r.Stars, r.Timestamp, r.Fingerprint)
	return err
}

func (conn sqliteBackend) listResults(gameID string) ([]storedResult, error) {
	query := "SELECT Id, GameId, Score, Stars, Timestamp, Fingerprint FROM Results"
	var args []any
	if gameID != "" {
		query += " WHERE GameId=?"
		args = append(args, gameID)
	}

	rows, err := conn.db.Query(query+" ORDER BY Timestamp DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []storedResult
	for rows.Next() {
		var r storedResult
		err = rows.Scan(&r.ID, &r.GameID, &r.Score, &r.Stars, &r.Timestamp, &r.Fingerprint)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (conn sqliteBackend) close() error {
	return conn.db.Close()
}

func getGameDataFolder(dataDir string) (string, error) {
	if dataDir != "" {
		return dataDir, nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "Piano Pals"), nil
}

func createAndGetSubDataFolder(dataDir string, subFolderName string) (string, error) {
	folderPath, err := getGameDataFolder(dataDir)
	if err != nil {
		return "", err
	}

	subFolderPath := filepath.Join(folderPath, subFolderName)
	err = os.MkdirAll(subFolderPath, 0755)
	if err != nil {
		return subFolderPath, err
	}
	return subFolderPath, nil
}
