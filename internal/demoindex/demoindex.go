// Package demoindex catalogs parsed MVD demos in a sqlite database: map,
// server, participants, duration, and a content fingerprint used to
// de-duplicate re-indexed files.
package demoindex

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

// Entry is one catalogued demo.
type Entry struct {
	ID           string
	Path         string
	Map          string
	Server       string
	Duration     time.Duration
	Participants []string
	ContentHash  string
	IndexedAt    time.Time
}

// Index wraps a sqlite database holding the demo catalog.
type Index struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS demos (
	id            TEXT PRIMARY KEY,
	path          TEXT NOT NULL,
	map           TEXT NOT NULL,
	server        TEXT NOT NULL,
	duration_ms   INTEGER NOT NULL,
	participants  TEXT NOT NULL,
	content_hash  TEXT NOT NULL UNIQUE,
	indexed_at    TEXT NOT NULL
);`

// Open opens (creating if necessary) the sqlite database at path and
// ensures its schema exists.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("demoindex: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("demoindex: create schema: %w", err)
	}
	return &Index{db: db}, nil
}

// Close releases the underlying database handle.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// ContentHash fingerprints a demo file's raw bytes for de-duplication.
func ContentHash(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Insert records entry, assigning it a fresh ID if it doesn't already have
// one. Re-inserting a demo with an already-catalogued content hash is an
// error; callers should check FindByHash first.
func (idx *Index) Insert(e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.IndexedAt.IsZero() {
		e.IndexedAt = time.Now().UTC()
	}
	_, err := idx.db.Exec(
		`INSERT INTO demos (id, path, map, server, duration_ms, participants, content_hash, indexed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Path, e.Map, e.Server, e.Duration.Milliseconds(),
		strings.Join(e.Participants, ","), e.ContentHash, e.IndexedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("demoindex: insert %s: %w", e.Path, err)
	}
	return e, nil
}

// FindByHash looks up a previously-indexed demo by content hash.
func (idx *Index) FindByHash(hash string) (Entry, bool, error) {
	row := idx.db.QueryRow(
		`SELECT id, path, map, server, duration_ms, participants, content_hash, indexed_at
		 FROM demos WHERE content_hash = ?`, hash)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("demoindex: find by hash: %w", err)
	}
	return e, true, nil
}

// List returns every catalogued demo, most recently indexed first.
func (idx *Index) List() ([]Entry, error) {
	rows, err := idx.db.Query(
		`SELECT id, path, map, server, duration_ms, participants, content_hash, indexed_at
		 FROM demos ORDER BY indexed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("demoindex: list: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("demoindex: scan row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	var durationMs int64
	var participants, indexedAt string
	err := s.Scan(&e.ID, &e.Path, &e.Map, &e.Server, &durationMs, &participants, &e.ContentHash, &indexedAt)
	if err != nil {
		return e, err
	}
	e.Duration = time.Duration(durationMs) * time.Millisecond
	if participants != "" {
		e.Participants = strings.Split(participants, ",")
	}
	e.IndexedAt, _ = time.Parse(time.RFC3339, indexedAt)
	return e, nil
}
