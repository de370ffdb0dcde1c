// Package cache persists which fingerprints are up to date.
//
// The cache is a CSV file of (strategy name, fingerprint kind, source hash)
// rows. New rows are appended; when a key appears more than once the last
// row wins. The whole file is read into memory at start-up.
package cache

import (
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"

	apperrors "github.com/agbru/fingerprints/internal/errors"
)

// Key identifies one fingerprint of one strategy.
type Key struct {
	Name string
	Kind string
}

// DB is the in-memory view of a cache file. It is not safe for concurrent
// use.
type DB struct {
	path    string
	entries map[Key]string
}

// Read loads the cache file at path into a map.
func Read(path string) (map[Key]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.CacheError{Path: path, Cause: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	entries := make(map[Key]string)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.CacheError{Path: path, Cause: err}
		}
		if len(record) < 3 {
			line, _ := r.FieldPos(0)
			return nil, apperrors.CacheError{
				Path:  path,
				Line:  line,
				Cause: fmt.Errorf("expected 3 fields, got %d", len(record)),
			}
		}
		entries[Key{Name: record[0], Kind: record[1]}] = record[2]
	}
	return entries, nil
}

// Create writes an empty cache file, creating parent directories as needed.
// An existing file is truncated.
func Create(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.CacheError{Path: path, Cause: err}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return apperrors.CacheError{Path: path, Cause: err}
	}
	return f.Close()
}

// Open reads the cache file at path, creating an empty one first if it does
// not exist.
func Open(path string) (*DB, error) {
	entries, err := Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := Create(path); err != nil {
			return nil, err
		}
		entries, err = Read(path)
	}
	if err != nil {
		return nil, err
	}
	return &DB{path: path, entries: entries}, nil
}

// Path returns the file backing the cache.
func (db *DB) Path() string { return db.path }

// Len returns the number of distinct keys.
func (db *DB) Len() int { return len(db.entries) }

// Lookup returns the stored hash for key.
func (db *DB) Lookup(key Key) (string, bool) {
	h, ok := db.entries[key]
	return h, ok
}

// Stale reports whether the fingerprint for key must be regenerated: there
// is no entry for it, or the stored hash differs from hash.
func (db *DB) Stale(key Key, hash string) bool {
	stored, ok := db.entries[key]
	return !ok || stored != hash
}

// Entries returns a copy of the current mapping.
func (db *DB) Entries() map[Key]string {
	return maps.Clone(db.entries)
}

// Record appends a row for key to the file and updates the in-memory view.
func (db *DB) Record(key Key, hash string) error {
	f, err := os.OpenFile(db.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return apperrors.CacheError{Path: db.path, Cause: err}
	}
	if err := writeRows(f, [][]string{{key.Name, key.Kind, hash}}); err != nil {
		f.Close()
		return apperrors.CacheError{Path: db.path, Cause: err}
	}
	if err := f.Close(); err != nil {
		return apperrors.CacheError{Path: db.path, Cause: err}
	}
	db.entries[key] = hash
	return nil
}

// Compact rewrites the file with exactly one row per key, sorted by name and
// kind. The rewrite goes through a temporary file renamed over the original.
func (db *DB) Compact() error {
	return Write(db.path, db.entries)
}

// Write replaces the file at path with one row per entry, sorted by name
// and kind.
func Write(path string, entries map[Key]string) error {
	keys := slices.SortedFunc(maps.Keys(entries), func(a, b Key) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Kind, b.Kind))
	})
	rows := make([][]string, len(keys))
	for i, k := range keys {
		rows[i] = []string{k.Name, k.Kind, entries[k]}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return apperrors.CacheError{Path: path, Cause: err}
	}
	defer os.Remove(tmp.Name())
	if err := writeRows(tmp, rows); err != nil {
		tmp.Close()
		return apperrors.CacheError{Path: path, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return apperrors.CacheError{Path: path, Cause: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return apperrors.CacheError{Path: path, Cause: err}
	}
	return nil
}

func writeRows(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	return nil
}
