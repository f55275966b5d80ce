package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/docsentry/docsentry/internal/types"
)

// Entry pairs a document's content hash with its last scan result, so an
// unchanged document can be answered from cache without re-extraction.
type Entry struct {
	Hash   string           `json:"hash"`
	Result types.ScanResult `json:"result"`
}

type DB struct {
	// Path relative to scan root -> cached entry
	Entries map[string]Entry `json:"entries"`
}

func defaultPath(root string) string {
	return filepath.Join(root, ".docsentry-cache.json")
}

func Load(root string) (DB, error) {
	var db DB
	f, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if err := json.Unmarshal(f, &db); err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]Entry{}
	}
	return db, nil
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(defaultPath(root), b, 0644)
}
