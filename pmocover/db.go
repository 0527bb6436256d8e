package pmocover

import (
	"database/sql"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB is the SQLite bookkeeping of the thumbnail cache.
type DB struct {
	conn *sql.DB
}

// InitDB opens or creates the SQLite database inside dir.
func InitDB(dir string) (*DB, error) {
	path := filepath.Join(dir, "thumbs.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.initTables(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) initTables() error {
	_, err := db.conn.Exec(`
	CREATE TABLE IF NOT EXISTS thumbs (
		pk TEXT PRIMARY KEY,
		source TEXT,
		hits INTEGER DEFAULT 0,
		last_used TEXT
	);
	`)
	return err
}

// Add inserts or refreshes an entry.
func (db *DB) Add(pk, source string) error {
	_, err := db.conn.Exec(`
	INSERT INTO thumbs(pk, source, hits, last_used)
	VALUES(?, ?, 0, ?)
	ON CONFLICT(pk) DO UPDATE SET
		source=excluded.source,
		last_used=excluded.last_used;
	`, pk, source, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Get fetches one entry.
func (db *DB) Get(pk string) (*Entry, error) {
	row := db.conn.QueryRow(`
	SELECT pk, source, hits, last_used
	FROM thumbs
	WHERE pk = ?
	`, pk)
	entry := &Entry{}
	var lastUsed sql.NullString
	err := row.Scan(&entry.PK, &entry.Source, &entry.Hits, &lastUsed)
	if err != nil {
		return nil, err
	}
	if lastUsed.Valid {
		entry.LastUsed = lastUsed.String
	}
	return entry, nil
}

// UpdateHit bumps hits and last_used.
func (db *DB) UpdateHit(pk string) error {
	_, err := db.conn.Exec(`
	UPDATE thumbs
	SET hits = hits + 1,
	    last_used = ?
	WHERE pk = ?
	`, time.Now().UTC().Format(time.RFC3339), pk)
	return err
}

// ColdEntries returns the pks beyond the keep newest/hottest limit,
// candidates for eviction.
func (db *DB) ColdEntries(keep int) ([]string, error) {
	rows, err := db.conn.Query(`
		SELECT pk
		FROM thumbs
		ORDER BY hits DESC, last_used DESC
		LIMIT -1 OFFSET ?
	`, keep)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pks []string
	for rows.Next() {
		var pk string
		if err := rows.Scan(&pk); err != nil {
			continue
		}
		pks = append(pks, pk)
	}
	return pks, rows.Err()
}

// Delete removes one entry.
func (db *DB) Delete(pk string) error {
	_, err := db.conn.Exec(`DELETE FROM thumbs WHERE pk = ?`, pk)
	return err
}

// Purge empties the table.
func (db *DB) Purge() error {
	_, err := db.conn.Exec(`DELETE FROM thumbs`)
	return err
}

// GetAll fetches every entry, hottest first.
func (db *DB) GetAll() ([]*Entry, error) {
	rows, err := db.conn.Query(`
		SELECT pk, source, hits, last_used
		FROM thumbs
		ORDER BY hits DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry := &Entry{}
		var lastUsed sql.NullString
		if err := rows.Scan(&entry.PK, &entry.Source, &entry.Hits, &lastUsed); err != nil {
			continue
		}
		if lastUsed.Valid {
			entry.LastUsed = lastUsed.String
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
