package repositories

import (
	"database/sql"
	"fmt"
	"os"
	"time"
)

// ProbeCache stores ffprobe duration results keyed by path.
//
// An entry is valid only while the file's mtime and size are unchanged,
// so touched or rewritten videos are probed again on the next scan.
type ProbeCache struct {
	db *sql.DB
}

// NewProbeCache creates a ProbeCache backed by the given database connection
func NewProbeCache(db *sql.DB) *ProbeCache {
	return &ProbeCache{db: db}
}

// Lookup returns the cached duration in seconds for a path, if the cached
// entry still matches the file's current mtime and size.
func (c *ProbeCache) Lookup(path string, info os.FileInfo) (float64, bool) {
	var (
		seconds float64
		mtime   int64
		size    int64
	)

	query := "SELECT duration_seconds, mtime_unix, size FROM probe_cache WHERE path = ?"
	err := c.db.QueryRow(query, path).Scan(&seconds, &mtime, &size)
	if err != nil {
		return 0, false
	}

	if mtime != info.ModTime().Unix() || size != info.Size() {
		// Stale entry, drop it so the next Record replaces it cleanly
		c.db.Exec("DELETE FROM probe_cache WHERE path = ?", path)
		return 0, false
	}
	if seconds <= 0 {
		return 0, false
	}

	return seconds, true
}

// Record stores or replaces the probed duration for a path.
func (c *ProbeCache) Record(path string, info os.FileInfo, seconds float64) error {
	if seconds <= 0 {
		return nil
	}

	query := `
		INSERT INTO probe_cache (path, duration_seconds, mtime_unix, size, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			duration_seconds = excluded.duration_seconds,
			mtime_unix = excluded.mtime_unix,
			size = excluded.size,
			updated_at = excluded.updated_at
	`
	_, err := c.db.Exec(query, path, seconds, info.ModTime().Unix(), info.Size(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record probe result: %w", err)
	}

	return nil
}

// Prune removes entries whose paths no longer exist on disk.
// Returns the number of entries removed.
func (c *ProbeCache) Prune() (int, error) {
	rows, err := c.db.Query("SELECT path FROM probe_cache")
	if err != nil {
		return 0, fmt.Errorf("failed to read cache paths: %w", err)
	}
	defer rows.Close()

	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return 0, err
		}
		if _, err := os.Stat(path); err != nil {
			stale = append(stale, path)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, path := range stale {
		if _, err := c.db.Exec("DELETE FROM probe_cache WHERE path = ?", path); err != nil {
			return 0, fmt.Errorf("failed to prune %s: %w", path, err)
		}
	}

	return len(stale), nil
}
