package stagepage

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// AssetFailure is one reported image load failure.
type AssetFailure struct {
	Slot     string
	Primary  string
	Fallback string
	Client   string // coarse browser/OS/device label
	At       time.Time
}

// FailureSummary aggregates failures per primary URL.
type FailureSummary struct {
	Primary  string
	Slot     string
	Count    int
	LastSeen time.Time
}

// FailureLog records asset load failures in SQLite so the operator can see
// which local images are missing or broken.
type FailureLog struct {
	db *sql.DB
}

// OpenFailureLog opens (or creates) the SQLite database at path, ensuring
// the data directory exists.
func OpenFailureLog(path string) (*FailureLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)
	s := &FailureLog{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *FailureLog) Close() error {
	return s.db.Close()
}

func (s *FailureLog) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS asset_failures (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    slot TEXT NOT NULL,
    primary_url TEXT NOT NULL,
    fallback_url TEXT NOT NULL,
    client TEXT NOT NULL DEFAULT '',
    at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_asset_failures_primary ON asset_failures(primary_url);
`)
	return err
}

// Record stores one failure.
func (s *FailureLog) Record(f AssetFailure) error {
	if f.At.IsZero() {
		f.At = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO asset_failures (slot, primary_url, fallback_url, client, at) VALUES (?, ?, ?, ?, ?)`,
		f.Slot, f.Primary, f.Fallback, f.Client, f.At.UTC().UnixMilli())
	return err
}

// Summary returns failure counts per primary URL, most frequent first.
func (s *FailureLog) Summary() ([]FailureSummary, error) {
	rows, err := s.db.Query(`
SELECT primary_url, MIN(slot), COUNT(*), MAX(at)
FROM asset_failures
GROUP BY primary_url
ORDER BY COUNT(*) DESC, primary_url ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FailureSummary
	for rows.Next() {
		var fs FailureSummary
		var last int64
		if err := rows.Scan(&fs.Primary, &fs.Slot, &fs.Count, &last); err != nil {
			return nil, err
		}
		fs.LastSeen = time.UnixMilli(last).UTC()
		out = append(out, fs)
	}
	return out, rows.Err()
}

// Recent returns the latest failures, newest first.
func (s *FailureLog) Recent(limit int) ([]AssetFailure, error) {
	rows, err := s.db.Query(`SELECT slot, primary_url, fallback_url, client, at FROM asset_failures ORDER BY at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AssetFailure
	for rows.Next() {
		var f AssetFailure
		var at int64
		if err := rows.Scan(&f.Slot, &f.Primary, &f.Fallback, &f.Client, &at); err != nil {
			return nil, err
		}
		f.At = time.UnixMilli(at).UTC()
		out = append(out, f)
	}
	return out, rows.Err()
}

// Prune deletes failures recorded before cutoff.
func (s *FailureLog) Prune(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM asset_failures WHERE at < ?`, cutoff.UTC().UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartRetention prunes failures older than retention every interval.
// Returns a stop function that waits for the pruning goroutine to exit.
func (s *FailureLog) StartRetention(retention, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		for {
			select {
			case <-ticker.C:
				n, err := s.Prune(time.Now().Add(-retention))
				if err != nil {
					log.Error().Err(err).Msg("pruning asset failures")
				} else if n > 0 {
					log.Info().Int64("rows", n).Msg("pruned asset failures")
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-exited
		})
	}
}
