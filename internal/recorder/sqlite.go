package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			week_label      TEXT,
			sentiment_value INTEGER,
			sentiment_class TEXT,
			published       INTEGER,
			pages_url       TEXT,
			status          TEXT,
			note            TEXT,
			trending        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS asset_snapshots (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     INTEGER NOT NULL,
			symbol     TEXT NOT NULL,
			price      REAL,
			change_24h REAL,
			volume_24h REAL,
			market_cap REAL,
			live       INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_run ON asset_snapshots(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts the run row and its asset snapshots in one transaction.
func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	res, err := tx.Exec(`INSERT INTO runs
		(timestamp, week_label, sentiment_value, sentiment_class, published, pages_url, status, note, trending)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.WeekLabel, rec.SentimentValue, rec.SentimentClass,
		rec.Published, rec.PagesURL, string(rec.Status), rec.Note, rec.Trending,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("run id: %w", err)
	}

	for _, s := range rec.Snapshots {
		if _, err := tx.Exec(`INSERT INTO asset_snapshots
			(run_id, symbol, price, change_24h, volume_24h, market_cap, live)
			VALUES (?,?,?,?,?,?,?)`,
			runID, s.Symbol, s.Price, s.Change24h, s.Volume24h, s.MarketCap, s.Live,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert snapshot %s: %w", s.Symbol, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
