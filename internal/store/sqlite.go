// Package store provides data persistence for backtest runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"options-backtester/internal/models"
)

// SQLiteStore persists backtest runs and their day-by-day journals.
type SQLiteStore struct {
	db *sql.DB
}

// RunRecord summarizes one completed backtest run.
type RunRecord struct {
	ID               int64
	CreatedAt        time.Time
	Side             string
	MovingAverageLag int
	InitialCash      float64
	FinalValue       float64
	Days             int
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		side TEXT NOT NULL,
		moving_average_lag INTEGER NOT NULL,
		initial_cash REAL NOT NULL,
		final_value REAL NOT NULL,
		days INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS journal_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		date DATETIME NOT NULL,
		underlying_value REAL NOT NULL,
		asset_value REAL,
		cash_value REAL NOT NULL,
		portfolio_value REAL NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id),
		UNIQUE(run_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_journal_run ON journal_entries(run_id, date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun stores a run record together with its journal in one
// transaction and returns the new run ID.
func (s *SQLiteStore) SaveRun(ctx context.Context, rec RunRecord, journal []models.TradeJournalEntry) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (created_at, side, moving_average_lag, initial_cash, final_value, days)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.CreatedAt.UTC(), rec.Side, rec.MovingAverageLag, rec.InitialCash, rec.FinalValue, rec.Days)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO journal_entries (run_id, date, underlying_value, asset_value, cash_value, portfolio_value)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare journal insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range journal {
		var asset sql.NullFloat64
		if e.AssetValue != nil {
			asset = sql.NullFloat64{Float64: *e.AssetValue, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, runID, e.Date.UTC(), e.UnderlyingValue, asset, e.CashValue, e.PortfolioValue); err != nil {
			return 0, fmt.Errorf("insert journal entry %s: %w", e.Date.Format("2006-01-02"), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, side, moving_average_lag, initial_cash, final_value, days
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var recs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Side, &r.MovingAverageLag, &r.InitialCash, &r.FinalValue, &r.Days); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// GetJournal returns the journal of a run in chronological order.
func (s *SQLiteStore) GetJournal(ctx context.Context, runID int64) ([]models.TradeJournalEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, underlying_value, asset_value, cash_value, portfolio_value
		 FROM journal_entries WHERE run_id = ? ORDER BY date`, runID)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var journal []models.TradeJournalEntry
	for rows.Next() {
		var e models.TradeJournalEntry
		var asset sql.NullFloat64
		if err := rows.Scan(&e.Date, &e.UnderlyingValue, &asset, &e.CashValue, &e.PortfolioValue); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		if asset.Valid {
			v := asset.Float64
			e.AssetValue = &v
		}
		journal = append(journal, e)
	}
	return journal, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
