package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charleschow/soccer-props/internal/core/pricing"
	"github.com/charleschow/soccer-props/internal/telemetry"

	_ "modernc.org/sqlite"
)

const (
	defaultMaxSheets         = 5000
	evictPct         float64 = 0.10 // evict oldest 10% of sheets
	vacuumInterval           = 10   // incremental vacuum every N evictions
)

// SQLiteStore is a FIFO sheet archive capped by sheet count. When the cap is
// exceeded the oldest 10% of sheets and their bets are evicted.
type SQLiteStore struct {
	db           *sql.DB
	mu           sync.Mutex
	maxSheets    int64
	rowCount     int64
	evictCounter int
}

func OpenSQLite(path string, maxSheets int) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		`PRAGMA auto_vacuum = INCREMENTAL`,
		`CREATE TABLE IF NOT EXISTS sheets (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			sheet_id    TEXT    NOT NULL UNIQUE,
			event_id    TEXT    NOT NULL,
			event_name  TEXT,
			competition TEXT,
			kickoff     TEXT,
			margin_pct  REAL    NOT NULL,
			priced_at   TEXT    NOT NULL,
			bet_count   INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bets (
			sheet_row INTEGER NOT NULL,
			seq       INTEGER NOT NULL,
			subject   TEXT    NOT NULL,
			market    TEXT    NOT NULL,
			detail    TEXT    NOT NULL,
			price     TEXT    NOT NULL,
			PRIMARY KEY (sheet_row, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sheets_event ON sheets(event_id)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init schema (%s): %w", stmt, err)
		}
	}

	var count int64
	if err := db.QueryRow(`SELECT COUNT(*) FROM sheets`).Scan(&count); err != nil {
		db.Close()
		return nil, fmt.Errorf("read row count: %w", err)
	}

	if maxSheets <= 0 {
		maxSheets = defaultMaxSheets
	}
	telemetry.Infof("Started sheet archive  path=%s  sheets=%d  max=%d", path, count, maxSheets)

	return &SQLiteStore{db: db, maxSheets: int64(maxSheets), rowCount: count}, nil
}

// Save stores a sheet and its bets in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, sh pricing.Sheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("archive begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sheets (sheet_id, event_id, event_name, competition, kickoff, margin_pct, priced_at, bet_count)
		VALUES (?,?,?,?,?,?,?,?)`,
		sh.ID,
		sh.EventID,
		sh.EventName,
		sh.Competition,
		formatTime(sh.Kickoff),
		sh.MarginPct,
		formatTime(sh.PricedAt),
		len(sh.Bets),
	)
	if err != nil {
		return fmt.Errorf("archive insert sheet: %w", err)
	}
	row, _ := res.LastInsertId()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO bets (sheet_row, seq, subject, market, detail, price) VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("archive prepare bets: %w", err)
	}
	defer stmt.Close()
	for i, b := range sh.Bets {
		if _, err := stmt.ExecContext(ctx, row, i, b.Subject, b.Market, b.Detail, b.Price); err != nil {
			return fmt.Errorf("archive insert bet %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("archive commit: %w", err)
	}

	s.rowCount++
	if s.rowCount > s.maxSheets {
		s.evict()
	}
	return nil
}

// evict deletes the oldest 10% of sheets by count.
// Must be called with s.mu held.
func (s *SQLiteStore) evict() {
	toDelete := int64(float64(s.rowCount) * evictPct)
	if toDelete < 1 {
		toDelete = 1
	}

	var cutoff int64
	err := s.db.QueryRow(
		`SELECT id FROM sheets ORDER BY id ASC LIMIT 1 OFFSET ?`, toDelete-1,
	).Scan(&cutoff)
	if err != nil {
		telemetry.Warnf("archive evict: %v", err)
		return
	}

	if _, err := s.db.Exec(`DELETE FROM bets WHERE sheet_row <= ?`, cutoff); err != nil {
		telemetry.Warnf("archive evict bets: %v", err)
		return
	}
	res, err := s.db.Exec(`DELETE FROM sheets WHERE id <= ?`, cutoff)
	if err != nil {
		telemetry.Warnf("archive evict sheets: %v", err)
		return
	}

	deleted, _ := res.RowsAffected()
	s.rowCount -= deleted
	s.evictCounter++

	telemetry.Infof("archive: evicted %d sheets (target %d)", deleted, toDelete)

	if s.evictCounter%vacuumInterval == 0 {
		s.db.Exec(`PRAGMA incremental_vacuum`)
	}
}

// Recent returns the newest n sheets, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, n int) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sheet_id, event_id, event_name, competition, margin_pct, priced_at, bet_count
		FROM sheets ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("archive recent: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var name, comp sql.NullString
		var pricedAt string
		if err := rows.Scan(&sum.ID, &sum.EventID, &name, &comp, &sum.MarginPct, &pricedAt, &sum.Bets); err != nil {
			return nil, fmt.Errorf("archive scan: %w", err)
		}
		sum.EventName, sum.Competition = name.String, comp.String
		sum.PricedAt = parseTime(pricedAt)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Sheet loads one archived sheet with its bets in generation order.
func (s *SQLiteStore) Sheet(ctx context.Context, id string) (pricing.Sheet, error) {
	var sh pricing.Sheet
	var row int64
	var name, comp, kickoff sql.NullString
	var pricedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, sheet_id, event_id, event_name, competition, kickoff, margin_pct, priced_at
		FROM sheets WHERE sheet_id = ?`, id,
	).Scan(&row, &sh.ID, &sh.EventID, &name, &comp, &kickoff, &sh.MarginPct, &pricedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return sh, fmt.Errorf("%w: %s", ErrSheetNotFound, id)
	}
	if err != nil {
		return sh, fmt.Errorf("archive sheet: %w", err)
	}
	sh.EventName, sh.Competition = name.String, comp.String
	sh.Kickoff = parseTime(kickoff.String)
	sh.PricedAt = parseTime(pricedAt)

	rows, err := s.db.QueryContext(ctx,
		`SELECT subject, market, detail, price FROM bets WHERE sheet_row = ? ORDER BY seq`, row)
	if err != nil {
		return sh, fmt.Errorf("archive bets: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var b pricing.BetRecord
		if err := rows.Scan(&b.Subject, &b.Market, &b.Detail, &b.Price); err != nil {
			return sh, fmt.Errorf("archive scan bet: %w", err)
		}
		sh.Bets = append(sh.Bets, b)
	}
	return sh, rows.Err()
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
