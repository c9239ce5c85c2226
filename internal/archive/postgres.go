package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charleschow/soccer-props/internal/core/pricing"
	"github.com/charleschow/soccer-props/internal/telemetry"

	_ "github.com/lib/pq"
)

const pingTimeout = 5 * time.Second

// PostgresStore archives sheets in a shared database. It keeps everything;
// retention is left to the database owner.
type PostgresStore struct {
	db *sql.DB
}

func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(4)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS prop_sheets (
			id          BIGSERIAL PRIMARY KEY,
			sheet_id    TEXT             NOT NULL UNIQUE,
			event_id    TEXT             NOT NULL,
			event_name  TEXT,
			competition TEXT,
			kickoff     TIMESTAMPTZ,
			margin_pct  DOUBLE PRECISION NOT NULL,
			priced_at   TIMESTAMPTZ      NOT NULL,
			bet_count   INTEGER          NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS prop_bets (
			sheet_row BIGINT  NOT NULL REFERENCES prop_sheets(id) ON DELETE CASCADE,
			seq       INTEGER NOT NULL,
			subject   TEXT    NOT NULL,
			market    TEXT    NOT NULL,
			detail    TEXT    NOT NULL,
			price     TEXT    NOT NULL,
			PRIMARY KEY (sheet_row, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prop_sheets_event ON prop_sheets(event_id)`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init schema: %w", err)
		}
	}

	telemetry.Infof("Started sheet archive  backend=postgres")
	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) Save(ctx context.Context, sh pricing.Sheet) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("archive begin: %w", err)
	}
	defer tx.Rollback()

	var kickoff *time.Time
	if !sh.Kickoff.IsZero() {
		kickoff = &sh.Kickoff
	}

	var row int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO prop_sheets (sheet_id, event_id, event_name, competition, kickoff, margin_pct, priced_at, bet_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		sh.ID, sh.EventID, sh.EventName, sh.Competition, kickoff, sh.MarginPct, sh.PricedAt, len(sh.Bets),
	).Scan(&row)
	if err != nil {
		return fmt.Errorf("archive insert sheet: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO prop_bets (sheet_row, seq, subject, market, detail, price) VALUES ($1, $2, $3, $4, $5, $6)`)
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
	return nil
}

func (p *PostgresStore) Recent(ctx context.Context, n int) ([]Summary, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT sheet_id, event_id, COALESCE(event_name, ''), COALESCE(competition, ''), margin_pct, priced_at, bet_count
		FROM prop_sheets ORDER BY id DESC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("archive recent: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.EventID, &sum.EventName, &sum.Competition, &sum.MarginPct, &sum.PricedAt, &sum.Bets); err != nil {
			return nil, fmt.Errorf("archive scan: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (p *PostgresStore) Sheet(ctx context.Context, id string) (pricing.Sheet, error) {
	var sh pricing.Sheet
	var row int64
	var kickoff sql.NullTime
	err := p.db.QueryRowContext(ctx,
		`SELECT id, sheet_id, event_id, COALESCE(event_name, ''), COALESCE(competition, ''), kickoff, margin_pct, priced_at
		FROM prop_sheets WHERE sheet_id = $1`, id,
	).Scan(&row, &sh.ID, &sh.EventID, &sh.EventName, &sh.Competition, &kickoff, &sh.MarginPct, &sh.PricedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return sh, fmt.Errorf("%w: %s", ErrSheetNotFound, id)
	}
	if err != nil {
		return sh, fmt.Errorf("archive sheet: %w", err)
	}
	if kickoff.Valid {
		sh.Kickoff = kickoff.Time
	}

	rows, err := p.db.QueryContext(ctx,
		`SELECT subject, market, detail, price FROM prop_bets WHERE sheet_row = $1 ORDER BY seq`, row)
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

func (p *PostgresStore) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}
