package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS inspections (
	id           TEXT PRIMARY KEY,
	supplier     TEXT NOT NULL,
	part         TEXT NOT NULL,
	inspector    TEXT NOT NULL,
	status       TEXT NOT NULL,
	score        INTEGER NOT NULL,
	inspected_at TEXT NOT NULL,
	notes        TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_inspections_order ON inspections (inspected_at DESC, id);
CREATE INDEX IF NOT EXISTS idx_inspections_status ON inspections (status);
`

// timeLayout is fixed width so that inspected_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore serves inspection records from a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	closed atomic.Bool
}

// OpenSQLite opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases shared across queries.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Insert writes records in one transaction, replacing any with the same id.
func (s *SQLiteStore) Insert(ctx context.Context, records []Record) error {
	if s.closed.Load() {
		return ErrClosed
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO inspections
		(id, supplier, part, inspector, status, score, inspected_at, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.ID, r.Supplier, r.Part, r.Inspector, r.Status, r.Score,
			r.InspectedAt.UTC().Format(timeLayout), r.Notes,
		); err != nil {
			return fmt.Errorf("insert %s: %w", r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	return nil
}

// Count returns the number of records matching q.
func (s *SQLiteStore) Count(ctx context.Context, q Query) (int, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}
	where, args := whereClause(q)
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM inspections"+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count inspections: %w", err)
	}
	return n, nil
}

// Page implements Store.
func (s *SQLiteStore) Page(ctx context.Context, q Query, offset, limit int) (Page, error) {
	if s.closed.Load() {
		return Page{}, ErrClosed
	}
	total, err := s.Count(ctx, q)
	if err != nil {
		return Page{}, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || offset >= total {
		return Page{Total: total}, nil
	}

	where, args := whereClause(q)
	args = append(args, limit, offset)
	rows, err := s.db.QueryContext(ctx, `SELECT id, supplier, part, inspector, status, score, inspected_at, notes
		FROM inspections`+where+`
		ORDER BY inspected_at DESC, id
		LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return Page{}, fmt.Errorf("query inspections: %w", err)
	}
	defer rows.Close()

	page := Page{Total: total, Records: make([]Record, 0, limit)}
	for rows.Next() {
		var (
			r  Record
			at string
		)
		if err := rows.Scan(&r.ID, &r.Supplier, &r.Part, &r.Inspector, &r.Status, &r.Score, &at, &r.Notes); err != nil {
			return Page{}, fmt.Errorf("scan inspection: %w", err)
		}
		if r.InspectedAt, err = time.Parse(timeLayout, at); err != nil {
			return Page{}, fmt.Errorf("parse inspected_at of %s: %w", r.ID, err)
		}
		page.Records = append(page.Records, r)
	}
	if err := rows.Err(); err != nil {
		return Page{}, fmt.Errorf("iterate inspections: %w", err)
	}
	return page, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

func whereClause(q Query) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if q.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, q.Status)
	}
	if text := strings.ToLower(strings.TrimSpace(q.Text)); text != "" {
		like := "%" + escapeLike(text) + "%"
		conds = append(conds, `(lower(supplier) LIKE ? ESCAPE '\' OR lower(part) LIKE ? ESCAPE '\' OR lower(inspector) LIKE ? ESCAPE '\')`)
		args = append(args, like, like, like)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
