package record

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/teslashibe/go-arena/internal/log"
	"github.com/teslashibe/go-arena/pkg/tracking"
	"github.com/teslashibe/go-arena/pkg/zone"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Session statuses.
const (
	StatusRunning  = "running"
	StatusFinished = "finished"
	StatusFailed   = "failed"
)

// batchSize is the number of records inserted per transaction.
const batchSize = 500

// Store keeps sessions and their records in SQLite.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the database at path and applies migrations.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("record: open store: %w", err)
	}
	// One writer at a time.
	db.SetMaxOpenConns(1)

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("record: load migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("record: create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("record: create migrate instance: %w", err)
	}
	m.Log = migrateLogger{}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("record: migration up failed: %w", err)
	}
	return nil
}

type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...interface{}) {
	log.Debug(fmt.Sprintf("migrate: "+format, v...))
}

func (migrateLogger) Verbose() bool {
	return false
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SessionInfo is a stored session.
type SessionInfo struct {
	ID         string
	Source     string
	Mode       string
	SubZones   string
	StartedAt  time.Time
	FinishedAt sql.NullTime
	Frames     int
	Status     string
	Regions    []tracking.Region
}

// BeginSession registers a session and returns a sink for its records.
func (s *Store) BeginSession(ctx context.Context, id, source string, cfg tracking.Config) (*SessionWriter, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, source, mode, sub_zones, status) VALUES (?, ?, ?, ?, ?)`,
		id, source, string(cfg.Mode), string(cfg.SubZones), StatusRunning)
	if err != nil {
		return nil, fmt.Errorf("record: begin session: %w", err)
	}
	return &SessionWriter{store: s, ctx: ctx, id: id}, nil
}

// SessionIDs lists stored sessions, oldest first.
func (s *Store) SessionIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT session_id FROM sessions ORDER BY started_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("record: list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Session loads a session with its regions.
func (s *Store) Session(ctx context.Context, id string) (SessionInfo, error) {
	info := SessionInfo{ID: id}
	err := s.db.QueryRowContext(ctx,
		`SELECT source, mode, sub_zones, started_at, finished_at, frames, status FROM sessions WHERE session_id = ?`, id,
	).Scan(&info.Source, &info.Mode, &info.SubZones, &info.StartedAt, &info.FinishedAt, &info.Frames, &info.Status)
	if err != nil {
		return SessionInfo{}, fmt.Errorf("record: session %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT label, x, y, w, h FROM session_regions WHERE session_id = ? ORDER BY rowid`, id)
	if err != nil {
		return SessionInfo{}, fmt.Errorf("record: session regions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r tracking.Region
		var rect zone.Rect
		if err := rows.Scan(&r.Label, &rect.X, &rect.Y, &rect.W, &rect.H); err != nil {
			return SessionInfo{}, err
		}
		r.Rect = rect
		info.Regions = append(info.Regions, r)
	}
	return info, rows.Err()
}

// Records returns a session's records ordered by frame.
func (s *Store) Records(ctx context.Context, id string) ([]tracking.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT frame, region, zone, x, y, detected FROM track_records WHERE session_id = ? ORDER BY frame, rowid`, id)
	if err != nil {
		return nil, fmt.Errorf("record: query records: %w", err)
	}
	defer rows.Close()

	var out []tracking.Record
	for rows.Next() {
		rec := tracking.Record{Session: id}
		if err := rows.Scan(&rec.Frame, &rec.Region, &rec.Zone, &rec.X, &rec.Y, &rec.Detected); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SessionWriter batches one session's records into the store.
type SessionWriter struct {
	store *Store
	ctx   context.Context
	id    string

	tx      *sql.Tx
	stmt    *sql.Stmt
	pending int
}

// WriteRecord implements tracking.RecordSink.
func (w *SessionWriter) WriteRecord(rec tracking.Record) error {
	if w.tx == nil {
		if err := w.begin(); err != nil {
			return err
		}
	}
	if _, err := w.stmt.ExecContext(w.ctx, w.id, rec.Frame, rec.Region, rec.Zone, rec.X, rec.Y, rec.Detected); err != nil {
		return fmt.Errorf("record: insert: %w", err)
	}
	w.pending++
	if w.pending >= batchSize {
		return w.Flush()
	}
	return nil
}

func (w *SessionWriter) begin() error {
	tx, err := w.store.db.BeginTx(w.ctx, nil)
	if err != nil {
		return fmt.Errorf("record: begin: %w", err)
	}
	stmt, err := tx.PrepareContext(w.ctx,
		`INSERT INTO track_records (session_id, frame, region, zone, x, y, detected) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("record: prepare: %w", err)
	}
	w.tx, w.stmt = tx, stmt
	return nil
}

// Flush commits pending records.
func (w *SessionWriter) Flush() error {
	if w.tx == nil {
		return nil
	}
	w.stmt.Close()
	err := w.tx.Commit()
	w.tx, w.stmt, w.pending = nil, nil, 0
	if err != nil {
		return fmt.Errorf("record: commit: %w", err)
	}
	return nil
}

// Finish commits pending records and stores the session outcome.
func (w *SessionWriter) Finish(frames int, regions []tracking.Region, status string) error {
	if err := w.Flush(); err != nil {
		return err
	}

	tx, err := w.store.db.BeginTx(w.ctx, nil)
	if err != nil {
		return fmt.Errorf("record: begin: %w", err)
	}
	defer tx.Rollback()

	for _, r := range regions {
		if _, err := tx.ExecContext(w.ctx,
			`INSERT INTO session_regions (session_id, label, x, y, w, h) VALUES (?, ?, ?, ?, ?, ?)`,
			w.id, r.Label, r.Rect.X, r.Rect.Y, r.Rect.W, r.Rect.H); err != nil {
			return fmt.Errorf("record: insert region: %w", err)
		}
	}
	if _, err := tx.ExecContext(w.ctx,
		`UPDATE sessions SET finished_at = CURRENT_TIMESTAMP, frames = ?, status = ? WHERE session_id = ?`,
		frames, status, w.id); err != nil {
		return fmt.Errorf("record: finish session: %w", err)
	}
	return tx.Commit()
}
