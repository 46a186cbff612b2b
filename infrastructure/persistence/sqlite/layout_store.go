// Package sqlite implements the layout store on an embedded SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/nibzard/beautiful-mermaid/domain/layout"
)

// LayoutStore persists exported layout records, one row per source
// document identity.
type LayoutStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLayoutStore opens (and migrates) the database at path. Use
// ":memory:" for tests.
func NewLayoutStore(path string, logger *zap.Logger) (*LayoutStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dsn := path
	if path != ":memory:" {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open layout store: %w", err)
	}
	s := &LayoutStore{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate layout store: %w", err)
	}
	return s, nil
}

func (s *LayoutStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS layouts (
		source TEXT PRIMARY KEY,
		version INTEGER NOT NULL,
		family TEXT NOT NULL DEFAULT '',
		record JSON NOT NULL,
		saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`)
	return err
}

// Save upserts the record for its source identity.
func (s *LayoutStore) Save(ctx context.Context, rec *layout.Record) error {
	data, err := rec.Encode()
	if err != nil {
		return fmt.Errorf("encode layout record: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO layouts (source, version, family, record, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(source) DO UPDATE SET
			version = excluded.version,
			family = excluded.family,
			record = excluded.record,
			saved_at = excluded.saved_at
	`, rec.Source, rec.Version, rec.DiagramFamily, data, rec.SavedAt)
	if err != nil {
		return fmt.Errorf("save layout for %s: %w", rec.Source, err)
	}
	return nil
}

// Load returns the record for a source identity. A missing row or an
// unreadable payload yields (nil, nil): both mean "no saved layout".
func (s *LayoutStore) Load(ctx context.Context, source string) (*layout.Record, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM layouts WHERE source = ?`, source).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load layout for %s: %w", source, err)
	}
	rec, ok := layout.Decode(data)
	if !ok {
		s.logger.Warn("discarding malformed layout record", zap.String("source", source))
		return nil, nil
	}
	return rec, nil
}

// Delete removes a stored record.
func (s *LayoutStore) Delete(ctx context.Context, source string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM layouts WHERE source = ?`, source); err != nil {
		return fmt.Errorf("delete layout for %s: %w", source, err)
	}
	return nil
}

// Close releases the database handle.
func (s *LayoutStore) Close() error {
	return s.db.Close()
}
