package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

var _ ProfileStore = (*SQLiteStore)(nil)

// sqliteTime keeps imported_at lexically sortable.
const sqliteTime = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore keeps profiles in an embedded SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and creates the
// profile table.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// Single writer; WAL lets readers proceed.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS profiles (
			user_id      TEXT PRIMARY KEY,
			email        TEXT NOT NULL DEFAULT '',
			name         TEXT NOT NULL DEFAULT '',
			provider     TEXT NOT NULL DEFAULT '',
			imported_at  TEXT NOT NULL,
			machine      TEXT NOT NULL,
			applications TEXT NOT NULL DEFAULT '[]'
		)`)
	if err != nil {
		return fmt.Errorf("migrate profiles: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles WHERE user_id = ?`, userID)

	p, err := scanSQLiteProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SQLiteStore) ReplaceProfile(ctx context.Context, p *Profile) error {
	machineJSON, err := json.Marshal(p.Machine)
	if err != nil {
		return fmt.Errorf("encode machine: %w", err)
	}
	appsJSON, err := json.Marshal(appsOrEmpty(p.Applications))
	if err != nil {
		return fmt.Errorf("encode applications: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			email = excluded.email,
			name = excluded.name,
			provider = excluded.provider,
			imported_at = excluded.imported_at,
			machine = excluded.machine,
			applications = excluded.applications`,
		p.UserID, p.Email, p.Name, p.Provider,
		p.ImportedAt.UTC().Format(sqliteTime), string(machineJSON), string(appsJSON),
	)
	return err
}

func (s *SQLiteStore) ListProfiles(ctx context.Context, filter ProfileFilter) ([]*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles`
	args := []interface{}{}
	if filter.Provider != "" {
		query += " WHERE provider = ?"
		args = append(args, filter.Provider)
	}
	query += " ORDER BY imported_at DESC, user_id ASC LIMIT ? OFFSET ?"
	args = append(args, filter.limit(), filter.offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []*Profile{}
	for rows.Next() {
		p, err := scanSQLiteProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *SQLiteStore) DeleteProfile(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID)
	return err
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteProfile(row rowScanner) (*Profile, error) {
	p := &Profile{}
	var importedAt, machineJSON, appsJSON string
	if err := row.Scan(&p.UserID, &p.Email, &p.Name, &p.Provider, &importedAt, &machineJSON, &appsJSON); err != nil {
		return nil, err
	}
	t, err := time.Parse(sqliteTime, importedAt)
	if err != nil {
		return nil, fmt.Errorf("parse imported_at for %s: %w", p.UserID, err)
	}
	p.ImportedAt = t
	if err := decodeProfileJSON(p, []byte(machineJSON), []byte(appsJSON)); err != nil {
		return nil, err
	}
	return p, nil
}
