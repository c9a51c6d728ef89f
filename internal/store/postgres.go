package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS macmatch_profiles (
	user_id      TEXT PRIMARY KEY,
	email        TEXT,
	name         TEXT,
	provider     TEXT,
	imported_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	machine      JSONB NOT NULL,
	applications JSONB NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS macmatch_profiles_imported_at ON macmatch_profiles (imported_at DESC);`

// Migrate creates the profile table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("migrate profiles: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const profileColumns = `user_id, email, name, provider, imported_at, machine, applications`

func (s *PostgresStore) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM macmatch_profiles WHERE user_id = $1`, userID)

	p, err := scanProfile(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostgresStore) ReplaceProfile(ctx context.Context, p *Profile) error {
	machineJSON, err := json.Marshal(p.Machine)
	if err != nil {
		return fmt.Errorf("encode machine: %w", err)
	}
	appsJSON, err := json.Marshal(appsOrEmpty(p.Applications))
	if err != nil {
		return fmt.Errorf("encode applications: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO macmatch_profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			provider = EXCLUDED.provider,
			imported_at = EXCLUDED.imported_at,
			machine = EXCLUDED.machine,
			applications = EXCLUDED.applications`,
		p.UserID, p.Email, p.Name, p.Provider, p.ImportedAt, machineJSON, appsJSON,
	)
	return err
}

func (s *PostgresStore) ListProfiles(ctx context.Context, filter ProfileFilter) ([]*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM macmatch_profiles WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Provider != "" {
		n++
		query += fmt.Sprintf(" AND provider = $%d", n)
		args = append(args, filter.Provider)
	}

	query += " ORDER BY imported_at DESC, user_id ASC"

	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, filter.limit())

	if offset := filter.offset(); offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []*Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *PostgresStore) DeleteProfile(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM macmatch_profiles WHERE user_id = $1`, userID)
	return err
}

func scanProfile(row pgx.Row) (*Profile, error) {
	p := &Profile{}
	var email, name, provider sql.NullString
	var machineJSON, appsJSON []byte
	if err := row.Scan(&p.UserID, &email, &name, &provider, &p.ImportedAt, &machineJSON, &appsJSON); err != nil {
		return nil, err
	}
	p.Email = email.String
	p.Name = name.String
	p.Provider = provider.String
	if err := decodeProfileJSON(p, machineJSON, appsJSON); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeProfileJSON(p *Profile, machineJSON, appsJSON []byte) error {
	if err := json.Unmarshal(machineJSON, &p.Machine); err != nil {
		return fmt.Errorf("decode machine for %s: %w", p.UserID, err)
	}
	if len(appsJSON) > 0 {
		if err := json.Unmarshal(appsJSON, &p.Applications); err != nil {
			return fmt.Errorf("decode applications for %s: %w", p.UserID, err)
		}
	}
	return nil
}

func appsOrEmpty(apps []string) []string {
	if apps == nil {
		return []string{}
	}
	return apps
}
