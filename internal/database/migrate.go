package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"exam-byte/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var MigrationsFS embed.FS

// Migrator applies numbered up-migrations ("<version>_<name>.up.sql") and
// records each applied version in SCHEMA_MIGRATIONS.
type Migrator struct {
	db  *sqlx.DB
	src source.Driver
}

// NewMigrator reads migrations from dir inside fsys.
func NewMigrator(db *sqlx.DB, fsys fs.FS, dir string) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open migration source: %w", err)
	}
	return &Migrator{db: db, src: src}, nil
}

// Close releases the migration source.
func (m *Migrator) Close() error {
	return m.src.Close()
}

// Up applies every pending migration in version order and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	l := logger.Get()

	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, err
	}

	var appliedVersions []int64
	if err := m.db.SelectContext(ctx, &appliedVersions, `SELECT version FROM schema_migrations`); err != nil {
		return 0, fmt.Errorf("could not read applied migrations: %w", err)
	}
	applied := make(map[uint]bool, len(appliedVersions))
	for _, v := range appliedVersions {
		applied[uint(v)] = true
	}

	version, err := m.src.First()
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("could not read first migration: %w", err)
	}

	count := 0
	for {
		if !applied[version] {
			if err := m.apply(ctx, version); err != nil {
				return count, err
			}
			count++
			l.Info("Executed migration", zap.Uint("version", version))
		}

		version, err = m.src.Next(version)
		if errors.Is(err, os.ErrNotExist) {
			break
		}
		if err != nil {
			return count, fmt.Errorf("could not read next migration: %w", err)
		}
	}

	l.Info("Migrations completed successfully", zap.Int("applied", count))
	return count, nil
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	var exists int
	if err := m.db.GetContext(ctx, &exists, `SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`); err != nil {
		return fmt.Errorf("could not check schema_migrations: %w", err)
	}
	if exists > 0 {
		return nil
	}
	if _, err := m.db.ExecContext(ctx, `CREATE TABLE schema_migrations (version NUMBER(19) PRIMARY KEY, applied_at TIMESTAMP DEFAULT SYSTIMESTAMP NOT NULL)`); err != nil {
		return fmt.Errorf("could not create schema_migrations: %w", err)
	}
	return nil
}

func (m *Migrator) apply(ctx context.Context, version uint) error {
	r, identifier, err := m.src.ReadUp(version)
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}
	defer r.Close()

	body, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("could not read migration %d (%s): %w", version, identifier, err)
	}

	// Oracle runs DDL one statement at a time and commits implicitly, so a
	// failed migration is not rolled back.
	for _, stmt := range SplitStatements(string(body)) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute migration %d (%s): %w", version, identifier, err)
		}
	}
	if _, err := m.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (:1)`, int64(version)); err != nil {
		return fmt.Errorf("could not record migration %d: %w", version, err)
	}
	return nil
}

// SplitStatements splits a script on ';' at line ends and drops comment-only
// lines and empty statements.
func SplitStatements(script string) []string {
	var (
		stmts   []string
		current strings.Builder
	)
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			current.WriteString(strings.TrimSuffix(trimmed, ";"))
			if s := strings.TrimSpace(current.String()); s != "" {
				stmts = append(stmts, s)
			}
			current.Reset()
			continue
		}
		current.WriteString(trimmed)
		current.WriteString("\n")
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		stmts = append(stmts, s)
	}
	return stmts
}
