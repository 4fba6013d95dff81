// Package store owns the persistence layer: one injected sqlx handle shared
// by every component, constructed at startup and closed on shutdown. Postgres
// (pgx) is the production driver; SQLite (modernc, pure Go) backs tests and
// local development through the same query surface.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"juntos-mais-api/internal/apperrors"
	"juntos-mais-api/internal/logger"
)

const (
	driverPostgres = "pgx"
	driverSQLite   = "sqlite"
)

type Store struct {
	DB     *sqlx.DB
	driver string
	log    *logger.Logger
}

// Open connects using the driver implied by the URL: postgres:// goes through
// pgx, sqlite:// (or a bare file path) through modernc sqlite.
func Open(databaseURL string, log *logger.Logger) (*Store, error) {
	driver, dsn := parseDSN(databaseURL)
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	return &Store{DB: db, driver: driver, log: log}, nil
}

func parseDSN(databaseURL string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return driverPostgres, databaseURL
	case strings.HasPrefix(databaseURL, "sqlite://"):
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		path = strings.TrimPrefix(path, "/")
		return driverSQLite, sqliteDSN(path)
	case databaseURL == "":
		return driverSQLite, sqliteDSN("juntos_mais.db")
	default:
		return driverSQLite, sqliteDSN(databaseURL)
	}
}

func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?cache=shared&mode=rwc&_time_format=sqlite&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// Ping backs the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.DB.PingContext(ctx); err != nil {
		return apperrors.Unavailable("Erro no banco de dados", err)
	}
	return nil
}

// rebind rewrites '?' placeholders for the active driver.
func (s *Store) rebind(query string) string {
	return s.DB.Rebind(query)
}

// storeErr wraps unexpected driver failures as an unavailability error.
func storeErr(err error) error {
	return apperrors.Unavailable("Erro no banco de dados", err)
}

// isUniqueViolation detects a uniqueness-constraint failure on either driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint")
}
