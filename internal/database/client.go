// Package database provides the storage client for the library domain.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // goqu postgres dialect
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // goqu sqlite dialect
	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file:// migration source
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"       // postgres driver
	_ "modernc.org/sqlite"      // sqlite driver
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"

	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite3"
)

// Client wraps the SQL connection pool and the dialect-aware query builder.
type Client struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
	driver  string
}

// NewClient opens a database connection for the given URL. A postgres:// or
// postgresql:// URL selects the Postgres driver; anything else is treated as
// a SQLite path or DSN.
func NewClient(ctx context.Context, databaseURL string) (*Client, error) {
	driver, dsn, dialect := resolveDriver(databaseURL)

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == driverSQLite {
		// SQLite handles one writer; a single pooled connection also keeps
		// in-memory databases visible across calls.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{
		db:      db,
		dialect: goqu.Dialect(dialect),
		driver:  driver,
	}, nil
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.db.Close()
}

// Migrate applies all pending migrations from the given directory against the
// live connection.
func (c *Client) Migrate(path string) error {
	var (
		driver migratedb.Driver
		err    error
	)
	switch c.driver {
	case driverPostgres:
		driver, err = migratepg.WithInstance(c.db.DB, &migratepg.Config{})
	default:
		driver, err = migratesqlite.WithInstance(c.db.DB, &migratesqlite.Config{})
	}
	if err != nil {
		return fmt.Errorf("failed to prepare migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+path, c.driver, driver)
	if err != nil {
		return fmt.Errorf("failed to open migrations at %s: %w", path, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func resolveDriver(databaseURL string) (driver, dsn, dialect string) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return driverPostgres, databaseURL, dialectPostgres
	}
	return driverSQLite, sqliteDSN(strings.TrimPrefix(databaseURL, "sqlite://")), dialectSQLite
}

// sqliteDSN normalizes a SQLite path into a DSN with foreign keys enforced
// and timestamps stored in a sortable format.
func sqliteDSN(path string) string {
	if path == ":memory:" {
		path = "file::memory:"
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_time_format=sqlite"
}
