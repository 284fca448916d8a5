// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Open connects to the configured database and verifies the connection.
func Open(dialect, url string) (*sql.DB, error) {
	var driver string
	switch dialect {
	case DialectSQLite:
		driver = "sqlite"
	case DialectPostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dialect)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite allows one writer; an in-memory database also lives only as
	// long as its connection.
	if dialect == DialectSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return conn, nil
}
