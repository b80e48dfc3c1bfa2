// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-project-tracker/internal/config"
	"github.com/MKhiriev/go-project-tracker/internal/logger"
)

// NewConnectSQLite opens a file or in-memory SQLite database. The DSN must
// carry `_foreign_keys=on` for hierarchy deletes to cascade.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	return open(ctx, driverSQLite, cfg.DSN, log, func(conn *sql.DB) {
		// sqlite serialises writers; one connection avoids SQLITE_BUSY
		conn.SetMaxOpenConns(1)
	})
}
