// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"context"
	"io/fs"
	"path"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Rejects(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = Migrate(context.Background(), nil, "pgx")
	assert.ErrorIs(t, err, errNilDB)

	_, err = Migrate(context.Background(), db, "mysql")
	assert.ErrorContains(t, err, `unsupported driver "mysql"`)
}

func TestMigrate_DatabaseFailure(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// no expectations: every statement goose issues fails
	n, err := Migrate(context.Background(), db, "pgx")
	require.Error(t, err)
	assert.Zero(t, n)
	assert.ErrorContains(t, err, "migration error")
}

func TestNewProvider_LoadsEveryDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for driver, d := range dialects {
		t.Run(driver, func(t *testing.T) {
			p, err := newProvider(db, d)
			require.NoError(t, err)

			sources := p.ListSources()
			assert.NotEmpty(t, sources)
		})
	}
}

func TestEmbeddedMigrations_SameVersionsPerDialect(t *testing.T) {
	names := func(dir string) []string {
		files, err := fs.Glob(embedMigrations, dir+"/*.sql")
		require.NoError(t, err)
		out := make([]string, 0, len(files))
		for _, f := range files {
			out = append(out, path.Base(f))
		}
		return out
	}

	pg := names("postgres")
	require.NotEmpty(t, pg)
	assert.Equal(t, pg, names("sqlite3"))
}
