// Package testsuite builds throwaway infrastructure for package tests.
package testsuite

import (
	"path/filepath"
	"suburban/config"
	"suburban/helper"
	"suburban/infras/sqlite"
	"testing"

	"github.com/stretchr/testify/require"
)

const busyTimeoutMS = 5000

// NewSQLite returns a migrated database in a temp directory. A file is used instead of
// :memory: so the read and write pools see the same data.
func NewSQLite(t testing.TB) *sqlite.Connection {
	t.Helper()

	cfg := &config.Config{}
	cfg.DB.SQLite.Path = filepath.Join(t.TempDir(), "hotel.db")
	cfg.DB.SQLite.MigrationTable = "schema_migrations"

	require.NoError(t, helper.Up(cfg))

	conn, err := sqlite.Open(cfg.DB.SQLite.Path, busyTimeoutMS, 4, 1, 0)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}
