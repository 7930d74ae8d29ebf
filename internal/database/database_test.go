package database

import (
	"path/filepath"
	"testing"

	"github.com/rentwheels/rental-admin/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := config.Default().Database
	cfg.SQLitePath = filepath.Join(t.TempDir(), "test.db")

	db, err := Open(cfg, false)
	require.NoError(t, err)
	defer func() { _ = Close(db) }()

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := config.Default().Database
	cfg.Driver = "postgres"

	_, err := Open(cfg, false)
	assert.ErrorContains(t, err, "unsupported database driver")
}
