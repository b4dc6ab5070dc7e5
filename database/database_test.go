package database

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/amirphl/Omoikane/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("SQLite", func(t *testing.T) {
		cfg := config.DatabaseConfig{
			Driver:     "sqlite",
			SQLitePath: filepath.Join(t.TempDir(), "omoikane.db"),
		}

		db, err := Open(cfg, io.Discard, "error")
		require.NoError(t, err)
		t.Cleanup(func() { _ = Close(db) })

		var fk int
		require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
		assert.Equal(t, 1, fk)
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		_, err := Open(config.DatabaseConfig{Driver: "mysql"}, io.Discard, "error")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})
}
