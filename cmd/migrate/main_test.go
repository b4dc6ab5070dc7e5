package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amirphl/Omoikane/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", filepath.Join(t.TempDir(), "migrate.db"))
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	all := migrations.All()

	t.Run("UpThenStatus", func(t *testing.T) {
		setupSQLiteEnv(t)

		var out bytes.Buffer
		require.NoError(t, run(ctx, []string{"up"}, &out))
		assert.Equal(t, len(all), strings.Count(out.String(), "applied "))

		out.Reset()
		require.NoError(t, run(ctx, []string{"up"}, &out))
		assert.Equal(t, "nothing applied\n", out.String())

		out.Reset()
		require.NoError(t, run(ctx, []string{"status"}, &out))
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, len(all)+1)
		assert.Contains(t, lines[1], all[0].ID)
		assert.Contains(t, lines[1], "true")
	})

	t.Run("UpToAndDown", func(t *testing.T) {
		setupSQLiteEnv(t)

		var out bytes.Buffer
		require.NoError(t, run(ctx, []string{"up-to", all[2].ID}, &out))
		assert.Equal(t, 3, strings.Count(out.String(), "applied "))

		out.Reset()
		require.NoError(t, run(ctx, []string{"down", "-steps", "2"}, &out))
		assert.Equal(t, "reverted "+all[2].ID+"\nreverted "+all[1].ID+"\n", out.String())

		out.Reset()
		require.NoError(t, run(ctx, []string{"down"}, &out))
		assert.Equal(t, "reverted "+all[0].ID+"\n", out.String())
	})

	t.Run("UnknownTarget", func(t *testing.T) {
		setupSQLiteEnv(t)

		err := run(ctx, []string{"up-to", "19990101000000_missing"}, &bytes.Buffer{})
		require.ErrorIs(t, err, migrations.ErrUnknownMigration)
	})

	t.Run("Usage", func(t *testing.T) {
		setupSQLiteEnv(t)

		for _, args := range [][]string{nil, {"sideways"}, {"up-to"}, {"down", "-steps", "0"}} {
			err := run(ctx, args, &bytes.Buffer{})
			assert.ErrorIs(t, err, errUsage, "args %v", args)
		}
	})
}
