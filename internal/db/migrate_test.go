package db_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/worldcore/internal/db"
	"github.com/udisondev/worldcore/internal/testutil"
)

func TestRunMigrations_AlreadyCurrent(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)

	require.NoError(t, db.RunMigrations(ctx, pool.Config().ConnString()))

	var tables int
	err := pool.QueryRow(ctx, `
		SELECT count(*) FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name IN ('spawns', 'corpses', 'respawns')
	`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 3, tables)
}
