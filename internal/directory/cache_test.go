package directory

import (
	"context"
	"testing"

	"github.com/dedatech/workplan/internal/repository"
	"github.com/dedatech/workplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedDirectory(t *testing.T) {
	database := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(database)
	ctx := context.Background()

	require.NoError(t, users.Upsert(ctx, testutil.NewTestUser("u-1", "Ana Brik")))

	dir := NewCachedDirectory(users)
	assert.Equal(t, "Ana Brik", dir.DisplayName(ctx, "u-1"))
	assert.Empty(t, dir.DisplayName(ctx, "ghost"))
	assert.Empty(t, dir.DisplayName(ctx, ""))

	// A stale entry survives the upsert until invalidated.
	require.NoError(t, users.Upsert(ctx, testutil.NewTestUser("u-1", "Ana B.")))
	assert.Equal(t, "Ana Brik", dir.DisplayName(ctx, "u-1"))
	dir.Invalidate("u-1")
	assert.Equal(t, "Ana B.", dir.DisplayName(ctx, "u-1"))

	// Negative results are cached too: once a registration lands, the old
	// miss stays until invalidated.
	require.NoError(t, users.Upsert(ctx, testutil.NewTestUser("ghost", "Now Real")))
	assert.Empty(t, dir.DisplayName(ctx, "ghost"))
	dir.Invalidate("ghost")
	assert.Equal(t, "Now Real", dir.DisplayName(ctx, "ghost"))
}
