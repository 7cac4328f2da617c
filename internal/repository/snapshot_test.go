package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/linepoint-backend/internal/entity"
	"github.com/rocketscienceinc/linepoint-backend/testing/suite"
)

func TestSnapshotRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	snapshots := NewSnapshotRepository(st.Storage)

	// Given: a live session snapshot
	game := entity.NewGame(0, 7)
	game.MarkReady()

	// When: saving it
	err := snapshots.Save(ctx, game)

	// Then: no error should be returned and the snapshot round-trips
	require.NoError(t, err)

	stored, err := snapshots.GetByID(ctx, game.ID)
	require.NoError(t, err)
	require.Equal(t, game, stored)
}

func TestSnapshotRepository_GetByID_NotFound(t *testing.T) {
	ctx, st := suite.New(t)

	snapshots := NewSnapshotRepository(st.Storage)

	// When: GetByID is called with an unknown session id
	_, err := snapshots.GetByID(ctx, 999)

	// Then: an ErrSnapshotNotFound error should be returned
	require.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSnapshotRepository_List(t *testing.T) {
	ctx, st := suite.New(t)

	snapshots := NewSnapshotRepository(st.Storage)

	// Given: two mirrored sessions
	require.NoError(t, snapshots.Save(ctx, entity.NewGame(0, 7)))
	require.NoError(t, snapshots.Save(ctx, entity.NewGame(1, 7)))

	// When: listing all snapshots
	games, err := snapshots.List(ctx)

	// Then: both sessions come back
	require.NoError(t, err)
	require.Len(t, games, 2)

	ids := []int{games[0].ID, games[1].ID}
	assert.ElementsMatch(t, []int{0, 1}, ids)
}

func TestSnapshotRepository_DeleteByID(t *testing.T) {
	ctx, st := suite.New(t)

	snapshots := NewSnapshotRepository(st.Storage)

	// Given: a mirrored session
	game := entity.NewGame(0, 7)
	require.NoError(t, snapshots.Save(ctx, game))

	// When: deleting it
	err := snapshots.DeleteByID(ctx, game.ID)

	// Then: subsequent lookups fail
	require.NoError(t, err)
	_, err = snapshots.GetByID(ctx, game.ID)
	require.ErrorIs(t, err, ErrSnapshotNotFound)
}
