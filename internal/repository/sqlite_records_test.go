package repository_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoplan/internal/repository"
	"pomoplan/internal/testutil"
)

func TestSQLiteRecordStore_PutGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteRecordStore(database)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "session-2025-06-15", json.RawMessage(`{"date":"2025-06-15"}`)))

	got, err := store.Get(ctx, "session-2025-06-15")
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-06-15"}`, string(got))
}

func TestSQLiteRecordStore_PutOverwrites(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteRecordStore(database)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", json.RawMessage(`{"v":1}`)))
	require.NoError(t, store.Put(ctx, "k", json.RawMessage(`{"v":2}`)))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got))
}

func TestSQLiteRecordStore_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteRecordStore(database)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSQLiteRecordStore_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteRecordStore(database)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", json.RawMessage(`{}`)))
	require.NoError(t, store.Delete(ctx, "k"))

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete(ctx, "k"))
}

func TestSQLiteRecordStore_DeletePrefix(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteRecordStore(database)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "session-2025-06-14", json.RawMessage(`{}`)))
	require.NoError(t, store.Put(ctx, "session-2025-06-15", json.RawMessage(`{}`)))
	require.NoError(t, store.Put(ctx, "other", json.RawMessage(`{}`)))

	require.NoError(t, store.DeletePrefix(ctx, "session-"))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "other", records[0].Key)
}

func TestSQLiteRecordStore_ListSorted(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteRecordStore(database)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "b", json.RawMessage(`{}`)))
	require.NoError(t, store.Put(ctx, "a", json.RawMessage(`{}`)))
	require.NoError(t, store.Put(ctx, "c", json.RawMessage(`{}`)))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "a", records[0].Key)
	assert.Equal(t, "b", records[1].Key)
	assert.Equal(t, "c", records[2].Key)
}

func TestSQLiteStateStore_MutationIDs(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteStateStore(database)
	ctx := context.Background()

	id, err := store.LastMutationID(ctx, "client-a")
	require.NoError(t, err)
	assert.Equal(t, 0, id, "unknown client starts at zero")

	require.NoError(t, store.SetLastMutationID(ctx, "client-a", 3))
	require.NoError(t, store.SetLastMutationID(ctx, "client-b", 1))

	id, err = store.LastMutationID(ctx, "client-a")
	require.NoError(t, err)
	assert.Equal(t, 3, id)

	id, err = store.LastMutationID(ctx, "client-b")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestSQLiteStateStore_GlobalVersion(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteStateStore(database)
	ctx := context.Background()

	v, err := store.GlobalVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	require.NoError(t, store.SetGlobalVersion(ctx, 7))

	v, err = store.GlobalVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
