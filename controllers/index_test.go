package controllers

import (
	"context"
	"testing"
	"time"

	"github.com/navbryce/yatube/app"
	appDb "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/db/memory"
	"github.com/navbryce/yatube/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (fc *fakeClock) Now() time.Time {
	return fc.now
}

func (fc *fakeClock) Advance(d time.Duration) {
	fc.now = fc.now.Add(d)
}

func setupIndex(t *testing.T) (*IndexController, *memory.DB, *fakeClock, []int64) {
	t.Helper()
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := memory.New(clock.Now)
	require.NoError(t, store.CreateUser(ctx, &model.User{Id: "uid-writer", Username: "writer"}))

	ids := make([]int64, 3)
	for i := range ids {
		id, err := store.CreatePost(ctx, &appDb.CreatePost{AuthorId: "uid-writer", Text: "post"})
		require.NoError(t, err)
		ids[i] = id
	}
	feed := app.NewFeedAssembler(store, app.NewFollowGraph(store), app.DefaultPageSize)
	return NewIndexController(feed, DefaultIndexCacheTTL, clock.Now), store, clock, ids
}

func TestIndexServesCachedPageWithinWindow(t *testing.T) {
	ctx := context.Background()
	index, store, clock, ids := setupIndex(t)

	listing, err := index.GetIndex(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, listing.Page.Count)

	require.NoError(t, store.DeletePost(ctx, ids[0]))
	clock.Advance(DefaultIndexCacheTTL - time.Millisecond)

	listing, err = index.GetIndex(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, listing.Page.Count)
	assert.Len(t, listing.Page.Items, 3)

	clock.Advance(time.Millisecond)
	listing, err = index.GetIndex(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, listing.Page.Count)
}

func TestIndexCacheKeysOnPageNumber(t *testing.T) {
	ctx := context.Background()
	index, store, _, ids := setupIndex(t)

	_, err := index.GetIndex(ctx, "1")
	require.NoError(t, err)
	require.NoError(t, store.DeletePost(ctx, ids[1]))

	// "", "0" and "junk" all resolve to page 1
	for _, requested := range []string{"", "0", "junk"} {
		listing, err := index.GetIndex(ctx, requested)
		require.NoError(t, err)
		assert.Equal(t, 3, listing.Page.Count, requested)
	}

	listing, err := index.GetIndex(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 2, listing.Page.Count)
}

func TestIndexCachePrunesExpiredSlots(t *testing.T) {
	ctx := context.Background()
	index, _, clock, _ := setupIndex(t)

	_, err := index.GetIndex(ctx, "1")
	require.NoError(t, err)
	_, err = index.GetIndex(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, index.cached, 2)

	clock.Advance(DefaultIndexCacheTTL)
	_, err = index.GetIndex(ctx, "3")
	require.NoError(t, err)
	assert.Len(t, index.cached, 1)
}
