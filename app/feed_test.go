package app

import (
	"context"
	"testing"
	"time"

	appDb "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/db/memory"
	"github.com/navbryce/yatube/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postIds(posts []*model.Post) []int64 {
	ids := make([]int64, len(posts))
	for i, post := range posts {
		ids[i] = post.Id
	}
	return ids
}

func TestIndexIsNewestFirst(t *testing.T) {
	store := newTestStore()
	author := createUser(t, store, "writer")
	ids := createPosts(t, store, author, nil, 3)

	listing, err := newTestFeed(store).Index(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, ListingKindIndex, listing.Kind)
	assert.Equal(t, []int64{ids[2], ids[1], ids[0]}, postIds(listing.Page.Items))
}

func TestIndexTieBreaksOnId(t *testing.T) {
	instant := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := memory.New(func() time.Time { return instant })
	author := createUser(t, store, "writer")
	ids := createPosts(t, store, author, nil, 3)

	listing, err := newTestFeed(store).Index(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []int64{ids[2], ids[1], ids[0]}, postIds(listing.Page.Items))
}

func TestGroupPostsPaginate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	author := createUser(t, store, "writer")
	group := createGroup(t, store, "cats")
	other := createGroup(t, store, "dogs")
	createPosts(t, store, author, group, 12)
	createPosts(t, store, author, other, 2)
	createPosts(t, store, author, nil, 1)
	feed := newTestFeed(store)

	first, err := feed.Assemble(ctx, nil, &ListingRequest{Kind: ListingKindGroup, Slug: "cats"})
	require.NoError(t, err)
	assert.Equal(t, group, first.Group)
	assert.Len(t, first.Page.Items, 10)
	assert.Equal(t, 12, first.Page.Count)
	for _, post := range first.Page.Items {
		require.NotNil(t, post.Group)
		assert.Equal(t, group.Id, post.Group.Id)
	}

	second, err := feed.Assemble(ctx, nil, &ListingRequest{Kind: ListingKindGroup, Slug: "cats", Page: "2"})
	require.NoError(t, err)
	assert.Len(t, second.Page.Items, 2)
	assert.Equal(t, 2, second.Page.Number)
}

func TestGroupPostsUnknownSlug(t *testing.T) {
	_, err := newTestFeed(newTestStore()).GroupPosts(context.Background(), "missing", "")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	author := createUser(t, store, "writer")
	viewer := createUser(t, store, "reader")
	createPosts(t, store, author, nil, 3)
	createPosts(t, store, viewer, nil, 1)
	feed := newTestFeed(store)

	t.Run("anonymous viewer gets no following flag", func(t *testing.T) {
		listing, err := feed.Profile(ctx, nil, author.Username, "")
		require.NoError(t, err)
		assert.Equal(t, author.Id, listing.Author.Id)
		assert.Equal(t, 3, listing.PostsCount)
		assert.Len(t, listing.Page.Items, 3)
		assert.Nil(t, listing.Following)
	})

	t.Run("own profile gets no following flag", func(t *testing.T) {
		listing, err := feed.Profile(ctx, author, author.Username, "")
		require.NoError(t, err)
		assert.Nil(t, listing.Following)
	})

	t.Run("following flag tracks the edge", func(t *testing.T) {
		listing, err := feed.Profile(ctx, viewer, author.Username, "")
		require.NoError(t, err)
		require.NotNil(t, listing.Following)
		assert.False(t, *listing.Following)

		require.NoError(t, feed.graph.Follow(ctx, viewer, author.Username))
		listing, err = feed.Profile(ctx, viewer, author.Username, "")
		require.NoError(t, err)
		require.NotNil(t, listing.Following)
		assert.True(t, *listing.Following)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := feed.Profile(ctx, viewer, "ghost", "")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestFollowIndex(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	followed := createUser(t, store, "followed")
	ignored := createUser(t, store, "ignored")
	follower := createUser(t, store, "follower")
	bystander := createUser(t, store, "bystander")
	feed := newTestFeed(store)
	require.NoError(t, feed.graph.Follow(ctx, follower, followed.Username))

	empty, err := feed.FollowIndex(ctx, follower, "")
	require.NoError(t, err)
	assert.Empty(t, empty.Page.Items)

	followedIds := createPosts(t, store, followed, nil, 1)
	ignoredIds := createPosts(t, store, ignored, nil, 1)

	listing, err := feed.Assemble(ctx, follower, &ListingRequest{Kind: ListingKindFollow})
	require.NoError(t, err)
	assert.Contains(t, postIds(listing.Page.Items), followedIds[0])
	assert.NotContains(t, postIds(listing.Page.Items), ignoredIds[0])

	listing, err = feed.FollowIndex(ctx, bystander, "")
	require.NoError(t, err)
	assert.Empty(t, listing.Page.Items)
	assert.Equal(t, 1, listing.Page.NumPages)
}

func TestPostDetail(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	author := createUser(t, store, "writer")
	commenter := createUser(t, store, "reader")
	ids := createPosts(t, store, author, nil, 2)
	feed := newTestFeed(store)

	_, err := feed.AddComment(ctx, commenter, ids[0], "first")
	require.NoError(t, err)
	_, err = feed.AddComment(ctx, commenter, ids[0], "second")
	require.NoError(t, err)

	detail, err := feed.PostDetail(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, ids[0], detail.Post.Id)
	assert.Equal(t, 2, detail.PostsCount)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "second", detail.Comments[0].Text)
	assert.Equal(t, commenter.Id, detail.Comments[0].Author.Id)

	_, err = feed.PostDetail(ctx, 999)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestAssembleUnknownKind(t *testing.T) {
	_, err := newTestFeed(newTestStore()).Assemble(context.Background(), nil, &ListingRequest{Kind: "TRENDING"})
	assert.Error(t, err)
}

func TestDeletedPostLeavesListings(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	author := createUser(t, store, "writer")
	ids := createPosts(t, store, author, nil, 2)
	require.NoError(t, store.DeletePost(ctx, ids[1]))

	count, err := store.CountPosts(ctx, &appDb.PostsListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
