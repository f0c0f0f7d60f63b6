package memory

import (
	"context"
	"testing"
	"time"

	appDb "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersAreUnique(t *testing.T) {
	ctx := context.Background()
	store := New(nil)
	require.NoError(t, store.CreateUser(ctx, &model.User{Id: "1", Username: "bob"}))

	assert.ErrorIs(t, store.CreateUser(ctx, &model.User{Id: "1", Username: "other"}), appDb.ErrDuplicate)
	assert.ErrorIs(t, store.CreateUser(ctx, &model.User{Id: "2", Username: "bob"}), appDb.ErrDuplicate)

	user, err := store.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "1", user.Id)
	assert.NotEmpty(t, user.Avatar)

	missing, err := store.GetUser(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetPostsOrderAndWindow(t *testing.T) {
	ctx := context.Background()
	instant := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := New(func() time.Time { return instant })
	require.NoError(t, store.CreateUser(ctx, &model.User{Id: "1", Username: "bob"}))
	for i := 0; i < 5; i++ {
		_, err := store.CreatePost(ctx, &appDb.CreatePost{AuthorId: "1", Text: "post"})
		require.NoError(t, err)
	}

	posts, err := store.GetPosts(ctx, &appDb.PostsListQuery{
		PostsListQueryOpts: &appDb.PostsListQueryOpts{Limit: 2, Offset: 1},
	})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(4), posts[0].Id)
	assert.Equal(t, int64(3), posts[1].Id)

	posts, err = store.GetPosts(ctx, &appDb.PostsListQuery{
		PostsListQueryOpts: &appDb.PostsListQueryOpts{Limit: 2, Offset: 10},
	})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestDeletePostDropsComments(t *testing.T) {
	ctx := context.Background()
	store := New(nil)
	require.NoError(t, store.CreateUser(ctx, &model.User{Id: "1", Username: "bob"}))
	postId, err := store.CreatePost(ctx, &appDb.CreatePost{AuthorId: "1", Text: "post"})
	require.NoError(t, err)
	_, err = store.CreateComment(ctx, &appDb.CreateComment{PostId: postId, AuthorId: "1", Text: "hi"})
	require.NoError(t, err)

	require.NoError(t, store.DeletePost(ctx, postId))
	post, err := store.GetPostById(ctx, postId)
	require.NoError(t, err)
	assert.Nil(t, post)
	comments, err := store.GetCommentsForPost(ctx, postId)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestUpdatePostClearsGroup(t *testing.T) {
	ctx := context.Background()
	store := New(nil)
	require.NoError(t, store.CreateUser(ctx, &model.User{Id: "1", Username: "bob"}))
	groupId, err := store.CreateGroup(ctx, &model.Group{Slug: "cats", Title: "Cats"})
	require.NoError(t, err)
	postId, err := store.CreatePost(ctx, &appDb.CreatePost{AuthorId: "1", Text: "post", GroupId: &groupId})
	require.NoError(t, err)

	require.NoError(t, store.UpdatePost(ctx, postId, &appDb.UpdatePost{Text: "edited"}))
	post, err := store.GetPostById(ctx, postId)
	require.NoError(t, err)
	assert.Equal(t, "edited", post.Text)
	assert.Nil(t, post.Group)
}

func TestFollows(t *testing.T) {
	ctx := context.Background()
	store := New(nil)
	require.NoError(t, store.CreateUser(ctx, &model.User{Id: "1", Username: "bob"}))
	require.NoError(t, store.CreateUser(ctx, &model.User{Id: "2", Username: "alice"}))
	edge := &model.Follow{UserId: "1", AuthorId: "2"}

	require.NoError(t, store.CreateFollow(ctx, edge))
	assert.ErrorIs(t, store.CreateFollow(ctx, edge), appDb.ErrDuplicate)

	exists, err := store.FollowExists(ctx, edge)
	require.NoError(t, err)
	assert.True(t, exists)

	follows, err := store.GetFollowsForUser(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []*model.Follow{edge}, follows)

	require.NoError(t, store.DeleteFollow(ctx, edge))
	assert.Equal(t, 0, store.FollowCount())
}

func TestCreateRejectsUnknownReferences(t *testing.T) {
	ctx := context.Background()
	store := New(nil)
	require.NoError(t, store.CreateUser(ctx, &model.User{Id: "1", Username: "bob"}))
	postId, err := store.CreatePost(ctx, &appDb.CreatePost{AuthorId: "1", Text: "post"})
	require.NoError(t, err)
	missingGroup := int64(9)

	_, err = store.CreatePost(ctx, &appDb.CreatePost{AuthorId: "ghost", Text: "post"})
	assert.ErrorIs(t, err, appDb.ErrUnknownReference)
	_, err = store.CreatePost(ctx, &appDb.CreatePost{AuthorId: "1", Text: "post", GroupId: &missingGroup})
	assert.ErrorIs(t, err, appDb.ErrUnknownReference)
	assert.ErrorIs(t, store.UpdatePost(ctx, postId, &appDb.UpdatePost{Text: "edited", GroupId: &missingGroup}),
		appDb.ErrUnknownReference)

	_, err = store.CreateComment(ctx, &appDb.CreateComment{PostId: postId, AuthorId: "ghost", Text: "hi"})
	assert.ErrorIs(t, err, appDb.ErrUnknownReference)
	_, err = store.CreateComment(ctx, &appDb.CreateComment{PostId: postId + 1, AuthorId: "1", Text: "hi"})
	assert.ErrorIs(t, err, appDb.ErrUnknownReference)

	assert.ErrorIs(t, store.CreateFollow(ctx, &model.Follow{UserId: "1", AuthorId: "ghost"}), appDb.ErrUnknownReference)
	assert.Equal(t, 0, store.FollowCount())

	// nothing dangling was stored, so listing never meets a post without an author
	posts, err := store.GetPosts(ctx, &appDb.PostsListQuery{})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "post", posts[0].Text)
	comments, err := store.GetCommentsForPost(ctx, postId)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
