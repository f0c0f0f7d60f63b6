package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	appDb "github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/db/memory"
	"github.com/navbryce/yatube/model"
	"github.com/stretchr/testify/require"
)

// tickingClock advances by a second on every read, so posts created one
// after another have distinct, increasing timestamps
type tickingClock struct {
	now time.Time
}

func (tc *tickingClock) Now() time.Time {
	tc.now = tc.now.Add(time.Second)
	return tc.now
}

func newTestStore() *memory.DB {
	clock := &tickingClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return memory.New(clock.Now)
}

func newTestFeed(store *memory.DB) *FeedAssembler {
	return NewFeedAssembler(store, NewFollowGraph(store), DefaultPageSize)
}

func createUser(t *testing.T, store *memory.DB, username string) *model.User {
	t.Helper()
	user := &model.User{Id: "uid-" + username, Username: username}
	require.NoError(t, store.CreateUser(context.Background(), user))
	stored, err := store.GetUser(context.Background(), user.Id)
	require.NoError(t, err)
	return stored
}

func createGroup(t *testing.T, store *memory.DB, slug string) *model.Group {
	t.Helper()
	id, err := store.CreateGroup(context.Background(), &model.Group{
		Slug:  slug,
		Title: "Group " + slug,
	})
	require.NoError(t, err)
	group, err := store.GetGroupById(context.Background(), id)
	require.NoError(t, err)
	return group
}

func createPosts(t *testing.T, store *memory.DB, author *model.User, group *model.Group, n int) []int64 {
	t.Helper()
	ids := make([]int64, n)
	for i := range ids {
		req := &appDb.CreatePost{AuthorId: author.Id, Text: fmt.Sprintf("post %v by %v", i, author.Username)}
		if group != nil {
			req.GroupId = &group.Id
		}
		id, err := store.CreatePost(context.Background(), req)
		require.NoError(t, err)
		ids[i] = id
	}
	return ids
}
