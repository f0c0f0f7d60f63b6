package db

import (
	"testing"

	"github.com/navbryce/yatube/model"
	"github.com/stretchr/testify/assert"
)

func TestPostsListQueryMatches(t *testing.T) {
	groupId := int64(3)
	otherGroupId := int64(4)
	inGroup := &model.Post{Author: &model.User{Id: "a"}, Group: &model.Group{Id: groupId}}
	noGroup := &model.Post{Author: &model.User{Id: "b"}}

	assert.True(t, (&PostsListQuery{}).Matches(inGroup))
	assert.True(t, (&PostsListQuery{}).Matches(noGroup))

	assert.True(t, (&PostsListQuery{GroupId: &groupId}).Matches(inGroup))
	assert.False(t, (&PostsListQuery{GroupId: &groupId}).Matches(noGroup))
	assert.False(t, (&PostsListQuery{GroupId: &otherGroupId}).Matches(inGroup))

	assert.True(t, (&PostsListQuery{AuthorId: "a"}).Matches(inGroup))
	assert.False(t, (&PostsListQuery{AuthorId: "a"}).Matches(noGroup))

	assert.True(t, (&PostsListQuery{AuthorIds: []string{"x", "b"}}).Matches(noGroup))
	assert.False(t, (&PostsListQuery{AuthorIds: []string{"x"}}).Matches(noGroup))
}

func TestPostsListQueryMatchesNothing(t *testing.T) {
	assert.False(t, (&PostsListQuery{}).MatchesNothing())
	assert.True(t, (&PostsListQuery{AuthorIds: []string{}}).MatchesNothing())
	assert.False(t, (&PostsListQuery{AuthorIds: []string{"a"}}).MatchesNothing())
}
